/*
Copyright 2011-2024 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package bwtx derives the Burrows-Wheeler transform of a sentinel
// terminated integer sequence from its suffix array: row i of the
// transform is the symbol preceding the i-th smallest suffix, wrapping
// at the sentinel.
package bwtx

import "github.com/succinctfm/fmindex/suffixarray"

// BWT holds the suffix array and transform for one built sequence.
type BWT struct {
	sa  []int32
	bwt []int32
}

// New builds the suffix array of mapped (alphabet size alphabetSize,
// mapped[len(mapped)-1] must be the sentinel) and derives its BWT.
func New(mapped []int32, alphabetSize int) *BWT {
	sa := suffixarray.Build(mapped, alphabetSize)

	return &BWT{
		sa:  sa,
		bwt: Derive(mapped, sa),
	}
}

// SuffixArray returns the suffix array computed during New.
func (b *BWT) SuffixArray() []int32 { return b.sa }

// Sequence returns the derived BWT sequence.
func (b *BWT) Sequence() []int32 { return b.bwt }

// Derive computes bwt[i] = mapped[(sa[i]-1) mod len(mapped)] for every i,
// the standard one-line BWT-from-suffix-array relation.
func Derive(mapped []int32, sa []int32) []int32 {
	n := len(mapped)
	bwt := make([]int32, n)

	for i, s := range sa {
		pos := int(s) - 1
		if pos < 0 {
			pos += n
		}

		bwt[i] = mapped[pos]
	}

	return bwt
}
