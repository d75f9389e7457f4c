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

// Package fmindex is the FM-Index shell: it wires the suffix-array-driven
// BWT (bwtx), cumulative symbol counts, and sampled suffix/inverse-suffix
// arrays onto a wavelet tree (wavelet) to support backward search (Count),
// Locate, Extract and ExtractUntilBoundary over a single immutable text.
// An index is built once and read-only afterwards; queries are safe to run
// concurrently against the same instance with disjoint output buffers.
package fmindex

import (
	"github.com/succinctfm/fmindex/packedvec"
	"github.com/succinctfm/fmindex/rrr"
	"github.com/succinctfm/fmindex/wavelet"
)

// FmIndex is an immutable FM-Index over one sentinel-terminated text.
type FmIndex struct {
	n     uint64 // length of the original text, sentinel excluded
	sigma int

	alphabet AlphabetMap

	bwt              *wavelet.FBBWavelet
	cumulativeCounts []uint64

	sampledSuffixes packedvec.Fixed
	sampledBitmap   *rrr.BitVec

	positions     packedvec.Fixed
	enableExtract bool

	sampleRate uint32
}

// InputLength returns the length of the indexed text, sentinel excluded.
func (f *FmIndex) InputLength() uint64 { return f.n }

// AlphabetSize returns sigma, the sentinel included.
func (f *FmIndex) AlphabetSize() uint32 { return uint32(f.sigma) }
