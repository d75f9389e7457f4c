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

package fmindex

import (
	"fmt"

	"github.com/succinctfm/fmindex/bitops"
	"github.com/succinctfm/fmindex/bwtx"
	"github.com/succinctfm/fmindex/fmerr"
	"github.com/succinctfm/fmindex/packedvec"
	"github.com/succinctfm/fmindex/rrr"
	"github.com/succinctfm/fmindex/wavelet"
)

// Build constructs an FmIndex over text: discover the alphabet, append the
// sentinel, compute the cumulative counts, build the suffix array and BWT,
// sample the suffix array and (if enableExtract) its inverse, and wrap the
// BWT in a wavelet tree. A sampleRate of 0 is treated as 1.
func Build(text []int32, sampleRate uint32, enableExtract bool) (*FmIndex, error) {
	if len(text) == 0 {
		return nil, fmt.Errorf("fmindex: build: %w", fmerr.ErrEmptyInput)
	}

	if sampleRate == 0 {
		sampleRate = 1
	}

	alphabet := buildAlphabetMap(text)
	if alphabet.Sigma()-1 > maxSymbol {
		return nil, fmt.Errorf("fmindex: build: %d distinct symbols: %w", alphabet.Sigma()-1, fmerr.ErrAlphabetTooLarge)
	}

	n := uint64(len(text))
	mapped := make([]int32, n+1)

	for i, r := range text {
		id, _ := alphabet.Encode(r)
		mapped[i] = id
	}

	mapped[n] = 0 // sentinel

	sigma := alphabet.Sigma()

	cumulativeCounts := buildCumulativeCounts(mapped, sigma)

	bw := bwtx.New(mapped, sigma)
	sa := bw.SuffixArray()

	bitWidthSuffixes := bitops.MinBits(n + 1)
	numSamples := (n+1)/uint64(sampleRate) + 1
	sampledSuffixes := packedvec.NewFixed(numSamples, bitWidthSuffixes)

	rawBits := make([]uint64, bitops.WordsFor(n+1))
	sampleIdx := uint64(0)

	var positions packedvec.Fixed
	if enableExtract {
		positions = packedvec.NewFixed((n+1)/uint64(sampleRate)+2, bitWidthSuffixes)
	}

	for i, s := range sa {
		if uint64(s)%uint64(sampleRate) == 0 {
			setBitMSB(rawBits, uint64(i))
			sampledSuffixes.Set(sampleIdx, uint64(s))
			sampleIdx++

			if enableExtract {
				positions.Set(uint64(s)/uint64(sampleRate), uint64(i))
			}
		}
	}

	if enableExtract {
		wrapIdx := (n+1-1)/uint64(sampleRate) + 1
		positions.Set(wrapIdx, positions.GetStored(0))
	}

	sampledBitmap := rrr.Build(rawBits, n+1, sampleRate)

	wav := wavelet.Build(bw.Sequence(), sigma)

	return &FmIndex{
		n:                n,
		sigma:            sigma,
		alphabet:         alphabet,
		bwt:              wav,
		cumulativeCounts: cumulativeCounts,
		sampledSuffixes:  sampledSuffixes,
		sampledBitmap:    sampledBitmap,
		positions:        positions,
		enableExtract:    enableExtract,
		sampleRate:       sampleRate,
	}, nil
}

// buildCumulativeCounts histograms mapped (which ranges over [0,sigma))
// and replaces each bucket with the running prefix sum, producing
// C[c] = number of symbols strictly less than c, C[sigma] = len(mapped).
func buildCumulativeCounts(mapped []int32, sigma int) []uint64 {
	counts := make([]uint64, sigma+1)

	for _, s := range mapped {
		counts[s+1]++
	}

	for c := 1; c <= sigma; c++ {
		counts[c] += counts[c-1]
	}

	return counts
}

// setBitMSB sets bit i of words under the MSB-first-within-word
// convention rrr.BitVec/wavelet use throughout this module.
func setBitMSB(words []uint64, i uint64) {
	words[i/64] |= uint64(1) << (63 - (i % 64))
}
