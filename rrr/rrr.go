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

// Package rrr implements the RRR-style compressed bit-vector: O(1) rank on
// 0s and 1s and O(1) access, built from a raw bit array plus a sparsely
// sampled prefix-popcount table. The layout keeps the raw words alongside
// the samples rather than an entropy-coded block layer; between two sample
// boundaries a word-at-a-time popcount closes the gap.
package rrr

import (
	"fmt"
	"math/bits"

	"github.com/succinctfm/fmindex/bitops"
	"github.com/succinctfm/fmindex/fmerr"
	"github.com/succinctfm/fmindex/packedvec"
)

// BitVec is a succinct bit-vector supporting O(1) rank1/rank0/access.
type BitVec struct {
	raw      []uint64
	samples1 packedvec.Fixed
	n        uint64
	period   uint32
}

// Build constructs a BitVec over the first n bits of raw (packed into
// 64-bit words, bit i living at raw[i/64] bit (i%64) from the MSB-first
// convention used throughout this package), sampling a running popcount
// every period bits.
func Build(raw []uint64, n uint64, period uint32) *BitVec {
	if period == 0 {
		period = 64
	}

	nSamples := n/uint64(period) + 1
	total := popcountPrefix(raw, n)
	width := bitops.MinBits(uint64(total))

	if w := bitops.MinBits(n); w > width {
		width = w
	}

	samples := packedvec.NewFixed(nSamples, width)
	running := uint64(0)
	nextSample := uint64(0)
	sampleIdx := uint64(0)

	for pos := uint64(0); pos <= n; pos++ {
		if pos == nextSample {
			samples.Set(sampleIdx, running)
			sampleIdx++
			nextSample += uint64(period)
		}

		if pos < n && bitAt(raw, pos) {
			running++
		}
	}

	return &BitVec{raw: raw, samples1: samples, n: n, period: period}
}

// Len returns the logical bit length N.
func (b *BitVec) Len() uint64 { return b.n }

// Period returns the sample period s.
func (b *BitVec) Period() uint32 { return b.period }

// Raw exposes the backing raw bit words.
func (b *BitVec) Raw() []uint64 { return b.raw }

// Samples exposes the prefix-popcount sample vector.
func (b *BitVec) Samples() *packedvec.Fixed { return &b.samples1 }

// FromParts reconstructs a BitVec from its serialized parts without
// recomputing the sample table, used by the deserializer.
func FromParts(raw []uint64, samples packedvec.Fixed, n uint64, period uint32) *BitVec {
	return &BitVec{raw: raw, samples1: samples, n: n, period: period}
}

// Access returns bit i of the vector. i must be in [0,N).
func (b *BitVec) Access(i int64) (int, error) {
	if i < 0 || uint64(i) >= b.n {
		return 0, fmt.Errorf("rrr: access index %d out of range [0,%d): %w", i, b.n, fmerr.ErrOutOfRange)
	}

	if bitAt(b.raw, uint64(i)) {
		return 1, nil
	}

	return 0, nil
}

// Rank1 returns the number of 1-bits strictly before pos, clamping pos to
// [0,N].
func (b *BitVec) Rank1(pos int64) uint64 {
	p := clamp(pos, b.n)

	sampleIdx := p / uint64(b.period)
	running := b.samples1.GetStored(sampleIdx)
	from := sampleIdx * uint64(b.period)

	return running + popcountRange(b.raw, from, p)
}

// Rank0 returns the number of 0-bits strictly before pos.
func (b *BitVec) Rank0(pos int64) uint64 {
	p := clamp(pos, b.n)
	return p - b.Rank1(pos)
}

func clamp(pos int64, n uint64) uint64 {
	if pos <= 0 {
		return 0
	}

	if uint64(pos) >= n {
		return n
	}

	return uint64(pos)
}

// bitAt reads bit i (0 = MSB of word) from a packed word array.
func bitAt(words []uint64, i uint64) bool {
	word := words[i/64]
	shift := 63 - (i % 64)
	return (word>>shift)&1 == 1
}

// popcountPrefix counts 1-bits in raw[0:n).
func popcountPrefix(words []uint64, n uint64) uint64 {
	return popcountRange(words, 0, n)
}

// popcountRange counts 1-bits in the half-open bit range [from,to) using a
// broadword popcount per full word and a masked popcount for the partial
// boundary words.
func popcountRange(words []uint64, from, to uint64) uint64 {
	if to <= from {
		return 0
	}

	fromWord := from / 64
	toWord := to / 64
	fromBit := from % 64
	toBit := to % 64

	if fromWord == toWord {
		return uint64(bits.OnesCount64(maskMiddle(words[fromWord], fromBit, toBit)))
	}

	count := uint64(bits.OnesCount64(maskMiddle(words[fromWord], fromBit, 64)))

	for w := fromWord + 1; w < toWord; w++ {
		count += uint64(bits.OnesCount64(words[w]))
	}

	if toBit > 0 {
		count += uint64(bits.OnesCount64(maskMiddle(words[toWord], 0, toBit)))
	}

	return count
}

// maskMiddle keeps only bits [lo,hi) of word under the MSB-first bit
// numbering used by bitAt.
func maskMiddle(word uint64, lo, hi uint64) uint64 {
	if hi == 64 {
		return word & bitops.LowMask(uint(64-lo))
	}

	return word & (bitops.LowMask(uint(64-lo)) &^ bitops.LowMask(uint(64-hi)))
}
