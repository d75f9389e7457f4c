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

// Package packedvec implements the two packed integer vectors the FM-Index
// stack is built from: a fixed-width random-access array and a
// variable-width write-once stream. Both store values as raw bits inside a
// []uint64 word array, addressed directly by bit offset; a value may span
// two adjacent words.
package packedvec

import "github.com/succinctfm/fmindex/bitops"

// Fixed is an array of Length values, each Width bits wide, packed into a
// 64-bit word array. Bits beyond position Length*Width are unspecified.
type Fixed struct {
	words  []uint64
	length uint64
	width  uint8
}

// NewFixed allocates a zero-initialized Fixed vector of length values, each
// width bits wide. width must be in [1,64].
func NewFixed(length uint64, width uint) Fixed {
	if width == 0 || width > 64 {
		panic("packedvec: width must be in [1,64]")
	}

	nBits := length * uint64(width)
	return Fixed{
		words:  make([]uint64, bitops.WordsFor(nBits)),
		length: length,
		width:  uint8(width),
	}
}

// FixedFrom builds a Fixed vector from values, using width bits per value.
// width must be at least MinBits(max(values)).
func FixedFrom(values []uint64, width uint) Fixed {
	v := NewFixed(uint64(len(values)), width)

	for i, val := range values {
		v.Set(uint64(i), val)
	}

	return v
}

// Len returns the number of stored elements.
func (v *Fixed) Len() uint64 { return v.length }

// Width returns the configured per-element bit width.
func (v *Fixed) Width() uint { return uint(v.width) }

// Words exposes the backing word array.
func (v *Fixed) Words() []uint64 { return v.words }

// Set writes v & LowMask(width) at bit position i*width, spanning at most
// two words.
func (v *Fixed) Set(i, value uint64) {
	v.setAt(i*uint64(v.width), value, uint(v.width))
}

// SetWord overwrites an entire 64-bit word.
func (v *Fixed) SetWord(wordIndex int, value uint64) {
	v.words[wordIndex] = value
}

// Get reads width' bits starting at bit position i*width. The read width
// may differ from the stored element width: this supports patterns where a
// caller wrote with one width convention and reads with another at a known
// offset. No runtime check enforces matching widths; callers are expected to
// track their own layout.
func (v *Fixed) Get(i uint64, width uint) uint64 {
	return v.getAt(i*uint64(v.width), width)
}

// GetStored reads a single element at its natively stored width.
func (v *Fixed) GetStored(i uint64) uint64 {
	return v.Get(i, uint(v.width))
}

func (v *Fixed) setAt(bitPos uint64, value uint64, width uint) {
	value &= bitops.LowMask(width)
	wordIdx := bitPos / 64
	offset := uint(bitPos % 64)

	v.words[wordIdx] &= ^(bitops.LowMask(width) << offset)
	v.words[wordIdx] |= value << offset

	if offset+width > 64 {
		// Cross-boundary write: the high bits spill into the next word at
		// bit 0, shifted right by the number of bits already placed.
		spillBits := offset + width - 64
		low := width - spillBits
		v.words[wordIdx+1] &= ^bitops.LowMask(spillBits)
		v.words[wordIdx+1] |= value >> low
	}
}

func (v *Fixed) getAt(bitPos uint64, width uint) uint64 {
	wordIdx := bitPos / 64
	offset := uint(bitPos % 64)

	lo := (v.words[wordIdx] >> offset) & bitops.LowMask(width)

	if offset+width <= 64 {
		return lo
	}

	spillBits := offset + width - 64
	low := width - spillBits
	hi := v.words[wordIdx+1] & bitops.LowMask(spillBits)
	return lo | (hi << low)
}
