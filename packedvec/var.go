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

package packedvec

import "github.com/succinctfm/fmindex/bitops"

// Var is a packed bit stream holding raw bits with no fixed per-element
// width: the caller writes successive values with their own widths and
// tracks the boundaries externally to read them back.
type Var struct {
	words  []uint64
	bitLen uint64
}

// NewVar allocates an empty variable-width vector with room for at least
// capacityBits bits (grown automatically as needed).
func NewVar(capacityBits uint64) Var {
	return Var{words: make([]uint64, bitops.WordsFor(capacityBits))}
}

// BitLen returns the number of bits written so far.
func (v *Var) BitLen() uint64 { return v.bitLen }

// Words exposes the backing word array.
func (v *Var) Words() []uint64 { return v.words }

func (v *Var) ensure(bitPos uint64, width uint) {
	need := bitops.WordsFor(bitPos + uint64(width))

	if need > uint64(len(v.words)) {
		grown := make([]uint64, need*2)
		copy(grown, v.words)
		v.words = grown
	}
}

// Set writes the low `width` bits of value at the given bit position,
// spanning at most two words. This mirrors the same cross-word arithmetic
// as Fixed.Set, parameterized by an explicit width per call instead of a
// fixed per-vector width.
func (v *Var) Set(bitPos uint64, value uint64, width uint) {
	v.ensure(bitPos, width)
	value &= bitops.LowMask(width)
	wordIdx := bitPos / 64
	offset := uint(bitPos % 64)

	v.words[wordIdx] &= ^(bitops.LowMask(width) << offset)
	v.words[wordIdx] |= value << offset

	if offset+width > 64 {
		spillBits := offset + width - 64
		low := width - spillBits
		v.words[wordIdx+1] &= ^bitops.LowMask(spillBits)
		v.words[wordIdx+1] |= value >> low
	}
}

// Append writes value (width bits) at the current write cursor and
// advances it, returning the bit position the value was written at.
func (v *Var) Append(value uint64, width uint) uint64 {
	pos := v.bitLen
	v.Set(pos, value, width)
	v.bitLen += uint64(width)
	return pos
}

// Get reads `width` bits starting at bitPos.
func (v *Var) Get(bitPos uint64, width uint) uint64 {
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
