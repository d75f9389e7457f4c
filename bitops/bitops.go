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

// Package bitops provides the bit-width arithmetic shared by the packed
// vectors, the RRR bit-vector and the wavelet tree: masks with all low or
// high bits set, and the minimum number of bits needed to hold a value.
package bitops

// deBruijn32 maps the top five bits of x*0x07C4ACDD, for x of the form
// 2^(k+1)-1, back to k.
var deBruijn32 = [32]uint{
	0, 9, 1, 10, 13, 21, 2, 29,
	11, 14, 16, 18, 22, 25, 3, 30,
	8, 12, 20, 28, 15, 17, 24, 7,
	19, 27, 23, 6, 26, 5, 4, 31,
}

// LowMask returns the value with the low k bits set (k in [0,64]).
// LowMask(64) is all-ones since 1<<64 overflows a uint64.
func LowMask(k uint) uint64 {
	if k >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << k) - 1
}

// HighMask returns the complement of LowMask(k): the value with the high
// (64-k) bits set.
func HighMask(k uint) uint64 {
	return ^LowMask(k)
}

// MinBits returns the number of bits needed to represent v: 1 for v=0,
// floor(log2(v))+1 otherwise. MinBits(2^k) == k+1.
func MinBits(v uint64) uint {
	if v == 0 {
		return 1
	}

	return uint(Log2Floor(v)) + 1
}

// Log2Floor returns floor(log2(x)) for x > 0 via cascade-OR followed by a
// De Bruijn table lookup.
func Log2Floor(x uint64) uint {
	if x == 0 {
		return 0
	}

	if x >= 1<<32 {
		return 32 + log2Floor32(uint32(x>>32))
	}

	return log2Floor32(uint32(x))
}

func log2Floor32(x uint32) uint {
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16

	// x now has every bit at and below the highest set bit of the original
	// x set, i.e. x = 2^(k+1)-1; the multiply gives each of these 32 values
	// a distinct top-five-bit pattern, which the table maps back to k.
	return deBruijn32[(uint32(x)*0x07C4ACDD)>>27]
}

// WordsFor returns the number of 64-bit words needed to hold n bits.
func WordsFor(nBits uint64) uint64 {
	return (nBits + 63) / 64
}
