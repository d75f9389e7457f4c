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

// Package huffman computes canonical Huffman code lengths and codes for a
// per-block local alphabet, using the Moffat-Katajainen in-place
// minimum-redundancy algorithm instead of an explicit tree. Alphabet size
// is unbounded; a wavelet tree block's local alphabet is rarely 256
// symbols.
package huffman

import "golang.org/x/exp/slices"

// ComputeCodeLengths assigns a code length to each local symbol id
// 0..len(freqs)-1 from its frequency, breaking ties deterministically by
// ascending symbol id (freqs must all be > 0; absent symbols are not
// passed in). Returns the per-symbol lengths and the maximum length
// assigned.
//
// A single-symbol alphabet gets length 1 with no real tree, matching the
// "tree height 0" case handled by the caller.
func ComputeCodeLengths(freqs []uint64) ([]byte, int) {
	n := len(freqs)

	if n == 0 {
		return nil, 0
	}

	if n == 1 {
		return []byte{1}, 1
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	// Deterministic tie-break: ascending frequency, then ascending symbol id.
	slices.SortFunc(order, func(a, b int) int {
		fa, fb := freqs[a], freqs[b]
		if fa != fb {
			if fa < fb {
				return -1
			}
			return 1
		}
		return a - b
	})

	sorted := make([]int, n)
	for i, s := range order {
		sorted[i] = int(freqs[s])
	}

	// See "In-Place Calculation of Minimum-Redundancy Codes" by Alistair
	// Moffat & Jyrki Katajainen.
	computeInPlaceSizesPhase1(sorted)
	maxLen := computeInPlaceSizesPhase2(sorted)

	lengths := make([]byte, n)

	for i, s := range order {
		lengths[s] = byte(sorted[i])
	}

	return lengths, maxLen
}

func computeInPlaceSizesPhase1(data []int) {
	n := len(data)

	for s, r, t := 0, 0, 0; t < n-1; t++ {
		sum := 0

		for i := 0; i < 2; i++ {
			if s >= n || (r < t && data[r] < data[s]) {
				sum += data[r]
				data[r] = t
				r++
				continue
			}

			sum += data[s]

			if s > t {
				data[s] = 0
			}

			s++
		}

		data[t] = sum
	}
}

// computeInPlaceSizesPhase2 requires len(data) >= 2.
func computeInPlaceSizesPhase2(data []int) int {
	levelTop := len(data) - 2 // root
	depth := 1
	i := len(data)
	totalNodesAtLevel := 2

	for i > 0 {
		k := levelTop

		for k > 0 && data[k-1] >= levelTop {
			k--
		}

		internalNodesAtLevel := levelTop - k
		leavesAtLevel := totalNodesAtLevel - internalNodesAtLevel

		for j := 0; j < leavesAtLevel; j++ {
			i--
			data[i] = depth
		}

		totalNodesAtLevel = internalNodesAtLevel << 1
		levelTop = k
		depth++
	}

	return depth - 1
}

// Code is a canonical Huffman codeword: the low Length bits of Bits, read
// MSB-first, form the code for the symbol at this index.
type Code struct {
	Length uint8
	Bits   uint32
}

// GenerateCanonicalCodes assigns canonical codes from code lengths: sort
// symbols by (length asc, symbol-id asc), then emit 0,1,2,... incrementing
// and left-shifting by the difference between consecutive lengths.
func GenerateCanonicalCodes(lengths []byte) []Code {
	n := len(lengths)
	codes := make([]Code, n)

	if n == 0 {
		return codes
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	slices.SortFunc(order, func(a, b int) int {
		la, lb := lengths[a], lengths[b]
		if la != lb {
			return int(la) - int(lb)
		}
		return a - b
	})

	code := uint32(0)
	curLen := lengths[order[0]]

	for _, s := range order {
		if lengths[s] > curLen {
			code <<= lengths[s] - curLen
			curLen = lengths[s]
		}

		codes[s] = Code{Length: lengths[s], Bits: code}
		code++
	}

	return codes
}
