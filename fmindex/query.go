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

// Count returns the number of occurrences of pattern in the indexed text.
func (f *FmIndex) Count(pattern []int32) uint64 {
	return f.CountSlice(pattern, 0, len(pattern))
}

// CountSlice is Count restricted to pattern[offset : offset+length].
func (f *FmIndex) CountSlice(pattern []int32, offset, length int) uint64 {
	lo, hi, ok := f.backwardSearch(pattern, offset, length)
	if !ok || hi <= lo {
		return 0
	}

	return hi - lo
}

// backwardSearch runs backward search over pattern[offset:offset+length],
// returning the BWT interval [lo,hi) of suffixes starting with that
// pattern. ok is false if a pattern symbol is not in the index's alphabet.
func (f *FmIndex) backwardSearch(pattern []int32, offset, length int) (lo, hi uint64, ok bool) {
	if length <= 0 {
		return 0, 0, true
	}

	i := offset + length - 1

	c, known := f.alphabet.Encode(pattern[i])
	if !known {
		return 0, 0, false
	}

	lo = f.cumulativeCounts[c]
	hi = f.cumulativeCounts[c+1]

	for lo < hi && i > offset {
		i--

		c, known = f.alphabet.Encode(pattern[i])
		if !known {
			return 0, 0, false
		}

		lo = f.cumulativeCounts[c] + f.bwt.Rank(int64(lo), c)
		hi = f.cumulativeCounts[c] + f.bwt.Rank(int64(hi), c)
	}

	return lo, hi, true
}

// Locate writes up to len(dest) (or maxMatches, if non-negative and
// smaller) occurrence offsets of pattern[offset:offset+length] into dest,
// and returns the number written. Offsets come out in BWT-interval order,
// not sorted by text position; callers that need sorted offsets sort.
func (f *FmIndex) Locate(pattern []int32, offset, length int, dest []uint32, maxMatches int32) uint32 {
	lo, hi, ok := f.backwardSearch(pattern, offset, length)
	if !ok || hi <= lo {
		return 0
	}

	limit := len(dest)
	if maxMatches >= 0 && int(maxMatches) < limit {
		limit = int(maxMatches)
	}

	count := 0

	for j := lo + 1; j <= hi && count < limit; j++ {
		k := j
		dist := uint64(0)

		for {
			bit, _ := f.sampledBitmap.Access(int64(k - 1))
			if bit == 1 {
				break
			}

			_, c := f.bwt.InverseSelect(k - 1)
			k = f.cumulativeCounts[c] + f.bwt.Rank(int64(k), c)
			dist++
		}

		rank1 := f.sampledBitmap.Rank1(int64(k))
		pos := f.sampledSuffixes.GetStored(rank1-1) + dist
		dest[count] = uint32(pos)
		count++
	}

	return uint32(count)
}
