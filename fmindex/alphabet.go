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

// maxSymbol is the largest code point this index accepts: a symbol is a
// non-negative integer <= 32,767.
const maxSymbol = 32767

// AlphabetMap is the bijection between user code points and dense
// symbol ids {0,1,...,sigma-1}, fixed at build time and stored with the
// index. Id 0 is always the sentinel; it is never assigned to a user code
// point.
type AlphabetMap struct {
	toID   map[int32]int32
	toRune []int32 // toRune[id] is the user code point for id, id 0 unused
}

// buildAlphabetMap scans text in order of first appearance and assigns
// dense ids 1..sigma-1 to distinct code points, reserving id 0 for the
// sentinel. A 0 in the text is assigned its own id like any other code
// point: ids start at 1 regardless, so a user's 0 never collides with the
// sentinel id.
func buildAlphabetMap(text []int32) AlphabetMap {
	toID := make(map[int32]int32, len(text))
	toRune := []int32{0} // placeholder for sentinel slot

	for _, r := range text {
		if _, ok := toID[r]; ok {
			continue
		}

		toID[r] = int32(len(toRune))
		toRune = append(toRune, r)
	}

	return AlphabetMap{toID: toID, toRune: toRune}
}

// Sigma returns the alphabet size (sentinel included).
func (m AlphabetMap) Sigma() int { return len(m.toRune) }

// Encode returns the dense id for user code point r, or ok=false if r was
// never seen at build time.
func (m AlphabetMap) Encode(r int32) (int32, bool) {
	id, ok := m.toID[r]
	return id, ok
}

// Decode returns the user code point stored for dense id.
func (m AlphabetMap) Decode(id int32) int32 {
	return m.toRune[id]
}
