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

// Package suffixarray implements SA-IS (Nong, Zhang & Chen), a linear-time
// induced-sorting suffix array construction over an integer alphabet. It is
// the one external primitive the FM-Index stack treats as a black box:
// callers only need Build.
package suffixarray

// Build computes the suffix array of the sentinel-terminated integer
// sequence mapped, whose symbols lie in [0,alphabetSize). mapped must end
// with the sentinel (the unique minimum symbol) for the array to be
// well-defined; Build does not itself enforce that.
//
// The returned slice has the same length as mapped; sa[i] is the starting
// offset of the i-th suffix in lexicographic order.
func Build(mapped []int32, alphabetSize int) []int32 {
	n := len(mapped)
	seq := make([]int, n)

	for i, v := range mapped {
		seq[i] = int(v)
	}

	sa := make([]int, n)
	suffixSort(seq, sa, alphabetSize)

	out := make([]int32, n)
	for i, v := range sa {
		out[i] = int32(v)
	}

	return out
}

// unset marks a suffix-array slot not yet filled by induction.
const unset = -1

// suffixSort fills sa with the suffix array of seq over [0,sigma).
// len(sa) must equal len(seq), and seq must end with its unique minimum
// symbol so every recursion level keeps a terminating sentinel.
func suffixSort(seq, sa []int, sigma int) {
	n := len(seq)

	if n == 1 {
		sa[0] = 0
		return
	}

	isS := classify(seq)
	counts := histogram(seq, sigma)

	// First round: drop the LMS suffixes at their bucket tails in text
	// order (any order sorts their substrings) and induce the rest.
	for i := range sa {
		sa[i] = unset
	}

	tails := bucketTails(counts)

	for i := 1; i < n; i++ {
		if isS[i] && !isS[i-1] {
			tails[seq[i]]--
			sa[tails[seq[i]]] = i
		}
	}

	induce(seq, sa, isS, counts)

	// Name the LMS substrings in their induced order; equal neighbours
	// share a name, so the names order LMS suffixes by substring.
	names := make([]int, n)
	lastLMS := unset
	next := 0

	for _, j := range sa {
		if j <= 0 || !isS[j] || isS[j-1] {
			continue
		}

		if lastLMS != unset && !sameLMSSubstring(seq, isS, lastLMS, j) {
			next++
		}

		names[j] = next
		lastLMS = j
	}

	// Reduce: the names in text order form a shorter sequence whose
	// suffix order equals the order of the LMS suffixes.
	var reduced, lmsAt []int

	for i := 1; i < n; i++ {
		if isS[i] && !isS[i-1] {
			reduced = append(reduced, names[i])
			lmsAt = append(lmsAt, i)
		}
	}

	m := len(reduced)
	reducedSA := make([]int, m)

	if next+1 == m {
		// Every name is unique: the reduced suffix array is just the
		// inverse permutation of the names.
		for i, name := range reduced {
			reducedSA[name] = i
		}
	} else {
		suffixSort(reduced, reducedSA, next+1)
	}

	// Final round: re-seed the LMS suffixes in their exact order and
	// induce once more.
	for i := range sa {
		sa[i] = unset
	}

	tails = bucketTails(counts)

	for i := m - 1; i >= 0; i-- {
		j := lmsAt[reducedSA[i]]
		tails[seq[j]]--
		sa[tails[seq[j]]] = j
	}

	induce(seq, sa, isS, counts)
}

// classify marks each suffix S-type (true) or L-type (false): the sentinel
// suffix is S, and suffix i is S when its first symbol is smaller than its
// successor's, or equal with an S-type successor.
func classify(seq []int) []bool {
	n := len(seq)
	isS := make([]bool, n)
	isS[n-1] = true

	for i := n - 2; i >= 0; i-- {
		isS[i] = seq[i] < seq[i+1] || (seq[i] == seq[i+1] && isS[i+1])
	}

	return isS
}

func histogram(seq []int, sigma int) []int {
	counts := make([]int, sigma)

	for _, c := range seq {
		counts[c]++
	}

	return counts
}

func bucketHeads(counts []int) []int {
	heads := make([]int, len(counts))
	sum := 0

	for c, v := range counts {
		heads[c] = sum
		sum += v
	}

	return heads
}

func bucketTails(counts []int) []int {
	tails := make([]int, len(counts))
	sum := 0

	for c, v := range counts {
		sum += v
		tails[c] = sum
	}

	return tails
}

// induce completes sa from its seeded LMS entries: a left-to-right sweep
// places every L-type predecessor at its bucket head, then a right-to-left
// sweep places every S-type predecessor at its bucket tail.
func induce(seq, sa []int, isS []bool, counts []int) {
	heads := bucketHeads(counts)

	for i := 0; i < len(sa); i++ {
		j := sa[i]

		if j <= 0 {
			continue
		}

		if !isS[j-1] {
			sa[heads[seq[j-1]]] = j - 1
			heads[seq[j-1]]++
		}
	}

	tails := bucketTails(counts)

	for i := len(sa) - 1; i >= 0; i-- {
		j := sa[i]

		if j <= 0 {
			continue
		}

		if isS[j-1] {
			tails[seq[j-1]]--
			sa[tails[seq[j-1]]] = j - 1
		}
	}
}

// sameLMSSubstring reports whether the LMS substrings starting at a and b
// match in both symbols and types, terminator included. The sentinel is
// unique, so the walk cannot run past the end of seq.
func sameLMSSubstring(seq []int, isS []bool, a, b int) bool {
	n := len(seq)

	for i := 0; ; i++ {
		if a+i == n-1 || b+i == n-1 {
			return false // only the sentinel substring reaches the end
		}

		if seq[a+i] != seq[b+i] || isS[a+i] != isS[b+i] {
			return false
		}

		if i > 0 && isS[a+i] && !isS[a+i-1] {
			return true
		}
	}
}
