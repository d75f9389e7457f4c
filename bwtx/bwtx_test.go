package bwtx

import (
	"sort"
	"testing"
)

func TestBananaBWTShape(t *testing.T) {
	// "BANANA" with the sentinel and ids in lexicographic order
	// (sentinel=0, A=1, B=2, N=3), so the transform must come out as
	// "ANNB<sentinel>AA".
	mapped := []int32{2, 1, 3, 1, 3, 1, 0}
	b := New(mapped, 4)

	want := []int32{1, 3, 3, 2, 0, 1, 1}

	for i, v := range b.Sequence() {
		if v != want[i] {
			t.Fatalf("bwt = %v, want %v", b.Sequence(), want)
		}
	}

	assertPermutation(t, mapped, b.Sequence())

	// The transform must concentrate equal symbols: fewer runs in the BWT
	// than in the input, so |T|/r strictly increases.
	if bwtRuns, inRuns := countRuns(b.Sequence()), countRuns(mapped); bwtRuns >= inRuns {
		t.Fatalf("bwt has %d runs, input has %d; expected strictly fewer", bwtRuns, inRuns)
	}
}

func countRuns(seq []int32) int {
	if len(seq) == 0 {
		return 0
	}

	runs := 1

	for i := 1; i < len(seq); i++ {
		if seq[i] != seq[i-1] {
			runs++
		}
	}

	return runs
}

func TestBWTIsPermutationForRandomText(t *testing.T) {
	cases := [][]int32{
		{1, 1, 2, 1, 2, 2, 1, 0},
		{5, 4, 3, 2, 1, 0},
		{1, 0},
	}

	for _, mapped := range cases {
		maxSym := int32(0)

		for _, v := range mapped {
			if v > maxSym {
				maxSym = v
			}
		}

		b := New(mapped, int(maxSym)+1)
		assertPermutation(t, mapped, b.Sequence())
	}
}

func assertPermutation(t *testing.T, want, got []int32) {
	t.Helper()

	if len(want) != len(got) {
		t.Fatalf("length mismatch: %d vs %d", len(want), len(got))
	}

	a := append([]int32(nil), want...)
	b := append([]int32(nil), got...)
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bwt is not a permutation of the input: sorted mismatch at %d (%d vs %d)", i, a[i], b[i])
		}
	}
}

func TestDeriveDirectly(t *testing.T) {
	mapped := []int32{1, 2, 3, 2, 3, 2, 0}
	sa := []int32{6, 5, 3, 1, 0, 4, 2}
	bwt := Derive(mapped, sa)
	assertPermutation(t, mapped, bwt)
}
