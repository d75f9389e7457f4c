package bitops

import "testing"

func TestLowMask(t *testing.T) {
	if LowMask(0) != 0 {
		t.Errorf("LowMask(0) = %d, want 0", LowMask(0))
	}

	if LowMask(4) != 0xF {
		t.Errorf("LowMask(4) = %d, want 15", LowMask(4))
	}

	if LowMask(64) != ^uint64(0) {
		t.Errorf("LowMask(64) = %d, want all-ones", LowMask(64))
	}
}

func TestHighMask(t *testing.T) {
	if HighMask(0) != ^uint64(0) {
		t.Errorf("HighMask(0) = %d, want all-ones", HighMask(0))
	}

	if HighMask(64) != 0 {
		t.Errorf("HighMask(64) = %d, want 0", HighMask(64))
	}

	if HighMask(60) != LowMask(64)&^LowMask(60) {
		t.Errorf("HighMask(60) inconsistent with LowMask")
	}
}

func TestMinBits(t *testing.T) {
	cases := []struct {
		v    uint64
		want uint
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{1 << 16, 17},
		{(1 << 16) - 1, 16},
	}

	for _, c := range cases {
		if got := MinBits(c.v); got != c.want {
			t.Errorf("MinBits(%d) = %d, want %d", c.v, got, c.want)
		}
	}

	for k := uint(0); k < 63; k++ {
		v := uint64(1) << k
		if got := MinBits(v); got != k+1 {
			t.Errorf("MinBits(2^%d) = %d, want %d", k, got, k+1)
		}
	}
}

func TestLog2Floor(t *testing.T) {
	for k := uint(0); k < 64; k++ {
		v := uint64(1) << k
		if got := Log2Floor(v); got != k {
			t.Errorf("Log2Floor(2^%d) = %d, want %d", k, got, k)
		}
	}

	if Log2Floor(6) != 2 {
		t.Errorf("Log2Floor(6) = %d, want 2", Log2Floor(6))
	}
}

func TestWordsFor(t *testing.T) {
	cases := []struct {
		n    uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{64, 1},
		{65, 2},
		{128, 2},
	}

	for _, c := range cases {
		if got := WordsFor(c.n); got != c.want {
			t.Errorf("WordsFor(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
