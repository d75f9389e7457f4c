package packedvec

import (
	"math/rand"
	"testing"
)

func TestFixedSetGetRoundTrip(t *testing.T) {
	v := NewFixed(100, 13)

	want := make([]uint64, 100)
	rng := rand.New(rand.NewSource(1))

	for i := range want {
		want[i] = uint64(rng.Intn(1 << 13))
		v.Set(uint64(i), want[i])
	}

	for i, w := range want {
		if got := v.GetStored(uint64(i)); got != w {
			t.Fatalf("index %d: got %d, want %d", i, got, w)
		}
	}
}

func TestFixedCrossWordBoundary(t *testing.T) {
	// width=5 means element 12 starts at bit 60, crossing into the next word.
	v := NewFixed(20, 5)

	for i := uint64(0); i < 20; i++ {
		v.Set(i, (i*7+3)%32)
	}

	for i := uint64(0); i < 20; i++ {
		want := (i*7 + 3) % 32
		if got := v.GetStored(i); got != want {
			t.Fatalf("index %d: got %d, want %d", i, got, want)
		}
	}
}

func TestFixedWidth64IsAllOnesMask(t *testing.T) {
	v := NewFixed(4, 64)
	v.Set(0, ^uint64(0))
	v.Set(1, 0x0123456789ABCDEF)

	if got := v.GetStored(0); got != ^uint64(0) {
		t.Fatalf("got %x, want all-ones", got)
	}

	if got := v.GetStored(1); got != 0x0123456789ABCDEF {
		t.Fatalf("got %x, want 0x0123456789ABCDEF", got)
	}
}

func TestFixedWriteValueWiderThanWidthIsMasked(t *testing.T) {
	v := NewFixed(4, 4)
	v.Set(0, 0xFF) // only the low 4 bits should stick

	if got := v.GetStored(0); got != 0xF {
		t.Fatalf("got %d, want 15", got)
	}
}

func TestFixedLargeBitPositions(t *testing.T) {
	// Exercise a bit offset in the tens-of-millions to catch int32-cast bugs
	// in the wordIdx/offset arithmetic; a literal 2^31-bit allocation would
	// cost hundreds of MB per test run, so this scales down while still
	// landing well outside any 16/32-bit index range.
	const n = uint64(1) << 21 // * width 16 => ~33M bits, ~4MB backing array
	v := NewFixed(n, 16)
	idx := n - 1
	v.Set(idx, 0xBEEF)

	if got := v.GetStored(idx); got != 0xBEEF {
		t.Fatalf("got %x, want 0xBEEF", got)
	}
}

func TestFixedGetWithDifferentReadWidth(t *testing.T) {
	// Writes at fixed-width offsets, but reads with an explicit width
	// supplied per call; Get trusts the caller's width.
	v := NewFixed(10, 8)

	for i := uint64(0); i < 10; i++ {
		v.Set(i, i)
	}

	// Reading with width=8 at element offsets i*8 should match GetStored.
	for i := uint64(0); i < 10; i++ {
		if got := v.Get(i, 8); got != i {
			t.Fatalf("Get(%d,8) = %d, want %d", i, got, i)
		}
	}

	// Reading with width=16 at offset i*8 spans elements i and i+1, the
	// latter landing in the high byte.
	for i := uint64(0); i < 9; i++ {
		want := i | (i+1)<<8
		if got := v.Get(i, 16); got != want {
			t.Fatalf("Get(%d,16) = %d, want %d", i, got, want)
		}
	}
}

func TestVarAppendAndGet(t *testing.T) {
	v := NewVar(0)

	type entry struct {
		value uint64
		width uint
		pos   uint64
	}

	widths := []uint{1, 3, 7, 13, 31, 64, 2, 5}
	entries := make([]entry, 0, len(widths))
	rng := rand.New(rand.NewSource(42))

	for _, w := range widths {
		val := uint64(rng.Int63()) & ((uint64(1) << (w % 64)) - 1)

		if w == 64 {
			val = rng.Uint64()
		}

		pos := v.Append(val, w)
		entries = append(entries, entry{val, w, pos})
	}

	for _, e := range entries {
		if got := v.Get(e.pos, e.width); got != e.value {
			t.Fatalf("pos %d width %d: got %d, want %d", e.pos, e.width, got, e.value)
		}
	}
}

func TestVarGrowsAcrossWords(t *testing.T) {
	v := NewVar(64)

	for i := 0; i < 1000; i++ {
		v.Append(uint64(i%17), 5)
	}

	for i := 0; i < 1000; i++ {
		if got := v.Get(uint64(i*5), 5); got != uint64(i%17) {
			t.Fatalf("entry %d: got %d, want %d", i, got, i%17)
		}
	}
}
