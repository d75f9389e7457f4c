package huffman

import "testing"

func TestSingleSymbolAlphabet(t *testing.T) {
	lengths, maxLen := ComputeCodeLengths([]uint64{42})

	if maxLen != 1 || len(lengths) != 1 || lengths[0] != 1 {
		t.Fatalf("single-symbol alphabet: got lengths=%v maxLen=%d", lengths, maxLen)
	}
}

func TestCodeLengthsAreMonotonicWithFrequency(t *testing.T) {
	// Symbol 0 is rarest, symbol 3 is most frequent: rarer symbols must get
	// code lengths >= more frequent ones.
	freqs := []uint64{1, 5, 20, 100}
	lengths, _ := ComputeCodeLengths(freqs)

	for i := 0; i < len(freqs)-1; i++ {
		if lengths[i] < lengths[i+1] {
			t.Fatalf("lengths not monotonic with frequency: %v for freqs %v", lengths, freqs)
		}
	}
}

func TestUniformFrequenciesGiveBalancedLengths(t *testing.T) {
	freqs := []uint64{10, 10, 10, 10}
	lengths, maxLen := ComputeCodeLengths(freqs)

	for i, l := range lengths {
		if l != 2 {
			t.Fatalf("symbol %d: length = %d, want 2 for uniform 4-way split", i, l)
		}
	}

	if maxLen != 2 {
		t.Fatalf("maxLen = %d, want 2", maxLen)
	}
}

func TestCodesArePrefixFree(t *testing.T) {
	freqs := []uint64{1, 1, 2, 3, 5, 8, 13, 21}
	lengths, _ := ComputeCodeLengths(freqs)
	codes := GenerateCanonicalCodes(lengths)

	for i := range codes {
		for j := range codes {
			if i == j {
				continue
			}

			if isPrefix(codes[i], codes[j]) {
				t.Fatalf("code for symbol %d (%+v) is a prefix of code for symbol %d (%+v)", i, codes[i], j, codes[j])
			}
		}
	}
}

func isPrefix(a, b Code) bool {
	if a.Length >= b.Length {
		return false
	}

	shift := b.Length - a.Length
	return (b.Bits >> shift) == a.Bits
}

func TestKraftInequalityIsTight(t *testing.T) {
	freqs := []uint64{4, 4, 4, 4, 4, 4, 4, 4}
	lengths, _ := ComputeCodeLengths(freqs)

	var sum float64

	for _, l := range lengths {
		sum += 1.0 / float64(uint64(1)<<l)
	}

	if sum > 1.0000001 || sum < 0.9999999 {
		t.Fatalf("Kraft sum = %f, want exactly 1", sum)
	}
}

func TestCanonicalCodesAssignedInLengthThenSymbolOrder(t *testing.T) {
	lengths := []byte{3, 1, 3, 2}
	codes := GenerateCanonicalCodes(lengths)

	// Symbol 1 (length 1) gets code 0.
	if codes[1].Bits != 0 || codes[1].Length != 1 {
		t.Fatalf("symbol 1: got %+v", codes[1])
	}

	// Symbol 3 (length 2) comes next: code 0b10 once shifted for length 2.
	if codes[3].Length != 2 {
		t.Fatalf("symbol 3: got %+v", codes[3])
	}

	// Symbols 0 and 2 share length 3 and must receive consecutive codes in
	// symbol-id order.
	if codes[0].Length != 3 || codes[2].Length != 3 {
		t.Fatalf("symbols 0,2: got %+v %+v", codes[0], codes[2])
	}

	if codes[2].Bits != codes[0].Bits+1 {
		t.Fatalf("expected consecutive codes for symbols 0 then 2, got %+v %+v", codes[0], codes[2])
	}
}
