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

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"

	"github.com/succinctfm/fmindex/fmerr"
)

func toSymbols(s string) []int32 {
	out := make([]int32, len(s))
	for i, r := range []byte(s) {
		out[i] = int32(r)
	}
	return out
}

func naiveCount(text, pattern string) int {
	if pattern == "" {
		return 0
	}

	count := 0
	for i := 0; i+len(pattern) <= len(text); i++ {
		if text[i:i+len(pattern)] == pattern {
			count++
		}
	}
	return count
}

func naiveLocate(text, pattern string) []int {
	out := []int{}
	for i := 0; i+len(pattern) <= len(text); i++ {
		if text[i:i+len(pattern)] == pattern {
			out = append(out, i)
		}
	}
	return out
}

// TestMultiSentinelBackwardSearch indexes a text containing NUL bytes:
// they count as ordinary symbols, distinct from the appended sentinel.
func TestMultiSentinelBackwardSearch(t *testing.T) {
	text := "This \x00is a \x00long string\x00"
	idx, err := Build(toSymbols(text), 4, true)
	require.NoError(t, err)

	require.Equal(t, uint64(2), idx.Count(toSymbols("is")))
	require.Equal(t, uint64(3), idx.Count(toSymbols("\x00")))
}

// TestLocateWithCap locates a pattern with more occurrences than the cap
// over a synthetic log: exactly maxMatches distinct, correct positions
// come back.
func TestLocateWithCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 150; i++ {
		b.WriteString("081109 203533 44 INFO root: some log line\n")
	}
	text := b.String()

	idx, err := Build(toSymbols(text), 32, true)
	require.NoError(t, err)

	dest := make([]uint32, 100)
	got := idx.Locate(toSymbols("INFO"), 0, len("INFO"), dest, 100)
	require.Equal(t, uint32(100), got)

	seen := make(map[uint32]bool, got)
	for _, pos := range dest[:got] {
		require.False(t, seen[pos], "duplicate position %d", pos)
		seen[pos] = true
		require.Equal(t, "INFO", text[pos:pos+4])
	}
}

// TestExtractUntilBoundaryNewline recovers whole log lines around a
// position, newline excluded, then the following line from just past the
// boundary.
func TestExtractUntilBoundaryNewline(t *testing.T) {
	line1 := "081109 203533 44 INFO root: this file should have 2061 unique characters, including 3 and 4 byte UTF8 encoded"
	line2 := "081109 203534 45 INFO root: a second line follows"
	text := line1 + "\n" + line2 + "\n"

	idx, err := Build(toSymbols(text), 16, true)
	require.NoError(t, err)

	dest := make([]int32, len(text))
	n, err := idx.ExtractUntilBoundary(5, dest, 0, int32('\n'))
	require.NoError(t, err)
	require.Equal(t, line1, symbolsToString(dest[:n]))

	secondStart := uint64(len(line1) + 1)
	n, err = idx.ExtractUntilBoundary(secondStart, dest, 0, int32('\n'))
	require.NoError(t, err)
	require.Equal(t, line2, symbolsToString(dest[:n]))
}

func symbolsToString(syms []int32) string {
	b := make([]byte, len(syms))
	for i, s := range syms {
		b[i] = byte(s)
	}
	return string(b)
}

// TestRoundTripExtract is the §8 "Round-trip" invariant: Extract(a,b)
// returns exactly T[a..b] for every 0<=a<=b<=|T|.
func TestRoundTripExtract(t *testing.T) {
	text := "aloha what a string this is string is eh"
	idx, err := Build(toSymbols(text), 4, true)
	require.NoError(t, err)

	for a := 0; a <= len(text); a++ {
		for b := a; b <= len(text); b++ {
			dest := make([]int32, b-a)
			n, err := idx.Extract(uint64(a), uint64(b), dest, 0)
			require.NoError(t, err)
			require.Equal(t, uint32(b-a), n)
			require.Equal(t, text[a:b], symbolsToString(dest))
		}
	}
}

// TestCountAndLocateAgainstNaive is the §8 "occurs k times" invariant.
func TestCountAndLocateAgainstNaive(t *testing.T) {
	text := "aloha what a string this is string is eh"
	idx, err := Build(toSymbols(text), 4, true)
	require.NoError(t, err)

	patterns := []string{"a", "is", "string", "z", "what a string", ""}

	for _, p := range patterns {
		wantCount := naiveCount(text, p)
		gotCount := idx.Count(toSymbols(p))
		require.Equal(t, uint64(wantCount), gotCount, "pattern %q", p)

		if p == "" {
			continue
		}

		want := naiveLocate(text, p)
		dest := make([]uint32, len(want)+5)
		got := idx.Locate(toSymbols(p), 0, len(p), dest, -1)
		require.Equal(t, uint32(len(want)), got, "pattern %q", p)

		gotPositions := make([]int, got)
		for i, v := range dest[:got] {
			gotPositions[i] = int(v)
		}
		sort.Ints(gotPositions)
		sort.Ints(want)
		require.Equal(t, want, gotPositions, "pattern %q", p)
	}
}

func TestExtractNotEnabled(t *testing.T) {
	idx, err := Build(toSymbols("hello world"), 4, false)
	require.NoError(t, err)

	_, err = idx.Extract(0, 5, make([]int32, 5), 0)
	require.True(t, errors.Is(err, fmerr.ErrNotEnabled))

	_, err = idx.ExtractUntilBoundary(0, make([]int32, 5), 0, ' ')
	require.True(t, errors.Is(err, fmerr.ErrNotEnabled))
}

func TestExtractOutOfRangeAndDestTooSmall(t *testing.T) {
	idx, err := Build(toSymbols("hello world"), 4, true)
	require.NoError(t, err)

	_, err = idx.Extract(0, uint64(len("hello world"))+1, make([]int32, 20), 0)
	require.True(t, errors.Is(err, fmerr.ErrOutOfRange))

	_, err = idx.Extract(0, 5, make([]int32, 2), 0)
	require.True(t, errors.Is(err, fmerr.ErrDestTooSmall))
}

func TestBoundaryNotInAlphabet(t *testing.T) {
	idx, err := Build(toSymbols("hello world"), 4, true)
	require.NoError(t, err)

	_, err = idx.ExtractUntilBoundary(0, make([]int32, 20), 0, int32('\n'))
	require.True(t, errors.Is(err, fmerr.ErrBoundaryNotInAlphabet))
}

func TestLocateNonOccurringPatternReturnsZero(t *testing.T) {
	idx, err := Build(toSymbols("hello world"), 4, true)
	require.NoError(t, err)

	dest := []uint32{99, 99}
	got := idx.Locate(toSymbols("zzz"), 0, 3, dest, -1)
	require.Equal(t, uint32(0), got)
	require.Equal(t, []uint32{99, 99}, dest)
}

func TestBuildEmptyInput(t *testing.T) {
	_, err := Build(nil, 4, true)
	require.True(t, errors.Is(err, fmerr.ErrEmptyInput))
}

// TestUTF8MultiByteSymbols indexes mixed Latin and CJK code points (all
// within the 32,767 symbol range, encoded as 2- and 3-byte UTF-8) and checks
// Count for two multi-byte runes, plus one that never occurs.
func TestUTF8MultiByteSymbols(t *testing.T) {
	text := "Chodzą jeże koło wieży, 操據支救数料新方旅日旦时映時智更最月有服未本材来東 spotkał je tam pewien Jerzyk."
	symbols := make([]int32, 0, len(text))

	for _, r := range text {
		symbols = append(symbols, int32(r))
	}

	idx, err := Build(symbols, 8, true)
	require.NoError(t, err)

	require.Equal(t, uint64(strings.Count(text, "ł")), idx.Count([]int32{int32('ł')}))
	require.Equal(t, uint64(strings.Count(text, "最")), idx.Count([]int32{int32('最')}))
	require.Equal(t, uint64(0), idx.Count([]int32{int32('人')}))
}

func TestConvertUTF8ToSymbols(t *testing.T) {
	dest := make([]int32, 10)
	n, err := ConvertUTF8ToSymbols([]byte("héllo"), dest)
	require.NoError(t, err)
	require.Equal(t, uint32(5), n)
	require.Equal(t, int32('h'), dest[0])
	require.Equal(t, int32('é'), dest[1])
}

func TestConvertUTF8ToSymbolsOverflowsAlphabet(t *testing.T) {
	// U+1F600 GRINNING FACE exceeds 32,767.
	dest := make([]int32, 4)
	_, err := ConvertUTF8ToSymbols([]byte("😀"), dest)
	require.True(t, errors.Is(err, fmerr.ErrOverflowsAlphabet))
}

func TestSerializationRoundTrip(t *testing.T) {
	text := "aloha what a string this is string is eh"
	idx, err := Build(toSymbols(text), 4, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = idx.WriteTo(&buf)
	require.NoError(t, err)

	restored, err := ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Equal(t, idx.InputLength(), restored.InputLength())
	require.Equal(t, idx.AlphabetSize(), restored.AlphabetSize())
	require.Equal(t, idx.Count(toSymbols("string")), restored.Count(toSymbols("string")))

	dest := make([]int32, len(text))
	n, err := restored.Extract(0, uint64(len(text)), dest, 0)
	require.NoError(t, err)
	require.Equal(t, text, symbolsToString(dest[:n]))
}

// TestSerializationVersionMismatch builds a frame with a bumped version
// byte and a checksum recomputed over that changed body, so the failure
// path exercised is genuinely the version check, not checksum corruption.
func TestSerializationVersionMismatch(t *testing.T) {
	idx, err := Build(toSymbols("hello world"), 4, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = idx.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.Bytes()
	body := append([]byte(nil), raw[:len(raw)-8]...)
	body[0] = body[0] + 1 // bump the serialVersion byte

	sum := xxhash.Sum64(body)
	var sumBytes [8]byte
	binary.BigEndian.PutUint64(sumBytes[:], sum)

	reframed := append(body, sumBytes[:]...)

	_, err = ReadFrom(bytes.NewReader(reframed))
	require.True(t, errors.Is(err, fmerr.ErrVersionMismatch))
}
