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
	"fmt"

	"github.com/succinctfm/fmindex/fmerr"
)

// rightScanBatch is the number of text positions the rightward boundary
// scan extracts per round-trip through the extract core. Each batch starts
// its own walk from the positions samples, so the batch size does not
// depend on the sample rate.
const rightScanBatch = 4

// backStepper walks the BWT backward from a sampled anchor, one LF-step
// per emitted symbol, the shared core of Extract and the boundary scans.
// The anchor lies at or past the requested stop position, so the first
// skipUntilNextSampled symbols are consumed without being emitted.
type backStepper struct {
	f                    *FmIndex
	samplePosition       uint64
	skipUntilNextSampled uint64
	distance             uint64
}

func (f *FmIndex) newBackStepper(stop uint64) *backStepper {
	samplePosition := f.positions.GetStored(stop/uint64(f.sampleRate)+1) + 1

	skip := uint64(f.sampleRate) - (stop % uint64(f.sampleRate))
	if stop/uint64(f.sampleRate) == f.positions.Len()-2 {
		skip = f.n + 1 - stop
	}

	return &backStepper{f: f, samplePosition: samplePosition, skipUntilNextSampled: skip}
}

// next returns the symbol immediately before the previously returned one
// (or before stop, on the first call).
func (s *backStepper) next() int32 {
	for {
		_, c := s.f.bwt.InverseSelect(s.samplePosition - 1)
		s.samplePosition = s.f.cumulativeCounts[c] + s.f.bwt.Rank(int64(s.samplePosition), c)

		emit := s.distance >= s.skipUntilNextSampled
		s.distance++

		if emit {
			return c
		}
	}
}

// Extract writes text[start:stop) into dest[destOffset:], returning the
// number of symbols written.
func (f *FmIndex) Extract(start, stop uint64, dest []int32, destOffset uint64) (uint32, error) {
	if !f.enableExtract {
		return 0, fmt.Errorf("fmindex: extract: %w", fmerr.ErrNotEnabled)
	}

	if start > stop || stop > f.n {
		return 0, fmt.Errorf("fmindex: extract(%d,%d): %w", start, stop, fmerr.ErrOutOfRange)
	}

	if destSpace(dest, destOffset) < stop-start {
		return 0, fmt.Errorf("fmindex: extract(%d,%d): %w", start, stop, fmerr.ErrDestTooSmall)
	}

	f.extractCore(start, stop, dest, destOffset)

	return uint32(stop - start), nil
}

// extractCore is Extract without the enabled/bounds checks, shared by the
// boundary scans, which construct their destinations incrementally.
func (f *FmIndex) extractCore(start, stop uint64, dest []int32, destOffset uint64) {
	stepper := f.newBackStepper(stop)
	remaining := stop - start

	for remaining > 0 {
		c := stepper.next()
		dest[destOffset+remaining-1] = f.alphabet.Decode(c)
		remaining--
	}
}

// extractRange is extractCore returning a freshly allocated slice, used by
// the rightward boundary scan.
func (f *FmIndex) extractRange(start, stop uint64) []int32 {
	out := make([]int32, stop-start)
	f.extractCore(start, stop, out, 0)
	return out
}

// ExtractUntilBoundary extracts the maximal window [fromLeft,fromRight)
// around from that contains no occurrence of boundary. The boundary
// symbols themselves are not written; a side with no boundary terminates
// at the text limit.
func (f *FmIndex) ExtractUntilBoundary(from uint64, dest []int32, destOffset uint64, boundary int32) (uint32, error) {
	if !f.enableExtract {
		return 0, fmt.Errorf("fmindex: extractUntilBoundary: %w", fmerr.ErrNotEnabled)
	}

	if _, ok := f.alphabet.Encode(boundary); !ok {
		return 0, fmt.Errorf("fmindex: extractUntilBoundary: %w", fmerr.ErrBoundaryNotInAlphabet)
	}

	_, left := f.scanLeft(from, boundary)
	_, right := f.scanRight(from, boundary)

	total := uint64(len(left)) + uint64(len(right))
	if destSpace(dest, destOffset) < total {
		return 0, fmt.Errorf("fmindex: extractUntilBoundary: %w", fmerr.ErrDestTooSmall)
	}

	copy(dest[destOffset:], left)
	copy(dest[destOffset+uint64(len(left)):], right)

	return uint32(total), nil
}

// ExtractUntilBoundaryLeft extracts only text[fromLeft,from).
func (f *FmIndex) ExtractUntilBoundaryLeft(from uint64, dest []int32, destOffset uint64, boundary int32) (uint32, error) {
	if !f.enableExtract {
		return 0, fmt.Errorf("fmindex: extractUntilBoundaryLeft: %w", fmerr.ErrNotEnabled)
	}

	if _, ok := f.alphabet.Encode(boundary); !ok {
		return 0, fmt.Errorf("fmindex: extractUntilBoundaryLeft: %w", fmerr.ErrBoundaryNotInAlphabet)
	}

	_, left := f.scanLeft(from, boundary)

	if destSpace(dest, destOffset) < uint64(len(left)) {
		return 0, fmt.Errorf("fmindex: extractUntilBoundaryLeft: %w", fmerr.ErrDestTooSmall)
	}

	copy(dest[destOffset:], left)

	return uint32(len(left)), nil
}

// ExtractUntilBoundaryRight extracts only text[from,fromRight).
func (f *FmIndex) ExtractUntilBoundaryRight(from uint64, dest []int32, destOffset uint64, boundary int32) (uint32, error) {
	if !f.enableExtract {
		return 0, fmt.Errorf("fmindex: extractUntilBoundaryRight: %w", fmerr.ErrNotEnabled)
	}

	if _, ok := f.alphabet.Encode(boundary); !ok {
		return 0, fmt.Errorf("fmindex: extractUntilBoundaryRight: %w", fmerr.ErrBoundaryNotInAlphabet)
	}

	_, right := f.scanRight(from, boundary)

	if destSpace(dest, destOffset) < uint64(len(right)) {
		return 0, fmt.Errorf("fmindex: extractUntilBoundaryRight: %w", fmerr.ErrDestTooSmall)
	}

	copy(dest[destOffset:], right)

	return uint32(len(right)), nil
}

// scanLeft walks text[from-1], text[from-2], ... backward until boundary is
// emitted (excluded) or position 0 is reached, returning fromLeft and
// text[fromLeft,from) in left-to-right order.
func (f *FmIndex) scanLeft(from uint64, boundary int32) (fromLeft uint64, syms []int32) {
	if from == 0 {
		return 0, nil
	}

	stepper := f.newBackStepper(from)

	var buf []int32
	pos := from

	for pos > 0 {
		c := stepper.next()
		sym := f.alphabet.Decode(c)
		pos--

		if sym == boundary {
			return pos + 1, reverseInt32(buf)
		}

		buf = append(buf, sym)
	}

	return 0, reverseInt32(buf)
}

// scanRight walks text[from], text[from+1], ... forward in batches of
// rightScanBatch positions at a time (each batch itself extracted via the
// ordinary backward-stepping Extract core) until boundary is found or the
// text ends, returning fromRight and text[from,fromRight) in order.
func (f *FmIndex) scanRight(from uint64, boundary int32) (fromRight uint64, syms []int32) {
	var buf []int32
	pos := from

	for pos < f.n {
		end := pos + rightScanBatch
		if end > f.n {
			end = f.n
		}

		chunk := f.extractRange(pos, end)

		found := -1
		for i, sym := range chunk {
			if sym == boundary {
				found = i
				break
			}
		}

		if found >= 0 {
			buf = append(buf, chunk[:found]...)
			return pos + uint64(found), buf
		}

		buf = append(buf, chunk...)
		pos = end
	}

	return f.n, buf
}

// destSpace returns how many slots remain in dest past destOffset, zero
// when the offset itself is past the end.
func destSpace(dest []int32, destOffset uint64) uint64 {
	if destOffset >= uint64(len(dest)) {
		return 0
	}

	return uint64(len(dest)) - destOffset
}

func reverseInt32(s []int32) []int32 {
	out := make([]int32, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}

	return out
}
