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
	"fmt"
	"io"

	"github.com/succinctfm/fmindex/packedvec"
	"github.com/succinctfm/fmindex/rrr"
	"github.com/succinctfm/fmindex/serial"
	"github.com/succinctfm/fmindex/wavelet"
)

// WriteTo frames the whole index (alphabet map, cumulative counts, sampled
// suffix/position vectors, sampled bitmap and wavelet tree) through the
// shared serial envelope, one nested version-checked blob per component.
func (f *FmIndex) WriteTo(w io.Writer) (int64, error) {
	sw := serial.NewWriter()
	sw.WriteUint64(f.n)
	sw.WriteUint32(uint32(f.sigma))
	sw.WriteUint32(f.sampleRate)

	enableExtract := byte(0)
	if f.enableExtract {
		enableExtract = 1
	}
	sw.WriteUint8(enableExtract)

	// toRune[1:]: id 0 is the sentinel, implicit on read.
	sw.WriteInt32Slice(f.alphabet.toRune[1:])
	sw.WriteUint64Slice(f.cumulativeCounts)

	suffixesBlob, err := f.sampledSuffixes.MarshalBinary()
	if err != nil {
		return 0, err
	}
	sw.WriteBytes(suffixesBlob)

	bitmapBlob, err := f.sampledBitmap.MarshalBinary()
	if err != nil {
		return 0, err
	}
	sw.WriteBytes(bitmapBlob)

	if f.enableExtract {
		positionsBlob, err := f.positions.MarshalBinary()
		if err != nil {
			return 0, err
		}
		sw.WriteBytes(positionsBlob)
	}

	waveletBlob, err := f.bwt.MarshalBinary()
	if err != nil {
		return 0, err
	}
	sw.WriteBytes(waveletBlob)

	var buf bytes.Buffer
	if _, err := sw.WriteTo(&buf); err != nil {
		return 0, err
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// ReadFrom rebuilds an FmIndex previously written by WriteTo, failing with
// ErrVersionMismatch if the framed version byte does not match.
func ReadFrom(r io.Reader) (*FmIndex, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	sr, err := serial.NewReader(data)
	if err != nil {
		return nil, fmt.Errorf("fmindex: readFrom: %w", err)
	}

	f := &FmIndex{}
	f.n = sr.ReadUint64()
	f.sigma = int(sr.ReadUint32())
	f.sampleRate = sr.ReadUint32()
	f.enableExtract = sr.ReadUint8() == 1

	userRunes := sr.ReadInt32Slice()
	toID := make(map[int32]int32, len(userRunes))
	toRune := make([]int32, 0, len(userRunes)+1)
	toRune = append(toRune, 0)

	for _, r := range userRunes {
		toID[r] = int32(len(toRune))
		toRune = append(toRune, r)
	}

	f.alphabet = AlphabetMap{toID: toID, toRune: toRune}
	f.cumulativeCounts = sr.ReadUint64Slice()

	suffixesBlob := sr.ReadBytes()
	f.sampledSuffixes, err = packedvec.UnmarshalFixed(suffixesBlob)
	if err != nil {
		return nil, err
	}

	bitmapBlob := sr.ReadBytes()
	f.sampledBitmap, err = rrr.UnmarshalBitVec(bitmapBlob)
	if err != nil {
		return nil, err
	}

	if f.enableExtract {
		positionsBlob := sr.ReadBytes()
		f.positions, err = packedvec.UnmarshalFixed(positionsBlob)
		if err != nil {
			return nil, err
		}
	}

	waveletBlob := sr.ReadBytes()
	f.bwt, err = wavelet.UnmarshalFBBWavelet(waveletBlob)
	if err != nil {
		return nil, err
	}

	return f, nil
}
