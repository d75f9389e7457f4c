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

package rrr

import (
	"bytes"

	"github.com/succinctfm/fmindex/packedvec"
	"github.com/succinctfm/fmindex/serial"
)

// MarshalBinary frames the logical bit length, the sample period, the raw
// words and the samples1 vector, in that order.
func (b *BitVec) MarshalBinary() ([]byte, error) {
	samplesBlob, err := b.samples1.MarshalBinary()
	if err != nil {
		return nil, err
	}

	w := serial.NewWriter()
	w.WriteUint64(b.n)
	w.WriteUint32(b.period)
	w.WriteUint64Slice(b.raw)
	w.WriteBytes(samplesBlob)

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalBitVec rebuilds a BitVec from MarshalBinary's output without
// recomputing the sample table.
func UnmarshalBitVec(data []byte) (*BitVec, error) {
	r, err := serial.NewReader(data)
	if err != nil {
		return nil, err
	}

	n := r.ReadUint64()
	period := r.ReadUint32()
	raw := r.ReadUint64Slice()
	samplesBlob := r.ReadBytes()

	samples, err := packedvec.UnmarshalFixed(samplesBlob)
	if err != nil {
		return nil, err
	}

	return FromParts(raw, samples, n, period), nil
}
