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

package packedvec

import (
	"bytes"

	"github.com/succinctfm/fmindex/serial"
)

// MarshalBinary frames length, width and the backing words through the
// shared serial.Writer, the same versioned-plus-checksummed envelope every
// other component in this module uses.
func (v *Fixed) MarshalBinary() ([]byte, error) {
	w := serial.NewWriter()
	w.WriteUint64(v.length)
	w.WriteUint8(byte(v.width))
	w.WriteUint64Slice(v.words)

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalFixed rebuilds a Fixed vector from MarshalBinary's output.
func UnmarshalFixed(data []byte) (Fixed, error) {
	r, err := serial.NewReader(data)
	if err != nil {
		return Fixed{}, err
	}

	length := r.ReadUint64()
	width := r.ReadUint8()
	words := r.ReadUint64Slice()

	return Fixed{words: words, length: length, width: width}, nil
}
