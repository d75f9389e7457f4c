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
	"unicode/utf8"

	"github.com/succinctfm/fmindex/fmerr"
)

// ConvertUTF8ToSymbols decodes b as UTF-8 code points into dest, returning
// the number of symbols written. It fails with ErrOverflowsAlphabet if any
// decoded code point exceeds maxSymbol (32,767).
func ConvertUTF8ToSymbols(b []byte, dest []int32) (uint32, error) {
	count := uint32(0)
	i := 0

	for i < len(b) {
		r, size := utf8.DecodeRune(b[i:])

		if r > maxSymbol {
			return 0, fmt.Errorf("fmindex: convertUTF8ToSymbols: code point %d: %w", r, fmerr.ErrOverflowsAlphabet)
		}

		if int(count) >= len(dest) {
			return 0, fmt.Errorf("fmindex: convertUTF8ToSymbols: %w", fmerr.ErrDestTooSmall)
		}

		dest[count] = int32(r)
		count++
		i += size
	}

	return count, nil
}
