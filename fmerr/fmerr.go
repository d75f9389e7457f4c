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

// Package fmerr collects the sentinel errors returned across the index
// packages, so callers can branch with errors.Is instead of string
// matching.
package fmerr

import "errors"

var (
	// ErrEmptyInput is returned when a build is attempted on a zero-length
	// input.
	ErrEmptyInput = errors.New("fmindex: empty input")

	// ErrAlphabetTooLarge is returned when the distinct symbol count exceeds
	// what a component can address.
	ErrAlphabetTooLarge = errors.New("fmindex: alphabet too large")

	// ErrOverflowsAlphabet is returned when a decoded code point exceeds the
	// largest symbol value an index accepts (32,767).
	ErrOverflowsAlphabet = errors.New("fmindex: symbol overflows alphabet")

	// ErrOutOfRange is returned when an index, position or offset falls
	// outside the valid domain of the receiver.
	ErrOutOfRange = errors.New("fmindex: index out of range")

	// ErrNotEnabled is returned when extract-family operations are called on
	// an index built with enableExtract=false.
	ErrNotEnabled = errors.New("fmindex: extract not enabled for this index")

	// ErrDestTooSmall is returned when a caller-supplied destination slice
	// cannot hold the result.
	ErrDestTooSmall = errors.New("fmindex: destination slice too small")

	// ErrBoundaryNotInAlphabet is returned when ExtractUntilBoundary is
	// called with a boundary symbol absent from the index's alphabet.
	ErrBoundaryNotInAlphabet = errors.New("fmindex: boundary symbol not in alphabet")

	// ErrVersionMismatch is returned by ReadFrom when the stream's version
	// byte does not match a version this build knows how to decode.
	ErrVersionMismatch = errors.New("fmindex: serialized version mismatch")
)
