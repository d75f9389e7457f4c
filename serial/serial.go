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

// Package serial implements the versioned binary framing every
// serializable component uses: a one-byte version tag followed by
// component fields in declaration order, big-endian, with length-prefixed
// arrays and a trailing xxhash64 checksum. Readers reject a frame whose
// version byte or checksum does not match before any field is parsed.
package serial

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/succinctfm/fmindex/fmerr"
)

// CurrentVersion is the serialVersion byte written by Writer and checked
// by Reader.
const CurrentVersion byte = 0

// Writer accumulates a component's fields into a byte buffer, then emits
// them framed with a version byte and a trailing checksum.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer ready to accept fields.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256)}
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(b byte) {
	w.buf = append(w.buf, b)
}

// WriteUint32 appends v big-endian.
func (w *Writer) WriteUint32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// WriteUint64 appends v big-endian.
func (w *Writer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// WriteUint32Slice writes a length-prefixed (int32) array of uint32s.
func (w *Writer) WriteUint32Slice(vs []uint32) {
	w.WriteUint32(uint32(len(vs)))

	for _, v := range vs {
		w.WriteUint32(v)
	}
}

// WriteUint64Slice writes a length-prefixed (int32) array of uint64s.
func (w *Writer) WriteUint64Slice(vs []uint64) {
	w.WriteUint32(uint32(len(vs)))

	for _, v := range vs {
		w.WriteUint64(v)
	}
}

// WriteInt32Slice writes a length-prefixed (int32) array of int32s.
func (w *Writer) WriteInt32Slice(vs []int32) {
	w.WriteUint32(uint32(len(vs)))

	for _, v := range vs {
		w.WriteUint32(uint32(v))
	}
}

// WriteBytes writes a length-prefixed (int32) raw byte slice.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteUint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteTo frames the accumulated fields with a leading serialVersion byte
// and a trailing xxhash64 checksum over version byte + fields, and writes
// the result to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	framed := make([]byte, 0, len(w.buf)+9)
	framed = append(framed, CurrentVersion)
	framed = append(framed, w.buf...)

	sum := xxhash.Sum64(framed)
	var sumBytes [8]byte
	binary.BigEndian.PutUint64(sumBytes[:], sum)
	framed = append(framed, sumBytes[:]...)

	n, err := dst.Write(framed)
	return int64(n), err
}

// Reader parses a buffer framed by Writer, checking the version byte and
// checksum up front.
type Reader struct {
	buf []byte
	pos int
}

// NewReader validates the version byte and checksum of framed, then
// returns a Reader positioned at the first field.
func NewReader(framed []byte) (*Reader, error) {
	if len(framed) < 9 {
		return nil, fmt.Errorf("serial: frame too short (%d bytes): %w", len(framed), fmerr.ErrVersionMismatch)
	}

	body := framed[:len(framed)-8]
	wantSum := binary.BigEndian.Uint64(framed[len(framed)-8:])

	if gotSum := xxhash.Sum64(body); gotSum != wantSum {
		return nil, fmt.Errorf("serial: checksum mismatch (got %x want %x)", gotSum, wantSum)
	}

	version := body[0]
	if version != CurrentVersion {
		return nil, fmt.Errorf("serial: version byte %d: %w", version, fmerr.ErrVersionMismatch)
	}

	return &Reader{buf: body[1:]}, nil
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() byte {
	b := r.buf[r.pos]
	r.pos++
	return b
}

// ReadUint32 reads a big-endian uint32.
func (r *Reader) ReadUint32() uint32 {
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

// ReadUint64 reads a big-endian uint64.
func (r *Reader) ReadUint64() uint64 {
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v
}

// ReadUint32Slice reads a length-prefixed (int32) array of uint32s.
func (r *Reader) ReadUint32Slice() []uint32 {
	n := r.ReadUint32()
	vs := make([]uint32, n)

	for i := range vs {
		vs[i] = r.ReadUint32()
	}

	return vs
}

// ReadUint64Slice reads a length-prefixed (int32) array of uint64s.
func (r *Reader) ReadUint64Slice() []uint64 {
	n := r.ReadUint32()
	vs := make([]uint64, n)

	for i := range vs {
		vs[i] = r.ReadUint64()
	}

	return vs
}

// ReadInt32Slice reads a length-prefixed (int32) array of int32s.
func (r *Reader) ReadInt32Slice() []int32 {
	n := r.ReadUint32()
	vs := make([]int32, n)

	for i := range vs {
		vs[i] = int32(r.ReadUint32())
	}

	return vs
}

// ReadBytes reads a length-prefixed (int32) raw byte slice.
func (r *Reader) ReadBytes() []byte {
	n := r.ReadUint32()
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return append([]byte(nil), b...)
}
