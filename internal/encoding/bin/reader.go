// Copyright (c) 2025 @AmarnathCJD

// Package bin reads and writes the fixed-width big-endian fields session strings are made of.
// Both the Reader and the Writer keep the first error and turn every later call into a no-op,
// so a layout can be read field by field and checked once at the end.
package bin

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// A Reader pops big-endian values from an in-memory buffer.
type Reader struct {
	buf []byte
	pos int
	err error
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

func (r *Reader) read(field string, n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.Len() < n {
		r.err = &ErrTruncated{Field: field, Want: n, Has: r.Len()}
		return nil
	}

	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

// Err returns the first error met while reading, if any.
func (r *Reader) Err() error {
	return r.err
}

// Len is the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

func (r *Reader) PopUint8(field string) uint8 {
	b := r.read(field, 1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) PopUint16(field string) uint16 {
	b := r.read(field, 2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *Reader) PopUint32(field string) uint32 {
	b := r.read(field, 4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *Reader) PopUint64(field string) uint64 {
	b := r.read(field, 8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// PopBool reads a one byte flag. Anything other than 0 or 1 is an error.
func (r *Reader) PopBool(field string) bool {
	v := r.PopUint8(field)
	if r.err != nil {
		return false
	}

	switch v {
	case 0:
		return false
	case 1:
		return true
	default:
		r.err = errors.Wrap(&ErrInvalidValue{Field: field, Value: int(v)}, "not a bool value")
		return false
	}
}

// PopRawBytes returns a copy of the next size bytes.
func (r *Reader) PopRawBytes(field string, size int) []byte {
	b := r.read(field, size)
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// PopShortString reads a string prefixed with its one byte length.
func (r *Reader) PopShortString(field string) string {
	n := r.PopUint8(field)
	if r.err != nil {
		return ""
	}
	return string(r.read(field, int(n)))
}

// ExpectEOF fails the reader if unread bytes remain.
func (r *Reader) ExpectEOF() {
	if r.err == nil && r.Len() > 0 {
		r.err = &ErrTrailingData{Count: r.Len()}
	}
}
