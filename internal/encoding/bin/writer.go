// Copyright (c) 2025 @AmarnathCJD

package bin

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// A Writer appends big-endian values to an in-memory buffer.
type Writer struct {
	buf bytes.Buffer
	// first failed put; once set nothing more is written
	err error
}

func NewWriter(size int) *Writer {
	w := &Writer{}
	w.buf.Grow(size)
	return w
}

// CheckErr must be called after encoding has been finished. If it returns a non-nil value
// the result must not be used.
func (w *Writer) CheckErr() error {
	return w.err
}

// Bytes returns the encoded buffer.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) PutUint8(v uint8) {
	if w.err != nil {
		return
	}
	w.buf.WriteByte(v)
}

func (w *Writer) PutUint16(v uint16) {
	if w.err != nil {
		return
	}
	w.buf.Write(binary.BigEndian.AppendUint16(nil, v))
}

func (w *Writer) PutUint32(v uint32) {
	if w.err != nil {
		return
	}
	w.buf.Write(binary.BigEndian.AppendUint32(nil, v))
}

func (w *Writer) PutUint64(v uint64) {
	if w.err != nil {
		return
	}
	w.buf.Write(binary.BigEndian.AppendUint64(nil, v))
}

func (w *Writer) PutBool(v bool) {
	if v {
		w.PutUint8(1)
		return
	}
	w.PutUint8(0)
}

func (w *Writer) PutRawBytes(b []byte) {
	if w.err != nil {
		return
	}
	w.buf.Write(b)
}

// PutFixedBytes writes b, failing if it is not exactly size bytes long.
func (w *Writer) PutFixedBytes(field string, b []byte, size int) {
	if w.err != nil {
		return
	}
	if len(b) != size {
		w.err = fmt.Errorf("%s: want %d bytes, got %d", field, size, len(b))
		return
	}
	w.buf.Write(b)
}

// PutShortString writes s prefixed with its one byte length.
func (w *Writer) PutShortString(field, s string) {
	if w.err != nil {
		return
	}
	if len(s) > 0xff {
		w.err = fmt.Errorf("%s too long: expect less than 256 bytes, got %d", field, len(s))
		return
	}
	w.PutUint8(uint8(len(s)))
	w.buf.WriteString(s)
}
