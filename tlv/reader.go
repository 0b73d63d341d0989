package tlv

import (
	"errors"
	"io"
)

// Reader reads TLV-encoded data from a byte slice. A Reader keeps track of the
// absolute offset of its data within the original input so that sub-regions
// created via [Reader.Sub] report offsets relative to the same origin.
//
// Reader implements [io.Reader] and [io.ByteReader].
type Reader struct {
	buf  []byte
	pos  int
	base int64 // offset of buf[0] within the original input
}

// Mark is a position within a [Reader] that can be restored via
// [Reader.Rewind].
type Mark int

var errNegativeCount = errors.New("tlv: negative count")

// NewReader returns a Reader reading from b. Offsets start at zero.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Len returns the number of unread bytes of r.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Offset returns the absolute offset of the next unread byte.
func (r *Reader) Offset() int64 {
	return r.base + int64(r.pos)
}

// Mark returns the current position of r.
func (r *Reader) Mark() Mark {
	return Mark(r.pos)
}

// Rewind resets r to a position previously obtained from [Reader.Mark].
func (r *Reader) Rewind(m Mark) {
	r.pos = int(m)
}

// ReadByte implements [io.ByteReader]. At the end of the data, io.EOF is
// returned.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// PeekByte returns the next byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	return r.buf[r.pos], nil
}

// Read implements [io.Reader].
func (r *Reader) Read(p []byte) (int, error) {
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	n := copy(p, r.buf[r.pos:])
	r.pos += n
	return n, nil
}

// Next consumes the next n bytes and returns them. The returned slice aliases
// the input of r. If fewer than n bytes remain, nothing is consumed and
// [ErrTruncated] is returned.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 {
		return nil, errNegativeCount
	}
	if n > r.Len() {
		return nil, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// Sub consumes the next n bytes of r and returns a new Reader restricted to
// them. Offsets reported by the new Reader are absolute. If fewer than n bytes
// remain, nothing is consumed and [ErrTruncated] is returned.
func (r *Reader) Sub(n int) (*Reader, error) {
	off := r.Offset()
	b, err := r.Next(n)
	if err != nil {
		return nil, err
	}
	return &Reader{buf: b, base: off}, nil
}
