package tlv

import (
	"errors"
	"io"
	"strconv"
)

var (
	// ErrTruncated indicates that a header declares more bytes than remain in
	// the input or the enclosing data value.
	ErrTruncated = errors.New("truncated data value")

	// ErrLengthOverflow indicates that a length field is wider than supported.
	ErrLengthOverflow = errors.New("length too large")

	// ErrIndefiniteLength indicates that a BER indefinite-length marker was
	// encountered. Indefinite lengths are detected but not supported.
	ErrIndefiniteLength = errors.New("indefinite length not supported")
)

// SyntaxError represents an error in the TLV encoding. The error value contains
// the location of the error within the input as well as the [Header] of the
// data value that could not be decoded, if it is known.
type SyntaxError struct {
	requireKeyedLiterals
	nonComparable

	Err error // underlying error

	// ByteOffset is the location of the error. The location is usually the start of
	// the TLV header containing the error.
	ByteOffset int64

	// Header is the TLV header of the data value containing the error. The header
	// is the zero value if the error occurred while reading the header.
	Header Header
}

func (e *SyntaxError) Unwrap() error { return e.Err }
func (e *SyntaxError) Error() string {
	b := []byte("tlv: syntax error")
	if e.Header != (Header{}) {
		b = append(b, " in "...)
		b = append(b, e.Header.String()...)
	}
	b = strconv.AppendInt(append(b, " at offset "...), e.ByteOffset, 10)
	if e.Err != nil {
		b = append(b, ": "...)
		b = append(b, e.Err.Error()...)
	}
	return string(b)
}

// truncated returns err, unless err indicates an unexpected end of the input,
// in which case it returns [ErrTruncated].
func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	return err
}
