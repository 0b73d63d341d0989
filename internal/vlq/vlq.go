// Package vlq implements the base-128 encoding of subidentifiers used in the
// contents of OBJECT IDENTIFIER and RELATIVE-OID values. Each octet carries
// seven bits of the value, most significant group first. The high bit of an
// octet is set on all but the last octet of a subidentifier.
package vlq

import "errors"

var (
	// ErrTruncated indicates a subidentifier whose last octet is missing.
	ErrTruncated = errors.New("vlq: truncated subidentifier")

	// ErrOverflow indicates a subidentifier that does not fit into 64 bits.
	ErrOverflow = errors.New("vlq: subidentifier too large")
)

// Len returns the number of octets needed to encode v.
func Len(v uint64) int {
	n := 1
	for v >>= 7; v > 0; v >>= 7 {
		n++
	}
	return n
}

// Append appends the encoding of v to dst and returns the extended slice.
func Append(dst []byte, v uint64) []byte {
	for shift := 7 * (Len(v) - 1); shift > 0; shift -= 7 {
		dst = append(dst, byte(v>>shift)|0x80)
	}
	return append(dst, byte(v)&0x7f)
}

// Parse decodes the subidentifier at the start of b. It returns the value and
// the number of octets consumed. Leading 0x80 octets are accepted and do not
// contribute to the value.
func Parse(b []byte) (v uint64, n int, err error) {
	for n < len(b) {
		c := b[n]
		n++
		if v>>57 != 0 {
			return 0, n, ErrOverflow
		}
		v = v<<7 | uint64(c&0x7f)
		if c&0x80 == 0 {
			return v, n, nil
		}
	}
	return 0, n, ErrTruncated
}
