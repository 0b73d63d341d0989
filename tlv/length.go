package tlv

import (
	"io"
	"math"
	"math/bits"
)

// MaxLengthOctets is the maximum number of octets following the initial octet
// of a long form length field. Longer length fields are rejected with
// [ErrLengthOverflow].
const MaxLengthOctets = 4

// LengthSize returns the number of bytes of the minimal DER length field for a
// data value of length n.
func LengthSize(n int) int {
	if n < 128 {
		return 1
	}
	return 1 + (bits.Len(uint(n))+7)/8
}

// AppendLength appends the minimal DER length field for n to dst and returns
// the extended slice. Lengths up to 127 use the short form. For larger lengths
// the long form is used without leading zero octets.
func AppendLength(dst []byte, n int) []byte {
	if n < 128 {
		return append(dst, byte(n))
	}
	numBytes := (bits.Len(uint(n)) + 7) / 8
	dst = append(dst, 0x80|byte(numBytes))
	for ; numBytes > 0; numBytes-- {
		dst = append(dst, byte(n>>uint((numBytes-1)*8)))
	}
	return dst
}

// WriteLength writes the minimal DER length field for n to w. It returns the
// number of bytes written.
func WriteLength(w io.ByteWriter, n int) (int, error) {
	var buf [1 + 8]byte
	enc := AppendLength(buf[:0], n)
	for i, b := range enc {
		if err := w.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(enc), nil
}

// ReadLength reads a BER length field from r. If the first octet is the
// indefinite-length marker 0x80, ReadLength returns [LengthIndefinite] and a
// nil error. It is up to the caller to reject indefinite lengths.
//
// Long form lengths may contain leading zero octets. A length field with more
// than [MaxLengthOctets] subsequent octets, or whose value does not fit an int,
// results in [ErrLengthOverflow]. If r ends within the length field,
// [ErrTruncated] is returned.
func ReadLength(r io.ByteReader) (int, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, truncated(err)
	}
	if b&0x80 == 0 {
		// The length is encoded in the bottom 7 bits.
		return int(b), nil
	} else if b == 0x80 {
		return LengthIndefinite, nil
	}

	// Bottom 7 bits give the number of length bytes to follow.
	numBytes := int(b & 0x7f)
	if numBytes > MaxLengthOctets {
		return 0, ErrLengthOverflow
	}
	l := 0
	for ; numBytes > 0; numBytes-- {
		if b, err = r.ReadByte(); err != nil {
			return 0, truncated(err)
		}
		if l > math.MaxInt>>8 {
			// We can't shift l up without overflowing.
			return 0, ErrLengthOverflow
		}
		l = l<<8 | int(b)
	}
	return l, nil
}
