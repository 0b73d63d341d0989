// Package tlv implements the syntactic layer of the tag-length-value (TLV)
// format used by the Basic Encoding Rules (BER) and the Distinguished Encoding
// Rules (DER) as specified in [Rec. ITU-T X.690].
// See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// # Headers and Lengths
//
// Each data value is encoded as an identifier octet (the tag), a length field
// and the contents. The identifier octet and the length field together are
// called a header and are represented by the [Header] type. Only the low tag
// number form is supported, a tag is always a single byte.
//
// Length fields are self-describing. Lengths up to 127 use a single byte
// (short form). Longer lengths use a first byte of 0x80 | n followed by n
// big-endian bytes (long form). [AppendLength] always produces the minimal
// DER encoding. [ReadLength] accepts any definite BER length of up to
// [MaxLengthOctets] octets and reports the indefinite-length marker 0x80 as
// [LengthIndefinite].
//
// # Reading
//
// The [Reader] type is a bounded view into a byte slice that tracks absolute
// offsets, can be rewound to a previous position, and can be split into
// sub-regions for the contents of constructed values.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package tlv

import (
	"io"
	"strconv"

	"codello.dev/asn1tree"
)

// LengthIndefinite when used as a magic number for the length of a [Header]
// indicates that the data value is encoded using the constructed
// indefinite-length format.
const LengthIndefinite = -1

// Header represents a TLV header. The [Header.Length] may be [LengthIndefinite]
// if an indefinite-length encoding was read.
type Header struct {
	Tag    asn1tree.Tag
	Length int
}

// String returns a string representation of h.
func (h Header) String() string {
	s := h.Tag.String()
	if h.Tag.Constructed() {
		s += "/c"
	} else {
		s += "/p"
	}
	if h.Length == LengthIndefinite {
		return s + ":indefinite"
	}
	return s + ":" + strconv.Itoa(h.Length)
}

// Size returns the number of bytes needed to encode h. The length of h must
// not be [LengthIndefinite].
func (h Header) Size() int {
	return 1 + LengthSize(h.Length)
}

// AppendHeader appends the DER encoding of h to dst and returns the extended
// slice.
func AppendHeader(dst []byte, h Header) []byte {
	return AppendLength(append(dst, byte(h.Tag)), h.Length)
}

// ReadHeader reads an identifier octet and a length field from r.
//
// If r returns io.EOF on the first read, the returned error will be io.EOF as
// well. If the input ends within the length field, [ErrTruncated] is returned.
// An indefinite length is not an error, it is reported as [LengthIndefinite].
func ReadHeader(r io.ByteReader) (Header, error) {
	b, err := r.ReadByte()
	if err != nil {
		// io.EOF stays io.EOF
		return Header{}, err
	}
	h := Header{Tag: asn1tree.Tag(b)}
	h.Length, err = ReadLength(r)
	return h, err
}

// requireKeyedLiterals can be embedded in a struct to require keyed literals.
type requireKeyedLiterals struct{}

// nonComparable can be embedded in a struct to prevent comparability.
type nonComparable [0]func()
