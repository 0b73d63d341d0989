// Package render produces human-readable representations of a tree: an
// indented text listing, a hex dump with highlighted headers, and a YAML
// export that can be imported again.
package render

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"codello.dev/asn1tree"
	"codello.dev/asn1tree/internal/oidname"
	"codello.dev/asn1tree/oid"
	"codello.dev/asn1tree/tree"
)

// DefaultPreview is the number of bytes shown by hex previews of opaque
// values.
const DefaultPreview = 16

// Value returns a short textual representation of the leaf data of n. Values
// of well-known universal types are decoded, other data is shown as a hex
// preview of at most limit bytes. Containers have no value.
func Value(n tree.Node, limit int) string {
	if n.HasChildren() {
		return ""
	}
	tag, data := n.Tag(), n.Data()
	if tag.Class() != asn1tree.ClassUniversal || tag.Constructed() {
		return hexPreview(data, limit)
	}
	switch tag.Number() {
	case asn1tree.TagBoolean:
		if len(data) == 1 {
			if data[0] == 0 {
				return "FALSE"
			}
			return "TRUE"
		}
	case asn1tree.TagInteger, asn1tree.TagEnumerated:
		if len(data) > 0 && len(data) <= 16 {
			return integer(data).String()
		}
	case asn1tree.TagNull:
		if len(data) == 0 {
			return ""
		}
	case asn1tree.TagOID:
		if s, err := oid.Decode(data); err == nil {
			if name, ok := oidname.Lookup(s); ok {
				return s + " (" + name + ")"
			}
			return s
		}
	case asn1tree.TagRelativeOID:
		if s, err := oid.DecodeRelative(data); err == nil {
			return s
		}
	case asn1tree.TagBitString:
		if u := n.UnusedBits(); u != 0 {
			return "(" + strconv.Itoa(int(u)) + " unused) " + hexPreview(data, limit)
		}
	case asn1tree.TagUTF8String, asn1tree.TagPrintableString, asn1tree.TagIA5String,
		asn1tree.TagNumericString, asn1tree.TagVisibleString, asn1tree.TagUTCTime,
		asn1tree.TagGeneralizedTime, asn1tree.TagGraphicString, asn1tree.TagGeneralString,
		asn1tree.TagTeletexString, asn1tree.TagObjectDescriptor:
		if utf8.Valid(data) {
			return strconv.Quote(string(data))
		}
	case asn1tree.TagBMPString:
		if len(data)%2 == 0 {
			u := make([]uint16, len(data)/2)
			for i := range u {
				u[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
			}
			return strconv.Quote(string(utf16.Decode(u)))
		}
	}
	return hexPreview(data, limit)
}

// integer decodes a two's complement big-endian integer.
func integer(data []byte) *big.Int {
	i := new(big.Int).SetBytes(data)
	if data[0]&0x80 != 0 {
		i.Sub(i, new(big.Int).Lsh(big.NewInt(1), uint(len(data))*8))
	}
	return i
}

// hexPreview returns the first limit bytes of data in hex. If data is longer,
// the total length is appended.
func hexPreview(data []byte, limit int) string {
	if limit <= 0 {
		limit = DefaultPreview
	}
	if len(data) == 0 {
		return ""
	}
	var s strings.Builder
	n := min(len(data), limit)
	for i, b := range data[:n] {
		if i > 0 {
			s.WriteByte(' ')
		}
		s.WriteString(hex.EncodeToString([]byte{b}))
	}
	if n < len(data) {
		s.WriteString(" ... (")
		s.WriteString(strconv.Itoa(len(data)))
		s.WriteString(" bytes)")
	}
	return s.String()
}
