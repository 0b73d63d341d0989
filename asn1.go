// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asn1tree provides a navigable and editable tree representation of
// data encoded using the ASN.1 Basic Encoding Rules (BER) or Distinguished
// Encoding Rules (DER) as defined in [Rec. ITU-T X.690].
//
// This package only defines the tag catalog shared by the other packages: the
// [Tag] type describing a single identifier octet, the tag [Class], and the
// universal tag numbers defined in [Rec. ITU-T X.680]. The actual functionality
// lives in subpackages:
//
//   - [codello.dev/asn1tree/tlv] implements the length codec and header parsing.
//   - [codello.dev/asn1tree/oid] implements OBJECT IDENTIFIER and RELATIVE-OID
//     encoding.
//   - [codello.dev/asn1tree/tree] implements the tree model, its decoding and
//     encoding, and the mutation API.
//   - [codello.dev/asn1tree/pemfile] unwraps and wraps PEM files.
//
// Decoding is purely syntactic. A tree consists of tag-length-value (TLV)
// elements, no validation against an ASN.1 module takes place.
//
// # Identifier Octets
//
// This package only supports the low tag number form of identifier octets.
// A [Tag] is exactly one byte: the bottom five bits hold the tag number, bit
// 0x20 indicates the constructed encoding and the top two bits hold the class.
// Tag numbers 31 and above (which require the high tag number form) cannot be
// represented by a [Tag] value.
//
// [Rec. ITU-T X.680]: https://www.itu.int/rec/T-REC-X.680
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
package asn1tree

import (
	"strconv"
	"strings"
)

// Tag is a single BER identifier octet. It combines the tag class, the
// constructed flag and the tag number. For details see Section 8.1.2 of Rec.
// ITU-T X.690.
type Tag byte

// Class holds the class part of an ASN.1 tag. The class acts as a namespace for
// the tag number. A Class value is an unsigned 2-bit integer. Class values
// whose value exceeds 2 bits are invalid.
//
//go:generate stringer -type=Class -trimprefix=Class
type Class uint8

// IsValid reports whether c is a valid Class value.
func (c Class) IsValid() bool {
	return c <= 3
}

// Predefined [Class] constants. These are all the possible values that can be
// encoded in the [Class] type.
const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// Bits of an identifier octet.
const (
	// FlagConstructed is set in a tag using the constructed encoding.
	FlagConstructed Tag = 0x20

	// MaskNumber selects the tag number bits of an identifier octet.
	MaskNumber Tag = 0x1f
)

// MaxNumber is the largest tag number that can be expressed in a single
// identifier octet. The number 31 is reserved to indicate the high tag number
// form.
const MaxNumber = 30

// NewTag combines class, constructed flag and number into a Tag. Only the
// bottom five bits of number are used.
func NewTag(class Class, constructed bool, number uint8) Tag {
	t := Tag(class&0b11)<<6 | Tag(number)&MaskNumber
	if constructed {
		t |= FlagConstructed
	}
	return t
}

// Class returns the class bits of t.
func (t Tag) Class() Class {
	return Class(t >> 6)
}

// Number returns the tag number of t.
func (t Tag) Number() uint8 {
	return uint8(t & MaskNumber)
}

// Constructed reports whether t indicates the constructed encoding.
func (t Tag) Constructed() bool {
	return t&FlagConstructed != 0
}

// Is reports whether t has the universal class and the specified number,
// regardless of the constructed flag.
func (t Tag) Is(number uint8) bool {
	return t.Class() == ClassUniversal && t.Number() == number
}

// String returns a string representation of t in a format similar to the one
// used in ASN.1 notation. The tag number is enclosed by square brackets and
// prefixed with the class used. To avoid ambiguity the UNIVERSAL word is used
// for universal tags, although this is not valid ASN.1 syntax.
func (t Tag) String() string {
	if t.Class() == ClassContextSpecific {
		return "[" + strconv.FormatUint(uint64(t.Number()), 10) + "]"
	}
	return "[" + strings.ToUpper(t.Class().String()) + " " + strconv.FormatUint(uint64(t.Number()), 10) + "]"
}

// Name resolves a human-readable name for t. Universal tags use the type names
// from Rec. ITU-T X.680 (e.g. "SEQUENCE" or "OBJECT IDENTIFIER"). All other
// tags use the format of [Tag.String].
func (t Tag) Name() string {
	if num := int(t.Number()); t.Class() == ClassUniversal && num < len(universalNames) {
		if n := universalNames[num]; n != "" {
			return n
		}
	}
	return t.String()
}

// These are the ASN.1 tag numbers in the [ClassUniversal] namespace that can be
// expressed in a single identifier octet. These assignments are defined in Rec.
// ITU-T X.680, Section 8, Table 1.
const (
	TagReserved         uint8 = 0
	TagBoolean          uint8 = 1
	TagInteger          uint8 = 2
	TagBitString        uint8 = 3
	TagOctetString      uint8 = 4
	TagNull             uint8 = 5
	TagOID              uint8 = 6
	TagObjectDescriptor uint8 = 7
	TagExternal         uint8 = 8
	TagReal             uint8 = 9
	TagEnumerated       uint8 = 10
	TagEmbeddedPDV      uint8 = 11
	TagUTF8String       uint8 = 12
	TagRelativeOID      uint8 = 13
	TagTime             uint8 = 14
	TagSequence         uint8 = 16
	TagSet              uint8 = 17
	TagNumericString    uint8 = 18
	TagPrintableString  uint8 = 19
	TagTeletexString    uint8 = 20
	TagT61String              = TagTeletexString
	TagVideotexString   uint8 = 21
	TagIA5String        uint8 = 22
	TagUTCTime          uint8 = 23
	TagGeneralizedTime  uint8 = 24
	TagGraphicString    uint8 = 25
	TagVisibleString    uint8 = 26
	TagISO646String           = TagVisibleString
	TagGeneralString    uint8 = 27
	TagUniversalString  uint8 = 28
	TagCharacterString  uint8 = 29
	TagBMPString        uint8 = 30
)

// Frequently used identifier octets. SEQUENCE and SET always use the
// constructed encoding in DER.
const (
	Boolean          = Tag(TagBoolean)
	Integer          = Tag(TagInteger)
	BitString        = Tag(TagBitString)
	OctetString      = Tag(TagOctetString)
	Null             = Tag(TagNull)
	ObjectIdentifier = Tag(TagOID)
	Enumerated       = Tag(TagEnumerated)
	UTF8String       = Tag(TagUTF8String)
	RelativeOID      = Tag(TagRelativeOID)
	Sequence         = Tag(TagSequence) | FlagConstructed
	Set              = Tag(TagSet) | FlagConstructed
	PrintableString  = Tag(TagPrintableString)
	IA5String        = Tag(TagIA5String)
	UTCTime          = Tag(TagUTCTime)
	GeneralizedTime  = Tag(TagGeneralizedTime)
	BMPString        = Tag(TagBMPString)
)

var universalNames = [MaxNumber + 1]string{
	TagReserved:         "END OF CONTENTS",
	TagBoolean:          "BOOLEAN",
	TagInteger:          "INTEGER",
	TagBitString:        "BIT STRING",
	TagOctetString:      "OCTET STRING",
	TagNull:             "NULL",
	TagOID:              "OBJECT IDENTIFIER",
	TagObjectDescriptor: "ObjectDescriptor",
	TagExternal:         "EXTERNAL",
	TagReal:             "REAL",
	TagEnumerated:       "ENUMERATED",
	TagEmbeddedPDV:      "EMBEDDED PDV",
	TagUTF8String:       "UTF8String",
	TagRelativeOID:      "RELATIVE-OID",
	TagTime:             "TIME",
	TagSequence:         "SEQUENCE",
	TagSet:              "SET",
	TagNumericString:    "NumericString",
	TagPrintableString:  "PrintableString",
	TagTeletexString:    "TeletexString",
	TagVideotexString:   "VideotexString",
	TagIA5String:        "IA5String",
	TagUTCTime:          "UTCTime",
	TagGeneralizedTime:  "GeneralizedTime",
	TagGraphicString:    "GraphicString",
	TagVisibleString:    "VisibleString",
	TagGeneralString:    "GeneralString",
	TagUniversalString:  "UniversalString",
	TagCharacterString:  "CHARACTER STRING",
	TagBMPString:        "BMPString",
}
