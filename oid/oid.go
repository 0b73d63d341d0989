// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oid implements the contents encoding of the ASN.1 OBJECT IDENTIFIER
// and RELATIVE-OID types as specified in Sections 8.19 and 8.20 of
// [Rec. ITU-T X.690].
//
// Each arc (subidentifier) is encoded as a base-128 variable-length quantity
// in the minimal number of octets, every octet but the last having its high bit
// set. For an OBJECT IDENTIFIER the first two arcs are combined into a single
// subidentifier 40*arc0 + arc1. A RELATIVE-OID encodes every arc on its own.
//
// The textual form of both types is a dot-separated sequence of non-negative
// decimal integers, e.g. "1.2.840.113549.1.1.11".
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
package oid

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"codello.dev/asn1tree/internal/vlq"
)

// ErrMalformed indicates that a textual or binary object identifier violates
// the encoding rules. Errors returned by this package wrap ErrMalformed.
var ErrMalformed = errors.New("oid: malformed object identifier")

// An ObjectIdentifier represents an ASN.1 OBJECT IDENTIFIER. The semantics of an
// object identifier are specified in [Rec. ITU-T X.660]. A valid
// ObjectIdentifier has at least two arcs.
//
// See also section 32 of Rec. ITU-T X.680.
//
// [Rec. ITU-T X.660]: https://www.itu.int/rec/T-REC-X.660
type ObjectIdentifier []uint64

// RelativeOID represents the ASN.1 RELATIVE-OID type. This is similar to the
// [ObjectIdentifier] type, but a RelativeOID is only a suffix of an OID. A
// valid RelativeOID has at least one arc.
type RelativeOID []uint64

//region Textual Form

// Parse parses the dotted decimal form of an object identifier. At least two
// arcs are required.
func Parse(s string) (ObjectIdentifier, error) {
	arcs, err := parseArcs(s)
	if err != nil {
		return nil, err
	}
	oid := ObjectIdentifier(arcs)
	if err = oid.validate(); err != nil {
		return nil, err
	}
	return oid, nil
}

// ParseRelative parses the dotted decimal form of a relative object
// identifier. At least one arc is required.
func ParseRelative(s string) (RelativeOID, error) {
	arcs, err := parseArcs(s)
	if err != nil {
		return nil, err
	}
	return arcs, nil
}

// parseArcs splits s at dots and parses each component as a decimal integer.
func parseArcs(s string) ([]uint64, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrMalformed)
	}
	parts := strings.Split(s, ".")
	arcs := make([]uint64, len(parts))
	for i, p := range parts {
		if p == "" || p[0] == '+' {
			return nil, fmt.Errorf("%w: invalid arc %q", ErrMalformed, p)
		}
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid arc %q", ErrMalformed, p)
		}
		arcs[i] = v
	}
	return arcs, nil
}

// formatArcs returns the dot-separated notation of arcs.
func formatArcs(arcs []uint64) string {
	var s strings.Builder
	s.Grow(32)

	buf := make([]byte, 0, 20)
	for i, v := range arcs {
		if i > 0 {
			s.WriteByte('.')
		}
		s.Write(strconv.AppendUint(buf, v, 10))
	}

	return s.String()
}

// String returns the dot-separated notation of oid.
func (oid ObjectIdentifier) String() string {
	return formatArcs(oid)
}

// Equal reports whether oid and other represent the same identifier.
func (oid ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	return slices.Equal(oid, other)
}

// HasPrefix reports whether oid starts with all arcs of prefix.
func (oid ObjectIdentifier) HasPrefix(prefix ObjectIdentifier) bool {
	return len(oid) >= len(prefix) && slices.Equal(oid[:len(prefix)], prefix)
}

// String returns the dot-separated notation of oid.
func (oid RelativeOID) String() string {
	return formatArcs(oid)
}

// Equal reports whether oid and other represent the same identifier.
func (oid RelativeOID) Equal(other RelativeOID) bool {
	return slices.Equal(oid, other)
}

// MarshalText implements [encoding.TextMarshaler].
func (oid ObjectIdentifier) MarshalText() ([]byte, error) {
	if err := oid.validate(); err != nil {
		return nil, err
	}
	return []byte(oid.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (oid *ObjectIdentifier) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err == nil {
		*oid = v
	}
	return err
}

//endregion

//region Binary Form

// validate reports whether oid can be encoded. The first arc must be 0, 1, or
// 2. For first arcs 0 and 1 the second arc must be at most 39.
func (oid ObjectIdentifier) validate() error {
	switch {
	case len(oid) < 2:
		return fmt.Errorf("%w: at least two arcs required", ErrMalformed)
	case oid[0] > 2:
		return fmt.Errorf("%w: first arc %d out of range", ErrMalformed, oid[0])
	case oid[0] < 2 && oid[1] > 39:
		return fmt.Errorf("%w: second arc %d out of range", ErrMalformed, oid[1])
	case oid[0] == 2 && oid[1] > 1<<64-1-80:
		return fmt.Errorf("%w: second arc %d out of range", ErrMalformed, oid[1])
	}
	return nil
}

// AppendBinary appends the contents octets of oid to b and returns the
// extended slice.
func (oid ObjectIdentifier) AppendBinary(b []byte) ([]byte, error) {
	if err := oid.validate(); err != nil {
		return b, err
	}
	b = vlq.Append(b, oid[0]*40+oid[1])
	for _, arc := range oid[2:] {
		b = vlq.Append(b, arc)
	}
	return b, nil
}

// MarshalBinary implements [encoding.BinaryMarshaler]. It returns the contents
// octets of oid, without tag and length.
func (oid ObjectIdentifier) MarshalBinary() ([]byte, error) {
	return oid.AppendBinary(nil)
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler]. It decodes the
// contents octets of an OBJECT IDENTIFIER.
func (oid *ObjectIdentifier) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: zero length", ErrMalformed)
	}
	// The first subidentifier is 40*arc0 + arc1:
	// According to this packing, arc0 can take the values 0, 1 and 2 only.
	// When arc0 = 0 or arc0 = 1, then arc1 is <= 39. When arc0 = 2,
	// then there are no restrictions on arc1.
	v, n, err := readArc(data)
	if err != nil {
		return err
	}
	s := make(ObjectIdentifier, 2, len(data)-n+2)
	if v < 80 {
		s[0], s[1] = v/40, v%40
	} else {
		s[0], s[1] = 2, v-80
	}
	if s, err = appendArcs(s, data[n:]); err != nil {
		return err
	}
	*oid = s
	return nil
}

// AppendBinary appends the contents octets of oid to b and returns the
// extended slice.
func (oid RelativeOID) AppendBinary(b []byte) ([]byte, error) {
	if len(oid) == 0 {
		return b, fmt.Errorf("%w: at least one arc required", ErrMalformed)
	}
	for _, arc := range oid {
		b = vlq.Append(b, arc)
	}
	return b, nil
}

// MarshalBinary implements [encoding.BinaryMarshaler]. It returns the contents
// octets of oid, without tag and length.
func (oid RelativeOID) MarshalBinary() ([]byte, error) {
	return oid.AppendBinary(nil)
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler]. It decodes the
// contents octets of a RELATIVE-OID.
func (oid *RelativeOID) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: zero length", ErrMalformed)
	}
	s, err := appendArcs(make(RelativeOID, 0, len(data)), data)
	if err != nil {
		return err
	}
	*oid = s
	return nil
}

// readArc decodes the subidentifier at the start of b and returns it with the
// number of octets consumed.
func readArc(b []byte) (uint64, int, error) {
	v, n, err := vlq.Parse(b)
	switch {
	case errors.Is(err, vlq.ErrTruncated):
		return 0, n, fmt.Errorf("%w: truncated subidentifier", ErrMalformed)
	case errors.Is(err, vlq.ErrOverflow):
		return 0, n, fmt.Errorf("%w: subidentifier too large", ErrMalformed)
	}
	return v, n, err
}

// appendArcs decodes all subidentifiers in b and appends them to s.
func appendArcs[S ~[]uint64](s S, b []byte) (S, error) {
	for len(b) > 0 {
		v, n, err := readArc(b)
		if err != nil {
			return nil, err
		}
		s = append(s, v)
		b = b[n:]
	}
	return s, nil
}

//endregion

// Encode parses the dotted decimal form of an object identifier and returns its
// contents octets.
func Encode(s string) ([]byte, error) {
	oid, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return oid.MarshalBinary()
}

// Decode decodes the contents octets of an object identifier and returns its
// dotted decimal form.
func Decode(b []byte) (string, error) {
	var oid ObjectIdentifier
	if err := oid.UnmarshalBinary(b); err != nil {
		return "", err
	}
	return oid.String(), nil
}

// EncodeRelative parses the dotted decimal form of a relative object identifier
// and returns its contents octets.
func EncodeRelative(s string) ([]byte, error) {
	oid, err := ParseRelative(s)
	if err != nil {
		return nil, err
	}
	return oid.MarshalBinary()
}

// DecodeRelative decodes the contents octets of a relative object identifier
// and returns its dotted decimal form.
func DecodeRelative(b []byte) (string, error) {
	var oid RelativeOID
	if err := oid.UnmarshalBinary(b); err != nil {
		return "", err
	}
	return oid.String(), nil
}
