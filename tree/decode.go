// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"bytes"
	"errors"
	"io"

	"codello.dev/asn1tree"
	"codello.dev/asn1tree/tlv"
)

// DefaultMaxDepth is the maximum nesting depth used by a [Decoder] that does
// not specify one.
const DefaultMaxDepth = 64

// A Decoder decodes BER or DER encoded data into a [Tree]. Decoding is purely
// syntactic: every TLV element becomes a [Node], no schema is applied.
//
// Values with a constructed tag are decoded as containers. If the contents of
// such a value cannot be decoded as a sequence of TLV elements, the value is
// kept as a leaf holding the raw contents instead.
type Decoder struct {
	// Encapsulated enables opportunistic parsing of primitive values. If set,
	// universal primitive values that commonly wrap other encodings (e.g. OCTET
	// STRING and BIT STRING) are decoded as containers if their contents consist
	// of valid TLV elements. Otherwise they are kept as leaves.
	Encapsulated bool

	// MaxDepth limits the nesting depth of decoded values. Top-level values
	// have depth 0. If MaxDepth is zero or negative, [DefaultMaxDepth] is used.
	// Exceeding the limit fails with ErrTooDeep.
	MaxDepth int
}

// NewDecoder returns a Decoder with encapsulated parsing enabled and the
// default depth limit.
func NewDecoder() *Decoder {
	return &Decoder{Encapsulated: true, MaxDepth: DefaultMaxDepth}
}

func (d *Decoder) maxDepth() int {
	if d.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return d.MaxDepth
}

// Decode decodes exactly one TLV element from b. The root of the returned tree
// is the decoded element. If b contains data after the element, the error
// wraps ErrTrailingData.
//
// Errors returned by Decode are of type [*tlv.SyntaxError].
func (d *Decoder) Decode(b []byte) (*Tree, error) {
	t := newTree(*d)
	id, err := t.decodeTop(b)
	if err != nil {
		return nil, err
	}
	t.root = id
	t.recalc(id)
	return t, nil
}

// DecodeReader reads exactly one TLV element from r and decodes it. Data
// following the element is not consumed. If r is at its end, io.EOF is
// returned.
func (d *Decoder) DecodeReader(r io.Reader) (*Tree, error) {
	b, err := tlv.ReadElement(r)
	if err != nil {
		return nil, err
	}
	return d.Decode(b)
}

// Decode decodes b using the default [Decoder] settings.
func Decode(b []byte) (*Tree, error) {
	return NewDecoder().Decode(b)
}

// DecodeNode decodes exactly one TLV element from b into a new detached node
// of t. The decoder settings used to create t apply. See [Tree.NewNode].
func (t *Tree) DecodeNode(b []byte) (Node, error) {
	id, err := t.decodeTop(b)
	if err != nil {
		return Node{}, err
	}
	t.changed(id)
	return t.handle(id), nil
}

// Load replaces the tag and contents of n with the TLV element encoded in b.
// The encapsulation setting of n applies. The children of n are removed from
// the tree. If b cannot be decoded, n remains unchanged.
func (n Node) Load(b []byte) error {
	if err := n.check(); err != nil {
		return err
	}
	t := n.t
	depth := n.Depth()
	e := n.entry()
	encapsulated := e.encapsulated

	tmp := t.alloc(0, e.parent)
	t.nodes[tmp].encapsulated = encapsulated
	r := tlv.NewReader(b)
	err := t.decode(r, tmp, depth)
	if err == nil && r.Len() > 0 {
		err = &tlv.SyntaxError{Err: ErrTrailingData, ByteOffset: r.Offset()}
	}
	if err != nil {
		t.release(tmp)
		return err
	}

	t.releaseChildren(n.id)
	src := t.nodes[tmp]
	dst := &t.nodes[n.id]
	dst.tag = src.tag
	dst.unused = src.unused
	dst.indefinite = src.indefinite
	dst.content = src.content
	if c, ok := src.content.(container); ok {
		for _, child := range c {
			t.nodes[child].parent = n.id
		}
	}
	t.discard(tmp)
	t.changed(n.id)
	return nil
}

// decodeTop decodes b into a new top-level node. On failure no node is left
// behind.
func (t *Tree) decodeTop(b []byte) (index, error) {
	id := t.alloc(0, noIndex)
	r := tlv.NewReader(b)
	err := t.decode(r, id, 0)
	if err == nil && r.Len() > 0 {
		err = &tlv.SyntaxError{Err: ErrTrailingData, ByteOffset: r.Offset()}
	}
	if err != nil {
		t.release(id)
		return noIndex, err
	}
	return id, nil
}

// mayEncapsulate reports whether tag identifies a primitive value whose
// contents might be another encoding.
func mayEncapsulate(tag asn1tree.Tag) bool {
	if tag.Class() != asn1tree.ClassUniversal || tag.Constructed() {
		return false
	}
	switch tag.Number() {
	case asn1tree.TagBitString, asn1tree.TagOctetString, asn1tree.TagSequence,
		asn1tree.TagSet, asn1tree.TagExternal, asn1tree.TagPrintableString,
		asn1tree.TagIA5String, asn1tree.TagUniversalString,
		asn1tree.TagVisibleString, asn1tree.TagNumericString, asn1tree.TagUTCTime,
		asn1tree.TagUTF8String, asn1tree.TagBMPString, asn1tree.TagGeneralString,
		asn1tree.TagGeneralizedTime, asn1tree.TagTeletexString,
		asn1tree.TagVideotexString, asn1tree.TagGraphicString:
		return true
	}
	return false
}

// syntaxError wraps err in a [*tlv.SyntaxError]. An unexpected end of the
// input is reported as ErrTruncated.
func syntaxError(err error, offset int64, h tlv.Header) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = ErrTruncated
	}
	return &tlv.SyntaxError{Err: err, ByteOffset: offset, Header: h}
}

// decode decodes the next TLV element of r into the empty node id. depth is
// the nesting depth of id.
func (t *Tree) decode(r *tlv.Reader, id index, depth int) error {
	if depth > t.dec.maxDepth() {
		return syntaxError(ErrTooDeep, r.Offset(), tlv.Header{})
	}
	b, err := r.PeekByte()
	if err != nil {
		return syntaxError(err, r.Offset(), tlv.Header{})
	}
	tag := asn1tree.Tag(b)
	if tag.Constructed() || (t.nodes[id].encapsulated && mayEncapsulate(tag)) {
		m := r.Mark()
		err = t.decodeContainer(r, id, depth)
		if err == nil || errors.Is(err, ErrTooDeep) {
			return err
		}
		// the contents are not a sequence of TLVs, keep them as they are
		t.releaseChildren(id)
		t.nodes[id].unused = 0
		r.Rewind(m)
	}
	return t.decodeLeaf(r, id)
}

// decodeContainer decodes the next TLV element of r into id, decoding its
// contents as child nodes.
func (t *Tree) decodeContainer(r *tlv.Reader, id index, depth int) error {
	start := r.Offset()
	h, err := tlv.ReadHeader(r)
	if err != nil {
		return syntaxError(err, start, tlv.Header{})
	}
	if h.Length == tlv.LengthIndefinite {
		return syntaxError(ErrIndefiniteLength, start, h)
	}
	if h.Length > r.Len() {
		return syntaxError(ErrTruncated, start, h)
	}
	// children check the tag of their parent
	t.nodes[id].tag = h.Tag

	n := h.Length
	if isBitString(h.Tag) {
		if n == 0 {
			return syntaxError(ErrTruncated, start, h)
		}
		u, _ := r.ReadByte()
		if u != 0 {
			// only whole octets can hold an encoding
			return syntaxError(ErrUnusedBits, start, h)
		}
		t.nodes[id].unused = u
		n--
	}
	sub, err := r.Sub(n)
	if err != nil {
		return syntaxError(err, start, h)
	}

	var children container
	for sub.Len() > 0 {
		child := t.alloc(0, id)
		children = append(children, child)
		t.nodes[id].content = children
		if err = t.decode(sub, child, depth+1); err != nil {
			return err
		}
	}
	if len(children) == 0 {
		t.nodes[id].content = leaf(nil)
	}
	return nil
}

// decodeLeaf decodes the next TLV element of r into id, keeping its contents
// as leaf data.
func (t *Tree) decodeLeaf(r *tlv.Reader, id index) error {
	start := r.Offset()
	h, err := tlv.ReadHeader(r)
	if err != nil {
		return syntaxError(err, start, tlv.Header{})
	}
	e := &t.nodes[id]
	if h.Length == tlv.LengthIndefinite {
		e.indefinite = true
		return syntaxError(ErrIndefiniteLength, start, h)
	}
	if h.Length > r.Len() {
		return syntaxError(ErrTruncated, start, h)
	}
	if num := h.Tag.Number(); num < 1 || num > asn1tree.MaxNumber {
		if e.parent == noIndex || !t.nodes[e.parent].tag.Constructed() {
			return syntaxError(ErrInvalidTag, start, h)
		}
	}

	n := h.Length
	var unused byte
	if isBitString(h.Tag) {
		if n == 0 {
			return syntaxError(ErrTruncated, start, h)
		}
		unused, _ = r.ReadByte()
		n--
	}
	data, err := r.Next(n)
	if err != nil {
		return syntaxError(err, start, h)
	}
	e.tag = h.Tag
	e.unused = unused
	e.content = leaf(bytes.Clone(data))
	return nil
}
