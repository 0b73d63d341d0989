package tree

import (
	"io"

	"codello.dev/asn1tree/tlv"
)

// AppendBinary appends the DER encoding of n and its descendants to b and
// returns the extended slice.
func (n Node) AppendBinary(b []byte) ([]byte, error) {
	if err := n.check(); err != nil {
		return b, err
	}
	n.t.settle()
	return n.t.appendNode(b, n.id), nil
}

// MarshalBinary implements [encoding.BinaryMarshaler]. It returns the complete
// encoding of n, including the header.
func (n Node) MarshalBinary() ([]byte, error) {
	if err := n.check(); err != nil {
		return nil, err
	}
	return n.AppendBinary(make([]byte, 0, n.Size()))
}

// Bytes returns the complete encoding of n. It panics if n is invalid.
func (n Node) Bytes() []byte {
	b, err := n.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return b
}

// WriteTo writes the complete encoding of n to w. It implements
// [io.WriterTo].
func (n Node) WriteTo(w io.Writer) (int64, error) {
	b, err := n.MarshalBinary()
	if err != nil {
		return 0, err
	}
	m, err := w.Write(b)
	return int64(m), err
}

// MarshalBinary returns the encoding of the root of t.
func (t *Tree) MarshalBinary() ([]byte, error) {
	return t.Root().MarshalBinary()
}

// appendNode writes the tag, the DER length, the unused-bits octet of a BIT
// STRING, and then either the leaf data or the encodings of all children.
func (t *Tree) appendNode(b []byte, id index) []byte {
	e := &t.nodes[id]
	b = append(b, byte(e.tag))
	b = tlv.AppendLength(b, e.length)
	if isBitString(e.tag) {
		b = append(b, e.unused)
	}
	switch c := e.content.(type) {
	case leaf:
		b = append(b, c...)
	case container:
		for _, child := range c {
			b = t.appendNode(b, child)
		}
	}
	return b
}
