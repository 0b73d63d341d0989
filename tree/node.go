package tree

import (
	"iter"
	"strconv"

	"codello.dev/asn1tree"
	"codello.dev/asn1tree/tlv"
)

// Node is a handle to a single TLV element in a [Tree]. The zero Node is
// invalid.
//
// Node exposes everything needed to render a node: its tag, position and size
// within the encoding, its contents, and its children.
type Node struct {
	t   *Tree
	id  index
	gen uint32
}

// IsValid reports whether n refers to a node that is part of its tree.
func (n Node) IsValid() bool {
	return n.t != nil && n.id >= 0 && int(n.id) < len(n.t.nodes) &&
		n.t.nodes[n.id].live && n.t.nodes[n.id].gen == n.gen
}

// check returns ErrInvalidNode if n is not valid.
func (n Node) check() error {
	if !n.IsValid() {
		return ErrInvalidNode
	}
	return nil
}

// entry returns the arena entry of n. It panics if n is invalid.
func (n Node) entry() *entry {
	if !n.IsValid() {
		panic("tree: use of invalid node")
	}
	return &n.t.nodes[n.id]
}

// derived returns the arena entry of n with up-to-date derived values.
func (n Node) derived() *entry {
	e := n.entry()
	n.t.settle()
	return e
}

// Tree returns the tree that n belongs to.
func (n Node) Tree() *Tree { return n.t }

// Equal reports whether n and other refer to the same node.
func (n Node) Equal(other Node) bool { return n == other }

//region Identity and Contents

// Tag returns the identifier octet of n.
func (n Node) Tag() asn1tree.Tag { return n.entry().tag }

// TagName returns the human-readable name of the tag of n.
func (n Node) TagName() string { return n.Tag().Name() }

// Class returns the tag class of n.
func (n Node) Class() asn1tree.Class { return n.Tag().Class() }

// UnusedBits returns the number of unused bits in the last octet of a BIT
// STRING. For other nodes the result is 0.
func (n Node) UnusedBits() uint8 { return n.entry().unused }

// IndefiniteLength reports whether an indefinite-length marker was encountered
// while decoding n.
func (n Node) IndefiniteLength() bool { return n.entry().indefinite }

// Encapsulated reports whether primitive values below n are parsed as nested
// TLV elements when their contents permit it. See [Decoder.Encapsulated].
func (n Node) Encapsulated() bool { return n.entry().encapsulated }

// SetEncapsulated configures whether primitive values decoded into n via
// [Node.Load] are parsed as nested TLV elements. Nodes created below n inherit
// the setting.
func (n Node) SetEncapsulated(b bool) {
	n.entry().encapsulated = b
}

// Data returns the leaf contents of n. For BIT STRING nodes the unused-bits
// octet is not included. If n has children, Data returns nil. The returned
// slice must not be modified, use [Node.SetData] instead.
func (n Node) Data() []byte {
	if l, ok := n.entry().content.(leaf); ok {
		return l
	}
	return nil
}

// HasChildren reports whether n has at least one child.
func (n Node) HasChildren() bool { return n.NumChildren() > 0 }

// IsEmpty reports whether n has neither data nor children.
func (n Node) IsEmpty() bool {
	switch c := n.entry().content.(type) {
	case leaf:
		return len(c) == 0
	case container:
		return len(c) == 0
	}
	return true
}

// NumChildren returns the number of children of n.
func (n Node) NumChildren() int {
	c, _ := n.entry().content.(container)
	return len(c)
}

// Child returns the i-th child of n. It panics if i is out of range.
func (n Node) Child(i int) Node {
	c, _ := n.entry().content.(container)
	return n.t.handle(c[i])
}

// Children returns an iterator over the children of n and their indices.
func (n Node) Children() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		c, _ := n.entry().content.(container)
		for i, child := range c {
			if !yield(i, n.t.handle(child)) {
				return
			}
		}
	}
}

// All returns an iterator over n and all of its descendants in pre-order.
func (n Node) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		n.walk(n.entry(), yield)
	}
}

func (n Node) walk(e *entry, yield func(Node) bool) bool {
	if !yield(n) {
		return false
	}
	c, _ := e.content.(container)
	for _, child := range c {
		if !n.t.handle(child).walk(&n.t.nodes[child], yield) {
			return false
		}
	}
	return true
}

// Parent returns the parent of n. The second return value is false for
// top-level nodes.
func (n Node) Parent() (Node, bool) {
	p := n.entry().parent
	if p == noIndex {
		return Node{}, false
	}
	return n.t.handle(p), true
}

// Index returns the position of n within its parent, or -1 if n is a top-level
// node.
func (n Node) Index() int {
	p := n.entry().parent
	if p == noIndex {
		return -1
	}
	return n.t.childIndex(p, n.id)
}

// childIndex returns the position of child in the children of parent, or -1.
func (t *Tree) childIndex(parent, child index) int {
	c, _ := t.nodes[parent].content.(container)
	for i, id := range c {
		if id == child {
			return i
		}
	}
	return -1
}

//endregion

//region Derived Values

// Offset returns the position of the identifier octet of n, relative to the
// start of the encoding of its top-level node.
func (n Node) Offset() int { return n.derived().offset }

// ContentOffset returns the position of the first contents octet of n. For
// BIT STRING nodes this is the first octet after the unused-bits octet.
func (n Node) ContentOffset() int {
	e := n.derived()
	off := e.offset + 1 + e.lenBytes
	if isBitString(e.tag) {
		off++
	}
	return off
}

// Length returns the length of the contents of n. For BIT STRING nodes the
// unused-bits octet is not included.
func (n Node) Length() int {
	e := n.derived()
	if isBitString(e.tag) {
		return e.length - 1
	}
	return e.length
}

// LengthFieldBytes returns the size of the DER length field of n.
func (n Node) LengthFieldBytes() int { return n.derived().lenBytes }

// HeaderSize returns the size of the identifier octet and the length field of
// n.
func (n Node) HeaderSize() int { return 1 + n.derived().lenBytes }

// Size returns the total size of the encoding of n.
func (n Node) Size() int {
	e := n.derived()
	return 1 + e.lenBytes + e.length
}

// Header returns the TLV header of n as it is encoded.
func (n Node) Header() tlv.Header {
	e := n.derived()
	return tlv.Header{Tag: e.tag, Length: e.length}
}

// Depth returns the nesting depth of n. Top-level nodes have depth 0.
func (n Node) Depth() int { return n.derived().depth }

// Path returns the location of n relative to its top-level node. The path of
// a top-level node is empty. Other paths consist of the child indices leading
// to n, each preceded by a slash, e.g. "/0/3/1".
func (n Node) Path() string { return n.derived().path }

//endregion

// String returns a short description of n for debugging purposes.
func (n Node) String() string {
	if !n.IsValid() {
		return "<invalid node>"
	}
	e := n.derived()
	path := e.path
	if path == "" {
		path = "/"
	}
	return path + " " + e.tag.Name() + " @" + strconv.Itoa(e.offset) + "+" + strconv.Itoa(1+e.lenBytes) + ":" + strconv.Itoa(e.length)
}
