// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree implements a mutable tree representation of BER/DER-encoded
// data. A [Tree] is created by decoding bytes (see [Decoder]) or built
// programmatically (see [New]). Each [Node] of the tree is one
// tag-length-value (TLV) element. A node either holds leaf data or an ordered
// list of child nodes, never both.
//
// # Derived Values
//
// The offset, length, length field size, depth and path of each node are
// derived from the shape of the tree. They are recalculated for the whole tree
// after every structural change. Because DER length fields are
// self-describing, the recalculation uses two passes: a bottom-up pass
// computing the lengths and a top-down pass assigning offsets and paths. Use
// [Tree.Batch] to apply multiple changes with a single recalculation.
//
// # Nodes
//
// Nodes are stored in an arena owned by the [Tree]. A [Node] value is a small
// handle into that arena and can be copied freely. Removing a node from the
// tree invalidates all handles to it and its descendants. Methods that modify
// the tree return [ErrInvalidNode] when called with an invalid handle. Methods
// that only read from a node panic if the handle is invalid.
//
// Nodes created via [Tree.NewNode] or [Tree.DecodeNode] are detached. A
// detached node is its own top-level element until it is attached to a parent
// using one of the insertion methods.
//
// # Concurrency
//
// A Tree is not safe for concurrent use. Even methods reading from a node may
// update the derived values of the tree.
package tree

import (
	"errors"

	"codello.dev/asn1tree"
	"codello.dev/asn1tree/tlv"
)

var (
	// ErrInvalidTag indicates a tag number outside of [1,30] in a context where
	// such a tag is not accepted.
	ErrInvalidTag = errors.New("invalid tag number")

	// ErrTooDeep indicates that the nesting depth of the input exceeds the
	// configured maximum.
	ErrTooDeep = errors.New("nesting too deep")

	// ErrTrailingData indicates that the input contains data after the top-level
	// element.
	ErrTrailingData = errors.New("extra data after data value encoding")

	// ErrIncompatibleState indicates an attempt to combine leaf data and child
	// nodes in the same node.
	ErrIncompatibleState = errors.New("tree: node cannot hold both data and children")

	// ErrIndexOutOfRange indicates an invalid child index.
	ErrIndexOutOfRange = errors.New("tree: child index out of range")

	// ErrInvalidNode indicates a node handle that has been removed from its tree
	// or belongs to a different tree.
	ErrInvalidNode = errors.New("tree: invalid node")

	// ErrAttached indicates an attempt to attach a node that already has a parent
	// or is the root of its tree.
	ErrAttached = errors.New("tree: node is already attached")

	// ErrCycle indicates an attempt to attach a node below one of its own
	// descendants.
	ErrCycle = errors.New("tree: node is an ancestor of the parent")

	// ErrNotChild indicates a reference node that is not a child of the node
	// being modified.
	ErrNotChild = errors.New("tree: node is not a child")

	// ErrUnusedBits indicates a number of unused bits larger than 7.
	ErrUnusedBits = errors.New("tree: unused bits out of range")
)

// These errors are defined by the tlv package. They are repeated here for
// convenience.
var (
	ErrTruncated        = tlv.ErrTruncated
	ErrLengthOverflow   = tlv.ErrLengthOverflow
	ErrIndefiniteLength = tlv.ErrIndefiniteLength
)

// index addresses an entry in the arena of a [Tree].
type index int32

// noIndex is the parent of top-level nodes.
const noIndex index = -1

// content is the payload of a node. It is either a leaf or a container.
type content interface {
	isContent()
}

// leaf holds the contents octets of a primitive node. For BIT STRING nodes the
// unused-bits octet is not part of the leaf.
type leaf []byte

// container holds the children of a node.
type container []index

func (leaf) isContent()      {}
func (container) isContent() {}

// entry is a single node in the arena.
type entry struct {
	gen  uint32 // incremented on every release
	live bool

	tag          asn1tree.Tag
	unused       uint8
	indefinite   bool
	encapsulated bool
	content      content
	parent       index

	// derived values, maintained by recalc
	offset   int
	length   int // contents length including the unused-bits octet
	lenBytes int
	depth    int
	path     string
}

// Tree is an arena of nodes with a designated root. The zero value is not
// usable, create trees with [New] or a [Decoder].
type Tree struct {
	nodes []entry
	free  []index
	root  index

	dec Decoder // settings for DecodeNode and Node.Load

	batch   int
	dirty   map[index]struct{} // top-level nodes awaiting recalculation
	recalcs int                // number of recalculations, for testing
}

// New creates a new tree with an empty root node with the specified tag. The
// tree uses the default [Decoder] settings for [Tree.DecodeNode].
func New(root asn1tree.Tag) *Tree {
	t := newTree(*NewDecoder())
	t.root = t.alloc(root, noIndex)
	t.recalc(t.root)
	return t
}

// newTree creates an empty tree without a root.
func newTree(dec Decoder) *Tree {
	return &Tree{
		root:  noIndex,
		dec:   dec,
		dirty: make(map[index]struct{}),
	}
}

// Root returns the root node of t.
func (t *Tree) Root() Node {
	return t.handle(t.root)
}

// NewNode creates a new, empty, detached node with the specified tag. The node
// can be attached to the tree via the insertion methods of [Node].
func (t *Tree) NewNode(tag asn1tree.Tag) Node {
	id := t.alloc(tag, noIndex)
	t.changed(id)
	return t.handle(id)
}

// NewLeaf creates a new detached node with the specified tag and a copy of
// data as contents.
func (t *Tree) NewLeaf(tag asn1tree.Tag, data []byte) Node {
	n := t.NewNode(tag)
	// n is a fresh leaf, SetData cannot fail
	_ = n.SetData(data)
	return n
}

// handle returns a handle for the node at id.
func (t *Tree) handle(id index) Node {
	return Node{t: t, id: id, gen: t.nodes[id].gen}
}

// alloc creates a new empty leaf in the arena. The encapsulation setting is
// inherited from parent or taken from the decoder settings of t.
func (t *Tree) alloc(tag asn1tree.Tag, parent index) index {
	e := entry{
		live:    true,
		tag:     tag,
		content: leaf(nil),
		parent:  parent,
	}
	if parent != noIndex {
		e.encapsulated = t.nodes[parent].encapsulated
	} else {
		e.encapsulated = t.dec.Encapsulated
	}
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		e.gen = t.nodes[id].gen
		t.nodes[id] = e
		return id
	}
	t.nodes = append(t.nodes, e)
	return index(len(t.nodes) - 1)
}

// release frees the node at id and all of its descendants. The parent of id is
// not updated.
func (t *Tree) release(id index) {
	t.releaseChildren(id)
	t.discard(id)
}

// releaseChildren frees all descendants of id and turns id into an empty
// leaf.
func (t *Tree) releaseChildren(id index) {
	if c, ok := t.nodes[id].content.(container); ok {
		for _, child := range c {
			t.release(child)
		}
	}
	t.nodes[id].content = leaf(nil)
}

// discard frees the entry at id without touching its descendants.
func (t *Tree) discard(id index) {
	t.nodes[id] = entry{gen: t.nodes[id].gen + 1}
	t.free = append(t.free, id)
}

// top returns the top-level ancestor of id.
func (t *Tree) top(id index) index {
	for t.nodes[id].parent != noIndex {
		id = t.nodes[id].parent
	}
	return id
}

// isBitString reports whether tag is the universal primitive BIT STRING tag.
// The contents of such a value start with an unused-bits octet.
func isBitString(tag asn1tree.Tag) bool {
	return tag == asn1tree.BitString
}
