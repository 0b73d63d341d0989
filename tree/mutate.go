package tree

import (
	"bytes"
	"slices"

	"codello.dev/asn1tree"
)

//region Attaching Nodes

// canAttach checks whether c can become a child of n.
func (n Node) canAttach(c Node) error {
	if err := n.check(); err != nil {
		return err
	}
	if err := c.check(); err != nil {
		return err
	}
	if n.t != c.t {
		return ErrInvalidNode
	}
	if c.entry().parent != noIndex || c.id == n.t.root {
		return ErrAttached
	}
	for id := n.id; id != noIndex; id = n.t.nodes[id].parent {
		if id == c.id {
			return ErrCycle
		}
	}
	if l, ok := n.entry().content.(leaf); ok && len(l) > 0 {
		return ErrIncompatibleState
	}
	return nil
}

// insert attaches c as the i-th child of n.
func (n Node) insert(i int, c Node) (int, error) {
	if err := n.canAttach(c); err != nil {
		return -1, err
	}
	e := n.entry()
	children, _ := e.content.(container)
	if i < 0 || i > len(children) {
		return -1, ErrIndexOutOfRange
	}
	e.content = slices.Insert(children, i, c.id)
	c.entry().parent = n.id
	n.t.changed(n.id)
	return i, nil
}

// childPosition returns the index of ref within the children of n.
func (n Node) childPosition(ref Node) (int, error) {
	if err := n.check(); err != nil {
		return -1, err
	}
	if err := ref.check(); err != nil {
		return -1, err
	}
	if ref.t != n.t || ref.entry().parent != n.id {
		return -1, ErrNotChild
	}
	return n.t.childIndex(n.id, ref.id), nil
}

// AddChild attaches the detached node c as the last child of n and returns its
// index. Nodes with leaf data cannot have children.
func (n Node) AddChild(c Node) (int, error) {
	if err := n.check(); err != nil {
		return -1, err
	}
	return n.insert(n.NumChildren(), c)
}

// InsertChild attaches the detached node c as a child of n before the child at
// index i. If i equals the number of children, c is appended.
func (n Node) InsertChild(i int, c Node) (int, error) {
	return n.insert(i, c)
}

// InsertChildBefore attaches the detached node c as a child of n directly
// before the child ref.
func (n Node) InsertChildBefore(ref, c Node) (int, error) {
	i, err := n.childPosition(ref)
	if err != nil {
		return -1, err
	}
	return n.insert(i, c)
}

// InsertChildAfter attaches the detached node c as a child of n directly after
// the child at index i.
func (n Node) InsertChildAfter(i int, c Node) (int, error) {
	if err := n.check(); err != nil {
		return -1, err
	}
	if i < 0 || i >= n.NumChildren() {
		return -1, ErrIndexOutOfRange
	}
	return n.insert(i+1, c)
}

// InsertChildAfterNode attaches the detached node c as a child of n directly
// after the child ref.
func (n Node) InsertChildAfterNode(ref, c Node) (int, error) {
	i, err := n.childPosition(ref)
	if err != nil {
		return -1, err
	}
	return n.insert(i+1, c)
}

//endregion

//region Removing Nodes

// RemoveChild removes the child at index i and all of its descendants from the
// tree. Handles to the removed nodes become invalid.
//
// The returned node is a suggestion for the next selection in an editor: the
// child that followed the removed one, else the child that preceded it, else n
// itself.
func (n Node) RemoveChild(i int) (Node, error) {
	if err := n.check(); err != nil {
		return Node{}, err
	}
	e := n.entry()
	children, _ := e.content.(container)
	if i < 0 || i >= len(children) {
		return Node{}, ErrIndexOutOfRange
	}
	id := children[i]
	children = slices.Delete(children, i, i+1)
	e.content = children
	n.t.release(id)
	n.t.changed(n.id)

	switch {
	case i < len(children):
		return n.t.handle(children[i]), nil
	case i > 0:
		return n.t.handle(children[i-1]), nil
	}
	return n, nil
}

// RemoveChildNode removes the child c of n. See [Node.RemoveChild].
func (n Node) RemoveChildNode(c Node) (Node, error) {
	i, err := n.childPosition(c)
	if err != nil {
		return Node{}, err
	}
	return n.RemoveChild(i)
}

// Detach removes n from its parent without invalidating it. Afterward n is a
// detached top-level node that can be attached elsewhere in the tree.
// Detaching a top-level node has no effect.
func (n Node) Detach() error {
	if err := n.check(); err != nil {
		return err
	}
	p := n.entry().parent
	if p == noIndex {
		return nil
	}
	i := n.t.childIndex(p, n.id)
	pe := &n.t.nodes[p]
	pe.content = slices.Delete(pe.content.(container), i, i+1)
	n.entry().parent = noIndex
	n.t.changed(p)
	n.t.changed(n.id)
	return nil
}

// ClearAll removes all children and the leaf data of n. The tag of n is kept.
func (n Node) ClearAll() error {
	if err := n.check(); err != nil {
		return err
	}
	n.t.releaseChildren(n.id)
	n.entry().unused = 0
	n.t.changed(n.id)
	return nil
}

//endregion

//region Modifying Nodes

// SetData replaces the leaf data of n with a copy of b. For BIT STRING nodes b
// does not include the unused-bits octet. If n has children, SetData fails with
// ErrIncompatibleState and n remains unchanged.
func (n Node) SetData(b []byte) error {
	if err := n.check(); err != nil {
		return err
	}
	e := n.entry()
	if c, ok := e.content.(container); ok && len(c) > 0 {
		return ErrIncompatibleState
	}
	e.content = leaf(bytes.Clone(b))
	n.t.changed(n.id)
	return nil
}

// SetTag changes the identifier octet of n. The contents of n are not
// modified.
func (n Node) SetTag(tag asn1tree.Tag) error {
	if err := n.check(); err != nil {
		return err
	}
	n.entry().tag = tag
	n.t.changed(n.id)
	return nil
}

// SetUnusedBits sets the number of unused bits in the last octet of a BIT
// STRING. The value is only encoded for BIT STRING nodes.
func (n Node) SetUnusedBits(u uint8) error {
	if err := n.check(); err != nil {
		return err
	}
	if u > 7 {
		return ErrUnusedBits
	}
	n.entry().unused = u
	return nil
}

//endregion
