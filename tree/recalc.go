package tree

import (
	"strconv"

	"codello.dev/asn1tree/tlv"
)

// changed records a structural change at id. Unless a batch is in progress the
// tree containing id is recalculated immediately.
func (t *Tree) changed(id index) {
	top := t.top(id)
	if t.batch > 0 {
		t.dirty[top] = struct{}{}
		return
	}
	t.recalc(top)
}

// settle recalculates all trees that have been changed during a batch.
func (t *Tree) settle() {
	if len(t.dirty) == 0 {
		return
	}
	for id := range t.dirty {
		// a dirty node may have been removed or attached to another node since
		if e := &t.nodes[id]; e.live && e.parent == noIndex {
			t.recalc(id)
		}
	}
	clear(t.dirty)
}

// Batch calls fn and suspends recalculation of derived values until fn
// returns. The tree is then recalculated once. Batches can be nested, only the
// outermost batch triggers a recalculation.
//
// Derived values read within fn are always up to date: reading them
// recalculates the tree if necessary.
func (t *Tree) Batch(fn func() error) error {
	t.batch++
	defer func() {
		t.batch--
		if t.batch == 0 {
			t.settle()
		}
	}()
	return fn()
}

// recalc recalculates the derived values of top and all its descendants. top
// gets offset 0, depth 0, and an empty path.
func (t *Tree) recalc(top index) {
	t.recalcs++
	t.measure(top)
	t.place(top, 0, 0, "")
}

// measure computes the contents length and length field size of id and its
// descendants (post-order). It returns the total encoded size of id.
func (t *Tree) measure(id index) int {
	e := &t.nodes[id]
	l := 0
	switch c := e.content.(type) {
	case container:
		for _, child := range c {
			l += t.measure(child)
		}
	case leaf:
		l = len(c)
	}
	if isBitString(e.tag) {
		l++
	}
	e.length = l
	e.lenBytes = tlv.LengthSize(l)
	return 1 + e.lenBytes + l
}

// place assigns offsets, depths and paths to id and its descendants
// (pre-order).
func (t *Tree) place(id index, offset, depth int, path string) {
	e := &t.nodes[id]
	e.offset = offset
	e.depth = depth
	e.path = path

	c, ok := e.content.(container)
	if !ok {
		return
	}
	offset += 1 + e.lenBytes
	if isBitString(e.tag) {
		offset++
	}
	for i, child := range c {
		t.place(child, offset, depth+1, path+"/"+strconv.Itoa(i))
		ce := &t.nodes[child]
		offset += 1 + ce.lenBytes + ce.length
	}
}
