// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrEmptyDocument indicates an operation on a [Document] that has not been
// loaded yet.
var ErrEmptyDocument = errors.New("tree: document is empty")

// A Document owns a [Tree] together with the byte image it was most recently
// loaded from or saved to. A failed load leaves the document unchanged.
//
// The zero value is an empty document using the default [Decoder] settings.
type Document struct {
	// Decoder configures how documents are decoded. If nil, the settings of
	// [NewDecoder] are used.
	Decoder *Decoder

	tree *Tree
	raw  []byte
}

// NewDocument returns an empty document using dec to decode data.
func NewDocument(dec *Decoder) *Document {
	return &Document{Decoder: dec}
}

func (d *Document) decoder() *Decoder {
	if d.Decoder == nil {
		return NewDecoder()
	}
	return d.Decoder
}

// Load reads all data from r and decodes it as a single TLV element.
func (d *Document) Load(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.LoadBytes(b)
}

// LoadBytes decodes b as a single TLV element. The document keeps a copy of b.
func (d *Document) LoadBytes(b []byte) error {
	t, err := d.decoder().Decode(b)
	if err != nil {
		return err
	}
	d.tree = t
	d.raw = bytes.Clone(b)
	return nil
}

// LoadFile reads and decodes the named file.
func (d *Document) LoadFile(name string) error {
	b, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	if err = d.LoadBytes(b); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Save writes the encoding of the document to w.
func (d *Document) Save(w io.Writer) error {
	if d.tree == nil {
		return ErrEmptyDocument
	}
	b, err := d.tree.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err = w.Write(b); err != nil {
		return err
	}
	d.raw = b
	return nil
}

// SaveFile writes the encoding of the document to the named file, creating it
// if necessary.
func (d *Document) SaveFile(name string) error {
	var buf bytes.Buffer
	if d.tree != nil {
		buf.Grow(d.tree.Root().Size())
	}
	if err := d.Save(&buf); err != nil {
		return err
	}
	return os.WriteFile(name, buf.Bytes(), 0o644)
}

// Tree returns the tree of d, or nil if d is empty.
func (d *Document) Tree() *Tree {
	return d.tree
}

// SetTree replaces the tree of d. The raw byte image is kept until the
// document is saved.
func (d *Document) SetTree(t *Tree) {
	d.tree = t
}

// Root returns the root node of d. If d is empty, the returned node is
// invalid.
func (d *Document) Root() Node {
	if d.tree == nil {
		return Node{}
	}
	return d.tree.Root()
}

// Raw returns the byte image the document was most recently loaded from or
// saved to. The returned slice must not be modified.
func (d *Document) Raw() []byte {
	return d.raw
}

// Modified reports whether the current encoding of the tree differs from
// [Document.Raw].
func (d *Document) Modified() bool {
	if d.tree == nil {
		return false
	}
	b, err := d.tree.MarshalBinary()
	return err != nil || !bytes.Equal(b, d.raw)
}

// Find returns the node at path. See [Node.Find].
func (d *Document) Find(path string) (Node, bool) {
	if d.tree == nil {
		return Node{}, false
	}
	return d.tree.Find(path)
}
