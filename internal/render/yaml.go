package render

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-yaml"

	"codello.dev/asn1tree"
	"codello.dev/asn1tree/tree"
)

// ErrInvalidElement indicates an [Element] that cannot be converted into a
// node.
var ErrInvalidElement = errors.New("render: invalid element")

// Element is the YAML representation of a node. Only Tag, UnusedBits, Data
// and Children are used by [Import], all other fields are informational.
type Element struct {
	Tag         string     `yaml:"tag"`
	Name        string     `yaml:"name,omitempty"`
	Class       string     `yaml:"class,omitempty"`
	Constructed bool       `yaml:"constructed,omitempty"`
	Offset      int        `yaml:"offset"`
	Header      int        `yaml:"header"`
	Length      int        `yaml:"length"`
	UnusedBits  uint8      `yaml:"unused_bits,omitempty"`
	Value       string     `yaml:"value,omitempty"`
	Data        string     `yaml:"data,omitempty"`
	Children    []*Element `yaml:"children,omitempty"`
}

// Export converts n and its descendants into elements.
func Export(n tree.Node) *Element {
	tag := n.Tag()
	e := &Element{
		Tag:         fmt.Sprintf("%02x", byte(tag)),
		Name:        tag.Name(),
		Class:       tag.Class().String(),
		Constructed: tag.Constructed(),
		Offset:      n.Offset(),
		Header:      n.HeaderSize(),
		Length:      n.Length(),
		UnusedBits:  n.UnusedBits(),
	}
	if n.HasChildren() {
		for _, c := range n.Children() {
			e.Children = append(e.Children, Export(c))
		}
		return e
	}
	if d := n.Data(); len(d) > 0 {
		e.Data = hex.EncodeToString(d)
		if !n.Tag().Is(asn1tree.TagOctetString) {
			e.Value = Value(n, len(d))
		}
	}
	return e
}

// YAML writes the YAML export of n to w.
func YAML(w io.Writer, n tree.Node) error {
	b, err := yaml.Marshal(Export(n))
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Import decodes a YAML document produced by [YAML] into a new tree.
func Import(b []byte) (*tree.Tree, error) {
	var e Element
	if err := yaml.Unmarshal(b, &e); err != nil {
		return nil, err
	}
	tag, err := parseTag(e.Tag)
	if err != nil {
		return nil, err
	}
	t := tree.New(tag)
	err = t.Batch(func() error {
		return build(t, t.Root(), &e)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// build sets the contents of n as described by e.
func build(t *tree.Tree, n tree.Node, e *Element) error {
	if e.Data != "" {
		d, err := hex.DecodeString(e.Data)
		if err != nil {
			return fmt.Errorf("%w: data of %s: %v", ErrInvalidElement, e.Tag, err)
		}
		if err = n.SetData(d); err != nil {
			return err
		}
	}
	if err := n.SetUnusedBits(e.UnusedBits); err != nil {
		return err
	}
	for _, ce := range e.Children {
		if ce == nil {
			return fmt.Errorf("%w: empty child of %s", ErrInvalidElement, e.Tag)
		}
		tag, err := parseTag(ce.Tag)
		if err != nil {
			return err
		}
		c := t.NewNode(tag)
		if _, err = n.AddChild(c); err != nil {
			return err
		}
		if err = build(t, c, ce); err != nil {
			return err
		}
	}
	return nil
}

func parseTag(s string) (asn1tree.Tag, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: tag %q", ErrInvalidElement, s)
	}
	return asn1tree.Tag(v), nil
}
