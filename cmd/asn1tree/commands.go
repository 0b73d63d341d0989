package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"codello.dev/asn1tree/internal/oidname"
	"codello.dev/asn1tree/internal/render"
	"codello.dev/asn1tree/oid"
)

// errRoot indicates an attempt to remove the root node.
var errRoot = errors.New("cannot remove the root node")

// optional returns args[i] or the empty string.
func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func (a *app) dump(args []string) error {
	in, err := a.load(args[0])
	if err != nil {
		return err
	}
	n, err := in.find(optional(args, 1))
	if err != nil {
		return err
	}
	color, err := a.useColor(a.stdout)
	if err != nil {
		return err
	}
	return render.Text(a.stdout, n, render.TextOptions{
		Color:   color,
		Paths:   a.paths,
		Preview: a.preview,
	})
}

func (a *app) hex(args []string) error {
	in, err := a.load(args[0])
	if err != nil {
		return err
	}
	n, err := in.find(optional(args, 1))
	if err != nil {
		return err
	}
	color, err := a.useColor(a.stdout)
	if err != nil {
		return err
	}
	return render.Hex(a.stdout, n, render.HexOptions{Color: color})
}

func (a *app) diff(args []string) error {
	x, err := a.load(args[0])
	if err != nil {
		return err
	}
	y, err := a.load(args[1])
	if err != nil {
		return err
	}
	color, err := a.useColor(a.stdout)
	if err != nil {
		return err
	}
	changed, err := render.Diff(a.stdout, x.doc.Root(), y.doc.Root(), render.DiffOptions{
		Color:   color,
		Preview: a.preview,
	})
	if err != nil {
		return err
	}
	if changed {
		return errDiffer
	}
	return nil
}

func (a *app) export(args []string) error {
	in, err := a.load(args[0])
	if err != nil {
		return err
	}
	n, err := in.find(optional(args, 1))
	if err != nil {
		return err
	}
	w, done, err := a.create()
	if err != nil {
		return err
	}
	err = render.YAML(w, n)
	if cerr := done(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) importYAML(args []string) error {
	b, err := a.readFile(args[0])
	if err != nil {
		return err
	}
	t, err := render.Import(b)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	der, err := t.MarshalBinary()
	if err != nil {
		return err
	}
	return a.write(der, "")
}

func (a *app) get(args []string) error {
	in, err := a.load(args[0])
	if err != nil {
		return err
	}
	n, err := in.find(args[1])
	if err != nil {
		return err
	}
	der, err := n.MarshalBinary()
	if err != nil {
		return err
	}
	return a.write(der, in.label)
}

func (a *app) set(args []string) error {
	in, err := a.load(args[0])
	if err != nil {
		return err
	}
	n, err := in.find(args[1])
	if err != nil {
		return err
	}
	data, err := hex.DecodeString(strings.ReplaceAll(args[2], ":", ""))
	if err != nil {
		return fmt.Errorf("invalid data: %w", err)
	}
	err = in.doc.Tree().Batch(func() error {
		if n.HasChildren() {
			if err := n.ClearAll(); err != nil {
				return err
			}
		}
		return n.SetData(data)
	})
	if err != nil {
		return err
	}
	a.logger.Debug("replaced data", "node", n.String(), "bytes", len(data))
	return a.save(in)
}

func (a *app) rm(args []string) error {
	in, err := a.load(args[0])
	if err != nil {
		return err
	}
	n, err := in.find(args[1])
	if err != nil {
		return err
	}
	parent, ok := n.Parent()
	if !ok {
		return errRoot
	}
	desc := n.String()
	if _, err = parent.RemoveChild(n.Index()); err != nil {
		return err
	}
	a.logger.Debug("removed node", "node", desc)
	return a.save(in)
}

// save writes the document of in and updates its raw byte image.
func (a *app) save(in *input) error {
	var buf bytes.Buffer
	loaded := in.doc.Raw()
	if err := in.doc.Save(&buf); err != nil {
		return err
	}
	if bytes.Equal(loaded, in.doc.Raw()) {
		a.logger.Debug("document unchanged")
	}
	return a.write(buf.Bytes(), in.label)
}

func (a *app) oid(args []string) error {
	for _, arg := range args {
		if a.decodeOID {
			b, err := hex.DecodeString(strings.ReplaceAll(arg, ":", ""))
			if err != nil {
				return fmt.Errorf("invalid hex %q: %w", arg, err)
			}
			var s string
			if a.relative {
				s, err = oid.DecodeRelative(b)
			} else {
				s, err = oid.Decode(b)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", arg, err)
			}
			if name, ok := oidname.Lookup(s); ok && !a.relative {
				fmt.Fprintf(a.stdout, "%s (%s)\n", s, name)
			} else {
				fmt.Fprintln(a.stdout, s)
			}
			continue
		}

		var b []byte
		var err error
		if a.relative {
			b, err = oid.EncodeRelative(arg)
		} else {
			b, err = oid.Encode(arg)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		fmt.Fprintf(a.stdout, "%x\n", b)
	}
	return nil
}
