package render

import (
	"github.com/fatih/color"

	"codello.dev/asn1tree"
)

type sprintf = func(string, ...any) string

// palette holds the formatting functions for the parts of a rendering.
type palette struct {
	class  [4]sprintf // indexed by asn1tree.Class
	offset sprintf
	length sprintf
	value  sprintf
	name   sprintf
	insert sprintf
	delete sprintf
}

// newPalette creates a palette. If enabled is false, all functions format
// without color regardless of the global settings of the color package.
func newPalette(enabled bool) *palette {
	mk := func(c *color.Color) sprintf {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}
	return &palette{
		class: [4]sprintf{
			asn1tree.ClassUniversal:       mk(color.New(color.FgCyan, color.Bold)),
			asn1tree.ClassApplication:     mk(color.New(color.FgYellow, color.Bold)),
			asn1tree.ClassContextSpecific: mk(color.RGB(196, 96, 16)),
			asn1tree.ClassPrivate:         mk(color.New(color.FgMagenta)),
		},
		offset: mk(color.RGB(96, 96, 96)),
		length: mk(color.RGB(128, 168, 196)),
		value:  mk(color.RGB(8, 196, 16)),
		name:   mk(color.New(color.FgBlue)),
		insert: mk(color.New(color.FgGreen)),
		delete: mk(color.New(color.FgRed)),
	}
}

func (p *palette) tag(t asn1tree.Tag, format string, a ...any) string {
	return p.class[t.Class()](format, a...)
}
