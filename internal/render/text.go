package render

import (
	"bufio"
	"io"
	"strings"

	"codello.dev/asn1tree/tree"
)

// TextOptions configure [Text].
type TextOptions struct {
	Color   bool // use ANSI colors
	Paths   bool // prefix each line with the path of the node
	Preview int  // maximum number of bytes in hex previews, see DefaultPreview
}

// Text writes an indented listing of n and its descendants to w. Each line
// shows the offset of a node, its header size, its contents length, its tag
// name, and a preview of its value:
//
//	    0:2:19     SEQUENCE
//	    2:2:1        INTEGER 5
func Text(w io.Writer, n tree.Node, opts TextOptions) error {
	p := newPalette(opts.Color)
	bw := bufio.NewWriter(w)

	width := 0
	if opts.Paths {
		for m := range n.All() {
			width = max(width, len(displayPath(m)))
		}
	}
	base := n.Depth()
	for m := range n.All() {
		if opts.Paths {
			path := displayPath(m)
			bw.WriteString(p.name("%s", path))
			bw.WriteString(strings.Repeat(" ", width-len(path)+1))
		}
		bw.WriteString(p.offset("%5d", m.Offset()))
		bw.WriteString(p.length(":%d:%-5d", m.HeaderSize(), m.Length()))
		bw.WriteString(strings.Repeat("  ", m.Depth()-base+1))
		bw.WriteString(p.tag(m.Tag(), "%s", m.TagName()))
		if m.IndefiniteLength() {
			bw.WriteString(" (indefinite)")
		}
		if v := Value(m, opts.Preview); v != "" {
			bw.WriteByte(' ')
			bw.WriteString(p.value("%s", v))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func displayPath(n tree.Node) string {
	if p := n.Path(); p != "" {
		return p
	}
	return "/"
}
