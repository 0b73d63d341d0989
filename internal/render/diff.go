package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"codello.dev/asn1tree/tree"
)

// DiffOptions configures [Diff].
type DiffOptions struct {
	Color   bool // use ANSI colors
	Preview int  // maximum number of bytes in hex previews, see DefaultPreview
}

// Diff writes a line-based comparison of the structures of a and b to w. Each
// node is one line consisting of its indented tag name and value. Offsets and
// lengths are not compared. Lines only present in a are prefixed with "-",
// lines only present in b with "+". Diff reports whether any differences were
// found.
func Diff(w io.Writer, a, b tree.Node, opts DiffOptions) (bool, error) {
	p := newPalette(opts.Color)
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(outline(a, opts.Preview), outline(b, opts.Preview))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	changed := false
	bw := bufio.NewWriter(w)
	for _, d := range diffs {
		prefix, f := "  ", fmt.Sprintf
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, f, changed = "+ ", p.insert, true
		case diffpatch.DiffDelete:
			prefix, f, changed = "- ", p.delete, true
		}
		for line := range strings.Lines(d.Text) {
			bw.WriteString(f("%s", prefix+strings.TrimSuffix(line, "\n")))
			bw.WriteByte('\n')
		}
	}
	return changed, bw.Flush()
}

// outline returns the lines compared by [Diff].
func outline(n tree.Node, preview int) string {
	var s strings.Builder
	base := n.Depth()
	for m := range n.All() {
		s.WriteString(strings.Repeat("  ", m.Depth()-base))
		s.WriteString(m.TagName())
		if v := Value(m, preview); v != "" {
			s.WriteByte(' ')
			s.WriteString(v)
		}
		s.WriteByte('\n')
	}
	return s.String()
}
