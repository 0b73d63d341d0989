package render

import (
	"bufio"
	"fmt"
	"io"

	"codello.dev/asn1tree/tree"
)

// HexOptions configure [Hex].
type HexOptions struct {
	Color bool // highlight identifier and length octets
}

// byteKind classifies the bytes of an encoding for highlighting.
type byteKind uint8

const (
	kindContents byteKind = iota
	kindTag
	kindLength
)

// Hex writes a hex dump of the encoding of n to w. Each row shows 16 bytes
// preceded by their offset and followed by their printable characters.
// Offsets are relative to the top-level node containing n.
func Hex(w io.Writer, n tree.Node, opts HexOptions) error {
	p := newPalette(opts.Color)
	data, err := n.MarshalBinary()
	if err != nil {
		return err
	}
	base := n.Offset()

	kinds := make([]byteKind, len(data))
	for m := range n.All() {
		off := m.Offset() - base
		kinds[off] = kindTag
		for i := off + 1; i < off+m.HeaderSize(); i++ {
			kinds[i] = kindLength
		}
	}

	bw := bufio.NewWriter(w)
	for row := 0; row < len(data); row += 16 {
		end := min(row+16, len(data))
		bw.WriteString(p.offset("%08x", base+row))
		bw.WriteString("  ")
		for i := row; i < row+16; i++ {
			if i == row+8 {
				bw.WriteByte(' ')
			}
			if i >= end {
				bw.WriteString("   ")
				continue
			}
			b := fmt.Sprintf("%02x", data[i])
			switch kinds[i] {
			case kindTag:
				b = p.class[data[i]>>6]("%s", b)
			case kindLength:
				b = p.length("%s", b)
			}
			bw.WriteString(b)
			bw.WriteByte(' ')
		}
		bw.WriteString(" |")
		for _, c := range data[row:end] {
			if c < 0x20 || c > 0x7e {
				c = '.'
			}
			bw.WriteByte(c)
		}
		bw.WriteString("|\n")
	}
	return bw.Flush()
}
