package tlv

import (
	"errors"
	"io"
	"slices"
	"testing"

	"codello.dev/asn1tree"
)

func TestReader_Sub(t *testing.T) {
	r := NewReader([]byte{0x30, 0x03, 0x02, 0x01, 0x15, 0xff})
	h, err := ReadHeader(r)
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}
	if h != (Header{asn1tree.Sequence, 3}) {
		t.Fatalf("ReadHeader() = %v, want %v", h, Header{asn1tree.Sequence, 3})
	}
	sub, err := r.Sub(h.Length)
	if err != nil {
		t.Fatalf("Sub(%d) error = %v", h.Length, err)
	}
	if sub.Offset() != 2 {
		t.Errorf("sub.Offset() = %d, want 2", sub.Offset())
	}
	if r.Len() != 1 || r.Offset() != 5 {
		t.Errorf("r.Len(), r.Offset() = %d, %d, want 1, 5", r.Len(), r.Offset())
	}

	ch, err := ReadHeader(sub)
	if err != nil || ch != (Header{asn1tree.Integer, 1}) {
		t.Fatalf("ReadHeader(sub) = %v, %v", ch, err)
	}
	if sub.Offset() != 4 {
		t.Errorf("sub.Offset() = %d, want 4", sub.Offset())
	}
	v, err := sub.Next(1)
	if err != nil || !slices.Equal(v, []byte{0x15}) {
		t.Errorf("sub.Next(1) = %# x, %v", v, err)
	}
	if _, err = sub.ReadByte(); err != io.EOF {
		t.Errorf("sub.ReadByte() error = %v, want io.EOF", err)
	}
}

func TestReader_Rewind(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})
	m := r.Mark()
	if b, _ := r.PeekByte(); b != 0x01 {
		t.Errorf("PeekByte() = %#x, want 0x01", b)
	}
	if _, err := r.Next(2); err != nil {
		t.Fatalf("Next(2) error = %v", err)
	}
	r.Rewind(m)
	if r.Len() != 3 {
		t.Errorf("Len() after Rewind = %d, want 3", r.Len())
	}
}

func TestReader_Truncated(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.Next(3); !errors.Is(err, ErrTruncated) {
		t.Errorf("Next(3) error = %v, want %v", err, ErrTruncated)
	}
	if _, err := r.Sub(3); !errors.Is(err, ErrTruncated) {
		t.Errorf("Sub(3) error = %v, want %v", err, ErrTruncated)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}
