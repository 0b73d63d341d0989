package tree

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"codello.dev/asn1tree"
)

func TestDocument_Load(t *testing.T) {
	var d Document
	if d.Root().IsValid() || d.Modified() {
		t.Errorf("empty document: Root().IsValid() = %v, Modified() = %v", d.Root().IsValid(), d.Modified())
	}
	if err := d.Save(&bytes.Buffer{}); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("Save() error = %v, want %v", err, ErrEmptyDocument)
	}

	if err := d.Load(bytes.NewReader(sample)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	root := d.Root()
	if !bytes.Equal(d.Raw(), sample) || d.Modified() {
		t.Errorf("Raw() = %# x, Modified() = %v", d.Raw(), d.Modified())
	}

	// length 1000 with only 10 bytes of contents
	truncated := append([]byte{0x04, 0x82, 0x03, 0xe8}, make([]byte, 10)...)
	if err := d.LoadBytes(truncated); !errors.Is(err, ErrTruncated) {
		t.Fatalf("LoadBytes() error = %v, want %v", err, ErrTruncated)
	}
	if d.Root() != root || !bytes.Equal(d.Raw(), sample) {
		t.Errorf("failed LoadBytes() modified the document")
	}
	if n, ok := d.Find("/2/0/0"); !ok || n.Tag() != asn1tree.Boolean {
		t.Errorf("Find(\"/2/0/0\") = %v, %v", n, ok)
	}
}

func TestDocument_Save(t *testing.T) {
	d := NewDocument(&Decoder{Encapsulated: false})
	if err := d.LoadBytes(sample); err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	octets, _ := d.Find("/2")
	if octets.HasChildren() {
		t.Errorf("OCTET STRING decoded as container with encapsulation disabled")
	}
	if err := octets.SetData([]byte{0x00}); err != nil {
		t.Fatalf("SetData() error = %v", err)
	}
	if !d.Modified() {
		t.Errorf("Modified() = false after SetData")
	}

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	want := []byte{
		0x30, 0x0f,
		0x02, 0x01, 0x05,
		0x06, 0x03, 0x55, 0x04, 0x03,
		0x04, 0x01, 0x00,
		0x03, 0x02, 0x04, 0xf0,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("Save() = %# x, want %# x", buf.Bytes(), want)
	}
	if d.Modified() || !bytes.Equal(d.Raw(), want) {
		t.Errorf("Modified() = %v after Save", d.Modified())
	}
}

func TestDocument_File(t *testing.T) {
	name := filepath.Join(t.TempDir(), "sample.der")
	if err := os.WriteFile(name, sample, 0o644); err != nil {
		t.Fatal(err)
	}
	var d Document
	if err := d.LoadFile(name); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if _, err := d.Root().RemoveChild(3); err != nil {
		t.Fatalf("RemoveChild() error = %v", err)
	}
	out := filepath.Join(t.TempDir(), "out.der")
	if err := d.SaveFile(out); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, append([]byte{0x30, 0x0f}, sample[2:17]...)) {
		t.Errorf("SaveFile() wrote %# x", got)
	}

	if err = d.LoadFile(filepath.Join(t.TempDir(), "missing.der")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestDocument_SetTree(t *testing.T) {
	var d Document
	d.SetTree(New(asn1tree.Null))
	if !d.Modified() {
		t.Errorf("Modified() = false for a new tree")
	}
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil || !bytes.Equal(buf.Bytes(), []byte{0x05, 0x00}) {
		t.Errorf("Save() = %# x, %v", buf.Bytes(), err)
	}
	if d.Tree().Root().Tag() != asn1tree.Null {
		t.Errorf("Tree().Root().Tag() = %v", d.Tree().Root().Tag())
	}
}
