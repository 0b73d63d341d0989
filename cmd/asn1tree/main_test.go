package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"codello.dev/asn1tree/pemfile"
)

// sample is a small DER structure.
//
//	SEQUENCE
//	  INTEGER 5
//	  OBJECT IDENTIFIER 2.5.4.3
//	  OCTET STRING
//	    SEQUENCE
//	      BOOLEAN true
//	  BIT STRING (4 unused bits)
var sample = []byte{
	0x30, 0x13,
	0x02, 0x01, 0x05,
	0x06, 0x03, 0x55, 0x04, 0x03,
	0x04, 0x05, 0x30, 0x03, 0x01, 0x01, 0xff,
	0x03, 0x02, 0x04, 0xf0,
}

// result holds the outcome of a single invocation.
type result struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, stdin []byte, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, bytes.NewReader(stdin), &stdout, &stderr)
	return result{code, stdout.String(), stderr.String()}
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRun_Usage(t *testing.T) {
	tests := map[string]struct {
		args []string
		code int
	}{
		"NoArgs":         {nil, 2},
		"Help":           {[]string{"--help"}, 0},
		"HelpCommand":    {[]string{"help"}, 0},
		"Unknown":        {[]string{"frobnicate"}, 2},
		"CommandHelp":    {[]string{"dump", "--help"}, 0},
		"MissingArg":     {[]string{"get", "file.der"}, 2},
		"TooManyArgs":    {[]string{"dump", "a", "b", "c"}, 2},
		"UnknownFlag":    {[]string{"dump", "--frobnicate", "file.der"}, 2},
		"MissingFile":    {[]string{"dump", filepath.Join(t.TempDir(), "missing.der")}, 1},
		"InvalidColor":   {[]string{"dump", "--color=sometimes", "-"}, 1},
		"OIDWithoutArgs": {[]string{"oid"}, 2},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := execute(t, sample, tt.args...)
			if res.code != tt.code {
				t.Errorf("run(%q) = %d, want %d\nstderr: %s", tt.args, res.code, tt.code, res.stderr)
			}
		})
	}
}

func TestDump(t *testing.T) {
	file := writeTemp(t, "sample.der", sample)
	res := execute(t, nil, "dump", "--color=never", file)
	if res.code != 0 {
		t.Fatalf("dump exited with %d: %s", res.code, res.stderr)
	}
	want := strings.Join([]string{
		"    0:2:19     SEQUENCE",
		"    2:2:1        INTEGER 5",
		"    5:2:3        OBJECT IDENTIFIER 2.5.4.3 (commonName)",
		"   10:2:5        OCTET STRING",
		"   12:2:3          SEQUENCE",
		"   14:2:1            BOOLEAN TRUE",
		"   17:2:1        BIT STRING (4 unused) f0",
		"",
	}, "\n")
	if diff := cmp.Diff(want, res.stdout); diff != "" {
		t.Errorf("dump mismatch (-want +got):\n%s", diff)
	}
}

func TestDump_Options(t *testing.T) {
	tests := map[string]struct {
		args []string
		want []string
	}{
		"Path": {
			[]string{"dump", "-", "/2/0"},
			[]string{"   12:2:3      SEQUENCE", "   14:2:1        BOOLEAN TRUE"},
		},
		"NoEncapsulated": {
			[]string{"dump", "--no-encapsulated", "-"},
			[]string{"   10:2:5        OCTET STRING 30 03 01 01 ff"},
		},
		"Paths": {
			[]string{"dump", "--paths", "-", "/3"},
			[]string{"/3    17:2:1      BIT STRING (4 unused) f0"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := execute(t, sample, append(tt.args, "--color=never")...)
			if res.code != 0 {
				t.Fatalf("run(%q) exited with %d: %s", tt.args, res.code, res.stderr)
			}
			for _, line := range tt.want {
				if !strings.Contains(res.stdout, line+"\n") {
					t.Errorf("output does not contain %q:\n%s", line, res.stdout)
				}
			}
		})
	}
}

func TestDump_PEM(t *testing.T) {
	file := writeTemp(t, "sample.pem", pemfile.EncodeToMemory("TEST", sample))
	res := execute(t, nil, "dump", "--color=never", file)
	if res.code != 0 {
		t.Fatalf("dump exited with %d: %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "INTEGER 5") {
		t.Errorf("dump output = %q", res.stdout)
	}
}

func TestDump_Errors(t *testing.T) {
	tests := map[string]struct {
		input []byte
		args  []string
		want  string
	}{
		"Truncated":  {sample[:10], []string{"dump", "-"}, "truncated"},
		"Trailing":   {append(bytes.Clone(sample), 0x00), []string{"dump", "-"}, "extra data"},
		"NoSuchPath": {sample, []string{"dump", "-", "/7"}, `no node at path "/7"`},
		"BadPath":    {sample, []string{"dump", "-", "0"}, `no node at path "0"`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := execute(t, tt.input, tt.args...)
			if res.code != 1 {
				t.Fatalf("run(%q) = %d, want 1", tt.args, res.code)
			}
			if !strings.Contains(res.stderr, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", res.stderr, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	res := execute(t, sample, "hex", "--color=never", "-", "/1")
	if res.code != 0 {
		t.Fatalf("hex exited with %d: %s", res.code, res.stderr)
	}
	if !strings.HasPrefix(res.stdout, "00000005") || !strings.Contains(res.stdout, "06 03 55 04 03") {
		t.Errorf("hex output = %q", res.stdout)
	}
}

func TestGet(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.der")
	res := execute(t, sample, "get", "-o", out, "-", "/2/0")
	if res.code != 0 {
		t.Fatalf("get exited with %d: %s", res.code, res.stderr)
	}
	want := []byte{0x30, 0x03, 0x01, 0x01, 0xff}
	if got := readFile(t, out); !bytes.Equal(got, want) {
		t.Errorf("get wrote %# x, want %# x", got, want)
	}
}

func TestGet_PEM(t *testing.T) {
	input := pemfile.EncodeToMemory("TEST", sample)
	res := execute(t, input, "get", "-", "/1")
	if res.code != 0 {
		t.Fatalf("get exited with %d: %s", res.code, res.stderr)
	}
	label, der, _, err := pemfile.Decode([]byte(res.stdout))
	if err != nil {
		t.Fatalf("output is not PEM: %v", err)
	}
	if label != "TEST" || !bytes.Equal(der, sample[5:10]) {
		t.Errorf("get = %s %# x, want TEST %# x", label, der, sample[5:10])
	}

	res = execute(t, sample, "get", "--pem", "--label", "OID", "-", "/1")
	if label, _, _, err = pemfile.Decode([]byte(res.stdout)); err != nil || label != "OID" {
		t.Errorf("get --pem --label OID = %q, %v", label, err)
	}
}

func TestSet(t *testing.T) {
	tests := map[string]struct {
		path string
		data string
		want []byte
	}{
		"Leaf": {"/0", "0a", []byte{
			0x30, 0x13,
			0x02, 0x01, 0x0a,
			0x06, 0x03, 0x55, 0x04, 0x03,
			0x04, 0x05, 0x30, 0x03, 0x01, 0x01, 0xff,
			0x03, 0x02, 0x04, 0xf0,
		}},
		"GrowLength": {"/0", "01:00", []byte{
			0x30, 0x14,
			0x02, 0x02, 0x01, 0x00,
			0x06, 0x03, 0x55, 0x04, 0x03,
			0x04, 0x05, 0x30, 0x03, 0x01, 0x01, 0xff,
			0x03, 0x02, 0x04, 0xf0,
		}},
		"Container": {"/2", "", []byte{
			0x30, 0x0e,
			0x02, 0x01, 0x05,
			0x06, 0x03, 0x55, 0x04, 0x03,
			0x04, 0x00,
			0x03, 0x02, 0x04, 0xf0,
		}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			file := writeTemp(t, "sample.der", sample)
			res := execute(t, nil, "set", "-o", file, file, tt.path, tt.data)
			if res.code != 0 {
				t.Fatalf("set exited with %d: %s", res.code, res.stderr)
			}
			if diff := cmp.Diff(tt.want, readFile(t, file)); diff != "" {
				t.Errorf("set mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if res := execute(t, sample, "set", "-", "/0", "zz"); res.code != 1 {
		t.Errorf("set with invalid hex = %d, want 1", res.code)
	}
}

func TestRm(t *testing.T) {
	res := execute(t, sample, "rm", "-", "/3")
	if res.code != 0 {
		t.Fatalf("rm exited with %d: %s", res.code, res.stderr)
	}
	want := []byte{
		0x30, 0x0f,
		0x02, 0x01, 0x05,
		0x06, 0x03, 0x55, 0x04, 0x03,
		0x04, 0x05, 0x30, 0x03, 0x01, 0x01, 0xff,
	}
	if diff := cmp.Diff(want, []byte(res.stdout)); diff != "" {
		t.Errorf("rm mismatch (-want +got):\n%s", diff)
	}

	res = execute(t, sample, "rm", "-", "/")
	if res.code != 1 || !strings.Contains(res.stderr, errRoot.Error()) {
		t.Errorf("rm / = %d %q, want 1", res.code, res.stderr)
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "sample.yaml")
	res := execute(t, sample, "export", "-o", yml, "-")
	if res.code != 0 {
		t.Fatalf("export exited with %d: %s", res.code, res.stderr)
	}
	res = execute(t, nil, "import", yml)
	if res.code != 0 {
		t.Fatalf("import exited with %d: %s", res.code, res.stderr)
	}
	if diff := cmp.Diff(sample, []byte(res.stdout)); diff != "" {
		t.Errorf("import mismatch (-want +got):\n%s", diff)
	}
}

func TestOID(t *testing.T) {
	tests := map[string]struct {
		args []string
		want string
	}{
		"Encode":         {[]string{"oid", "1.2.840.113549", "2.5.4.3"}, "2a864886f70d\n550403\n"},
		"EncodeRelative": {[]string{"oid", "--relative", "12345.6"}, "e03906\n"},
		"Decode":         {[]string{"oid", "-d", "55:04:03"}, "2.5.4.3 (commonName)\n"},
		"DecodeUnknown":  {[]string{"oid", "-d", "2a03"}, "1.2.3\n"},
		"DecodeRelative": {[]string{"oid", "-d", "--relative", "e03906"}, "12345.6\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := execute(t, nil, tt.args...)
			if res.code != 0 {
				t.Fatalf("run(%q) exited with %d: %s", tt.args, res.code, res.stderr)
			}
			if res.stdout != tt.want {
				t.Errorf("run(%q) = %q, want %q", tt.args, res.stdout, tt.want)
			}
		})
	}

	if res := execute(t, nil, "oid", "3.1"); res.code != 1 {
		t.Errorf("oid 3.1 = %d, want 1", res.code)
	}
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.der")
	b := filepath.Join(dir, "b.der")
	if err := os.WriteFile(a, sample, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, sample, 0o644); err != nil {
		t.Fatal(err)
	}
	if res := execute(t, nil, "diff", a, b); res.code != 0 {
		t.Errorf("diff of equal files = %d, want 0\n%s", res.code, res.stderr)
	}

	res := execute(t, nil, "set", "-o", b, b, "/0", "06")
	if res.code != 0 {
		t.Fatalf("set exited with %d: %s", res.code, res.stderr)
	}
	res = execute(t, nil, "diff", "--color=never", a, b)
	if res.code != 1 {
		t.Errorf("diff of different files = %d, want 1", res.code)
	}
	if !strings.Contains(res.stdout, "-   INTEGER 5\n+   INTEGER 6\n") {
		t.Errorf("diff output = %q", res.stdout)
	}
	if res.stderr != "" {
		t.Errorf("diff stderr = %q, want empty", res.stderr)
	}
}

func TestApp_Save(t *testing.T) {
	var stdout, stderr bytes.Buffer
	a := newApp(nil, &stdout, &stderr)
	in, err := a.load(writeTemp(t, "sample.der", sample))
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	n, _ := in.find("/3")
	parent, _ := n.Parent()
	if _, err = parent.RemoveChild(n.Index()); err != nil {
		t.Fatal(err)
	}
	if !in.doc.Modified() {
		t.Fatalf("Modified() = false after RemoveChild")
	}
	if err = a.save(in); err != nil {
		t.Fatalf("save() error = %v", err)
	}
	if diff := cmp.Diff(stdout.Bytes(), in.doc.Raw()); diff != "" {
		t.Errorf("Raw() differs from the written output (-written +raw):\n%s", diff)
	}
	if in.doc.Modified() {
		t.Errorf("Modified() = true after save()")
	}
}
