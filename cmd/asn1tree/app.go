package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"codello.dev/asn1tree/pemfile"
	"codello.dev/asn1tree/tree"
)

// defaultLabel is the PEM label used for output if the input was not PEM.
const defaultLabel = "DATA"

// app holds the I/O streams and the flag values of a single invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	level  *slog.LevelVar

	verbose        bool
	noEncapsulated bool
	maxDepth       int
	color          string
	paths          bool
	preview        int
	output         string
	pem            bool
	label          string
	decodeOID      bool
	relative       bool
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	level := new(slog.LevelVar)
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		level:  level,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
}

//region Flags

func (a *app) decodeFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&a.noEncapsulated, "no-encapsulated", false, "do not parse primitive values as nested encodings")
	fs.IntVar(&a.maxDepth, "max-depth", tree.DefaultMaxDepth, "maximum nesting depth")
}

func (a *app) colorFlag(fs *pflag.FlagSet) {
	fs.StringVar(&a.color, "color", "auto", "colorize output: auto, always, or never")
}

func (a *app) displayFlags(fs *pflag.FlagSet) {
	a.colorFlag(fs)
	a.previewFlag(fs)
	fs.BoolVar(&a.paths, "paths", false, "print the path of each node")
}

func (a *app) previewFlag(fs *pflag.FlagSet) {
	fs.IntVar(&a.preview, "preview", 0, "maximum number of bytes shown for opaque values")
}

func (a *app) outputFlag(fs *pflag.FlagSet) {
	fs.StringVarP(&a.output, "output", "o", "", "write output to `file` instead of standard output")
}

func (a *app) outputFlags(fs *pflag.FlagSet) {
	a.outputFlag(fs)
	fs.BoolVar(&a.pem, "pem", false, "write PEM instead of DER (default for PEM input)")
	fs.StringVar(&a.label, "label", "", "PEM `label` of the output (default: label of the input)")
}

// useColor resolves the --color flag for w.
func (a *app) useColor(w io.Writer) (bool, error) {
	switch a.color {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())), nil
	}
	return false, fmt.Errorf("invalid --color value %q", a.color)
}

//endregion

//region Input and Output

// input is a decoded input file.
type input struct {
	doc   *tree.Document
	label string // PEM label, empty for DER input
}

// readFile returns the contents of the named file. The name "-" refers to
// standard input.
func (a *app) readFile(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(name)
}

// load reads and decodes the named DER or PEM file.
func (a *app) load(name string) (*input, error) {
	b, err := a.readFile(name)
	if err != nil {
		return nil, err
	}
	in := &input{doc: tree.NewDocument(&tree.Decoder{
		Encapsulated: !a.noEncapsulated,
		MaxDepth:     a.maxDepth,
	})}
	if pemfile.IsPEM(b) {
		var rest []byte
		in.label, b, rest, err = pemfile.Decode(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if len(bytes.TrimSpace(rest)) > 0 {
			a.logger.Warn("ignoring data after the first PEM block", "file", name, "bytes", len(rest))
		}
	}
	a.logger.Debug("read input", "file", name, "bytes", len(b), "pem", in.label)
	if err = in.doc.LoadBytes(b); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return in, nil
}

// find resolves path in the document of in. An empty path refers to the root.
func (in *input) find(path string) (tree.Node, error) {
	n, ok := in.doc.Find(path)
	if !ok {
		return tree.Node{}, fmt.Errorf("no node at path %q", path)
	}
	return n, nil
}

// create opens the output destination selected by the --output flag. The
// returned function must be called to finish writing.
func (a *app) create() (io.Writer, func() error, error) {
	if a.output == "" || a.output == "-" {
		return a.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(a.output)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// write writes an encoding to the output destination, either as DER or, if
// requested or the input was PEM, as PEM.
func (a *app) write(der []byte, inputLabel string) error {
	w, done, err := a.create()
	if err != nil {
		return err
	}
	if a.pem || inputLabel != "" {
		label := a.label
		if label == "" {
			label = inputLabel
		}
		if label == "" {
			label = defaultLabel
		}
		err = pemfile.Encode(w, label, der)
	} else {
		_, err = w.Write(der)
	}
	if cerr := done(); err == nil {
		err = cerr
	}
	if err == nil && a.output != "" && a.output != "-" {
		a.logger.Info("wrote output", "file", a.output, "bytes", len(der))
	}
	return err
}

//endregion
