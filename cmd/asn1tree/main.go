// Command asn1tree inspects and edits BER/DER encoded files such as X.509
// certificates and CMS structures. Input files may be DER or PEM. Nodes are
// addressed by paths of child indices like "/0/3/1", as shown by
// "asn1tree dump --paths".
//
// Usage:
//
//	asn1tree <command> [flags] <file> [arguments]
//
// The commands are:
//
//	dump     print the tree of a file
//	hex      print a hex dump of a file or a node
//	diff     compare the structure of two files
//	export   export a file or a node as YAML
//	import   encode a YAML export
//	get      extract the encoding of a node
//	set      replace the data of a node
//	rm       remove a node
//	oid      convert object identifiers
//
// Set ASN1TREE_DEBUG to any value to enable debug logging.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

var (
	// errUsage indicates invalid arguments. The usage of the command has
	// already been printed.
	errUsage = errors.New("invalid usage")

	// errDiffer indicates that the inputs of the diff command differ.
	errDiffer = errors.New("files differ")
)

type command struct {
	name    string
	summary string
	usage   string
	nargs   [2]int // minimum and maximum number of positional arguments
	flags   func(a *app, fs *pflag.FlagSet)
	run     func(a *app, args []string) error
}

var commands = []*command{
	{
		name:    "dump",
		summary: "print the tree of a file",
		usage:   "dump [flags] <file> [path]",
		nargs:   [2]int{1, 2},
		flags:   func(a *app, fs *pflag.FlagSet) { a.decodeFlags(fs); a.displayFlags(fs) },
		run:     (*app).dump,
	},
	{
		name:    "hex",
		summary: "print a hex dump of a file or a node",
		usage:   "hex [flags] <file> [path]",
		nargs:   [2]int{1, 2},
		flags:   func(a *app, fs *pflag.FlagSet) { a.decodeFlags(fs); a.colorFlag(fs) },
		run:     (*app).hex,
	},
	{
		name:    "diff",
		summary: "compare the structure of two files",
		usage:   "diff [flags] <file1> <file2>",
		nargs:   [2]int{2, 2},
		flags: func(a *app, fs *pflag.FlagSet) {
			a.decodeFlags(fs)
			a.colorFlag(fs)
			a.previewFlag(fs)
		},
		run: (*app).diff,
	},
	{
		name:    "export",
		summary: "export a file or a node as YAML",
		usage:   "export [flags] <file> [path]",
		nargs:   [2]int{1, 2},
		flags:   func(a *app, fs *pflag.FlagSet) { a.decodeFlags(fs); a.outputFlag(fs) },
		run:     (*app).export,
	},
	{
		name:    "import",
		summary: "encode a YAML export",
		usage:   "import [flags] <file>",
		nargs:   [2]int{1, 1},
		flags:   func(a *app, fs *pflag.FlagSet) { a.outputFlags(fs) },
		run:     (*app).importYAML,
	},
	{
		name:    "get",
		summary: "extract the encoding of a node",
		usage:   "get [flags] <file> <path>",
		nargs:   [2]int{2, 2},
		flags:   func(a *app, fs *pflag.FlagSet) { a.decodeFlags(fs); a.outputFlags(fs) },
		run:     (*app).get,
	},
	{
		name:    "set",
		summary: "replace the data of a node",
		usage:   "set [flags] <file> <path> <hex>",
		nargs:   [2]int{3, 3},
		flags:   func(a *app, fs *pflag.FlagSet) { a.decodeFlags(fs); a.outputFlags(fs) },
		run:     (*app).set,
	},
	{
		name:    "rm",
		summary: "remove a node",
		usage:   "rm [flags] <file> <path>",
		nargs:   [2]int{2, 2},
		flags:   func(a *app, fs *pflag.FlagSet) { a.decodeFlags(fs); a.outputFlags(fs) },
		run:     (*app).rm,
	},
	{
		name:    "oid",
		summary: "convert object identifiers",
		usage:   "oid [flags] <oid>...",
		nargs:   [2]int{1, -1},
		flags: func(a *app, fs *pflag.FlagSet) {
			fs.BoolVarP(&a.decodeOID, "decode", "d", false, "decode hex contents octets instead of encoding dotted notation")
			fs.BoolVar(&a.relative, "relative", false, "use the RELATIVE-OID encoding")
		},
		run: (*app).oid,
	},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line args and returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := newApp(stdin, stdout, stderr)
	if err := a.execute(args); err != nil {
		switch {
		case errors.Is(err, errUsage):
			return 2
		case errors.Is(err, errDiffer):
			return 1
		}
		fmt.Fprintf(stderr, "asn1tree: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) execute(args []string) error {
	if len(args) == 0 || isHelp(args[0]) {
		printHelp(a.stderr)
		if len(args) == 0 {
			return errUsage
		}
		return nil
	}
	var cmd *command
	for _, c := range commands {
		if c.name == args[0] {
			cmd = c
			break
		}
	}
	if cmd == nil {
		fmt.Fprintf(a.stderr, "asn1tree: unknown command %q\n\nRun 'asn1tree --help' for usage.\n", args[0])
		return errUsage
	}

	fs := pflag.NewFlagSet(cmd.name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	cmd.flags(a, fs)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage:\n  asn1tree %s\n\nFlags:\n%s", cmd.usage, fs.FlagUsages())
	}
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fs.Usage()
			return nil
		}
		fmt.Fprintf(a.stderr, "asn1tree %s: %v\n", cmd.name, err)
		fs.Usage()
		return errUsage
	}
	if a.verbose || os.Getenv("ASN1TREE_DEBUG") != "" {
		a.level.Set(slog.LevelDebug)
	}

	rest := fs.Args()
	if len(rest) < cmd.nargs[0] || (cmd.nargs[1] >= 0 && len(rest) > cmd.nargs[1]) {
		fs.Usage()
		return errUsage
	}
	a.logger.Debug("running command", "command", cmd.name, "args", rest)
	return cmd.run(a, rest)
}

func isHelp(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}

func printHelp(w io.Writer) {
	fmt.Fprintf(w, "asn1tree inspects and edits BER/DER encoded files.\n\n")
	fmt.Fprintf(w, "Usage:\n  asn1tree <command> [flags] <file> [arguments]\n\nCommands:\n")
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", c.name, c.summary)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nUse \"-\" as file to read from standard input.\n")
	fmt.Fprintf(w, "Run 'asn1tree <command> --help' for more information on a command.\n")
	fmt.Fprintf(w, "\nEnvironment:\n  ASN1TREE_DEBUG  enable debug logging if set\n")
}
