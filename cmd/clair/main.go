package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/clairscript/clair"
)

// defaultMaxNesting keeps pathological token files from exhausting the
// goroutine stack. Pass -max-nesting 0 to lift the limit.
const defaultMaxNesting = 10000

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "parse":
		return parseCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "watch":
		return watchCommand(args[2:])
	case "explore":
		return exploreCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func parseCommand(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	format := fs.String("format", "tree", "output format: tree or json")
	maxNesting := fs.Int("max-nesting", defaultMaxNesting, "reject programs nested deeper than this (0 for no limit)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("clair parse: token file required")
	}
	if *format != "tree" && *format != "json" {
		return fmt.Errorf("clair parse: unknown format %q", *format)
	}

	program, err := parseTokenFile(remaining[0], clair.Config{MaxNesting: *maxNesting})
	if err != nil {
		return err
	}

	if *format == "json" {
		return clair.FprintJSON(os.Stdout, program)
	}
	return printTree(os.Stdout, program, stdoutIsTerminal())
}

// loadTokenFile reads and decodes one token stream file.
func loadTokenFile(path string) (*clair.TokenStream, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve token file path: %w", err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	defer f.Close()

	stream, err := clair.ReadTokenStream(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	return stream, nil
}

func parseTokenFile(path string, cfg clair.Config) (*clair.Program, error) {
	stream, err := loadTokenFile(path)
	if err != nil {
		return nil, err
	}
	program, err := clair.ParseStream(stream, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	return program, nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] <args>\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  parse [-format tree|json] [-max-nesting N] <tokens.json>")
	fmt.Fprintln(os.Stderr, "    print the syntax tree of a token stream")
	fmt.Fprintln(os.Stderr, "  check [-j N] [-max-nesting N] <path>...")
	fmt.Fprintln(os.Stderr, "    parse every *"+tokenFileSuffix+" file under the given paths")
	fmt.Fprintln(os.Stderr, "  analyze [-include-path <dir>]... <tokens.json>")
	fmt.Fprintln(os.Stderr, "    report suspicious constructs in a parsed program")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <path>...")
	fmt.Fprintln(os.Stderr, "    rewrite token files in canonical form")
	fmt.Fprintln(os.Stderr, "  watch [-v] [-max-nesting N] <path>...")
	fmt.Fprintln(os.Stderr, "    re-check token files whenever they change")
	fmt.Fprintln(os.Stderr, "  explore <tokens.json>")
	fmt.Fprintln(os.Stderr, "    browse the syntax tree interactively")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

type pathList []string

func (l *pathList) String() string {
	return strings.Join(*l, string(os.PathListSeparator))
}

func (l *pathList) Set(value string) error {
	*l = append(*l, value)
	return nil
}
