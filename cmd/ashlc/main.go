// Command ashlc is the ash shader compiler CLI.
//
// Usage:
//
//	ashlc [options] <input.ash>
//
// Examples:
//
//	ashlc shader.ash                          # Vertex stage to stdout
//	ashlc -stage fragment -o frag.glsl shader.ash
//	ashlc -I shaders/include -entry main shader.ash
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/gogpu/ashl"
	"github.com/gogpu/ashl/ash"
	"github.com/gogpu/ashl/glsl"
)

// includeDirs collects repeated -I flags.
type includeDirs []string

func (d *includeDirs) String() string {
	return strings.Join(*d, ",")
}

func (d *includeDirs) Set(dir string) error {
	*d = append(*d, dir)
	return nil
}

var (
	output   = flag.String("o", "", "output file (default: stdout)")
	stage    = flag.String("stage", "vertex", "stage to compile: vertex or fragment")
	entry    = flag.String("entry", "main", "entry point; empty disables dependency pruning")
	langVer  = flag.String("glsl", "450", "GLSL #version, e.g. 450 or \"310 es\"")
	noHeader = flag.Bool("no-header", false, "omit #version and #extension lines")
	version  = flag.Bool("version", false, "print version")
)

var includes includeDirs

const ashlcVersion = "0.1.0-dev"

func main() {
	log.SetFlags(0)
	flag.Var(&includes, "I", "include search directory (repeatable)")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("ashlc version %s\n", ashlcVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	opts, err := options()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	code, err := ashl.CompileFile(inputPath, opts)
	if err != nil {
		fail(err)
	}

	if *output == "" {
		if _, err := os.Stdout.WriteString(code); err != nil {
			log.Fatalf("Error writing output: %v", err)
		}
		return
	}
	if err := os.WriteFile(*output, []byte(code), 0o644); err != nil {
		log.Fatalf("Error writing output: %v", errors.Wrapf(err, "write %s", *output))
	}
	fmt.Fprintf(os.Stderr, "Compiled %s (%s) to %s\n", inputPath, opts.Stage, *output)
}

// options builds compile options from the command line flags.
func options() (ashl.Options, error) {
	st, err := ash.ParseStage(*stage)
	if err != nil {
		return ashl.Options{}, errors.Wrap(err, "invalid -stage")
	}
	opts := ashl.Options{
		Stage:       st,
		EntryPoint:  *entry,
		IncludeDirs: includes,
	}
	if !*noHeader {
		v, err := glsl.ParseVersion(*langVer)
		if err != nil {
			return ashl.Options{}, errors.Wrap(err, "invalid -glsl")
		}
		opts.GLSL = glsl.DefaultOptions()
		opts.GLSL.LangVersion = v
	}
	return opts, nil
}

// fail reports a compilation error and exits. Source errors are shown with
// the offending line when stderr is a terminal.
func fail(err error) {
	var srcErr *ash.SourceError
	if errors.As(err, &srcErr) && term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprintf(os.Stderr, "Compilation error:\n%s\n", srcErr.FormatWithContext())
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: ashlc [options] <input.ash>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  ashlc shader.ash                        Vertex stage to stdout\n")
	fmt.Fprintf(os.Stderr, "  ashlc -stage fragment -o f.glsl s.ash   Fragment stage to file\n")
	fmt.Fprintf(os.Stderr, "  ashlc -I include -no-header shader.ash  Extra include dir, bare output\n")
}
