package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/teris-io/cli"

	foobar "github.com/northernsines/foobar"
)

var Description = strings.ReplaceAll(`
The FOOBAR compiler translates FOOBAR source files into C99 and links
them into a native executable using a host C compiler. It resolves a
program's import graph, merges every file's declarations, and lowers
the result to C before handing off to gcc.
`, "\n", " ")

var Foobar = cli.New(Description).
	WithArg(cli.NewArg("command", "The action to perform (only 'compile' is supported)")).
	WithArg(cli.NewArg("input", "The entry .foob source file to compile")).
	WithOption(cli.NewOption("output", "The path of the compiled executable").
		WithChar('o').
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("keep-c", "Keep the generated intermediate .c file").
		WithType(cli.TypeBool)).
	WithOption(cli.NewOption("verbose", "Print each pipeline stage as it runs").
		WithChar('v').
		WithType(cli.TypeBool)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "ERROR: expected a command and an input file, use --help")
		return 1
	}

	command, input := args[0], args[1]
	if command != "compile" {
		fmt.Fprintf(os.Stderr, "ERROR: unknown command %q, only 'compile' is supported\n", command)
		return 1
	}

	opts := foobar.Options{
		Output: options["output"],
	}
	if _, ok := options["keep-c"]; ok {
		opts.KeepC = true
	}
	if _, ok := options["verbose"]; ok {
		opts.Verbose = true
	}

	if err := foobar.Compile(input, opts); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return 1
	}
	return 0
}

func main() { os.Exit(Foobar.Run(os.Args, os.Stdout)) }
