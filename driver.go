package foobar

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Compile runs the full pipeline for a single entry file: load and
// merge its import graph, generate C source, invoke a host C compiler,
// and clean up the intermediate file unless asked to keep it. It
// reports its own progress to stderr when opts.Verbose is set and
// returns a non-nil error on any pipeline failure, including a failed
// host compile.
func Compile(inputFile string, opts Options) error {
	inputFile, err := filepath.Abs(inputFile)
	if err != nil {
		return fmt.Errorf("resolving input path: %w", err)
	}

	outputFile := opts.Output
	if outputFile == "" {
		outputFile = strings.TrimSuffix(inputFile, filepath.Ext(inputFile))
	}
	cFile := outputFile + ".c"

	if opts.Verbose {
		fmt.Fprintf(os.Stderr, "[1/5] Collecting imports from %s\n", inputFile)
	}
	program, err := LoadProgram(inputFile)
	if err != nil {
		return fmt.Errorf("load error: %w", err)
	}

	if opts.Verbose {
		fmt.Fprintln(os.Stderr, "[2/5] Checked for circular imports")
		fmt.Fprintln(os.Stderr, "[3/5] Combined declarations")
		fmt.Fprintln(os.Stderr, "[4/5] Generating C source")
	}
	source, err := Generate(program)
	if err != nil {
		return fmt.Errorf("codegen error: %w", err)
	}

	if err := os.WriteFile(cFile, []byte(source), 0o644); err != nil {
		return fmt.Errorf("writing intermediate C file: %w", err)
	}
	if !opts.KeepC {
		defer os.Remove(cFile)
	}

	if opts.Verbose {
		fmt.Fprintf(os.Stderr, "[5/5] Compiling %s with gcc\n", cFile)
	}
	cmd := exec.Command("gcc", "-o", outputFile, cFile, "-lm", "-std=c99")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("gcc failed: %w", err)
	}

	fmt.Printf("Successfully compiled to %s\n", outputFile)
	return nil
}
