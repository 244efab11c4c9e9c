package foobar

// Options controls a single compile pipeline run. Its fields map
// directly onto the command-line flags of the compile subcommand.
type Options struct {
	// Output is the path of the final executable. Empty means derive it
	// from the input path by stripping its suffix.
	Output string
	// KeepC keeps the generated intermediate C file on disk.
	KeepC bool
	// Verbose prints each pipeline stage as it runs.
	Verbose bool
}
