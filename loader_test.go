package foobar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadProgramSingleFile(t *testing.T) {
	dir := t.TempDir()
	main := writeSource(t, dir, "main.foob", `Main() {
		return;
	}`)

	prog, err := LoadProgram(main)
	require.NoError(t, err)
	require.Len(t, prog.Declarations, 1)
}

func TestLoadProgramFollowsImports(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "util.foob", `class Helper { }`)
	main := writeSource(t, dir, "main.foob", `import "util.foob";
	Main() {
		return;
	}`)

	prog, err := LoadProgram(main)
	require.NoError(t, err)
	require.Len(t, prog.Declarations, 2)
}

func TestLoadProgramMissingImportFails(t *testing.T) {
	dir := t.TempDir()
	main := writeSource(t, dir, "main.foob", `import "missing.foob";
	Main() {
		return;
	}`)

	_, err := LoadProgram(main)
	require.Error(t, err)
	var loadErr LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestLoadProgramDetectsCircularImports(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.foob", `import "b.foob";
	class A { }`)
	writeSource(t, dir, "b.foob", `import "a.foob";
	class B { }`)
	main := writeSource(t, dir, "main.foob", `import "a.foob";
	Main() {
		return;
	}`)

	_, err := LoadProgram(main)
	require.Error(t, err)
	var loadErr LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Message, "Circular import detected")
}

func TestLoadProgramRejectsDuplicateClassNames(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "util.foob", `class Helper { }`)
	main := writeSource(t, dir, "main.foob", `import "util.foob";
	class Helper { }
	Main() {
		return;
	}`)

	_, err := LoadProgram(main)
	require.Error(t, err)
	var semErr SemanticError
	require.ErrorAs(t, err, &semErr)
}

func TestLoadProgramRequiresMain(t *testing.T) {
	dir := t.TempDir()
	main := writeSource(t, dir, "main.foob", `class Helper { }`)

	_, err := LoadProgram(main)
	require.Error(t, err)
	var semErr SemanticError
	require.ErrorAs(t, err, &semErr)
	assert.Contains(t, semErr.Message, "Main")
}

func TestLoadProgramMergesDeclarationsInDiscoveryOrder(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.foob", `class A { }`)
	writeSource(t, dir, "b.foob", `class B { }`)
	main := writeSource(t, dir, "main.foob", `import "a.foob";
	import "b.foob";
	Main() {
		return;
	}`)

	prog, err := LoadProgram(main)
	require.NoError(t, err)
	require.Len(t, prog.Declarations, 3)

	var names []string
	for _, decl := range prog.Declarations {
		if c, ok := decl.(*ClassDecl); ok {
			names = append(names, c.Name)
		}
	}
	// b.foob is discovered after a.foob but popped off the LIFO work-list
	// first, so it is merged first; this ordering must stay fixed across
	// runs rather than depend on map iteration.
	assert.Equal(t, []string{"B", "A"}, names)
}

func TestLoadProgramMissingEntryFileFails(t *testing.T) {
	_, err := LoadProgram("/nonexistent/path/main.foob")
	require.Error(t, err)
	var loadErr LoadError
	require.ErrorAs(t, err, &loadErr)
}
