package foobar

import (
	"fmt"
	"strings"
)

// LoadError covers every failure that can occur while resolving and
// merging a program's import graph: a missing source file, a missing
// import target, or a cycle in the import graph. Span is the zero value
// when no single source location applies (a missing entry file, a
// cycle spanning several files), in which case Error() omits it.
type LoadError struct {
	Message string
	Span    Span
}

func (e LoadError) Error() string {
	if e.Span == (Span{}) {
		return e.Message
	}
	return fmt.Sprintf("%s @ %s", e.Message, e.Span)
}

func errMissingFile(path string) error {
	return LoadError{Message: fmt.Sprintf("Cannot find file: %s", path)}
}

func errMissingImport(importPath, referencingFile, resolvedPath string, at Location) error {
	return LoadError{
		Message: fmt.Sprintf(
			"Cannot find imported file: '%s'\n  Referenced in: %s\n  Searched for: %s",
			importPath, referencingFile, resolvedPath),
		Span: spanAt(at),
	}
}

func errCircularImport(cycle []string) error {
	return LoadError{Message: fmt.Sprintf("Circular import detected:\n  -> %s", strings.Join(cycle, "\n  -> "))}
}

// SemanticError covers name-resolution failures that only become
// visible once every file's declarations have been merged: duplicate
// top-level names and a missing Main entry point. Span is the zero
// value for errors with no single source location (a missing Main
// spans the whole merged program).
type SemanticError struct {
	Message string
	Span    Span
}

func (e SemanticError) Error() string {
	if e.Span == (Span{}) {
		return e.Message
	}
	return fmt.Sprintf("%s @ %s", e.Message, e.Span)
}

func errDuplicateClass(name, firstFile, secondFile string, at Location) error {
	return SemanticError{
		Message: fmt.Sprintf(
			"Duplicate class name '%s'\n  First defined in: %s\n  Also defined in: %s", name, firstFile, secondFile),
		Span: spanAt(at),
	}
}

func errDuplicateEnum(name, firstFile, secondFile string, at Location) error {
	return SemanticError{
		Message: fmt.Sprintf(
			"Duplicate enum name '%s'\n  First defined in: %s\n  Also defined in: %s", name, firstFile, secondFile),
		Span: spanAt(at),
	}
}

func errDuplicateFunction(name, firstFile, secondFile string, at Location) error {
	return SemanticError{
		Message: fmt.Sprintf(
			"Duplicate function name '%s'\n  First defined in: %s\n  Also defined in: %s", name, firstFile, secondFile),
		Span: spanAt(at),
	}
}

func errNoMain() error {
	return SemanticError{Message: "No Main method found in any loaded file"}
}
