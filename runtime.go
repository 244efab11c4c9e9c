package foobar

import _ "embed"

// runtimeSource is the C support library every generated program links
// against: the CONSOLE/MATH/STRING/DATETIME/RANDOM/FILECLS static
// classes, the per-type array helpers, and the isa check. Embedding it
// keeps the compiler a single self-contained binary with no on-disk
// runtime dependency beyond a host C compiler.
//
//go:embed runtime/runtime.c
var runtimeSource string
