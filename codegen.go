package foobar

import (
	"fmt"
	"strings"
)

// CodegenError is a fatal failure while lowering a merged Program to C
// source: an unknown operator or primitive method, a parent call in a
// class with no parent, a lambda outside a method-call argument, or a
// missing Main. Unresolved method calls and unknown classes are not
// errors; they fall back to an unmangled or default constructor name.
type CodegenError struct {
	Message string
}

func (e CodegenError) Error() string { return e.Message }

// scope is a single lexical level's symbol table (parameter or local
// variable name -> its declared Type).
type scope map[string]Type

// Generator lowers a merged Program into a single C99 translation
// unit. Its output buffer is a line slice rather than a strings.Builder
// because lambda hoisting must splice new function definitions into
// the middle of already-emitted text, at a remembered insertion point.
type Generator struct {
	program *Program

	classes map[string]*ClassDecl
	enums   map[string]*EnumDecl

	// methodSignatures maps "ClassName.MethodName" to its declared
	// return type, used by inferExpressionType for MethodCall nodes.
	methodSignatures map[string]Type

	output      []string
	indentLevel int

	lambdaSectionIndex int
	lambdaCounter      int

	scopes []scope

	currentClass  string
	loopCounter   int
}

func NewGenerator(program *Program) *Generator {
	return &Generator{
		program:          program,
		classes:          make(map[string]*ClassDecl),
		enums:            make(map[string]*EnumDecl),
		methodSignatures: make(map[string]Type),
	}
}

// Generate runs the full pipeline and returns the generated C source.
func Generate(program *Program) (string, error) {
	g := NewGenerator(program)
	return g.generate()
}

func (g *Generator) emit(line string) {
	g.output = append(g.output, strings.Repeat("    ", g.indentLevel)+line)
}

func (g *Generator) emitBlank() {
	g.output = append(g.output, "")
}

// insertAt splices a block of already-indented lines into the output
// at position idx, shifting everything after it down. Used exclusively
// by lambda hoisting, which must land each lambda's definition inside
// the reserved "Lambda functions" section discovered during the
// forward-declaration pass, long after that section was first emitted.
func (g *Generator) insertAt(idx int, lines []string) {
	tail := append([]string{}, g.output[idx:]...)
	g.output = append(g.output[:idx], append(lines, tail...)...)
}

func (g *Generator) indent()   { g.indentLevel++ }
func (g *Generator) dedent()   { g.indentLevel-- }

func (g *Generator) pushScope() { g.scopes = append(g.scopes, scope{}) }
func (g *Generator) popScope()  { g.scopes = g.scopes[:len(g.scopes)-1] }

func (g *Generator) addSymbol(name string, t Type) {
	g.scopes[len(g.scopes)-1][name] = t
}

func (g *Generator) getSymbolType(name string) (Type, bool) {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if t, ok := g.scopes[i][name]; ok {
			return t, true
		}
	}
	return Type{}, false
}

func (g *Generator) generate() (string, error) {
	for _, decl := range g.program.Declarations {
		switch d := decl.(type) {
		case *ClassDecl:
			g.classes[d.Name] = d
		case *EnumDecl:
			g.enums[d.Name] = d
		}
	}

	for className, class := range g.classes {
		for _, member := range class.Members {
			if m, ok := member.(*MethodDecl); ok && m.Name != "Initialize" {
				rt := Type{Name: "void"}
				if m.ReturnType != nil {
					rt = *m.ReturnType
				}
				g.methodSignatures[className+"."+m.Name] = rt
			}
		}
	}

	g.emit(runtimeSource)
	g.emitBlank()

	if err := g.generateForwardDeclarations(); err != nil {
		return "", err
	}

	g.lambdaSectionIndex = len(g.output)
	g.emit("// Lambda functions")
	g.emitBlank()

	for _, decl := range g.program.Declarations {
		switch d := decl.(type) {
		case *ClassDecl:
			if err := g.generateClass(d); err != nil {
				return "", err
			}
		case *MethodDecl:
			if d.Name == "Main" {
				continue
			}
			if err := g.generateStandaloneMethod(d); err != nil {
				return "", err
			}
		}
	}

	if err := g.generateMain(); err != nil {
		return "", err
	}

	return strings.Join(g.output, "\n") + "\n", nil
}

func (g *Generator) findClass(name string) (*ClassDecl, bool) {
	c, ok := g.classes[name]
	return c, ok
}

// allAncestors returns a class's parent classes, resolved recursively,
// in declared order, without duplicates.
func (g *Generator) allAncestors(className string) []string {
	class, ok := g.classes[className]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	var walk func(string)
	walk = func(name string) {
		c, ok := g.classes[name]
		if !ok {
			return
		}
		for _, p := range c.ParentClasses {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
				walk(p)
			}
		}
	}
	walk(className)
	_ = class
	return out
}

func (g *Generator) classInitializers(class *ClassDecl) []*MethodDecl {
	var inits []*MethodDecl
	for _, m := range class.Members {
		if method, ok := m.(*MethodDecl); ok && method.Name == "Initialize" {
			inits = append(inits, method)
		}
	}
	return inits
}

func (g *Generator) classMethods(class *ClassDecl) []*MethodDecl {
	var methods []*MethodDecl
	for _, m := range class.Members {
		if method, ok := m.(*MethodDecl); ok && method.Name != "Initialize" {
			methods = append(methods, method)
		}
	}
	return methods
}

func (g *Generator) classFields(class *ClassDecl) []*FieldDecl {
	var fields []*FieldDecl
	for _, m := range class.Members {
		if field, ok := m.(*FieldDecl); ok {
			fields = append(fields, field)
		}
	}
	return fields
}

func fmtErr(format string, args ...any) error {
	return CodegenError{Message: fmt.Sprintf(format, args...)}
}
