package foobar

import "strings"

// typeSlug is the name-mangling fragment for a single parameter type:
// the type's own name with array brackets stripped, since C identifiers
// cannot contain them.
func typeSlug(t Type) string {
	return strings.ReplaceAll(t.Name, "[]", "")
}

// mangleMethodName produces the globally unique C function name for a
// class method overload: {Class}_{Method}_{slug1}_{slug2}..., or
// {Class}_{Method}_void for a zero-argument overload. Constructors use
// the same scheme under the name "new".
func mangleMethodName(className, methodName string, paramTypes []Type) string {
	if len(paramTypes) == 0 {
		return className + "_" + methodName + "_void"
	}
	parts := []string{className, methodName}
	for _, t := range paramTypes {
		parts = append(parts, typeSlug(t))
	}
	return strings.Join(parts, "_")
}

func mangleConstructorName(className string, paramTypes []Type) string {
	return mangleMethodName(className, "new", paramTypes)
}

func paramTypes(params []Parameter) []Type {
	types := make([]Type, len(params))
	for i, p := range params {
		types[i] = p.ParamType
	}
	return types
}

// findMethodOverload resolves a call to `methodName` with `argCount`
// arguments against `className`'s own methods first; on no match it
// recurses into each parent class, and if found there re-mangles using
// the CALLING class's name so the wrapper generated for that
// inherited-but-not-overridden method is the one invoked. Falls back to
// the unmangled "{Class}_{Method}" name when no declaration can be
// found anywhere in the hierarchy (e.g. a dynamically dispatched
// override resolved only at the call site's static type).
func (g *Generator) findMethodOverload(callingClass, methodName string, argCount int) string {
	if mangled, ok := g.resolveOverloadIn(callingClass, callingClass, methodName, argCount); ok {
		return mangled
	}
	for _, ancestor := range g.allAncestors(callingClass) {
		if mangled, ok := g.resolveOverloadIn(ancestor, callingClass, methodName, argCount); ok {
			return mangled
		}
	}
	return callingClass + "_" + methodName
}

// resolveOverloadIn looks for a methodName/argCount match declared
// directly on declClass, and if found returns the mangled name using
// mangleClass (the class whose name should appear in the C symbol).
func (g *Generator) resolveOverloadIn(declClass, mangleClass, methodName string, argCount int) (string, bool) {
	class, ok := g.findClass(declClass)
	if !ok {
		return "", false
	}
	for _, m := range g.classMethods(class) {
		if m.Name == methodName && len(m.Parameters) == argCount {
			return mangleMethodName(mangleClass, methodName, paramTypes(m.Parameters)), true
		}
	}
	return "", false
}

// resolveConstructor picks the Initialize overload matching argCount,
// falling back to the implicit zero-argument constructor when the
// class declares no Initialize at all.
func (g *Generator) resolveConstructor(className string, argCount int) string {
	class, ok := g.findClass(className)
	if !ok {
		return className + "_new_void"
	}
	inits := g.classInitializers(class)
	if len(inits) == 0 {
		return className + "_new_void"
	}
	for _, init := range inits {
		if len(init.Parameters) == argCount {
			return mangleConstructorName(className, paramTypes(init.Parameters))
		}
	}
	return className + "_new"
}
