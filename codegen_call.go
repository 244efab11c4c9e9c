package foobar

import "fmt"

var staticClasses = map[string]bool{
	"CONSOLE": true, "MATH": true, "STRING": true,
	"ARRAY": true, "DATETIME": true, "RANDOM": true, "FILE": true,
}

var arrayMethodNames = map[string]bool{
	"map": true, "filter": true, "reduce": true, "sort": true,
	"unique": true, "find": true, "print": true, "length": true,
}

var stringMethodNames = map[string]bool{
	"length": true, "substring": true, "toUpper": true, "toLower": true,
	"replace": true, "trim": true, "toInteger": true, "toFloat": true,
}

var intMethodNames = map[string]bool{"toString": true, "toFloat": true}
var floatMethodNames = map[string]bool{"toString": true, "toInteger": true}

// generateMethodCall dispatches a call expression to its lowered C
// text, branching on whatever the call's receiver turns out to be:
// a static-class name, a string/number primitive, an array, a parent
// call, or a plain class instance.
func (g *Generator) generateMethodCall(e *MethodCall) (string, error) {
	if e.Object == nil {
		return g.generateStandaloneCall(e)
	}

	if ident, ok := e.Object.(*Identifier); ok && staticClasses[ident.Name] {
		return g.generateStaticClassCall(ident.Name, e)
	}

	if _, ok := e.Object.(*Parent); ok {
		return g.generateParentCall(e)
	}

	objType := g.inferExpressionType(e.Object)

	if objType.IsArray && arrayMethodNames[e.MethodName] {
		return g.generateArrayMethodCall(e, objType)
	}

	if objType.Name == "string" && stringMethodNames[e.MethodName] {
		return g.generateStringMethodCall(e)
	}
	if objType.Name == "integer" && intMethodNames[e.MethodName] {
		return g.generateIntMethodCall(e)
	}
	if objType.Name == "float" && floatMethodNames[e.MethodName] {
		return g.generateFloatMethodCall(e)
	}

	return g.generateInstanceMethodCall(e, objType)
}

func (g *Generator) generateArgs(args []Expr) ([]string, error) {
	var out []string
	for _, a := range args {
		text, err := g.generateExpression(a)
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

func joinArgs(args []string) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a
	}
	return s
}

func (g *Generator) generateStandaloneCall(e *MethodCall) (string, error) {
	args, err := g.generateArgs(e.Arguments)
	if err != nil {
		return "", err
	}

	// A call with no receiver and no enclosing class is a reference to
	// a standalone top-level function, which keeps its bare name rather
	// than being mangled.
	mangled := e.MethodName
	if g.currentClass != "" {
		mangled = g.findMethodOverload(g.currentClass, e.MethodName, len(e.Arguments))
	}
	return fmt.Sprintf("%s(%s)", mangled, joinArgs(args)), nil
}

func (g *Generator) generateStaticClassCall(class string, e *MethodCall) (string, error) {
	args, err := g.generateArgs(e.Arguments)
	if err != nil {
		return "", err
	}

	if class == "CONSOLE" && e.MethodName == "Print" && len(e.Arguments) == 1 {
		argType := g.inferExpressionType(e.Arguments[0])
		switch argType.Name {
		case "integer":
			return fmt.Sprintf("CONSOLE_PrintInteger(%s)", args[0]), nil
		case "boolean":
			return fmt.Sprintf("CONSOLE_PrintBoolean(%s)", args[0]), nil
		case "float":
			return fmt.Sprintf("CONSOLE_PrintFloat(%s)", args[0]), nil
		default:
			return fmt.Sprintf("CONSOLE_Print(%s)", args[0]), nil
		}
	}

	prefix := class
	if class == "FILE" {
		prefix = "FILECLS"
	}
	return fmt.Sprintf("%s_%s(%s)", prefix, e.MethodName, joinArgs(args)), nil
}

func (g *Generator) generateStringMethodCall(e *MethodCall) (string, error) {
	obj, err := g.generateExpression(e.Object)
	if err != nil {
		return "", err
	}
	args, err := g.generateArgs(e.Arguments)
	if err != nil {
		return "", err
	}
	all := append([]string{obj}, args...)

	switch e.MethodName {
	case "length":
		return fmt.Sprintf("string_length(%s)", obj), nil
	case "substring":
		return fmt.Sprintf("string_substring(%s)", joinArgs(all)), nil
	case "toUpper":
		return fmt.Sprintf("string_to_upper(%s)", obj), nil
	case "toLower":
		return fmt.Sprintf("string_to_lower(%s)", obj), nil
	case "replace":
		return fmt.Sprintf("string_replace(%s)", joinArgs(all)), nil
	case "trim":
		return fmt.Sprintf("string_trim(%s)", obj), nil
	case "toInteger":
		return fmt.Sprintf("string_to_int(%s)", obj), nil
	case "toFloat":
		return fmt.Sprintf("string_to_float_value(%s)", obj), nil
	}
	return "", fmtErr("unknown string method %q", e.MethodName)
}

func (g *Generator) generateIntMethodCall(e *MethodCall) (string, error) {
	obj, err := g.generateExpression(e.Object)
	if err != nil {
		return "", err
	}
	switch e.MethodName {
	case "toString":
		return fmt.Sprintf("int_to_string(%s)", obj), nil
	case "toFloat":
		return fmt.Sprintf("int_to_float(%s)", obj), nil
	}
	return "", fmtErr("unknown integer method %q", e.MethodName)
}

func (g *Generator) generateFloatMethodCall(e *MethodCall) (string, error) {
	obj, err := g.generateExpression(e.Object)
	if err != nil {
		return "", err
	}
	switch e.MethodName {
	case "toString":
		return fmt.Sprintf("float_to_string(%s)", obj), nil
	case "toInteger":
		return fmt.Sprintf("float_to_int(%s)", obj), nil
	}
	return "", fmtErr("unknown float method %q", e.MethodName)
}

// generateArrayMethodCall lowers the functional array transformation
// methods. Each lambda argument has already been hoisted to a
// top-level C function by collectLambdas before generation begins, so
// the call site only needs that function's remembered name.
func (g *Generator) generateArrayMethodCall(e *MethodCall, objType Type) (string, error) {
	obj, err := g.generateExpression(e.Object)
	if err != nil {
		return "", err
	}
	structName := arrayStructName(objType.Name)

	if e.MethodName == "length" {
		return fmt.Sprintf("%s->length", obj), nil
	}
	if e.MethodName == "print" {
		return fmt.Sprintf("%s_print(%s)", structName, obj), nil
	}
	if e.MethodName == "sort" {
		return fmt.Sprintf("%s_sort(%s, %s)", structName, obj, g.lambdaArgRef(e, 0)), nil
	}
	if e.MethodName == "reduce" {
		initial, err := g.generateExpression(e.Arguments[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s_reduce(%s, %s, %s)", structName, obj, g.lambdaArgRef(e, 0), initial), nil
	}
	if e.MethodName == "find" {
		fallback := fmt.Sprintf("(%s)0", cElementType(objType.Name))
		return fmt.Sprintf("%s_find(%s, %s, %s)", structName, obj, g.lambdaArgRef(e, 0), fallback), nil
	}
	if e.MethodName == "unique" {
		return fmt.Sprintf("%s_unique(%s)", structName, obj), nil
	}

	// map / filter
	return fmt.Sprintf("%s_%s(%s, %s)", structName, e.MethodName, obj, g.lambdaArgRef(e, 0)), nil
}

// lambdaArgRef returns the hoisted C function name that collectLambdas
// recorded for the lambda at argument index idx, or "NULL" when no
// lambda was hoisted for that argument. It does not hoist anything
// itself.
func (g *Generator) lambdaArgRef(call *MethodCall, idx int) string {
	if call.generatedLambdaNames != nil {
		if name, ok := call.generatedLambdaNames[idx]; ok {
			return name
		}
	}
	return "NULL"
}

func (g *Generator) generateParentCall(e *MethodCall) (string, error) {
	class, ok := g.findClass(g.currentClass)
	if !ok || len(class.ParentClasses) == 0 {
		return "", fmtErr("parent call in class %q with no parent", g.currentClass)
	}
	parentClass := class.ParentClasses[0]
	mangled := g.findMethodOverload(parentClass, e.MethodName, len(e.Arguments))

	args, err := g.generateArgs(e.Arguments)
	if err != nil {
		return "", err
	}
	castSelf := fmt.Sprintf("((%s*)thisclass)", parentClass)
	all := append([]string{castSelf}, args...)
	return fmt.Sprintf("%s(%s)", mangled, joinArgs(all)), nil
}

func (g *Generator) generateInstanceMethodCall(e *MethodCall, objType Type) (string, error) {
	obj, err := g.generateExpression(e.Object)
	if err != nil {
		return "", err
	}
	args, err := g.generateArgs(e.Arguments)
	if err != nil {
		return "", err
	}
	mangled := g.findMethodOverload(objType.Name, e.MethodName, len(e.Arguments))
	all := append([]string{obj}, args...)
	return fmt.Sprintf("%s(%s)", mangled, joinArgs(all)), nil
}
