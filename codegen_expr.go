package foobar

import "fmt"

var binaryOperatorMap = map[string]string{
	"+": "+", "-": "-", "*": "*", "/": "/", "%": "%",
	"==": "==", ">": ">", "<": "<", ">=": ">=", "<=": "<=",
	"&": "&&", "V": "||",
}

// generateExpression lowers a single expression node to its C text.
func (g *Generator) generateExpression(expr Expr) (string, error) {
	switch e := expr.(type) {
	case *Literal:
		return g.generateLiteral(e), nil

	case *Identifier:
		return e.Name, nil

	case *ThisClass, *Parent:
		return "thisclass", nil

	case *BinaryOp:
		return g.generateBinaryOp(e)

	case *UnaryOp:
		return g.generateUnaryOp(e)

	case *Assignment:
		target, err := g.generateExpression(e.Target)
		if err != nil {
			return "", err
		}
		value, err := g.generateExpression(e.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", target, value), nil

	case *ArrayLiteral:
		return g.generateArrayLiteral(e)

	case *ArrayAccess:
		arr, err := g.generateExpression(e.Array)
		if err != nil {
			return "", err
		}
		idx, err := g.generateExpression(e.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s->data[%s]", arr, idx), nil

	case *ArraySlice:
		return g.generateArraySlice(e)

	case *MemberAccess:
		return g.generateMemberAccess(e)

	case *MethodCall:
		return g.generateMethodCall(e)

	case *Lambda:
		// Every lambda reaching here should already have been hoisted by
		// collectLambdas while walking its enclosing method call, which is
		// the only place a lambda's element type and target method are
		// known. A lambda with no generatedName means it appeared somewhere
		// collectLambdas does not look.
		if e.generatedName == "" {
			return "", fmtErr("lambda expression used outside of a recognized method call argument")
		}
		return e.generatedName, nil

	case *NewInstance:
		return g.generateNewInstance(e)

	case *IsA:
		return g.generateIsA(e)
	}

	return "", fmtErr("cannot generate expression of type %T", expr)
}

func (g *Generator) generateLiteral(lit *Literal) string {
	switch v := lit.Value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	case string:
		return fmt.Sprintf("%q", v)
	}
	return "0"
}

func (g *Generator) generateBinaryOp(e *BinaryOp) (string, error) {
	left, err := g.generateExpression(e.Left)
	if err != nil {
		return "", err
	}
	right, err := g.generateExpression(e.Right)
	if err != nil {
		return "", err
	}

	leftType := g.inferExpressionType(e.Left)
	rightType := g.inferExpressionType(e.Right)

	if leftType.IsArray || rightType.IsArray {
		if e.Operator == "+" {
			elemType := leftType.Name
			if !leftType.IsArray {
				elemType = rightType.Name
			}
			return fmt.Sprintf("%s_concat(%s, %s)", arrayStructName(elemType), left, right), nil
		}
	}

	if leftType.Name == "string" || rightType.Name == "string" {
		switch e.Operator {
		case "+":
			return fmt.Sprintf("string_concat(%s, %s)", left, right), nil
		case "==":
			return fmt.Sprintf("string_equals(%s, %s)", left, right), nil
		case "<":
			return fmt.Sprintf("string_less_than(%s, %s)", left, right), nil
		case ">":
			return fmt.Sprintf("string_greater_than(%s, %s)", left, right), nil
		case "<=":
			return fmt.Sprintf("(!string_greater_than(%s, %s))", left, right), nil
		case ">=":
			return fmt.Sprintf("(!string_less_than(%s, %s))", left, right), nil
		}
	}

	if e.Operator == "^" {
		return fmt.Sprintf("pow(%s, %s)", left, right), nil
	}
	if e.Operator == "VV" {
		return fmt.Sprintf("(%s ^ %s)", left, right), nil
	}

	cOp, ok := binaryOperatorMap[e.Operator]
	if !ok {
		return "", fmtErr("unknown binary operator %q", e.Operator)
	}
	return fmt.Sprintf("(%s %s %s)", left, cOp, right), nil
}

func (g *Generator) generateUnaryOp(e *UnaryOp) (string, error) {
	operand, err := g.generateExpression(e.Operand)
	if err != nil {
		return "", err
	}
	switch e.Operator {
	case "not":
		return fmt.Sprintf("(!%s)", operand), nil
	case "++":
		if e.IsPrefix {
			return fmt.Sprintf("(++%s)", operand), nil
		}
		return fmt.Sprintf("(%s++)", operand), nil
	case "--":
		if e.IsPrefix {
			return fmt.Sprintf("(--%s)", operand), nil
		}
		return fmt.Sprintf("(%s--)", operand), nil
	}
	return "", fmtErr("unknown unary operator %q", e.Operator)
}

func (g *Generator) generateArrayLiteral(e *ArrayLiteral) (string, error) {
	arrType := g.inferExpressionType(e)
	if len(e.Elements) == 0 {
		return "IntArray_from_literal((int[]){0}, 0)", nil
	}

	structName := arrayStructName(arrType.Name)
	cElem := cElementType(arrType.Name)

	var elems []string
	for _, el := range e.Elements {
		text, err := g.generateExpression(el)
		if err != nil {
			return "", err
		}
		elems = append(elems, text)
	}

	joined := ""
	for i, el := range elems {
		if i > 0 {
			joined += ", "
		}
		joined += el
	}

	return fmt.Sprintf("%s_from_literal((%s[]){%s}, %d)", structName, cElem, joined, len(elems)), nil
}

func (g *Generator) generateArraySlice(e *ArraySlice) (string, error) {
	arr, err := g.generateExpression(e.Array)
	if err != nil {
		return "", err
	}
	start, err := g.generateExpression(e.Start)
	if err != nil {
		return "", err
	}
	end, err := g.generateExpression(e.End)
	if err != nil {
		return "", err
	}

	arrType := g.inferExpressionType(e.Array)
	structName := arrayStructName(arrType.Name)

	startExpr, endExpr := start, end
	switch e.Kind {
	case ",,": // exclusive start, exclusive end
		startExpr = fmt.Sprintf("(%s + 1)", start)
		endExpr = end
	case "..": // inclusive start, inclusive end
		endExpr = fmt.Sprintf("(%s + 1)", end)
	}
	// ".," is inclusive start, exclusive end: use as-is.

	return fmt.Sprintf("%s_slice(%s, %s, %s)", structName, arr, startExpr, endExpr), nil
}

func (g *Generator) generateMemberAccess(e *MemberAccess) (string, error) {
	objType := g.inferExpressionType(e.Object)
	obj, err := g.generateExpression(e.Object)
	if err != nil {
		return "", err
	}

	if e.MemberName == "length" {
		if objType.Name == "string" {
			return fmt.Sprintf("string_length(%s)", obj), nil
		}
		if objType.IsArray {
			return fmt.Sprintf("%s->length", obj), nil
		}
	}

	if objType.IsArray {
		return fmt.Sprintf("%s->%s", obj, e.MemberName), nil
	}
	if _, ok := g.findClass(objType.Name); ok {
		return fmt.Sprintf("%s->%s", obj, e.MemberName), nil
	}
	return fmt.Sprintf("%s.%s", obj, e.MemberName), nil
}

func (g *Generator) generateIsA(e *IsA) (string, error) {
	obj, err := g.generateExpression(e.Object)
	if err != nil {
		return "", err
	}
	objType := g.inferExpressionType(e.Object)
	ancestors := g.allAncestors(objType.Name)
	slots := make([]string, 4)
	for i := range slots {
		if i < len(ancestors) {
			slots[i] = fmt.Sprintf("%q", ancestors[i])
		} else {
			slots[i] = "NULL"
		}
	}
	return fmt.Sprintf("_isa_check(%s->_class_name, %s, %s, %s, %s, %q)",
		obj, slots[0], slots[1], slots[2], slots[3], e.ClassName), nil
}

func (g *Generator) generateNewInstance(e *NewInstance) (string, error) {
	ctor := g.resolveConstructor(e.ClassName, len(e.Arguments))
	var args []string
	for _, a := range e.Arguments {
		text, err := g.generateExpression(a)
		if err != nil {
			return "", err
		}
		args = append(args, text)
	}
	joined := ""
	for i, a := range args {
		if i > 0 {
			joined += ", "
		}
		joined += a
	}
	return fmt.Sprintf("%s(%s)", ctor, joined), nil
}
