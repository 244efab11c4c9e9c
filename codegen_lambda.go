package foobar

import "fmt"

// collectLambdas walks a method body after its parameters have been
// registered in scope, hoisting every lambda argument it finds to a
// top-level C function spliced into the reserved lambda section. This
// runs as a pass over the whole body before statement generation so
// that later code can simply reference a lambda's name in one line.
func (g *Generator) collectLambdas(block *Block) error {
	for _, stmt := range block.Statements {
		if err := g.collectLambdasStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) collectLambdasStmt(stmt Stmt) error {
	switch s := stmt.(type) {
	case *VarDecl:
		if s.InitialValue != nil {
			return g.collectLambdasExpr(s.InitialValue)
		}
	case *ExpressionStmt:
		return g.collectLambdasExpr(s.Expression)
	case *ReturnStmt:
		if s.Value != nil {
			return g.collectLambdasExpr(s.Value)
		}
	case *IfStmt:
		if err := g.collectLambdasExpr(s.Condition); err != nil {
			return err
		}
		if err := g.collectLambdas(s.Then); err != nil {
			return err
		}
		for _, part := range s.ElseIfParts {
			if err := g.collectLambdasExpr(part.Condition); err != nil {
				return err
			}
			if err := g.collectLambdas(part.Block); err != nil {
				return err
			}
		}
		if s.Else != nil {
			return g.collectLambdas(s.Else)
		}
	case *LoopForStmt:
		if err := g.collectLambdasExpr(s.Count); err != nil {
			return err
		}
		return g.collectLambdas(s.Body)
	case *LoopUntilStmt:
		if err := g.collectLambdasExpr(s.Condition); err != nil {
			return err
		}
		return g.collectLambdas(s.Body)
	}
	return nil
}

func (g *Generator) collectLambdasExpr(expr Expr) error {
	switch e := expr.(type) {
	case *BinaryOp:
		if err := g.collectLambdasExpr(e.Left); err != nil {
			return err
		}
		return g.collectLambdasExpr(e.Right)
	case *UnaryOp:
		return g.collectLambdasExpr(e.Operand)
	case *Assignment:
		if err := g.collectLambdasExpr(e.Target); err != nil {
			return err
		}
		return g.collectLambdasExpr(e.Value)
	case *ArrayLiteral:
		for _, el := range e.Elements {
			if err := g.collectLambdasExpr(el); err != nil {
				return err
			}
		}
	case *ArrayAccess:
		if err := g.collectLambdasExpr(e.Array); err != nil {
			return err
		}
		return g.collectLambdasExpr(e.Index)
	case *ArraySlice:
		if err := g.collectLambdasExpr(e.Array); err != nil {
			return err
		}
		if err := g.collectLambdasExpr(e.Start); err != nil {
			return err
		}
		return g.collectLambdasExpr(e.End)
	case *MemberAccess:
		return g.collectLambdasExpr(e.Object)
	case *NewInstance:
		for _, a := range e.Arguments {
			if err := g.collectLambdasExpr(a); err != nil {
				return err
			}
		}
	case *IsA:
		return g.collectLambdasExpr(e.Object)
	case *MethodCall:
		return g.collectLambdasMethodCall(e)
	}
	return nil
}

func (g *Generator) collectLambdasMethodCall(call *MethodCall) error {
	var elemType Type
	if call.Object != nil {
		if err := g.collectLambdasExpr(call.Object); err != nil {
			return err
		}
		objType := g.inferExpressionType(call.Object)
		if objType.IsArray {
			elemType = Type{Name: objType.Name}
		}
	}

	for i, arg := range call.Arguments {
		lambda, ok := arg.(*Lambda)
		if !ok {
			if err := g.collectLambdasExpr(arg); err != nil {
				return err
			}
			continue
		}
		name, err := g.hoistLambda(lambda, call.MethodName, elemType)
		if err != nil {
			return err
		}
		if call.generatedLambdaNames == nil {
			call.generatedLambdaNames = make(map[int]string)
		}
		call.generatedLambdaNames[i] = name
	}
	return nil
}

// hoistLambda generates a top-level C function for a single lambda
// literal, shaped by the array method it is being passed to, and
// splices its definition into the reserved lambda section. The
// lambda's C parameter and return types follow the array's element
// type, except for the boolean-returning predicate forms (filter/find)
// and the sort comparator, which always returns int.
func (g *Generator) hoistLambda(lambda *Lambda, methodName string, elemType Type) (string, error) {
	if lambda.generatedName != "" {
		return lambda.generatedName, nil
	}

	name := fmt.Sprintf("_generated_lambda_%d", g.lambdaCounter)
	g.lambdaCounter++
	lambda.generatedName = name

	cElem := cElementType(elemType.Name)
	if cElem == "" || cElem == "void*" && elemType.Name == "" {
		cElem = "int"
	}

	var returnCType string
	switch methodName {
	case "filter", "find":
		returnCType = "bool"
	case "sort":
		returnCType = "int"
	case "map":
		returnCType = cElem
	case "reduce":
		returnCType = cElem
	default:
		returnCType = cElem
	}

	// qsort's comparator signature takes opaque const void* pointers, but
	// the lambda body was written against plain element values. Rather
	// than generating the body against pointer-typed parameters (which
	// would silently compile as pointer arithmetic instead of a value
	// comparison), the comparator takes synthetic pointer parameter names
	// and declares the lambda's real parameter names as dereferenced,
	// correctly-typed locals ahead of the body.
	var paramDecls []string
	var prelude []string
	if methodName == "sort" {
		ptrNames := []string{"_sort_a", "_sort_b"}
		paramDecls = []string{"const void* " + ptrNames[0], "const void* " + ptrNames[1]}
		for i, p := range lambda.Parameters {
			if i >= len(ptrNames) {
				break
			}
			prelude = append(prelude, fmt.Sprintf("%s %s = *(%s*)%s;", cElem, p, cElem, ptrNames[i]))
		}
	} else {
		for _, p := range lambda.Parameters {
			paramDecls = append(paramDecls, cElem+" "+p)
		}
	}
	paramList := ""
	for i, p := range paramDecls {
		if i > 0 {
			paramList += ", "
		}
		paramList += p
	}

	g.pushScope()
	for _, p := range lambda.Parameters {
		g.addSymbol(p, elemType)
	}
	bodyText, err := g.generateExpression(lambda.Body)
	g.popScope()
	if err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("static %s %s(%s) {", returnCType, name, paramList)}
	for _, p := range prelude {
		lines = append(lines, "    "+p)
	}
	lines = append(lines,
		fmt.Sprintf("    return %s;", bodyText),
		"}",
		"",
	)

	g.insertAt(g.lambdaSectionIndex, lines)
	g.lambdaSectionIndex += len(lines)

	return name, nil
}
