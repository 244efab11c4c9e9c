package foobar

import "fmt"

func (g *Generator) generateBlock(block *Block) error {
	g.pushScope()
	defer g.popScope()

	g.emit("{")
	g.indent()
	for _, stmt := range block.Statements {
		if err := g.generateStatement(stmt); err != nil {
			return err
		}
	}
	g.dedent()
	g.emit("}")
	return nil
}

func (g *Generator) generateStatement(stmt Stmt) error {
	switch s := stmt.(type) {
	case *VarDecl:
		return g.generateVarDecl(s)
	case *ExpressionStmt:
		text, err := g.generateExpression(s.Expression)
		if err != nil {
			return err
		}
		g.emit(text + ";")
		return nil
	case *ReturnStmt:
		if s.Value == nil {
			g.emit("return;")
			return nil
		}
		text, err := g.generateExpression(s.Value)
		if err != nil {
			return err
		}
		g.emit(fmt.Sprintf("return %s;", text))
		return nil
	case *IfStmt:
		return g.generateIfStmt(s)
	case *LoopForStmt:
		return g.generateLoopFor(s)
	case *LoopUntilStmt:
		return g.generateLoopUntil(s)
	}
	return fmtErr("cannot generate statement of type %T", stmt)
}

func (g *Generator) generateVarDecl(s *VarDecl) error {
	g.addSymbol(s.Name, s.VarType)
	cType := g.cType(s.VarType)

	if s.InitialValue == nil {
		g.emit(fmt.Sprintf("%s %s;", cType, s.Name))
		return nil
	}

	if lit, ok := s.InitialValue.(*ArrayLiteral); ok && len(lit.Elements) == 0 {
		structName := arrayStructName(s.VarType.Name)
		g.emit(fmt.Sprintf("%s %s = %s_new(0);", cType, s.Name, structName))
		return nil
	}

	value, err := g.generateExpression(s.InitialValue)
	if err != nil {
		return err
	}
	g.emit(fmt.Sprintf("%s %s = %s;", cType, s.Name, value))
	return nil
}

func (g *Generator) generateIfStmt(s *IfStmt) error {
	cond, err := g.generateExpression(s.Condition)
	if err != nil {
		return err
	}
	g.emit(fmt.Sprintf("if (%s)", cond))
	if err := g.generateBlock(s.Then); err != nil {
		return err
	}

	for _, part := range s.ElseIfParts {
		c, err := g.generateExpression(part.Condition)
		if err != nil {
			return err
		}
		g.emit(fmt.Sprintf("else if (%s)", c))
		if err := g.generateBlock(part.Block); err != nil {
			return err
		}
	}

	if s.Else != nil {
		g.emit("else")
		if err := g.generateBlock(s.Else); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateLoopFor(s *LoopForStmt) error {
	count, err := g.generateExpression(s.Count)
	if err != nil {
		return err
	}
	counter := fmt.Sprintf("_loop_%d", g.loopCounter)
	g.loopCounter++

	g.emit(fmt.Sprintf("for (int %s = 0; %s < %s; %s++)", counter, counter, count, counter))
	if err := g.generateBlock(s.Body); err != nil {
		return err
	}
	return nil
}

func (g *Generator) generateLoopUntil(s *LoopUntilStmt) error {
	cond, err := g.generateExpression(s.Condition)
	if err != nil {
		return err
	}
	g.emit(fmt.Sprintf("while (!(%s))", cond))
	if err := g.generateBlock(s.Body); err != nil {
		return err
	}
	return nil
}
