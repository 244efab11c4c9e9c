package foobar

import (
	"fmt"
	"strings"
)

// ParseError is a fatal grammar violation, carrying a one-line hint for
// the handful of mistakes beginners make most often.
type ParseError struct {
	Message string
	Span    Span
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s @ %s", e.Message, e.Span)
}

// Parser is a hand-rolled recursive-descent parser with precedence
// climbing for expressions. It never returns partial results: a parse
// failure always surfaces as a ParseError.
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens, pos: 0}
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(offset int) Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) match(kinds ...TokenKind) bool {
	cur := p.current().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

var expectHints = map[TokenKind]string{
	TokSemicolon:  "\nDid you forget a semicolon (;) at the end of the statement?",
	TokRParen:     "\nDid you forget a closing parenthesis )?",
	TokRBrace:     "\nDid you forget a closing brace }?",
	TokIdentifier: "\nExpected a variable or function name here.",
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return Token{}, ParseError{
			Message: fmt.Sprintf("Syntax error at line %d, column %d\nExpected %s, but got %s%s",
				tok.Line, tok.Column, kind, tok.Kind, expectHints[kind]),
			Span: spanAt(tok.loc()),
		}
	}
	p.advance()
	return tok, nil
}

// Parse parses the full token stream into a single-file Program.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}

	for !p.match(TokEOF) {
		if p.match(TokImport) {
			decl, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			prog.Imports = append(prog.Imports, decl)
			continue
		}
		if p.match(TokClass) {
			decl, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			prog.Declarations = append(prog.Declarations, decl)
			continue
		}
		if p.match(TokEnumerated) {
			decl, err := p.parseEnum()
			if err != nil {
				return nil, err
			}
			prog.Declarations = append(prog.Declarations, decl)
			continue
		}

		isPublic := false
		if p.match(TokPublic) {
			isPublic = true
			p.advance()
		} else if p.match(TokPrivate) {
			p.advance()
		}

		decl, err := p.parseMethod(isPublic)
		if err != nil {
			return nil, err
		}
		prog.Declarations = append(prog.Declarations, decl)
	}

	return prog, nil
}

func (p *Parser) parseImport() (*ImportDecl, error) {
	loc := p.current().loc()
	if _, err := p.expect(TokImport); err != nil {
		return nil, err
	}
	path, err := p.expect(TokStringLiteral)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemicolon); err != nil {
		return nil, err
	}
	return &ImportDecl{Filepath: path.Text(), Location: loc}, nil
}

func (p *Parser) parseClass() (*ClassDecl, error) {
	loc := p.current().loc()
	if _, err := p.expect(TokClass); err != nil {
		return nil, err
	}
	name, err := p.expect(TokIdentifier)
	if err != nil {
		return nil, err
	}

	var parents []string
	if p.match(TokInherits) {
		p.advance()
		first, err := p.expect(TokIdentifier)
		if err != nil {
			return nil, err
		}
		parents = append(parents, first.Text())
		for p.match(TokComma) {
			p.advance()
			next, err := p.expect(TokIdentifier)
			if err != nil {
				return nil, err
			}
			parents = append(parents, next.Text())
		}
	}

	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}

	var members []Member
	for !p.match(TokRBrace) {
		isPublic := false
		if p.match(TokPublic) {
			isPublic = true
			p.advance()
		} else if p.match(TokPrivate) {
			p.advance()
		}

		if p.match(TokIdentifier) && p.current().Text() == "Initialize" {
			methodLoc := p.current().loc()
			p.advance()
			if _, err := p.expect(TokLParen); err != nil {
				return nil, err
			}
			params, err := p.parseParameterList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokRParen); err != nil {
				return nil, err
			}
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			members = append(members, &MethodDecl{
				Name: "Initialize", ReturnType: nil, Parameters: params,
				Body: body, IsPublic: isPublic, Location: methodLoc,
			})
			continue
		}

		member, err := p.parseMemberDisambiguated(isPublic)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}

	return &ClassDecl{Name: name.Text(), ParentClasses: parents, Members: members, Location: loc}, nil
}

// parseMemberDisambiguated implements the method-vs-field lookahead:
// parse a type, then peek for `Ident (` to classify as a method; on any
// failure or mismatch, rewind and parse as a field.
func (p *Parser) parseMemberDisambiguated(isPublic bool) (Member, error) {
	savedPos := p.pos

	if _, err := p.parseType(); err == nil {
		if p.match(TokIdentifier) {
			p.advance()
			if p.match(TokLParen) {
				p.pos = savedPos
				return p.parseMethod(isPublic)
			}
		}
		p.pos = savedPos
		return p.parseField(isPublic)
	}

	p.pos = savedPos
	tok := p.current()
	return nil, ParseError{
		Message: fmt.Sprintf("Expected class member at %d:%d", tok.Line, tok.Column),
		Span:    spanAt(tok.loc()),
	}
}

func (p *Parser) parseField(isPublic bool) (*FieldDecl, error) {
	loc := p.current().loc()
	fieldType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokIdentifier)
	if err != nil {
		return nil, err
	}

	var initial Expr
	if p.match(TokAssign) {
		p.advance()
		initial, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokSemicolon); err != nil {
		return nil, err
	}

	return &FieldDecl{Name: name.Text(), FieldType: fieldType, IsPublic: isPublic, InitialValue: initial, Location: loc}, nil
}

func (p *Parser) parseEnum() (*EnumDecl, error) {
	loc := p.current().loc()
	if _, err := p.expect(TokEnumerated); err != nil {
		return nil, err
	}
	name, err := p.expect(TokIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}

	var values []string
	for !p.match(TokRBrace) {
		val, err := p.expect(TokIdentifier)
		if err != nil {
			return nil, err
		}
		values = append(values, val.Text())
		if p.match(TokComma) {
			p.advance()
		}
	}

	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemicolon); err != nil {
		return nil, err
	}

	return &EnumDecl{Name: name.Text(), Values: values, Location: loc}, nil
}

func (p *Parser) parseMethod(isPublic bool) (*MethodDecl, error) {
	loc := p.current().loc()

	if p.match(TokIdentifier) && p.current().Text() == "Main" {
		p.advance()
		if _, err := p.expect(TokLParen); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &MethodDecl{Name: "Main", ReturnType: nil, Parameters: nil, Body: body, IsPublic: isPublic, Location: loc}, nil
	}

	returnType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	rt := returnType
	return &MethodDecl{Name: name.Text(), ReturnType: &rt, Parameters: params, Body: body, IsPublic: isPublic, Location: loc}, nil
}

func (p *Parser) parseParameterList() ([]Parameter, error) {
	var params []Parameter
	for !p.match(TokRParen) {
		paramType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(TokIdentifier)
		if err != nil {
			return nil, err
		}
		params = append(params, Parameter{Name: name.Text(), ParamType: paramType})
		if p.match(TokComma) {
			p.advance()
		}
	}
	return params, nil
}

var primitiveTypeTokens = []TokenKind{
	TokBoolean, TokInteger, TokLongInteger, TokFloat, TokLongFloat, TokString, TokCharacter, TokVoid,
}

func (p *Parser) parseType() (Type, error) {
	var name string
	if p.match(primitiveTypeTokens...) {
		name = p.current().Text()
		p.advance()
	} else if p.match(TokIdentifier) {
		name = p.current().Text()
		p.advance()
	} else {
		tok := p.current()
		return Type{}, ParseError{
			Message: fmt.Sprintf("Type error at line %d, column %d\nExpected a type (like integer, boolean, string, or a class name), but got %s\nValid types: boolean, integer, longinteger, float, longfloat, string, character, void, or a class name",
				tok.Line, tok.Column, strings.ToLower(tok.Kind.String())),
			Span: spanAt(tok.loc()),
		}
	}

	isArray := false
	if p.match(TokLBracket) {
		p.advance()
		if _, err := p.expect(TokRBracket); err != nil {
			return Type{}, err
		}
		isArray = true
	}

	return Type{Name: name, IsArray: isArray}, nil
}

func (p *Parser) parseBlock() (*Block, error) {
	loc := p.current().loc()
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}
	var stmts []Stmt
	for !p.match(TokRBrace) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}
	return &Block{Statements: stmts, Location: loc}, nil
}

var varDeclPrimitiveTokens = []TokenKind{
	TokBoolean, TokInteger, TokLongInteger, TokFloat, TokLongFloat, TokString, TokCharacter,
}

func (p *Parser) parseStatement() (Stmt, error) {
	loc := p.current().loc()

	if p.match(TokReturn) {
		p.advance()
		var value Expr
		if !p.match(TokSemicolon) {
			v, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			value = v
		}
		if _, err := p.expect(TokSemicolon); err != nil {
			return nil, err
		}
		return &ReturnStmt{Value: value, Location: loc}, nil
	}

	if p.match(TokIf) {
		return p.parseIf()
	}

	if p.match(TokLoop) {
		return p.parseLoop()
	}

	isVarDecl := p.match(varDeclPrimitiveTokens...) ||
		(p.match(TokIdentifier) && (p.peek(1).Kind == TokIdentifier || p.peek(1).Kind == TokLBracket))

	if isVarDecl {
		varType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(TokIdentifier)
		if err != nil {
			return nil, err
		}
		var initial Expr
		if p.match(TokAssign) {
			p.advance()
			initial, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(TokSemicolon); err != nil {
			return nil, err
		}
		return &VarDecl{Name: name.Text(), VarType: varType, InitialValue: initial, Location: loc}, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemicolon); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expression: expr, Location: loc}, nil
}

func (p *Parser) parseIf() (*IfStmt, error) {
	loc := p.current().loc()
	if _, err := p.expect(TokIf); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseifs []CondBlock
	for p.match(TokElseIf) {
		p.advance()
		if _, err := p.expect(TokLParen); err != nil {
			return nil, err
		}
		c, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		elseifs = append(elseifs, CondBlock{Condition: c, Block: b})
	}

	var elseBlock *Block
	if p.match(TokElse) {
		p.advance()
		// The grammar requires empty parens after 'else'; this is a
		// deliberate quirk inherited unchanged from the reference
		// grammar, not a typo.
		if _, err := p.expect(TokLParen); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		elseBlock = b
	}

	return &IfStmt{Condition: cond, Then: thenBlock, ElseIfParts: elseifs, Else: elseBlock, Location: loc}, nil
}

func (p *Parser) parseLoop() (Stmt, error) {
	loc := p.current().loc()
	if _, err := p.expect(TokLoop); err != nil {
		return nil, err
	}

	if p.match(TokFor) {
		p.advance()
		if _, err := p.expect(TokLParen); err != nil {
			return nil, err
		}
		count, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &LoopForStmt{Count: count, Body: body, Location: loc}, nil
	}

	if p.match(TokUntil) {
		p.advance()
		if _, err := p.expect(TokLParen); err != nil {
			return nil, err
		}
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &LoopUntilStmt{Condition: cond, Body: body, Location: loc}, nil
	}

	tok := p.current()
	return nil, ParseError{
		Message: fmt.Sprintf("Expected 'for' or 'until' after 'loop' at %d:%d", tok.Line, tok.Column),
		Span:    spanAt(tok.loc()),
	}
}

// Expression grammar, precedence low -> high:
// assignment -> xor -> or -> and -> cmp(isa) -> add -> mul -> pow -> unary -> postfix -> primary

func (p *Parser) parseExpression() (Expr, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (Expr, error) {
	loc := p.current().loc()
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	if p.match(TokAssign) {
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &Assignment{Target: left, Value: value, Location: loc}, nil
	}
	return left, nil
}

func (p *Parser) parseXor() (Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.match(TokXor) {
		loc := p.current().loc()
		op := p.current().Text()
		p.advance()
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Operator: op, Right: right, Location: loc}
	}
	return left, nil
}

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(TokOr) {
		loc := p.current().loc()
		op := p.current().Text()
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Operator: op, Right: right, Location: loc}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.match(TokAnd) {
		loc := p.current().loc()
		op := p.current().Text()
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Operator: op, Right: right, Location: loc}
	}
	return left, nil
}

func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if p.match(TokIsA) {
		loc := p.current().loc()
		p.advance()
		className, err := p.expect(TokIdentifier)
		if err != nil {
			return nil, err
		}
		return &IsA{Object: left, ClassName: className.Text(), Location: loc}, nil
	}

	for p.match(TokEqual, TokGreater, TokLess, TokGreaterEqual, TokLessEqual) {
		loc := p.current().loc()
		op := p.current().Text()
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Operator: op, Right: right, Location: loc}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.match(TokPlus, TokMinus) {
		loc := p.current().loc()
		op := p.current().Text()
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Operator: op, Right: right, Location: loc}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.match(TokMultiply, TokDivide, TokModulus) {
		loc := p.current().loc()
		op := p.current().Text()
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Operator: op, Right: right, Location: loc}
	}
	return left, nil
}

func (p *Parser) parsePower() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.match(TokPower) {
		loc := p.current().loc()
		op := p.current().Text()
		p.advance()
		right, err := p.parsePower() // right-associative
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Left: left, Operator: op, Right: right, Location: loc}, nil
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.match(TokNot) {
		loc := p.current().loc()
		op := p.current().Text()
		p.advance()
		if _, err := p.expect(TokLParen); err != nil {
			return nil, err
		}
		operand, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return &UnaryOp{Operator: op, Operand: operand, IsPrefix: true, Location: loc}, nil
	}

	if p.match(TokIncrement, TokDecrement) {
		loc := p.current().loc()
		op := p.current().Text()
		p.advance()
		operand, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Operator: op, Operand: operand, IsPrefix: true, Location: loc}, nil
	}

	return p.parsePostfix()
}

var propertiesNeverMethods = map[string]bool{"length": true}

func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		if p.match(TokLBracket) {
			loc := p.current().loc()
			p.advance()

			if p.match(TokSliceIncExc, TokSliceExcExc, TokSliceIncInc) {
				sliceType := p.current().Text()
				p.advance()
				end, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(TokRBracket); err != nil {
					return nil, err
				}
				expr = &ArraySlice{Array: expr, Start: &Literal{Value: 0, Location: loc}, End: end, Kind: sliceType, Location: loc}
				continue
			}

			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if p.match(TokSliceIncExc, TokSliceExcExc, TokSliceIncInc) {
				sliceType := p.current().Text()
				p.advance()
				end, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(TokRBracket); err != nil {
					return nil, err
				}
				expr = &ArraySlice{Array: expr, Start: index, End: end, Kind: sliceType, Location: loc}
				continue
			}

			if _, err := p.expect(TokRBracket); err != nil {
				return nil, err
			}
			expr = &ArrayAccess{Array: expr, Index: index, Location: loc}
			continue
		}

		if p.match(TokDot) {
			loc := p.current().loc()
			p.advance()
			memberTok, err := p.expect(TokIdentifier)
			if err != nil {
				return nil, err
			}
			memberName := memberTok.Text()

			if propertiesNeverMethods[memberName] {
				if p.match(TokLParen) {
					p.advance()
					if _, err := p.expect(TokRParen); err != nil {
						return nil, err
					}
				}
				expr = &MemberAccess{Object: expr, MemberName: memberName, Location: loc}
				continue
			}

			if p.match(TokLParen) {
				p.advance()
				args, err := p.parseCallArguments()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(TokRParen); err != nil {
					return nil, err
				}
				expr = &MethodCall{Object: expr, MethodName: memberName, Arguments: args, Location: loc}
				continue
			}

			expr = &MemberAccess{Object: expr, MemberName: memberName, Location: loc}
			continue
		}

		if p.match(TokIncrement, TokDecrement) {
			loc := p.current().loc()
			op := p.current().Text()
			p.advance()
			expr = &UnaryOp{Operator: op, Operand: expr, IsPrefix: false, Location: loc}
			continue
		}

		break
	}

	return expr, nil
}

// parseCallArguments parses a comma-separated argument list where each
// element may be a bare expression or, in lambda position, a lambda.
// Lambda detection requires unbounded but bounded-by-parens lookahead:
// a leading `Identifier ->` is a one-parameter lambda; a leading
// balanced `(...)` immediately followed by `->` is a multi-parameter
// lambda. The first check only peeks one token ahead; the second saves
// and restores the cursor so the real parse proceeds from a known-good
// position.
func (p *Parser) parseCallArguments() ([]Expr, error) {
	var args []Expr
	for !p.match(TokRParen) {
		isLambda := false

		if p.current().Kind == TokIdentifier && p.peek(1).Kind == TokArrow {
			isLambda = true
		} else if p.current().Kind == TokLParen {
			savedPos := p.pos
			p.advance()
			depth := 1
			for depth > 0 && !p.match(TokEOF) {
				if p.match(TokLParen) {
					depth++
				} else if p.match(TokRParen) {
					depth--
				}
				p.advance()
			}
			if p.match(TokArrow) {
				isLambda = true
			}
			p.pos = savedPos
		}

		var arg Expr
		var err error
		if isLambda {
			arg, err = p.parseLambda()
		} else {
			arg, err = p.parseExpression()
		}
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.match(TokComma) {
			p.advance()
		}
	}
	return args, nil
}

func (p *Parser) parseLambda() (*Lambda, error) {
	loc := p.current().loc()
	var params []string

	if p.match(TokLParen) {
		p.advance()
		for !p.match(TokRParen) {
			name, err := p.expect(TokIdentifier)
			if err != nil {
				return nil, err
			}
			params = append(params, name.Text())
			if p.match(TokComma) {
				p.advance()
			}
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
	} else {
		name, err := p.expect(TokIdentifier)
		if err != nil {
			return nil, err
		}
		params = append(params, name.Text())
	}

	if _, err := p.expect(TokArrow); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &Lambda{Parameters: params, Body: body, Location: loc}, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	loc := p.current().loc()

	if p.match(TokNew) {
		p.advance()
		className, err := p.expect(TokIdentifier)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokLParen); err != nil {
			return nil, err
		}
		args, err := p.parseArgListUntilRParen()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return &NewInstance{ClassName: className.Text(), Arguments: args, Location: loc}, nil
	}

	if p.match(TokThisClass) {
		p.advance()
		return &ThisClass{Location: loc}, nil
	}

	if p.match(TokParent) {
		p.advance()
		return &Parent{Location: loc}, nil
	}

	if p.match(TokTrue) {
		p.advance()
		return &Literal{Value: true, Location: loc}, nil
	}
	if p.match(TokFalse) {
		p.advance()
		return &Literal{Value: false, Location: loc}, nil
	}
	if p.match(TokNumber) {
		val := p.current().Value
		p.advance()
		return &Literal{Value: val, Location: loc}, nil
	}
	if p.match(TokStringLiteral) {
		val := p.current().Text()
		p.advance()
		return &Literal{Value: val, Location: loc}, nil
	}

	if p.match(TokLBracket) {
		p.advance()
		var elems []Expr
		for !p.match(TokRBracket) {
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.match(TokComma) {
				p.advance()
			}
		}
		if _, err := p.expect(TokRBracket); err != nil {
			return nil, err
		}
		return &ArrayLiteral{Elements: elems, Location: loc}, nil
	}

	if p.match(TokLParen) {
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return expr, nil
	}

	if p.match(TokIdentifier) {
		name := p.current().Text()
		p.advance()

		if p.match(TokLParen) {
			p.advance()
			args, err := p.parseArgListUntilRParen()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokRParen); err != nil {
				return nil, err
			}
			return &MethodCall{Object: nil, MethodName: name, Arguments: args, Location: loc}, nil
		}

		return &Identifier{Name: name, Location: loc}, nil
	}

	tok := p.current()
	return nil, ParseError{
		Message: fmt.Sprintf("Unexpected token %s at %d:%d", tok.Kind, tok.Line, tok.Column),
		Span:    spanAt(tok.loc()),
	}
}

// parseArgListUntilRParen parses comma-separated expressions (no
// lambda disambiguation — used for `new`/standalone call argument
// lists, which the reference grammar never treats as lambda position).
func (p *Parser) parseArgListUntilRParen() ([]Expr, error) {
	var args []Expr
	for !p.match(TokRParen) {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if p.match(TokComma) {
			p.advance()
		}
	}
	return args, nil
}
