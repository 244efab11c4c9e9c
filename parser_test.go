package foobar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) *Program {
	t.Helper()
	tokens, err := NewLexer(source).Tokenize()
	require.NoError(t, err)
	prog, err := NewParser(tokens).Parse()
	require.NoError(t, err)
	return prog
}

func TestParserImportDecl(t *testing.T) {
	prog := parseSource(t, `import "util/helpers.foob";`)
	require.Len(t, prog.Imports, 1)
	assert.Equal(t, "util/helpers.foob", prog.Imports[0].Filepath)
}

func TestParserEmptyClass(t *testing.T) {
	prog := parseSource(t, `class Animal { }`)
	require.Len(t, prog.Declarations, 1)
	class, ok := prog.Declarations[0].(*ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "Animal", class.Name)
	assert.Empty(t, class.ParentClasses)
}

func TestParserClassWithInheritance(t *testing.T) {
	prog := parseSource(t, `class Dog inherits Animal, Pet { }`)
	class := prog.Declarations[0].(*ClassDecl)
	assert.Equal(t, []string{"Animal", "Pet"}, class.ParentClasses)
}

func TestParserFieldDecl(t *testing.T) {
	prog := parseSource(t, `class Animal {
		private integer age = 0;
		public string name;
	}`)
	class := prog.Declarations[0].(*ClassDecl)
	require.Len(t, class.Members, 2)

	age := class.Members[0].(*FieldDecl)
	assert.Equal(t, "age", age.Name)
	assert.Equal(t, "integer", age.FieldType.Name)
	assert.False(t, age.IsPublic)
	require.NotNil(t, age.InitialValue)

	name := class.Members[1].(*FieldDecl)
	assert.Equal(t, "name", name.Name)
	assert.True(t, name.IsPublic)
	assert.Nil(t, name.InitialValue)
}

func TestParserInitializeMethod(t *testing.T) {
	prog := parseSource(t, `class Animal {
		public Initialize(string name) {
			thisclass.name = name;
		}
	}`)
	class := prog.Declarations[0].(*ClassDecl)
	require.Len(t, class.Members, 1)
	m := class.Members[0].(*MethodDecl)
	assert.Equal(t, "Initialize", m.Name)
	assert.Nil(t, m.ReturnType)
	require.Len(t, m.Parameters, 1)
	assert.Equal(t, "name", m.Parameters[0].Name)
}

func TestParserMethodWithReturnType(t *testing.T) {
	prog := parseSource(t, `class Animal {
		public integer GetAge() {
			return 0;
		}
	}`)
	class := prog.Declarations[0].(*ClassDecl)
	m := class.Members[0].(*MethodDecl)
	assert.Equal(t, "GetAge", m.Name)
	require.NotNil(t, m.ReturnType)
	assert.Equal(t, "integer", m.ReturnType.Name)
}

func TestParserArrayFieldType(t *testing.T) {
	prog := parseSource(t, `class Zoo {
		public integer[] ages;
	}`)
	class := prog.Declarations[0].(*ClassDecl)
	f := class.Members[0].(*FieldDecl)
	assert.True(t, f.FieldType.IsArray)
	assert.Equal(t, "integer", f.FieldType.Name)
}

func TestParserEnum(t *testing.T) {
	prog := parseSource(t, `enumerated Color { RED, GREEN, BLUE };`)
	e := prog.Declarations[0].(*EnumDecl)
	assert.Equal(t, "Color", e.Name)
	assert.Equal(t, []string{"RED", "GREEN", "BLUE"}, e.Values)
}

func TestParserMainMethod(t *testing.T) {
	prog := parseSource(t, `Main() {
		return;
	}`)
	m := prog.Declarations[0].(*MethodDecl)
	assert.Equal(t, "Main", m.Name)
	assert.Nil(t, m.ReturnType)
	assert.Empty(t, m.Parameters)
}

func TestParserExpressionPrecedence(t *testing.T) {
	prog := parseSource(t, `Main() {
		integer x = 1 + 2 * 3 ^ 2;
	}`)
	m := prog.Declarations[0].(*MethodDecl)
	decl := m.Body.Statements[0].(*VarDecl)
	top := decl.InitialValue.(*BinaryOp)
	assert.Equal(t, "+", top.Operator)

	right := top.Right.(*BinaryOp)
	assert.Equal(t, "*", right.Operator)

	pow := right.Right.(*BinaryOp)
	assert.Equal(t, "^", pow.Operator)
}

func TestParserPowerIsRightAssociative(t *testing.T) {
	prog := parseSource(t, `Main() {
		integer x = 2 ^ 3 ^ 2;
	}`)
	m := prog.Declarations[0].(*MethodDecl)
	decl := m.Body.Statements[0].(*VarDecl)
	top := decl.InitialValue.(*BinaryOp)
	assert.Equal(t, "^", top.Operator)

	_, leftIsLiteral := top.Left.(*Literal)
	assert.True(t, leftIsLiteral)

	right := top.Right.(*BinaryOp)
	assert.Equal(t, "^", right.Operator)
}

func TestParserIsAExpression(t *testing.T) {
	prog := parseSource(t, `Main() {
		boolean result = animal isa Dog;
	}`)
	m := prog.Declarations[0].(*MethodDecl)
	decl := m.Body.Statements[0].(*VarDecl)
	isa := decl.InitialValue.(*IsA)
	assert.Equal(t, "Dog", isa.ClassName)
}

func TestParserIfElseIfElse(t *testing.T) {
	prog := parseSource(t, `Main() {
		if (x > 0) {
			return;
		} elseif (x < 0) {
			return;
		} else () {
			return;
		}
	}`)
	m := prog.Declarations[0].(*MethodDecl)
	ifStmt := m.Body.Statements[0].(*IfStmt)
	require.Len(t, ifStmt.ElseIfParts, 1)
	require.NotNil(t, ifStmt.Else)
}

func TestParserLoopForAndUntil(t *testing.T) {
	prog := parseSource(t, `Main() {
		loop for (5) {
			x = x + 1;
		}
		loop until (x > 10) {
			x = x + 1;
		}
	}`)
	m := prog.Declarations[0].(*MethodDecl)
	require.IsType(t, &LoopForStmt{}, m.Body.Statements[0])
	require.IsType(t, &LoopUntilStmt{}, m.Body.Statements[1])
}

func TestParserMethodCallWithLambdaArgument(t *testing.T) {
	prog := parseSource(t, `Main() {
		integer[] doubled = numbers.map(n -> n * 2);
	}`)
	m := prog.Declarations[0].(*MethodDecl)
	decl := m.Body.Statements[0].(*VarDecl)
	call := decl.InitialValue.(*MethodCall)
	assert.Equal(t, "map", call.MethodName)
	require.Len(t, call.Arguments, 1)
	lambda := call.Arguments[0].(*Lambda)
	assert.Equal(t, []string{"n"}, lambda.Parameters)
}

func TestParserMethodCallWithMultiParamLambda(t *testing.T) {
	prog := parseSource(t, `Main() {
		integer total = numbers.reduce((acc, n) -> acc + n, 0);
	}`)
	m := prog.Declarations[0].(*MethodDecl)
	decl := m.Body.Statements[0].(*VarDecl)
	call := decl.InitialValue.(*MethodCall)
	require.Len(t, call.Arguments, 2)
	lambda := call.Arguments[0].(*Lambda)
	assert.Equal(t, []string{"acc", "n"}, lambda.Parameters)
}

func TestParserNewInstance(t *testing.T) {
	prog := parseSource(t, `Main() {
		Dog d = new Dog("Rex", 3);
	}`)
	m := prog.Declarations[0].(*MethodDecl)
	decl := m.Body.Statements[0].(*VarDecl)
	newInst := decl.InitialValue.(*NewInstance)
	assert.Equal(t, "Dog", newInst.ClassName)
	assert.Len(t, newInst.Arguments, 2)
}

func TestParserArrayLiteralAndAccess(t *testing.T) {
	prog := parseSource(t, `Main() {
		integer[] xs = [1, 2, 3];
		integer first = xs[0];
	}`)
	m := prog.Declarations[0].(*MethodDecl)
	lit := m.Body.Statements[0].(*VarDecl).InitialValue.(*ArrayLiteral)
	assert.Len(t, lit.Elements, 3)

	access := m.Body.Statements[1].(*VarDecl).InitialValue.(*ArrayAccess)
	require.NotNil(t, access.Index)
}

func TestParserLengthPropertyWithoutCall(t *testing.T) {
	prog := parseSource(t, `Main() {
		integer n = name.length;
	}`)
	m := prog.Declarations[0].(*MethodDecl)
	access := m.Body.Statements[0].(*VarDecl).InitialValue.(*MemberAccess)
	assert.Equal(t, "length", access.MemberName)
}

func TestParserMissingSemicolonProducesHint(t *testing.T) {
	_, err := NewParser(mustTokenize(t, `Main() { integer x = 5 }`)).Parse()
	require.Error(t, err)
	var parseErr ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "semicolon")
}

func mustTokenize(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := NewLexer(source).Tokenize()
	require.NoError(t, err)
	return tokens
}
