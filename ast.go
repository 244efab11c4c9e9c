package foobar

// Node is implemented by every AST node. Unlike a full grammar AST
// (which typically also carries pretty-printing and structural-equality
// obligations), FOOBAR's code generator only ever needs a node's source
// position for diagnostics, so that's the only shared obligation here.
type Node interface {
	Pos() Location
}

// Type is a reference to either a primitive or a user-defined
// class/enum name, optionally denoting an array of that element type.
type Type struct {
	Name    string
	IsArray bool
}

func (t Type) String() string {
	if t.IsArray {
		return t.Name + "[]"
	}
	return t.Name
}

// Program is the parse result of a single file, before import merging.
type Program struct {
	Imports      []*ImportDecl
	Declarations []Decl
}

// Decl is any of ClassDecl, EnumDecl, MethodDecl at the top level.
type Decl interface {
	Node
	declNode()
}

type ImportDecl struct {
	Filepath string
	Location Location
}

func (d *ImportDecl) Pos() Location { return d.Location }

type ClassDecl struct {
	Name          string
	ParentClasses []string
	Members       []Member
	Location      Location
}

func (d *ClassDecl) Pos() Location { return d.Location }
func (d *ClassDecl) declNode()     {}

// Member is either a FieldDecl or a MethodDecl inside a ClassDecl.
type Member interface {
	Node
	memberNode()
}

type FieldDecl struct {
	Name         string
	FieldType    Type
	IsPublic     bool
	InitialValue Expr
	Location     Location
}

func (d *FieldDecl) Pos() Location { return d.Location }
func (d *FieldDecl) memberNode()   {}

type Parameter struct {
	Name      string
	ParamType Type
}

type MethodDecl struct {
	Name       string
	ReturnType *Type // nil for Main and Initialize
	Parameters []Parameter
	Body       *Block
	IsPublic   bool
	Location   Location
}

func (d *MethodDecl) Pos() Location { return d.Location }
func (d *MethodDecl) declNode()     {}
func (d *MethodDecl) memberNode()   {}

type EnumDecl struct {
	Name     string
	Values   []string
	Location Location
}

func (d *EnumDecl) Pos() Location { return d.Location }
func (d *EnumDecl) declNode()     {}

// Statements

type Stmt interface {
	Node
	stmtNode()
}

type Block struct {
	Statements []Stmt
	Location   Location
}

func (b *Block) Pos() Location { return b.Location }

type VarDecl struct {
	Name         string
	VarType      Type
	InitialValue Expr
	Location     Location
}

func (s *VarDecl) Pos() Location { return s.Location }
func (s *VarDecl) stmtNode()     {}

type ExpressionStmt struct {
	Expression Expr
	Location   Location
}

func (s *ExpressionStmt) Pos() Location { return s.Location }
func (s *ExpressionStmt) stmtNode()     {}

type ReturnStmt struct {
	Value    Expr // nil for bare `return;`
	Location Location
}

func (s *ReturnStmt) Pos() Location { return s.Location }
func (s *ReturnStmt) stmtNode()     {}

type CondBlock struct {
	Condition Expr
	Block     *Block
}

type IfStmt struct {
	Condition    Expr
	Then         *Block
	ElseIfParts  []CondBlock
	Else         *Block // nil when absent
	Location     Location
}

func (s *IfStmt) Pos() Location { return s.Location }
func (s *IfStmt) stmtNode()     {}

type LoopForStmt struct {
	Count    Expr
	Body     *Block
	Location Location
}

func (s *LoopForStmt) Pos() Location { return s.Location }
func (s *LoopForStmt) stmtNode()     {}

type LoopUntilStmt struct {
	Condition Expr
	Body      *Block
	Location  Location
}

func (s *LoopUntilStmt) Pos() Location { return s.Location }
func (s *LoopUntilStmt) stmtNode()     {}

// Expressions

type Expr interface {
	Node
	exprNode()
}

type BinaryOp struct {
	Left     Expr
	Operator string
	Right    Expr
	Location Location
}

func (e *BinaryOp) Pos() Location { return e.Location }
func (e *BinaryOp) exprNode()     {}

type UnaryOp struct {
	Operator string
	Operand  Expr
	IsPrefix bool
	Location Location
}

func (e *UnaryOp) Pos() Location { return e.Location }
func (e *UnaryOp) exprNode()     {}

// Literal wraps one of bool, int, float64 or string.
type Literal struct {
	Value    any
	Location Location
}

func (e *Literal) Pos() Location { return e.Location }
func (e *Literal) exprNode()     {}

type Identifier struct {
	Name     string
	Location Location
}

func (e *Identifier) Pos() Location { return e.Location }
func (e *Identifier) exprNode()     {}

type ArrayLiteral struct {
	Elements []Expr
	Location Location
}

func (e *ArrayLiteral) Pos() Location { return e.Location }
func (e *ArrayLiteral) exprNode()     {}

type ArrayAccess struct {
	Array    Expr
	Index    Expr
	Location Location
}

func (e *ArrayAccess) Pos() Location { return e.Location }
func (e *ArrayAccess) exprNode()     {}

// ArraySlice's Kind is one of ".,", ",," or "..", matching the lexer's
// slice operator spellings.
type ArraySlice struct {
	Array    Expr
	Start    Expr
	End      Expr
	Kind     string
	Location Location
}

func (e *ArraySlice) Pos() Location { return e.Location }
func (e *ArraySlice) exprNode()     {}

type MethodCall struct {
	Object     Expr // nil for a standalone function call
	MethodName string
	Arguments  []Expr
	Location   Location

	// generatedLambdaNames holds the hoisted C function name for every
	// argument that was a Lambda, populated during code generation.
	generatedLambdaNames map[int]string
}

func (e *MethodCall) Pos() Location { return e.Location }
func (e *MethodCall) exprNode()     {}

type MemberAccess struct {
	Object     Expr
	MemberName string
	Location   Location
}

func (e *MemberAccess) Pos() Location { return e.Location }
func (e *MemberAccess) exprNode()     {}

type Lambda struct {
	Parameters []string
	Body       Expr
	Location   Location

	// generatedName is set once this lambda has been hoisted to a
	// top-level C function during code generation.
	generatedName string
}

func (e *Lambda) Pos() Location { return e.Location }
func (e *Lambda) exprNode()     {}

type Assignment struct {
	Target   Expr
	Value    Expr
	Location Location
}

func (e *Assignment) Pos() Location { return e.Location }
func (e *Assignment) exprNode()     {}

type NewInstance struct {
	ClassName string
	Arguments []Expr
	Location  Location
}

func (e *NewInstance) Pos() Location { return e.Location }
func (e *NewInstance) exprNode()     {}

type ThisClass struct {
	Location Location
}

func (e *ThisClass) Pos() Location { return e.Location }
func (e *ThisClass) exprNode()     {}

type Parent struct {
	Location Location
}

func (e *Parent) Pos() Location { return e.Location }
func (e *Parent) exprNode()     {}

type IsA struct {
	Object    Expr
	ClassName string
	Location  Location
}

func (e *IsA) Pos() Location { return e.Location }
func (e *IsA) exprNode()     {}
