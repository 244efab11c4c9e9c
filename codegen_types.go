package foobar

var scalarCTypes = map[string]string{
	"boolean":     "bool",
	"integer":     "int",
	"longinteger": "long long",
	"float":       "float",
	"longfloat":   "double",
	"string":      "char*",
	"character":   "char",
	"void":        "void",
}

var arrayStructNames = map[string]string{
	"boolean":     "BoolArray",
	"integer":     "IntArray",
	"longinteger": "LongIntArray",
	"float":       "FloatArray",
	"longfloat":   "LongFloatArray",
	"string":      "StringArray",
	"character":   "CharArray",
}

// arrayStructName returns the C array-struct type name for elements of
// elemType, defaulting to ObjectArray for user class element types.
func arrayStructName(elemType string) string {
	if name, ok := arrayStructNames[elemType]; ok {
		return name
	}
	return "ObjectArray"
}

// cType maps a FOOBAR type to its C spelling. User class names become
// pointers; array types become a pointer to the matching array struct.
func (g *Generator) cType(t Type) string {
	if t.IsArray {
		return arrayStructName(t.Name) + "*"
	}
	if ct, ok := scalarCTypes[t.Name]; ok {
		return ct
	}
	// user-defined class or enum
	if _, ok := g.enums[t.Name]; ok {
		return "int"
	}
	return t.Name + "*"
}

// cElementType is like cType but for an array's element type, used
// when declaring array-literal initializer lists and lambda bodies.
// Object element types default to void* since the element struct
// fields are untyped pointers.
func cElementType(elemTypeName string) string {
	if ct, ok := scalarCTypes[elemTypeName]; ok {
		return ct
	}
	return "void*"
}

// inferExpressionType determines an expression's FOOBAR-level type so
// that callers (array method dispatch, operator lowering, array
// literal defaulting) can pick the right C behavior without a separate
// full type-checking pass.
func (g *Generator) inferExpressionType(expr Expr) Type {
	switch e := expr.(type) {
	case *Literal:
		switch e.Value.(type) {
		case bool:
			return Type{Name: "boolean"}
		case int:
			return Type{Name: "integer"}
		case float64:
			return Type{Name: "float"}
		case string:
			return Type{Name: "string"}
		}
		return Type{Name: "integer"}

	case *Identifier:
		if t, ok := g.getSymbolType(e.Name); ok {
			return t
		}
		return Type{Name: "integer"}

	case *NewInstance:
		return Type{Name: e.ClassName}

	case *ThisClass:
		return Type{Name: g.currentClass}

	case *Parent:
		return Type{Name: g.currentClass}

	case *MethodCall:
		return g.inferMethodCallType(e)

	case *BinaryOp:
		leftType := g.inferExpressionType(e.Left)
		rightType := g.inferExpressionType(e.Right)
		if leftType.IsArray {
			return leftType
		}
		if rightType.IsArray {
			return rightType
		}
		if leftType.Name == "string" || rightType.Name == "string" {
			return Type{Name: "string"}
		}
		if leftType.Name == "float" || rightType.Name == "float" ||
			leftType.Name == "longfloat" || rightType.Name == "longfloat" {
			return Type{Name: "float"}
		}
		return Type{Name: "integer"}

	case *ArrayLiteral:
		if len(e.Elements) == 0 {
			return Type{Name: "integer", IsArray: true}
		}
		elemType := g.inferExpressionType(e.Elements[0])
		return Type{Name: elemType.Name, IsArray: true}

	case *ArrayAccess:
		arrType := g.inferExpressionType(e.Array)
		return Type{Name: arrType.Name}

	case *MemberAccess:
		objType := g.inferExpressionType(e.Object)
		if objType.IsArray && e.MemberName == "length" {
			return Type{Name: "integer"}
		}
		if class, ok := g.findClass(objType.Name); ok {
			for _, f := range g.classFields(class) {
				if f.Name == e.MemberName {
					return f.FieldType
				}
			}
		}
		return Type{Name: "integer"}

	case *Assignment:
		return g.inferExpressionType(e.Target)

	case *UnaryOp:
		return g.inferExpressionType(e.Operand)

	case *IsA:
		return Type{Name: "boolean"}
	}

	return Type{Name: "integer"}
}

// arrayTransformMethods preserves the array's element type across a
// call; arrayReducingMethods strip the array-ness of the receiver.
var arrayTransformMethods = map[string]bool{
	"map": true, "filter": true, "sort": true, "unique": true,
}
var arrayReducingMethods = map[string]bool{
	"reduce": true, "find": true,
}

func (g *Generator) inferMethodCallType(call *MethodCall) Type {
	if call.Object == nil {
		if rt, ok := g.methodSignatures[g.currentClass+"."+call.MethodName]; ok {
			return rt
		}
		return Type{Name: "integer"}
	}

	objType := g.inferExpressionType(call.Object)

	if objType.IsArray {
		if arrayTransformMethods[call.MethodName] {
			return objType
		}
		if arrayReducingMethods[call.MethodName] {
			return Type{Name: objType.Name}
		}
		if call.MethodName == "length" {
			return Type{Name: "integer"}
		}
	}

	if objType.Name == "string" {
		switch call.MethodName {
		case "length", "toInteger":
			return Type{Name: "integer"}
		case "toFloat":
			return Type{Name: "float"}
		default:
			return Type{Name: "string"}
		}
	}

	if objType.Name == "integer" {
		switch call.MethodName {
		case "toString":
			return Type{Name: "string"}
		case "toFloat":
			return Type{Name: "float"}
		}
	}

	if objType.Name == "float" {
		switch call.MethodName {
		case "toString":
			return Type{Name: "string"}
		case "toInteger":
			return Type{Name: "integer"}
		}
	}

	if rt, ok := g.methodSignatures[objType.Name+"."+call.MethodName]; ok {
		return rt
	}

	return Type{Name: "integer"}
}
