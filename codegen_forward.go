package foobar

import "fmt"

// generateForwardDeclarations emits every prototype the generated body
// will need before its own definition appears: the array-struct
// typedefs (already brought in via the embedded runtime, so only
// user-defined class typedefs are declared here), constructor
// prototypes, method prototypes, inherited-wrapper prototypes, and
// standalone function prototypes. The runtime's own forward
// declarations are part of runtime.c and are not repeated here.
func (g *Generator) generateForwardDeclarations() error {
	g.emit("int main(void);")
	g.emit("static bool Main_internal(void);")
	g.emitBlank()

	for _, decl := range g.program.Declarations {
		class, ok := decl.(*ClassDecl)
		if !ok {
			continue
		}
		g.emit(fmt.Sprintf("typedef struct %s %s;", class.Name, class.Name))
	}
	g.emitBlank()

	for _, decl := range g.program.Declarations {
		class, ok := decl.(*ClassDecl)
		if !ok {
			continue
		}
		if err := g.generateClassForwardDecls(class); err != nil {
			return err
		}
	}

	for _, decl := range g.program.Declarations {
		m, ok := decl.(*MethodDecl)
		if !ok || m.Name == "Main" {
			continue
		}
		returnType := Type{Name: "void"}
		if m.ReturnType != nil {
			returnType = *m.ReturnType
		}
		var params []string
		for _, p := range m.Parameters {
			params = append(params, g.cType(p.ParamType)+" "+p.Name)
		}
		g.emit(fmt.Sprintf("static %s %s(%s);", g.cType(returnType), m.Name, joinArgs(params)))
	}
	g.emitBlank()

	return nil
}

func (g *Generator) generateClassForwardDecls(class *ClassDecl) error {
	inits := g.classInitializers(class)
	if len(inits) == 0 {
		g.emit(fmt.Sprintf("static %s* %s_new_void(void);", class.Name, class.Name))
	}
	for _, init := range inits {
		mangled := mangleConstructorName(class.Name, paramTypes(init.Parameters))
		var params []string
		for _, p := range init.Parameters {
			params = append(params, g.cType(p.ParamType)+" "+p.Name)
		}
		g.emit(fmt.Sprintf("static %s* %s(%s);", class.Name, mangled, joinArgs(params)))
	}

	for _, method := range g.classMethods(class) {
		returnType := Type{Name: "void"}
		if method.ReturnType != nil {
			returnType = *method.ReturnType
		}
		mangled := mangleMethodName(class.Name, method.Name, paramTypes(method.Parameters))
		params := []string{class.Name + "* thisclass"}
		for _, p := range method.Parameters {
			params = append(params, g.cType(p.ParamType)+" "+p.Name)
		}
		g.emit(fmt.Sprintf("static %s %s(%s);", g.cType(returnType), mangled, joinArgs(params)))
	}

	own := make(map[string]bool)
	for _, m := range g.classMethods(class) {
		own[m.Name] = true
	}
	for _, parentName := range class.ParentClasses {
		parentClass, ok := g.findClass(parentName)
		if !ok {
			continue
		}
		for _, pm := range g.classMethods(parentClass) {
			if own[pm.Name] {
				continue
			}
			returnType := Type{Name: "void"}
			if pm.ReturnType != nil {
				returnType = *pm.ReturnType
			}
			mangled := mangleMethodName(class.Name, pm.Name, paramTypes(pm.Parameters))
			params := []string{class.Name + "* thisclass"}
			for _, p := range pm.Parameters {
				params = append(params, g.cType(p.ParamType)+" "+p.Name)
			}
			g.emit(fmt.Sprintf("static %s %s(%s);", g.cType(returnType), mangled, joinArgs(params)))
		}
	}

	g.emitBlank()
	return nil
}
