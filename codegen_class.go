package foobar

import "fmt"

// generateClass emits a class's struct layout, its constructors, its
// own methods, and wrapper functions for any parent method it inherits
// without overriding (so a call site that only knows the static type
// can always resolve a mangled name on this class directly).
func (g *Generator) generateClass(class *ClassDecl) error {
	g.emit(fmt.Sprintf("// class %s", class.Name))
	g.generateClassStruct(class)
	g.emitBlank()

	inits := g.classInitializers(class)
	if len(inits) == 0 {
		if err := g.generateDefaultConstructor(class); err != nil {
			return err
		}
	}
	for _, init := range inits {
		if err := g.generateConstructor(class, init); err != nil {
			return err
		}
	}

	for _, method := range g.classMethods(class) {
		if err := g.generateMethod(class, method); err != nil {
			return err
		}
	}

	if err := g.generateInheritedWrappers(class); err != nil {
		return err
	}

	return nil
}

func (g *Generator) generateClassStruct(class *ClassDecl) {
	g.emit(fmt.Sprintf("typedef struct %s {", class.Name))
	g.indent()

	for _, parent := range class.ParentClasses {
		if parentClass, ok := g.findClass(parent); ok {
			for _, f := range g.classFields(parentClass) {
				g.emit(fmt.Sprintf("%s %s;", g.cType(f.FieldType), f.Name))
			}
		}
	}
	for _, f := range g.classFields(class) {
		g.emit(fmt.Sprintf("%s %s;", g.cType(f.FieldType), f.Name))
	}

	g.emit("const char* _class_name;")
	for i := 0; i < 4 && i < len(class.ParentClasses); i++ {
		g.emit(fmt.Sprintf("const char* _parent_class_%d;", i))
	}

	g.dedent()
	g.emit(fmt.Sprintf("} %s;", class.Name))
}

func (g *Generator) setFieldInitializers(class *ClassDecl, instanceVar string) {
	for _, f := range g.classFields(class) {
		if f.InitialValue == nil {
			continue
		}
		value, err := g.generateExpression(f.InitialValue)
		if err != nil {
			continue
		}
		g.emit(fmt.Sprintf("%s->%s = %s;", instanceVar, f.Name, value))
	}
}

func (g *Generator) emitClassTagging(class *ClassDecl, instanceVar string) {
	g.emit(fmt.Sprintf("%s->_class_name = %q;", instanceVar, class.Name))
	for i := 0; i < 4 && i < len(class.ParentClasses); i++ {
		g.emit(fmt.Sprintf("%s->_parent_class_%d = %q;", instanceVar, i, class.ParentClasses[i]))
	}
}

func (g *Generator) generateDefaultConstructor(class *ClassDecl) error {
	name := class.Name + "_new_void"
	g.emit(fmt.Sprintf("static %s* %s(void) {", class.Name, name))
	g.indent()
	g.emit(fmt.Sprintf("%s* thisclass = GC_MALLOC(sizeof(%s));", class.Name, class.Name))
	g.currentClass = class.Name
	g.setFieldInitializers(class, "thisclass")
	g.emitClassTagging(class, "thisclass")
	g.emit("return thisclass;")
	g.dedent()
	g.emit("}")
	g.emitBlank()
	return nil
}

// generateConstructor builds a class instance in a local variable
// literally named `thisclass`, so that a reference to `thisclass`
// inside an Initialize body (written exactly like a reference inside
// any other method) resolves to the instance under construction
// without any special-casing in expression generation.
func (g *Generator) generateConstructor(class *ClassDecl, init *MethodDecl) error {
	name := mangleConstructorName(class.Name, paramTypes(init.Parameters))
	var paramDecls []string
	for _, p := range init.Parameters {
		paramDecls = append(paramDecls, g.cType(p.ParamType)+" "+p.Name)
	}
	paramList := joinArgs(paramDecls)

	g.emit(fmt.Sprintf("static %s* %s(%s) {", class.Name, name, paramList))
	g.indent()
	g.emit(fmt.Sprintf("%s* thisclass = GC_MALLOC(sizeof(%s));", class.Name, class.Name))

	g.currentClass = class.Name
	g.pushScope()
	for _, p := range init.Parameters {
		g.addSymbol(p.Name, p.ParamType)
	}
	g.addSymbol("thisclass", Type{Name: class.Name})

	g.setFieldInitializers(class, "thisclass")
	g.emitClassTagging(class, "thisclass")

	if err := g.collectLambdas(init.Body); err != nil {
		g.popScope()
		return err
	}
	for _, stmt := range init.Body.Statements {
		if err := g.generateStatement(stmt); err != nil {
			g.popScope()
			return err
		}
	}

	g.popScope()
	g.emit("return thisclass;")
	g.dedent()
	g.emit("}")
	g.emitBlank()
	return nil
}

func (g *Generator) generateMethod(class *ClassDecl, method *MethodDecl) error {
	mangled := mangleMethodName(class.Name, method.Name, paramTypes(method.Parameters))
	returnType := Type{Name: "void"}
	if method.ReturnType != nil {
		returnType = *method.ReturnType
	}

	var paramDecls []string
	paramDecls = append(paramDecls, class.Name+"* thisclass")
	for _, p := range method.Parameters {
		paramDecls = append(paramDecls, g.cType(p.ParamType)+" "+p.Name)
	}

	g.emit(fmt.Sprintf("static %s %s(%s) {", g.cType(returnType), mangled, joinArgs(paramDecls)))
	g.indent()

	g.currentClass = class.Name
	g.pushScope()
	g.addSymbol("thisclass", Type{Name: class.Name})
	for _, p := range method.Parameters {
		g.addSymbol(p.Name, p.ParamType)
	}

	if err := g.collectLambdas(method.Body); err != nil {
		g.popScope()
		return err
	}
	for _, stmt := range method.Body.Statements {
		if err := g.generateStatement(stmt); err != nil {
			g.popScope()
			return err
		}
	}

	g.popScope()
	g.dedent()
	g.emit("}")
	g.emitBlank()
	return nil
}

// generateInheritedWrappers emits a thin forwarding function for every
// parent method this class does not itself override, so that a call
// site mangled against this class's name always resolves.
func (g *Generator) generateInheritedWrappers(class *ClassDecl) error {
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
			mangledOwn := mangleMethodName(class.Name, pm.Name, paramTypes(pm.Parameters))
			mangledParent := mangleMethodName(parentName, pm.Name, paramTypes(pm.Parameters))

			var paramDecls []string
			paramDecls = append(paramDecls, class.Name+"* thisclass")
			var forwardArgs []string
			forwardArgs = append(forwardArgs, fmt.Sprintf("(%s*)thisclass", parentName))
			for _, p := range pm.Parameters {
				paramDecls = append(paramDecls, g.cType(p.ParamType)+" "+p.Name)
				forwardArgs = append(forwardArgs, p.Name)
			}

			g.emit(fmt.Sprintf("static %s %s(%s) {", g.cType(returnType), mangledOwn, joinArgs(paramDecls)))
			g.indent()
			call := fmt.Sprintf("%s(%s)", mangledParent, joinArgs(forwardArgs))
			if returnType.Name == "void" {
				g.emit(call + ";")
			} else {
				g.emit("return " + call + ";")
			}
			g.dedent()
			g.emit("}")
			g.emitBlank()
		}
	}
	return nil
}

func (g *Generator) generateStandaloneMethod(method *MethodDecl) error {
	returnType := Type{Name: "void"}
	if method.ReturnType != nil {
		returnType = *method.ReturnType
	}

	var paramDecls []string
	for _, p := range method.Parameters {
		paramDecls = append(paramDecls, g.cType(p.ParamType)+" "+p.Name)
	}

	mangled := method.Name
	g.emit(fmt.Sprintf("static %s %s(%s) {", g.cType(returnType), mangled, joinArgs(paramDecls)))
	g.indent()

	g.currentClass = ""
	g.pushScope()
	for _, p := range method.Parameters {
		g.addSymbol(p.Name, p.ParamType)
	}

	if err := g.collectLambdas(method.Body); err != nil {
		g.popScope()
		return err
	}
	for _, stmt := range method.Body.Statements {
		if err := g.generateStatement(stmt); err != nil {
			g.popScope()
			return err
		}
	}

	g.popScope()
	g.dedent()
	g.emit("}")
	g.emitBlank()
	return nil
}

// generateMain lowers the Main method into a bool-returning worker
// function plus a thin `main` that translates its result into a process
// exit code: true exits 0, false exits 1, matching how every other
// FOOBAR boolean reads in C.
func (g *Generator) generateMain() error {
	for _, decl := range g.program.Declarations {
		m, ok := decl.(*MethodDecl)
		if !ok || m.Name != "Main" {
			continue
		}

		g.emit("static bool Main_internal(void) {")
		g.indent()
		g.currentClass = ""
		g.pushScope()

		if err := g.collectLambdas(m.Body); err != nil {
			g.popScope()
			return err
		}
		for _, stmt := range m.Body.Statements {
			if err := g.generateStatement(stmt); err != nil {
				g.popScope()
				return err
			}
		}

		g.popScope()
		g.dedent()
		g.emit("}")
		g.emitBlank()

		g.emit("int main(void) {")
		g.indent()
		g.emit("GC_INIT();")
		g.emit("bool result = Main_internal();")
		g.emit("return result ? 0 : 1;")
		g.dedent()
		g.emit("}")
		return nil
	}
	return fmtErr("no Main method found")
}
