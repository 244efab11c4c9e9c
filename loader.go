package foobar

import (
	"os"
	"path/filepath"
	"strings"
)

// resolveImportPath joins an import path against the directory of the
// file that referenced it, auto-appending the standard source suffix
// when the import path omits it.
func resolveImportPath(currentFile, importPath string) string {
	dir := filepath.Dir(absPath(currentFile))
	resolved := filepath.Clean(filepath.Join(dir, importPath))
	if !strings.HasSuffix(resolved, ".foob") {
		resolved += ".foob"
	}
	return resolved
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// parseFile reads and fully parses a single source file.
func parseFile(path string) (*Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errMissingFile(path)
	}
	tokens, err := NewLexer(string(src)).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// collectImports walks the import graph starting at baseFile, in the
// LIFO work-list order of a stack: the most recently discovered import
// is processed before any sibling discovered earlier. Returns every
// file's parsed Program keyed by its absolute path, plus the order
// those files were first processed in, since merging and cycle
// reporting both need a stable (non-map-iteration) ordering to produce
// reproducible C output across runs of the same input.
func collectImports(baseFile string) (map[string]*Program, []string, error) {
	base := absPath(baseFile)
	asts := make(map[string]*Program)
	var order []string
	processed := make(map[string]bool)
	toProcess := []string{base}

	for len(toProcess) > 0 {
		current := toProcess[len(toProcess)-1]
		toProcess = toProcess[:len(toProcess)-1]

		if processed[current] {
			continue
		}
		processed[current] = true

		prog, err := parseFile(current)
		if err != nil {
			return nil, nil, err
		}
		asts[current] = prog
		order = append(order, current)

		for _, imp := range prog.Imports {
			resolved := resolveImportPath(current, imp.Filepath)
			if _, err := os.Stat(resolved); err != nil {
				return nil, nil, errMissingImport(imp.Filepath, current, resolved, imp.Location)
			}
			if !processed[resolved] {
				toProcess = append(toProcess, resolved)
			}
		}
	}

	return asts, order, nil
}

// checkCircularImports runs a depth-first search over the import graph
// derived from asts, reporting the exact cycle path if one exists. order
// fixes the iteration order of the outer scan so that, should more than
// one independent cycle exist, the reported one is deterministic.
func checkCircularImports(asts map[string]*Program, order []string) error {
	graph := make(map[string][]string)
	for file, prog := range asts {
		for _, imp := range prog.Imports {
			graph[file] = append(graph[file], resolveImportPath(file, imp.Filepath))
		}
	}

	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var hasCycle func(node string, path []string) error
	hasCycle = func(node string, path []string) error {
		visited[node] = true
		recStack[node] = true
		path = append(path, node)

		for _, neighbor := range graph[node] {
			if recStack[neighbor] {
				cycleStart := 0
				for i, p := range path {
					if p == neighbor {
						cycleStart = i
						break
					}
				}
				cycle := append(append([]string{}, path[cycleStart:]...), neighbor)
				return errCircularImport(cycle)
			}
			if !visited[neighbor] {
				if err := hasCycle(neighbor, path); err != nil {
					return err
				}
			}
		}

		recStack[node] = false
		return nil
	}

	for _, node := range order {
		if !visited[node] {
			if err := hasCycle(node, nil); err != nil {
				return err
			}
		}
	}

	return nil
}

type declWithFile struct {
	decl Decl
	file string
}

func checkDuplicateNames(all []declWithFile) error {
	classFiles := make(map[string]string)
	enumFiles := make(map[string]string)
	funcFiles := make(map[string]string)

	for _, dwf := range all {
		switch d := dwf.decl.(type) {
		case *ClassDecl:
			if first, ok := classFiles[d.Name]; ok {
				return errDuplicateClass(d.Name, first, dwf.file, d.Pos())
			}
			classFiles[d.Name] = dwf.file
		case *EnumDecl:
			if first, ok := enumFiles[d.Name]; ok {
				return errDuplicateEnum(d.Name, first, dwf.file, d.Pos())
			}
			enumFiles[d.Name] = dwf.file
		case *MethodDecl:
			if d.Name == "Main" {
				continue
			}
			if first, ok := funcFiles[d.Name]; ok {
				return errDuplicateFunction(d.Name, first, dwf.file, d.Pos())
			}
			funcFiles[d.Name] = dwf.file
		}
	}

	return nil
}

// combinePrograms merges every loaded file's declarations into one
// Program, with the entry file's declarations first, followed by every
// other file's declarations in their discovery order (skipping their
// own Main methods, since only the entry file's Main is meaningful).
// Fails if no Main method survives the merge. order fixes the merge
// order across runs of identical input so the emitted C is reproducible.
func combinePrograms(asts map[string]*Program, order []string, mainFile string) (*Program, error) {
	mainFile = absPath(mainFile)

	combined := &Program{}
	var all []declWithFile
	mainFound := false

	if prog, ok := asts[mainFile]; ok {
		for _, decl := range prog.Declarations {
			combined.Declarations = append(combined.Declarations, decl)
			all = append(all, declWithFile{decl, mainFile})
			if m, ok := decl.(*MethodDecl); ok && m.Name == "Main" {
				mainFound = true
			}
		}
	}

	for _, file := range order {
		if file == mainFile {
			continue
		}
		prog, ok := asts[file]
		if !ok {
			continue
		}
		for _, decl := range prog.Declarations {
			if m, ok := decl.(*MethodDecl); ok && m.Name == "Main" {
				continue
			}
			combined.Declarations = append(combined.Declarations, decl)
			all = append(all, declWithFile{decl, file})
		}
	}

	if err := checkDuplicateNames(all); err != nil {
		return nil, err
	}
	if !mainFound {
		return nil, errNoMain()
	}

	return combined, nil
}

// LoadProgram runs the full load pipeline for a single entry file:
// import collection, cycle detection, and declaration merging.
func LoadProgram(entryFile string) (*Program, error) {
	asts, order, err := collectImports(entryFile)
	if err != nil {
		return nil, err
	}
	if err := checkCircularImports(asts, order); err != nil {
		return nil, err
	}
	return combinePrograms(asts, order, entryFile)
}
