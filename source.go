// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// source provides the sourceIndex-type whose task it is to recover the
// literal source text of asserted expressions from a test program's
// source files.

package gmbtest

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"
	"sync"
)

var sources = sourceIndex{}

// sourceIndex parses source files on first request and caches the
// result, i.e. also the information that a file can't be read or
// parsed.  Independent harnesses may be used concurrently in go tests
// hence the cache is guarded by a mutex.
type sourceIndex struct {
	mutex sync.Mutex
	files map[string]*sourceFile
}

// sourceFile is a parsed source file along with its content.
type sourceFile struct {
	fset *token.FileSet
	ast  *ast.File
	src  []byte
}

// file returns the parsed source file with given name or nil if it
// can't be read or parsed.
func (i *sourceIndex) file(name string) *sourceFile {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	if sf, ok := i.files[name]; ok {
		return sf
	}
	if i.files == nil {
		i.files = map[string]*sourceFile{}
	}
	i.files[name] = parseSource(name)
	return i.files[name]
}

func parseSource(name string) *sourceFile {
	src, err := os.ReadFile(name)
	if err != nil {
		return nil
	}
	fset := token.NewFileSet()
	af, err := parser.ParseFile(
		fset, name, src, parser.SkipObjectResolution)
	if err != nil {
		return nil
	}
	return &sourceFile{fset: fset, ast: af, src: src}
}

// argument returns the source text of the idx-th argument of the call
// of function or method fn at given position; the zero string if there
// is no such call.
func (i *sourceIndex) argument(at position, fn string, idx int) string {
	sf, arg := i.arg(at, fn, idx)
	if arg == nil {
		return ""
	}
	return sf.text(arg)
}

// body is like argument but if the argument is a function literal with
// a single statement the source text of that statement is returned
// respectively the text of the returned expression if the statement
// returns exactly one value.
func (i *sourceIndex) body(at position, fn string, idx int) string {
	sf, arg := i.arg(at, fn, idx)
	if arg == nil {
		return ""
	}
	lit, ok := arg.(*ast.FuncLit)
	if !ok || len(lit.Body.List) != 1 {
		return sf.text(arg)
	}
	switch stmt := lit.Body.List[0].(type) {
	case *ast.ReturnStmt:
		if len(stmt.Results) == 1 {
			return sf.text(stmt.Results[0])
		}
	case *ast.ExprStmt:
		return sf.text(stmt.X)
	}
	return sf.text(lit.Body.List[0])
}

func (i *sourceIndex) arg(
	at position, fn string, idx int,
) (*sourceFile, ast.Expr) {

	sf := i.file(at.file)
	if sf == nil {
		return nil, nil
	}
	call := sf.call(at.line, fn)
	if call == nil || len(call.Args) <= idx {
		return nil, nil
	}
	return sf, call.Args[idx]
}

// call returns the innermost call of a function or method named fn
// which spans given line.  If the line holds several such calls which
// are not nested, e.g. "t.Assert(a); t.Assert(b)", the call is
// ambiguous and nil is returned.
func (sf *sourceFile) call(line int, fn string) *ast.CallExpr {
	candidates := []*ast.CallExpr{}
	ast.Inspect(sf.ast, func(n ast.Node) bool {
		if n == nil {
			return false
		}
		if sf.fset.Position(n.Pos()).Line > line ||
			sf.fset.Position(n.End()).Line < line {
			return false
		}
		if call, ok := n.(*ast.CallExpr); ok && calledName(call.Fun) == fn {
			candidates = append(candidates, call)
		}
		return true
	})
	var found *ast.CallExpr
	for _, c := range candidates {
		if found == nil || c.End()-c.Pos() < found.End()-found.Pos() {
			found = c
		}
	}
	for _, c := range candidates {
		if c.Pos() > found.Pos() || c.End() < found.End() {
			return nil
		}
	}
	return found
}

// calledName returns the name of the function or method a call
// expression's function refers to, e.g. "Equals" for
// gmbtest.This(t, f).Equals(5) or "This" for This[int](t, f).
func calledName(fun ast.Expr) string {
	switch fun := fun.(type) {
	case *ast.Ident:
		return fun.Name
	case *ast.SelectorExpr:
		return fun.Sel.Name
	case *ast.IndexExpr:
		return calledName(fun.X)
	case *ast.IndexListExpr:
		return calledName(fun.X)
	case *ast.ParenExpr:
		return calledName(fun.X)
	}
	return ""
}

// text returns given node's source text with white space sequences
// collapsed to a single space, i.e. a diagnostic stays on one line.
func (sf *sourceFile) text(n ast.Node) string {
	start := sf.fset.Position(n.Pos()).Offset
	end := sf.fset.Position(n.End()).Offset
	if start < 0 || end > len(sf.src) || start > end {
		return ""
	}
	return strings.Join(strings.Fields(string(sf.src[start:end])), " ")
}
