// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// indexer provides the suiteTestsIndexer-type whose only task it is to
// index the methods of a source file by their appearance.

package gmbtest

import (
	"go/ast"
	"sync"
)

var indexer = suiteTestsIndexer{}

// suiteTestsIndexer provides ensureIndexingOf(fileName) which parses a
// file's methods to index them in order of their appearance.  While
// get(fileName, typeName, methodName) retrieves the mapping created by
// ensureIndexingOf.  These operations are concurrency save.
type suiteTestsIndexer struct {
	mutex    sync.Mutex
	_Indexer map[string]map[string]map[string]int
}

// get returns the index of given method of given type which is
// defined in given file; -1 if the method wasn't indexed.
func (i *suiteTestsIndexer) get(file, typ, method string) int {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	idx, ok := i._Indexer[file][typ][method]
	if !ok {
		return -1
	}
	return idx
}

// ensureIndexingOf indexes the methods of given file by their
// appearance unless it was indexed before.  A file which can't be read
// or parsed has no indices.
func (i *suiteTestsIndexer) ensureIndexingOf(file string) {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	if _, ok := i._Indexer[file]; ok {
		return
	}
	if i._Indexer == nil {
		//             file-name  type-name method-name index
		i._Indexer = map[string]map[string]map[string]int{}
	}
	i._Indexer[file] = map[string]map[string]int{}
	sf := sources.file(file)
	if sf == nil {
		return
	}
	i._ParseMethods(sf.ast, file)
}

func (i *suiteTestsIndexer) _ParseMethods(f *ast.File, file string) {
	for _, decl := range f.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || len(fd.Recv.List) != 1 {
			continue
		}
		typ, ok := i._IsIdent(fd.Recv.List[0].Type)
		if !ok {
			continue
		}
		if _, ok := i._Indexer[file][typ]; !ok {
			i._Indexer[file][typ] = map[string]int{}
		}
		idx := len(i._Indexer[file][typ])
		i._Indexer[file][typ][fd.Name.Name] = idx
	}
}

// _IsIdent returns the type name of a method receiver's type
// expression, e.g. "stack" for both "stack" and "*stack".
func (i *suiteTestsIndexer) _IsIdent(fldType ast.Expr) (string, bool) {
	if ident, ok := fldType.(*ast.Ident); ok {
		return ident.Name, true
	}

	starExpr, ok := fldType.(*ast.StarExpr)
	if !ok {
		return "", false
	}
	ident, ok := starExpr.X.(*ast.Ident)
	if !ok {
		return "", false
	}

	return ident.Name, true
}
