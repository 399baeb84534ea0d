// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package module

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// ImportPath identifies test programs: a main package importing it.
const ImportPath = "github.com/slukits/gmbtest"

// A Program is a module's package main importing gmbtest, i.e. a test
// program whose exit code reports if its tests passed.
type Program struct {
	abs, rel string
}

// Abs returns the absolute path of the program's directory.
func (p Program) Abs() string { return p.abs }

// Rel returns the module relative path of the program's directory in
// the form go run expects it, e.g. "./tests/unit" or "." for the
// module's root.
func (p Program) Rel() string { return p.rel }

// Programs returns the test programs found in m's directory and its
// descendants ordered by their module relative paths.  Like the go tool
// Programs ignores directories whose names start with "." or "_",
// testdata and vendor directories as well as nested modules.
func (m *Module) Programs() ([]Program, error) {
	pp := []Program{}
	err := filepath.WalkDir(m.Dir, func(
		path string, d fs.DirEntry, err error,
	) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != m.Dir && skipDir(path, d.Name()) {
			return filepath.SkipDir
		}
		if !isProgram(path) {
			return nil
		}
		pp = append(pp, m.program(path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sortPrograms(pp), nil
}

// Program returns the test program in given directory which is either
// absolute or relative to m's directory.  A wrapped ErrNoProgram is
// returned if the directory is outside m or is not a test program.
func (m *Module) Program(dir string) (Program, error) {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(m.Dir, dir)
	}
	dir = filepath.Clean(dir)
	rel, err := filepath.Rel(m.Dir, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return Program{}, fmt.Errorf("%w"+"%s: outside module %s",
			ErrNoProgram, dir, m.Name)
	}
	if !isProgram(dir) {
		return Program{}, fmt.Errorf("%w"+"%s", ErrNoProgram, dir)
	}
	return m.program(dir), nil
}

// SelectPrograms returns the test programs in given directories
// ordered by their module relative paths; duplicates are removed.
func (m *Module) SelectPrograms(dirs ...string) ([]Program, error) {
	pp := []Program{}
	for _, d := range dirs {
		p, err := m.Program(d)
		if err != nil {
			return nil, err
		}
		pp = append(pp, p)
	}
	return sortPrograms(pp), nil
}

func (m *Module) program(dir string) Program {
	rel, _ := filepath.Rel(m.Dir, dir)
	if rel == "." {
		return Program{abs: dir, rel: "."}
	}
	return Program{abs: dir, rel: "./" + filepath.ToSlash(rel)}
}

func sortPrograms(pp []Program) []Program {
	slices.SortFunc(pp, func(a, b Program) int {
		return strings.Compare(a.rel, b.rel)
	})
	return slices.CompactFunc(pp, func(a, b Program) bool {
		return a.rel == b.rel
	})
}

func skipDir(path, name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	if name == "testdata" || name == "vendor" {
		return true
	}
	_, err := os.Stat(filepath.Join(path, "go.mod"))
	return err == nil
}

// isProgram parses the imports of the non-test go files in given
// directory and reports if they make up a package main importing
// gmbtest.
func isProgram(dir string) bool {
	ee, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	isMain, importsHarness := false, false
	for _, e := range ee {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") ||
			strings.HasSuffix(e.Name(), "_test.go") {
			continue
		}
		af, err := parser.ParseFile(token.NewFileSet(),
			filepath.Join(dir, e.Name()), nil, parser.ImportsOnly)
		if err != nil {
			continue
		}
		if af.Name.Name != "main" {
			return false
		}
		isMain = true
		for _, i := range af.Imports {
			if i.Path.Value == `"`+ImportPath+`"` {
				importsHarness = true
			}
		}
	}
	return isMain && importsHarness
}
