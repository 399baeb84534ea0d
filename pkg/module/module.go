// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package module locates the go module a gmbtest test program lives in
// and discovers the module's test programs.
package module

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

var ErrNoModule = errors.New("module: no module found in path: ")

var ErrNoProgram = errors.New("module: not a test program: ")

// A Module is a go module which may contain gmbtest test programs.
type Module struct {

	// Dir is the module's directory, i.e. the directory containing its
	// go.mod file.
	Dir string

	// Name is the module path declared in the go.mod file.
	Name string
}

// Find returns the first module which is found in given directory
// ascending towards root.  If no directory with a go.mod file is found
// a wrapped ErrNoModule error is returned.
func Find(dir string) (*Module, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	start := dir
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			name := modfile.ModulePath(data)
			if name == "" {
				return nil, fmt.Errorf(
					"module: %s: go.mod lacks module path", dir)
			}
			return &Module{Dir: dir, Name: name}, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if dir == filepath.Dir(dir) {
			break
		}
		dir = filepath.Dir(dir)
	}
	return nil, fmt.Errorf("%w"+"%s", ErrNoModule, start)
}
