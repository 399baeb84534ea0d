// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gmbtest

import (
	"reflect"

	"golang.org/x/exp/slices"
)

// Suite implements the private method of the SuiteEmbedder interface.
// I.e. if you want to register the tests of your own test-suite using
// [RegisterSuite] you must embed this type, e.g.:
//
//	type MySuite struct { gmbtest.Suite }
//
//	// ... the suite-tests as methods of *MySuite ...
//
//	var _ = gmbtest.RegisterSuite(&MySuite{})
type Suite struct {
	file string
}

func (s *Suite) suite() *Suite { return s }

// File returns the source file the suite was registered from.
func (s *Suite) File() string { return s.file }

// SuiteEmbedder is automatically implemented by embedding a
// Suite-instance.
type SuiteEmbedder interface {
	suite() *Suite
}

// RegisterSuite registers the tests of given suite at the default
// harness and returns the number of registered tests, see
// [Harness.RegisterSuite].
func RegisterSuite(s SuiteEmbedder) int {
	return std.registerSuite(s, callerAt(1).file)
}

// RegisterSuite registers all methods of given test-suite embedder
// which are public and have the signature func(*T).  Each test is
// named <suite-type>.<method>.  The methods are registered in the order
// of their appearance in the file calling RegisterSuite.  NOTE methods
// declared in an other file are registered after the ones found in
// the calling file ordered by their name.
func (h *Harness) RegisterSuite(s SuiteEmbedder) int {
	return h.registerSuite(s, callerAt(1).file)
}

var tType = reflect.TypeOf(&T{})

func (h *Harness) registerSuite(s SuiteEmbedder, file string) int {
	s.suite().file = file
	value, rtype := reflect.ValueOf(s), reflect.TypeOf(s)
	name := rtype.String()
	if rtype.Kind() == reflect.Ptr {
		name = rtype.Elem().Name()
	}

	tests := []reflect.Method{}
	for i := 0; i < rtype.NumMethod(); i++ {
		m := rtype.Method(i)
		if m.Type.NumIn() != 2 || m.Type.NumOut() != 0 ||
			m.Type.In(1) != tType {
			continue
		}
		tests = append(tests, m)
	}

	indexer.ensureIndexingOf(file)
	slices.SortStableFunc(tests, func(a, b reflect.Method) int {
		return compareIndices(
			indexer.get(file, name, a.Name),
			indexer.get(file, name, b.Name))
	})

	for _, m := range tests {
		h.Register(name+"."+m.Name, suiteTest(value, m))
	}
	return len(tests)
}

// compareIndices orders indexed methods before unindexed ones while
// the relative order of unindexed methods, i.e. by name, is kept.
func compareIndices(a, b int) int {
	switch {
	case a < 0 && b < 0:
		return 0
	case a < 0:
		return 1
	case b < 0:
		return -1
	}
	return a - b
}

func suiteTest(suite reflect.Value, m reflect.Method) Procedure {
	return func(t *T) {
		m.Func.Call([]reflect.Value{suite, reflect.ValueOf(t)})
	}
}
