// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package gmbtest is a minimal unit-testing harness for programs which
// want to carry their tests inline without go test or any other
// external runner.  A test program declares its tests at package level
// and hands control to [Main] from its main function:
//
//	package main
//
//	import "github.com/slukits/gmbtest"
//
//	var _ = gmbtest.Test("addition", func(t *gmbtest.T) {
//	    t.Assert(2+2 == 4)
//	    gmbtest.This(t, func() int { return 2 + 3 }).Equals(5)
//	})
//
//	var _ = gmbtest.Test("division by zero", func(t *gmbtest.T) {
//	    zero := 0
//	    t.ExpectThrow(func() { _ = 1 / zero })
//	})
//
//	func main() { gmbtest.Main() }
//
// A package-level declaration is evaluated before main runs, i.e. all
// tests are registered before the first one executes.  Tests run one
// after the other in the order of their registration which is the
// order in which the go tool initializes package variables: files of a
// package sorted by name and declarations of a file top down.  Tests
// may as well be registered from init functions or from main before
// [Main] is called.
//
// Assertions never stop a test.  A failed assertion increments the
// harness' failure counter and writes a diagnostic line to standard
// error, e.g.:
//
//	ASSERTION FAILED: "1 > 2" [arith.go, comparison, line 12]
//
// The quoted text is the literal source text of the asserted
// expression which is read from the test program's source file.  If
// the source isn't available at run time or a line holds several calls
// of the same assertion the asserted value's %v representation is
// reported instead.  After all tests ran [Main]
// prints "NO FAILURES" and exits with 0 or prints "<N> TESTS FAILED!"
// and exits with 1.
//
// NOTE a panic which escapes a test body, i.e. which isn't caught by
// [T.ExpectThrow], [T.ExpectNoThrow], [Expectation.Throws] or
// [Expectation.DoesNotThrow], is not recovered.  It aborts the whole
// run and the process exits with the go runtime's panic status.
//
// Tests may also be grouped into a suite type whose tests are methods:
//
//	type stack struct{ gmbtest.Suite }
//
//	func (s *stack) Pushes_on_top(t *gmbtest.T)  { ... }
//	func (s *stack) Pops_from_top(t *gmbtest.T)  { ... }
//
//	var _ = gmbtest.RegisterSuite(&stack{})
//
// The methods are registered in the order they appear in the file
// registering the suite.
package gmbtest
