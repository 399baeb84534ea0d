// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gmbtest

import (
	"fmt"
)

// T instances are passed to tests providing the test's name, logging
// and assertions:
//
//	var _ = gmbtest.Test("a test", func(t *gmbtest.T) {
//	    t.Log("running ", t.Name())
//	    t.Assert(2+2 == 4)
//	})
//
// A failed assertion is recorded and the test continues.  Assertions
// return false iff they failed.
type T struct {
	h    *Harness
	name string
}

// Name returns the name the running test was registered with.
func (t *T) Name() string { return t.name }

// Harness returns the harness running the test.
func (t *T) Harness() *Harness { return t.h }

// Log writes given arguments leveraging fmt.Sprint as "LOG:"-line
// tagged with file, test name and line to the harness' output.  Log
// never records a failure.
func (t *T) Log(args ...interface{}) {
	t.h.log(t.name, callerAt(1), fmt.Sprint(args...))
}

// Logf is like Log but formats given arguments leveraging fmt.Sprintf.
func (t *T) Logf(format string, args ...interface{}) {
	t.h.log(t.name, callerAt(1), fmt.Sprintf(format, args...))
}

// Assert records a failure iff given condition is false.  The
// diagnostic quotes the condition's source text.
func (t *T) Assert(condition bool) bool {
	if condition {
		return true
	}
	at := callerAt(1)
	t.fail(BooleanAssertion, at, orValue(
		sources.argument(at, "Assert", 0), condition))
	return false
}

// ExpectThrow calls given function and records a failure iff it
// doesn't panic.  A panic of any value satisfies the expectation.
func (t *T) ExpectThrow(f func()) bool {
	if _, panicked := catch(f); panicked {
		return true
	}
	at := callerAt(1)
	t.fail(MissingThrow, at, orValue(
		sources.body(at, "ExpectThrow", 0), "func()"))
	return false
}

// ExpectNoThrow calls given function and records a failure iff it
// panics.  The panic is not propagated.
func (t *T) ExpectNoThrow(f func()) bool {
	if _, panicked := catch(f); !panicked {
		return true
	}
	at := callerAt(1)
	t.fail(UnexpectedThrow, at, orValue(
		sources.body(at, "ExpectNoThrow", 0), "func()"))
	return false
}

func (t *T) fail(kind Failure, at position, expr string) {
	t.h.fail(kind, t.name, at, expr)
}

// catch calls given function and returns the value it panicked with
// and true; nil and false if it returned normally.  Note since go 1.21
// panic(nil) is recovered as *runtime.PanicNilError, i.e. every panic
// is caught.
func catch(f func()) (recovered interface{}, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			recovered, panicked = r, true
		}
	}()
	f()
	return nil, false
}

// orValue returns given source text or if it is empty the %v
// representation of given value.
func orValue(text string, value interface{}) string {
	if text != "" {
		return text
	}
	return fmt.Sprintf("%v", value)
}
