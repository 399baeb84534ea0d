// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gmbtest

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Expectation defers the evaluation of an expression until one of its
// interpreting methods is called:
//
//	gmbtest.This(t, func() int { return 2 + 3 }).Equals(5)
//	gmbtest.This(t, func() bool { return s.IsEmpty() }).IsTrue()
//	gmbtest.This(t, func() error { return f.Close() }).DoesNotThrow()
//
// The captured function is called at most once per expectation
// regardless of how many interpreting methods are called; subsequent
// interpretations reuse the first result.  An Expectation's diagnostic
// quotes the source text of the captured function's returned
// expression.
type Expectation[V any] struct {
	t    *T
	expr string
	eval func() V

	evaluated bool
	value     V
	panicked  bool
	recovered interface{}
}

// This captures given function for a subsequent interpretation of its
// return value, see [Expectation].
func This[V any](t *T, f func() V) *Expectation[V] {
	return &Expectation[V]{
		t:    t,
		eval: f,
		expr: sources.body(callerAt(1), "This", 1),
	}
}

// evaluate calls the captured function unless it was called before.
// If recovering is false a panic of the captured function propagates;
// if an earlier recovering evaluation caught a panic it is re-raised.
func (e *Expectation[V]) evaluate(recovering bool) V {
	if e.evaluated {
		if e.panicked && !recovering {
			panic(e.recovered)
		}
		return e.value
	}
	e.evaluated = true
	if !recovering {
		e.value = e.eval()
		return e.value
	}
	e.recovered, e.panicked = catch(func() { e.value = e.eval() })
	return e.value
}

// text returns the captured expression's source text or the %v
// representation of its value if the source is not available.
func (e *Expectation[V]) text() string {
	return orValue(e.expr, e.value)
}

// Equals records a failure iff the captured function's value is not
// equal to given expected value.  Values are compared by go-cmp's
// Equal including unexported fields.
func (e *Expectation[V]) Equals(expected V) bool {
	value := e.evaluate(false)
	if cmp.Equal(value, expected, exportAll) {
		return true
	}
	at := callerAt(1)
	e.t.fail(EqualityExpectation, at, e.text()+" != "+orValue(
		sources.argument(at, "Equals", 0), expected))
	return false
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// isBool reports if given value is of a boolean kind, i.e. also of a
// named bool type, holding given truth.
func isBool(value interface{}, truth bool) bool {
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Bool && rv.Bool() == truth
}

// IsTrue records a failure iff the captured function's value is not
// the boolean true.
func (e *Expectation[V]) IsTrue() bool {
	if isBool(e.evaluate(false), true) {
		return true
	}
	e.t.fail(BooleanExpectation, callerAt(1), e.text())
	return false
}

// IsFalse records a failure iff the captured function's value is not
// the boolean false.
func (e *Expectation[V]) IsFalse() bool {
	if isBool(e.evaluate(false), false) {
		return true
	}
	e.t.fail(BooleanExpectation, callerAt(1), e.text())
	return false
}

// Throws records a failure iff the captured function neither panics
// nor returns a non-nil error.  An error holding a nil pointer counts
// as nil.  A panic of any value satisfies the
// expectation.
func (e *Expectation[V]) Throws() bool {
	if e.threw() {
		return true
	}
	e.t.fail(MissingThrow, callerAt(1), e.text())
	return false
}

// DoesNotThrow records a failure iff the captured function panics or
// returns a non-nil error.  A panic is not propagated.
func (e *Expectation[V]) DoesNotThrow() bool {
	if !e.threw() {
		return true
	}
	e.t.fail(UnexpectedThrow, callerAt(1), e.text())
	return false
}

func (e *Expectation[V]) threw() bool {
	value := e.evaluate(true)
	if e.panicked {
		return true
	}
	err, ok := any(value).(error)
	return ok && !isNil(err)
}

// isNil reports if given error is nil or wraps a nil pointer, map,
// slice, channel, function or interface, e.g. a nil *MyError returned
// as error.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	rv := reflect.ValueOf(err)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
