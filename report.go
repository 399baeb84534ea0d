// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gmbtest

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Failure classifies a recorded assertion failure.  Every kind of
// failure is recorded the same way, i.e. the failure counter is
// incremented and a diagnostic line is written, while the kind selects
// the diagnostic's wording.
type Failure uint8

const (

	// BooleanAssertion is a [T.Assert] whose condition was false.
	BooleanAssertion Failure = iota

	// EqualityExpectation is an [Expectation.Equals] whose deferred
	// value didn't equal the expected value.
	EqualityExpectation

	// BooleanExpectation is an [Expectation.IsTrue] or
	// [Expectation.IsFalse] whose deferred value wasn't the expected
	// truth value.
	BooleanExpectation

	// MissingThrow is a [T.ExpectThrow] or [Expectation.Throws] whose
	// function neither panicked nor returned an error.
	MissingThrow

	// UnexpectedThrow is a [T.ExpectNoThrow] or
	// [Expectation.DoesNotThrow] whose function panicked or returned an
	// error.
	UnexpectedThrow
)

func (f Failure) String() string {
	switch f {
	case BooleanAssertion:
		return "boolean assertion"
	case EqualityExpectation:
		return "equality expectation"
	case BooleanExpectation:
		return "boolean expectation"
	case MissingThrow:
		return "missing throw"
	case UnexpectedThrow:
		return "unexpected throw"
	}
	return fmt.Sprintf("failure(%d)", uint8(f))
}

const (
	assertionFailed   = `ASSERTION FAILED: "%s"`
	expectThrowFailed = `EXPECT EXCEPTION FAILED: "%s"`
	noThrowFailed     = `EXPECT NO EXCEPTION FAILED: %s`
	logPrefix         = "LOG: "
	noFailures        = "NO FAILURES"
	testsFailed       = "%d TESTS FAILED!"
)

// message formats the diagnostic of a failure of given kind about given
// expression text.
func (f Failure) message(expr string) string {
	switch f {
	case MissingThrow:
		return fmt.Sprintf(expectThrowFailed, expr)
	case UnexpectedThrow:
		return fmt.Sprintf(noThrowFailed, expr)
	}
	return fmt.Sprintf(assertionFailed, expr)
}

// position is a source location of an assertion or log call.
type position struct {
	file string
	line int
}

// callerAt returns the position of the function skip frames above
// callerAt's caller, i.e. callerAt(1) called in an assertion method
// returns the position where the assertion was called.
func callerAt(skip int) position {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return position{file: "???"}
	}
	return position{file: file, line: line}
}

// tag returns the positional suffix of a diagnostic for the test with
// given name.
func (p position) tag(test string) string {
	return fmt.Sprintf("[%s, %s, line %d]",
		filepath.Base(p.file), test, p.line)
}
