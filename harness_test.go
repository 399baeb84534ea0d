// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gmbtest_test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/slukits/gmbtest"
	"github.com/slukits/gmbtest/testdata/fx"
	"github.com/stretchr/testify/suite"
)

type harness struct{ suite.Suite }

func (s *harness) TestRegistersTestsInOrder() {
	h := fx.New(s.T())
	for _, n := range []string{"c", "a", "b", "a"} {
		h.Register(n, func(*gmbtest.T) {})
	}
	names := []string{}
	for _, e := range h.Entries() {
		names = append(names, e.Name())
	}
	s.Equal([]string{"c", "a", "b", "a"}, names)
}

func (s *harness) TestRunsEveryTestOnceInRegistrationOrder() {
	h, got := fx.New(s.T()), []string{}
	for _, n := range []string{"c", "a", "b", "a"} {
		h.Register(n, func(t *gmbtest.T) { got = append(got, t.Name()) })
	}
	h.RunAll()
	s.Equal([]string{"c", "a", "b", "a"}, got)
	s.Zero(h.Failures())
}

func (s *harness) TestEntriesAreACopy() {
	h := fx.New(s.T())
	h.Register("a", func(*gmbtest.T) {})
	ee := h.Entries()
	ee[0] = gmbtest.Entry{}
	s.Equal("a", h.Entries()[0].Name())
}

func (s *harness) TestReportsNoFailuresWithoutTests() {
	h := fx.New(s.T())
	s.Equal(0, h.Run())
	s.Equal([]string{"NO FAILURES"}, h.OutLines())
	s.Empty(h.Err.String())
	s.Zero(h.Failures())
}

func (s *harness) TestReportsNoFailuresIfAllAssertionsPass() {
	h := fx.New(s.T())
	h.Register("passing", func(t *gmbtest.T) {
		t.Assert(2+2 == 4)
		gmbtest.This(t, func() int { return 2 + 3 }).Equals(5)
	})
	s.Equal(0, h.Run())
	s.Equal([]string{"NO FAILURES"}, h.OutLines())
	s.Empty(h.Err.String())
}

func (s *harness) TestCountsAFailedAssertionAndFailsTheRun() {
	h, line := fx.New(s.T()), 0
	h.Register("comparison", func(t *gmbtest.T) {
		t.Assert(2+2 == 4)
		_, _, line, _ = runtime.Caller(0)
		t.Assert(1 > 2)
	})
	s.Equal(1, h.Run())
	s.Equal(1, h.Failures())
	s.Equal([]string{
		fmt.Sprintf(
			`ASSERTION FAILED: "1 > 2" [harness_test.go, comparison, line %d]`,
			line+1),
		"1 TESTS FAILED!",
	}, h.ErrLines())
	s.Empty(h.Out.String())
}

func (s *harness) TestCountsEachFailureInTheOrderTheyOccur() {
	h := fx.New(s.T())
	h.Register("first", func(t *gmbtest.T) {
		t.Assert(1 == 2)
		t.Assert(true)
		t.Assert(3 == 4)
	})
	h.Register("second", func(t *gmbtest.T) {
		t.Assert(5 == 6)
	})
	h.RunAll()
	s.Equal(3, h.Failures())
	ll := h.ErrLines()
	s.Require().Len(ll, 3)
	s.Contains(ll[0], `"1 == 2" [harness_test.go, first, line`)
	s.Contains(ll[1], `"3 == 4" [harness_test.go, first, line`)
	s.Contains(ll[2], `"5 == 6" [harness_test.go, second, line`)
}

func (s *harness) TestExitReportsOnlyOnce() {
	h := fx.New(s.T())
	h.Register("failing", func(t *gmbtest.T) { t.Assert(false) })
	s.Equal(1, h.Run())
	s.Equal(1, h.Exit())
	s.Len(h.ErrLines(), 2)
}

func (s *harness) TestAnUncaughtPanicAbortsTheRun() {
	h, ran := fx.New(s.T()), false
	h.Register("panicking", func(t *gmbtest.T) { panic("uncaught") })
	h.Register("never run", func(t *gmbtest.T) { ran = true })
	s.PanicsWithValue("uncaught", func() { h.RunAll() })
	s.False(ran)
}

func (s *harness) TestLogsDoNotCountAsFailures() {
	h, line := fx.New(s.T()), 0
	h.Register("logging", func(t *gmbtest.T) {
		_, _, line, _ = runtime.Caller(0)
		t.Log("value ", 42)
		t.Logf("%s=%d", "answer", 42)
	})
	s.Equal(0, h.Run())
	s.Equal([]string{
		fmt.Sprintf("LOG: value 42 [harness_test.go, logging, line %d]",
			line+1),
		fmt.Sprintf("LOG: answer=42 [harness_test.go, logging, line %d]",
			line+2),
		"NO FAILURES",
	}, h.OutLines())
}

func (s *harness) TestPassesItselfToItsTests() {
	h := fx.New(s.T())
	var got *gmbtest.Harness
	h.Register("a", func(t *gmbtest.T) { got = t.Harness() })
	h.RunAll()
	s.Same(h.Harness, got)
}

func TestHarness(t *testing.T) {
	t.Parallel()
	suite.Run(t, &harness{})
}

func Test_default_harness_is_shared_by_package_functions(t *testing.T) {
	before := len(gmbtest.Default().Entries())
	e := gmbtest.Test("registered at default", func(*gmbtest.T) {})
	ee := gmbtest.Default().Entries()
	if len(ee) != before+1 {
		t.Fatalf("expected %d default entries; got %d", before+1, len(ee))
	}
	if ee[before].Name() != e.Name() {
		t.Errorf("expected last entry %s; got %s", e.Name(), ee[before].Name())
	}
}
