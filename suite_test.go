// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gmbtest_test

import (
	"runtime"
	"testing"

	"github.com/slukits/gmbtest"
	"github.com/slukits/gmbtest/testdata/fx"
	"github.com/stretchr/testify/suite"
)

type ordered struct {
	gmbtest.Suite
	got []string
}

func (s *ordered) Runs_first(t *gmbtest.T) { s.got = append(s.got, t.Name()) }

func (s *ordered) Also_runs_second(t *gmbtest.T) {
	s.got = append(s.got, t.Name())
}

func (s *ordered) helper(t *gmbtest.T) {}

func (s *ordered) Not_a_test(i int) {}

func (s *ordered) Neither_a_test(t *gmbtest.T) bool { return true }

func (s *ordered) Asserts_in_a_suite(t *gmbtest.T) {
	s.got = append(s.got, t.Name())
	t.Assert(len(s.got) == 0)
}

type suiteRegistration struct{ suite.Suite }

func (s *suiteRegistration) TestRegistersTestsByAppearance() {
	h, fixture := fx.New(s.T()), &ordered{}
	s.Equal(3, h.RegisterSuite(fixture))
	names := []string{}
	for _, e := range h.Entries() {
		names = append(names, e.Name())
	}
	exp := []string{
		"ordered.Runs_first",
		"ordered.Also_runs_second",
		"ordered.Asserts_in_a_suite",
	}
	s.Equal(exp, names)
	s.Equal(1, h.Run())
	s.Equal(exp, fixture.got)
	s.Require().Len(h.ErrLines(), 2)
	s.Contains(h.ErrLines()[0],
		`"len(s.got) == 0" [suite_test.go, ordered.Asserts_in_a_suite, line`)
}

func (s *suiteRegistration) TestRecordsTheRegisteringFile() {
	_, exp, _, ok := runtime.Caller(0)
	s.Require().True(ok)
	fixture := &ordered{}
	fx.New(s.T()).RegisterSuite(fixture)
	s.Equal(exp, fixture.File())
}

func (s *suiteRegistration) TestOrdersByAppearanceInTheRegisteringFile() {
	h, fixture := fx.New(s.T()), &fx.Appearance{}
	s.Equal(3, fx.RegisterAppearance(h.Harness, fixture))
	h.RunAll()
	s.Equal([]string{
		"Appearance.Zeta_is_declared_first",
		"Appearance.Beta_is_declared_second",
		"Appearance.Alpha_is_declared_third",
	}, fixture.Got)
}

func (s *suiteRegistration) TestOrdersByNameIfDeclaredElsewhere() {
	h, fixture := fx.New(s.T()), &fx.Elsewhere{}
	s.Equal(2, h.RegisterSuite(fixture))
	h.RunAll()
	s.Equal([]string{
		"Elsewhere.First_by_name",
		"Elsewhere.Second_by_name",
	}, fixture.Got)
}

func (s *suiteRegistration) TestRegistersNothingForAnEmptySuite() {
	h := fx.New(s.T())
	s.Zero(h.RegisterSuite(&struct{ gmbtest.Suite }{}))
	s.Empty(h.Entries())
}

func TestSuiteRegistration(t *testing.T) {
	t.Parallel()
	suite.Run(t, &suiteRegistration{})
}
