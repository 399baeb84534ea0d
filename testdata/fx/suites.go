// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fx

import "github.com/slukits/gmbtest"

// Appearance is a fixture suite whose tests are declared in an order
// different from their names' order.  Each run test appends its name to
// Got.
type Appearance struct {
	gmbtest.Suite
	Got []string
}

func (s *Appearance) Zeta_is_declared_first(t *gmbtest.T) {
	s.Got = append(s.Got, t.Name())
}

func (s *Appearance) Beta_is_declared_second(t *gmbtest.T) {
	s.Got = append(s.Got, t.Name())
}

func (s *Appearance) Alpha_is_declared_third(t *gmbtest.T) {
	s.Got = append(s.Got, t.Name())
}

// RegisterAppearance registers given suite at given harness from this
// file, i.e. its tests are ordered by their appearance in this file.
func RegisterAppearance(h *gmbtest.Harness, s *Appearance) int {
	return h.RegisterSuite(s)
}

// Elsewhere is a fixture suite whose tests are declared in this file
// while it is registered from an other file.
type Elsewhere struct {
	gmbtest.Suite
	Got []string
}

func (s *Elsewhere) Second_by_name(t *gmbtest.T) {
	s.Got = append(s.Got, t.Name())
}

func (s *Elsewhere) First_by_name(t *gmbtest.T) {
	s.Got = append(s.Got, t.Name())
}
