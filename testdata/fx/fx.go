// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fx provides gmbtest test-fixtures.
//
// A Harness fixture wraps a gmbtest.Harness whose streams are captured
// in buffers which then can be evaluated after a run.  Its logger
// writes to the log of the go test using the fixture.
package fx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/slukits/gmbtest"
)

// Harness is an isolated gmbtest harness capturing its output and error
// output.
type Harness struct {
	*gmbtest.Harness
	Out, Err *bytes.Buffer
}

// New creates a new harness fixture logging to given go test.
func New(t testing.TB) *Harness {
	out, err := &bytes.Buffer{}, &bytes.Buffer{}
	return &Harness{
		Harness: gmbtest.New(
			gmbtest.WithOutput(out),
			gmbtest.WithErrorOutput(err),
			gmbtest.WithLogger(slogt.New(t, slogt.Text())),
		),
		Out: out,
		Err: err,
	}
}

// OutLines returns the lines written to the harness' output.
func (h *Harness) OutLines() []string { return lines(h.Out.String()) }

// ErrLines returns the lines written to the harness' error output.
func (h *Harness) ErrLines() []string { return lines(h.Err.String()) }

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
