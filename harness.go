// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gmbtest

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// A Harness holds the state of a test run: the registry of tests, the
// failure counter and the streams diagnostics are written to.  Package
// level functions like [Test] and [Main] operate on a default harness
// which exists before any package importing gmbtest is initialized and
// lives until the process exits.  Additional harnesses may be created
// by [New], e.g. to test tests.  A Harness is not concurrency save, a
// test run is strictly sequential.
type Harness struct {
	registry registry

	// failures counts the recorded assertion failures; it is never
	// decremented.
	failures int

	out, err io.Writer
	logger   *slog.Logger

	// exited is set by the first Exit call whose code is kept in code.
	exited bool
	code   int
}

// Option configures a Harness created by [New].
type Option func(*Harness)

// WithOutput sets the stream for log lines and the success message
// which defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(h *Harness) { h.out = w }
}

// WithErrorOutput sets the stream for failure diagnostics and the
// failure summary which defaults to os.Stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(h *Harness) { h.err = w }
}

// WithLogger sets the logger tracing a harness' activity at debug
// level.  It defaults to a logger discarding everything.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// New creates a harness with an empty registry and a zero failure
// count.
func New(oo ...Option) *Harness {
	h := &Harness{
		out:    os.Stdout,
		err:    os.Stderr,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range oo {
		o(h)
	}
	return h
}

var std = New()

// Default returns the harness used by the package level functions.
func Default() *Harness { return std }

// Register appends a test with given name and body to h's registry.
func (h *Harness) Register(name string, p Procedure) Entry {
	h.logger.Debug("gmbtest: register", "test", name,
		"position", h.registry.len())
	return h.registry.add(name, p)
}

// Entries returns h's registered tests in registration order.
func (h *Harness) Entries() []Entry { return h.registry.all() }

// Failures returns the number of failures recorded so far.
func (h *Harness) Failures() int { return h.failures }

// RunAll executes h's tests in registration order passing each test a
// T instance carrying its name.  Failed assertions don't interrupt a
// test or the run.  NOTE a panic escaping a test body is not recovered
// and aborts the run.
func (h *Harness) RunAll() {
	for _, e := range h.registry.all() {
		h.logger.Debug("gmbtest: run", "test", e.name)
		before := h.failures
		e.procedure(&T{h: h, name: e.name})
		h.logger.Debug("gmbtest: done", "test", e.name,
			"failures", h.failures-before)
	}
}

// Exit reports the outcome of a test run and returns the process exit
// code: 0 and "NO FAILURES" on h's output if no failures were recorded;
// 1 and "<N> TESTS FAILED!" on h's error output otherwise.  Only the
// first call reports, subsequent calls return the same code silently.
func (h *Harness) Exit() int {
	if h.exited {
		return h.code
	}
	h.exited = true
	if h.failures == 0 {
		fmt.Fprintln(h.out, noFailures)
		h.code = 0
		return h.code
	}
	fmt.Fprintf(h.err, testsFailed+"\n", h.failures)
	h.code = 1
	return h.code
}

// Run executes all registered tests and returns the exit code, see
// [Harness.RunAll] and [Harness.Exit].
func (h *Harness) Run() int {
	h.RunAll()
	return h.Exit()
}

// fail records a failure of given kind about given expression at given
// position of the test with given name.
func (h *Harness) fail(kind Failure, test string, at position, expr string) {
	h.failures++
	h.logger.Debug("gmbtest: failure", "test", test, "kind", kind.String())
	fmt.Fprintf(h.err, "%s %s\n", kind.message(expr), at.tag(test))
}

// log writes a debug line of the test with given name.
func (h *Harness) log(test string, at position, msg string) {
	fmt.Fprintf(h.out, "%s%s %s\n", logPrefix, msg, at.tag(test))
}

// Test registers a test with given name and body at the default
// harness.  Its return value allows the registration in a package level
// declaration which is evaluated before main runs:
//
//	var _ = gmbtest.Test("name", func(t *gmbtest.T) { ... })
func Test(name string, p Procedure) Entry { return std.Register(name, p) }

// Main runs the tests of the default harness and terminates the
// process with the exit code of [Harness.Exit].
func Main() { os.Exit(std.Run()) }
