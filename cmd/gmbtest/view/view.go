// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package view renders the summary of a gmbtest command run.
package view

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Line is a reported test program run.
type Line struct {
	Dir      string
	Code     int
	Duration time.Duration
	Err      error
}

// Passed returns true iff the program ran and exited with 0.
func (l Line) Passed() bool { return l.Err == nil && l.Code == 0 }

// A Report writes the summary of test program runs.  Its zero value
// writes uncolored to os.Stdout.
type Report struct {
	w      io.Writer
	styles *styles
}

type styles struct {
	pass, fail, dir, dim lipgloss.Style
}

// New creates a report writing to given writer which is colored iff
// color is true.
func New(w io.Writer, color bool) *Report {
	r := &Report{w: w}
	if !color {
		return r
	}
	rr := lipgloss.NewRenderer(w)
	rr.SetColorProfile(termenv.ANSI256)
	r.styles = &styles{
		pass: rr.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		fail: rr.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		dir:  rr.NewStyle().Foreground(lipgloss.Color("6")),
		dim:  rr.NewStyle().Faint(true),
	}
	return r
}

// Colored decides given color mode ("auto", "always" or "never") for
// given writer: auto colors iff the writer is a terminal.
func Colored(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Write reports each given line followed by a totals line.
func (r *Report) Write(ll []Line) {
	w := r.w
	if w == nil {
		w = os.Stdout
	}
	failed, width := 0, 0
	for _, l := range ll {
		width = max(width, lipgloss.Width(l.Dir))
	}
	for _, l := range ll {
		if !l.Passed() {
			failed++
		}
		fmt.Fprintln(w, r.line(l, width))
	}
	fmt.Fprintln(w, r.totals(len(ll), failed))
}

func (r *Report) line(l Line, width int) string {
	status, detail := "PASS", l.Duration.Round(time.Millisecond).String()
	switch {
	case l.Err != nil:
		status, detail = "FAIL", fmt.Sprintf("error: %v", l.Err)
	case l.Code != 0:
		status, detail = "FAIL", fmt.Sprintf("exit %d, %s", l.Code, detail)
	}
	dir := l.Dir + strings.Repeat(" ", width-lipgloss.Width(l.Dir))
	if r.styles == nil {
		return fmt.Sprintf("%s %s (%s)", status, dir, detail)
	}
	st := r.styles.pass
	if status != "PASS" {
		st = r.styles.fail
	}
	return fmt.Sprintf("%s %s %s", st.Render(status),
		r.styles.dir.Render(dir), r.styles.dim.Render("("+detail+")"))
}

func (r *Report) totals(programs, failed int) string {
	s := fmt.Sprintf("%d programs, %d failed", programs, failed)
	if r.styles == nil {
		return s
	}
	if failed > 0 {
		return r.styles.fail.Render(s)
	}
	return r.styles.pass.Render(s)
}
