// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_report_lists_programs_and_totals(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf, false).Write([]Line{
		{Dir: "./a", Duration: 12 * time.Millisecond},
		{Dir: "./bb", Code: 1, Duration: 30 * time.Millisecond},
		{Dir: "./c", Code: -1, Err: errors.New("timeout")},
	})
	assert.Equal(t, strings.Join([]string{
		"PASS ./a  (12ms)",
		"FAIL ./bb (exit 1, 30ms)",
		"FAIL ./c  (error: timeout)",
		"3 programs, 2 failed",
	}, "\n")+"\n", buf.String())
}

func Test_report_without_programs_reports_totals(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf, false).Write(nil)
	assert.Equal(t, "0 programs, 0 failed\n", buf.String())
}

func Test_colored_report_contains_escape_sequences(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf, true).Write([]Line{{Dir: "./a"}})
	require.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "PASS")
	assert.Contains(t, buf.String(), "1 programs, 0 failed")
}

func Test_color_mode_decides_coloring(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.True(t, Colored("always", buf))
	assert.False(t, Colored("never", buf))
	assert.False(t, Colored("auto", buf))
}
