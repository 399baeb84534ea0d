// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/slukits/gmbtest/pkg/module"
)

// Result is the outcome of a test program's run.
type Result struct {
	Program  module.Program
	Code     int
	Duration time.Duration

	// Err is set if the program couldn't be built or run or was
	// canceled.
	Err error
}

// Passed returns true iff the program ran and exited with 0.
func (r Result) Passed() bool { return r.Err == nil && r.Code == 0 }

// A Runner runs a test program.
type Runner interface {
	Run(context.Context, module.Program) Result
}

// ErrBuild is wrapped by a Result's error if a program didn't compile.
var ErrBuild = errors.New("build failed: ")

// waitDelay bounds the wait for a killed program's output streams.
const waitDelay = time.Second

// GoRunner builds test programs with "go build" in a module's
// directory and runs the binaries streaming their output.
type GoRunner struct {
	Go             string
	Dir            string
	Timeout        time.Duration
	Stdout, Stderr io.Writer
}

// Run builds given program and executes it.  The program's exit code
// is reported in Result.Code while Result.Err reflects errors of the
// build or the execution, e.g. a timeout.  The timeout limits the
// execution only, a program exceeding it is killed.
func (r *GoRunner) Run(ctx context.Context, p module.Program) Result {
	result := r.run(ctx, p.Rel())
	result.Program = p
	return result
}

func (r *GoRunner) run(ctx context.Context, rel string) Result {
	tmp, err := os.MkdirTemp("", "gmbtest-")
	if err != nil {
		return Result{Code: -1, Err: err}
	}
	defer os.RemoveAll(tmp)

	bin := filepath.Join(tmp, "program")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	build := exec.CommandContext(ctx, r.Go, "build", "-o", bin, rel)
	build.Dir, build.Stdout, build.Stderr = r.Dir, r.Stderr, r.Stderr
	if err := build.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return Result{Code: -1, Err: fmt.Errorf("%w"+"%v", ErrBuild, err)}
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, bin)
	cmd.Dir, cmd.Stdout, cmd.Stderr = r.Dir, r.Stdout, r.Stderr
	cmd.WaitDelay = waitDelay
	start := time.Now()
	err = cmd.Run()
	result := Result{Duration: time.Since(start)}
	if ctx.Err() != nil {
		result.Code, result.Err = -1, ctx.Err()
		return result
	}
	if err == nil {
		return result
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.Code = exitErr.ExitCode()
		return result
	}
	result.Code, result.Err = -1, err
	return result
}
