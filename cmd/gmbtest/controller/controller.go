// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package controller wires the gmbtest command: it locates the module,
// loads its configuration, runs its test programs one after another and
// reports their outcome.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/slukits/gmbtest/cmd/gmbtest/view"
	"github.com/slukits/gmbtest/pkg/module"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var ErrNoPrograms = errors.New("gmbtest: no test programs found in ")

// Exit codes of the gmbtest command.
const (
	ExitPassed = 0
	ExitFailed = 1
	ExitError  = 2
)

// Controller runs a module's test programs sequentially in the order
// of their module relative paths.
type Controller struct {
	Module *module.Module
	Config *Config
	Runner Runner
	Report *view.Report
	Logger *slog.Logger
}

// Run runs the test programs in given directories or if none are given
// the configured respectively discovered programs.  It returns
// ExitPassed if all programs exited with 0; ExitFailed otherwise.
func (c *Controller) Run(ctx context.Context, dirs []string) (int, error) {
	pp, err := c.programs(dirs)
	if err != nil {
		return ExitError, err
	}
	ll, code := []view.Line{}, ExitPassed
	for _, p := range pp {
		if err := ctx.Err(); err != nil {
			return ExitError, err
		}
		c.Logger.Debug("gmbtest: run program", "dir", p.Rel())
		r := c.Runner.Run(ctx, p)
		c.Logger.Debug("gmbtest: program done", "dir", p.Rel(),
			"code", r.Code, "duration", r.Duration)
		if !r.Passed() {
			code = ExitFailed
		}
		ll = append(ll, view.Line{
			Dir: p.Rel(), Code: r.Code, Duration: r.Duration, Err: r.Err})
	}
	c.Report.Write(ll)
	return code, nil
}

func (c *Controller) programs(dirs []string) ([]module.Program, error) {
	if len(dirs) == 0 {
		dirs = c.Config.Programs
	}
	if len(dirs) > 0 {
		return c.Module.SelectPrograms(dirs...)
	}
	pp, err := c.Module.Programs()
	if err != nil {
		return nil, err
	}
	if len(pp) == 0 {
		return nil, fmt.Errorf("%w"+"%s", ErrNoPrograms, c.Module.Dir)
	}
	return pp, nil
}

// Env provides the command's streams and the creation of the runner of
// test programs which defaults to a GoRunner.
type Env struct {
	Stdout, Stderr io.Writer
	NewRunner      func(*module.Module, *Config) Runner
}

func (e *Env) runner(m *module.Module, cfg *Config) Runner {
	if e.NewRunner != nil {
		return e.NewRunner(m, cfg)
	}
	return &GoRunner{
		Go: cfg.Go, Dir: m.Dir, Timeout: cfg.Timeout,
		Stdout: e.Stdout, Stderr: e.Stderr,
	}
}

// NewCommand creates the gmbtest command whose exit code is stored in
// given code after its execution.
func NewCommand(env *Env, code *int) *cobra.Command {
	var (
		dir, cfgPath, goCmd string
		color               = colorMode(ColorAuto)
		verbose             bool
	)
	cmd := &cobra.Command{
		Use:   "gmbtest [program-dir...]",
		Short: "Run the gmbtest test programs of a go module",
		Long: "gmbtest runs the test programs of the go module " +
			"containing the working directory one after another and " +
			"fails if one of them fails.  A test program is a main " +
			"package importing " + module.ImportPath + ".  Without " +
			"arguments the programs listed in the module's " +
			ConfigFile + " are run or if there are none all test " +
			"programs of the module.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = ExitError
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(
				env.Stderr, &slog.HandlerOptions{Level: level}))

			m, err := module.Find(dir)
			if err != nil {
				return err
			}
			logger.Debug("gmbtest: module", "name", m.Name, "dir", m.Dir)

			required := cfgPath != ""
			if !required {
				cfgPath = filepath.Join(m.Dir, ConfigFile)
			}
			cfg, err := LoadConfig(cfgPath, required)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("color") {
				cfg.Color = string(color)
			}
			if cmd.Flags().Changed("go") {
				cfg.Go = goCmd
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			c := &Controller{
				Module: m,
				Config: cfg,
				Runner: env.runner(m, cfg),
				Report: view.New(
					env.Stdout, view.Colored(cfg.Color, env.Stdout)),
				Logger: logger,
			}
			*code, err = c.Run(cmd.Context(), args)
			return err
		},
	}
	ff := cmd.Flags()
	ff.StringVarP(&dir, "dir", "C", ".",
		"directory inside the module whose test programs are run")
	ff.StringVar(&cfgPath, "config", "",
		"configuration file (default <module>/"+ConfigFile+")")
	ff.Var(&color, "color", "color the report: auto, always or never")
	ff.StringVar(&goCmd, "go", "go", "go command building a program")
	ff.BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	return cmd
}

// colorMode is a pflag.Value accepting the report's color modes only.
type colorMode string

var _ pflag.Value = (*colorMode)(nil)

func (m *colorMode) String() string { return string(*m) }

func (m *colorMode) Type() string { return "mode" }

func (m *colorMode) Set(s string) error {
	switch s {
	case ColorAuto, ColorAlways, ColorNever:
		*m = colorMode(s)
		return nil
	}
	return fmt.Errorf("unknown mode %q", s)
}

// Execute runs the gmbtest command with given arguments and returns
// the process exit code.  Errors are reported to env's Stderr.
func Execute(ctx context.Context, env *Env, args []string) int {
	code := ExitPassed
	cmd := NewCommand(env, &code)
	cmd.SetArgs(args)
	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(env.Stderr, err)
		if code == ExitPassed {
			code = ExitError
		}
	}
	return code
}
