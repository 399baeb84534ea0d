/*
Gmbtest runs the gmbtest test programs of a go module one after another
and reports if they passed.  A test program is a main package importing
github.com/slukits/gmbtest whose exit code tells if all its tests
passed.

Usage:

	gmbtest [flags] [program-dir...]

Without program directories gmbtest runs the programs listed in the
module's .gmbtest.yaml or if there are none every test program found in
the module.  A program is built with "go build" in the module's root
directory and its binary is run while its output is passed through.  A
program exceeding the configured timeout is killed.  Finally a summary
is printed:

	PASS ./tests/arith (412ms)
	FAIL ./tests/stack (exit 1, 398ms)
	2 programs, 1 failed

The configuration file may set:

	programs: [./tests/arith, ./tests/stack]
	color: auto      # auto, always or never
	go: go           # go command building a program
	timeout: 1m      # limit of a single program's run

gmbtest exits with 0 if all programs passed, with 1 if one of them
failed and with 2 if the programs couldn't be determined.
*/
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/slukits/gmbtest/cmd/gmbtest/controller"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	code := controller.Execute(ctx, &controller.Env{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, os.Args[1:])
	cancel()
	os.Exit(code)
}
