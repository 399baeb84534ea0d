// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Failing is a test program with one failing assertion.
package main

import "github.com/slukits/gmbtest"

var _ = gmbtest.Test("comparison", func(t *gmbtest.T) {
	t.Assert(1 > 2)
})

var _ = gmbtest.Test("addition", func(t *gmbtest.T) {
	gmbtest.This(t, func() int { return 2 + 3 }).Equals(5)
})

func main() { gmbtest.Main() }
