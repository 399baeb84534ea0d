// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Panicking is a test program whose test panics uncaught.
package main

import "github.com/slukits/gmbtest"

var _ = gmbtest.Test("uncaught", func(t *gmbtest.T) {
	var m map[string]int
	m["x"] = 1
})

func main() { gmbtest.Main() }
