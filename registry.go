// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gmbtest

// Procedure is the body of a test.  It is passed the T instance which
// carries the test's name and reports its assertions.
type Procedure func(t *T)

// Entry is a registered test.  An Entry is immutable, its identity is
// its position in the registry.
type Entry struct {
	name      string
	procedure Procedure
}

// Name returns the name a test was registered with.
func (e Entry) Name() string { return e.name }

// Procedure returns the body of a registered test.
func (e Entry) Procedure() Procedure { return e.procedure }

// registry is an append-only ordered list of test entries.  Registering
// the same name twice results in two independent entries.
type registry struct {
	entries []Entry
}

func (r *registry) add(name string, p Procedure) Entry {
	e := Entry{name: name, procedure: p}
	r.entries = append(r.entries, e)
	return e
}

// all returns a copy of the registered entries in registration order.
func (r *registry) all() []Entry {
	ee := make([]Entry, len(r.entries))
	copy(ee, r.entries)
	return ee
}

func (r *registry) len() int { return len(r.entries) }
