// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fx provides helpers to create module fixtures with test
// programs in temporary directories.
package fx

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// Dir spares in case of several file systems operation the repeating
// providing of testing.T and dir arguments.  A Dir is removed with its
// content at the end of the test it was created for.
type Dir struct {
	T    testing.TB
	Name string
}

// NewDir creates a new temp-dir leveraging t.TempDir.
func NewDir(t testing.TB) *Dir {
	return &Dir{T: t, Name: t.TempDir()}
}

// MkPath creates in this directory given variadic series of
// directories in form of a descending path and returns it.  MkPath
// fatales associated testing instance if the directories can not be
// created.
func (d *Dir) MkPath(dd ...string) (_ *Dir, path string) {
	d.T.Helper()
	path = filepath.Join(append([]string{d.Name}, dd...)...)
	if err := os.MkdirAll(path, 0711); err != nil {
		d.T.Fatalf("fx: dirs: create: %v", err)
	}
	return d, path
}

// MkFile adds a file with given slash separated module relative name
// and content to this directory creating missing parent directories.
// MkFile fatales if the file already exists or can't be written.
func (d *Dir) MkFile(name, content string) *Dir {
	d.T.Helper()
	fl := filepath.Join(d.Name, filepath.FromSlash(name))
	if _, err := os.Stat(fl); err == nil {
		d.T.Fatalf("fx: add file: %s: already exists", name)
	}
	if err := os.MkdirAll(filepath.Dir(fl), 0711); err != nil {
		d.T.Fatalf("fx: add file: dir: %v", err)
	}
	if err := os.WriteFile(fl, []byte(content), 0644); err != nil {
		d.T.Fatalf("fx: add file: write: %v", err)
	}
	return d
}

// MkMod adds to this directory a go.mod file with given module-name.
func (d *Dir) MkMod(module string) *Dir {
	return d.MkFile("go.mod", fmt.Sprintf("module %s\n\ngo 1.24\n", module))
}

var rePkgComment = regexp.MustCompile(`(?s)^(\s*?\n|// .*?\n|/\*.*\*/)*`)

// MkPkgFile adds a go file with given content to the package in given
// slash separated directory prefixing its content with a package
// declaration of given name if missing.
func (d *Dir) MkPkgFile(dir, pkg, name, content string) *Dir {
	if !strings.Contains(content, fmt.Sprintf("package %s", pkg)) {
		content = rePkgComment.ReplaceAllString(
			content, fmt.Sprintf("$1\npackage %s\n\n", pkg))
		content = strings.TrimLeft(content, "\n")
	}
	if !strings.HasSuffix(name, ".go") {
		name = fmt.Sprintf("%s.go", name)
	}
	return d.MkFile(dir+"/"+name, content)
}

// Program is the source of a minimal gmbtest test program.
const Program = "import \"github.com/slukits/gmbtest\"\n\n" +
	"var _ = gmbtest.Test(\"fixture\", func(t *gmbtest.T) {\n" +
	"\tt.Assert(2+2 == 4)\n" +
	"})\n\n" +
	"func main() { gmbtest.Main() }\n"

// MkProgram adds a gmbtest test program to given slash separated
// directory.
func (d *Dir) MkProgram(dir string) *Dir {
	return d.MkPkgFile(dir, "main", "main", Program)
}
