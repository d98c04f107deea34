// Copyright 2020-2022 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package golden provides a framework for writing file-based golden tests
// over source fixtures and their expected index output.
//
// The primary entry point is [Corpus]. Define a new corpus in an ordinary
// Go test body and call [Corpus.Run] to execute it. Corpora can be
// "refreshed" to update golden output with freshly generated data: run the
// test with the environment variable [Corpus.Refresh] names set to a file
// glob for the test cases to regenerate.
package golden

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a test data corpus: a table-driven test where the
// "table" lives on disk as a directory tree of fixture files.
type Corpus struct {
	// Root is the root of the test data directory, relative to the
	// directory of the file that calls [Corpus.Run].
	Root string

	// Refresh is the environment variable checked to decide whether to
	// run in refresh mode.
	Refresh string

	// Extensions lists the file extensions (without a dot) that define a
	// test case, e.g. "java".
	Extensions []string

	// Outputs lists the expected outputs for each test case, found at
	// <case>.<Output.Extension>. A missing output file is treated as an
	// expectation of empty output.
	Outputs []Output
}

// Output represents one expected output of a test case.
type Output struct {
	// Extension is appended to the test case's file name to find its
	// golden file; for case "foo.java" and Extension "index.json" the
	// runner looks for "foo.java.index.json".
	Extension string

	// Compare is the comparison function for this output. Defaults to
	// [CompareAndDiff] when nil.
	Compare CompareFunc
}

// CompareFunc compares got against want, returning an empty string if they
// match or a human-readable diff otherwise.
type CompareFunc func(got, want string) string

// CompareAndDiff is the default [CompareFunc]: a unified diff when the
// strings differ, empty string when they match.
func CompareAndDiff(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// Run executes a golden test: test runs a single case, writing its
// output(s) to the entries of outputs in the order Corpus.Outputs
// declares them. test should write to outputs as early as possible so
// that, if it panics partway through, whatever was already produced is
// still visible to the diff.
func (c Corpus) Run(t *testing.T, test func(t *testing.T, path, text string, outputs []string)) {
	testDir := callerDir(1)
	root := filepath.Join(testDir, c.Root)

	var cases []string
	err := filepath.Walk(root, func(p string, fi fs.FileInfo, err error) error {
		if err != nil || fi.IsDir() {
			return err
		}
		for _, ext := range c.Extensions {
			if strings.HasSuffix(p, "."+ext) {
				cases = append(cases, p)
				break
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("golden: error walking testdata root %q: %v", root, err)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid refresh glob %q", refresh)
		}
	}

	for _, path := range cases {
		testName, _ := filepath.Rel(root, path)
		testName = filepath.ToSlash(testName)
		name, _ := filepath.Rel(testDir, path)
		name = filepath.ToSlash(name)

		t.Run(testName, func(t *testing.T) {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: error reading case file %q: %v", path, err)
			}

			results := make([]string, len(c.Outputs))
			panicked, stack := catch(func() { test(t, name, string(data), results) })
			if panicked != nil {
				t.Logf("case panicked: %v\n%s", panicked, stack)
				t.Fail()
			}

			matched, _ := doublestar.Match(refresh, name)
			for i, out := range c.Outputs {
				if panicked != nil && results[i] == "" {
					continue
				}
				goldenPath := path + "." + out.Extension

				if refresh == "" || !matched {
					want, err := os.ReadFile(goldenPath)
					if err != nil && !errors.Is(err, os.ErrNotExist) {
						t.Logf("golden: error reading golden file %q: %v", goldenPath, err)
						t.Fail()
						continue
					}
					cmp := out.Compare
					if cmp == nil {
						cmp = CompareAndDiff
					}
					if diff := cmp(results[i], string(want)); diff != "" {
						t.Logf("output mismatch for %q:\n%s", goldenPath, diff)
						t.Fail()
					}
					continue
				}

				if results[i] == "" {
					if err := os.Remove(goldenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
						t.Logf("golden: error removing golden file %q: %v", goldenPath, err)
						t.Fail()
					}
					continue
				}
				if err := os.WriteFile(goldenPath, []byte(results[i]), 0o600); err != nil {
					t.Logf("golden: error writing golden file %q: %v", goldenPath, err)
					t.Fail()
				}
			}
		})
	}
}

func catch(cb func()) (recovered any, stack []byte) {
	defer func() {
		recovered = recover()
		if recovered != nil {
			stack = debug.Stack()
		}
	}()
	cb()
	return
}

// callerDir returns the directory of the source file skip frames above the
// caller of this function.
func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 1)
	if !ok {
		panic("golden: could not determine caller")
	}
	return filepath.Dir(file)
}
