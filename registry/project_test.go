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

package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeindex/codeindex/index"
	"github.com/codeindex/codeindex/profile"
)

func javaProfile() *profile.LanguageProfile {
	return &profile.LanguageProfile{
		ProfileID:       "java",
		CaseSensitivity: profile.Sensitive,
		IdentifierRule: profile.IdentifierRule{
			Mode:    profile.RuleRegex,
			Pattern: "[A-Za-z_][A-Za-z0-9_]*",
		},
		CommentSyntax: profile.CommentSyntax{LineStarts: []string{"//"}},
		StopWords:     profile.StopWords{Mode: profile.StopWordsInline, Words: []string{"class"}},
	}
}

func goProfile() *profile.LanguageProfile {
	return &profile.LanguageProfile{
		ProfileID:       "go",
		CaseSensitivity: profile.Sensitive,
		IdentifierRule: profile.IdentifierRule{
			Mode:    profile.RuleRegex,
			Pattern: "[A-Za-z_][A-Za-z0-9_]*",
		},
		CommentSyntax: profile.CommentSyntax{LineStarts: []string{"//"}},
		StopWords:     profile.StopWords{Mode: profile.StopWordsInline, Words: []string{"package", "func"}},
	}
}

func TestBuildProjectRoutesAndAssembles(t *testing.T) {
	dir := t.TempDir()
	javaPath := filepath.Join(dir, "a.java")
	goPath := filepath.Join(dir, "b.go")
	require.NoError(t, os.WriteFile(javaPath, []byte("class Widget {}\n"), 0o600))
	require.NoError(t, os.WriteFile(goPath, []byte("package main\nfunc Run() {}\n"), 0o600))

	cfg := Config{
		Profiles: map[string]string{"java": "profiles/java.json", "go": "profiles/go.json"},
		Rules: []rawRule{
			{Match: matchClause{Glob: "**/*.java"}, Profile: "java"},
			{Match: matchClause{Glob: "**/*.go"}, Profile: "go"},
		},
	}
	reg, err := New("mixed", cfg)
	require.NoError(t, err)

	load := func(path string) (*profile.LanguageProfile, error) {
		switch path {
		case "profiles/java.json":
			return javaProfile(), nil
		case "profiles/go.json":
			return goProfile(), nil
		default:
			t.Fatalf("unexpected profile path %q", path)
			return nil, nil
		}
	}

	proj, err := reg.BuildProject(context.Background(), dir, []index.Input{
		{Path: javaPath, FileID: "a.java"},
		{Path: goPath, FileID: "b.go"},
	}, load, index.Options{GeneratedAt: "2026-01-01T00:00:00Z"})
	require.NoError(t, err)

	require.Len(t, proj.Indexes, 2)
	assert.Equal(t, "go", proj.Indexes[0].ProfileID, "Indexes not sorted by profile_id")
	assert.Equal(t, "java", proj.Indexes[1].ProfileID, "Indexes not sorted by profile_id")
	assert.Equal(t, "mixed", proj.RegistryID)
	assert.NotEmpty(t, proj.ProjectSHA256, "want a folded digest")
}

func TestBuildProjectEmitsNoRuleDiagnostic(t *testing.T) {
	dir := t.TempDir()
	pyPath := filepath.Join(dir, "c.py")
	require.NoError(t, os.WriteFile(pyPath, []byte("x = 1\n"), 0o600))

	cfg := Config{
		Profiles: map[string]string{"java": "profiles/java.json"},
		Rules:    []rawRule{{Match: matchClause{Glob: "**/*.java"}, Profile: "java"}},
	}
	reg, err := New("mixed", cfg)
	require.NoError(t, err)

	load := func(path string) (*profile.LanguageProfile, error) { return javaProfile(), nil }

	proj, err := reg.BuildProject(context.Background(), dir, []index.Input{
		{Path: pyPath, FileID: "c.py"},
	}, load, index.Options{GeneratedAt: "2026-01-01T00:00:00Z"})
	require.NoError(t, err)

	assert.Empty(t, proj.Indexes, "want no indexes for an unrouted-only input set")
	if assert.Len(t, proj.Diagnostics, 1) {
		assert.Equal(t, index.CodeRegistryNoRule, proj.Diagnostics[0].Code)
	}
}
