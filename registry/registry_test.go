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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeindex/codeindex/index"
)

func testConfig() Config {
	return Config{
		Profiles: map[string]string{
			"java": "profiles/java.json",
			"go":   "profiles/go.json",
		},
		Rules: []rawRule{
			{Match: matchClause{Glob: "**/*.java"}, Profile: "java"},
			{Match: matchClause{Glob: "**/*.go"}, Profile: "go"},
		},
	}
}

func TestNewRejectsUnknownProfileAlias(t *testing.T) {
	cfg := Config{
		Profiles: map[string]string{"java": "profiles/java.json"},
		Rules:    []rawRule{{Match: matchClause{Glob: "**/*.py"}, Profile: "python"}},
	}
	_, err := New("r1", cfg)
	require.Error(t, err, "want ConfigError for unknown alias")
	var cerr *ConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestNewRejectsInvalidGlob(t *testing.T) {
	cfg := Config{
		Profiles: map[string]string{"java": "profiles/java.json"},
		Rules:    []rawRule{{Match: matchClause{Glob: "[unterminated"}, Profile: "java"}},
	}
	_, err := New("r1", cfg)
	assert.Error(t, err, "want ConfigError for invalid glob")
}

func TestRouteFirstMatchWins(t *testing.T) {
	r, err := New("r1", testConfig())
	require.NoError(t, err)
	inputs := []index.Input{
		{Path: "/root/a.java", FileID: "a.java"},
		{Path: "/root/b.go", FileID: "b.go"},
		{Path: "/root/c.py", FileID: "c.py"},
	}
	groups, diags := r.Route(inputs)

	if assert.Len(t, groups["java"], 1) {
		assert.Equal(t, "a.java", groups["java"][0].FileID)
	}
	if assert.Len(t, groups["go"], 1) {
		assert.Equal(t, "b.go", groups["go"][0].FileID)
	}
	if assert.Len(t, diags, 1) {
		assert.Equal(t, index.CodeRegistryNoRule, diags[0].Code)
		assert.Equal(t, "c.py", diags[0].FileID)
	}
}

func TestRouteOrderedRulesPreferEarlierMatch(t *testing.T) {
	cfg := Config{
		Profiles: map[string]string{"special": "p1", "generic": "p2"},
		Rules: []rawRule{
			{Match: matchClause{Glob: "vendor/**/*.go"}, Profile: "special"},
			{Match: matchClause{Glob: "**/*.go"}, Profile: "generic"},
		},
	}
	r, err := New("r1", cfg)
	require.NoError(t, err)
	groups, _ := r.Route([]index.Input{
		{Path: "/root/vendor/x.go", FileID: "vendor/x.go"},
		{Path: "/root/main.go", FileID: "main.go"},
	})
	if assert.Len(t, groups["special"], 1) {
		assert.Equal(t, "vendor/x.go", groups["special"][0].FileID)
	}
	if assert.Len(t, groups["generic"], 1) {
		assert.Equal(t, "main.go", groups["generic"][0].FileID)
	}
}
