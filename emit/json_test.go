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

package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeindex/codeindex/index"
)

func sampleIndex() *index.SymbolIndex {
	byteStart, byteEnd := 10, 13
	return &index.SymbolIndex{
		SchemaVersion: index.SchemaVersion,
		ProfileID:     "java",
		Ordering:      index.Ordering,
		GeneratedAt:   "2026-01-01T00:00:00Z",
		Files: []index.FileSummary{
			{FileID: "a.java", Lines: 3, Bytes: 40, SHA256: "deadbeef"},
		},
		Symbols: []index.SymbolEntry{
			{
				Identifier: "foo<bar>",
				Occurrences: []index.Occurrence{
					{FileID: "a.java", Line: 2, ColStart: 1, ColEnd: 4, ByteStart: &byteStart, ByteEnd: &byteEnd},
				},
				Stats: index.SymbolStats{OccurrenceCount: 1, UniqueLineCount: 1},
			},
		},
		Diagnostics: []index.Diagnostic{},
	}
}

func TestBytesIsDeterministic(t *testing.T) {
	idx := sampleIndex()
	got1, err := Bytes(idx)
	require.NoError(t, err)
	got2, err := Bytes(idx)
	require.NoError(t, err)
	assert.Equal(t, string(got1), string(got2), "Bytes() is not deterministic across calls")
}

func TestBytesDoesNotEscapeHTML(t *testing.T) {
	out, err := Bytes(sampleIndex())
	require.NoError(t, err)
	assert.Contains(t, string(out), "foo<bar>", "want literal angle brackets unescaped")
	assert.NotContains(t, string(out), `\u003c`, "want SetEscapeHTML(false) to suppress HTML escaping")
}

func TestBytesTrimsTrailingNewline(t *testing.T) {
	out, err := Bytes(sampleIndex())
	require.NoError(t, err)
	assert.False(t, strings.HasSuffix(string(out), "\n"), "Bytes() output retains a trailing newline, want it trimmed")
}

func TestBytesFieldOrderMatchesDeclaration(t *testing.T) {
	out, err := Bytes(sampleIndex())
	require.NoError(t, err)
	s := string(out)
	schemaIdx := strings.Index(s, `"schema_version"`)
	profileIdx := strings.Index(s, `"profile_id"`)
	filesIdx := strings.Index(s, `"files"`)
	symbolsIdx := strings.Index(s, `"symbols"`)
	assert.True(t, schemaIdx < profileIdx && profileIdx < filesIdx && filesIdx < symbolsIdx,
		"field order = %s, want schema_version < profile_id < files < symbols", s)
}

func TestProjectIndexEncodesNestedIndexes(t *testing.T) {
	proj := &index.ProjectIndex{
		SchemaVersion: index.SchemaVersion,
		ProjectRoot:   "/repo",
		GeneratedAt:   "2026-01-01T00:00:00Z",
		RegistryID:    "mixed",
		Indexes:       []index.SymbolIndex{*sampleIndex()},
		Diagnostics:   []index.Diagnostic{},
	}
	out, err := Bytes(proj)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"registry_id": "mixed"`)
	assert.Contains(t, string(out), `"indexes"`)
}
