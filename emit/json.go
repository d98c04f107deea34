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

// Package emit implements canonical JSON serialisation: stable field
// order, no HTML-escaping, and deterministic byte output for a given
// SymbolIndex or ProjectIndex value.
package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/codeindex/codeindex/index"
)

// Indent is the canonical indentation width: two-space indented JSON.
const Indent = "  "

// SymbolIndex writes the canonical JSON encoding of idx to w. Struct
// field declaration order in index.SymbolIndex already matches the
// schema's documented key order, and encoding/json preserves it; the only
// non-default setting needed is disabling HTML-escaping, since identifier
// text can legitimately contain '<', '>', or '&' in languages that permit
// them in operators or comments.
func SymbolIndex(w io.Writer, idx *index.SymbolIndex) error {
	return encode(w, idx)
}

// ProjectIndex writes the canonical JSON encoding of a multi-profile
// project run to w.
func ProjectIndex(w io.Writer, proj *index.ProjectIndex) error {
	return encode(w, proj)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("emit: %w", err)
	}
	return nil
}

// Bytes returns the canonical JSON encoding as a byte slice, trimming the
// trailing newline encoding/json.Encoder always appends, so callers that
// want to control trailing whitespace (golden-file comparisons, for
// instance) get exact control over it.
func Bytes(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
