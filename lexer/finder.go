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

package lexer

import "github.com/codeindex/codeindex/profile"

// IdentifierFinder applies a profile's identifier rule to arbitrary text
// without running the full comment/literal-aware state machine. It backs
// decl's "#include header" rule, which needs to pull identifier-regex
// matches out of an include path rather than a full source file.
type IdentifierFinder struct {
	ident identifierMatcher
}

// NewIdentifierFinder builds a finder for a profile's identifier rule.
func NewIdentifierFinder(p *profile.LanguageProfile) (*IdentifierFinder, error) {
	m, err := newIdentifierMatcher(p.IdentifierRule)
	if err != nil {
		return nil, &ConfigError{Field: "identifier_rule", Err: err}
	}
	return &IdentifierFinder{ident: m}, nil
}

// FindIdentifiers returns every non-overlapping identifier match in
// text, left to right, skipping any bytes that don't start a match.
func (f *IdentifierFinder) FindIdentifiers(text []byte) []string {
	var out []string
	pos := 0
	for pos < len(text) {
		if n, ok := f.ident.match(text, pos); ok && n > 0 {
			out = append(out, string(text[pos:pos+n]))
			pos += n
			continue
		}
		pos++
	}
	return out
}
