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

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/codeindex/codeindex/profile"
)

// identifierMatcher recognizes a maximal identifier run starting exactly
// at a byte position, returning its length in bytes, or ok=false if no
// identifier starts there. Implementations must never search ahead — a
// non-anchored match is a correctness bug that silently shifts every
// token position downstream of it.
type identifierMatcher interface {
	match(text []byte, pos int) (byteLen int, ok bool)
}

func newIdentifierMatcher(rule profile.IdentifierRule) (identifierMatcher, error) {
	switch rule.Mode {
	case profile.RuleRegex:
		if rule.Pattern == "" {
			return nil, fmt.Errorf("identifier_rule.pattern is required when mode is %q", profile.RuleRegex)
		}
		// Prepend \A so the match is pinned to the start of whatever
		// suffix we search, regardless of what the user's pattern does
		// with ^ (which, without (?m), already anchors to the start of
		// the searched string — \A makes that intent explicit and is
		// immune to a user pattern accidentally setting (?m)).
		re, err := regexp.Compile(`\A(?:` + rule.Pattern + `)`)
		if err != nil {
			return nil, fmt.Errorf("identifier_rule.pattern: %w", err)
		}
		return &regexMatcher{re: re}, nil
	case profile.RuleUnicodeIdentifier:
		return &unicodeMatcher{}, nil
	default:
		return nil, fmt.Errorf("unknown identifier_rule.mode %q", rule.Mode)
	}
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m *regexMatcher) match(text []byte, pos int) (int, bool) {
	loc := m.re.FindIndex(text[pos:])
	if loc == nil || loc[0] != 0 || loc[1] == 0 {
		return 0, false
	}
	return loc[1], true
}

// unicodeMatcher implements identifier_rule.mode=unicode_identifier: an
// identifier is a maximal run of grapheme clusters whose base rune is a
// Unicode letter, digit, or underscore, and which does not start with a
// digit. Grapheme clusters (rather than bare runes) are used so that a
// base letter plus its combining marks count as one logical character.
type unicodeMatcher struct{}

func (m *unicodeMatcher) match(text []byte, pos int) (int, bool) {
	rest := text[pos:]
	gr := uniseg.NewGraphemes(rest)
	if !gr.Next() {
		return 0, false
	}
	first := gr.Runes()
	if len(first) == 0 || !isIdentStart(first[0]) {
		return 0, false
	}
	end := len(gr.Bytes())
	for gr.Next() {
		rs := gr.Runes()
		if len(rs) == 0 || !isIdentContinue(rs[0]) {
			break
		}
		end += len(gr.Bytes())
	}
	return end, true
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
