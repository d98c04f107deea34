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

// Package decl implements a declaration-discovery heuristic: a purely
// lexical pass over a token stream that guesses which identifiers are
// "declared" in a file, trading precision for being language-agnostic. It
// is deliberately not a parser: the cost of staying lexical is that some
// declarations are missed and some non-declarations (e.g. `return foo`)
// are over-admitted. That over-admission is intentional and must not be
// "fixed".
package decl

import (
	"strings"

	"github.com/codeindex/codeindex/profile"
	"github.com/codeindex/codeindex/token"
)

// reservedModifiers are never treated as a type-like token in rule 3,
// regardless of whether the profile's stop-word set happens to list them.
var reservedModifiers = map[string]struct{}{
	"public":    {},
	"private":   {},
	"protected": {},
	"static":    {},
	"final":     {},
}

// IdentifierMatcher recognizes identifier-regex matches inside arbitrary
// text, used by rule 5 to pull identifiers out of an #include path. It is
// satisfied by *lexer.IdentifierFinder.
type IdentifierMatcher interface {
	FindIdentifiers(text []byte) []string
}

// Discover returns the set of identifiers admitted for one file, under
// the given stop-word set and effective symbol policy. Discovery for a
// run is the union of this set across every input file sharing a
// profile — callers merge the per-file sets themselves. ident is only
// consulted when policy.IncludeIncludeHeaders is set; callers that never
// enable that policy may pass nil.
func Discover(tokens []token.Token, stop *profile.StopWordSet, policy profile.SymbolPolicy, text []byte, ident IdentifierMatcher) map[string]struct{} {
	admitted := make(map[string]struct{})

	idents := identifierTokens(tokens)

	admitPackageAndClass(idents, stop, admitted)
	admitTypedDeclarations(idents, stop, policy, admitted)

	if policy.IncludeQualifiedIdentifiers != profile.QualifiedNone {
		admitQualified(tokens, stop, policy.IncludeQualifiedIdentifiers, admitted)
	}
	if policy.IncludeIncludeHeaders && ident != nil {
		admitIncludeHeaders(text, ident, admitted)
	}

	return admitted
}

func identifierTokens(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == token.Identifier {
			out = append(out, t)
		}
	}
	return out
}

// admitPackageAndClass implements rules 1 and 2: whenever a token equals
// "package" or "class", admit the immediately following identifier.
func admitPackageAndClass(idents []token.Token, stop *profile.StopWordSet, admitted map[string]struct{}) {
	for i := 0; i+1 < len(idents); i++ {
		switch idents[i].Text {
		case "package", "class":
			n := idents[i+1].Text
			if !stop.Contains(n) {
				admitted[n] = struct{}{}
			}
		}
	}
}

// admitTypedDeclarations implements rule 3: for every adjacent pair
// (T, N) in the identifier sequence, admit N when N is not a stop word,
// T is either a stop word (a keyword, treated as a type-like token such
// as "int"/"void") or any other non-empty identifier (treated as a
// user-defined type), T is not a reserved modifier, and the
// single-letter policy permits N.
//
// Every real token is either a stop word or a non-stop, non-empty
// identifier, so the "T is ... or ..." clause holds for any T; this is
// intentional over-admission — e.g. "return foo" admits "foo" since
// "return" plays the role of T. Only the reserved-modifier exclusion and
// the stop-word/single-letter checks on N actually narrow the set.
func admitTypedDeclarations(idents []token.Token, stop *profile.StopWordSet, policy profile.SymbolPolicy, admitted map[string]struct{}) {
	for i := 0; i+1 < len(idents); i++ {
		t := idents[i].Text
		n := idents[i+1].Text

		if stop.Contains(n) {
			continue
		}
		if _, reserved := reservedModifiers[strings.ToLower(t)]; reserved {
			continue
		}
		if policy.ExcludeSingleLetterIdentifiers && len([]rune(n)) == 1 {
			continue
		}
		admitted[n] = struct{}{}
	}
}

