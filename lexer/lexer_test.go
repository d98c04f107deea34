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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeindex/codeindex/profile"
	"github.com/codeindex/codeindex/token"
)

func javaLikeProfile() *profile.LanguageProfile {
	return &profile.LanguageProfile{
		ProfileID:       "test-java",
		CaseSensitivity: profile.Sensitive,
		IdentifierRule: profile.IdentifierRule{
			Mode:    profile.RuleRegex,
			Pattern: "[A-Za-z_][A-Za-z0-9_]*",
		},
		CommentSyntax: profile.CommentSyntax{
			LineStarts: []string{"//"},
			BlockStart: []string{"/*"},
			BlockEnd:   []string{"*/"},
		},
		LiteralSyntax: profile.LiteralSyntax{
			ExcludeLiterals: true,
			StringDelims:    profile.CharSet{'"'},
			CharDelims:      profile.CharSet{'\''},
			EscapeChar:      '\\',
		},
	}
}

func tokenTexts(t *testing.T, text string, kind token.Kind) []string {
	t.Helper()
	lx, err := New(javaLikeProfile(), []byte(text))
	require.NoError(t, err)
	var out []string
	for tok := range lx.All() {
		if tok.Kind == kind {
			out = append(out, tok.Text)
		}
	}
	return out
}

func TestLexerIdentifiers(t *testing.T) {
	got := tokenTexts(t, "class Hello { void main(String[] args) {} }", token.Identifier)
	assert.Equal(t, []string{"class", "Hello", "void", "main", "String", "args"}, got)
}

func TestLexerLineCommentSkipsIdentifiers(t *testing.T) {
	got := tokenTexts(t, "foo // bar baz\nqux", token.Identifier)
	assert.Equal(t, []string{"foo", "qux"}, got)
}

func TestLexerBlockCommentSkipsIdentifiers(t *testing.T) {
	got := tokenTexts(t, "foo /* bar\nbaz */ qux", token.Identifier)
	assert.Equal(t, []string{"foo", "qux"}, got)
}

func TestLexerStringLiteralSkipsIdentifiers(t *testing.T) {
	got := tokenTexts(t, `foo "bar baz" qux`, token.Identifier)
	assert.Equal(t, []string{"foo", "qux"}, got)
}

func TestLexerStringLiteralHandlesEscapes(t *testing.T) {
	got := tokenTexts(t, `foo "bar \" baz" qux`, token.Identifier)
	assert.Equal(t, []string{"foo", "qux"}, got)
}

func TestLexerCharLiteralDoesNotSpanLines(t *testing.T) {
	// An unterminated char literal bails out at the bare newline rather
	// than swallowing the rest of the file.
	got := tokenTexts(t, "foo '\nbar", token.Identifier)
	assert.Equal(t, []string{"foo", "bar"}, got)
}

func TestLexerPunctuation(t *testing.T) {
	got := tokenTexts(t, "a.b::c", token.Punct)
	assert.Equal(t, []string{".", "::"}, got)
}

func TestLexerPositionsAreOneBased(t *testing.T) {
	lx, err := New(javaLikeProfile(), []byte("  foo"))
	require.NoError(t, err)
	var first token.Token
	for tok := range lx.All() {
		first = tok
		break
	}
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, 3, first.ColStart)
	assert.Equal(t, 6, first.ColEnd)
}

func TestLexerEarlyStopViaBreak(t *testing.T) {
	lx, err := New(javaLikeProfile(), []byte("a b c d e"))
	require.NoError(t, err)
	var seen []string
	for tok := range lx.All() {
		seen = append(seen, tok.Text)
		if len(seen) == 2 {
			break
		}
	}
	require.Len(t, seen, 2, "early break did not stop iteration")
}
