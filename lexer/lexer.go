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

// Package lexer implements a profile-driven, comment/literal-aware lexer:
// a state machine that turns a UTF-8 text into a lazy, finite,
// non-restartable sequence of identifier and punctuation tokens, honouring
// each language profile's comment and literal syntax.
package lexer

import (
	"bytes"
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/codeindex/codeindex/profile"
	"github.com/codeindex/codeindex/token"
)

// ConfigError is returned when a profile cannot be used to construct a
// Lexer: a missing required field, an unknown identifier_rule.mode, or
// an uncompilable pattern. This is always a construction-time failure —
// lexing itself never fails at runtime.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("lexer config: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

type state int

const (
	stateDefault state = iota
	stateLineComment
	stateBlockComment
	stateString
	stateChar
)

// Lexer turns one file's text into a token stream per a single language
// profile. A Lexer instance is single-use: call All once and consume the
// iterator to completion (or abandon it early — range-over-func supports
// that).
type Lexer struct {
	profile *profile.LanguageProfile
	text    []byte
	ident   identifierMatcher

	stringDelims []rune
	charDelims   []rune
	escapeChar   rune
}

// New constructs a Lexer for the given profile and text. It fails only
// for configuration reasons; any byte sequence is accepted as text,
// including invalid UTF-8 (decoded with utf8.DecodeRune's
// replacement-character behavior).
func New(p *profile.LanguageProfile, text []byte) (*Lexer, error) {
	m, err := newIdentifierMatcher(p.IdentifierRule)
	if err != nil {
		return nil, &ConfigError{Field: "identifier_rule", Err: err}
	}
	return &Lexer{
		profile:      p,
		text:         text,
		ident:        m,
		stringDelims: p.LiteralSyntax.StringDelims.Runes(),
		charDelims:   p.LiteralSyntax.CharDelims.Runes(),
		escapeChar:   rune(p.LiteralSyntax.EscapeChar),
	}, nil
}

// All returns the lazy token sequence for the lexer's text. It is
// deterministic: identical (text, profile) pairs always yield a
// bit-identical sequence, regardless of platform or iteration order.
func (l *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		l.run(yield)
	}
}

// runeAt decodes the rune starting at byte offset pos, returning the
// replacement character and length 1 for invalid UTF-8 (lexing tolerates
// malformed input rather than aborting on it).
func (l *Lexer) runeAt(pos int) (r rune, size int, ok bool) {
	if pos >= len(l.text) {
		return 0, 0, false
	}
	r, size = utf8.DecodeRune(l.text[pos:])
	return r, size, true
}

func (l *Lexer) run(yield func(token.Token) bool) {
	pos := 0
	cur := token.NewCursor()
	st := stateDefault
	var blockEndIdx int
	var strDelim rune

	emit := func(kind token.Kind, text string, startLine, startCol, startByte int) bool {
		t := token.Token{
			Kind:      kind,
			Text:      text,
			Line:      startLine,
			ColStart:  startCol,
			ColEnd:    cur.Col,
			ByteStart: startByte,
			ByteEnd:   cur.Byte,
		}
		return yield(t)
	}

	advance := func() (rune, int, bool) {
		r, size, ok := l.runeAt(pos)
		if !ok {
			return 0, 0, false
		}
		pos += size
		cur.Advance(r, size)
		return r, size, true
	}

	for pos < len(l.text) {
		switch st {
		case stateDefault:
			startLine, startCol, startByte := cur.Line, cur.Col, cur.Byte

			if idx, marker := matchAny(l.text, pos, l.profile.CommentSyntax.LineStarts); idx >= 0 {
				advanceBytes(&pos, &cur, l.text, len(marker))
				st = stateLineComment
				continue
			}
			if idx, marker := matchAny(l.text, pos, l.profile.CommentSyntax.BlockStart); idx >= 0 {
				advanceBytes(&pos, &cur, l.text, len(marker))
				st = stateBlockComment
				blockEndIdx = idx
				continue
			}
			if l.profile.LiteralSyntax.ExcludeLiterals && runeIn(l.text, pos, l.stringDelims) {
				r, _, _ := advance()
				st = stateString
				strDelim = r
				continue
			}
			if l.profile.LiteralSyntax.ExcludeLiterals && runeIn(l.text, pos, l.charDelims) {
				r, _, _ := advance()
				st = stateChar
				strDelim = r
				continue
			}
			if n, ok := l.ident.match(l.text, pos); ok {
				text := string(l.text[pos : pos+n])
				end := pos + n
				for pos < end {
					advance()
				}
				if !emit(token.Identifier, text, startLine, startCol, startByte) {
					return
				}
				continue
			}

			// Punctuation: only "." and "::" are surfaced as tokens; any
			// other byte is simply consumed.
			if l.text[pos] == '.' {
				advance()
				if !emit(token.Punct, ".", startLine, startCol, startByte) {
					return
				}
				continue
			}
			if l.text[pos] == ':' && pos+1 < len(l.text) && l.text[pos+1] == ':' {
				advance()
				advance()
				if !emit(token.Punct, "::", startLine, startCol, startByte) {
					return
				}
				continue
			}
			advance()

		case stateLineComment:
			r, _, ok := advance()
			if !ok {
				return
			}
			if r == '\n' || r == '\r' {
				st = stateDefault
			}

		case stateBlockComment:
			end := l.profile.CommentSyntax.BlockEnd[blockEndIdx]
			if bytes.HasPrefix(l.text[pos:], []byte(end)) {
				advanceBytes(&pos, &cur, l.text, len(end))
				st = stateDefault
				continue
			}
			if _, _, ok := advance(); !ok {
				return // unterminated block comment: tolerated, consume to EOF.
			}

		case stateString:
			st = l.scanLiteral(&pos, &cur, strDelim, l.profile.LiteralSyntax.AllowMultilineStrings, stateString)

		case stateChar:
			st = l.scanLiteral(&pos, &cur, strDelim, false, stateChar)
		}
	}
}

// scanLiteral advances past a single rune within a String/Char state,
// returning the state to continue in: stateDefault once an unescaped
// matching delimiter is seen, stateDefault tolerantly on a disallowed
// bare newline or at EOF, or self (the literal's own state) to keep
// scanning.
func (l *Lexer) scanLiteral(pos *int, cur *token.Cursor, delim rune, allowMultiline bool, self state) state {
	r, size, ok := l.runeAt(*pos)
	if !ok {
		return stateDefault // unterminated literal at EOF: tolerated.
	}
	if r == l.escapeChar && l.escapeChar != 0 {
		*pos += size
		cur.Advance(r, size)
		// consume one more rune (the escaped character), if any remains;
		// an unpaired trailing escape at EOF is accepted.
		if r2, size2, ok2 := l.runeAt(*pos); ok2 {
			*pos += size2
			cur.Advance(r2, size2)
		}
		return self
	}
	*pos += size
	cur.Advance(r, size)
	if r == delim {
		return stateDefault
	}
	if (r == '\n' || r == '\r') && !allowMultiline {
		return stateDefault
	}
	return self
}

func matchAny(text []byte, pos int, markers []string) (idx int, matched string) {
	for i, m := range markers {
		if m == "" {
			continue
		}
		if bytes.HasPrefix(text[pos:], []byte(m)) {
			return i, m
		}
	}
	return -1, ""
}

func runeIn(text []byte, pos int, set []rune) bool {
	if len(set) == 0 {
		return false
	}
	r, _ := utf8.DecodeRune(text[pos:])
	for _, c := range set {
		if c == r {
			return true
		}
	}
	return false
}

func advanceBytes(pos *int, cur *token.Cursor, text []byte, n int) {
	end := *pos + n
	for *pos < end {
		r, size := utf8.DecodeRune(text[*pos:])
		*pos += size
		cur.Advance(r, size)
	}
}
