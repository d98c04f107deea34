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

// Package profile defines LanguageProfile, the declarative, immutable data
// that parametrises the lexer and declaration-discovery pass for one
// language. Profiles are loaded once per run and never mutated afterward,
// so they may be shared freely across worker goroutines.
package profile

// CaseSensitivity controls whether stop-word lookups fold ASCII case.
// Declared-set membership and symbol keys are always case-sensitive.
type CaseSensitivity string

const (
	Sensitive   CaseSensitivity = "sensitive"
	Insensitive CaseSensitivity = "insensitive"
)

// NormalizationMode controls how identifier text is normalized before
// comparison (not before emission — occurrences always carry the original
// spelling in Token.Text).
type NormalizationMode string

const (
	NormalizeNone           NormalizationMode = "none"
	NormalizeNFKC           NormalizationMode = "nfkc"
	NormalizeLowercaseASCII NormalizationMode = "lowercase_ascii"
)

// Normalization describes how an identifier's comparison key is derived
// from its original spelling.
type Normalization struct {
	Mode                     NormalizationMode `json:"mode"`
	PreserveOriginalSpelling bool              `json:"preserve_original_spelling"`
}

// IdentifierRuleMode selects how the lexer recognizes identifiers.
type IdentifierRuleMode string

const (
	// RuleRegex matches identifiers with an anchored regular expression.
	// This is the baseline mode; it is always supported.
	RuleRegex IdentifierRuleMode = "regex"
	// RuleUnicodeIdentifier matches identifiers using Unicode letter/digit
	// classification plus grapheme-cluster boundaries, for profiles that
	// don't want to hand-write a regex covering every script.
	RuleUnicodeIdentifier IdentifierRuleMode = "unicode_identifier"
)

// IdentifierRule selects and parametrises identifier recognition.
type IdentifierRule struct {
	Mode    IdentifierRuleMode `json:"mode"`
	Pattern string             `json:"pattern,omitempty"`
}

// StopWordsMode selects how the stop-word set is populated.
type StopWordsMode string

const (
	StopWordsInline StopWordsMode = "inline"
	StopWordsURI    StopWordsMode = "uri"
	StopWordsNone   StopWordsMode = "none"
)

// StopWords describes where a profile's stop-word set comes from.
type StopWords struct {
	Mode  StopWordsMode `json:"mode"`
	Words []string      `json:"words,omitempty"`
	URI   string        `json:"uri,omitempty"`
}

// CommentSyntax lists the lexical markers for line and block comments.
// BlockStart[i] is paired with BlockEnd[i].
type CommentSyntax struct {
	LineStarts []string `json:"line_starts,omitempty"`
	BlockStart []string `json:"block_start,omitempty"`
	BlockEnd   []string `json:"block_end,omitempty"`
}

// LiteralSyntax describes string/char literal delimiters and escaping.
type LiteralSyntax struct {
	ExcludeLiterals       bool     `json:"exclude_literals"`
	StringDelims          CharSet  `json:"string_delims,omitempty"`
	CharDelims            CharSet  `json:"char_delims,omitempty"`
	EscapeChar            Char     `json:"escape_char,omitempty"`
	AllowMultilineStrings bool     `json:"allow_multiline_strings"`
}

// QualifiedIdentifierMode controls which punctuation-joined identifier
// pairs are admitted by declaration discovery.
type QualifiedIdentifierMode string

const (
	QualifiedNone        QualifiedIdentifierMode = "none"
	QualifiedDot         QualifiedIdentifierMode = "dot"
	QualifiedScope       QualifiedIdentifierMode = "scope"
	QualifiedDotAndScope QualifiedIdentifierMode = "dot_and_scope"
)

// SymbolPolicyMode selects whether all identifiers or only declared ones
// populate the index.
type SymbolPolicyMode string

const (
	SymbolAll      SymbolPolicyMode = "all"
	SymbolDeclared SymbolPolicyMode = "declared"
)

// SymbolPolicy is the optional, overridable symbol-selection policy.
type SymbolPolicy struct {
	Mode                           SymbolPolicyMode        `json:"mode,omitempty"`
	ExcludeSingleLetterIdentifiers bool                    `json:"exclude_single_letter_identifiers"`
	IncludeQualifiedIdentifiers    QualifiedIdentifierMode `json:"include_qualified_identifiers,omitempty"`
	IncludeIncludeHeaders          bool                    `json:"include_include_headers"`
}

// DefaultSymbolPolicy is applied for any field the profile and CLI both
// leave unset.
var DefaultSymbolPolicy = SymbolPolicy{
	Mode:                           SymbolAll,
	ExcludeSingleLetterIdentifiers: false,
	IncludeQualifiedIdentifiers:    QualifiedNone,
	IncludeIncludeHeaders:          false,
}

// LanguageProfile is the complete, immutable lexical specification of one
// language. Profiles are loaded once per run from JSON (tolerating
// trailing commas and "//" comments) and shared read-only thereafter.
type LanguageProfile struct {
	ProfileID       string          `json:"profile_id"`
	Name            string          `json:"name"`
	Version         string          `json:"version,omitempty"`
	CaseSensitivity CaseSensitivity `json:"case_sensitivity"`
	Normalization   Normalization   `json:"normalization"`
	IdentifierRule  IdentifierRule  `json:"identifier_rule"`
	StopWords       StopWords       `json:"stop_words"`
	CommentSyntax   CommentSyntax   `json:"comment_syntax"`
	LiteralSyntax   LiteralSyntax   `json:"literal_syntax"`
	SymbolPolicy    *SymbolPolicy   `json:"symbol_policy,omitempty"`
}

// EffectiveSymbolPolicy merges the profile's optional policy over
// DefaultSymbolPolicy, field by field, without regard to any CLI
// override (callers that also have CLI overrides apply those on top via
// index.ResolveOptions).
func (p *LanguageProfile) EffectiveSymbolPolicy() SymbolPolicy {
	eff := DefaultSymbolPolicy
	if p.SymbolPolicy == nil {
		return eff
	}
	sp := p.SymbolPolicy
	if sp.Mode != "" {
		eff.Mode = sp.Mode
	}
	eff.ExcludeSingleLetterIdentifiers = sp.ExcludeSingleLetterIdentifiers
	if sp.IncludeQualifiedIdentifiers != "" {
		eff.IncludeQualifiedIdentifiers = sp.IncludeQualifiedIdentifiers
	}
	eff.IncludeIncludeHeaders = sp.IncludeIncludeHeaders
	return eff
}
