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

package profile

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/codeindex/codeindex/internal/jsonc"
)

// LoadError is returned for any malformed profile: this is a configuration
// error and must abort the run before any output is written.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("profile %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("profile: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load decodes a LanguageProfile from raw JSONC bytes (JSON tolerating
// trailing commas and "//" line comments) and validates it, returning a
// LoadError describing the first problem found.
func Load(path string, data []byte) (*LanguageProfile, error) {
	stripped := jsonc.Strip(data)

	var p LanguageProfile
	if err := json.Unmarshal(stripped, &p); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := validate(&p); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return &p, nil
}

func validate(p *LanguageProfile) error {
	if p.ProfileID == "" {
		return fmt.Errorf("profile_id is required")
	}
	if p.CaseSensitivity != Sensitive && p.CaseSensitivity != Insensitive {
		return fmt.Errorf("case_sensitivity must be %q or %q, got %q", Sensitive, Insensitive, p.CaseSensitivity)
	}
	switch p.IdentifierRule.Mode {
	case RuleRegex:
		if p.IdentifierRule.Pattern == "" {
			return fmt.Errorf("identifier_rule.pattern is required when mode is %q", RuleRegex)
		}
		if _, err := regexp.Compile(p.IdentifierRule.Pattern); err != nil {
			return fmt.Errorf("identifier_rule.pattern does not compile: %w", err)
		}
	case RuleUnicodeIdentifier:
		// no pattern required.
	default:
		return fmt.Errorf("unknown identifier_rule.mode %q", p.IdentifierRule.Mode)
	}
	switch p.StopWords.Mode {
	case StopWordsInline, StopWordsURI, StopWordsNone:
	default:
		return fmt.Errorf("unknown stop_words.mode %q", p.StopWords.Mode)
	}
	if len(p.CommentSyntax.BlockStart) != len(p.CommentSyntax.BlockEnd) {
		return fmt.Errorf("comment_syntax.block_start and block_end must be 1-to-1 aligned (%d vs %d)",
			len(p.CommentSyntax.BlockStart), len(p.CommentSyntax.BlockEnd))
	}
	switch p.Normalization.Mode {
	case "", NormalizeNone, NormalizeNFKC, NormalizeLowercaseASCII:
	default:
		return fmt.Errorf("unknown normalization.mode %q", p.Normalization.Mode)
	}
	if p.SymbolPolicy != nil {
		switch p.SymbolPolicy.Mode {
		case "", SymbolAll, SymbolDeclared:
		default:
			return fmt.Errorf("unknown symbol_policy.mode %q", p.SymbolPolicy.Mode)
		}
		switch p.SymbolPolicy.IncludeQualifiedIdentifiers {
		case "", QualifiedNone, QualifiedDot, QualifiedScope, QualifiedDotAndScope:
		default:
			return fmt.Errorf("unknown symbol_policy.include_qualified_identifiers %q", p.SymbolPolicy.IncludeQualifiedIdentifiers)
		}
	}
	return nil
}
