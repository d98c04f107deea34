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

package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codeindex/codeindex/internal/golden"
	"github.com/codeindex/codeindex/lexer"
	"github.com/codeindex/codeindex/profile"
)

func goldenProfile() *profile.LanguageProfile {
	return &profile.LanguageProfile{
		ProfileID:       "golden-java",
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

// TestLexerGoldenCorpus runs every fixture under testdata/golden through the
// lexer and compares its token stream against a checked-in rendering. Set
// CODEINDEX_REFRESH_GOLDEN to a glob of case names to regenerate them.
func TestLexerGoldenCorpus(t *testing.T) {
	golden.Corpus{
		Root:       "testdata/golden",
		Refresh:    "CODEINDEX_REFRESH_GOLDEN",
		Extensions: []string{"java"},
		Outputs: []golden.Output{
			{Extension: "tokens.txt"},
		},
	}.Run(t, func(t *testing.T, path, text string, outputs []string) {
		lx, err := lexer.New(goldenProfile(), []byte(text))
		require.NoError(t, err)
		var sb strings.Builder
		for tok := range lx.All() {
			fmt.Fprintf(&sb, "%s %s line=%d col=%d-%d\n", tok.Kind, tok.Text, tok.Line, tok.ColStart, tok.ColEnd)
		}
		outputs[0] = sb.String()
	})
}
