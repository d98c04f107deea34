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

package decl

import (
	"github.com/codeindex/codeindex/profile"
	"github.com/codeindex/codeindex/token"
)

// admitQualified implements rule 4: scan the raw token stream (including
// Punct tokens) for triples (IdentLeft, Punct, IdentRight) where Punct's
// text is enabled by mode, admitting both identifiers. This lets
// references like "System.out" or "std::cout" flow into the index even
// when they are never declared.
func admitQualified(tokens []token.Token, stop *profile.StopWordSet, mode profile.QualifiedIdentifierMode, admitted map[string]struct{}) {
	dotEnabled := mode == profile.QualifiedDot || mode == profile.QualifiedDotAndScope
	scopeEnabled := mode == profile.QualifiedScope || mode == profile.QualifiedDotAndScope

	for i := 0; i+2 < len(tokens); i++ {
		left, punct, right := tokens[i], tokens[i+1], tokens[i+2]
		if left.Kind != token.Identifier || punct.Kind != token.Punct || right.Kind != token.Identifier {
			continue
		}
		switch punct.Text {
		case ".":
			if !dotEnabled {
				continue
			}
		case "::":
			if !scopeEnabled {
				continue
			}
		default:
			continue
		}
		if !stop.Contains(left.Text) {
			admitted[left.Text] = struct{}{}
		}
		if !stop.Contains(right.Text) {
			admitted[right.Text] = struct{}{}
		}
	}
}
