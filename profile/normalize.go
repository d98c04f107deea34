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
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize derives an identifier's comparison key from its original
// spelling per the profile's normalization mode. The original spelling
// itself is never altered — occurrences always carry Token.Text verbatim;
// Normalize is only used to build stop-word lookup keys. Declared-set
// membership and symbol-map keys compare the original spelling exactly.
func Normalize(mode NormalizationMode, s string) string {
	switch mode {
	case NormalizeNFKC:
		return norm.NFKC.String(s)
	case NormalizeLowercaseASCII:
		return lowercaseASCII(s)
	case NormalizeNone, "":
		return s
	default:
		return s
	}
}

// lowercaseASCII lowercases only the ASCII letters in s, leaving any
// multi-byte UTF-8 sequences untouched — "lowercase_ascii" is explicitly
// not full Unicode case folding.
func lowercaseASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
