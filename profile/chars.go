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
	"unicode/utf8"
)

// Char is a single Unicode scalar value, encoded in profile JSON as a
// one-rune string (e.g. "\"", "'", "\\") rather than a numeric code point,
// since hand-written profiles are far more legible that way.
type Char rune

// UnmarshalJSON decodes a one-rune JSON string into a Char.
func (c *Char) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("char: %w", err)
	}
	if s == "" {
		*c = 0
		return nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return fmt.Errorf("char: %q is not a single Unicode scalar value", s)
	}
	*c = Char(r)
	return nil
}

// MarshalJSON encodes a Char back to its one-rune string form.
func (c Char) MarshalJSON() ([]byte, error) {
	if c == 0 {
		return json.Marshal("")
	}
	return json.Marshal(string(rune(c)))
}

// CharSet is a list of Chars, decoded the same way.
type CharSet []Char

// Runes returns the CharSet as a plain []rune for use by the lexer.
func (cs CharSet) Runes() []rune {
	out := make([]rune, len(cs))
	for i, c := range cs {
		out[i] = rune(c)
	}
	return out
}
