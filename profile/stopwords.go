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

// StopWordSet is a frozen, case-policy- and normalization-aware membership
// set built once per profile and shared across every file in a run.
type StopWordSet struct {
	insensitive bool
	normMode    NormalizationMode
	words       map[string]struct{}
}

// BuildStopWordSet constructs the stop-word set for a profile: "inline"
// mode uses the literal word list; any other mode (including "uri", which
// requires an external fetch this core does not perform) produces an
// empty set for now. Membership is tested under the profile's
// normalization mode and case-sensitivity policy; this set is the only
// identifier comparison that applies them.
func BuildStopWordSet(p *LanguageProfile) *StopWordSet {
	s := &StopWordSet{
		insensitive: p.CaseSensitivity == Insensitive,
		normMode:    p.Normalization.Mode,
	}
	s.words = make(map[string]struct{}, len(p.StopWords.Words))
	if p.StopWords.Mode == StopWordsInline {
		for _, w := range p.StopWords.Words {
			s.words[s.key(w)] = struct{}{}
		}
	}
	return s
}

func (s *StopWordSet) key(word string) string {
	word = Normalize(s.normMode, word)
	if s.insensitive {
		return lowercaseASCII(word)
	}
	return word
}

// Contains reports whether word is a stop word under the profile's case
// sensitivity policy.
func (s *StopWordSet) Contains(word string) bool {
	_, ok := s.words[s.key(word)]
	return ok
}

// Len reports the number of distinct stop words.
func (s *StopWordSet) Len() int { return len(s.words) }
