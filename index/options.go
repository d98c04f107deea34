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

package index

import "github.com/codeindex/codeindex/profile"

// Overrides holds the subset of CLI flags that affect symbol policy. Each
// field is a pointer so "unset" can be distinguished from "explicitly set
// to the zero value" — nil means "no override".
type Overrides struct {
	Mode                           *profile.SymbolPolicyMode
	ExcludeSingleLetterIdentifiers *bool
	IncludeQualifiedIdentifiers    *profile.QualifiedIdentifierMode
	IncludeIncludeHeaders          *bool
}

// ResolveOptions implements policy resolution: an explicit option
// overrides the profile; the profile overrides the built-in default.
func ResolveOptions(p *profile.LanguageProfile, ov Overrides) profile.SymbolPolicy {
	eff := p.EffectiveSymbolPolicy()
	if ov.Mode != nil {
		eff.Mode = *ov.Mode
	}
	if ov.ExcludeSingleLetterIdentifiers != nil {
		eff.ExcludeSingleLetterIdentifiers = *ov.ExcludeSingleLetterIdentifiers
	}
	if ov.IncludeQualifiedIdentifiers != nil {
		eff.IncludeQualifiedIdentifiers = *ov.IncludeQualifiedIdentifiers
	}
	if ov.IncludeIncludeHeaders != nil {
		eff.IncludeIncludeHeaders = *ov.IncludeIncludeHeaders
	}
	return eff
}

// Options bundles the run-wide settings that are not themselves part of
// the LanguageProfile: CLI symbol-policy overrides, the injectable
// timestamp for reproducible output, the optional engine version stamp,
// and the maximum per-file parallelism.
type Options struct {
	Overrides      Overrides
	GeneratedAt    string
	EngineVersion  string
	MaxParallelism int
}
