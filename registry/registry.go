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

// Package registry implements an ordered glob-rule router that assigns
// each input file to a language profile alias for mixed-language
// repositories.
package registry

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/codeindex/codeindex/index"
)

// Rule is one ordered entry in a registry: files matching Glob route to
// Profile. The first matching rule wins.
type Rule struct {
	Glob    string `json:"match"`
	Profile string `json:"profile"`
}

// Config is the on-disk registry schema: {profiles, rules}.
type Config struct {
	Profiles map[string]string `json:"profiles"`
	Rules    []rawRule         `json:"rules"`
}

type rawRule struct {
	Match   matchClause `json:"match"`
	Profile string      `json:"profile"`
}

type matchClause struct {
	Glob string `json:"glob"`
}

// ConfigError is a fatal configuration error: an unknown profile alias
// referenced by a rule, or an unparsable glob pattern.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("registry config: %v", e.Err) }
func (e *ConfigError) Unwrap() error { return e.Err }

// Registry is the resolved, immutable form of Config: an ordered rule
// list plus the alias-to-profile-path table, ready to route files.
type Registry struct {
	id           string
	profilePaths map[string]string
	rules        []Rule
}

// New validates cfg and builds a Registry. Every rule's Profile must name
// a key in cfg.Profiles, and every glob must be syntactically valid
// (doublestar.Match reports malformed patterns at match time, so a dry
// run against an empty string is used to catch them early).
func New(id string, cfg Config) (*Registry, error) {
	r := &Registry{id: id, profilePaths: cfg.Profiles}
	for _, rr := range cfg.Rules {
		if _, ok := cfg.Profiles[rr.Profile]; !ok {
			return nil, &ConfigError{Err: fmt.Errorf("rule references unknown profile alias %q", rr.Profile)}
		}
		if _, err := doublestar.Match(rr.Match.Glob, ""); err != nil {
			return nil, &ConfigError{Err: fmt.Errorf("rule for alias %q has invalid glob %q: %w", rr.Profile, rr.Match.Glob, err)}
		}
		r.rules = append(r.rules, Rule{Glob: rr.Match.Glob, Profile: rr.Profile})
	}
	return r, nil
}

// ProfilePath returns the configured profile path for an alias.
func (r *Registry) ProfilePath(alias string) (string, bool) {
	p, ok := r.profilePaths[alias]
	return p, ok
}

// Aliases returns every alias configured in the registry's profile table,
// whether or not any input routes to it, in no particular order; callers
// should sort before use.
func (r *Registry) Aliases() []string {
	out := make([]string, 0, len(r.profilePaths))
	for a := range r.profilePaths {
		out = append(out, a)
	}
	return out
}

// Route partitions inputs by resolved alias: for each file_id, scan rules
// top-to-bottom and use the first matching glob.
// Patterns are anchored at both ends of the normalised (already "/"-
// separated) file_id. Files matching no rule are reported as a
// registry.no_rule diagnostic and omitted from every group.
func (r *Registry) Route(inputs []index.Input) (groups map[string][]index.Input, diags []index.Diagnostic) {
	groups = make(map[string][]index.Input)
	for _, in := range inputs {
		alias, ok := r.match(in.FileID)
		if !ok {
			diags = append(diags, index.Diagnostic{
				Severity: index.SeverityError,
				FileID:   in.FileID,
				Message:  "no registry rule matched this file",
				Code:     index.CodeRegistryNoRule,
			})
			continue
		}
		groups[alias] = append(groups[alias], in)
	}
	return groups, diags
}

func (r *Registry) match(fileID string) (alias string, ok bool) {
	for _, rule := range r.rules {
		matched, err := doublestar.Match(rule.Glob, fileID)
		if err == nil && matched {
			return rule.Profile, true
		}
	}
	return "", false
}
