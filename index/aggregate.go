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

import (
	"context"
	"fmt"
	"sort"

	"github.com/tidwall/btree"

	"github.com/codeindex/codeindex/decl"
	"github.com/codeindex/codeindex/lexer"
	"github.com/codeindex/codeindex/profile"
	"github.com/codeindex/codeindex/token"
)

// Run implements the full per-profile indexing procedure over a set of
// inputs that all share one LanguageProfile. The returned SymbolIndex
// satisfies every invariant of the data model: sorted files, sorted
// symbols, sorted occurrences, no empty-occurrence symbol, no stop word
// present, and stats consistent with the occurrence list.
//
// Output is a pure function of the sorted *set* of inputs and the
// profile: permuting inputs never changes the returned bytes once
// emitted.
func Run(ctx context.Context, inputs []Input, p *profile.LanguageProfile, opts Options) (*SymbolIndex, error) {
	results, err := runFiles(ctx, inputs, p, opts.MaxParallelism)
	if err != nil {
		return nil, fmt.Errorf("indexing profile %s: %w", p.ProfileID, err)
	}

	stop := profile.BuildStopWordSet(p)
	policy := ResolveOptions(p, opts.Overrides)

	var allowed map[string]struct{}
	if policy.Mode == profile.SymbolDeclared || policy.ExcludeSingleLetterIdentifiers {
		// The declared set is needed not only for declared-only
		// filtering but also as the bypass set for single-letter
		// exclusion, which applies independent of symbol_policy.mode:
		// single-letter identifiers bypass the rule only when explicitly
		// declared.
		allowed = unionDeclared(results, p, stop, policy)
	}

	symbols, diags := buildSymbols(results, stop, policy, allowed)

	idx := &SymbolIndex{
		SchemaVersion: SchemaVersion,
		ProfileID:     p.ProfileID,
		Ordering:      Ordering,
		GeneratedAt:   opts.GeneratedAt,
		EngineVersion: opts.EngineVersion,
		Files:         collectFileSummaries(results),
		Symbols:       symbols,
		Diagnostics:   diags,
	}
	return idx, nil
}

// unionDeclared implements the closing rule of declaration discovery: the
// admitted set is the union across all input files in a run.
func unionDeclared(results []fileResult, p *profile.LanguageProfile, stop *profile.StopWordSet, policy profile.SymbolPolicy) map[string]struct{} {
	var finder *lexer.IdentifierFinder
	if policy.IncludeIncludeHeaders {
		// Construction only fails for a malformed identifier rule, which
		// would already have failed earlier when the first file was
		// tokenized; ignore the error here rather than thread it through
		// a function that otherwise cannot fail.
		finder, _ = lexer.NewIdentifierFinder(p)
	}

	allowed := make(map[string]struct{})
	for _, r := range results {
		if r.skipped {
			continue
		}
		for id := range decl.Discover(r.tokens, stop, policy, r.data, finder) {
			allowed[id] = struct{}{}
		}
	}
	return allowed
}

// buildSymbols filters every identifier occurrence, then sorts symbols
// and their occurrences into the explicit sorted container required
// before serialisation.
func buildSymbols(results []fileResult, stop *profile.StopWordSet, policy profile.SymbolPolicy, allowed map[string]struct{}) ([]SymbolEntry, []Diagnostic) {
	var symbolTree btree.Map[string, *SymbolEntry]
	diags := make([]Diagnostic, 0)

	for _, r := range results {
		diags = append(diags, r.diags...)
		if r.skipped {
			continue
		}
		for _, t := range r.tokens {
			if t.Kind != token.Identifier {
				continue
			}
			id := t.Text
			if stop.Contains(id) {
				continue
			}
			_, declared := allowed[id]
			if policy.Mode == profile.SymbolDeclared && !declared {
				continue
			}
			if policy.ExcludeSingleLetterIdentifiers && len([]rune(id)) == 1 && !declared {
				continue
			}

			entry, ok := symbolTree.Get(id)
			if !ok {
				entry = &SymbolEntry{Identifier: id}
				symbolTree.Set(id, entry)
			}
			byteStart, byteEnd := t.ByteStart, t.ByteEnd
			entry.Occurrences = append(entry.Occurrences, Occurrence{
				FileID:    r.input.FileID,
				Line:      t.Line,
				ColStart:  t.ColStart,
				ColEnd:    t.ColEnd,
				ByteStart: &byteStart,
				ByteEnd:   &byteEnd,
			})
		}
	}

	symbols := make([]SymbolEntry, 0, symbolTree.Len())
	symbolTree.Scan(func(id string, entry *SymbolEntry) bool {
		sortOccurrences(entry.Occurrences)
		entry.Stats = computeStats(entry.Occurrences)
		symbols = append(symbols, *entry)
		return true
	})
	return symbols, diags
}

func sortOccurrences(occs []Occurrence) {
	sort.Slice(occs, func(i, j int) bool {
		return occs[i].Less(occs[j])
	})
}

type fileLine struct {
	fileID string
	line   int
}

// computeStats implements the unique_line_count definition, unified
// across single- and multi-file runs: distinct (file_id, line) pairs, not
// just distinct line numbers.
func computeStats(occs []Occurrence) SymbolStats {
	lines := make(map[fileLine]struct{}, len(occs))
	for _, o := range occs {
		lines[fileLine{o.FileID, o.Line}] = struct{}{}
	}
	return SymbolStats{
		OccurrenceCount: len(occs),
		UniqueLineCount: len(lines),
	}
}

func collectFileSummaries(results []fileResult) []FileSummary {
	out := make([]FileSummary, 0, len(results))
	for _, r := range results {
		if r.skipped {
			continue
		}
		out = append(out, r.summary)
	}
	return out
}
