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

// Package index implements the indexing engine: per-file tokenization and
// filtering, multi-file aggregation, sorting, statistics, and the data
// model the canonical emitter serialises.
package index

// SchemaVersion is the schema_version stamped on every emitted SymbolIndex.
const SchemaVersion = "2.1"

// Ordering is the only defined occurrence ordering currently supported.
const Ordering = "lex"

// Occurrence is one textual appearance of an identifier, with its full
// span. ByteStart/ByteEnd are pointers so the canonical emitter can omit
// them when absent.
type Occurrence struct {
	FileID    string `json:"file_id"`
	Line      int    `json:"line"`
	ColStart  int    `json:"col_start"`
	ColEnd    int    `json:"col_end"`
	ByteStart *int   `json:"byte_start,omitempty"`
	ByteEnd   *int   `json:"byte_end,omitempty"`
}

// Less implements the canonical occurrence ordering: (file_id, line,
// col_start, col_end), all byte-wise ascending.
func (o Occurrence) Less(other Occurrence) bool {
	if o.FileID != other.FileID {
		return o.FileID < other.FileID
	}
	if o.Line != other.Line {
		return o.Line < other.Line
	}
	if o.ColStart != other.ColStart {
		return o.ColStart < other.ColStart
	}
	return o.ColEnd < other.ColEnd
}

// SymbolStats holds the two derived counters recorded for every symbol.
type SymbolStats struct {
	OccurrenceCount int `json:"occurrence_count"`
	UniqueLineCount int `json:"unique_line_count"`
}

// SymbolEntry is one identifier and every occurrence of it admitted into
// the index.
type SymbolEntry struct {
	Identifier  string       `json:"identifier"`
	Occurrences []Occurrence `json:"occurrences"`
	Stats       SymbolStats  `json:"stats"`
}

// FileSummary describes one input file contributing to an index.
type FileSummary struct {
	FileID string `json:"file_id"`
	Lines  int    `json:"lines"`
	Bytes  int    `json:"bytes"`
	SHA256 string `json:"sha256"`
}

// Severity classifies a Diagnostic. Indexing is tolerant: diagnostics are
// currently only informational/error-level annotations, never fatal.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic codes used by the core (external collaborators, such as the
// rows emitter or the CLI's own file discovery, may define additional
// codes; the core only ever emits these three).
const (
	CodeIORead         = "io.read"
	CodeRegistryNoRule = "registry.no_rule"
	CodeTextEncoding   = "text.encoding"
)

// Diagnostic is a recoverable, file-level issue observed during indexing.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	FileID   string   `json:"file_id"`
	Line     int      `json:"line,omitempty"`
	Col      int      `json:"col,omitempty"`
	Message  string   `json:"message"`
	Code     string   `json:"code"`
}

// SymbolIndex is the per-profile indexing result, and the unit the
// canonical emitter serialises in single-profile mode.
type SymbolIndex struct {
	SchemaVersion string        `json:"schema_version"`
	ProfileID     string        `json:"profile_id"`
	Ordering      string        `json:"ordering"`
	GeneratedAt   string        `json:"generated_at"`
	EngineVersion string        `json:"engine_version,omitempty"`
	Files         []FileSummary `json:"files"`
	Symbols       []SymbolEntry `json:"symbols"`
	Diagnostics   []Diagnostic  `json:"diagnostics"`
}

// ProjectIndex wraps one SymbolIndex per profile for a mixed-language,
// registry-routed run.
type ProjectIndex struct {
	SchemaVersion string        `json:"schema_version"`
	ProjectRoot   string        `json:"project_root"`
	GeneratedAt   string        `json:"generated_at"`
	EngineVersion string        `json:"engine_version,omitempty"`
	RegistryID    string        `json:"registry_id,omitempty"`
	ProjectSHA256 string        `json:"project_sha256,omitempty"`
	Indexes       []SymbolIndex `json:"indexes"`
	Artifacts     []string      `json:"artifacts,omitempty"`
	Diagnostics   []Diagnostic  `json:"diagnostics"`
}
