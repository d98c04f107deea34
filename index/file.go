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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/codeindex/codeindex/lexer"
	"github.com/codeindex/codeindex/profile"
	"github.com/codeindex/codeindex/token"
)

// Input names one source file to index: its filesystem path and the
// file_id it should be reported under (computed by the caller — typically
// root-relative with "/" separators, or basename).
type Input struct {
	Path   string
	FileID string
}

// fileResult is everything derived from reading and tokenizing one file.
type fileResult struct {
	input   Input
	data    []byte
	summary FileSummary
	tokens  []token.Token
	diags   []Diagnostic
	skipped bool
}

// processFile reads, hashes, and summarizes one file, plus runs the
// tokenization that both declaration discovery and the occurrence pass
// consume. I/O errors are recoverable: they produce a diagnostic and mark
// the file skipped rather than aborting the run. A malformed-profile
// error from lexer construction is a configuration error and is fatal,
// reported via the returned error.
func processFile(in Input, p *profile.LanguageProfile) (fileResult, error) {
	res := fileResult{input: in}

	data, err := os.ReadFile(in.Path)
	if err != nil {
		res.skipped = true
		res.diags = append(res.diags, Diagnostic{
			Severity: SeverityError,
			FileID:   in.FileID,
			Message:  fmt.Sprintf("could not read file: %v", err),
			Code:     CodeIORead,
		})
		return res, nil
	}

	res.data = data

	if !utf8.Valid(data) {
		res.diags = append(res.diags, Diagnostic{
			Severity: SeverityInfo,
			FileID:   in.FileID,
			Message:  "file contains invalid UTF-8; replacement characters were substituted",
			Code:     CodeTextEncoding,
		})
	}

	sum := sha256.Sum256(data)
	res.summary = FileSummary{
		FileID: in.FileID,
		Lines:  countLines(data),
		Bytes:  len(data),
		SHA256: hex.EncodeToString(sum[:]),
	}

	lx, err := lexer.New(p, data)
	if err != nil {
		return fileResult{}, fmt.Errorf("profile %s: %w", p.ProfileID, err)
	}
	for t := range lx.All() {
		res.tokens = append(res.tokens, t)
	}
	return res, nil
}

// countLines implements the line-count convention: 1 + count('\n') for
// non-empty files, 0 for empty files.
func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := 1
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}
