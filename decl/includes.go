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
	"bufio"
	"bytes"
	"strings"
)

// admitIncludeHeaders implements rule 5: line-anchored scan of the raw
// text for `#include <PATH>` or `#include "PATH"`, extracting every
// identifier-regex match inside PATH and admitting each.
func admitIncludeHeaders(text []byte, ident IdentifierMatcher, admitted map[string]struct{}) {
	scanner := bufio.NewScanner(bytes.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		path, ok := includePath(scanner.Text())
		if !ok {
			continue
		}
		for _, id := range ident.FindIdentifiers([]byte(path)) {
			admitted[id] = struct{}{}
		}
	}
}

// includePath extracts PATH from a line matching `#include <PATH>` or
// `#include "PATH"`, tolerating leading whitespace before '#'.
func includePath(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	const prefix = "#include"
	if !strings.HasPrefix(trimmed, prefix) {
		return "", false
	}
	rest := strings.TrimLeft(trimmed[len(prefix):], " \t")
	if rest == "" {
		return "", false
	}
	open, close := rest[0], byte(0)
	switch open {
	case '<':
		close = '>'
	case '"':
		close = '"'
	default:
		return "", false
	}
	end := strings.IndexByte(rest[1:], close)
	if end < 0 {
		return "", false
	}
	return rest[1 : 1+end], true
}
