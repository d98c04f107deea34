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

package token

import "sort"

// Cursor tracks the three independent running counters the lexer advances
// as it consumes a source file: line, column (in Unicode scalar values),
// and byte offset. Unlike a line-table-plus-binary-search scheme, a Cursor
// is updated incrementally on every consumed character, which is both
// cheaper and avoids having to reconstruct position information after the
// fact.
//
// CR, LF, and CRLF each advance Line by exactly one and reset Col to 1;
// a CRLF pair is treated as a single logical newline (the LF half of the
// pair does not advance Line a second time).
type Cursor struct {
	Line      int
	Col       int
	Byte      int
	lastWasCR bool
}

// NewCursor returns a Cursor positioned at the start of a file: line 1,
// column 1, byte offset 0.
func NewCursor() Cursor {
	return Cursor{Line: 1, Col: 1, Byte: 0}
}

// Advance moves the cursor past one decoded rune of the given UTF-8 byte
// length, updating Line/Col/Byte as appropriate.
func (c *Cursor) Advance(r rune, byteLen int) {
	switch r {
	case '\n':
		if c.lastWasCR {
			// second half of a CRLF pair: already advanced the line.
			c.lastWasCR = false
		} else {
			c.Line++
			c.Col = 1
		}
		c.Byte += byteLen
		return
	case '\r':
		c.Line++
		c.Col = 1
		c.Byte += byteLen
		c.lastWasCR = true
		return
	}
	c.lastWasCR = false
	c.Col++
	c.Byte += byteLen
}

// Snapshot captures the current position as a (line, col, byte) triple,
// suitable for use as either the start or the end of a token span.
func (c Cursor) Snapshot() (line, col, byte int) {
	return c.Line, c.Col, c.Byte
}

// FileInfo is a secondary, post-hoc position index: given only a byte
// offset into a file (for example, one recovered from a Diagnostic raised
// mid-decode, where no live Cursor is available), it recovers the
// corresponding line and column via a line-start table and a binary
// search. This is a deliberately different strategy from Cursor: Cursor
// is for the hot path (every rune the lexer consumes), FileInfo.PositionAt
// is for the cold path (turning a stored offset back into a position
// later).
type FileInfo struct {
	name  string
	data  []byte
	lines []int // byte offset of the start of each line; lines[0] == 0
}

// NewFileInfo builds the line-start table for data in a single pass.
func NewFileInfo(name string, data []byte) *FileInfo {
	fi := &FileInfo{name: name, data: data, lines: []int{0}}
	for i, b := range data {
		if b == '\n' {
			fi.lines = append(fi.lines, i+1)
		}
	}
	return fi
}

// Name returns the file's name as given to NewFileInfo.
func (f *FileInfo) Name() string { return f.name }

// LineCount reports the number of lines in the file: 0 for an empty file,
// otherwise 1 + the number of '\n' bytes.
func (f *FileInfo) LineCount() int {
	if len(f.data) == 0 {
		return 0
	}
	return len(f.lines)
}

// ByteCount reports len(data).
func (f *FileInfo) ByteCount() int { return len(f.data) }

// PositionAt recovers the 1-based line and column (in bytes, not
// scalars — this accessor is for diagnostics, which only need an
// approximate location) for a byte offset into the file.
func (f *FileInfo) PositionAt(offset int) (line, col int) {
	line = sort.Search(len(f.lines), func(n int) bool {
		return f.lines[n] > offset
	})
	lineStart := f.lines[line-1]
	return line, offset - lineStart + 1
}
