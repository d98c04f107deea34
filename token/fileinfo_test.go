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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorAdvance(t *testing.T) {
	c := NewCursor()
	for _, r := range "ab\ncd" {
		c.Advance(r, 1)
	}
	line, col, byteOff := c.Snapshot()
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)
	assert.Equal(t, 5, byteOff)
}

func TestCursorCRLF(t *testing.T) {
	c := NewCursor()
	c.Advance('\r', 1)
	c.Advance('\n', 1)
	c.Advance('x', 1)
	line, col, _ := c.Snapshot()
	assert.Equal(t, 2, line, "CRLF must be counted as a single newline")
	assert.Equal(t, 2, col)
}

func TestCursorBareCR(t *testing.T) {
	c := NewCursor()
	c.Advance('a', 1)
	c.Advance('\r', 1)
	c.Advance('b', 1)
	line, _, _ := c.Snapshot()
	assert.Equal(t, 2, line, "a bare CR must still advance the line")
}

func TestFileInfoPositionAt(t *testing.T) {
	data := []byte("abc\ndef\nghi")
	fi := NewFileInfo("test.txt", data)

	assert.Equal(t, 3, fi.LineCount())
	assert.Equal(t, len(data), fi.ByteCount())

	cases := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{3, 1, 4},
		{4, 2, 1},
		{7, 2, 4},
		{8, 3, 1},
	}
	for _, c := range cases {
		line, col := fi.PositionAt(c.offset)
		assert.Equal(t, c.wantLine, line, "PositionAt(%d) line", c.offset)
		assert.Equal(t, c.wantCol, col, "PositionAt(%d) col", c.offset)
	}
}
