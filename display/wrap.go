// Copyright 2013 Google, Inc.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package display implements the frame-diffing renderer named C7 in
// spec.md §2/§4.7: splitting the prompt + line into terminal rows,
// diffing against the previously rendered frame, and emitting the
// minimal update plus a cursor move.
//
// Grounded on the teacher's term_frame.go, which already tracks a
// "previous screen region" and patches only the changed span on resize;
// this package generalizes that single-region patch into per-row
// longest-common-prefix/suffix diffing driven by a capability.Table
// instead of term_frame.go's hardcoded `\x1b[%d;%dH`.
package display

import "github.com/cogline/edit/attrstr"

// Wrap splits prompt (rendered once) followed by line into terminal rows
// of width cols, using contPrompt as the leading content of every row
// after the first, per spec.md §4.7's "continuation rows receive the
// configured secondary prompt". cursorIdx is an index into line's cells;
// the returned cursorRow/cursorCol locate it in the wrapped layout. Rows
// are pure layout data; the auto_right_margin/eat_newline_glitch "wrap at
// last column" policy is applied when a Display writes them out (see
// Display.handleRowWrap), since only the renderer knows the capability
// table.
func Wrap(prompt, contPrompt *attrstr.String, line *attrstr.String, cols int, cursorIdx int) (rows []*attrstr.String, cursorRow, cursorCol int) {
	if cols <= 0 {
		cols = 80
	}
	cur := &attrstr.String{}
	for _, c := range prompt.Cells() {
		cur.AppendCell(c)
	}
	col := cur.ColumnWidth()
	rows = append(rows, cur)
	cursorRow, cursorCol = 0, col

	startNewRow := func() {
		cur = &attrstr.String{}
		for _, c := range contPrompt.Cells() {
			cur.AppendCell(c)
		}
		col = cur.ColumnWidth()
		rows = append(rows, cur)
	}

	cells := line.Cells()
	for i, c := range cells {
		w := c.Width()
		if col+w > cols && col > 0 {
			startNewRow()
		}
		cur.AppendCell(c)
		col += w
		if i == cursorIdx-1 {
			cursorRow, cursorCol = len(rows)-1, col
		}
	}
	if cursorIdx <= 0 {
		cursorRow, cursorCol = 0, prompt.ColumnWidth()
	} else if cursorIdx >= len(cells) {
		cursorRow, cursorCol = len(rows)-1, col
	}
	return rows, cursorRow, cursorCol
}
