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

package display

import (
	"strings"

	"github.com/cogline/edit/attrstr"
	"github.com/cogline/edit/capability"
	"github.com/cogline/edit/editerr"
	"github.com/cogline/edit/terminal"
)

// Display renders successive desired frames to a terminal.Provider,
// computing a minimal byte-level update against the previously rendered
// frame per spec.md §4.7.
type Display struct {
	prov terminal.Provider
	caps *capability.Table

	prevRows      []*attrstr.String
	prevCursorRow int
	prevCursorCol int
	valid         bool
}

// New creates a Display writing to prov using caps for escape sequences.
func New(prov terminal.Provider, caps *capability.Table) *Display {
	return &Display{prov: prov, caps: caps}
}

// Invalidate discards the previous frame, forcing the next Render to
// redraw every row from scratch. Called on resize per spec.md §4.7.
func (d *Display) Invalidate() {
	d.valid = false
	d.prevRows = nil
}

// Render writes the minimal diff between the previous frame and rows
// (produced by Wrap), then moves the cursor to (cursorRow, cursorCol).
// Rendering the same frame twice in a row produces no writes to C1 after
// the first, per spec.md §8's render-idempotence property.
func (d *Display) Render(rows []*attrstr.String, cursorRow, cursorCol int) error {
	var out strings.Builder

	if !d.valid {
		d.renderFull(&out, rows)
	} else {
		d.renderDiff(&out, rows)
	}

	// Clear rows the previous frame occupied that the new one does not,
	// per spec.md §4.7's "displayed height must shrink when the buffer
	// shrinks" edge case.
	lastRow := len(rows) - 1
	for i := len(rows); i < len(d.prevRows); i++ {
		d.moveTo(&out, i, 0, lastRow)
		if el, ok := d.caps.Get(capability.ClearToEOL); ok {
			out.WriteString(el)
		}
		lastRow = i
	}

	cursorMoved := cursorRow != d.prevCursorRow || cursorCol != d.prevCursorCol
	if out.Len() > 0 || cursorMoved {
		d.moveTo(&out, cursorRow, cursorCol, lastRow)
	}

	if out.Len() > 0 {
		if _, err := d.prov.Write([]byte(out.String())); err != nil {
			return editerr.New(editerr.TerminalIO, "write display update", err)
		}
		if err := d.prov.Flush(); err != nil {
			return editerr.New(editerr.TerminalIO, "flush display update", err)
		}
	}

	d.prevRows = rows
	d.prevCursorRow, d.prevCursorCol = cursorRow, cursorCol
	d.valid = true
	return nil
}

func (d *Display) renderFull(out *strings.Builder, rows []*attrstr.String) {
	for i, row := range rows {
		d.moveTo(out, i, 0, 0)
		if el, ok := d.caps.Get(capability.ClearToEOL); ok {
			out.WriteString(el)
		}
		out.WriteString(row.Render())
		if i < len(rows)-1 {
			d.handleRowWrap(out, row)
		}
	}
}

// handleRowWrap implements spec.md §4.7's "wrap at last column" policy for a
// row that was just written and exactly fills the terminal's width: some
// terminals leave the cursor parked on the same row (a "pending wrap") until
// the next byte is written, which would otherwise confuse the relative
// cursor-motion fallback in moveRows. When auto_right_margin and
// eat_newline_glitch both hold, write a space to force the pending wrap,
// then CR to return to column 0 of the new row. When the capability set
// disagrees, the caller already repositions explicitly before the next
// row's content, so nothing further is required here.
func (d *Display) handleRowWrap(out *strings.Builder, row *attrstr.String) {
	cols, err := d.prov.Size()
	if err != nil || row.ColumnWidth() < cols.Cols {
		return
	}
	if d.caps.Bool(capability.AutoRightMargin) && d.caps.Bool(capability.EatNewlineGlitch) {
		out.WriteByte(' ')
		out.WriteByte('\r')
	}
}

func (d *Display) renderDiff(out *strings.Builder, rows []*attrstr.String) {
	n := len(rows)
	if len(d.prevRows) > n {
		n = len(d.prevRows)
	}
	for i := 0; i < n; i++ {
		var newRow, oldRow *attrstr.String
		if i < len(rows) {
			newRow = rows[i]
		} else {
			newRow = &attrstr.String{}
		}
		if i < len(d.prevRows) {
			oldRow = d.prevRows[i]
		} else {
			oldRow = &attrstr.String{}
		}
		d.renderRowDiff(out, i, oldRow, newRow, i < n-1)
	}
}

// renderRowDiff rewrites only the changed middle of one row: the longest
// common prefix and suffix of attributed cells are left untouched, per
// spec.md §4.7's row-diff algorithm.
func (d *Display) renderRowDiff(out *strings.Builder, rowIdx int, oldRow, newRow *attrstr.String, hasNextRow bool) {
	oldCells, newCells := oldRow.Cells(), newRow.Cells()
	if cellsEqual(oldCells, newCells) {
		return
	}

	prefix := 0
	for prefix < len(oldCells) && prefix < len(newCells) && cellEqual(oldCells[prefix], newCells[prefix]) {
		prefix++
	}
	oldSuf, newSuf := len(oldCells), len(newCells)
	for oldSuf > prefix && newSuf > prefix && cellEqual(oldCells[oldSuf-1], newCells[newSuf-1]) {
		oldSuf--
		newSuf--
	}

	col := 0
	for _, c := range newCells[:prefix] {
		col += c.Width()
	}
	d.moveTo(out, rowIdx, col, rowIdx)

	middle := &attrstr.String{}
	for _, c := range newCells[prefix:newSuf] {
		middle.AppendCell(c)
	}
	out.WriteString(middle.Render())

	if oldSuf > newSuf {
		// The new row's middle is shorter than the old one's: clear the
		// leftover tail rather than leaving stale characters on screen.
		if el, ok := d.caps.Get(capability.ClearToEOL); ok && newSuf == len(newCells) {
			out.WriteString(el)
		} else {
			pad := &attrstr.String{}
			for i := 0; i < oldSuf-newSuf; i++ {
				pad.Append(' ', attrstr.Default)
			}
			out.WriteString(pad.Render())
		}
	} else if hasNextRow && newSuf == len(newCells) {
		d.handleRowWrap(out, newRow)
	}
}

func cellEqual(a, b attrstr.Cell) bool {
	return a.R == b.R && a.Style.Equal(b.Style) && string(a.Combining) == string(b.Combining)
}

func cellsEqual(a, b []attrstr.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !cellEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// moveTo is renderFull/renderDiff's internal helper: it always repositions
// using the cheapest method available rather than tracking incremental
// state, since rows are visited in order top-to-bottom.
func (d *Display) moveTo(out *strings.Builder, row, col, fromRow int) {
	if addr, ok := d.caps.Address(row, col); ok {
		out.WriteString(addr)
		return
	}
	// No cursor-address: CR to column 0, then move down/up the needed
	// number of rows, then right-move to col (spec.md §4.7).
	out.WriteByte('\r')
	d.moveRows(out, fromRow, row)
	d.moveCols(out, 0, col)
}

func (d *Display) moveRows(out *strings.Builder, from, to int) {
	down, dok := d.caps.Get(capability.CursorDown)
	up, uok := d.caps.Get(capability.CursorUp)
	for ; from < to; from++ {
		if dok {
			out.WriteString(down)
		} else {
			out.WriteByte('\n')
		}
	}
	for ; from > to; from-- {
		if uok {
			out.WriteString(up)
		}
	}
}

func (d *Display) moveCols(out *strings.Builder, from, to int) {
	right, ok := d.caps.Get(capability.CursorRight)
	if !ok {
		return
	}
	for ; from < to; from++ {
		out.WriteString(right)
	}
}

