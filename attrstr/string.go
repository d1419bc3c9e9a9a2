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

package attrstr

import "strings"

// Cell is one (codepoint, style) pair per spec.md §3, plus any zero-width
// combining marks that attach to it.
type Cell struct {
	R          rune
	Combining  []rune
	Style      Style
}

// Width returns the cell's display column width.
func (c Cell) Width() int { return RuneWidth(c.R) }

// String is an ordered sequence of Cells: the attributed string named C3.
type String struct {
	cells []Cell
}

// New builds a String from a plain string with a single style applied to
// every cell.
func New(s string, style Style) *String {
	as := &String{}
	as.AppendString(s, style)
	return as
}

// Cells returns the underlying cell slice. Callers must not mutate the
// returned slice's cell contents in place; use the append/slice methods.
func (s *String) Cells() []Cell { return s.cells }

// Len returns the number of cells (codepoints), not display columns.
func (s *String) Len() int { return len(s.cells) }

// Append adds a single styled rune. If r is a combining mark (zero width)
// and the string is non-empty, it attaches to the previous cell instead of
// becoming a new one, per spec.md §3.
func (s *String) Append(r rune, style Style) {
	if IsCombining(r) && len(s.cells) > 0 {
		last := &s.cells[len(s.cells)-1]
		last.Combining = append(last.Combining, r)
		return
	}
	s.cells = append(s.cells, Cell{R: r, Style: style})
}

// AppendString appends every rune of str with the given style, expanding
// tabs to the next multiple of 8 columns from the string's current
// column, per spec.md §4.3.
func (s *String) AppendString(str string, style Style) {
	for _, r := range str {
		if r == '\t' {
			s.appendTab(style)
			continue
		}
		s.Append(r, style)
	}
}

func (s *String) appendTab(style Style) {
	col := s.ColumnWidth()
	next := (col/8 + 1) * 8
	for col < next {
		s.Append(' ', style)
		col++
	}
}

// AppendCell appends a pre-built cell verbatim (used when copying cells
// from another String, e.g. in display's frame diffing).
func (s *String) AppendCell(c Cell) {
	s.cells = append(s.cells, c)
}

// ColumnWidth returns the total display width of the string: the sum of
// each cell's Width(), per spec.md §8's render-idempotence/width
// properties.
func (s *String) ColumnWidth() int {
	total := 0
	for _, c := range s.cells {
		total += c.Width()
	}
	return total
}

// PlainText renders the string without styling, combining marks included.
func (s *String) PlainText() string {
	var b strings.Builder
	for _, c := range s.cells {
		b.WriteRune(c.R)
		for _, m := range c.Combining {
			b.WriteRune(m)
		}
	}
	return b.String()
}

// SliceCols returns the cells whose display columns fall within
// [startCol, endCol), splitting a wide cell at endCol is not possible (a
// wide cell at the boundary is either wholly included or wholly excluded,
// favoring exclusion when only its second column is requested) per
// spec.md §4.3's "column-accurate slice" contract.
func (s *String) SliceCols(startCol, endCol int) *String {
	out := &String{}
	col := 0
	for _, c := range s.cells {
		w := c.Width()
		if col >= endCol {
			break
		}
		if col >= startCol {
			out.AppendCell(c)
		}
		col += w
	}
	return out
}

// Truncate returns a copy of s cut to its first n cells, or s itself (not
// a copy) when it already has at most n cells.
func (s *String) Truncate(n int) *String {
	if n >= len(s.cells) {
		return s
	}
	out := &String{cells: append([]Cell(nil), s.cells[:n]...)}
	return out
}

// PadCols returns a copy of s padded on the right with space cells styled
// with fill until its column width is at least cols.
func (s *String) PadCols(cols int, fill Style) *String {
	out := &String{cells: append([]Cell(nil), s.cells...)}
	for out.ColumnWidth() < cols {
		out.Append(' ', fill)
	}
	return out
}
