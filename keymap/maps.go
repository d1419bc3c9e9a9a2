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

package keymap

// Control-character byte constants, named like the teacher's
// term/codes.go but scoped to this package.
const (
	ctrlA = 0x01
	ctrlB = 0x02
	ctrlC = 0x03
	ctrlD = 0x04
	ctrlE = 0x05
	ctrlF = 0x06
	ctrlH = 0x08
	tab   = 0x09
	ctrlK = 0x0b
	ctrlL = 0x0c
	cr    = 0x0d
	ctrlN = 0x0e
	ctrlP = 0x10
	ctrlR = 0x12
	ctrlS = 0x13
	ctrlT = 0x14
	ctrlU = 0x15
	ctrlW = 0x17
	ctrlX = 0x18
	ctrlY = 0x19
	esc   = 0x1b
	del   = 0x7f
)

// bindArrowsAndFunctionKeys pre-binds the standard CSI/SS3 arrow and
// function-key sequences named in spec.md §4.4, plus the 0xE0 scan-code
// arrows, into m; motion supplies the operations for arrow letters A-D.
func bindArrowsAndFunctionKeys(m *Map, motion map[byte]Operation) {
	// CSI sequences: ESC [ <letter>
	m.BindOp([]byte{esc, '[', 'A'}, motion['A']) // up
	m.BindOp([]byte{esc, '[', 'B'}, motion['B']) // down
	m.BindOp([]byte{esc, '[', 'C'}, motion['C']) // right
	m.BindOp([]byte{esc, '[', 'D'}, motion['D']) // left
	m.BindOp([]byte{esc, '[', 'H'}, OpBeginningOfLine)
	m.BindOp([]byte{esc, '[', 'F'}, OpEndOfLine)
	// SS3 (VT100 application-keypad) variants: ESC O <letter>
	m.BindOp([]byte{esc, 'O', 'A'}, motion['A'])
	m.BindOp([]byte{esc, 'O', 'B'}, motion['B'])
	m.BindOp([]byte{esc, 'O', 'C'}, motion['C'])
	m.BindOp([]byte{esc, 'O', 'D'}, motion['D'])
	m.BindOp([]byte{esc, 'O', 'H'}, OpBeginningOfLine)
	m.BindOp([]byte{esc, 'O', 'F'}, OpEndOfLine)
	// Extended CSI sequences with a numeric parameter: ESC [ N ~
	m.BindOp([]byte{esc, '[', '1', '~'}, OpBeginningOfLine) // Home (alt)
	m.BindOp([]byte{esc, '[', '3', '~'}, OpForwardDeleteChar)
	m.BindOp([]byte{esc, '[', '4', '~'}, OpEndOfLine) // End (alt)
	m.BindOp([]byte{esc, '[', '5', '~'}, OpNoop)       // PageUp
	m.BindOp([]byte{esc, '[', '6', '~'}, OpNoop)       // PageDown
	// Windows console scan-code prefix (0xE0 then the scan code byte).
	// Reader.Next decodes any leading byte >= 0x80 as UTF-8 without
	// consulting the map, so these four bindings are not reached through it.
	m.BindOp([]byte{0xE0, 'H'}, motion['A'])
	m.BindOp([]byte{0xE0, 'P'}, motion['B'])
	m.BindOp([]byte{0xE0, 'M'}, motion['C'])
	m.BindOp([]byte{0xE0, 'K'}, motion['D'])
}

// NewEmacs builds the default "emacs" key map, grounded on the teacher's
// linechar/lineesc dispatch (backspace, CR/LF, the four arrow keys) and
// widened to the full emacs widget set of spec.md §4.6/§4.8/§4.9, plus the
// emacs-meta and emacs-ctlx sub-maps reached via ESC and C-x.
func NewEmacs() *Map {
	m := NewMap("emacs")

	for b := 0x20; b < 0x7f; b++ {
		m.BindOp([]byte{byte(b)}, OpSelfInsert)
	}
	m.BindOp([]byte{cr}, OpAcceptLine)
	m.BindOp([]byte{'\n'}, OpAcceptLine)
	m.BindOp([]byte{ctrlC}, OpInterrupt)
	m.BindOp([]byte{ctrlD}, OpEndOfFile)
	m.BindOp([]byte{0x1a}, OpSuspend) // ^Z

	m.BindOp([]byte{ctrlA}, OpBeginningOfLine)
	m.BindOp([]byte{ctrlE}, OpEndOfLine)
	m.BindOp([]byte{ctrlB}, OpBackwardChar)
	m.BindOp([]byte{ctrlF}, OpForwardChar)
	m.BindOp([]byte{ctrlH}, OpBackwardDeleteChar)
	m.BindOp([]byte{del}, OpBackwardDeleteChar)
	m.BindOp([]byte{ctrlK}, OpKillLine)
	m.BindOp([]byte{ctrlU}, OpBackwardKillLine)
	m.BindOp([]byte{ctrlW}, OpBackwardKillWord)
	m.BindOp([]byte{ctrlY}, OpYank)
	m.BindOp([]byte{ctrlT}, OpTransposeChars)
	m.BindOp([]byte{ctrlL}, OpClearScreen)
	m.BindOp([]byte{ctrlR}, OpReverseSearchHistory)
	m.BindOp([]byte{ctrlS}, OpForwardSearchHistory)
	m.BindOp([]byte{ctrlP}, OpHistoryPrev)
	m.BindOp([]byte{ctrlN}, OpHistoryNext)
	m.BindOp([]byte{tab}, OpComplete)
	m.BindOp([]byte{0x16}, OpQuotedInsert) // ^V

	bindArrowsAndFunctionKeys(m, map[byte]Operation{
		'A': OpHistoryPrev, 'B': OpHistoryNext, 'C': OpForwardChar, 'D': OpBackwardChar,
	})

	// ESC alone is a valid prefix of everything above; its fallback (used
	// only when nothing follows within the escape timeout) is "do
	// nothing" rather than a bound Final, preserving the invariant that a
	// proper prefix of a Final sequence is never itself Final.
	m.BindAnotherKey([]byte{esc}, OpTarget(OpNoop))

	// emacs-meta (ESC-prefixed word/case operations).
	meta := NewEmacsMeta()
	graftMeta(m, meta)

	// emacs-ctlx (C-x-prefixed operations).
	ctlx := NewEmacsCtlX()
	graftCtlX(m, ctlx)

	return m
}

// NewEmacsMeta builds the "emacs-meta" map: the widgets bound behind the
// ESC prefix in emacs mode (M-f, M-b, M-d, M-t, M-u, M-l, M-c, M-y).
func NewEmacsMeta() *Map {
	m := NewMap("emacs-meta")
	m.BindOp([]byte{'f'}, OpForwardWord)
	m.BindOp([]byte{'b'}, OpBackwardWord)
	m.BindOp([]byte{'d'}, OpForwardKillWord)
	m.BindOp([]byte{del}, OpBackwardKillWord)
	m.BindOp([]byte{'t'}, OpTransposeWords)
	m.BindOp([]byte{'u'}, OpUpcaseWord)
	m.BindOp([]byte{'l'}, OpDowncaseWord)
	m.BindOp([]byte{'c'}, OpCapitalizeWord)
	m.BindOp([]byte{'y'}, OpYankPop)
	m.BindOp([]byte{'<'}, OpHistoryFirst)
	m.BindOp([]byte{'>'}, OpHistoryLast)
	m.BindOp([]byte{'?'}, OpPossibleCompletions)
	return m
}

// NewEmacsCtlX builds the "emacs-ctlx" map: the widgets bound behind the
// C-x prefix in emacs mode (C-x C-x, C-x u).
func NewEmacsCtlX() *Map {
	m := NewMap("emacs-ctlx")
	m.BindOp([]byte{ctrlX}, OpNoop) // exchange-point-and-mark placeholder
	m.BindOp([]byte{'u'}, OpUndo)
	return m
}

// graftMeta copies meta's root-level bindings into parent under the ESC
// prefix, mirroring how GNU readline's emacs_standard_keymap wires its ESC
// slot to emacs_meta_keymap.
func graftMeta(parent *Map, meta *Map) {
	graft(parent, []byte{esc}, meta)
}

func graftCtlX(parent *Map, ctlx *Map) {
	graft(parent, []byte{ctrlX}, ctlx)
}

// graft attaches sub's root node's children directly under parent's node
// at prefix, without overwriting any Final/AnotherKey already bound there
// by bindArrowsAndFunctionKeys.
func graft(parent *Map, prefix []byte, sub *Map) {
	target := parent.walkCreate(prefix)
	for b, child := range sub.root.children {
		if child == nil {
			continue
		}
		if target.children[b] == nil {
			target.children[b] = child
		} else {
			mergeNode(target.children[b], child)
		}
	}
	if sub.root.final != nil && target.final == nil {
		f := *sub.root.final
		target.final = &f
	}
}

func mergeNode(dst, src *node) {
	if src.final != nil && dst.final == nil {
		f := *src.final
		dst.final = &f
	}
	if src.another != nil && dst.another == nil {
		a := *src.another
		dst.another = &a
	}
	for b, c := range src.children {
		if c == nil {
			continue
		}
		if dst.children[b] == nil {
			dst.children[b] = c
		} else {
			mergeNode(dst.children[b], c)
		}
	}
}

// NewViInsert builds the "vi-insert" map: self-insert plus the handful of
// control keys vi insert mode keeps live (accept-line, EOF, interrupt,
// backspace) and ESC to drop into vi-command mode.
func NewViInsert() *Map {
	m := NewMap("vi-insert")
	for b := 0x20; b < 0x7f; b++ {
		m.BindOp([]byte{byte(b)}, OpSelfInsert)
	}
	m.BindOp([]byte{cr}, OpAcceptLine)
	m.BindOp([]byte{'\n'}, OpAcceptLine)
	m.BindOp([]byte{ctrlC}, OpInterrupt)
	m.BindOp([]byte{ctrlD}, OpEndOfFile)
	m.BindOp([]byte{ctrlH}, OpBackwardDeleteChar)
	m.BindOp([]byte{del}, OpBackwardDeleteChar)
	m.BindOp([]byte{tab}, OpComplete)
	// ESC is a prefix of the arrow sequences below, so it is a fallback
	// (taken when nothing extends it within the escape timeout), not a Final.
	m.BindAnotherKey([]byte{esc}, OpTarget(OpViCommandMode))
	bindArrowsAndFunctionKeys(m, map[byte]Operation{
		'A': OpHistoryPrev, 'B': OpHistoryNext, 'C': OpForwardChar, 'D': OpBackwardChar,
	})
	return m
}

// NewViCommand builds the "vi-command" map: the subset of vi normal-mode
// motions and edits commonly exercised by an interactive line editor (not
// a full vi emulation, which is out of scope per spec.md §1).
func NewViCommand() *Map {
	m := NewMap("vi-command")
	m.BindOp([]byte{'h'}, OpBackwardChar)
	m.BindOp([]byte{'l'}, OpForwardChar)
	m.BindOp([]byte{' '}, OpForwardChar)
	m.BindOp([]byte{'w'}, OpForwardWord)
	m.BindOp([]byte{'b'}, OpBackwardWord)
	m.BindOp([]byte{'0'}, OpBeginningOfLine)
	m.BindOp([]byte{'$'}, OpEndOfLine)
	m.BindOp([]byte{'x'}, OpForwardDeleteChar)
	m.BindOp([]byte{'X'}, OpBackwardDeleteChar)
	m.BindOp([]byte{'D'}, OpKillLine)
	m.BindOp([]byte{'i'}, OpViInsertMode)
	m.BindOp([]byte{'a'}, OpViAppendMode)
	m.BindOp([]byte{'k'}, OpHistoryPrev)
	m.BindOp([]byte{'j'}, OpHistoryNext)
	m.BindOp([]byte{'u'}, OpUndo)
	m.BindOp([]byte{'/'}, OpReverseSearchHistory)
	m.BindOp([]byte{'?'}, OpForwardSearchHistory)
	m.BindOp([]byte{cr}, OpAcceptLine)
	m.BindOp([]byte{'\n'}, OpAcceptLine)
	m.BindOp([]byte{ctrlC}, OpInterrupt)
	m.BindOp([]byte{ctrlD}, OpEndOfFile)
	bindArrowsAndFunctionKeys(m, map[byte]Operation{
		'A': OpHistoryPrev, 'B': OpHistoryNext, 'C': OpForwardChar, 'D': OpBackwardChar,
	})
	return m
}
