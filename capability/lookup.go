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

package capability

import "strings"

// ansiBase is shared by every non-dumb built-in table; it covers the
// capabilities the display package (C7) and attrstr package (C3) use.
var ansiBase = map[Name]string{
	CursorAddress:  "\x1b[%p1%d;%p2%dH",
	CursorUp:       "\x1b[A",
	CursorDown:     "\x1b[B",
	CursorLeft:     "\x1b[D",
	CursorRight:    "\x1b[C",
	CursorHome:     "\x1b[H",
	ClearScreen:    "\x1b[2J\x1b[H",
	ClearToEOL:     "\x1b[K",
	ClearToEOS:     "\x1b[J",
	InsertLine:     "\x1b[L",
	DeleteLine:     "\x1b[M",
	EnterBold:      "\x1b[1m",
	EnterUnderline: "\x1b[4m",
	EnterReverse:   "\x1b[7m",
	ExitAttrs:      "\x1b[0m",
	SetForeground256: "\x1b[38;5;%p1%dm",
	SetBackground256: "\x1b[48;5;%p1%dm",
	EnterAltScreen: "\x1b[?1049h",
	ExitAltScreen:  "\x1b[?1049l",
	Bell:           "\x07",
}

func cloneStrs(base map[Name]string) map[Name]string {
	m := make(map[Name]string, len(base))
	for k, v := range base {
		m[k] = v
	}
	return m
}

var builtins = map[string]*Table{
	"xterm-256color": {
		name: "xterm-256color",
		strs: cloneStrs(ansiBase),
		bools: map[string]bool{
			AutoRightMargin:  true,
			EatNewlineGlitch: true,
			"rgb":            true,
		},
	},
	"xterm": {
		name: "xterm",
		strs: cloneStrs(ansiBase),
		bools: map[string]bool{
			AutoRightMargin:  true,
			EatNewlineGlitch: true,
		},
	},
	"screen": {
		name: "screen",
		strs: cloneStrs(ansiBase),
		bools: map[string]bool{
			AutoRightMargin: true,
		},
	},
	"ansi": {
		name:  "ansi",
		strs:  cloneStrs(ansiBase),
		bools: map[string]bool{AutoRightMargin: true},
	},
	"dumb": {
		name:  "dumb",
		strs:  map[Name]string{},
		bools: map[string]bool{},
	},
}

// Lookup returns the capability table for $TERM. Unrecognized values fall
// back by substring: "256color" selects the xterm-256color table,
// "screen"/"tmux" the screen table, and "xterm"/"vt100"/"ansi"/"linux" the
// generic ANSI table. "" and every other value get the capability-free
// "dumb" table, per §4.1's contract that a dumb provider degrades the line
// reader.
func Lookup(term string) *Table {
	if t, ok := builtins[term]; ok {
		return t
	}
	switch {
	case term == "":
		return builtins["dumb"]
	case strings.Contains(term, "256color"):
		return builtins["xterm-256color"]
	case strings.Contains(term, "screen"), strings.Contains(term, "tmux"):
		return builtins["screen"]
	case strings.Contains(term, "xterm"), strings.Contains(term, "vt100"),
		strings.Contains(term, "ansi"), strings.Contains(term, "linux"):
		return builtins["ansi"]
	default:
		return builtins["dumb"]
	}
}

// FromEnv looks up the table for the given TERM environment value, or the
// dumb table if termEnv is empty. NO_COLOR (per spec.md §6) is handled by
// callers, which should force plain style rather than consulting this
// package again.
func FromEnv(termEnv string) *Table {
	return Lookup(termEnv)
}
