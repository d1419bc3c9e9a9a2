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

// Package history implements the ordered entry store named C8 in
// spec.md §2/§4.8: add/navigate/search, directional search primitives,
// and file persistence with a typed error on malformed content.
//
// Grounded on the teacher's t.last single-slot "previous line" memory
// (term/term_line.go's hpush/hprev), generalized from a single slot into
// a bounded, navigable store with the search and persistence operations
// spec.md §4.8 names.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cogline/edit/editerr"
)

// Entry is one stored line, with an optional timestamp.
type Entry struct {
	Text      string
	Timestamp time.Time
	HasStamp  bool
}

// SearchMode selects how search_backward/search_forward match pattern
// against entry text.
type SearchMode int

const (
	Contains SearchMode = iota
	StartsWith
)

// History is a bounded, cursor-navigable store of entries.
type History struct {
	entries []Entry
	maxSize int
	cursor  int // index into entries, or len(entries) for the "past-the-end" in-progress slot

	ignoreDups  bool
	ignoreSpace bool
	timestamped bool
}

// Options configures a History at construction.
type Options struct {
	MaxSize     int
	IgnoreDups  bool
	IgnoreSpace bool
	Timestamped bool
}

// New creates an empty History.
func New(opts Options) *History {
	if opts.MaxSize <= 0 {
		opts.MaxSize = 1000
	}
	return &History{
		maxSize:     opts.MaxSize,
		ignoreDups:  opts.IgnoreDups,
		ignoreSpace: opts.IgnoreSpace,
		timestamped: opts.Timestamped,
	}
}

// Add appends text as a new entry, applying the ignore-dups and
// ignore-space suppression rules from spec.md §4.10 step 4. It reports
// whether the entry was actually added.
func (h *History) Add(text string) bool {
	if h.ignoreSpace && strings.HasPrefix(text, " ") {
		h.cursor = len(h.entries)
		return false
	}
	if h.ignoreDups && len(h.entries) > 0 && h.entries[len(h.entries)-1].Text == text {
		h.cursor = len(h.entries)
		return false
	}
	e := Entry{Text: text}
	if h.timestamped {
		e.Timestamp = time.Now()
		e.HasStamp = true
	}
	h.entries = append(h.entries, e)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
	h.cursor = len(h.entries)
	return true
}

// Len reports the number of stored entries.
func (h *History) Len() int { return len(h.entries) }

// Get returns the entry at index (0-based from the oldest).
func (h *History) Get(index int) (Entry, bool) {
	if index < 0 || index >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[index], true
}

// Cursor returns the navigation cursor; Len() means "past the end" (the
// in-progress line, per spec.md §4.10's "replaces the buffer; the
// in-progress line is preserved at the past-the-end slot").
func (h *History) Cursor() int { return h.cursor }

// SetCursor positions the navigation cursor, clamped to [0, Len()].
func (h *History) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(h.entries) {
		pos = len(h.entries)
	}
	h.cursor = pos
}

// MoveFirst moves the cursor to the oldest entry and returns it.
func (h *History) MoveFirst() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	h.cursor = 0
	return h.entries[0], true
}

// MoveLast moves the cursor to the newest entry and returns it.
func (h *History) MoveLast() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	h.cursor = len(h.entries) - 1
	return h.entries[h.cursor], true
}

// Prev moves the cursor one entry toward the start and returns it, or
// false if already at the oldest entry.
func (h *History) Prev() (Entry, bool) {
	if h.cursor <= 0 {
		return Entry{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Next moves the cursor one entry toward the end and returns it. It
// returns false if already past the end, and also when the step lands on
// the past-the-end slot (the cursor still moves there).
func (h *History) Next() (Entry, bool) {
	if h.cursor >= len(h.entries) {
		return Entry{}, false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return Entry{}, false
	}
	return h.entries[h.cursor], true
}

// searchFrom walks entries from 'from' in dir (-1 backward, +1 forward),
// returning the first index whose text matches pattern under mode.
func (h *History) searchFrom(pattern string, from int, dir int, mode SearchMode) (int, bool) {
	match := func(s string) bool {
		switch mode {
		case StartsWith:
			return strings.HasPrefix(s, pattern)
		default:
			return strings.Contains(s, pattern)
		}
	}
	for i := from; i >= 0 && i < len(h.entries); i += dir {
		if match(h.entries[i].Text) {
			return i, true
		}
	}
	return 0, false
}

// SearchBackward searches from index 'from' toward the start.
func (h *History) SearchBackward(pattern string, from int, mode SearchMode) (int, Entry, bool) {
	idx, ok := h.searchFrom(pattern, from, -1, mode)
	if !ok {
		return 0, Entry{}, false
	}
	return idx, h.entries[idx], true
}

// SearchForward searches from index 'from' toward the end.
func (h *History) SearchForward(pattern string, from int, mode SearchMode) (int, Entry, bool) {
	idx, ok := h.searchFrom(pattern, from, 1, mode)
	if !ok {
		return 0, Entry{}, false
	}
	return idx, h.entries[idx], true
}

// --- persistence ------------------------------------------------------

const escapedNewline = `\n`
const escapedBackslash = `\\`

func encodeLine(s string) string {
	s = strings.ReplaceAll(s, "\\", escapedBackslash)
	s = strings.ReplaceAll(s, "\n", escapedNewline)
	return s
}

func decodeLine(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Save writes the history to path using the format in spec.md §6: one
// entry per logical line, optional `#<epoch>` timestamp lines, writing to
// a temp file and renaming so the save is never partial.
func (h *History) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".history-*.tmp")
	if err != nil {
		return editerr.New(editerr.HistoryFormat, "create temp history file", err)
	}
	tmpName := tmp.Name()
	w := bufio.NewWriter(tmp)
	for _, e := range h.entries {
		if e.HasStamp {
			fmt.Fprintf(w, "#%d\n", e.Timestamp.Unix())
		}
		fmt.Fprintln(w, encodeLine(e.Text))
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return editerr.New(editerr.HistoryFormat, "flush history file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return editerr.New(editerr.HistoryFormat, "fsync history file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return editerr.New(editerr.HistoryFormat, "close history file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return editerr.New(editerr.HistoryFormat, "rename history file into place", err)
	}
	return nil
}

// OnWarning receives a message for each skipped, unrecognized line
// encountered while loading, per spec.md §7's "recovered by skipping the
// entry and surfacing a warning callback".
type OnWarning func(line int, message string)

// Load reads path, appending its entries to h. Every line not starting
// with `#` is decoded as an entry; a `#`-line that is not a decimal epoch
// is skipped with a call to warn (which may be nil). HistoryFormat is
// returned only when the file cannot be opened or read; no line is
// rejected as malformed.
func (h *History) Load(path string, warn OnWarning) error {
	f, err := os.Open(path)
	if err != nil {
		return editerr.New(editerr.HistoryFormat, "open history file", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var pendingStamp time.Time
	havePendingStamp := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			epoch, err := strconv.ParseInt(line[1:], 10, 64)
			if err != nil {
				if warn != nil {
					warn(lineNo, "unrecognized history comment line: "+line)
				}
				continue
			}
			pendingStamp = time.Unix(epoch, 0)
			havePendingStamp = true
			continue
		}
		e := Entry{Text: decodeLine(line)}
		if havePendingStamp {
			e.Timestamp = pendingStamp
			e.HasStamp = true
			havePendingStamp = false
		}
		h.entries = append(h.entries, e)
	}
	if err := scanner.Err(); err != nil {
		return editerr.New(editerr.HistoryFormat, "read history file", err)
	}
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
	h.cursor = len(h.entries)
	return nil
}
