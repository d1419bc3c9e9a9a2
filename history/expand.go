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

package history

import (
	"strconv"
	"strings"

	"github.com/cogline/edit/editerr"
)

// Expand performs the event-expansion grammar from spec.md §4.8 on line,
// substituting `!!`, `!N`, `!?str?`, `!str`, and a leading `^a^b^` against
// h's entries. It returns the expanded line and whether the line actually
// changed (callers re-render and require a second ACCEPT_LINE when it
// did, per spec.md §4.10 step d).
func (h *History) Expand(line string) (string, bool, error) {
	expanded := line
	changed := false

	if strings.HasPrefix(line, "^") {
		if rest := line[1:]; strings.Contains(rest, "^") {
			parts := strings.SplitN(rest, "^", 3)
			if len(parts) >= 2 {
				a, b := parts[0], parts[1]
				last, ok := h.lastEntry()
				if !ok || !strings.Contains(last, a) {
					return line, false, editerr.New(editerr.EventExpansionError, "no previous match for ^"+a+"^"+b+"^", nil)
				}
				return strings.Replace(last, a, b, 1), true, nil
			}
		}
	}

	var out strings.Builder
	i := 0
	for i < len(expanded) {
		c := expanded[i]
		if c != '!' || i+1 >= len(expanded) {
			out.WriteByte(c)
			i++
			continue
		}
		rest := expanded[i+1:]
		switch {
		case strings.HasPrefix(rest, "!"):
			last, ok := h.lastEntry()
			if !ok {
				return line, false, editerr.New(editerr.EventExpansionError, "!! has no previous history entry", nil)
			}
			out.WriteString(last)
			changed = true
			i += 2

		case strings.HasPrefix(rest, "?"):
			end := strings.IndexByte(rest[1:], '?')
			if end < 0 {
				out.WriteByte(c)
				i++
				continue
			}
			needle := rest[1 : 1+end]
			text, ok := h.lastContaining(needle)
			if !ok {
				return line, false, editerr.New(editerr.EventExpansionError, "!?"+needle+"? matched nothing", nil)
			}
			out.WriteString(text)
			changed = true
			i += 1 + 1 + end + 1

		case len(rest) > 0 && (rest[0] == '-' || isDigit(rest[0])):
			n, consumed := scanInt(rest)
			if consumed == 0 {
				out.WriteByte(c)
				i++
				continue
			}
			text, ok := h.byEventIndex(n)
			if !ok {
				return line, false, editerr.New(editerr.EventExpansionError, "history event out of range", nil)
			}
			out.WriteString(text)
			changed = true
			i += 1 + consumed

		case len(rest) > 0 && isWordStart(rest[0]):
			word, consumed := scanWord(rest)
			text, ok := h.lastStartingWith(word)
			if !ok {
				return line, false, editerr.New(editerr.EventExpansionError, "!"+word+" matched nothing", nil)
			}
			out.WriteString(text)
			changed = true
			i += 1 + consumed

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String(), changed, nil
}

func (h *History) lastEntry() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1].Text, true
}

func (h *History) lastContaining(needle string) (string, bool) {
	for i := len(h.entries) - 1; i >= 0; i-- {
		if strings.Contains(h.entries[i].Text, needle) {
			return h.entries[i].Text, true
		}
	}
	return "", false
}

func (h *History) lastStartingWith(prefix string) (string, bool) {
	for i := len(h.entries) - 1; i >= 0; i-- {
		if strings.HasPrefix(h.entries[i].Text, prefix) {
			return h.entries[i].Text, true
		}
	}
	return "", false
}

// byEventIndex resolves !N: positive is 1-based from the start, negative
// counts back from the most recent entry.
func (h *History) byEventIndex(n int) (string, bool) {
	var idx int
	if n >= 0 {
		idx = n - 1
	} else {
		idx = len(h.entries) + n
	}
	if idx < 0 || idx >= len(h.entries) {
		return "", false
	}
	return h.entries[idx].Text, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isWordStart(b byte) bool {
	return b != ' ' && b != '\t' && b != '!' && b != '^'
}

func scanInt(s string) (int, int) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return 0, 0
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, 0
	}
	return n, i
}

func scanWord(s string) (string, int) {
	i := 0
	for i < len(s) && isWordStart(s[i]) {
		i++
	}
	return s[:i], i
}
