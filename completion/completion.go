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

// Package completion implements candidate generation and three of the
// completion strategies named C9 in spec.md §2/§4.9: complete-unique,
// complete-common-prefix, and list-on-second-TAB. The fourth, menu, is
// driven by the editor package (editor.dispatchMenuComplete) using Gather
// and Quote from here.
//
// Grounded on hasyimibhar-go-linenoise's CompletionCallback/Completion
// stub (other_examples/...linenoise.go.go), widened from a single
// flat-string callback into the provider interface, grouping, and
// quote-aware re-quoting spec.md §4.9 names; column layout reuses
// attrstr's wide-codepoint-aware Width() the way the teacher's
// term_frame.go lays out its border characters.
package completion

import (
	"sort"
	"strings"

	"github.com/cogline/edit/attrstr"
	"github.com/cogline/edit/editerr"
)

// Candidate is one completion offered by a Provider, per spec.md §4.9.
type Candidate struct {
	Value       string
	Display     string
	Group       string
	Description string
	// Complete reports whether accepting this candidate completes the
	// word (appending a trailing space) or merely extends it.
	Complete bool
}

// Provider supplies candidates for the word under the cursor.
type Provider interface {
	Complete(line string, wordStart, cursor int) ([]Candidate, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(line string, wordStart, cursor int) ([]Candidate, error)

func (f ProviderFunc) Complete(line string, wordStart, cursor int) ([]Candidate, error) {
	return f(line, wordStart, cursor)
}

// Options configures completion behavior per spec.md §6's session options.
type Options struct {
	CaseInsensitive bool
	GroupHeaders    bool
	AutoPrintAbove  int // auto_print_threshold
	CompleteInWord  bool
}

// Gather queries every provider for the word [wordStart:cursor] in line,
// concatenating results in provider order and logging (via onErr, which
// may be nil) any provider that fails rather than aborting the whole
// completion, per spec.md §7's CompletionError recovery policy.
func Gather(providers []Provider, line string, wordStart, cursor int, onErr func(error)) []Candidate {
	var all []Candidate
	for _, p := range providers {
		cands, err := p.Complete(line, wordStart, cursor)
		if err != nil {
			if onErr != nil {
				onErr(editerr.New(editerr.CompletionError, "completion provider failed", err))
			}
			continue
		}
		all = append(all, cands...)
	}
	return all
}

// CommonPrefix returns the longest prefix shared by every candidate's
// Value, honoring opts.CaseInsensitive.
func CommonPrefix(cands []Candidate, opts Options) string {
	if len(cands) == 0 {
		return ""
	}
	prefix := cands[0].Value
	for _, c := range cands[1:] {
		prefix = commonPrefixOf(prefix, c.Value, opts.CaseInsensitive)
		if prefix == "" {
			return ""
		}
	}
	return prefix
}

func commonPrefixOf(a, b string, ci bool) string {
	ar, br := []rune(a), []rune(b)
	n := len(ar)
	if len(br) < n {
		n = len(br)
	}
	i := 0
	for i < n {
		x, y := ar[i], br[i]
		if ci {
			x, y = toLowerRune(x), toLowerRune(y)
		}
		if x != y {
			break
		}
		i++
	}
	return string(ar[:i])
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// Result is what Resolve decides should happen for one TAB press.
type Result struct {
	// Insert, if non-empty, replaces [wordStart:cursor] with this text.
	Insert string
	// AppendSpace is true when the inserted text completes the word.
	AppendSpace bool
	// ShowList is true when the candidates should be listed (second TAB
	// with no further common-prefix progress).
	ShowList bool
	// Candidates is the full candidate list, sorted by group then value;
	// it is populated only when ShowList is true.
	Candidates []Candidate
	// ConfirmThreshold is true when len(Candidates) exceeds
	// opts.AutoPrintAbove and the caller must ask before listing.
	ConfirmThreshold bool
}

// Resolve implements complete-unique and complete-common-prefix, and
// reports whether this is a "second TAB with no progress" situation per
// spec.md §4.9 (repeatedTab should be true when the previous key press
// was also OpComplete against the same word).
func Resolve(cands []Candidate, opts Options, repeatedTab bool) Result {
	if len(cands) == 0 {
		return Result{}
	}
	if len(cands) == 1 {
		c := cands[0]
		return Result{Insert: c.Value, AppendSpace: c.Complete}
	}

	prefix := CommonPrefix(cands, opts)
	if prefix != "" && !repeatedTab {
		return Result{Insert: prefix}
	}

	if repeatedTab {
		r := Result{ShowList: true, Candidates: sortedCandidates(cands)}
		if opts.AutoPrintAbove > 0 && len(cands) > opts.AutoPrintAbove {
			r.ConfirmThreshold = true
		}
		return r
	}
	return Result{Insert: prefix}
}

func sortedCandidates(cands []Candidate) []Candidate {
	out := append([]Candidate{}, cands...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// FormatColumns lays candidates out in columns sized to width, grouping by
// Group with a header line per group when opts.GroupHeaders is set,
// per spec.md §4.9.
func FormatColumns(cands []Candidate, width int, opts Options) []string {
	if width <= 0 {
		width = 80
	}
	sorted := sortedCandidates(cands)

	groups := groupBy(sorted)
	var lines []string
	for _, g := range groups {
		if opts.GroupHeaders && g.name != "" {
			lines = append(lines, g.name+":")
		}
		lines = append(lines, columnize(g.items, width)...)
	}
	return lines
}

type group struct {
	name  string
	items []Candidate
}

func groupBy(sorted []Candidate) []group {
	var groups []group
	for _, c := range sorted {
		if len(groups) == 0 || groups[len(groups)-1].name != c.Group {
			groups = append(groups, group{name: c.Group})
		}
		g := &groups[len(groups)-1]
		g.items = append(g.items, c)
	}
	return groups
}

func columnize(cands []Candidate, width int) []string {
	if len(cands) == 0 {
		return nil
	}
	maxLen := 0
	for _, c := range cands {
		if l := displayWidth(c); l > maxLen {
			maxLen = l
		}
	}
	colWidth := maxLen + 2
	perRow := width / colWidth
	if perRow < 1 {
		perRow = 1
	}
	var lines []string
	var row strings.Builder
	for i, c := range cands {
		text := displayText(c)
		row.WriteString(text)
		if (i+1)%perRow != 0 && i != len(cands)-1 {
			row.WriteString(strings.Repeat(" ", colWidth-displayWidth(c)))
		} else {
			lines = append(lines, row.String())
			row.Reset()
		}
	}
	return lines
}

func displayText(c Candidate) string {
	if c.Display != "" {
		return c.Display
	}
	return c.Value
}

func displayWidth(c Candidate) int {
	return attrstr.New(displayText(c), attrstr.Default).ColumnWidth()
}

// Quote re-quotes value to match the quoting style of word (spec.md
// §4.9's "when the word under the cursor begins with a quote or contains
// backslash escapes, inserted candidates are re-quoted"). Directory
// candidates (isDir) end with sep and never gain a trailing space
// regardless of AppendSpace.
func Quote(word, value string, isDir bool, sep byte) string {
	quote := byte(0)
	if len(word) > 0 && (word[0] == '\'' || word[0] == '"') {
		quote = word[0]
	}
	out := value
	if quote != 0 {
		out = strings.ReplaceAll(out, string(quote), "\\"+string(quote))
		out = string(quote) + out + string(quote)
	} else if strings.ContainsAny(out, " \t\\") {
		var b strings.Builder
		for _, r := range out {
			if r == ' ' || r == '\t' || r == '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		out = b.String()
	}
	if isDir && !strings.HasSuffix(out, string(sep)) {
		out += string(sep)
	}
	return out
}
