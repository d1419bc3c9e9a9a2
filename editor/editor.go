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

package editor

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/cogline/edit/attrstr"
	"github.com/cogline/edit/buffer"
	"github.com/cogline/edit/capability"
	"github.com/cogline/edit/completion"
	"github.com/cogline/edit/display"
	"github.com/cogline/edit/editerr"
	"github.com/cogline/edit/history"
	"github.com/cogline/edit/keymap"
	"github.com/cogline/edit/terminal"
)

// NoMask is the sentinel ReadLine's mask parameter takes to mean "do not
// mask input at all". Passing 0 (NUL) instead masks input but renders
// nothing for each self-inserted codepoint, per spec.md §4.10 ("or
// nothing if mask is NUL"); 0 cannot double as both "off" and "NUL mask"
// so the two are given distinct values.
const NoMask rune = -1

// suspender is implemented by providers (terminal.unixProvider) that know
// how to drop to cooked mode, raise SIGSTOP, and restore on resume.
type suspender interface {
	Suspend() error
}

// Editor is one configured line-reading session: the composition root for
// C1 through C10.
type Editor struct {
	prov terminal.Provider
	caps *capability.Table

	registry *keymap.Registry
	reader   *keymap.Reader

	hist *history.History

	providers []completion.Provider

	disp *display.Display
	opts Options

	onWarning func(error)
}

// NewEditor constructs an Editor over prov, using hist for history
// navigation/append (may be nil to disable history) and caps for
// rendering (if nil, a TERM-based lookup of "dumb" is used, which
// degrades C7 to plain line-at-a-time redraws).
func NewEditor(prov terminal.Provider, caps *capability.Table, hist *history.History, opts Options) *Editor {
	if caps == nil {
		caps = capability.Lookup("dumb")
	}
	reg := keymap.NewRegistry()
	if opts.EditingMode == "vi" {
		reg.Use("vi-insert")
	}
	e := &Editor{
		prov:     prov,
		caps:     caps,
		registry: reg,
		reader: keymap.NewReader(prov, keymap.ReaderOptions{
			EscapeTimeout:  opts.EscapeTimeout,
			PasteTimeout:   opts.PasteTimeout,
			BracketedPaste: opts.BracketedPaste,
		}),
		hist: hist,
		disp: display.New(prov, caps),
		opts: opts,
	}
	return e
}

// AddCompletionProvider registers a candidate source consulted by
// OpComplete and friends.
func (e *Editor) AddCompletionProvider(p completion.Provider) {
	e.providers = append(e.providers, p)
}

// SetWarningHandler installs a callback invoked for recoverable errors
// (CompletionError, EventExpansionError) that the loop absorbs locally
// rather than returning, per spec.md §7.
func (e *Editor) SetWarningHandler(f func(error)) { e.onWarning = f }

func (e *Editor) warn(err error) {
	if e.onWarning != nil {
		e.onWarning(err)
	}
}

func (e *Editor) beep() {
	if !e.opts.Bell {
		return
	}
	if s, ok := e.caps.Get(capability.Bell); ok {
		e.prov.Write([]byte(s))
	}
}

// ReadLine implements the read_line loop named C10 in spec.md §4.10.
// mask, if not NoMask, replaces every self-inserted codepoint on screen
// with the mask rune (or renders nothing at all when mask is 0); history
// and completion are disabled for the invocation. Pass NoMask to disable
// masking entirely.
func (e *Editor) ReadLine(prompt string, mask rune) (string, error) {
	masked := mask != NoMask

	if err := e.prov.Raw(); err != nil {
		return "", editerr.New(editerr.TerminalIO, "enter raw mode", err)
	}
	restore := func() { e.prov.Close() }

	e.disp.Invalidate()
	e.prov.OnResize(func(terminal.Size) { e.disp.Invalidate() })

	buf := buffer.New()
	promptStr := attrstr.New(prompt, attrstr.Default)
	contStr := attrstr.New(e.opts.SecondaryPrompt, attrstr.Default)

	awaitingSecondEnter := false
	lastWasComplete := false

	searching := false
	searchDir := -1
	var searchPattern strings.Builder
	searchFrom := 0

	menu := &menuState{index: -1}

	for {
		size, _ := e.prov.Size()
		lineAttr := e.renderLine(buf, masked, mask)
		rows, cr, cc := display.Wrap(promptStr, contStr, lineAttr, size.Cols, buf.Cursor())
		if err := e.disp.Render(rows, cr, cc); err != nil {
			restore()
			return "", err
		}

		ev, err := e.reader.Next(e.registry.Active())
		if err != nil {
			restore()
			if errors.Is(err, terminal.ErrInterrupted) {
				return "", editerr.New(editerr.Interrupted, "read interrupted", err)
			}
			return "", editerr.New(editerr.TerminalIO, "read input", err)
		}

		if menu.active && ev.Op != keymap.OpMenuComplete && ev.Op != keymap.OpMenuCompleteBackward {
			menu.reset()
		}

		// Incremental search (spec.md §4.8/§8 scenario 3) intercepts every
		// key while active: typed runes extend the pattern and re-search,
		// repeated ^R/^S deepen the search, and anything else closes the
		// search (retaining whatever the last match left in buf) before
		// falling through to the normal dispatch below.
		if searching {
			switch {
			case ev.IsMacro:
				e.reader.PushMacro([]byte(ev.Macro))
				continue

			case ev.Op == keymap.OpSelfInsert:
				searchPattern.WriteRune(ev.Rune)
				if idx, entry, ok := e.searchStep(searchDir, searchPattern.String(), searchFrom); ok {
					searchFrom = idx
					buf.SetText(entry.Text)
					buf.SetCursor(buf.Len())
				} else {
					e.beep()
				}
				continue

			case ev.Op == keymap.OpBackwardDeleteChar:
				if r := []rune(searchPattern.String()); len(r) > 0 {
					searchPattern.Reset()
					searchPattern.WriteString(string(r[:len(r)-1]))
				}
				searchFrom = e.searchStartIndex(searchDir)
				if searchPattern.Len() > 0 {
					if idx, entry, ok := e.searchStep(searchDir, searchPattern.String(), searchFrom); ok {
						searchFrom = idx
						buf.SetText(entry.Text)
						buf.SetCursor(buf.Len())
					}
				}
				continue

			case ev.Op == keymap.OpReverseSearchHistory || ev.Op == keymap.OpForwardSearchHistory:
				searchDir = -1
				if ev.Op == keymap.OpForwardSearchHistory {
					searchDir = 1
				}
				if pattern := searchPattern.String(); pattern != "" {
					if idx, entry, ok := e.searchStep(searchDir, pattern, searchFrom+searchDir); ok {
						searchFrom = idx
						buf.SetText(entry.Text)
						buf.SetCursor(buf.Len())
					} else {
						e.beep()
					}
				}
				continue

			default:
				searching = false
			}
		}

		switch {
		case ev.IsMacro:
			e.reader.PushMacro([]byte(ev.Macro))
			continue

		case ev.Op == keymap.OpSelfInsert || ev.Op == keymap.OpQuotedInsert:
			buf.SelfInsert(ev.Rune)
			awaitingSecondEnter = false

		case ev.Op == keymap.OpAcceptLine:
			if masked || e.hist == nil {
				restore()
				return buf.Text(), nil
			}
			text, changed, err := e.hist.Expand(buf.Text())
			if err != nil {
				e.warn(err)
				e.beep()
				continue
			}
			if changed && !e.opts.ExpandAndSubmit && !awaitingSecondEnter {
				buf.SetText(text)
				buf.SetCursor(buf.Len())
				awaitingSecondEnter = true
				continue
			}
			if changed {
				buf.SetText(text)
			}
			e.commit(buf.Text(), masked)
			restore()
			return buf.Text(), nil

		case ev.Op == keymap.OpInterrupt:
			restore()
			return "", editerr.New(editerr.Interrupted, "interrupt key pressed", nil)

		case ev.Op == keymap.OpEndOfFile:
			if buf.Len() == 0 {
				restore()
				return "", editerr.New(editerr.Interrupted, "end of file", nil)
			}
			buf.ForwardDeleteChar()

		case ev.Op == keymap.OpSuspend:
			if s, ok := e.prov.(suspender); ok {
				if err := s.Suspend(); err == nil {
					e.disp.Invalidate()
				}
			}

		case ev.Op == keymap.OpClearScreen:
			e.disp.Invalidate()
			if cl, ok := e.caps.Get(capability.ClearScreen); ok {
				e.prov.Write([]byte(cl))
			}

		case ev.Op == keymap.OpRedraw:
			e.disp.Invalidate()

		// History navigation, incremental search, and completion are
		// disabled for masked input per spec.md §4.10; everything else
		// (motion, kill/yank, case ops) still applies to the masked buffer
		// and falls through to the default dispatch below.

		case !masked && e.hist != nil && (ev.Op == keymap.OpReverseSearchHistory || ev.Op == keymap.OpForwardSearchHistory):
			searching = true
			searchDir = -1
			if ev.Op == keymap.OpForwardSearchHistory {
				searchDir = 1
			}
			searchPattern.Reset()
			searchFrom = e.searchStartIndex(searchDir)

		case !masked && e.hist != nil && ev.Op == keymap.OpHistoryPrev:
			e.historyNav(buf, func() (history.Entry, bool) { return e.hist.Prev() })

		case !masked && e.hist != nil && ev.Op == keymap.OpHistoryNext:
			e.historyNav(buf, func() (history.Entry, bool) { return e.hist.Next() })

		case !masked && e.hist != nil && ev.Op == keymap.OpHistoryFirst:
			e.historyNav(buf, func() (history.Entry, bool) { return e.hist.MoveFirst() })

		case !masked && e.hist != nil && ev.Op == keymap.OpHistoryLast:
			e.historyNav(buf, func() (history.Entry, bool) { return e.hist.MoveLast() })

		case !masked && ev.Op == keymap.OpComplete:
			e.dispatchComplete(buf, lastWasComplete)
			lastWasComplete = true
			continue

		case !masked && ev.Op == keymap.OpPossibleCompletions:
			e.dispatchComplete(buf, true)
			continue

		case !masked && ev.Op == keymap.OpMenuComplete:
			e.dispatchMenuComplete(buf, menu, false)
			continue

		case !masked && ev.Op == keymap.OpMenuCompleteBackward:
			e.dispatchMenuComplete(buf, menu, true)
			continue

		default:
			e.dispatchBufferOp(buf, ev.Op)
		}

		lastWasComplete = lastWasComplete && (ev.Op == keymap.OpComplete || ev.Op == keymap.OpPossibleCompletions)
	}
}

// renderLine builds the attributed string for buf's contents. When masked
// is false it renders the text verbatim; when true it substitutes mask for
// every cell, or renders nothing at all when mask is 0 (NUL), per
// spec.md §4.10.
func (e *Editor) renderLine(buf *buffer.Buffer, masked bool, mask rune) *attrstr.String {
	if !masked {
		return attrstr.New(buf.Text(), attrstr.Default)
	}
	s := &attrstr.String{}
	if mask == 0 {
		return s
	}
	for range buf.Runes() {
		s.Append(mask, attrstr.Default)
	}
	return s
}

// searchStartIndex picks the history index an incremental search (re)starts
// from, one step away from the navigation cursor so that repeated searches
// for the same pattern never re-match the entry already on screen.
func (e *Editor) searchStartIndex(dir int) int {
	idx := e.hist.Cursor() + dir
	if idx < 0 {
		idx = 0
	}
	if last := e.hist.Len() - 1; idx > last {
		idx = last
	}
	return idx
}

// searchStep runs one directional history search, per spec.md §4.8's
// search_backward/search_forward primitives (history.SearchBackward and
// SearchForward), using Contains matching as GNU readline's ^R/^S do.
func (e *Editor) searchStep(dir int, pattern string, from int) (int, history.Entry, bool) {
	if dir < 0 {
		return e.hist.SearchBackward(pattern, from, history.Contains)
	}
	return e.hist.SearchForward(pattern, from, history.Contains)
}

// menuState holds the candidate-index state that persists across repeated
// OpMenuComplete/OpMenuCompleteBackward presses for spec.md §4.9's "menu"
// completion strategy; it resets whenever a non-menu-complete key arrives.
type menuState struct {
	active  bool
	cands   []completion.Candidate
	index   int
	start   int
	wordLen int
	word    string
}

func (m *menuState) reset() {
	m.active = false
	m.cands = nil
	m.index = -1
}

// dispatchMenuComplete implements spec.md §4.9's menu strategy: the first
// press gathers candidates for the word under the cursor and highlights the
// first one; repeated presses cycle forward or backward through the list,
// replacing the previously inserted candidate each time. ACCEPT_LINE (or
// any other non-menu-complete key, per the reset in ReadLine above) closes
// the menu, leaving the highlighted candidate in the buffer.
func (e *Editor) dispatchMenuComplete(buf *buffer.Buffer, menu *menuState, backward bool) {
	if !menu.active {
		runes := buf.Runes()
		start, end := wordBounds(runes, buf.Cursor(), e.opts.CompleteInWord)
		line := buf.Text()

		cands := completion.Gather(e.providers, line, start, buf.Cursor(), func(err error) { e.warn(err) })
		if len(cands) == 0 {
			e.beep()
			return
		}
		menu.active = true
		menu.cands = cands
		menu.index = -1
		menu.start = start
		menu.wordLen = end - start
		menu.word = string(runes[start:end])
	}

	if backward {
		menu.index--
		if menu.index < 0 {
			menu.index = len(menu.cands) - 1
		}
	} else {
		menu.index++
		if menu.index >= len(menu.cands) {
			menu.index = 0
		}
	}

	cand := menu.cands[menu.index]
	inserted := completion.Quote(menu.word, cand.Value, false, '/')

	buf.SetCursor(menu.start)
	for i := 0; i < menu.wordLen; i++ {
		buf.ForwardDeleteChar()
	}
	buf.InsertString(inserted)
	menu.wordLen = len([]rune(inserted))
}

func (e *Editor) historyNav(buf *buffer.Buffer, step func() (history.Entry, bool)) {
	entry, ok := step()
	if !ok {
		e.beep()
		return
	}
	buf.SetText(entry.Text)
	buf.SetCursor(buf.Len())
}

// commit appends text to history per spec.md §4.10 step 4's suppression
// rules.
func (e *Editor) commit(text string, masked bool) {
	if e.hist == nil || masked {
		return
	}
	if e.opts.HistoryIgnoreSpace && strings.HasPrefix(text, " ") {
		return
	}
	e.hist.Add(text)
}

func isWordByte(r rune) bool { return !unicode.IsSpace(r) }

// wordBounds finds the whitespace-delimited token under the cursor, the
// unit completion operates on (distinct from buffer's alnum word-motion
// boundary).
func wordBounds(runes []rune, cursor int, completeInWord bool) (start, end int) {
	start = cursor
	for start > 0 && isWordByte(runes[start-1]) {
		start--
	}
	end = cursor
	if completeInWord {
		for end < len(runes) && isWordByte(runes[end]) {
			end++
		}
	}
	return start, end
}

func (e *Editor) dispatchComplete(buf *buffer.Buffer, repeated bool) {
	runes := buf.Runes()
	start, end := wordBounds(runes, buf.Cursor(), e.opts.CompleteInWord)
	line := buf.Text()

	cands := completion.Gather(e.providers, line, start, buf.Cursor(), func(err error) { e.warn(err) })
	if len(cands) == 0 {
		e.beep()
		return
	}

	res := completion.Resolve(cands, completion.Options{
		CaseInsensitive: e.opts.CaseInsensitiveCompletion,
		GroupHeaders:    e.opts.GroupCompletions,
		AutoPrintAbove:  e.opts.AutoPrintThreshold,
	}, repeated)

	if res.ShowList {
		if res.ConfirmThreshold && !e.confirmListing(len(res.Candidates)) {
			e.disp.Invalidate()
			return
		}
		e.showCandidates(res.Candidates)
		return
	}
	if res.Insert == "" {
		e.beep()
		return
	}
	word := string(runes[start:end])
	inserted := completion.Quote(word, res.Insert, false, '/')
	if res.AppendSpace {
		inserted += " "
	}
	buf.SetCursor(start)
	for i := 0; i < end-start; i++ {
		buf.ForwardDeleteChar()
	}
	buf.InsertString(inserted)
}

// confirmListing asks "Display all N possibilities? (y or n)" above the
// prompt when res.Candidates exceeds opts.AutoPrintThreshold, per
// spec.md §4.9's "prompt for confirmation" gate, and reports the user's
// y/n answer. A stray interrupt or EOF while answering counts as "no".
func (e *Editor) confirmListing(n int) bool {
	e.prov.Write([]byte(fmt.Sprintf("\r\nDisplay all %d possibilities? (y or n) ", n)))
	e.prov.Flush()
	for {
		ev, err := e.reader.Next(e.registry.Active())
		if err != nil {
			return false
		}
		if ev.Op == keymap.OpSelfInsert {
			switch ev.Rune {
			case 'y', 'Y':
				return true
			case 'n', 'N':
				return false
			}
			continue
		}
		if ev.Op == keymap.OpInterrupt || ev.Op == keymap.OpEndOfFile {
			return false
		}
	}
}

// showCandidates writes res.Candidates as width-aware, optionally grouped
// columns above the prompt via completion.FormatColumns, the "display all
// candidates in columns" behavior spec.md §4.9/§2 names for the second
// TAB (seed scenario 5). The display is invalidated afterward so the next
// Render redraws the prompt and buffer below the listing.
func (e *Editor) showCandidates(cands []completion.Candidate) {
	size, _ := e.prov.Size()
	lines := completion.FormatColumns(cands, size.Cols, completion.Options{
		CaseInsensitive: e.opts.CaseInsensitiveCompletion,
		GroupHeaders:    e.opts.GroupCompletions,
	})
	var out strings.Builder
	out.WriteString("\r\n")
	for _, line := range lines {
		out.WriteString(line)
		out.WriteString("\r\n")
	}
	e.prov.Write([]byte(out.String()))
	e.prov.Flush()
	e.disp.Invalidate()
}

func (e *Editor) dispatchBufferOp(buf *buffer.Buffer, op keymap.Operation) {
	switch op {
	case keymap.OpBackwardChar:
		buf.BackwardChar()
	case keymap.OpForwardChar:
		buf.ForwardChar()
	case keymap.OpBackwardWord:
		buf.BackwardWord()
	case keymap.OpForwardWord:
		buf.ForwardWord()
	case keymap.OpBeginningOfLine:
		buf.BeginningOfLine()
	case keymap.OpEndOfLine:
		buf.EndOfLine()
	case keymap.OpBackwardDeleteChar:
		buf.BackwardDeleteChar()
	case keymap.OpForwardDeleteChar:
		buf.ForwardDeleteChar()
	case keymap.OpBackwardKillWord:
		buf.BackwardKillWord()
	case keymap.OpForwardKillWord:
		buf.ForwardKillWord()
	case keymap.OpKillLine:
		buf.KillLine()
	case keymap.OpBackwardKillLine:
		buf.BackwardKillLine()
	case keymap.OpKillWholeLine:
		buf.KillWholeLine()
	case keymap.OpYank:
		buf.Yank()
	case keymap.OpYankPop:
		if !buf.YankPop() {
			e.beep()
		}
	case keymap.OpTransposeChars:
		buf.TransposeChars()
	case keymap.OpTransposeWords:
		buf.TransposeWords()
	case keymap.OpUpcaseWord:
		buf.UpcaseWord()
	case keymap.OpDowncaseWord:
		buf.DowncaseWord()
	case keymap.OpCapitalizeWord:
		buf.CapitalizeWord()
	case keymap.OpUndo:
		if !buf.Undo() {
			e.beep()
		}
	case keymap.OpViCommandMode:
		e.registry.Use("vi-command")
	case keymap.OpViInsertMode, keymap.OpViAppendMode:
		e.registry.Use("vi-insert")
	case keymap.OpNoop:
		e.beep()
	default:
		e.beep()
	}
}
