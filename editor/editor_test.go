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
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cogline/edit/completion"
	"github.com/cogline/edit/history"
	"github.com/cogline/edit/keymap"
	"github.com/cogline/edit/terminal"
)

func newTestEditor(input string, hist *history.History) *Editor {
	prov := terminal.NewMem(bytes.NewReader([]byte(input)), &bytes.Buffer{}, 24, 80)
	return NewEditor(prov, nil, hist, New(WithExpandAndSubmit(true)))
}

// newTestEditorWithOutput is newTestEditor plus access to the bytes written
// to the terminal, for tests asserting on rendered output rather than just
// the returned line.
func newTestEditorWithOutput(input string, hist *history.History) (*Editor, *bytes.Buffer) {
	out := &bytes.Buffer{}
	prov := terminal.NewMem(bytes.NewReader([]byte(input)), out, 24, 80)
	return NewEditor(prov, nil, hist, New(WithExpandAndSubmit(true))), out
}

func TestReadLineBasicEdit(t *testing.T) {
	e := newTestEditor("hi world\r", nil)
	line, err := e.ReadLine("> ", NoMask)
	require.NoError(t, err)
	require.Equal(t, "hi world", line)
}

func TestReadLineBackspaceEditing(t *testing.T) {
	e := newTestEditor("hii\x7fo\r", nil)
	line, err := e.ReadLine("> ", NoMask)
	require.NoError(t, err)
	require.Equal(t, "hio", line)
}

func TestReadLineHistoryRecallAndEdit(t *testing.T) {
	h := history.New(history.Options{})
	h.Add("alpha")
	h.Add("beta")
	h.Add("gamma")

	// Up-arrow recalls "gamma", two backspaces trim it to "gam", then "eo"
	// is typed before submitting.
	e := newTestEditor("\x1b[A\x7f\x7feo\r", h)
	line, err := e.ReadLine("$ ", NoMask)
	require.NoError(t, err)
	require.Equal(t, "gameo", line)
}

func TestReadLineInterruptKey(t *testing.T) {
	e := newTestEditor("ab\x03", nil)
	_, err := e.ReadLine("> ", NoMask)
	require.Error(t, err)
}

func TestReadLineMaskedInputHidesHistoryNav(t *testing.T) {
	h := history.New(history.Options{})
	h.Add("previous-password")

	// The leading up-arrow must not recall "previous-password" while masked.
	e := newTestEditor("\x1b[Asecret\r", h)
	line, err := e.ReadLine("password: ", '*')
	require.NoError(t, err)
	require.Equal(t, "secret", line)
	require.Equal(t, 1, h.Len(), "masked submission must not be appended to history")
}

func TestReadLineIncrementalReverseSearch(t *testing.T) {
	h := history.New(history.Options{})
	h.Add("alpha")
	h.Add("beta")
	h.Add("gamma")

	// spec.md §8 scenario 3: ^R a ACCEPT against ["alpha","beta","gamma"]
	// must land on "gamma" (the rightmost entry containing "a") and commit
	// it unchanged.
	e := newTestEditor("\x12a\r", h)
	line, err := e.ReadLine("$ ", NoMask)
	require.NoError(t, err)
	require.Equal(t, "gamma", line)
}

func TestReadLineIncrementalSearchExitsOnNonSearchKey(t *testing.T) {
	h := history.New(history.Options{})
	h.Add("alpha")
	h.Add("beta")
	h.Add("gamma")

	// ^R a lands on "gamma"; a plain arrow key (backward-char) exits search
	// mode and applies normally against the matched buffer, then ACCEPT
	// commits it unchanged.
	e := newTestEditor("\x12a\x1b[D\r", h)
	line, err := e.ReadLine("$ ", NoMask)
	require.NoError(t, err)
	require.Equal(t, "gamma", line)
}

func TestReadLineMenuCompleteCyclesCandidates(t *testing.T) {
	// Rebind TAB to menu-complete for this test rather than plain complete,
	// to exercise spec.md §4.9's menu strategy directly: first TAB
	// highlights "commit", second cycles to "commute", third wraps back to
	// "commit", then ACCEPT_LINE closes the menu and commits it.
	e := newTestEditor("c\t\t\t\r", nil)
	e.registry.Active().BindOp([]byte{'\t'}, keymap.OpMenuComplete)
	e.AddCompletionProvider(completion.ProviderFunc(func(line string, wordStart, cursor int) ([]completion.Candidate, error) {
		return []completion.Candidate{
			{Value: "commit", Complete: true},
			{Value: "commute", Complete: true},
		}, nil
	}))

	line, err := e.ReadLine("> ", NoMask)
	require.NoError(t, err)
	require.Equal(t, "commit", line)
}

func TestReadLineSecondTabListsCandidates(t *testing.T) {
	// Seed scenario 5: buffer "c", TAB completes the common prefix "comm"
	// with no listing; a second TAB (no further progress) lists both
	// candidates in columns rather than silently discarding them.
	e, out := newTestEditorWithOutput("c\t\t\r", nil)
	e.AddCompletionProvider(completion.ProviderFunc(func(line string, wordStart, cursor int) ([]completion.Candidate, error) {
		return []completion.Candidate{
			{Value: "commit", Complete: true},
			{Value: "commute", Complete: true},
		}, nil
	}))

	line, err := e.ReadLine("> ", NoMask)
	require.NoError(t, err)
	require.Equal(t, "comm", line)
	require.Contains(t, out.String(), "commit")
	require.Contains(t, out.String(), "commute")
}

func TestReadLineEventExpansionRequiresSecondEnter(t *testing.T) {
	h := history.New(history.Options{})
	h.Add("echo hello")

	// Default options (no WithExpandAndSubmit): a single ACCEPT_LINE on a
	// "!!"-triggering line must only re-render the expanded text, per
	// spec.md §4.10 step d / scenario 6. With only one CR in the input, the
	// second read blocks on the exhausted stream and ReadLine fails rather
	// than returning the expanded line.
	oneEnter := terminal.NewMem(bytes.NewReader([]byte("!!\r")), &bytes.Buffer{}, 24, 80)
	e := NewEditor(oneEnter, nil, h, New())
	_, err := e.ReadLine("$ ", NoMask)
	require.Error(t, err, "a single ACCEPT_LINE must not commit an expanded line")

	// A second CR commits the re-rendered expansion.
	twoEnters := terminal.NewMem(bytes.NewReader([]byte("!!\r\r")), &bytes.Buffer{}, 24, 80)
	e2 := NewEditor(twoEnters, nil, h, New())
	line, err := e2.ReadLine("$ ", NoMask)
	require.NoError(t, err)
	require.Equal(t, "echo hello", line)
}

func TestReadLineCommitsToHistory(t *testing.T) {
	h := history.New(history.Options{})
	e := newTestEditor("first command\r", h)
	_, err := e.ReadLine("> ", NoMask)
	require.NoError(t, err)
	require.Equal(t, 1, h.Len())
	entry, ok := h.Get(0)
	require.True(t, ok)
	require.Equal(t, "first command", entry.Text)
}
