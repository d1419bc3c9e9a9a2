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

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cogline/edit/terminal"
)

// fakeProvider feeds a fixed byte slice and reports ErrTimeout, rather than
// io.EOF, once it's exhausted - simulating an escape-timeout expiry without
// depending on wall-clock sleeps in tests.
type fakeProvider struct {
	bytes []byte
	pos   int
}

func (f *fakeProvider) Capable() bool { return true }
func (f *fakeProvider) Attributes() (terminal.Attributes, error) { return nil, nil }
func (f *fakeProvider) SetAttributes(terminal.Attributes) error  { return nil }
func (f *fakeProvider) Raw() error                               { return nil }
func (f *fakeProvider) Size() (terminal.Size, error)             { return terminal.Size{Rows: 24, Cols: 80}, nil }
func (f *fakeProvider) Write(buf []byte) (int, error)            { return len(buf), nil }
func (f *fakeProvider) Flush() error                             { return nil }
func (f *fakeProvider) OnResize(terminal.ResizeFunc)             {}
func (f *fakeProvider) Close() error                             { return nil }

func (f *fakeProvider) Read(buf []byte, deadline time.Time) (int, error) {
	if f.pos >= len(f.bytes) {
		return 0, terminal.ErrTimeout
	}
	buf[0] = f.bytes[f.pos]
	f.pos++
	return 1, nil
}

func TestReaderSelfInsert(t *testing.T) {
	prov := &fakeProvider{bytes: []byte("Q")}
	r := NewReader(prov, DefaultReaderOptions())
	ev, err := r.Next(NewEmacs())
	require.NoError(t, err)
	require.Equal(t, OpSelfInsert, ev.Op)
	require.Equal(t, 'Q', ev.Rune)
}

func TestReaderFinalSequence(t *testing.T) {
	prov := &fakeProvider{bytes: []byte{esc, '[', 'A'}}
	r := NewReader(prov, DefaultReaderOptions())
	ev, err := r.Next(NewEmacs())
	require.NoError(t, err)
	require.Equal(t, OpHistoryPrev, ev.Op)
	require.Equal(t, []byte{esc, '[', 'A'}, ev.Raw)
}

func TestReaderLoneEscapeResolvesAnotherKey(t *testing.T) {
	prov := &fakeProvider{bytes: []byte{esc}}
	r := NewReader(prov, DefaultReaderOptions())
	ev, err := r.Next(NewEmacs())
	require.NoError(t, err)
	require.Equal(t, OpNoop, ev.Op)
	require.Equal(t, []byte{esc}, ev.Raw)
}

func TestReaderControlKey(t *testing.T) {
	prov := &fakeProvider{bytes: []byte{ctrlA}}
	r := NewReader(prov, DefaultReaderOptions())
	ev, err := r.Next(NewEmacs())
	require.NoError(t, err)
	require.Equal(t, OpBeginningOfLine, ev.Op)
}

func TestReaderUTF8SelfInsert(t *testing.T) {
	// 'é' encoded as UTF-8 (U+00E9 -> 0xC3 0xA9).
	prov := &fakeProvider{bytes: []byte{0xC3, 0xA9}}
	r := NewReader(prov, DefaultReaderOptions())
	ev, err := r.Next(NewEmacs())
	require.NoError(t, err)
	require.Equal(t, OpSelfInsert, ev.Op)
	require.Equal(t, 'é', ev.Rune)
}

func TestReaderMacroPlayback(t *testing.T) {
	prov := &fakeProvider{}
	r := NewReader(prov, DefaultReaderOptions())
	r.PushMacro([]byte{'a'})
	ev, err := r.Next(NewEmacs())
	require.NoError(t, err)
	require.Equal(t, OpSelfInsert, ev.Op)
	require.Equal(t, 'a', ev.Rune)
}

func TestReaderMaxLookaheadForcesResolution(t *testing.T) {
	m := NewMap("deep")
	seq := []byte{esc, '[', '1', '2', '3', '4', '5', '6', '7', '8', '9', '0'}
	m.BindOp(seq, OpNoop) // binding only reachable past MaxLookahead
	m.BindAnotherKey([]byte{esc}, OpTarget(OpRedraw))

	opts := DefaultReaderOptions()
	opts.MaxLookahead = 4
	prov := &fakeProvider{bytes: seq}
	r := NewReader(prov, opts)
	ev, err := r.Next(m)
	require.NoError(t, err)
	require.Equal(t, OpRedraw, ev.Op)
}
