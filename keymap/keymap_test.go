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

	"github.com/stretchr/testify/require"
)

func TestLookupTotality(t *testing.T) {
	m := NewMap("test")
	m.BindOp([]byte{'a'}, OpSelfInsert)
	m.BindOp([]byte{esc, '[', 'A'}, OpHistoryPrev)

	res, target := m.Lookup([]byte{'a'})
	require.Equal(t, Final, res)
	require.Equal(t, OpSelfInsert, target.Op)

	res, _ = m.Lookup([]byte{'z'})
	require.Equal(t, Missing, res)

	res, _ = m.Lookup([]byte{esc})
	require.Equal(t, Partial, res)

	res, _ = m.Lookup([]byte{esc, '['})
	require.Equal(t, Partial, res)

	res, target = m.Lookup([]byte{esc, '[', 'A'})
	require.Equal(t, Final, res)
	require.Equal(t, OpHistoryPrev, target.Op)
}

func TestFinalNeverAProperPrefixOfFinal(t *testing.T) {
	m := NewEmacs()
	res, _ := m.Lookup([]byte{esc})
	require.NotEqual(t, Final, res, "a lone ESC must never resolve Final since it prefixes emacs-meta bindings")
}

func TestLongestAnother(t *testing.T) {
	m := NewMap("test")
	m.BindAnotherKey([]byte{esc}, OpTarget(OpNoop))
	m.BindAnotherKey([]byte{esc, '['}, OpTarget(OpClearScreen))
	m.BindOp([]byte{esc, '[', 'A'}, OpHistoryPrev)

	target, consumed, ok := m.LongestAnother([]byte{esc, '[', 'Z'})
	require.True(t, ok)
	require.Equal(t, 2, consumed)
	require.Equal(t, OpClearScreen, target.Op)
}

func TestEmacsArrowKeys(t *testing.T) {
	m := NewEmacs()
	res, target := m.Lookup([]byte{esc, '[', 'A'})
	require.Equal(t, Final, res)
	require.Equal(t, OpHistoryPrev, target.Op)

	res, target = m.Lookup([]byte{esc, 'O', 'D'})
	require.Equal(t, Final, res)
	require.Equal(t, OpBackwardChar, target.Op)
}

func TestEmacsMetaGraft(t *testing.T) {
	m := NewEmacs()
	res, target := m.Lookup([]byte{esc, 'f'})
	require.Equal(t, Final, res)
	require.Equal(t, OpForwardWord, target.Op)

	res, target = m.Lookup([]byte{esc, 'u'})
	require.Equal(t, Final, res)
	require.Equal(t, OpUpcaseWord, target.Op)
}

func TestEmacsCtlXGraft(t *testing.T) {
	m := NewEmacs()
	res, target := m.Lookup([]byte{ctrlX, 'u'})
	require.Equal(t, Final, res)
	require.Equal(t, OpUndo, target.Op)
}

func TestSelfInsertRange(t *testing.T) {
	m := NewEmacs()
	res, target := m.Lookup([]byte{'Q'})
	require.Equal(t, Final, res)
	require.Equal(t, OpSelfInsert, target.Op)
}

func TestRegistrySwitching(t *testing.T) {
	r := NewRegistry()
	require.Equal(t, "emacs", r.Current())
	require.NotNil(t, r.Active())

	require.True(t, r.Use("vi-command"))
	require.Equal(t, "vi-command", r.Current())

	require.False(t, r.Use("no-such-map"))
	require.Equal(t, "vi-command", r.Current())
}
