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

package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelfInsertAndMotion(t *testing.T) {
	b := New()
	for _, r := range "hi world" {
		b.SelfInsert(r)
	}
	require.Equal(t, "hi world", b.Text())
	require.Equal(t, 8, b.Cursor())

	b.BeginningOfLine()
	require.Equal(t, 0, b.Cursor())
	b.ForwardWord()
	require.Equal(t, 2, b.Cursor())
	b.ForwardWord()
	require.Equal(t, 8, b.Cursor())
	b.BackwardWord()
	require.Equal(t, 3, b.Cursor())
}

func TestBackwardDeleteChar(t *testing.T) {
	b := New()
	b.SetText("hello")
	b.BackwardDeleteChar()
	require.Equal(t, "hell", b.Text())
	require.Equal(t, 4, b.Cursor())
}

func TestKillLineAndYank(t *testing.T) {
	b := New()
	b.SetText("hello world")
	b.SetCursor(5)
	b.KillLine()
	require.Equal(t, "hello", b.Text())
	b.EndOfLine()
	b.Yank()
	require.Equal(t, "hello world", b.Text())
}

func TestYankPopRequiresPrecedingYank(t *testing.T) {
	b := New()
	b.SetText("")
	ok := b.YankPop()
	require.False(t, ok)
}

func TestYankPopCyclesRing(t *testing.T) {
	b := New()
	b.SetText("bbb")
	b.SetCursor(3)
	b.BackwardKillWord() // ring[0]="bbb"

	b.SetText("aaa")
	b.SetCursor(3)
	b.BackwardKillWord() // ring[0]="aaa", ring[1]="bbb"

	b.Yank()
	require.Equal(t, "aaa", b.Text())
	ok := b.YankPop()
	require.True(t, ok)
	require.Equal(t, "bbb", b.Text())
}

func TestTransposeChars(t *testing.T) {
	b := New()
	b.SetText("ab")
	b.SetCursor(2)
	b.TransposeChars()
	require.Equal(t, "ba", b.Text())
}

func TestTransposeWords(t *testing.T) {
	b := New()
	b.SetText("foo bar")
	b.SetCursor(7)
	b.TransposeWords()
	require.Equal(t, "bar foo", b.Text())
}

func TestCaseWordOps(t *testing.T) {
	b := New()
	b.SetText("hello world")
	b.SetCursor(0)
	b.UpcaseWord()
	require.Equal(t, "HELLO world", b.Text())

	b2 := New()
	b2.SetText("HELLO world")
	b2.SetCursor(0)
	b2.DowncaseWord()
	require.Equal(t, "hello world", b2.Text())

	b3 := New()
	b3.SetText("hello world")
	b3.SetCursor(0)
	b3.CapitalizeWord()
	require.Equal(t, "Hello world", b3.Text())
}

func TestUndoRestoresEmptyBuffer(t *testing.T) {
	b := New()
	b.SelfInsert('a')
	b.KillWholeLine()
	require.True(t, b.Undo())
	require.Equal(t, "a", b.Text())
	require.True(t, b.Undo())
	require.Equal(t, "", b.Text())
	require.False(t, b.Undo())
}

func TestUndoCoalescesSelfInserts(t *testing.T) {
	b := New()
	for _, r := range "abc" {
		b.SelfInsert(r)
	}
	require.True(t, b.Undo())
	require.Equal(t, "", b.Text(), "a run of self-inserts within the idle gap collapses into one undo group")
}

func TestDeleteClosesSelfInsertUndoGroup(t *testing.T) {
	b := New()
	b.SelfInsert('a')
	b.SelfInsert('b')
	b.BackwardDeleteChar()
	require.Equal(t, "a", b.Text())

	require.True(t, b.Undo())
	require.Equal(t, "ab", b.Text(), "a delete closes the open self-insert group instead of coalescing into it")
	require.True(t, b.Undo())
	require.Equal(t, "", b.Text())
}
