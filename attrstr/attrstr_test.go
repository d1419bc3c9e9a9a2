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

package attrstr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendStringTabs(t *testing.T) {
	s := New("a", Default)
	s.AppendString("\tb", Default)
	require.Equal(t, "a       b", s.PlainText())
	require.Equal(t, 9, s.ColumnWidth())
}

func TestCombiningMarkAttachesToPreviousCell(t *testing.T) {
	s := &String{}
	s.Append('e', Default)
	s.Append('́', Default) // combining acute accent
	require.Equal(t, 1, s.Len())
	require.Equal(t, 1, s.ColumnWidth())
	require.Equal(t, "é", s.PlainText())
}

func TestWideRuneWidth(t *testing.T) {
	require.Equal(t, 2, RuneWidth('中')) // CJK
	require.Equal(t, 1, RuneWidth('a'))
	require.Equal(t, 0, RuneWidth('́'))
}

func TestSliceCols(t *testing.T) {
	s := New("hello world", Default)
	sub := s.SliceCols(6, 11)
	require.Equal(t, "world", sub.PlainText())
}

func TestRenderEmitsDeltaOnly(t *testing.T) {
	s := &String{}
	s.Append('a', Style{Bold: true})
	s.Append('b', Style{Bold: true})
	s.Append('c', Default)
	out := s.Render()
	require.Equal(t, "\x1b[1mab\x1b[0mc", out)
}
