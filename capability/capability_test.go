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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupFallback(t *testing.T) {
	require.Equal(t, "xterm-256color", Lookup("xterm-256color").Name())
	require.Equal(t, "dumb", Lookup("dumb").Name())
	require.Equal(t, "dumb", Lookup("").Name())
	require.Equal(t, "xterm-256color", Lookup("foo-256color").Name())
	require.Equal(t, "ansi", Lookup("xterm-kitty").Name())
}

func TestAddress(t *testing.T) {
	tab := Lookup("xterm-256color")
	seq, ok := tab.Address(2, 5)
	require.True(t, ok)
	require.Equal(t, "\x1b[3;6H", seq)

	_, ok = Lookup("dumb").Address(0, 0)
	require.False(t, ok)
}

func TestColorCapabilities(t *testing.T) {
	tab := Lookup("xterm-256color")
	seq, ok := tab.Foreground256(196)
	require.True(t, ok)
	require.Equal(t, "\x1b[38;5;196m", seq)

	seq, ok = tab.ForegroundTrue(255, 0, 0)
	require.True(t, ok)
	require.Equal(t, "\x1b[38;2;255;0;0m", seq)

	require.True(t, tab.Bool(AutoRightMargin))
	require.True(t, tab.Bool(EatNewlineGlitch))
}
