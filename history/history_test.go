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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddAndNavigate(t *testing.T) {
	h := New(Options{})
	h.Add("alpha")
	h.Add("beta")
	h.Add("gamma")
	require.Equal(t, 3, h.Len())

	e, ok := h.Prev()
	require.True(t, ok)
	require.Equal(t, "gamma", e.Text)

	e, ok = h.Prev()
	require.True(t, ok)
	require.Equal(t, "beta", e.Text)

	e, ok = h.Next()
	require.True(t, ok)
	require.Equal(t, "gamma", e.Text)
}

func TestIgnoreDupsAndSpace(t *testing.T) {
	h := New(Options{IgnoreDups: true, IgnoreSpace: true})
	require.True(t, h.Add("ls"))
	require.False(t, h.Add("ls"))
	require.False(t, h.Add(" secret"))
	require.Equal(t, 1, h.Len())
}

func TestSearchBackward(t *testing.T) {
	h := New(Options{})
	h.Add("cd /tmp")
	h.Add("ls -la")
	h.Add("cd /home")
	idx, e, ok := h.SearchBackward("cd", 2, StartsWith)
	require.True(t, ok)
	require.Equal(t, 2, idx)
	require.Equal(t, "cd /home", e.Text)

	idx, e, ok = h.SearchBackward("cd", 1, StartsWith)
	require.True(t, ok)
	require.Equal(t, 0, idx)
	require.Equal(t, "cd /tmp", e.Text)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	h := New(Options{Timestamped: true})
	h.Add("echo hi")
	h.Add("line with\nembedded newline")
	h.Add(`backslash \ here`)

	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, h.Save(path))

	h2 := New(Options{})
	require.NoError(t, h2.Load(path, nil))
	require.Equal(t, h.Len(), h2.Len())
	for i := 0; i < h.Len(); i++ {
		a, _ := h.Get(i)
		b, _ := h2.Get(i)
		require.Equal(t, a.Text, b.Text)
	}
}

func TestLoadSkipsUnknownHashLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	content := "#not-a-number\nhello\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	h := New(Options{})
	var warnings []string
	require.NoError(t, h.Load(path, func(line int, msg string) {
		warnings = append(warnings, msg)
	}))
	require.Equal(t, 1, h.Len())
	require.Len(t, warnings, 1)
}

func TestEventExpansionBang(t *testing.T) {
	h := New(Options{})
	h.Add("alpha")
	h.Add("beta")

	out, changed, err := h.Expand("echo !!")
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "echo beta", out)
}

func TestEventExpansionFixpoint(t *testing.T) {
	h := New(Options{})
	h.Add("alpha")
	out, changed, err := h.Expand("echo hello")
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, "echo hello", out)
}

func TestEventExpansionNumberedAndString(t *testing.T) {
	h := New(Options{})
	h.Add("alpha")
	h.Add("beta")
	h.Add("gamma")

	out, _, err := h.Expand("!1")
	require.NoError(t, err)
	require.Equal(t, "alpha", out)

	out, _, err = h.Expand("!-1")
	require.NoError(t, err)
	require.Equal(t, "gamma", out)

	out, _, err = h.Expand("!al")
	require.NoError(t, err)
	require.Equal(t, "alpha", out)

	_, _, err = h.Expand("!nosuchprefix")
	require.Error(t, err)
}
