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

package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDumbProviderRoundTrip(t *testing.T) {
	in := strings.NewReader("hello")
	var out bytes.Buffer
	p := NewDumb(in, &out)

	require.False(t, p.(Capable).Capable())

	buf := make([]byte, 16)
	n, err := p.Read(buf, time.Time{})
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))

	_, err = p.Write([]byte("world"))
	require.NoError(t, err)
	require.Equal(t, "world", out.String())

	sz, err := p.Size()
	require.NoError(t, err)
	require.Equal(t, Size{Rows: 24, Cols: 80}, sz)
}

func TestMemProviderResize(t *testing.T) {
	p := NewMem(strings.NewReader(""), &bytes.Buffer{}, 24, 80)

	var got Size
	p.OnResize(func(sz Size) { got = sz })
	p.Resize(Size{Rows: 40, Cols: 120})

	require.Equal(t, Size{Rows: 40, Cols: 120}, got)

	sz, err := p.Size()
	require.NoError(t, err)
	require.Equal(t, Size{Rows: 40, Cols: 120}, sz)
}
