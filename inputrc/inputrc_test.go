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

package inputrc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cogline/edit/keymap"
)

func TestParseSetDirective(t *testing.T) {
	src := "set editing-mode vi\n"
	res, err := Parse(strings.NewReader(src), Context{}, nil)
	require.NoError(t, err)
	require.Len(t, res.Settings, 1)
	require.Equal(t, "editing-mode", res.Settings[0].Name)
	require.Equal(t, "vi", res.Settings[0].Value)
}

func TestParseKeyBinding(t *testing.T) {
	src := `"\C-x\C-u": undo` + "\n"
	res, err := Parse(strings.NewReader(src), Context{}, nil)
	require.NoError(t, err)
	require.Len(t, res.Bindings, 1)
	require.Equal(t, []byte{0x18, 0x15}, res.Bindings[0].Sequence)
	require.Equal(t, keymap.Operation("undo"), res.Bindings[0].Op)
}

func TestParseMetaEscape(t *testing.T) {
	src := `"\M-f": forward-word` + "\n"
	res, err := Parse(strings.NewReader(src), Context{}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x1b, 'f'}, res.Bindings[0].Sequence)
}

func TestParseIfElseEndif(t *testing.T) {
	src := "$if mode=vi\nset a 1\n$else\nset a 2\n$endif\n"
	res, err := Parse(strings.NewReader(src), Context{EditingMode: "emacs"}, nil)
	require.NoError(t, err)
	require.Len(t, res.Settings, 1)
	require.Equal(t, "2", res.Settings[0].Value)
}

func TestParseUnterminatedIfIsAnError(t *testing.T) {
	src := "$if mode=vi\nset a 1\n"
	_, err := Parse(strings.NewReader(src), Context{}, nil)
	require.Error(t, err)
}

func TestParseRecoversFromMalformedLine(t *testing.T) {
	src := "not a valid directive\nset b 2\n"
	var warnings int
	res, err := Parse(strings.NewReader(src), Context{}, func(line int, e error) { warnings++ })
	require.NoError(t, err)
	require.Equal(t, 1, warnings)
	require.Len(t, res.Settings, 1)
}
