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

package completion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func staticProvider(values ...string) Provider {
	return ProviderFunc(func(line string, wordStart, cursor int) ([]Candidate, error) {
		var out []Candidate
		for _, v := range values {
			out = append(out, Candidate{Value: v, Complete: true})
		}
		return out, nil
	})
}

func TestResolveCompleteUnique(t *testing.T) {
	cands := []Candidate{{Value: "status", Complete: true}}
	r := Resolve(cands, Options{}, false)
	require.Equal(t, "status", r.Insert)
	require.True(t, r.AppendSpace)
}

func TestResolveCommonPrefix(t *testing.T) {
	cands := []Candidate{{Value: "status"}, {Value: "stash"}, {Value: "start"}}
	r := Resolve(cands, Options{}, false)
	require.Equal(t, "sta", r.Insert)
	require.False(t, r.ShowList)
}

func TestResolveListOnSecondTab(t *testing.T) {
	cands := []Candidate{{Value: "status"}, {Value: "stash"}}
	r := Resolve(cands, Options{}, true)
	require.True(t, r.ShowList)
	require.Len(t, r.Candidates, 2)
}

func TestResolveAutoPrintThreshold(t *testing.T) {
	cands := []Candidate{{Value: "a"}, {Value: "b"}, {Value: "c"}}
	r := Resolve(cands, Options{AutoPrintAbove: 2}, true)
	require.True(t, r.ConfirmThreshold)
}

func TestGatherSkipsFailingProvider(t *testing.T) {
	bad := ProviderFunc(func(line string, ws, c int) ([]Candidate, error) {
		return nil, errors.New("boom")
	})
	good := staticProvider("ok")

	var errs []error
	cands := Gather([]Provider{bad, good}, "", 0, 0, func(err error) { errs = append(errs, err) })
	require.Len(t, cands, 1)
	require.Equal(t, "ok", cands[0].Value)
	require.Len(t, errs, 1)
}

func TestCompletionDeterminism(t *testing.T) {
	provs := []Provider{staticProvider("beta", "alpha")}
	c1 := Gather(provs, "", 0, 0, nil)
	c2 := Gather(provs, "", 0, 0, nil)
	require.Equal(t, c1, c2)
}

func TestFormatColumnsGroupsWithHeaders(t *testing.T) {
	cands := []Candidate{
		{Value: "commit", Group: "git"},
		{Value: "push", Group: "git"},
		{Value: "ls", Group: "shell"},
	}
	lines := FormatColumns(cands, 40, Options{GroupHeaders: true})
	require.Contains(t, lines, "git:")
	require.Contains(t, lines, "shell:")
}

func TestQuoteWrapsOnExistingQuote(t *testing.T) {
	out := Quote(`"foo`, "foo bar", false, '/')
	require.Equal(t, `"foo bar"`, out)
}

func TestQuoteEscapesSpacesWithoutQuote(t *testing.T) {
	out := Quote("fo", "foo bar", false, '/')
	require.Equal(t, `foo\ bar`, out)
}

func TestQuoteDirectorySuffix(t *testing.T) {
	out := Quote("sr", "src", true, '/')
	require.Equal(t, "src/", out)
}
