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

// Package inputrc parses the minimal $INPUTRC dialect named in spec.md
// §6: `set VAR VALUE`, `"key-sequence": operation-name`, and
// `$if`/`$else`/`$endif` gated on editing-mode and application name.
//
// No config-file parsing library appears anywhere in the retrieved
// pack, so this is a small hand-rolled line-oriented parser; see
// DESIGN.md for why no third-party dependency was adopted here.
package inputrc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cogline/edit/editerr"
	"github.com/cogline/edit/keymap"
)

// Binding is one parsed `"seq": op` directive.
type Binding struct {
	Sequence []byte
	Op       keymap.Operation
}

// Setting is one parsed `set VAR VALUE` directive.
type Setting struct {
	Name  string
	Value string
}

// Result collects everything a parse run produced.
type Result struct {
	Bindings []Binding
	Settings []Setting
}

// Context supplies the values `$if` conditionals are evaluated against.
type Context struct {
	EditingMode string // "emacs" or "vi"
	AppName     string
}

// Parse reads the inputrc dialect from r under ctx. Malformed directives
// are skipped and reported via warn (which may be nil), per spec.md §7's
// "KeymapParse, recovered by ignoring the offending directive and
// logging"; Parse itself only returns an error for a structural failure
// (an unterminated $if) or when reading r fails.
func Parse(r io.Reader, ctx Context, warn func(line int, err error)) (Result, error) {
	var res Result
	scanner := bufio.NewScanner(r)
	lineNo := 0

	type frame struct{ active, everTrue bool }
	stack := []frame{{active: true, everTrue: true}}
	active := func() bool {
		for _, f := range stack {
			if !f.active {
				return false
			}
		}
		return true
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "$if") {
			cond := strings.TrimSpace(strings.TrimPrefix(line, "$if"))
			match := evalCond(cond, ctx)
			stack = append(stack, frame{active: active() && match, everTrue: match})
			continue
		}
		if line == "$else" {
			if len(stack) < 2 {
				if warn != nil {
					warn(lineNo, editerr.New(editerr.KeymapParse, "$else without matching $if", nil))
				}
				continue
			}
			top := &stack[len(stack)-1]
			top.active = !top.everTrue
			top.everTrue = true
			continue
		}
		if line == "$endif" {
			if len(stack) < 2 {
				if warn != nil {
					warn(lineNo, editerr.New(editerr.KeymapParse, "$endif without matching $if", nil))
				}
				continue
			}
			stack = stack[:len(stack)-1]
			continue
		}

		if !active() {
			continue
		}

		if strings.HasPrefix(line, "set ") {
			fields := strings.SplitN(strings.TrimPrefix(line, "set "), " ", 2)
			if len(fields) != 2 {
				if warn != nil {
					warn(lineNo, editerr.New(editerr.KeymapParse, "malformed set directive: "+line, nil))
				}
				continue
			}
			res.Settings = append(res.Settings, Setting{
				Name:  strings.TrimSpace(fields[0]),
				Value: strings.TrimSpace(fields[1]),
			})
			continue
		}

		if strings.HasPrefix(line, `"`) {
			b, err := parseBinding(line)
			if err != nil {
				if warn != nil {
					warn(lineNo, editerr.New(editerr.KeymapParse, "malformed key binding: "+line, err))
				}
				continue
			}
			res.Bindings = append(res.Bindings, b)
			continue
		}

		if warn != nil {
			warn(lineNo, editerr.New(editerr.KeymapParse, "unrecognized directive: "+line, nil))
		}
	}
	if err := scanner.Err(); err != nil {
		return res, editerr.New(editerr.KeymapParse, "read inputrc", err)
	}
	if len(stack) != 1 {
		return res, editerr.New(editerr.KeymapParse, "unterminated $if", nil)
	}
	return res, nil
}

func evalCond(cond string, ctx Context) bool {
	cond = strings.TrimSpace(cond)
	switch {
	case strings.HasPrefix(cond, "mode="):
		return strings.TrimPrefix(cond, "mode=") == ctx.EditingMode
	case strings.HasPrefix(cond, "term="):
		return false // terminal-name gating is not modeled; never matches
	default:
		return cond == ctx.AppName
	}
}

func parseBinding(line string) (Binding, error) {
	end := strings.IndexByte(line[1:], '"')
	if end < 0 {
		return Binding{}, fmt.Errorf("unterminated quoted key sequence")
	}
	end++ // index within line[1:], convert back to index in line
	seqLit := line[1:end]
	rest := strings.TrimSpace(line[end+1:])
	rest = strings.TrimPrefix(rest, ":")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return Binding{}, fmt.Errorf("missing operation name after key sequence")
	}
	seq, err := decodeSequence(seqLit)
	if err != nil {
		return Binding{}, err
	}
	return Binding{Sequence: seq, Op: keymap.Operation(rest)}, nil
}

// decodeSequence expands readline's key-sequence escapes: \C-x (control),
// \M-x (meta, i.e. ESC prefix), \e/\E (ESC), \t, \n, \\, \", and \nnn
// octal.
func decodeSequence(s string) ([]byte, error) {
	var out []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			out = append(out, c)
			continue
		}
		next := s[i+1]
		switch next {
		case 'C':
			if i+3 < len(s) && s[i+2] == '-' {
				out = append(out, ctrlOf(s[i+3]))
				i += 3
				continue
			}
			return nil, fmt.Errorf("malformed \\C- escape")
		case 'M':
			if i+3 < len(s) && s[i+2] == '-' {
				out = append(out, 0x1b, s[i+3])
				i += 3
				continue
			}
			return nil, fmt.Errorf("malformed \\M- escape")
		case 'e', 'E':
			out = append(out, 0x1b)
			i++
		case 't':
			out = append(out, '\t')
			i++
		case 'n':
			out = append(out, '\n')
			i++
		case 'r':
			out = append(out, '\r')
			i++
		case '\\':
			out = append(out, '\\')
			i++
		case '"':
			out = append(out, '"')
			i++
		default:
			if next >= '0' && next <= '7' {
				j := i + 1
				for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
					j++
				}
				n, err := strconv.ParseInt(s[i+1:j], 8, 16)
				if err != nil {
					return nil, err
				}
				out = append(out, byte(n))
				i = j - 1
				continue
			}
			out = append(out, next)
			i++
		}
	}
	return out, nil
}

func ctrlOf(b byte) byte {
	upper := b
	if upper >= 'a' && upper <= 'z' {
		upper -= 'a' - 'A'
	}
	return upper & 0x1f
}
