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
	"fmt"
	"strings"
)

// Render writes s as UTF-8 text interleaved with SGR escape sequences,
// emitting a style change only when the style actually differs from the
// previous cell's (style-delta emission), per spec.md §4.3. Grounded on
// cliofy-govte/terminal/character.go's CharacterStyles.ToAnsiSequence,
// generalized from "always emit every attribute" to a diff against the
// running style.
func (s *String) Render() string {
	var b strings.Builder
	cur := Default
	wroteAny := false
	for _, c := range s.cells {
		if !wroteAny || !c.Style.Equal(cur) {
			b.WriteString(sgrTransition(cur, c.Style, wroteAny))
			cur = c.Style
			wroteAny = true
		}
		b.WriteRune(c.R)
		for _, m := range c.Combining {
			b.WriteRune(m)
		}
	}
	if wroteAny && !cur.IsDefault() {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

// sgrTransition renders the SGR sequence needed to move from "from" to
// "to". When "to" is simpler than "from" in ways that can't be expressed
// incrementally (e.g. turning off a single attribute has no single-code
// SGR in the base spec used here), it resets first.
func sgrTransition(from, to Style, hadPrevious bool) string {
	needsReset := hadPrevious && rendersNarrower(to, from)
	var codes []string
	if needsReset {
		codes = append(codes, "0")
	}
	if to.Bold {
		codes = append(codes, "1")
	}
	if to.Italic {
		codes = append(codes, "3")
	}
	if to.Underline {
		codes = append(codes, "4")
	}
	if to.Inverse {
		codes = append(codes, "7")
	}
	if to.Conceal {
		codes = append(codes, "8")
	}
	codes = append(codes, colorCodes(to.Foreground, true)...)
	codes = append(codes, colorCodes(to.Background, false)...)
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// rendersNarrower reports whether "to" turns off any attribute that "from"
// had set, which SGR cannot express as a single additive code.
func rendersNarrower(to, from Style) bool {
	if from.Bold && !to.Bold {
		return true
	}
	if from.Italic && !to.Italic {
		return true
	}
	if from.Underline && !to.Underline {
		return true
	}
	if from.Inverse && !to.Inverse {
		return true
	}
	if from.Conceal && !to.Conceal {
		return true
	}
	if !from.Foreground.Equal(to.Foreground) && to.Foreground.Kind == ColorDefault {
		return true
	}
	if !from.Background.Equal(to.Background) && to.Background.Kind == ColorDefault {
		return true
	}
	return false
}

func colorCodes(c Color, fg bool) []string {
	base := 30
	if !fg {
		base = 40
	}
	switch c.Kind {
	case ColorDefault:
		return nil
	case ColorIndexed:
		prefix := 38
		if !fg {
			prefix = 48
		}
		return []string{fmt.Sprintf("%d;5;%d", prefix, c.Index)}
	case ColorRGB:
		prefix := 38
		if !fg {
			prefix = 48
		}
		return []string{fmt.Sprintf("%d;2;%d;%d;%d", prefix, c.RGB.R, c.RGB.G, c.RGB.B)}
	default:
		_ = base
		return nil
	}
}
