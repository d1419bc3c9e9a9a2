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

// Package attrstr implements the styled-character sequence named C3 in
// spec.md §2/§3/§4.3: per-cell style, width-aware slicing, and ANSI
// rendering with style-delta emission. Colors model
// danielgatis-go-headless-term's image/color.RGBA-based cell colors
// (colors.go, cell.go); widths come from github.com/unilibs/uniwidth, the
// same dependency that package uses (width.go).
package attrstr

import "image/color"

// ColorKind distinguishes the three color representations named in
// spec.md §3.
type ColorKind int

const (
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is a tagged foreground/background color value.
type Color struct {
	Kind  ColorKind
	Index uint8 // valid when Kind == ColorIndexed, 0-255
	RGB   color.RGBA
}

// DefaultColor is the zero value, meaning "use the terminal's default".
var DefaultColor = Color{Kind: ColorDefault}

// Indexed builds an indexed (0-255) color.
func Indexed(i uint8) Color { return Color{Kind: ColorIndexed, Index: i} }

// RGB builds a 24-bit truecolor value.
func RGB(r, g, b uint8) Color { return Color{Kind: ColorRGB, RGB: color.RGBA{R: r, G: g, B: b, A: 255}} }

// Equal reports whether two colors represent the same value.
func (c Color) Equal(o Color) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ColorIndexed:
		return c.Index == o.Index
	case ColorRGB:
		return c.RGB == o.RGB
	default:
		return true
	}
}

// Style is a tagged record of display attributes for one cell, per
// spec.md §3: foreground/background color plus bold/italic/underline/
// inverse/conceal flags.
type Style struct {
	Foreground Color
	Background Color
	Bold       bool
	Italic     bool
	Underline  bool
	Inverse    bool
	Conceal    bool
}

// Default is the zero-value style: default colors, no attributes.
var Default = Style{}

// Equal reports whether two styles render identically.
func (s Style) Equal(o Style) bool {
	return s.Foreground.Equal(o.Foreground) &&
		s.Background.Equal(o.Background) &&
		s.Bold == o.Bold && s.Italic == o.Italic &&
		s.Underline == o.Underline && s.Inverse == o.Inverse &&
		s.Conceal == o.Conceal
}

// IsDefault reports whether s is the zero-value style.
func (s Style) IsDefault() bool { return s.Equal(Default) }
