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

import "image/color"

// Palette256 is the standard 256-color palette: 16 named colors (0-15), a
// 216-entry color cube (16-231), and 24 grayscale steps (232-255).
// Adapted from danielgatis-go-headless-term/colors.go's DefaultPalette.
var Palette256 [256]color.RGBA

func init() {
	named := [16]color.RGBA{
		{0, 0, 0, 255}, {205, 49, 49, 255}, {13, 188, 121, 255}, {229, 229, 16, 255},
		{36, 114, 200, 255}, {188, 63, 188, 255}, {17, 168, 205, 255}, {229, 229, 229, 255},
		{102, 102, 102, 255}, {241, 76, 76, 255}, {35, 209, 139, 255}, {245, 245, 67, 255},
		{59, 142, 234, 255}, {214, 112, 214, 255}, {41, 184, 219, 255}, {255, 255, 255, 255},
	}
	copy(Palette256[:16], named[:])

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				Palette256[i] = color.RGBA{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51), A: 255}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		Palette256[232+j] = color.RGBA{R: gray, G: gray, B: gray, A: 255}
	}
}

// Resolve256 returns the RGBA for a given 256-color index.
func Resolve256(idx uint8) color.RGBA { return Palette256[idx] }

// ToRGBA resolves a Color to a concrete RGBA value, using fallback for the
// default color (typically the capability-aware default foreground or
// background chosen by the caller).
func (c Color) ToRGBA(fallback color.RGBA) color.RGBA {
	switch c.Kind {
	case ColorIndexed:
		return Resolve256(c.Index)
	case ColorRGB:
		return c.RGB
	default:
		return fallback
	}
}
