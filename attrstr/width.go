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

import "github.com/unilibs/uniwidth"

// RuneWidth returns the display column width of r: 2 for East-Asian-Width
// wide codepoints, 0 for control/zero-width/combining codepoints,
// otherwise 1, per spec.md §3. Grounded on
// danielgatis-go-headless-term/width.go, which wraps the same
// github.com/unilibs/uniwidth dependency.
func RuneWidth(r rune) int {
	if r < 0x20 || r == 0x7f {
		return 0
	}
	return uniwidth.RuneWidth(r)
}

// IsCombining reports whether r is a zero-width combining mark that
// attaches to the preceding cell rather than occupying one of its own.
func IsCombining(r rune) bool {
	return r >= 0x20 && uniwidth.RuneWidth(r) == 0
}
