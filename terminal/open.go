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
	"os"

	"github.com/cogline/edit/editerr"
)

// Open selects a Provider using the priority list named in spec.md §4.1:
// native ioctl termios first, falling back to the dumb provider when in/out
// are not a real terminal. An OS-pty or exec-stty provider is not
// implemented (see DESIGN.md's Open Question entry for C1) since no
// example in the retrieved pack exercises either strategy against this
// contract; a caller that needs one can supply its own Provider directly to
// editor.New instead of going through Open.
func Open(in, out *os.File) (Provider, error) {
	if p, err := OpenUnix(in, out); err == nil {
		return p, nil
	}
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return NewDumb(in, out), nil
}

// MustCapable opens a Provider and requires it to report real
// capabilities, returning editerr.ProviderUnavailable otherwise.
func MustCapable(in, out *os.File) (Provider, error) {
	p, err := Open(in, out)
	if err != nil {
		return nil, editerr.New(editerr.ProviderUnavailable, "open terminal", err)
	}
	if c, ok := p.(Capable); !ok || !c.Capable() {
		return nil, editerr.New(editerr.ProviderUnavailable, "no capable terminal provider", nil)
	}
	return p, nil
}
