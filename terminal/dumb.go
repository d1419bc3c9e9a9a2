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
	"io"
	"time"
)

// dumbAttrs is the sole Attributes value a dumbProvider ever reports.
type dumbAttrs struct{}

func (dumbAttrs) Raw() bool { return false }

// dumbProvider reports no capabilities and performs simple line-at-a-time
// I/O over an arbitrary io.Reader/io.Writer pair, for use when no real
// terminal is available (redirected stdin, an unsupported $TERM, or a test
// harness). Grounded on the teacher's NewTTY (which works over any
// io.Reader and only enables echo when it happens to also be an
// io.Writer) and hasyimibhar-go-linenoise's non-tty / unsupported-$TERM
// fallback branches.
type dumbProvider struct {
	r io.Reader
	w io.Writer
}

// NewDumb wraps r/w as a capability-free Provider.
func NewDumb(r io.Reader, w io.Writer) Provider {
	return &dumbProvider{r: r, w: w}
}

func (p *dumbProvider) Capable() bool { return false }

func (p *dumbProvider) Attributes() (Attributes, error) { return dumbAttrs{}, nil }

func (p *dumbProvider) SetAttributes(Attributes) error { return nil }

func (p *dumbProvider) Raw() error { return nil }

func (p *dumbProvider) Size() (Size, error) { return Size{Rows: 24, Cols: 80}, nil }

func (p *dumbProvider) Read(buf []byte, deadline time.Time) (int, error) {
	return p.r.Read(buf)
}

func (p *dumbProvider) Write(buf []byte) (int, error) { return p.w.Write(buf) }

func (p *dumbProvider) Flush() error { return nil }

func (p *dumbProvider) OnResize(ResizeFunc) {}

func (p *dumbProvider) Close() error { return nil }
