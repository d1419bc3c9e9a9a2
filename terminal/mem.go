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
	"sync"
	"time"
)

// MemProvider is an in-memory Provider over a byte pipe, used by the test
// suites of display and editor to drive the engine without a real
// TTY. It reports Capable() true and a configurable Size so the full
// capability-aware code paths (as opposed to dumbProvider's degraded path)
// are exercised in tests, in the spirit of the teacher's
// term_test.go DoublePipe harness.
type MemProvider struct {
	r io.Reader
	w io.Writer

	mu       sync.Mutex
	size     Size
	resizeCb ResizeFunc
}

// NewMem creates a MemProvider reading from r and writing to w, initially
// sized rows x cols.
func NewMem(r io.Reader, w io.Writer, rows, cols int) *MemProvider {
	return &MemProvider{r: r, w: w, size: Size{Rows: rows, Cols: cols}}
}

func (p *MemProvider) Capable() bool { return true }

func (p *MemProvider) Attributes() (Attributes, error) { return dumbAttrs{}, nil }

func (p *MemProvider) SetAttributes(Attributes) error { return nil }

func (p *MemProvider) Raw() error { return nil }

func (p *MemProvider) Size() (Size, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size, nil
}

// Resize updates the provider's reported size and, if a callback is
// registered, invokes it - simulating a SIGWINCH.
func (p *MemProvider) Resize(sz Size) {
	p.mu.Lock()
	p.size = sz
	cb := p.resizeCb
	p.mu.Unlock()
	if cb != nil {
		cb(sz)
	}
}

func (p *MemProvider) Read(buf []byte, deadline time.Time) (int, error) {
	return p.r.Read(buf)
}

func (p *MemProvider) Write(buf []byte) (int, error) { return p.w.Write(buf) }

func (p *MemProvider) Flush() error { return nil }

func (p *MemProvider) OnResize(cb ResizeFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resizeCb = cb
}

func (p *MemProvider) Close() error { return nil }
