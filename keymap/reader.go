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

package keymap

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/cogline/edit/terminal"
)

// Event is what the binding reader emits for each resolved key press: the
// resolved operation (or macro), and the raw bytes that produced it.
type Event struct {
	Op      Operation
	IsMacro bool
	Macro   string
	Raw     []byte
	// Rune is set for OpSelfInsert events decoded from the UTF-8 stream.
	Rune rune
	// Paste marks bytes delivered while paste-timeout detection (§6)
	// suppressed key-map resolution; the caller should self-insert Rune
	// without further interpretation. The ESC [ 200 ~ ... ESC [ 201 ~
	// bracketed-paste wrapper is not recognized: its bytes go through the
	// key map like any other input.
	Paste bool
}

// ReaderOptions configures the binding reader's timing per spec.md §5/§6.
// BracketedPaste, when true, only switches paste-timeout detection off.
type ReaderOptions struct {
	EscapeTimeout  time.Duration // default 100ms
	PasteTimeout   time.Duration // default 0 (disabled) unless set
	BracketedPaste bool
	MaxLookahead   int // default 8, per spec.md §5
}

// DefaultReaderOptions returns the defaults named in spec.md §4.5/§5/§6.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		EscapeTimeout: 100 * time.Millisecond,
		MaxLookahead:  8,
	}
}

// Reader is the binding reader named C5 in spec.md §4.5: it pulls bytes
// from a terminal.Provider and walks an active Map to produce a stream of
// (operation, raw sequence) events with bounded lookahead.
//
// Grounded on the teacher's run()/linechar()/lineesc() split in
// term/term.go and term/term_line.go, which already implements a
// restricted two-state "am I mid escape sequence" machine; generalized
// here into the full Idle/Accumulating state machine, escape timeout, and
// macro LIFO playback named in §4.5.
type Reader struct {
	prov terminal.Provider
	opts ReaderOptions

	macroStack []byte // bytes queued by macro playback/event-expansion replay, consumed before further terminal reads

	lastByteAt time.Time
	inPaste    bool

	readBuf [1]byte
}

// NewReader constructs a Reader pulling from prov with the given options.
func NewReader(prov terminal.Provider, opts ReaderOptions) *Reader {
	if opts.EscapeTimeout <= 0 {
		opts.EscapeTimeout = 100 * time.Millisecond
	}
	if opts.MaxLookahead <= 0 {
		opts.MaxLookahead = 8
	}
	return &Reader{prov: prov, opts: opts}
}

// PushMacro queues bytes to be consumed before the next terminal read,
// implementing macro playback and incremental-search replay (spec.md
// §4.5/§5: "Macros injected by C4 ... are consumed before further
// terminal reads").
func (r *Reader) PushMacro(b []byte) {
	r.macroStack = append(append([]byte{}, b...), r.macroStack...)
}

func (r *Reader) readByte(deadline time.Time) (byte, error) {
	if len(r.macroStack) > 0 {
		b := r.macroStack[0]
		r.macroStack = r.macroStack[1:]
		return b, nil
	}
	n, err := r.prov.Read(r.readBuf[:], deadline)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errZeroRead
	}
	now := time.Now()
	gap := now.Sub(r.lastByteAt)
	r.lastByteAt = now
	if r.opts.PasteTimeout > 0 && gap < r.opts.PasteTimeout && gap > 0 {
		r.inPaste = true
	} else if r.opts.PasteTimeout > 0 {
		r.inPaste = false
	}
	return r.readBuf[0], nil
}

var errZeroRead = errors.New("keymap: zero-length read")

// Next blocks until one event is available from the queued macro bytes or
// the provider, decoding it via active.
func (r *Reader) Next(active *Map) (Event, error) {
	var pending []byte
	deadline := time.Time{} // Idle: block indefinitely for the first byte

	for {
		b, err := r.readByte(deadline)
		if err != nil {
			if errors.Is(err, terminal.ErrTimeout) && len(pending) > 0 {
				return r.resolveTimeout(active, pending)
			}
			return Event{}, err
		}

		if len(pending) == 0 && b >= 0x80 {
			return r.readUTF8Rune(b)
		}

		if r.inPaste && !r.opts.BracketedPaste {
			return Event{Op: OpSelfInsert, Rune: rune(b), Raw: []byte{b}, Paste: true}, nil
		}

		pending = append(pending, b)
		res, target := active.Lookup(pending)
		switch res {
		case Final:
			return eventFromTarget(target, pending), nil
		case Partial:
			if len(pending) >= r.opts.MaxLookahead {
				return r.resolveTimeout(active, pending)
			}
			deadline = time.Now().Add(r.opts.EscapeTimeout) // Accumulating
			continue
		default: // Missing
			return r.resolveMissing(active, pending)
		}
	}
}

// resolveTimeout implements "On timeout in Accumulating: treat as
// Missing" (spec.md §4.5).
func (r *Reader) resolveTimeout(active *Map, pending []byte) (Event, error) {
	return r.resolveMissing(active, pending)
}

// resolveMissing implements "On Missing: emit the longest previously-
// matched another_key, then re-queue the unmatched tail" (spec.md §4.5).
func (r *Reader) resolveMissing(active *Map, pending []byte) (Event, error) {
	target, consumed, ok := active.LongestAnother(pending)
	if ok {
		r.requeue(pending[consumed:])
		return eventFromTarget(target, pending[:consumed]), nil
	}
	// No fallback at all: the first byte is emitted as a self-insert (or,
	// if it's a bare control character with no binding, as OpNoop) and the
	// remainder is re-queued for the next Next() call.
	first := pending[0]
	r.requeue(pending[1:])
	if first < 0x20 || first == 0x7f {
		return Event{Op: OpNoop, Raw: []byte{first}}, nil
	}
	return Event{Op: OpSelfInsert, Rune: rune(first), Raw: []byte{first}}, nil
}

func (r *Reader) requeue(tail []byte) {
	if len(tail) == 0 {
		return
	}
	r.macroStack = append(append([]byte{}, tail...), r.macroStack...)
}

func eventFromTarget(t Target, raw []byte) Event {
	switch t.Kind {
	case TargetMacro:
		return Event{IsMacro: true, Macro: t.Macro, Raw: raw}
	default:
		return Event{Op: t.Op, Raw: raw}
	}
}

// readUTF8Rune decodes a multi-byte UTF-8 sequence starting with the
// already-read lead byte b, replacing invalid sequences with U+FFFD at the
// reader's boundary per spec.md §6. UTF-8 bytes bypass key-map resolution
// entirely: any byte with the high bit set that arrives with no sequence
// pending is decoded here as user text. That includes 0xE0, so the key
// map's 0xE0 scan-code bindings are never consulted.
func (r *Reader) readUTF8Rune(b byte) (Event, error) {
	n := utf8SeqLen(b)
	if n == 0 {
		return Event{Op: OpSelfInsert, Rune: utf8.RuneError, Raw: []byte{b}}, nil
	}
	buf := []byte{b}
	for len(buf) < n {
		nb, err := r.readByte(time.Now().Add(50 * time.Millisecond))
		if err != nil {
			break
		}
		buf = append(buf, nb)
	}
	ru, size := utf8.DecodeRune(buf)
	if ru == utf8.RuneError && size <= 1 {
		return Event{Op: OpSelfInsert, Rune: utf8.RuneError, Raw: buf}, nil
	}
	if size < len(buf) {
		r.requeue(buf[size:])
	}
	return Event{Op: OpSelfInsert, Rune: ru, Raw: buf[:size]}, nil
}

func utf8SeqLen(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}
