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

// Package editor implements the top-level read_line loop named C10 in
// spec.md §2/§4.10, composing the terminal, capability, attributed
// string, key map, binding reader, buffer, display, history, and
// completion packages into one session.
//
// Grounded on the teacher's TTY.run() (term/term.go), which already owns
// the single cooperative read/dispatch/echo loop this package generalizes
// with raw-mode acquisition, resize-invalidation, event expansion, and
// the signal policy of spec.md §5.
package editor

import "time"

// Options holds every session option named in spec.md §6.
type Options struct {
	EditingMode string // "emacs" or "vi"

	Echo bool
	Bell bool

	HistoryIgnoreDups  bool
	HistoryIgnoreSpace bool
	HistoryTimestamped bool

	AutoPrintThreshold        int
	CaseInsensitiveCompletion bool
	GroupCompletions          bool
	CompleteInWord            bool

	EscapeTimeout  time.Duration
	PasteTimeout   time.Duration
	BracketedPaste bool

	EraseOnFinish   bool
	SecondaryPrompt string

	ExpandAndSubmit bool
}

// Option mutates an Options in place; the functional-option pattern this
// package uses in place of a config struct literal with dozens of fields,
// matching spec.md §9's preference for options over reflection-driven
// configuration.
type Option func(*Options)

// DefaultOptions returns the defaults named throughout spec.md §4.5/§5/§6.
func DefaultOptions() Options {
	return Options{
		EditingMode:     "emacs",
		Echo:            true,
		Bell:            true,
		EscapeTimeout:   100 * time.Millisecond,
		SecondaryPrompt: "> ",
	}
}

func WithEditingMode(mode string) Option { return func(o *Options) { o.EditingMode = mode } }
func WithEcho(v bool) Option              { return func(o *Options) { o.Echo = v } }
func WithBell(v bool) Option              { return func(o *Options) { o.Bell = v } }
func WithHistoryIgnoreDups(v bool) Option { return func(o *Options) { o.HistoryIgnoreDups = v } }
func WithHistoryIgnoreSpace(v bool) Option {
	return func(o *Options) { o.HistoryIgnoreSpace = v }
}
func WithHistoryTimestamped(v bool) Option {
	return func(o *Options) { o.HistoryTimestamped = v }
}
func WithAutoPrintThreshold(n int) Option {
	return func(o *Options) { o.AutoPrintThreshold = n }
}
func WithCaseInsensitiveCompletion(v bool) Option {
	return func(o *Options) { o.CaseInsensitiveCompletion = v }
}
func WithGroupCompletions(v bool) Option { return func(o *Options) { o.GroupCompletions = v } }
func WithCompleteInWord(v bool) Option   { return func(o *Options) { o.CompleteInWord = v } }
func WithEscapeTimeout(d time.Duration) Option {
	return func(o *Options) { o.EscapeTimeout = d }
}
func WithPasteTimeout(d time.Duration) Option { return func(o *Options) { o.PasteTimeout = d } }
func WithBracketedPaste(v bool) Option        { return func(o *Options) { o.BracketedPaste = v } }
func WithEraseOnFinish(v bool) Option         { return func(o *Options) { o.EraseOnFinish = v } }
func WithSecondaryPrompt(s string) Option {
	return func(o *Options) { o.SecondaryPrompt = s }
}
func WithExpandAndSubmit(v bool) Option { return func(o *Options) { o.ExpandAndSubmit = v } }

// New builds an Options from DefaultOptions with opts applied in order.
func New(opts ...Option) Options {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
