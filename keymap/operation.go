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

// Package keymap implements the trie from byte sequences to named
// operations named C4 in spec.md §2/§3/§4.4, plus the binding reader (C5,
// §4.5) that walks it against a terminal.Provider.
//
// The trie generalizes the teacher's single hardcoded ESC-dispatch switch
// (term/term_line.go's linechar/lineesc) into the full 256-ary
// node-with-fallback design of §3, and the named-map registry generalizes
// its single implicit mode into the emacs/emacs-meta/emacs-ctlx/vi-insert/
// vi-command set named in §4.4, grounded additionally on
// hasyimibhar-go-linenoise's ESC-"["/ESC-"O" dispatch
// (other_examples/...linenoise.go.go) and bmf-san-ggc's key-to-operation
// table (other_examples/...readline.go.go).
package keymap

// Operation is a named editing widget, invocable by binding or by name
// (spec.md GLOSSARY: "Widget"). Dynamic, reflective widget registration in
// the systems this is modeled after maps to this name->behavior table
// being populated once at construction (spec.md §9): widgets are values,
// not types.
type Operation string

// The widgets named throughout spec.md §4.6 (buffer), §4.8 (history),
// §4.9 (completion), and §4.10 (line reader).
const (
	OpSelfInsert Operation = "self-insert"
	OpQuotedInsert Operation = "quoted-insert"

	OpAcceptLine  Operation = "accept-line"
	OpInterrupt   Operation = "interrupt"
	OpEndOfFile   Operation = "end-of-file"
	OpSuspend     Operation = "suspend"

	OpBackwardChar Operation = "backward-char"
	OpForwardChar  Operation = "forward-char"
	OpBackwardWord Operation = "backward-word"
	OpForwardWord  Operation = "forward-word"
	OpBeginningOfLine Operation = "beginning-of-line"
	OpEndOfLine       Operation = "end-of-line"

	OpBackwardDeleteChar Operation = "backward-delete-char"
	OpForwardDeleteChar  Operation = "forward-delete-char"
	OpBackwardKillWord   Operation = "backward-kill-word"
	OpForwardKillWord    Operation = "forward-kill-word"
	OpKillLine           Operation = "kill-line"
	OpBackwardKillLine   Operation = "backward-kill-line"
	OpKillWholeLine      Operation = "kill-whole-line"
	OpYank               Operation = "yank"
	OpYankPop            Operation = "yank-pop"

	OpTransposeChars Operation = "transpose-chars"
	OpTransposeWords Operation = "transpose-words"
	OpUpcaseWord     Operation = "upcase-word"
	OpDowncaseWord   Operation = "downcase-word"
	OpCapitalizeWord Operation = "capitalize-word"

	OpUndo Operation = "undo"

	OpHistoryPrev      Operation = "previous-history"
	OpHistoryNext      Operation = "next-history"
	OpHistoryFirst     Operation = "beginning-of-history"
	OpHistoryLast      Operation = "end-of-history"
	OpReverseSearchHistory Operation = "reverse-search-history"
	OpForwardSearchHistory Operation = "forward-search-history"

	OpComplete             Operation = "complete"
	OpPossibleCompletions  Operation = "possible-completions"
	OpMenuComplete         Operation = "menu-complete"
	OpMenuCompleteBackward Operation = "menu-complete-backward"

	OpClearScreen Operation = "clear-screen"
	OpRedraw      Operation = "redisplay"

	OpViCommandMode Operation = "vi-command-mode"
	OpViInsertMode  Operation = "vi-insert-mode"
	OpViAppendMode  Operation = "vi-append-mode"

	// OpNoop consumes the key without effect; used for unbound keys that
	// should still beep rather than self-insert (e.g. function keys with
	// no assigned behavior).
	OpNoop Operation = "noop"
)
