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

// lineedit-demo
//
// It is a basic example driving the "cogline/edit" packages end to end.
// It reads a line at a time, echoes what it read, and keeps a persistent
// history file across runs. Try typing a line and then hitting the up
// key on the next line. Try completing "co", "he", or "qu" with TAB.
//
// Press ^C, ^D, or type "quit" to exit.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cogline/edit/completion"
	"github.com/cogline/edit/editerr"
	"github.com/cogline/edit/editor"
	"github.com/cogline/edit/history"
	"github.com/cogline/edit/terminal"
)

var commands = []string{"help", "commit", "config", "status", "quit"}

func main() {
	if err := run(); err != nil {
		log.Fatalf("lineedit-demo: %s", err)
	}
}

func run() error {
	prov, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer prov.Close()

	histPath := historyPath()
	hist := history.New(history.Options{MaxSize: 500, IgnoreDups: true})
	if _, err := os.Stat(histPath); err == nil {
		if err := hist.Load(histPath, func(line int, msg string) {
			log.Printf("history: %s:%d: %s", histPath, line, msg)
		}); err != nil {
			log.Printf("history: %s", err)
		}
	}

	ed := editor.NewEditor(prov, nil, hist, editor.New())
	ed.AddCompletionProvider(completion.ProviderFunc(completeCommand))
	ed.SetWarningHandler(func(err error) { log.Printf("warning: %s", err) })

	for {
		line, err := ed.ReadLine("> ", editor.NoMask)
		if err != nil {
			if kind, ok := editerr.Of(err); ok && kind == editerr.Interrupted {
				fmt.Print("Goodbye!\r\n")
				break
			}
			return err
		}
		if strings.TrimSpace(line) == "quit" {
			fmt.Print("Goodbye!\r\n")
			break
		}
		fmt.Printf("read: %q\r\n", line)
	}

	if err := hist.Save(histPath); err != nil {
		log.Printf("history: %s", err)
	}
	return nil
}

func completeCommand(line string, wordStart, cursor int) ([]completion.Candidate, error) {
	word := line[wordStart:cursor]
	var out []completion.Candidate
	for _, c := range commands {
		if strings.HasPrefix(c, word) {
			out = append(out, completion.Candidate{Value: c, Complete: true})
		}
	}
	return out, nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lineedit-demo-history"
	}
	return filepath.Join(home, ".lineedit-demo-history")
}

