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

import "sync"

// Registry is a name->Map table switchable at runtime, per spec.md §4.4
// ("Switching between emacs and vi-* maps is a runtime operation").
type Registry struct {
	mu      sync.RWMutex
	maps    map[string]*Map
	current string
}

// NewRegistry builds a Registry pre-populated with the standard maps
// (emacs, emacs-meta, emacs-ctlx, vi-insert, vi-command), current set to
// "emacs".
func NewRegistry() *Registry {
	r := &Registry{maps: map[string]*Map{}}
	r.Register(NewEmacs())
	r.Register(NewEmacsMeta())
	r.Register(NewEmacsCtlX())
	r.Register(NewViInsert())
	r.Register(NewViCommand())
	r.current = "emacs"
	return r
}

// Register adds or replaces a named map.
func (r *Registry) Register(m *Map) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maps[m.Name()] = m
}

// Get returns the named map, or nil if not registered.
func (r *Registry) Get(name string) *Map {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maps[name]
}

// Use switches the active map by name; it is a no-op if the name isn't
// registered.
func (r *Registry) Use(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.maps[name]; !ok {
		return false
	}
	r.current = name
	return true
}

// Current returns the active map's name.
func (r *Registry) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Active returns the currently active map.
func (r *Registry) Active() *Map {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maps[r.current]
}
