/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package board owns the mutable editing state of a storyboarding session:
// the panel collection with its undo/redo history, and the character
// registry. The Store is the only shared mutable resource in the pipeline;
// generation completions from any goroutine funnel through it.
package board

import (
	"sync"

	"storyboarder/internal/domain"
)

// Store holds the current panel collection plus full-collection snapshots for
// undo (past) and redo (future). It is safe for concurrent use: every update
// is a read-modify-write against the latest state under one lock, so two
// completions landing out of order can never clobber each other with stale
// captures.
//
// Content mutations go through Set/Update and are history-tracked. In-flight
// progress markers (spinners) go through UpdateTransient, which changes the
// current state without touching history; undo should step through edits,
// not spinner flips. Snapshots are sanitized: transient markers are cleared
// on push so an undo never resurrects a phantom in-flight state.
type Store struct {
	mu      sync.Mutex
	past    []domain.Panels
	current domain.Panels
	future  []domain.Panels
}

// NewStore returns an empty store with no history.
func NewStore() *Store { return &Store{} }

// Panels returns a copy of the current collection.
func (s *Store) Panels() domain.Panels {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Panel returns a copy of the panel with the given ID.
func (s *Store) Panel(id string) (domain.Panel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Find(id)
}

// Len returns the number of panels.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.current)
}

// Set replaces the collection with next, pushing the pre-mutation state onto
// the undo stack and clearing the redo stack.
func (s *Store) Set(next domain.Panels) {
	s.Update(func(domain.Panels) domain.Panels { return next })
}

// Update applies fn to a copy of the latest collection and installs the
// result as the new current state. The pre-mutation snapshot is pushed onto
// the undo stack and the redo stack is cleared. fn may mutate its argument
// freely; it never sees shared memory.
func (s *Store) Update(fn func(domain.Panels) domain.Panels) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := sanitize(s.current)
	s.current = fn(s.current.Clone())
	s.past = append(s.past, prev)
	s.future = nil
}

// UpdateTransient applies fn like Update but records no history entry. Used
// for progress-marker flips that must not pollute undo.
func (s *Store) UpdateTransient(fn func(domain.Panels) domain.Panels) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = fn(s.current.Clone())
}

// UpdatePanel applies fn to the panel with the given ID as a history-tracked
// mutation. It reports whether the panel exists.
func (s *Store) UpdatePanel(id string, fn func(*domain.Panel)) bool {
	found := false
	s.Update(func(ps domain.Panels) domain.Panels {
		if i := ps.IndexOf(id); i >= 0 {
			fn(&ps[i])
			found = true
		}
		return ps
	})
	return found
}

// UpdatePanelTransient applies fn to one panel without recording history.
func (s *Store) UpdatePanelTransient(id string, fn func(*domain.Panel)) bool {
	found := false
	s.UpdateTransient(func(ps domain.Panels) domain.Panels {
		if i := ps.IndexOf(id); i >= 0 {
			fn(&ps[i])
			found = true
		}
		return ps
	})
	return found
}

// Load installs a freshly analyzed collection and drops all history. A new
// script must not be undoable back into the previous one.
func (s *Store) Load(next domain.Panels) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = next.Clone()
	s.past = nil
	s.future = nil
}

// Undo steps back to the most recent snapshot. No-op when the undo stack is
// empty. Returns whether a step was taken.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.past) == 0 {
		return false
	}
	last := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append([]domain.Panels{sanitize(s.current)}, s.future...)
	s.current = last
	return true
}

// Redo re-applies the most recently undone state. No-op when the redo stack
// is empty. Returns whether a step was taken.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.future) == 0 {
		return false
	}
	next := s.future[0]
	s.future = s.future[1:]
	s.past = append(s.past, sanitize(s.current))
	s.current = next
	return true
}

// ResetHistory clears both stacks, leaving the current collection untouched.
func (s *Store) ResetHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.past = nil
	s.future = nil
}

// CanUndo reports whether an undo step is available.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past) > 0
}

// CanRedo reports whether a redo step is available.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.future) > 0
}

// sanitize deep-copies the collection with transient markers cleared, which
// is the only form history snapshots take.
func sanitize(ps domain.Panels) domain.Panels {
	out := ps.Clone()
	for i := range out {
		out[i].GeneratingImage = false
		out[i].GeneratingVideo = false
		out[i].PlayingAudio = false
	}
	return out
}
