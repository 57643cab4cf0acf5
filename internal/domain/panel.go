/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package domain defines the core data model for the storyboarding pipeline:
// panels, character profiles, the analysis result shape, and shared error
// sentinels. It carries no behavior beyond small collection helpers so that
// every other package can depend on it without cycles.
package domain

import (
	"github.com/google/uuid"
)

// Transition describes how one panel cuts to the next in an assembled animatic.
type Transition string

const (
	TransitionNone     Transition = "none"
	TransitionCut      Transition = "cut"
	TransitionFade     Transition = "fade"
	TransitionDissolve Transition = "dissolve"
	TransitionWipe     Transition = "wipe"
)

// Panel is one storyboard unit: a scene or shot with its description,
// dialogue, and any generated media. ID is the stable identity key; Number is
// the display ordinal and may be rewritten on reorder while ID never changes,
// so in-flight operations stay bound to the right panel.
type Panel struct {
	ID                string     `json:"id"`
	Number            int        `json:"number"`
	VisualDescription string     `json:"visualDescription"`
	ImagePrompt       string     `json:"imagePrompt,omitempty"` // technical prompt cached at analysis time
	ShotType          string     `json:"shotType,omitempty"`
	Dialogue          string     `json:"dialogue"`
	Transition        Transition `json:"transition"`
	ImageRef          string     `json:"imageRef,omitempty"` // data URI or remote URI of the generated still
	VideoRef          string     `json:"videoRef,omitempty"` // always derived from ImageRef

	// In-flight markers. Transient orchestration state: excluded from
	// serialization and from history snapshots.
	GeneratingImage bool `json:"-"`
	GeneratingVideo bool `json:"-"`
	PlayingAudio    bool `json:"-"`
}

// HasImage reports whether a still has been generated for the panel.
func (p Panel) HasImage() bool { return p.ImageRef != "" }

// Panels is the ordered storyboard collection. Order is display order,
// Number ascending.
type Panels []Panel

// Clone returns a deep copy of the collection.
func (ps Panels) Clone() Panels {
	if ps == nil {
		return nil
	}
	out := make(Panels, len(ps))
	copy(out, ps)
	return out
}

// IndexOf returns the position of the panel with the given ID, or -1.
func (ps Panels) IndexOf(id string) int {
	for i := range ps {
		if ps[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the panel with the given ID.
func (ps Panels) Find(id string) (Panel, bool) {
	if i := ps.IndexOf(id); i >= 0 {
		return ps[i], true
	}
	return Panel{}, false
}

// Renumber rewrites Number to the 1-based position of each panel.
func (ps Panels) Renumber() {
	for i := range ps {
		ps[i].Number = i + 1
	}
}

// WithImages returns the panels that carry a generated still, preserving order.
func (ps Panels) WithImages() Panels {
	var out Panels
	for _, p := range ps {
		if p.HasImage() {
			out = append(out, p)
		}
	}
	return out
}

// NewPanelID mints an opaque unique panel identifier.
func NewPanelID() string { return uuid.NewString() }
