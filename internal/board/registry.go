/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import (
	"fmt"
	"sync"

	"storyboarder/internal/domain"
)

// Registry is the character visual dictionary: an ordered list of profiles
// created in bulk from script analysis and edited in place by index. Edits
// propagate into every subsequent prompt composition, which is how a live
// description change reaches panels whose cached prompts predate it.
type Registry struct {
	mu    sync.RWMutex
	chars []domain.CharacterProfile
}

// NewRegistry returns a registry seeded with the given profiles.
func NewRegistry(chars []domain.CharacterProfile) *Registry {
	r := &Registry{}
	r.Reset(chars)
	return r
}

// Reset replaces the whole dictionary, e.g. after a fresh script analysis.
func (r *Registry) Reset(chars []domain.CharacterProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chars = append([]domain.CharacterProfile(nil), chars...)
}

// Characters returns a copy of the current profiles in order.
func (r *Registry) Characters() []domain.CharacterProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.CharacterProfile(nil), r.chars...)
}

// Len returns the number of profiles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chars)
}

// UpdateDescription replaces the description of the profile at index.
func (r *Registry) UpdateDescription(index int, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.chars) {
		return fmt.Errorf("character index %d out of range (have %d)", index, len(r.chars))
	}
	r.chars[index].Description = text
	return nil
}
