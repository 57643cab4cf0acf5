/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"
)

// CharacterProfile is one entry of the character visual dictionary. Name is
// the match key (substring matching against panel text downstream), and
// Description is the free-text visual identity injected into prompts.
type CharacterProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MentionedIn reports whether the character's name appears in the given text.
// Matching is a case-insensitive substring test; name collisions are the
// caller's responsibility.
func (c CharacterProfile) MentionedIn(text string) bool {
	if c.Name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(c.Name))
}

// SeedForName derives a deterministic non-negative seed from a character name
// so that repeated generations of the same character share an anchor even
// when no explicit seed is configured.
func SeedForName(name string) int32 {
	hash := sha256.Sum256([]byte(name))
	seed := int32(binary.BigEndian.Uint32(hash[:4]))
	return seed & 0x7FFFFFFF
}

// AnalysisResult is the shaping boundary between script analysis and the rest
// of the pipeline: the initial panel collection plus the characters found.
type AnalysisResult struct {
	Panels     Panels             `json:"panels"`
	Characters []CharacterProfile `json:"characters"`
}

// Empty reports whether the analysis produced nothing usable.
func (a AnalysisResult) Empty() bool {
	return len(a.Panels) == 0 && len(a.Characters) == 0
}
