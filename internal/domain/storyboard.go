/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Storyboard is the persistable project manifest: the panel collection, the
// character dictionary, and the visual style applied to every generation.
// It serializes to a human-readable JSON manifest on disk.
type Storyboard struct {
	Title      string             `json:"title,omitempty"`
	Style      string             `json:"style,omitempty"`
	Script     string             `json:"script,omitempty"` // last analyzed script text
	Panels     Panels             `json:"panels"`
	Characters []CharacterProfile `json:"characters"`
}
