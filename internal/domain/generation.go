/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// QualityTier selects the generation path for stills. The zero value picks
// the standard/fast model; QualityHigh selects the higher-fidelity model.
type QualityTier string

const (
	QualityStandard QualityTier = ""
	QualityHigh     QualityTier = "high"
)

// DefaultAspectRatio is the storyboard's default frame shape.
const DefaultAspectRatio = "16:9"
