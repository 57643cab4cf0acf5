/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package orchestrator

import (
	"context"
	"fmt"
	"sort"

	"storyboarder/internal/domain"
)

// AnalyzeScript runs the analysis capability over raw script text and shapes
// the result into the board schema: stable IDs are minted, panel numbers are
// normalized to an ascending 1-based sequence, and every in-flight marker
// starts false. The shaped collection replaces the board wholesale and drops
// all history: a fresh script is not undoable back into the previous one.
// The character dictionary is rebuilt from the analysis.
func (o *Orchestrator) AnalyzeScript(ctx context.Context, script string) (domain.AnalysisResult, error) {
	res, err := o.caps.AnalyzeScript(ctx, script)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("script analysis: %w", err)
	}

	panels := res.Panels.Clone()
	sort.SliceStable(panels, func(i, j int) bool { return panels[i].Number < panels[j].Number })
	for i := range panels {
		panels[i].ID = domain.NewPanelID()
		panels[i].GeneratingImage = false
		panels[i].GeneratingVideo = false
		panels[i].PlayingAudio = false
		if panels[i].Transition == "" {
			panels[i].Transition = domain.TransitionNone
		}
	}
	panels.Renumber()

	o.store.Load(panels)
	o.registry.Reset(res.Characters)
	o.log.Info("script analyzed", "panels", len(panels), "characters", len(res.Characters))

	return domain.AnalysisResult{Panels: panels, Characters: res.Characters}, nil
}
