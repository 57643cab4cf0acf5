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
	"strings"

	"storyboarder/internal/audio"
)

// NarratePanel synthesizes the panel's dialogue and plays it through the
// configured sink. The panel's playing marker is true for the whole span from
// request start to playback end; synthesis failure or playback completion
// both clear it. Panels without dialogue are a silent no-op.
func (o *Orchestrator) NarratePanel(ctx context.Context, panelID string) error {
	p, ok := o.store.Panel(panelID)
	if !ok {
		return fmt.Errorf("unknown panel %q", panelID)
	}
	if strings.TrimSpace(p.Dialogue) == "" {
		return nil
	}
	if !o.begin(panelID, kindAudio) {
		return ErrBusy
	}
	defer o.clear(panelID, kindAudio)

	if err := o.limiter.Wait(ctx); err != nil {
		return err
	}
	pcm, err := o.caps.SynthesizeSpeech(ctx, p.Dialogue)
	if err != nil {
		return fmt.Errorf("narrate panel %d: %w", p.Number, err)
	}
	clip, err := audio.Decode(pcm)
	if err != nil {
		return fmt.Errorf("narrate panel %d: %w", p.Number, err)
	}
	if err := o.sink.Play(ctx, clip); err != nil {
		return fmt.Errorf("play narration for panel %d: %w", p.Number, err)
	}
	return nil
}
