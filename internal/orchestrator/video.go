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

	"storyboarder/internal/domain"
	"storyboarder/internal/prompt"
)

// AnimatePanel derives a short clip from the panel's generated still. Without
// a still the call is a silent no-op: no request is issued and the marker is
// never set. Credential rejections pass through to the caller; generic
// failures reset the marker and leave prior content untouched.
func (o *Orchestrator) AnimatePanel(ctx context.Context, panelID string) error {
	p, ok := o.store.Panel(panelID)
	if !ok {
		return fmt.Errorf("unknown panel %q", panelID)
	}
	if !p.HasImage() {
		return nil
	}
	if !o.begin(panelID, kindVideo) {
		return ErrBusy
	}
	motion := prompt.ComposeMotionPrompt(p)
	if err := o.limiter.Wait(ctx); err != nil {
		o.clear(panelID, kindVideo)
		return err
	}
	ref, err := o.caps.AnimateImage(ctx, p.ImageRef, motion, o.aspectRatio)
	if err != nil {
		o.clear(panelID, kindVideo)
		return err
	}
	if ref == "" {
		o.clear(panelID, kindVideo)
		return fmt.Errorf("animation returned no media")
	}
	o.store.UpdatePanel(panelID, func(p *domain.Panel) {
		p.VideoRef = ref
		p.GeneratingVideo = false
	})
	return nil
}

// AssembleAnimatic builds a single clip from the stills of the first panels.
// Preconditions: at least 2 of the first 3 panels (in storyboard order) carry
// a generated still. The qualifying stills (at most 3, in order) become the
// reference media, and the composite prompt stitches their summaries together
// with any explicit transitions. There is no partial result: the call either
// returns one clip reference or fails.
func (o *Orchestrator) AssembleAnimatic(ctx context.Context) (string, error) {
	panels := o.store.Panels()
	head := panels
	if len(head) > 3 {
		head = head[:3]
	}
	qualified := head.WithImages()
	if len(qualified) < 2 {
		return "", ErrNotEnoughPanels
	}

	refs := make([]string, 0, len(qualified))
	for _, p := range qualified {
		refs = append(refs, p.ImageRef)
	}
	composite := prompt.ComposeAnimaticPrompt(qualified)

	if err := o.limiter.Wait(ctx); err != nil {
		return "", err
	}
	ref, err := o.caps.AssembleAnimatic(ctx, refs, composite)
	if err != nil {
		return "", err
	}
	if ref == "" {
		return "", fmt.Errorf("animatic assembly returned no media")
	}
	o.log.Info("animatic assembled", "panels", len(qualified))
	return ref, nil
}
