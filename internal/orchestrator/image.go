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
	"errors"
	"fmt"
	"strconv"
	"sync"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"storyboarder/internal/compositor"
	"storyboarder/internal/domain"
	"storyboarder/internal/prompt"
)

// GeneratePanelImage renders (or re-renders) the still for one panel. The
// prompt is composed against the registry's current character descriptions,
// so edits made after analysis reach every later generation. A regenerate of
// a panel that already carries a still bypasses the media cache and reaches
// the service again. On failure the panel keeps its previous still and only
// the marker resets.
func (o *Orchestrator) GeneratePanelImage(ctx context.Context, panelID string) error {
	p, ok := o.store.Panel(panelID)
	if !ok {
		return fmt.Errorf("unknown panel %q", panelID)
	}
	chars := o.registry.Characters()
	instruction := prompt.ComposeImagePrompt(p, o.style, chars)
	seed := consistencySeed(p, chars)
	fresh := p.HasImage()
	return o.runImageOp(ctx, panelID, func(ctx context.Context) (string, error) {
		return o.generateStill(ctx, instruction, seed, fresh)
	})
}

// EditPanelImage applies a natural-language edit (inpaint) to the panel's
// existing still.
func (o *Orchestrator) EditPanelImage(ctx context.Context, panelID, instruction string) error {
	p, ok := o.store.Panel(panelID)
	if !ok {
		return fmt.Errorf("unknown panel %q", panelID)
	}
	if !p.HasImage() {
		return fmt.Errorf("panel %d has no still to edit", p.Number)
	}
	ref := p.ImageRef
	return o.runImageOp(ctx, panelID, func(ctx context.Context) (string, error) {
		if err := o.limiter.Wait(ctx); err != nil {
			return "", err
		}
		return o.caps.EditImage(ctx, ref, instruction)
	})
}

// OutpaintPanelImage expands the panel still's canvas in the given direction
// and asks the edit capability to fill the blank region. Canvas composition
// is local and deterministic; its failure counts as a generic generation
// failure.
func (o *Orchestrator) OutpaintPanelImage(ctx context.Context, panelID string, dir compositor.Direction) error {
	p, ok := o.store.Panel(panelID)
	if !ok {
		return fmt.Errorf("unknown panel %q", panelID)
	}
	if !p.HasImage() {
		return fmt.Errorf("panel %d has no still to outpaint", p.Number)
	}
	ref := p.ImageRef
	return o.runImageOp(ctx, panelID, func(ctx context.Context) (string, error) {
		expanded, err := compositor.ExpandDataURI(ref, dir)
		if err != nil {
			return "", fmt.Errorf("expand canvas: %w", err)
		}
		if err := o.limiter.Wait(ctx); err != nil {
			return "", err
		}
		return o.caps.EditImage(ctx, expanded, prompt.ComposeOutpaintPrompt(dir))
	})
}

// GenerateAllImages fans out one still generation per panel lacking an image.
// Panels fail independently: a generic failure in one neither cancels nor
// blocks the rest. The one exception is a credential rejection, which is
// returned after all panels have settled so the caller can re-prompt for a
// key.
func (o *Orchestrator) GenerateAllImages(ctx context.Context) error {
	var (
		mu      sync.Mutex
		credErr error
	)
	var eg errgroup.Group
	for _, p := range o.store.Panels() {
		if p.HasImage() {
			continue
		}
		id := p.ID
		eg.Go(func() error {
			err := o.GeneratePanelImage(ctx, id)
			switch {
			case err == nil, errors.Is(err, ErrBusy):
			case errors.Is(err, domain.ErrCredentialRequired):
				mu.Lock()
				if credErr == nil {
					credErr = err
				}
				mu.Unlock()
			default:
				o.log.Warn("panel generation failed", "panel", id, "err", err)
			}
			return nil
		})
	}
	_ = eg.Wait()
	return credErr
}

// runImageOp owns the image marker around a single capability call: marker
// up, exactly one call, marker down, and on success the returned reference
// replaces the panel's still as one history-tracked edit.
func (o *Orchestrator) runImageOp(ctx context.Context, panelID string, call func(context.Context) (string, error)) error {
	if !o.begin(panelID, kindImage) {
		return ErrBusy
	}
	ref, err := call(ctx)
	if err != nil {
		o.clear(panelID, kindImage)
		return err
	}
	if ref == "" {
		o.clear(panelID, kindImage)
		return errors.New("generation returned no media")
	}
	o.store.UpdatePanel(panelID, func(p *domain.Panel) {
		p.ImageRef = ref
		p.GeneratingImage = false
	})
	return nil
}

// consistencySeed folds the per-character seeds of every character the panel
// mentions into one request seed, so repeated renders of the same cast share
// an anchor. Zero means no character is mentioned and the request goes out
// unseeded.
func consistencySeed(p domain.Panel, chars []domain.CharacterProfile) int32 {
	var seed int32
	for _, c := range chars {
		if c.MentionedIn(p.VisualDescription) || c.MentionedIn(p.Dialogue) || c.MentionedIn(p.ImagePrompt) {
			seed ^= domain.SeedForName(c.Name)
		}
	}
	return seed & 0x7FFFFFFF
}

// generateStill is the cached, deduplicated, rate-limited still generation
// path. A regenerate (fresh) skips the cache read and the dedupe group so it
// always issues exactly one outbound call; its result refreshes the cache.
func (o *Orchestrator) generateStill(ctx context.Context, instruction string, seed int32, fresh bool) (string, error) {
	key := promptDigest(instruction, o.aspectRatio, string(o.tier), strconv.FormatInt(int64(seed), 10))
	if fresh {
		return o.requestStill(ctx, key, instruction, seed)
	}
	if o.cache != nil {
		if v, ok := o.cache.Get(key); ok {
			return v.(string), nil
		}
	}
	v, err, _ := o.flight.Do(key, func() (any, error) {
		return o.requestStill(ctx, key, instruction, seed)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (o *Orchestrator) requestStill(ctx context.Context, key, instruction string, seed int32) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return "", err
	}
	ref, err := o.caps.GenerateImage(ctx, instruction, o.aspectRatio, o.tier, seed)
	if err != nil {
		return "", err
	}
	if o.cache != nil && ref != "" {
		o.cache.Set(key, ref, gocache.DefaultExpiration)
	}
	return ref, nil
}
