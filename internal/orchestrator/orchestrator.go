/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package orchestrator coordinates asynchronous generation operations against
// the board: still generation and editing, outpainting, clip generation,
// narration, and animatic assembly. Each per-panel operation tracks its own
// in-flight marker and fails independently; the store guarantees completions
// applied out of order never clobber each other.
package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"storyboarder/internal/audio"
	"storyboarder/internal/board"
	"storyboarder/internal/domain"
	applog "storyboarder/internal/log"
)

// Capability is the external generation surface. Implementations return a
// media reference (data URI or remote URI) or an error; credential rejections
// are wrapped with domain.ErrCredentialRequired.
type Capability interface {
	AnalyzeScript(ctx context.Context, script string) (domain.AnalysisResult, error)
	GenerateImage(ctx context.Context, prompt, aspectRatio string, tier domain.QualityTier, seed int32) (string, error)
	EditImage(ctx context.Context, ref, instruction string) (string, error)
	AnimateImage(ctx context.Context, ref, motionPrompt, aspectRatio string) (string, error)
	AssembleAnimatic(ctx context.Context, refs []string, compositePrompt string) (string, error)
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}

// ErrBusy reports that the same operation kind is already in flight for the
// panel. Duplicate triggers are suppressed rather than queued.
var ErrBusy = errors.New("operation already in flight for this panel")

// ErrNotEnoughPanels reports that animatic assembly preconditions are unmet.
var ErrNotEnoughPanels = errors.New("animatic needs at least 2 generated stills among the first 3 panels")

// Options tunes an Orchestrator.
type Options struct {
	Style       string
	AspectRatio string
	Quality     domain.QualityTier

	// RateLimit paces outbound generation calls. Zero means no pacing.
	RateLimit rate.Limit
	Burst     int

	// CacheTTL bounds the prompt-digest media cache. Zero disables caching.
	CacheTTL time.Duration

	// Sink receives narration playback. Defaults to a realtime sink.
	Sink audio.Sink
}

// Orchestrator drives all generation against one editing session.
type Orchestrator struct {
	store    *board.Store
	registry *board.Registry
	caps     Capability
	sink     audio.Sink
	limiter  *rate.Limiter
	cache    *gocache.Cache
	flight   singleflight.Group
	log      *slog.Logger

	style       string
	aspectRatio string
	tier        domain.QualityTier
}

// New wires an orchestrator to a store, a registry, and a capability client.
func New(store *board.Store, registry *board.Registry, caps Capability, opts Options) *Orchestrator {
	if opts.AspectRatio == "" {
		opts.AspectRatio = domain.DefaultAspectRatio
	}
	limit := opts.RateLimit
	if limit == 0 {
		limit = rate.Inf
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	var cache *gocache.Cache
	if opts.CacheTTL > 0 {
		cache = gocache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	sink := opts.Sink
	if sink == nil {
		sink = audio.RealtimeSink{}
	}
	return &Orchestrator{
		store:       store,
		registry:    registry,
		caps:        caps,
		sink:        sink,
		limiter:     rate.NewLimiter(limit, burst),
		cache:       cache,
		log:         applog.WithComponent("orchestrator"),
		style:       opts.Style,
		aspectRatio: opts.AspectRatio,
		tier:        opts.Quality,
	}
}

// Store exposes the board store for callers that render or persist state.
func (o *Orchestrator) Store() *board.Store { return o.store }

// Registry exposes the character dictionary.
func (o *Orchestrator) Registry() *board.Registry { return o.registry }

// opKind selects which in-flight marker an operation owns.
type opKind int

const (
	kindImage opKind = iota
	kindVideo
	kindAudio
)

// begin sets the panel's marker for the kind if it is not already set.
// Returns false when the panel is unknown or the operation is suppressed.
func (o *Orchestrator) begin(panelID string, kind opKind) bool {
	started := false
	o.store.UpdatePanelTransient(panelID, func(p *domain.Panel) {
		switch kind {
		case kindImage:
			if !p.GeneratingImage {
				p.GeneratingImage = true
				started = true
			}
		case kindVideo:
			if !p.GeneratingVideo {
				p.GeneratingVideo = true
				started = true
			}
		case kindAudio:
			if !p.PlayingAudio {
				p.PlayingAudio = true
				started = true
			}
		}
	})
	return started
}

// clear resets the panel's marker for the kind without touching history.
func (o *Orchestrator) clear(panelID string, kind opKind) {
	o.store.UpdatePanelTransient(panelID, func(p *domain.Panel) {
		switch kind {
		case kindImage:
			p.GeneratingImage = false
		case kindVideo:
			p.GeneratingVideo = false
		case kindAudio:
			p.PlayingAudio = false
		}
	})
}

// promptDigest keys the media cache and the singleflight group: identical
// instructions issued concurrently collapse into one outbound call.
func promptDigest(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
