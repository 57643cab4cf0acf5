/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"storyboarder/internal/audio"
	"storyboarder/internal/board"
	"storyboarder/internal/config"
	"storyboarder/internal/domain"
	"storyboarder/internal/gemini"
	"storyboarder/internal/orchestrator"
	"storyboarder/internal/storage"

	"golang.org/x/time/rate"
)

var _ orchestrator.Capability = (*gemini.Client)(nil)

// commandContext carries lazily-initialized shared state across subcommands:
// the loaded configuration, the open project, and the generation orchestrator.
type commandContext struct {
	projectFlag string

	cfg    config.AppConfig
	apiKey string
	loaded bool

	ph   *storage.ProjectHandle
	orch *orchestrator.Orchestrator
}

func newCommandContext() *commandContext { return &commandContext{} }

func (c *commandContext) ensureConfig() (config.AppConfig, error) {
	if c.loaded {
		return c.cfg, nil
	}
	cfg, key, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load configuration: %w", err)
	}
	c.cfg = cfg
	c.apiKey = key
	c.loaded = true
	return cfg, nil
}

// projectRoot resolves the --project flag (default: current directory).
func (c *commandContext) projectRoot() (string, error) {
	root := c.projectFlag
	if root == "" {
		root = "."
	}
	return filepath.Abs(root)
}

// openProject opens the storyboard project once and caches the handle.
func (c *commandContext) openProject() (*storage.ProjectHandle, error) {
	if c.ph != nil {
		return c.ph, nil
	}
	root, err := c.projectRoot()
	if err != nil {
		return nil, err
	}
	ph, err := storage.Open(root)
	if err != nil {
		return nil, err
	}
	c.ph = ph
	return ph, nil
}

// ensureOrchestrator opens the project, loads the board into a fresh session,
// and wires the Gemini client behind the orchestrator.
func (c *commandContext) ensureOrchestrator(ctx context.Context) (*orchestrator.Orchestrator, *storage.ProjectHandle, error) {
	if c.orch != nil {
		return c.orch, c.ph, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	ph, err := c.openProject()
	if err != nil {
		return nil, nil, err
	}

	client, err := gemini.New(ctx, gemini.Config{
		APIKey:       c.apiKey,
		TextModel:    cfg.Models.Text,
		ImageModel:   cfg.Models.Image,
		ImageModelHQ: cfg.Models.ImageHQ,
		VideoModel:   cfg.Models.Video,
		SpeechModel:  cfg.Models.Speech,
		Voice:        cfg.Models.Voice,
		PollInterval: time.Duration(cfg.Generation.PollIntervalMs) * time.Millisecond,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCredentialRequired) {
			return nil, nil, fmt.Errorf("no API key configured; run `storyboarder auth set` or set %s", config.EnvAPIKey)
		}
		return nil, nil, err
	}

	style := cfg.Generation.Style
	if ph.Board.Style != "" {
		style = ph.Board.Style
	}

	store := board.NewStore()
	store.Load(ph.Board.Panels)
	registry := board.NewRegistry(ph.Board.Characters)

	var limit rate.Limit
	if cfg.Generation.RatePerMinute > 0 {
		limit = rate.Limit(cfg.Generation.RatePerMinute / 60)
	}
	c.orch = orchestrator.New(store, registry, client, orchestrator.Options{
		Style:       style,
		AspectRatio: cfg.Generation.AspectRatio,
		Quality:     domain.QualityTier(cfg.Generation.Quality),
		RateLimit:   limit,
		Burst:       2,
		CacheTTL:    time.Duration(cfg.Generation.CacheTTLMs) * time.Millisecond,
		Sink:        audio.FileSink{Dir: filepath.Join(ph.Root, storage.MediaDirName)},
	})
	return c.orch, ph, nil
}

// saveBoard writes the session state back to the manifest and records a board
// snapshot in the index.
func (c *commandContext) saveBoard(ctx context.Context, label string) error {
	if c.orch == nil || c.ph == nil {
		return nil
	}
	c.ph.Board.Panels = c.orch.Store().Panels()
	c.ph.Board.Characters = c.orch.Registry().Characters()
	if err := storage.Save(c.ph); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	if err := storage.SaveBoardSnapshot(ctx, c.ph, c.ph.Board.Panels, label, time.Now()); err != nil {
		return fmt.Errorf("record board snapshot: %w", err)
	}
	return nil
}

// panelByNumber resolves a 1-based shot number to its panel.
func panelByNumber(o *orchestrator.Orchestrator, number int) (domain.Panel, error) {
	for _, p := range o.Store().Panels() {
		if p.Number == number {
			return p, nil
		}
	}
	return domain.Panel{}, fmt.Errorf("no panel numbered %d", number)
}
