/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gemini implements the generation capability surface against the
// Gemini API: script analysis, still generation and editing, clip generation,
// animatic assembly, and speech synthesis. The credential context is passed
// explicitly at construction; a key change means building a new client.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"storyboarder/internal/domain"
	applog "storyboarder/internal/log"
)

// Config holds the credential and model selection for one client instance.
type Config struct {
	APIKey string

	TextModel    string
	ImageModel   string // standard/fast still generation and editing
	ImageModelHQ string // higher-fidelity still generation
	VideoModel   string
	SpeechModel  string
	Voice        string

	// PollInterval paces the long-running video operation polls.
	PollInterval time.Duration
}

// Defaults for model selection; overridable through configuration.
const (
	DefaultTextModel    = "gemini-2.5-flash"
	DefaultImageModel   = "gemini-2.5-flash-image-preview"
	DefaultImageModelHQ = "imagen-4.0-generate-001"
	DefaultVideoModel   = "veo-2.0-generate-001"
	DefaultSpeechModel  = "gemini-2.5-flash-preview-tts"
	DefaultVoice        = "Kore"

	DefaultPollInterval = 5 * time.Second
)

// Client talks to the Gemini API.
type Client struct {
	api *genai.Client
	cfg Config
	log *slog.Logger
}

// New builds a client for the given credential and model configuration.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: %w", domain.ErrCredentialRequired)
	}
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	if cfg.ImageModelHQ == "" {
		cfg.ImageModelHQ = DefaultImageModelHQ
	}
	if cfg.VideoModel == "" {
		cfg.VideoModel = DefaultVideoModel
	}
	if cfg.SpeechModel == "" {
		cfg.SpeechModel = DefaultSpeechModel
	}
	if cfg.Voice == "" {
		cfg.Voice = DefaultVoice
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{api: api, cfg: cfg, log: applog.WithComponent("gemini")}, nil
}

// asCredential maps the service's "entity not found" failure signature (an
// invalid or unselected billing key) onto the credential sentinel so callers
// can distinguish it from generic generation failure.
func asCredential(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "entity was not found") || strings.Contains(msg, "entity not found") {
		return fmt.Errorf("%w: %v", domain.ErrCredentialRequired, err)
	}
	return err
}

// partsFromRef converts a media reference into a request part. Only inline
// data URIs can be re-sent as reference media.
func partFromRef(ref string) (*genai.Part, error) {
	if !domain.IsDataURI(ref) {
		return nil, errors.New("reference media must be an inline data URI")
	}
	mime, data, err := domain.ParseDataURI(ref)
	if err != nil {
		return nil, err
	}
	return genai.NewPartFromBytes(data, mime), nil
}

// firstInlineData scans a response for the first inline payload with the
// given MIME prefix.
func firstInlineData(resp *genai.GenerateContentResponse, mimePrefix string) (string, []byte, bool) {
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil {
				continue
			}
			if strings.HasPrefix(part.InlineData.MIMEType, mimePrefix) {
				return part.InlineData.MIMEType, part.InlineData.Data, true
			}
		}
	}
	return "", nil, false
}
