/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user-editable application configuration: a YAML
// file in the user scope, read-only environment overrides on top, and the
// generation API key held in the OS keyring rather than on disk.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// GenerationConfig tunes the generation pipeline.
type GenerationConfig struct {
	Style          string  `yaml:"style"`
	AspectRatio    string  `yaml:"aspect_ratio"`
	Quality        string  `yaml:"quality"` // "" (standard) or "high"
	RatePerMinute  float64 `yaml:"rate_per_minute"`
	CacheTTLMs     int     `yaml:"cache_ttl_ms"`
	PollIntervalMs int     `yaml:"poll_interval_ms"`
}

// ModelConfig selects the models behind each capability.
type ModelConfig struct {
	Text    string `yaml:"text"`
	Image   string `yaml:"image"`
	ImageHQ string `yaml:"image_hq"`
	Video   string `yaml:"video"`
	Speech  string `yaml:"speech"`
	Voice   string `yaml:"voice"`
}

// LoggingConfig mirrors the log package options.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the persisted configuration document.
type AppConfig struct {
	ConfigVersion int              `yaml:"config_version"`
	Generation    GenerationConfig `yaml:"generation"`
	Models        ModelConfig      `yaml:"models"`
	Logging       LoggingConfig    `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Generation: GenerationConfig{
			AspectRatio:    "16:9",
			RatePerMinute:  30,
			CacheTTLMs:     int((5 * time.Minute).Milliseconds()),
			PollIntervalMs: int((5 * time.Second).Milliseconds()),
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Environment override names.
const (
	EnvAPIKey       = "SBD_API_KEY"
	EnvStyle        = "SBD_STYLE"
	EnvAspectRatio  = "SBD_ASPECT_RATIO"
	EnvQuality      = "SBD_QUALITY"
	EnvRatePerMin   = "SBD_RATE_PER_MINUTE"
	EnvPollInterval = "SBD_POLL_INTERVAL_MS"
	EnvLogLevel     = "SBD_LOG_LEVEL"
	EnvLogFormat    = "SBD_LOG_FORMAT"
	EnvLogSource    = "SBD_LOG_SOURCE"
	EnvLogFile      = "SBD_LOG_FILE"
)

// Path returns the per-user config file path.
func Path() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Storyboarder")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Storyboarder")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "storyboarder")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the config file if present, applies defaults, and merges
// environment overrides. The API key is returned separately: it comes from
// the keyring, with SBD_API_KEY as a runtime override.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := Path()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)

	key := strings.TrimSpace(os.Getenv(EnvAPIKey))
	if key == "" {
		key, _ = APIKey()
	}
	return cfg, key, nil
}

// Save writes the config YAML (the API key is persisted via the keyring,
// never into the file).
func Save(cfg AppConfig) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Generation.Style != "" {
		dst.Generation.Style = src.Generation.Style
	}
	if src.Generation.AspectRatio != "" {
		dst.Generation.AspectRatio = src.Generation.AspectRatio
	}
	if src.Generation.Quality != "" {
		dst.Generation.Quality = src.Generation.Quality
	}
	if src.Generation.RatePerMinute != 0 {
		dst.Generation.RatePerMinute = src.Generation.RatePerMinute
	}
	if src.Generation.CacheTTLMs != 0 {
		dst.Generation.CacheTTLMs = src.Generation.CacheTTLMs
	}
	if src.Generation.PollIntervalMs != 0 {
		dst.Generation.PollIntervalMs = src.Generation.PollIntervalMs
	}
	if src.Models.Text != "" {
		dst.Models.Text = src.Models.Text
	}
	if src.Models.Image != "" {
		dst.Models.Image = src.Models.Image
	}
	if src.Models.ImageHQ != "" {
		dst.Models.ImageHQ = src.Models.ImageHQ
	}
	if src.Models.Video != "" {
		dst.Models.Video = src.Models.Video
	}
	if src.Models.Speech != "" {
		dst.Models.Speech = src.Models.Speech
	}
	if src.Models.Voice != "" {
		dst.Models.Voice = src.Models.Voice
	}
	if s := strings.TrimSpace(src.Logging.Level); s != "" {
		dst.Logging.Level = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Logging.Format); s != "" {
		dst.Logging.Format = strings.ToLower(s)
	}
	dst.Logging.Source = src.Logging.Source
	if s := strings.TrimSpace(src.Logging.File); s != "" {
		dst.Logging.File = s
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvStyle)); v != "" {
		cfg.Generation.Style = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAspectRatio)); v != "" {
		cfg.Generation.AspectRatio = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvQuality)); v != "" {
		cfg.Generation.Quality = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvRatePerMin)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Generation.RatePerMinute = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvPollInterval)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generation.PollIntervalMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}
