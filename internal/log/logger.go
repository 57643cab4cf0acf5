/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log provides the slog-based application logger: console output by
// default, optional rotated JSON file output, and helpers that tag records
// with the component and operation they belong to.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	lj "gopkg.in/natefinch/lumberjack.v2"

	"storyboarder/internal/version"
)

// Options controls logger initialization. Environment variables provide the
// same knobs: SBD_LOG_LEVEL, SBD_LOG_FORMAT (console|json), SBD_LOG_FILE,
// SBD_LOG_SOURCE.
type Options struct {
	Level     string
	Format    string
	AddSource bool
	File      string // optional path; enables rotated file logging
}

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// L returns the application logger, initializing it from the environment on
// first use.
func L() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init configures the global logger and installs it as slog's default.
func Init(opts Options) {
	lvl := parseLevel(opts.Level)
	ho := &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}

	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(os.Stderr, ho)
	} else {
		h = slog.NewTextHandler(os.Stderr, ho)
	}
	if strings.TrimSpace(opts.File) != "" {
		rot := &lj.Logger{Filename: opts.File, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		h = tee{h, slog.NewJSONHandler(rot, ho)}
	}

	l := slog.New(h).With(
		slog.String("app", "storyboarder"),
		slog.String("ver", version.Version),
	)
	mu.Lock()
	logger = l
	mu.Unlock()
	slog.SetDefault(l)
}

// InitDiscard routes all logging to a discard handler; used by tests.
func InitDiscard() {
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	mu.Lock()
	logger = l
	mu.Unlock()
}

// FromEnv builds Options from the environment.
func FromEnv() Options {
	return Options{
		Level:     getenv("SBD_LOG_LEVEL", "info"),
		Format:    getenv("SBD_LOG_FORMAT", "console"),
		AddSource: strings.EqualFold(getenv("SBD_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("SBD_LOG_FILE"),
	}
}

// WithComponent returns a logger tagged with a component name.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation tags a logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// tee fans records out to both handlers.
type tee struct{ a, b slog.Handler }

func (t tee) Enabled(ctx context.Context, level slog.Level) bool {
	return t.a.Enabled(ctx, level) || t.b.Enabled(ctx, level)
}

func (t tee) Handle(ctx context.Context, r slog.Record) error {
	err := t.a.Handle(ctx, r)
	if berr := t.b.Handle(ctx, r.Clone()); err == nil {
		err = berr
	}
	return err
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	return tee{t.a.WithAttrs(attrs), t.b.WithAttrs(attrs)}
}

func (t tee) WithGroup(name string) slog.Handler {
	return tee{t.a.WithGroup(name), t.b.WithGroup(name)}
}
