/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"storyboarder/internal/domain"
)

const MediaDirName = "media"

// language=SQL
// dialect=SQLite
const upsertMediaAssetSQL = `INSERT INTO media_assets(panel_id, kind, ts, path) VALUES (?, ?, ?, ?)
	ON CONFLICT(panel_id, kind) DO UPDATE SET ts=excluded.ts, path=excluded.path`

// ExportPanelMedia writes the inline media of every panel that holds a data
// URI to files under <root>/media and records each file in the index.
// Panels whose refs are remote URLs are skipped. It returns the number of
// files written.
func ExportPanelMedia(ctx context.Context, ph *ProjectHandle, panels domain.Panels) (int, error) {
	if ph == nil {
		return 0, errors.New("nil ProjectHandle")
	}
	mdir := filepath.Join(ph.Root, MediaDirName)
	if err := os.MkdirAll(mdir, 0o755); err != nil {
		return 0, fmt.Errorf("ensure media dir: %w", err)
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	written := 0
	for _, p := range panels {
		for _, m := range []struct {
			kind string
			ref  string
		}{
			{"image", p.ImageRef},
			{"video", p.VideoRef},
		} {
			if !domain.IsDataURI(m.ref) {
				continue
			}
			mime, data, err := domain.ParseDataURI(m.ref)
			if err != nil {
				return written, fmt.Errorf("panel %d %s: %w", p.Number, m.kind, err)
			}
			name := fmt.Sprintf("panel-%03d-%s%s", p.Number, m.kind, extForMIME(mime))
			path := filepath.Join(mdir, name)
			if err := writeFileSync(path, data); err != nil {
				return written, fmt.Errorf("write %s: %w", name, err)
			}
			if _, err := db.ExecContext(ctx, upsertMediaAssetSQL, p.ID, m.kind, now, path); err != nil {
				return written, fmt.Errorf("record %s: %w", name, err)
			}
			written++
		}
	}
	return written, nil
}

func extForMIME(mime string) string {
	switch {
	case strings.Contains(mime, "png"):
		return ".png"
	case strings.Contains(mime, "jpeg"), strings.Contains(mime, "jpg"):
		return ".jpg"
	case strings.Contains(mime, "webp"):
		return ".webp"
	case strings.Contains(mime, "mp4"):
		return ".mp4"
	case strings.Contains(mime, "webm"):
		return ".webm"
	default:
		return ".bin"
	}
}
