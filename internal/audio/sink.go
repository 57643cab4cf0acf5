/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Sink plays a clip. Play blocks until playback has finished (or the context
// is cancelled); the caller's "playing" state spans the whole call.
type Sink interface {
	Play(ctx context.Context, c *Clip) error
}

// FileSink materializes clips as WAV files in a directory. Playback is the
// write itself; it completes when the file is on disk.
type FileSink struct {
	Dir string
}

// Play writes the clip to a timestamped WAV file under the sink directory.
func (s FileSink) Play(_ context.Context, c *Clip) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create narration dir: %w", err)
	}
	name := fmt.Sprintf("narration-%d.wav", time.Now().UnixNano())
	return c.SaveWAV(filepath.Join(s.Dir, name))
}

// RealtimeSink simulates a live output device: Play blocks for the clip's
// duration or until the context is cancelled. Useful in front ends that hand
// the WAV bytes to an actual device elsewhere.
type RealtimeSink struct{}

// Play blocks for the duration of the clip.
func (RealtimeSink) Play(ctx context.Context, c *Clip) error {
	t := time.NewTimer(c.Duration())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
