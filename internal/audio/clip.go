/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package audio turns synthesized speech payloads into playable clips. The
// speech service returns raw little-endian 16-bit PCM at a fixed 24 kHz; this
// package decodes it, normalizes samples into [-1, 1], and can materialize a
// WAV file for an output sink.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// SampleRate is the fixed rate of the speech service's PCM output.
const SampleRate = 24000

const bitDepth = 16

// Clip is a decoded mono waveform. Samples hold the normalized float form;
// raw integer samples are retained for lossless re-encoding.
type Clip struct {
	Samples []float64
	ints    []int
}

// Decode converts raw s16le PCM into a normalized clip. A trailing odd byte
// is ignored. An empty payload is an error: the speech service signals
// failure by returning nothing.
func Decode(raw []byte) (*Clip, error) {
	n := len(raw) / 2
	if n == 0 {
		return nil, fmt.Errorf("empty PCM payload")
	}
	c := &Clip{
		Samples: make([]float64, n),
		ints:    make([]int, n),
	}
	for i := 0; i < n; i++ {
		s := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		c.ints[i] = int(s)
		c.Samples[i] = float64(s) / 32768.0
	}
	return c, nil
}

// Duration returns the playback length of the clip.
func (c *Clip) Duration() time.Duration {
	return time.Duration(len(c.Samples)) * time.Second / SampleRate
}

// WriteWAV encodes the clip as a mono 16-bit WAV stream.
func (c *Clip) WriteWAV(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, SampleRate, bitDepth, 1, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: SampleRate},
		Data:           c.ints,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize WAV: %w", err)
	}
	return nil
}

// SaveWAV writes the clip to a WAV file at path.
func (c *Clip) SaveWAV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create WAV file: %w", err)
	}
	if err := c.WriteWAV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
