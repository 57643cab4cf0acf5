/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// SynthesizeSpeech renders dialogue as speech and returns the raw PCM payload
// (s16le, 24 kHz) for the audio package to decode.
func (c *Client) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.cfg.Voice},
			},
		},
	}
	resp, err := c.api.Models.GenerateContent(ctx, c.cfg.SpeechModel, genai.Text(text), cfg)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	_, data, ok := firstInlineData(resp, "audio/")
	if !ok {
		return nil, errors.New("synthesize speech: response carried no audio data")
	}
	return data, nil
}
