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
	"time"

	"google.golang.org/genai"

	"storyboarder/internal/domain"
)

// AnimateImage turns a generated still into a short clip. Credential
// rejections ("entity not found") surface as domain.ErrCredentialRequired;
// everything else is a generic failure.
func (c *Client) AnimateImage(ctx context.Context, ref, motionPrompt, aspectRatio string) (string, error) {
	img, err := videoSeedImage(ref)
	if err != nil {
		return "", fmt.Errorf("animate image: %w", err)
	}
	if aspectRatio == "" {
		aspectRatio = domain.DefaultAspectRatio
	}
	return c.runVideoOperation(ctx, motionPrompt, img, aspectRatio)
}

// AssembleAnimatic builds one combined clip request from up to three
// reference stills (in storyboard order) and a composite description. The
// first still seeds the clip; the composite prompt carries the full shot
// sequence. Fails outright on error: there is no partial animatic.
func (c *Client) AssembleAnimatic(ctx context.Context, refs []string, compositePrompt string) (string, error) {
	if len(refs) == 0 {
		return "", errors.New("assemble animatic: no reference stills")
	}
	if len(refs) > 3 {
		refs = refs[:3]
	}
	img, err := videoSeedImage(refs[0])
	if err != nil {
		return "", fmt.Errorf("assemble animatic: %w", err)
	}
	return c.runVideoOperation(ctx, compositePrompt, img, domain.DefaultAspectRatio)
}

// runVideoOperation starts a long-running video generation and polls it on a
// fixed interval until done. Polling is a scheduled retry, never a busy wait,
// and cancellation flows through ctx.
func (c *Client) runVideoOperation(ctx context.Context, prompt string, img *genai.Image, aspectRatio string) (string, error) {
	op, err := c.api.Models.GenerateVideos(ctx, c.cfg.VideoModel, prompt, img, &genai.GenerateVideosConfig{
		AspectRatio: aspectRatio,
	})
	if err != nil {
		return "", asCredential(fmt.Errorf("start video generation: %w", err))
	}

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()
	start := time.Now()
	for !op.Done {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
			op, err = c.api.Operations.GetVideosOperation(ctx, op, nil)
			if err != nil {
				return "", asCredential(fmt.Errorf("poll video generation: %w", err))
			}
		}
	}
	c.log.Info("video operation settled", "elapsed", time.Since(start).Round(time.Second))

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return "", errors.New("video generation returned no clip")
	}
	vid := op.Response.GeneratedVideos[0].Video
	if vid == nil {
		return "", errors.New("video generation returned no clip")
	}
	if len(vid.VideoBytes) > 0 {
		mime := vid.MIMEType
		if mime == "" {
			mime = "video/mp4"
		}
		return domain.DataURI(mime, vid.VideoBytes), nil
	}
	if vid.URI != "" {
		return vid.URI, nil
	}
	return "", errors.New("video generation returned an empty media reference")
}

// videoSeedImage converts an inline still reference into the request image.
func videoSeedImage(ref string) (*genai.Image, error) {
	if !domain.IsDataURI(ref) {
		// Remote stills are passed by URI; the service fetches them.
		return &genai.Image{GCSURI: ref}, nil
	}
	mime, data, err := domain.ParseDataURI(ref)
	if err != nil {
		return nil, err
	}
	return &genai.Image{ImageBytes: data, MIMEType: mime}, nil
}
