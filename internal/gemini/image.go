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

	"storyboarder/internal/domain"
)

// GenerateImage renders a still for the given prompt and returns it as a data
// URI. The standard tier uses the fast image model; QualityHigh routes to the
// higher-fidelity model. A non-zero seed anchors repeated requests so renders
// of the same cast stay visually close.
func (c *Client) GenerateImage(ctx context.Context, prompt, aspectRatio string, tier domain.QualityTier, seed int32) (string, error) {
	if aspectRatio == "" {
		aspectRatio = domain.DefaultAspectRatio
	}
	if tier == domain.QualityHigh {
		return c.generateImageHQ(ctx, prompt, aspectRatio, seed)
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
		ImageConfig:        &genai.ImageConfig{AspectRatio: aspectRatio},
	}
	if seed != 0 {
		cfg.Seed = genai.Ptr(seed)
	}
	resp, err := c.api.Models.GenerateContent(ctx, c.cfg.ImageModel, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}
	mime, data, ok := firstInlineData(resp, "image/")
	if !ok {
		return "", errors.New("generate image: response carried no image data")
	}
	return domain.DataURI(mime, data), nil
}

func (c *Client) generateImageHQ(ctx context.Context, prompt, aspectRatio string, seed int32) (string, error) {
	imgCfg := &genai.GenerateImagesConfig{AspectRatio: aspectRatio}
	if seed != 0 {
		imgCfg.Seed = genai.Ptr(seed)
	}
	resp, err := c.api.Models.GenerateImages(ctx, c.cfg.ImageModelHQ, prompt, imgCfg)
	if err != nil {
		return "", fmt.Errorf("generate image (high quality): %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", errors.New("generate image (high quality): empty response")
	}
	img := resp.GeneratedImages[0].Image
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return domain.DataURI(mime, img.ImageBytes), nil
}

// EditImage applies a natural-language instruction to an existing still
// (inpaint or outpaint infill) and returns the edited image as a data URI.
func (c *Client) EditImage(ctx context.Context, ref, instruction string) (string, error) {
	imgPart, err := partFromRef(ref)
	if err != nil {
		return "", fmt.Errorf("edit image: %w", err)
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(instruction),
			imgPart,
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{ResponseModalities: []string{"IMAGE", "TEXT"}}
	resp, err := c.api.Models.GenerateContent(ctx, c.cfg.ImageModel, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("edit image: %w", err)
	}
	mime, data, ok := firstInlineData(resp, "image/")
	if !ok {
		return "", errors.New("edit image: response carried no image data")
	}
	return domain.DataURI(mime, data), nil
}
