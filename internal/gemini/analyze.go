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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"

	"storyboarder/internal/domain"
)

const analysisInstruction = `Break the following script into storyboard panels.
For each panel provide a panel number, a visual description of the shot, a concise
technical image-generation prompt, a shot type (wide, medium, close-up, ...), the
dialogue spoken in it, and a transition to the next panel (none, cut, fade,
dissolve, wipe). Also list every recurring character with a detailed, reusable
description of their visual appearance.

Script:
`

// analysisJSONSchema validates the model's structured output before it is
// trusted. Malformed output is substituted with an empty result; only
// transport failures surface as errors.
const analysisJSONSchema = `{
  "type": "object",
  "required": ["panels", "characters"],
  "properties": {
    "panels": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["panelNumber", "visualDescription"],
        "properties": {
          "panelNumber": {"type": "integer"},
          "visualDescription": {"type": "string"},
          "imagePrompt": {"type": "string"},
          "shotType": {"type": "string"},
          "dialogue": {"type": "string"},
          "transition": {"type": "string"}
        }
      }
    },
    "characters": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "description"],
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    }
  }
}`

// analysisResponseSchema constrains the model output server-side.
var analysisResponseSchema = &genai.Schema{
	Type:     genai.TypeObject,
	Required: []string{"panels", "characters"},
	Properties: map[string]*genai.Schema{
		"panels": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type:     genai.TypeObject,
				Required: []string{"panelNumber", "visualDescription"},
				Properties: map[string]*genai.Schema{
					"panelNumber":       {Type: genai.TypeInteger},
					"visualDescription": {Type: genai.TypeString},
					"imagePrompt":       {Type: genai.TypeString},
					"shotType":          {Type: genai.TypeString},
					"dialogue":          {Type: genai.TypeString},
					"transition":        {Type: genai.TypeString},
				},
			},
		},
		"characters": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type:     genai.TypeObject,
				Required: []string{"name", "description"},
				Properties: map[string]*genai.Schema{
					"name":        {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
				},
			},
		},
	},
}

type analysisPayload struct {
	Panels []struct {
		PanelNumber       int    `json:"panelNumber"`
		VisualDescription string `json:"visualDescription"`
		ImagePrompt       string `json:"imagePrompt"`
		ShotType          string `json:"shotType"`
		Dialogue          string `json:"dialogue"`
		Transition        string `json:"transition"`
	} `json:"panels"`
	Characters []domain.CharacterProfile `json:"characters"`
}

// AnalyzeScript asks the text model for a structured storyboard breakdown.
// The raw result carries panel seeds without identity; the caller shapes them
// into the board schema. Output that fails schema validation yields an empty
// result, never an error.
func (c *Client) AnalyzeScript(ctx context.Context, script string) (domain.AnalysisResult, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisResponseSchema,
	}
	resp, err := c.api.Models.GenerateContent(ctx, c.cfg.TextModel, genai.Text(analysisInstruction+script), cfg)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("analyze script: %w", err)
	}

	raw := strings.TrimSpace(resp.Text())
	if !c.validAnalysis(raw) {
		c.log.Warn("analysis output failed schema validation; substituting empty result")
		return domain.AnalysisResult{}, nil
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		c.log.Warn("analysis output not decodable", "err", err)
		return domain.AnalysisResult{}, nil
	}

	out := domain.AnalysisResult{Characters: payload.Characters}
	for _, p := range payload.Panels {
		out.Panels = append(out.Panels, domain.Panel{
			Number:            p.PanelNumber,
			VisualDescription: p.VisualDescription,
			ImagePrompt:       p.ImagePrompt,
			ShotType:          p.ShotType,
			Dialogue:          p.Dialogue,
			Transition:        parseTransition(p.Transition),
		})
	}
	return out, nil
}

func (c *Client) validAnalysis(raw string) bool {
	if raw == "" {
		return false
	}
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(analysisJSONSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return false
	}
	return res.Valid()
}

func parseTransition(s string) domain.Transition {
	switch domain.Transition(strings.ToLower(strings.TrimSpace(s))) {
	case domain.TransitionCut:
		return domain.TransitionCut
	case domain.TransitionFade:
		return domain.TransitionFade
	case domain.TransitionDissolve:
		return domain.TransitionDissolve
	case domain.TransitionWipe:
		return domain.TransitionWipe
	default:
		return domain.TransitionNone
	}
}
