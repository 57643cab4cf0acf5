/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package prompt builds the final generation instructions. All functions are
// pure: same inputs, same string, no I/O. Character consistency is enforced
// here by re-injecting the registry's current descriptions into every prompt,
// so a live edit to a character reaches panels whose cached prompts were
// written at analysis time.
package prompt

import (
	"fmt"
	"strings"

	"storyboarder/internal/compositor"
	"storyboarder/internal/domain"
)

// DefaultStyle is applied when the storyboard has no explicit style.
const DefaultStyle = "Cinematic storyboard"

// qualitySuffix is the fixed technical trailer appended to every image prompt.
const qualitySuffix = "Highly detailed, coherent lighting, consistent character design, sharp focus, professional storyboard illustration."

// ComposeImagePrompt merges a panel's stored description, the character
// dictionary, and the requested style into one generation instruction.
//
// When the panel carries a technical prompt cached at analysis time it is
// used as the base; otherwise the prompt is reconstructed from shot type,
// visual description, and naive character matching. Either way, every
// character whose name appears in the working prompt gets a parenthetical
// restating its current description, which overrides whatever the cached
// prompt knew.
func ComposeImagePrompt(p domain.Panel, style string, chars []domain.CharacterProfile) string {
	base := strings.TrimSpace(p.ImagePrompt)
	if base == "" {
		base = reconstruct(p, chars)
	}

	var b strings.Builder
	b.WriteString(base)
	for _, c := range chars {
		if c.Description == "" {
			continue
		}
		if c.MentionedIn(base) {
			fmt.Fprintf(&b, " (%s is %s)", c.Name, c.Description)
		}
	}

	if strings.TrimSpace(style) == "" {
		style = DefaultStyle
	}
	return fmt.Sprintf("%s style. %s %s", style, b.String(), qualitySuffix)
}

// reconstruct is the fallback when no cached prompt exists: shot type plus
// visual description, with the profile of every character mentioned in the
// description or dialogue appended.
func reconstruct(p domain.Panel, chars []domain.CharacterProfile) string {
	var b strings.Builder
	if s := strings.TrimSpace(p.ShotType); s != "" {
		b.WriteString(s)
		b.WriteString(": ")
	}
	b.WriteString(strings.TrimSpace(p.VisualDescription))
	for _, c := range chars {
		if c.Description == "" {
			continue
		}
		if c.MentionedIn(p.VisualDescription) || c.MentionedIn(p.Dialogue) {
			fmt.Fprintf(&b, " %s is %s.", c.Name, c.Description)
		}
	}
	return b.String()
}

// ComposeOutpaintPrompt instructs the infill service to fill the blank region
// added by the compositor while leaving the original pixels untouched.
func ComposeOutpaintPrompt(dir compositor.Direction) string {
	var region string
	switch dir {
	case compositor.Left:
		region = "the blank area on the left"
	case compositor.Right:
		region = "the blank area on the right"
	case compositor.Up:
		region = "the blank area at the top"
	case compositor.Down:
		region = "the blank area at the bottom"
	case compositor.ZoomOut:
		region = "the blank border on all sides"
	default:
		region = "the blank area"
	}
	return fmt.Sprintf("Fill %s of the canvas. Preserve all existing image content exactly as it is and seamlessly extend the scene into the new region, matching style, lighting, and perspective.", region)
}

// ComposeMotionPrompt asks for a short clip derived from a panel's still.
func ComposeMotionPrompt(p domain.Panel) string {
	desc := strings.TrimSpace(p.VisualDescription)
	if desc == "" {
		desc = strings.TrimSpace(p.ImagePrompt)
	}
	return fmt.Sprintf("Animate this storyboard still with subtle, cinematic motion. Scene: %s Keep the composition and character appearance unchanged.", ensurePeriod(desc))
}

// ComposeAnimaticPrompt stitches per-panel summaries and explicit transition
// directives into one description for the combined animatic request. Panels
// are expected in storyboard order.
func ComposeAnimaticPrompt(panels domain.Panels) string {
	var b strings.Builder
	b.WriteString("Create a short animatic that moves through the provided reference images in order.")
	for i, p := range panels {
		summary := strings.TrimSpace(p.VisualDescription)
		if summary == "" {
			summary = strings.TrimSpace(p.ImagePrompt)
		}
		fmt.Fprintf(&b, " Shot %d: %s", i+1, ensurePeriod(summary))
		if i < len(panels)-1 {
			if t := p.Transition; t != "" && t != domain.TransitionNone {
				fmt.Fprintf(&b, " Transition to the next shot with a %s.", t)
			}
		}
	}
	return b.String()
}

func ensurePeriod(s string) string {
	if s == "" {
		return s
	}
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}
