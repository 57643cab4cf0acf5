/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package importer

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Final Draft files are XML; each Paragraph carries a Type attribute and one
// or more styled Text runs. We re-render them with conventional screenplay
// casing and indentation so downstream analysis sees familiar script shape.

type fdxFile struct {
	Content fdxContent `xml:"Content"`
}

type fdxContent struct {
	Paragraphs []fdxParagraph `xml:"Paragraph"`
}

type fdxParagraph struct {
	Type string   `xml:"Type,attr"`
	Text []string `xml:"Text"`
}

const (
	characterIndent     = "                    " // 20 spaces
	parentheticalIndent = "               "      // 15 spaces
	dialogueIndent      = "          "           // 10 spaces
)

// ParseFDX converts Final Draft XML into screenplay-formatted plain text.
func ParseFDX(data []byte) (string, error) {
	var doc fdxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("parse Final Draft XML: %w", err)
	}

	var b strings.Builder
	for _, p := range doc.Content.Paragraphs {
		text := strings.TrimSpace(strings.Join(p.Text, ""))
		if text == "" {
			continue
		}
		switch p.Type {
		case "Scene Heading":
			b.WriteString("\n")
			b.WriteString(strings.ToUpper(text))
			b.WriteString("\n")
		case "Character":
			b.WriteString("\n")
			b.WriteString(characterIndent)
			b.WriteString(strings.ToUpper(text))
			b.WriteString("\n")
		case "Parenthetical":
			if !strings.HasPrefix(text, "(") {
				text = "(" + text + ")"
			}
			b.WriteString(parentheticalIndent)
			b.WriteString(text)
			b.WriteString("\n")
		case "Dialogue":
			b.WriteString(dialogueIndent)
			b.WriteString(text)
			b.WriteString("\n")
		default:
			// Action and any other paragraph type: plain, full width.
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
