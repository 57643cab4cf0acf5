/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package importer extracts script text from supported file formats: plain
// text, Final Draft (.fdx) screenplays, and page-oriented PDF documents.
// Unsupported extensions fail fast with an error naming the accepted set;
// an import must never silently produce empty text.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// SupportedExtensions lists accepted script file extensions.
var SupportedExtensions = []string{".txt", ".fdx", ".pdf"}

// ImportScript reads the file at path and returns its script text, dispatching
// on the file extension.
func ImportScript(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read script file: %w", err)
		}
		return string(data), nil
	case ".fdx":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read screenplay file: %w", err)
		}
		return ParseFDX(data)
	case ".pdf":
		return extractPDF(path)
	default:
		return "", fmt.Errorf("unsupported script format %q; supported formats: %s",
			ext, strings.Join(SupportedExtensions, ", "))
	}
}

// extractPDF concatenates the plain text of every page in page order.
func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract text from PDF page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
