/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a storyboard into shareable artifacts.
// The contact sheet layout places a fixed grid of panels per page with
// the still, shot metadata, and dialogue under each cell.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"storyboarder/internal/domain"
)

// ContactSheetOptions controls PDF export behavior.
// Units are points (pt). Built-in Helvetica keeps text vector without embedding.
type ContactSheetOptions struct {
	Title     string
	Columns   int // panels per row; default 3
	Rows      int // rows per page; default 2
	PageWidth float64
	PageHt    float64
	Margin    float64
}

func (o *ContactSheetOptions) applyDefaults() {
	if o.Columns <= 0 {
		o.Columns = 3
	}
	if o.Rows <= 0 {
		o.Rows = 2
	}
	if o.PageWidth <= 0 || o.PageHt <= 0 {
		// A4 landscape in points
		o.PageWidth = 842
		o.PageHt = 595
	}
	if o.Margin <= 0 {
		o.Margin = 36
	}
}

// WriteContactSheet exports the panels as a multi-page PDF contact sheet at
// outPath. Panels with inline PNG or JPEG stills get the image embedded;
// panels without an image get a placeholder frame.
func WriteContactSheet(panels domain.Panels, outPath string, opt ContactSheetOptions) error {
	if len(panels) == 0 {
		return fmt.Errorf("no panels to export")
	}
	opt.applyDefaults()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: opt.PageWidth, Ht: opt.PageHt},
		OrientationStr: "",
	})
	title := opt.Title
	if title == "" {
		title = "Storyboard"
	}
	pdf.SetTitle(title, false)
	pdf.SetAuthor("Storyboarder", false)
	pdf.SetFont("Helvetica", "", 10)

	cellW := (opt.PageWidth - 2*opt.Margin) / float64(opt.Columns)
	cellH := (opt.PageHt - 2*opt.Margin - 24) / float64(opt.Rows)
	imgH := cellH * 0.62
	pad := 6.0

	perPage := opt.Columns * opt.Rows
	for i, p := range panels {
		slot := i % perPage
		if slot == 0 {
			pdf.AddPageFormat("", gofpdf.SizeType{Wd: opt.PageWidth, Ht: opt.PageHt})
			pdf.SetFont("Helvetica", "B", 14)
			pdf.Text(opt.Margin, opt.Margin-10, title)
		}
		col := slot % opt.Columns
		row := slot / opt.Columns
		x := opt.Margin + float64(col)*cellW
		y := opt.Margin + 12 + float64(row)*cellH

		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.8)
		pdf.Rect(x+pad/2, y, cellW-pad, imgH, "D")

		if name, ok := registerPanelImage(pdf, p); ok {
			pdf.ImageOptions(name, x+pad/2, y, cellW-pad, imgH, false,
				gofpdf.ImageOptions{ReadDpi: false}, 0, "")
		} else {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.Text(x+pad, y+imgH/2, "no image")
		}

		ty := y + imgH + 12
		pdf.SetFont("Helvetica", "B", 9)
		header := fmt.Sprintf("Shot %d", p.Number)
		if p.ShotType != "" {
			header += " · " + p.ShotType
		}
		pdf.Text(x+pad, ty, header)
		ty += 11

		pdf.SetFont("Helvetica", "", 8)
		for _, line := range wrapText(p.VisualDescription, 52) {
			if ty > y+cellH-4 {
				break
			}
			pdf.Text(x+pad, ty, line)
			ty += 9
		}
		if p.Dialogue != "" {
			pdf.SetFont("Helvetica", "I", 8)
			for _, line := range wrapText("“"+p.Dialogue+"”", 52) {
				if ty > y+cellH-4 {
					break
				}
				pdf.Text(x+pad, ty, line)
				ty += 9
			}
		}
		if p.Transition != "" && p.Transition != domain.TransitionNone {
			pdf.SetFont("Helvetica", "", 7)
			pdf.Text(x+pad, y+cellH-2, "→ "+string(p.Transition))
		}
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// registerPanelImage decodes an inline data URI still and registers it with
// the document. gofpdf understands PNG and JPEG payloads.
func registerPanelImage(pdf *gofpdf.Fpdf, p domain.Panel) (string, bool) {
	if !domain.IsDataURI(p.ImageRef) {
		return "", false
	}
	mime, data, err := domain.ParseDataURI(p.ImageRef)
	if err != nil {
		return "", false
	}
	var imgType string
	switch {
	case strings.Contains(mime, "png"):
		imgType = "PNG"
	case strings.Contains(mime, "jpeg"), strings.Contains(mime, "jpg"):
		imgType = "JPG"
	default:
		return "", false
	}
	name := fmt.Sprintf("panel-%s", p.ID)
	info := pdf.RegisterImageOptionsReader(name,
		gofpdf.ImageOptions{ImageType: imgType}, bytes.NewReader(data))
	if info == nil || pdf.Err() {
		// Clear the error so one bad image doesn't poison the document.
		pdf.ClearError()
		return "", false
	}
	return name, true
}

// wrapText breaks s into lines of at most width runes at word boundaries.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if len([]rune(cur))+1+len([]rune(w)) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	lines = append(lines, cur)
	return lines
}
