package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storyboarder/internal/domain"
)

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return domain.DataURI("image/png", buf.Bytes())
}

func TestWriteContactSheet(t *testing.T) {
	panels := domain.Panels{
		{
			ID:                domain.NewPanelID(),
			Number:            1,
			ShotType:          "Wide shot",
			VisualDescription: "Mara stands at the door of the farmhouse, lantern raised against the rain.",
			Dialogue:          "Open up.",
			Transition:        domain.TransitionCut,
			ImageRef:          pngDataURI(t, 32, 18),
		},
		{
			ID:                domain.NewPanelID(),
			Number:            2,
			ShotType:          "Close-up",
			VisualDescription: "The bolt slides back.",
		},
	}

	out := filepath.Join(t.TempDir(), "sheet.pdf")
	if err := WriteContactSheet(panels, out, ContactSheetOptions{Title: "Rainy Night"}); err != nil {
		t.Fatalf("WriteContactSheet: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("empty PDF written")
	}
	head := make([]byte, 5)
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	if _, err := f.Read(head); err != nil {
		t.Fatalf("read header: %v", err)
	}
	if string(head) != "%PDF-" {
		t.Fatalf("not a PDF header: %q", head)
	}
}

func TestWriteContactSheetCreatesOutDir(t *testing.T) {
	panels := domain.Panels{{ID: domain.NewPanelID(), Number: 1, VisualDescription: "A field."}}
	out := filepath.Join(t.TempDir(), "nested", "deep", "sheet.pdf")
	if err := WriteContactSheet(panels, out, ContactSheetOptions{}); err != nil {
		t.Fatalf("WriteContactSheet: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestWriteContactSheetRejectsEmptyBoard(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sheet.pdf")
	if err := WriteContactSheet(nil, out, ContactSheetOptions{}); err == nil {
		t.Fatalf("expected error for empty board")
	}
}

func TestWriteContactSheetSkipsBadImage(t *testing.T) {
	panels := domain.Panels{
		{
			ID:                domain.NewPanelID(),
			Number:            1,
			VisualDescription: "Broken still.",
			ImageRef:          domain.DataURI("image/png", []byte("not a png")),
		},
	}
	out := filepath.Join(t.TempDir(), "sheet.pdf")
	if err := WriteContactSheet(panels, out, ContactSheetOptions{}); err != nil {
		t.Fatalf("bad image should not fail export: %v", err)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("the quick brown fox jumps over the lazy dog", 15)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %v", lines)
	}
	for _, l := range lines {
		if len([]rune(l)) > 15 {
			t.Fatalf("line exceeds width: %q", l)
		}
	}
	if got := strings.Join(lines, " "); got != "the quick brown fox jumps over the lazy dog" {
		t.Fatalf("words lost in wrapping: %q", got)
	}
	if wrapText("", 10) != nil {
		t.Fatalf("empty input should yield nil")
	}
	long := wrapText("supercalifragilistic", 5)
	if len(long) != 1 || long[0] != "supercalifragilistic" {
		t.Fatalf("single long word mishandled: %v", long)
	}
}
