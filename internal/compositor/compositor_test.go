package compositor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"storyboarder/internal/domain"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestExpandGeometry(t *testing.T) {
	cases := []struct {
		dir        Direction
		wantW      int
		wantH      int
		wantOffset image.Point
	}{
		{Left, 150, 100, image.Pt(50, 0)},
		{Right, 150, 100, image.Pt(0, 0)},
		{Up, 100, 150, image.Pt(0, 50)},
		{Down, 100, 150, image.Pt(0, 0)},
		{ZoomOut, 150, 150, image.Pt(25, 25)},
	}
	src := solidImage(100, 100, color.RGBA{R: 255, A: 255})
	for _, tc := range cases {
		dst, off, err := Expand(src, tc.dir)
		if err != nil {
			t.Fatalf("%s: %v", tc.dir, err)
		}
		b := dst.Bounds()
		if b.Dx() != tc.wantW || b.Dy() != tc.wantH {
			t.Fatalf("%s: canvas %dx%d, want %dx%d", tc.dir, b.Dx(), b.Dy(), tc.wantW, tc.wantH)
		}
		if off != tc.wantOffset {
			t.Fatalf("%s: offset %v, want %v", tc.dir, off, tc.wantOffset)
		}
	}
}

func TestExpandPreservesSourcePixelsAndLeavesBlankTransparent(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	src := solidImage(40, 40, red)
	dst, off, err := Expand(src, Left)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	// Original content at the offset.
	if got := dst.RGBAAt(off.X, 0); got != red {
		t.Fatalf("source pixel lost: %v", got)
	}
	if got := dst.RGBAAt(off.X+39, 39); got != red {
		t.Fatalf("source corner lost: %v", got)
	}
	// The added region stays fully transparent.
	if got := dst.RGBAAt(0, 0); got.A != 0 {
		t.Fatalf("blank region not transparent: %v", got)
	}
	if got := dst.RGBAAt(off.X-1, 39); got.A != 0 {
		t.Fatalf("blank region edge not transparent: %v", got)
	}
}

func TestExpandOddDimensions(t *testing.T) {
	src := solidImage(101, 51, color.RGBA{G: 255, A: 255})
	dst, off, err := Expand(src, ZoomOut)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	b := dst.Bounds()
	if b.Dx() != 101+50 || b.Dy() != 51+25 {
		t.Fatalf("odd-dimension canvas %dx%d", b.Dx(), b.Dy())
	}
	if off.X != 25 || off.Y != 12 {
		t.Fatalf("odd-dimension offset %v", off)
	}
}

func TestExpandPNGIsDeterministic(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(20, 20, color.RGBA{B: 255, A: 255})); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	a, err := ExpandPNG(buf.Bytes(), Right)
	if err != nil {
		t.Fatalf("ExpandPNG: %v", err)
	}
	b, err := ExpandPNG(buf.Bytes(), Right)
	if err != nil {
		t.Fatalf("ExpandPNG: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("same input produced different bytes")
	}
	img, err := png.Decode(bytes.NewReader(a))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 20 {
		t.Fatalf("result %v", img.Bounds())
	}
}

func TestExpandPNGRejectsGarbage(t *testing.T) {
	if _, err := ExpandPNG([]byte("not an image"), Up); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestExpandDataURIRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(10, 10, color.RGBA{R: 1, A: 255})); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	ref := domain.DataURI("image/png", buf.Bytes())
	out, err := ExpandDataURI(ref, Down)
	if err != nil {
		t.Fatalf("ExpandDataURI: %v", err)
	}
	mime, data, err := domain.ParseDataURI(out)
	if err != nil {
		t.Fatalf("parse result: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("result mime %q", mime)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if img.Bounds().Dy() != 15 {
		t.Fatalf("height %d, want 15", img.Bounds().Dy())
	}
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"up", "down", "left", "right", "zoom-out"} {
		if _, err := ParseDirection(s); err != nil {
			t.Fatalf("ParseDirection(%q): %v", s, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}
