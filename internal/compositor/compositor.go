/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package compositor expands an image's canvas ahead of outpainting: the
// original pixels are placed at a fixed offset inside a larger transparent
// canvas and the blank region is left for the generation service to fill.
// Everything here is local, synchronous, and deterministic.
package compositor

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// Register decoders for the formats generated stills arrive in.
	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"

	"storyboarder/internal/domain"
)

// Direction selects which edge of the canvas grows. ZoomOut grows all four.
type Direction string

const (
	Up      Direction = "up"
	Down    Direction = "down"
	Left    Direction = "left"
	Right   Direction = "right"
	ZoomOut Direction = "zoom-out"
)

// expansion factor: the grown dimension gains half the original size.
const growth = 2 // denominator: added region = dimension / growth

// ParseDirection validates a user-supplied direction name.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down, Left, Right, ZoomOut:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown outpaint direction %q (supported: up, down, left, right, zoom-out)", s)
}

// Expand returns a new canvas with the source drawn at the offset dictated by
// the direction, plus that offset. The added region stays fully transparent.
func Expand(src image.Image, dir Direction) (*image.RGBA, image.Point, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, image.Point{}, fmt.Errorf("source image is empty")
	}

	newW, newH := w, h
	var off image.Point
	switch dir {
	case Left:
		newW = w + w/growth
		off.X = w / growth
	case Right:
		newW = w + w/growth
	case Up:
		newH = h + h/growth
		off.Y = h / growth
	case Down:
		newH = h + h/growth
	case ZoomOut:
		newW = w + w/growth
		newH = h + h/growth
		off.X = (newW - w) / 2
		off.Y = (newH - h) / 2
	default:
		return nil, image.Point{}, fmt.Errorf("unknown outpaint direction %q", dir)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.Copy(dst, off, src, b, xdraw.Src, nil)
	return dst, off, nil
}

// ExpandPNG decodes raster data in any registered format, expands the canvas,
// and re-encodes the result as PNG.
func ExpandPNG(data []byte, dir Direction) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode source image: %w", err)
	}
	dst, _, err := Expand(src, dir)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode expanded canvas: %w", err)
	}
	return buf.Bytes(), nil
}

// ExpandDataURI runs ExpandPNG over an inline media reference and returns the
// expanded canvas as a PNG data URI.
func ExpandDataURI(ref string, dir Direction) (string, error) {
	_, data, err := domain.ParseDataURI(ref)
	if err != nil {
		return "", err
	}
	out, err := ExpandPNG(data, dir)
	if err != nil {
		return "", err
	}
	return domain.DataURI("image/png", out), nil
}
