// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ui

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // icon formats
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// IconSize is the edge length of generated icons, in pixels.
const IconSize = 64

// LoadIcon decodes a PNG, JPEG, BMP or WebP icon and scales it to
// size x size. A size of zero keeps the original dimensions.
func LoadIcon(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ui: open icon: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("ui: decode icon %s: %w", path, err)
	}
	slogger().Debug("ui: icon loaded", "path", path, "format", format, "bounds", img.Bounds())
	if size <= 0 {
		return img, nil
	}
	return ScaleIcon(img, size), nil
}

// ScaleIcon resamples img to size x size with Catmull-Rom filtering.
func ScaleIcon(img image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}

// Icon names the built-in control icons.
type Icon uint8

const (
	IconPlay Icon = iota
	IconPause
	IconZoomIn
	IconZoomOut
)

// Image draws the icon in white on transparent at size x size pixels.
func (i Icon) Image(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	s := float32(size)
	inside := func(x, y float32) bool { return false }
	switch i {
	case IconPlay:
		// Right-pointing triangle.
		inside = func(x, y float32) bool {
			if x < 0.25*s || x > 0.8*s {
				return false
			}
			half := (0.8*s - x) / (0.55 * s) * 0.35 * s
			return y >= s/2-half && y <= s/2+half
		}
	case IconPause:
		inside = func(x, y float32) bool {
			inY := y >= 0.2*s && y <= 0.8*s
			return inY && ((x >= 0.25*s && x <= 0.42*s) || (x >= 0.58*s && x <= 0.75*s))
		}
	case IconZoomIn:
		inside = func(x, y float32) bool {
			return plusBar(x, y, s) || plusBar(y, x, s)
		}
	case IconZoomOut:
		inside = func(x, y float32) bool {
			return plusBar(y, x, s)
		}
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if inside(float32(x)+0.5, float32(y)+0.5) {
				img.SetRGBA(x, y, fg)
			}
		}
	}
	return img
}

// plusBar reports whether (x, y) is on the vertical bar of a plus sign.
func plusBar(x, y, s float32) bool {
	return x >= 0.42*s && x <= 0.58*s && y >= 0.2*s && y <= 0.8*s
}
