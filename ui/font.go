// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ui

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/hmdview/internal/cache"
)

// Label fonts are parsed once: go-text for shaping and measurement, sfnt
// for rasterization. Both are read-only and safe for concurrent use.
var labelFont struct {
	once   sync.Once
	shape  *gtfont.Font
	raster *opentype.Font
	err    error
}

func loadLabelFont() error {
	labelFont.once.Do(func() {
		face, err := gtfont.ParseTTF(bytes.NewReader(goregular.TTF))
		if err != nil {
			labelFont.err = fmt.Errorf("ui: parse label font: %w", err)
			return
		}
		labelFont.shape = face.Font

		otf, err := opentype.Parse(goregular.TTF)
		if err != nil {
			labelFont.err = fmt.Errorf("ui: parse label font: %w", err)
			return
		}
		labelFont.raster = otf
	})
	return labelFont.err
}

// textDirection returns the base direction of text. Neutral text (digits,
// punctuation) is left-to-right.
func textDirection(text string) di.Direction {
	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return di.DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	run := ordering.Run(0)
	if run.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

type textKey struct {
	text  string
	size  float32
	color color.RGBA
}

// Time labels cycle through a small set of strings, so shaped advances and
// rasterized images are kept by content. Cached images are never mutated.
var (
	advanceCache = cache.New[textKey, float32](256)
	textCache    = cache.New[textKey, *image.RGBA](64)
)

// measureText returns the shaped advance of text at size pixels.
func measureText(text string, size float32) (float32, di.Direction, error) {
	dir := textDirection(text)
	if text == "" {
		return 0, dir, nil
	}
	adv, err := advanceCache.GetOrCreate(textKey{text: text, size: size}, func() (float32, error) {
		return shapeAdvance(text, size, dir)
	})
	return adv, dir, err
}

func shapeAdvance(text string, size float32, dir di.Direction) (float32, error) {
	if err := loadLabelFont(); err != nil {
		return 0, err
	}
	runes := []rune(text)
	script := language.Latin
	for _, r := range runes {
		if r != ' ' {
			script = language.LookupScript(r)
			break
		}
	}
	out := (&shaping.HarfbuzzShaper{}).Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      gtfont.NewFace(labelFont.shape),
		Size:      fixed.Int26_6(size * 64),
		Script:    script,
		Language:  language.NewLanguage("en"),
	})
	adv := out.Advance
	if adv < 0 {
		adv = -adv
	}
	return float32(adv) / 64, nil
}

// rasterizeText draws text in col on a transparent image sized to the
// line box. The result is shared and must not be modified.
func rasterizeText(text string, size float32, col color.RGBA) (*image.RGBA, error) {
	return textCache.GetOrCreate(textKey{text, size, col}, func() (*image.RGBA, error) {
		return drawText(text, size, col)
	})
}

func drawText(text string, size float32, col color.RGBA) (*image.RGBA, error) {
	if err := loadLabelFont(); err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(labelFont.raster, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("ui: label face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	m := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	height := (m.Ascent + m.Descent).Ceil()
	img := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(text)
	return img, nil
}
