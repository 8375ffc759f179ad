// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ui

import (
	"image"
	"image/color"

	"github.com/go-text/typesetting/di"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/hmdview/render"
)

const (
	// labelUnit converts font pixels to surface units.
	labelUnit = 0.001

	// labelOversample renders label textures above their nominal size.
	labelOversample = 4
)

var labelColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

type labelState struct {
	text    string
	size    float32
	color   color.RGBA
	advance float32
	dir     di.Direction
	dirty   bool
}

// NewLabel creates a label whose baseline box starts at (x, y) in design
// units, with font size in pixels. Right-to-left text extends leftward
// from x.
func NewLabel(name string, x, y, size float32, text string) *Widget {
	w := newWidget(KindLabel, name, R(x, y, 0, 0))
	w.label = &labelState{size: size, color: labelColor}
	w.SetText(text)
	return w
}

// Text returns the label text, or "" for other kinds.
func (w *Widget) Text() string {
	if w.label == nil {
		return ""
	}
	return w.label.text
}

// SetText replaces the label text and re-lays out the label.
func (w *Widget) SetText(text string) {
	l := w.label
	if l == nil || (text == l.text && !l.dirty && l.advance > 0) {
		return
	}
	l.text = text
	adv, dir, err := measureText(text, l.size)
	if err != nil {
		slogger().Warn("ui: label measurement failed", "widget", w.String(), "err", err)
	}
	l.advance = adv
	l.dir = dir
	l.dirty = true
	w.Layout()
}

// FontSize returns the label font size in pixels.
func (w *Widget) FontSize() float32 {
	if w.label == nil {
		return 0
	}
	return w.label.size
}

// TextDirection returns the label's base direction.
func (w *Widget) TextDirection() di.Direction {
	if w.label == nil {
		return di.DirectionLTR
	}
	return w.label.dir
}

// SetTextColor sets the label color.
func (w *Widget) SetTextColor(c color.RGBA) {
	if w.label != nil && w.label.color != c {
		w.label.color = c
		w.label.dirty = true
	}
}

func (l *labelState) layout(frame Rect, sx, sy float32) Rect {
	width := l.advance * labelUnit * sx
	r := R(frame.X*sx, frame.Y*sy, width, l.size*labelUnit*sy)
	if l.dir == di.DirectionRTL {
		r.X -= width
	}
	return r
}

func (l *labelState) draw(w *Widget, ctx *render.Context, z float32) {
	if l.text == "" {
		return
	}
	tex, err := l.upload(w)
	if err != nil {
		slogger().Debug("ui: label texture unavailable", "widget", w.String(), "err", err)
		return
	}
	ctx.DrawQuad(w.quad(z, tex, color.RGBA{}))
}

// upload re-rasterizes the text into the widget texture when it changed.
func (l *labelState) upload(w *Widget) (*render.Texture, error) {
	if w.surface == nil {
		return nil, ErrDetached
	}
	if !l.dirty {
		if tex := w.surface.arena.Get(render.TextureID(w.id)); tex != nil {
			return tex, nil
		}
	}
	img, err := rasterizeText(l.text, l.size*labelOversample, l.color)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	tex, err := w.texture(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	xdraw.Copy(tex.Image(), image.Point{}, img, b, xdraw.Src, nil)
	tex.MarkDirty()
	l.dirty = false
	return tex, nil
}
