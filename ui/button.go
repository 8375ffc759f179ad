// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ui

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/hmdview/render"
)

var (
	buttonTint    = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	buttonFocused = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	buttonPressed = color.RGBA{R: 160, G: 200, B: 255, A: 255}
	disabledAlpha = uint8(96)
)

type buttonState struct {
	icon     image.Image
	uploaded bool
	pressed  bool
}

// NewButton creates a button showing icon. A nil icon draws a flat
// rectangle.
func NewButton(name string, frame Rect, icon image.Image) *Widget {
	w := newWidget(KindButton, name, R(frame.X, frame.Y, frame.Width, frame.Height))
	w.button = &buttonState{icon: icon}
	return w
}

// Icon returns the button icon, or nil for other kinds.
func (w *Widget) Icon() image.Image {
	if w.button == nil {
		return nil
	}
	return w.button.icon
}

// SetIcon replaces the button icon.
func (w *Widget) SetIcon(img image.Image) {
	if w.button == nil {
		return
	}
	w.button.icon = img
	w.button.uploaded = false
}

// Pressed reports whether a click started on the button and has not ended.
func (w *Widget) Pressed() bool {
	return w.button != nil && w.button.pressed
}

func (b *buttonState) tint(w *Widget) color.RGBA {
	c := buttonTint
	switch {
	case b.pressed:
		c = buttonPressed
	case w.surface != nil && w.surface.focused == w:
		c = buttonFocused
	}
	if !w.enabled {
		c.A = disabledAlpha
	}
	return c
}

func (b *buttonState) draw(w *Widget, ctx *render.Context, z float32) {
	var tex *render.Texture
	if b.icon != nil {
		var err error
		tex, err = b.upload(w)
		if err != nil {
			slogger().Debug("ui: button icon unavailable", "widget", w.String(), "err", err)
		}
	}
	ctx.DrawQuad(w.quad(z, tex, b.tint(w)))
}

// upload copies the icon into the widget's texture once.
func (b *buttonState) upload(w *Widget) (*render.Texture, error) {
	bounds := b.icon.Bounds()
	tex, err := w.texture(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	if !b.uploaded {
		xdraw.Copy(tex.Image(), image.Point{}, b.icon, bounds, xdraw.Src, nil)
		tex.MarkDirty()
		b.uploaded = true
	}
	return tex, nil
}
