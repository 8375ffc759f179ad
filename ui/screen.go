// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ui

import (
	"image/color"

	"github.com/gogpu/hmdview/render"
	"github.com/gogpu/hmdview/video"
)

var screenBlank = color.RGBA{R: 0, G: 0, B: 0, A: 255}

type screenState struct {
	source   *video.FrameSurface
	aspect   float32
	uploaded uint64
	hasFrame bool
}

// NewScreen creates a widget displaying frames from src.
func NewScreen(name string, frame Rect, src *video.FrameSurface) *Widget {
	w := newWidget(KindScreen, name, R(frame.X, frame.Y, frame.Width, frame.Height))
	w.screen = &screenState{source: src}
	return w
}

// FrameSurface returns the bound video frame, or nil.
func (w *Widget) FrameSurface() *video.FrameSurface {
	if w.screen == nil {
		return nil
	}
	return w.screen.source
}

// SetFrameSurface binds a new video frame source.
func (w *Widget) SetFrameSurface(src *video.FrameSurface) {
	if w.screen == nil {
		return
	}
	w.screen.source = src
	w.screen.hasFrame = false
}

// SetAspectAdjustedSize keeps the screen's width and sets its height to
// width / aspect. A non-positive aspect restores the frame's own height.
func (w *Widget) SetAspectAdjustedSize(aspect float32) {
	if w.screen == nil {
		return
	}
	w.screen.aspect = max(aspect, 0)
	w.Layout()
}

// UpdateTexture uploads the bound frame if a new one was written since the
// last upload.
func (w *Widget) UpdateTexture() error {
	s := w.screen
	if s == nil || s.source == nil {
		return nil
	}
	seq := s.source.Sequence()
	if s.hasFrame && seq == s.uploaded {
		return nil
	}
	fw, fh := s.source.Size()
	tex, err := w.texture(fw, fh)
	if err != nil {
		return err
	}
	if err := s.source.UploadTexture(tex); err != nil {
		return err
	}
	s.uploaded = seq
	s.hasFrame = true
	return nil
}

func (s *screenState) layout(r Rect) Rect {
	if s.aspect > 0 {
		r.Height = r.Width / s.aspect
	}
	return r
}

func (s *screenState) draw(w *Widget, ctx *render.Context, z float32) {
	var tex *render.Texture
	if s.hasFrame && w.surface != nil {
		tex = w.surface.arena.Get(render.TextureID(w.id))
	}
	if tex == nil {
		ctx.DrawQuad(w.quad(z, nil, screenBlank))
		return
	}
	ctx.DrawQuad(w.quad(z, tex, color.RGBA{}))
}
