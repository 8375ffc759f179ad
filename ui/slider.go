// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ui

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/hmdview/pose"
	"github.com/gogpu/hmdview/render"
)

var (
	sliderTrack  = color.RGBA{R: 90, G: 90, B: 90, A: 200}
	sliderFill   = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	sliderHandle = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	sliderActive = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

type sliderState struct {
	value  float32
	locked bool
}

// NewSlider creates a horizontal slider at value 0.
func NewSlider(name string, frame Rect) *Widget {
	w := newWidget(KindSlider, name, R(frame.X, frame.Y, frame.Width, frame.Height))
	w.slider = &sliderState{}
	return w
}

// Value returns the slider value in [0, 1], or 0 for other kinds.
func (w *Widget) Value() float32 {
	if w.slider == nil {
		return 0
	}
	return w.slider.value
}

// SetValue moves the slider without notifying the controller. The value
// is clamped to [0, 1].
func (w *Widget) SetValue(v float32) {
	if w.slider != nil {
		w.slider.value = clamp01(v)
	}
}

// Locked reports whether the slider holds the drag lock.
func (w *Widget) Locked() bool {
	return w.slider != nil && w.slider.locked
}

func (s *sliderState) lock(w *Widget) {
	if s.locked {
		return
	}
	s.locked = true
	if w.surface != nil {
		w.surface.locked = w
	}
	w.controller().OnLockChanged(w, true)
}

func (s *sliderState) unlock(w *Widget) {
	if !s.locked {
		return
	}
	s.locked = false
	if w.surface != nil && w.surface.locked == w {
		w.surface.locked = nil
	}
	w.controller().OnLockChanged(w, false)
}

// drag sets the value from where ray meets the slider's plane, measured
// along the track. Rays that miss the plane leave the value unchanged.
func (s *sliderState) drag(w *Widget, ray pose.Ray) {
	if w.bounds.Width <= 0 {
		return
	}
	x, _, ok := w.localHit(ray)
	if !ok {
		return
	}
	v := clamp01((x - w.bounds.X) / w.bounds.Width)
	if v == s.value {
		return
	}
	s.value = v
	w.controller().OnValueChanged(w, v)
}

func (s *sliderState) draw(w *Widget, ctx *render.Context, z float32) {
	b := w.bounds
	active := s.locked || (w.surface != nil && w.surface.focused == w)

	ctx.DrawQuad(w.quad(z, nil, sliderTrack))

	fill := w.quad(z+layerStep/4, nil, sliderFill)
	fill.Max = mgl32.Vec2{b.X + b.Width*s.value, b.MaxY()}
	if s.value > 0 {
		ctx.DrawQuad(fill)
	}

	half := b.Height
	cx := b.X + b.Width*s.value
	cy := b.Y + b.Height/2
	handle := render.Quad{
		Min:  mgl32.Vec2{cx - half, cy - half},
		Max:  mgl32.Vec2{cx + half, cy + half},
		Z:    z + layerStep/2,
		Tint: sliderHandle,
	}
	if active {
		handle.Tint = sliderActive
	}
	ctx.DrawQuad(handle)
}

func clamp01(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return math32.Max(0, math32.Min(1, v))
}
