// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ui

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/hmdview/pose"
	"github.com/gogpu/hmdview/render"
)

// SurfaceOption configures a Surface.
type SurfaceOption func(*surfaceOptions)

type surfaceOptions struct {
	controller   Controller
	arena        *render.TextureArena
	pointerColor color.RGBA
	pointerSize  float32
}

// WithController binds the controller receiving widget events.
func WithController(c Controller) SurfaceOption {
	return func(o *surfaceOptions) {
		o.controller = c
	}
}

// WithTextureArena allocates widget textures from arena, typically one
// shared by all surfaces on a device.
func WithTextureArena(arena *render.TextureArena) SurfaceOption {
	return func(o *surfaceOptions) {
		o.arena = arena
	}
}

// WithPointer sets the pointer marker color and size in surface units.
func WithPointer(c color.RGBA, size float32) SurfaceOption {
	return func(o *surfaceOptions) {
		o.pointerColor = c
		if size > 0 {
			o.pointerSize = size
		}
	}
}

// Surface is an ordered set of widgets sharing an origin and scale.
// Widgets added later are drawn later and hit-tested first.
type Surface struct {
	name   string
	origin mgl32.Vec3
	size   mgl32.Vec2
	design mgl32.Vec2

	widgets []*Widget
	focused *Widget
	locked  *Widget
	pressed *Widget
	ray     pose.Ray

	controller   Controller
	arena        *render.TextureArena
	ownsArena    bool
	pointerColor color.RGBA
	pointerSize  float32
}

// NewSurface creates a surface whose bottom-left corner is at origin,
// width x height units large. The initial size is the design size widget
// frames are given in.
func NewSurface(name string, origin mgl32.Vec3, width, height float32, opts ...SurfaceOption) *Surface {
	o := surfaceOptions{
		controller:   NopController{},
		pointerColor: color.RGBA{R: 255, G: 64, B: 64, A: 255},
		pointerSize:  0.004,
	}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Surface{
		name:         name,
		origin:       origin,
		size:         mgl32.Vec2{width, height},
		design:       mgl32.Vec2{width, height},
		controller:   o.controller,
		arena:        o.arena,
		pointerColor: o.pointerColor,
		pointerSize:  o.pointerSize,
	}
	if s.controller == nil {
		s.controller = NopController{}
	}
	if s.arena == nil {
		s.arena = render.NewTextureArena(render.CPUDevice())
		s.ownsArena = true
	}
	return s
}

// Name returns the surface name.
func (s *Surface) Name() string { return s.name }

// SetController replaces the controller. Nil installs NopController.
func (s *Surface) SetController(c Controller) {
	if c == nil {
		c = NopController{}
	}
	s.controller = c
}

// Add appends w on top of the existing widgets and lays it out.
func (s *Surface) Add(w *Widget) error {
	if w == nil {
		return ErrNilWidget
	}
	if w.surface != nil {
		return ErrAttached
	}
	w.surface = s
	s.widgets = append(s.widgets, w)
	w.Layout()
	return nil
}

// Remove detaches w and releases its texture. It is a no-op if w is not
// on s.
func (s *Surface) Remove(w *Widget) {
	for i, x := range s.widgets {
		if x != w {
			continue
		}
		s.forget(w)
		if w.slider != nil {
			w.slider.locked = false
		}
		s.arena.Release(render.TextureID(w.id))
		w.textureReleased()
		s.widgets = append(s.widgets[:i], s.widgets[i+1:]...)
		w.surface = nil
		return
	}
}

// forget drops w from the focus, lock and press state.
func (s *Surface) forget(w *Widget) {
	if s.locked == w {
		w.slider.unlock(w)
		s.locked = nil
	}
	if s.focused == w {
		s.focused = nil
	}
	if s.pressed == w {
		w.cancelPress()
		s.pressed = nil
	}
}

// Widgets returns the widgets in z-order, bottom first.
func (s *Surface) Widgets() []*Widget {
	return append([]*Widget(nil), s.widgets...)
}

// Focused returns the focused widget, or nil.
func (s *Surface) Focused() *Widget { return s.focused }

// Locked returns the widget holding the drag lock, or nil.
func (s *Surface) Locked() *Widget { return s.locked }

// PointerFocus recomputes focus from ray and returns the focused widget.
// A locked widget keeps focus and is dragged by the ray. Otherwise the
// topmost widget hit by ray is focused, or none.
func (s *Surface) PointerFocus(ray pose.Ray) *Widget {
	s.ray = ray
	if s.locked != nil {
		s.focused = s.locked
		s.locked.slider.drag(s.locked, ray)
		return s.focused
	}
	s.focused = nil
	for i := len(s.widgets) - 1; i >= 0; i-- {
		if w := s.widgets[i]; w.HitTest(ray) {
			s.focused = w
			break
		}
	}
	return s.focused
}

// Click starts a click on the focused widget, cancelling any press that
// was never released. Sliders take their value from the ray of the last
// PointerFocus.
func (s *Surface) Click() {
	target := s.target()
	if target == nil {
		return
	}
	if s.pressed != nil && s.pressed != target {
		s.pressed.cancelPress()
	}
	s.pressed = target
	target.clickDown(s.ray)
}

// ClickRelease ends a click on the focused or locked widget. A button
// pressed earlier that lost focus is released without firing.
func (s *Surface) ClickRelease() {
	target := s.target()
	if target != nil {
		target.clickUp()
	}
	if s.pressed != nil && s.pressed != target {
		s.pressed.cancelPress()
	}
	s.pressed = nil
}

func (s *Surface) target() *Widget {
	if s.locked != nil {
		return s.locked
	}
	return s.focused
}

// Draw renders visible widgets bottom to top, offset by the surface origin.
func (s *Surface) Draw(ctx *render.Context) {
	ctx.PushModel(mgl32.Translate3D(s.origin.X(), s.origin.Y(), s.origin.Z()))
	defer ctx.PopModel()
	for i, w := range s.widgets {
		w.Draw(ctx, i)
	}
}

// UpdateTextures uploads new video frames for screen widgets.
func (s *Surface) UpdateTextures() error {
	for _, w := range s.widgets {
		if w.kind != KindScreen {
			continue
		}
		if err := w.UpdateTexture(); err != nil {
			return err
		}
	}
	return nil
}

// Size returns the current size.
func (s *Surface) Size() (width, height float32) { return s.size.X(), s.size.Y() }

// SetSize resizes the surface and re-lays out every widget.
func (s *Surface) SetSize(width, height float32) {
	s.size = mgl32.Vec2{max(width, 0), max(height, 0)}
	s.layout()
}

// Position returns the bottom-left corner.
func (s *Surface) Position() (x, y, z float32) {
	return s.origin.X(), s.origin.Y(), s.origin.Z()
}

// SetPosition moves the surface and re-lays out every widget.
func (s *Surface) SetPosition(x, y, z float32) {
	s.origin = mgl32.Vec3{x, y, z}
	s.layout()
}

func (s *Surface) layout() {
	for _, w := range s.widgets {
		w.Layout()
	}
}

// scale returns current size over design size per axis.
func (s *Surface) scale() (sx, sy float32) {
	sx, sy = 1, 1
	if s.design.X() > 0 {
		sx = s.size.X() / s.design.X()
	}
	if s.design.Y() > 0 {
		sy = s.size.Y() / s.design.Y()
	}
	return sx, sy
}

// Close removes all widgets and releases their textures.
func (s *Surface) Close() {
	for len(s.widgets) > 0 {
		s.Remove(s.widgets[len(s.widgets)-1])
	}
	if s.ownsArena {
		s.arena.Close()
	}
}
