// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ui

import (
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/hmdview/pose"
	"github.com/gogpu/hmdview/render"
)

// Kind identifies a widget variant.
type Kind uint8

const (
	// KindButton is a clickable icon.
	KindButton Kind = iota

	// KindSlider is a horizontal value track in [0, 1].
	KindSlider

	// KindLabel is non-interactive text.
	KindLabel

	// KindScreen displays video frames.
	KindScreen
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindSlider:
		return "slider"
	case KindLabel:
		return "label"
	case KindScreen:
		return "screen"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// WidgetID is unique per process and keys the widget's texture.
type WidgetID uint32

var lastWidgetID atomic.Uint32

func nextWidgetID() WidgetID {
	return WidgetID(lastWidgetID.Add(1))
}

// layerStep separates coplanar widgets in depth so that later-added widgets
// draw on top under the LESS depth test.
const layerStep = 1e-4

// Widget is a rectangle on a Surface with kind-specific behavior.
// Exactly one of the payload pointers matching kind is non-nil.
type Widget struct {
	id      WidgetID
	kind    Kind
	name    string
	frame   Rect
	bounds  Rect
	depth   float32
	visible bool
	enabled bool

	surface *Surface

	button *buttonState
	slider *sliderState
	label  *labelState
	screen *screenState
}

func newWidget(kind Kind, name string, frame Rect) *Widget {
	return &Widget{
		id:      nextWidgetID(),
		kind:    kind,
		name:    name,
		frame:   frame,
		bounds:  frame,
		visible: true,
		enabled: true,
	}
}

// ID returns the widget's unique ID.
func (w *Widget) ID() WidgetID { return w.id }

// Kind returns the widget variant.
func (w *Widget) Kind() Kind { return w.kind }

// Name returns the widget's name.
func (w *Widget) Name() string { return w.name }

// String returns a debug description.
func (w *Widget) String() string {
	return fmt.Sprintf("%s %q #%d", w.kind, w.name, w.id)
}

// Frame returns the widget rectangle in design units.
func (w *Widget) Frame() Rect { return w.frame }

// Bounds returns the laid-out rectangle in surface units.
func (w *Widget) Bounds() Rect { return w.bounds }

// Depth returns the widget's z offset from its surface plane.
func (w *Widget) Depth() float32 { return w.depth }

// SetDepth sets the widget's z offset from its surface plane.
func (w *Widget) SetDepth(z float32) { w.depth = z }

// Visible reports whether the widget is drawn and hit-tested.
func (w *Widget) Visible() bool { return w.visible }

// SetVisible shows or hides the widget. Hiding a focused or locked widget
// drops it from the surface's focus state.
func (w *Widget) SetVisible(v bool) {
	w.visible = v
	if !v && w.surface != nil {
		w.surface.forget(w)
	}
}

// Enabled reports whether the widget accepts pointer input.
func (w *Widget) Enabled() bool { return w.enabled }

// SetEnabled enables or disables pointer input.
func (w *Widget) SetEnabled(e bool) {
	w.enabled = e
	if !e && w.surface != nil {
		w.surface.forget(w)
	}
}

// Surface returns the surface holding the widget, or nil.
func (w *Widget) Surface() *Surface { return w.surface }

// SetFrame changes the design rectangle and re-lays out the widget.
func (w *Widget) SetFrame(r Rect) {
	w.frame = R(r.X, r.Y, r.Width, r.Height)
	w.Layout()
}

// Layout recomputes bounds from the frame and the surface's current scale.
func (w *Widget) Layout() {
	sx, sy := float32(1), float32(1)
	if w.surface != nil {
		sx, sy = w.surface.scale()
	}
	switch w.kind {
	case KindLabel:
		w.bounds = w.label.layout(w.frame, sx, sy)
	case KindScreen:
		w.bounds = w.screen.layout(w.frame.Scale(sx, sy))
	default:
		w.bounds = w.frame.Scale(sx, sy)
	}
}

// focusable reports whether the widget can take pointer focus.
func (w *Widget) focusable() bool {
	return w.visible && w.enabled && w.kind != KindLabel
}

// HitTest reports whether ray meets the widget's rectangle on its depth
// plane. Hidden, disabled and label widgets never hit.
func (w *Widget) HitTest(ray pose.Ray) bool {
	if !w.focusable() {
		return false
	}
	x, y, ok := w.localHit(ray)
	return ok && w.bounds.Contains(x, y)
}

// localHit intersects ray with the widget's plane and returns the point in
// surface-local coordinates.
func (w *Widget) localHit(ray pose.Ray) (x, y float32, ok bool) {
	origin := mgl32.Vec3{}
	if w.surface != nil {
		origin = w.surface.origin
	}
	hit, ok := ray.IntersectPlaneZ(origin.Z() + w.depth)
	if !ok {
		return 0, 0, false
	}
	return hit.X() - origin.X(), hit.Y() - origin.Y(), true
}

// Draw renders the widget into ctx. The surface has already pushed its
// origin onto the model stack; layer orders coplanar widgets.
func (w *Widget) Draw(ctx *render.Context, layer int) {
	if !w.visible || w.bounds.Empty() {
		return
	}
	z := w.depth + float32(layer)*layerStep
	switch w.kind {
	case KindButton:
		w.button.draw(w, ctx, z)
	case KindSlider:
		w.slider.draw(w, ctx, z)
	case KindLabel:
		w.label.draw(w, ctx, z)
	case KindScreen:
		w.screen.draw(w, ctx, z)
	}
}

// clickDown is delivered to the focused widget when the click starts.
func (w *Widget) clickDown(ray pose.Ray) {
	switch w.kind {
	case KindButton:
		w.button.pressed = true
	case KindSlider:
		w.slider.lock(w)
		w.slider.drag(w, ray)
	}
}

// clickUp is delivered to the focused or locked widget when the click ends.
func (w *Widget) clickUp() {
	switch w.kind {
	case KindButton:
		if w.button.pressed {
			w.button.pressed = false
			w.controller().OnClick(w)
		}
	case KindSlider:
		w.slider.unlock(w)
	}
}

// cancelPress clears a button press without firing.
func (w *Widget) cancelPress() {
	if w.kind == KindButton {
		w.button.pressed = false
	}
}

// textureReleased forgets uploaded content once the widget's texture has
// been freed, so the next draw uploads again.
func (w *Widget) textureReleased() {
	switch w.kind {
	case KindButton:
		w.button.uploaded = false
	case KindLabel:
		w.label.dirty = true
	case KindScreen:
		w.screen.hasFrame = false
	}
}

func (w *Widget) controller() Controller {
	if w.surface == nil || w.surface.controller == nil {
		return NopController{}
	}
	return w.surface.controller
}

// texture returns the widget's texture slot, creating it at width x height.
func (w *Widget) texture(width, height int) (*render.Texture, error) {
	if w.surface == nil {
		return nil, ErrDetached
	}
	return w.surface.arena.Ensure(render.TextureID(w.id), w.String(), width, height)
}

// quad returns the widget's bounds as a render quad at depth z.
func (w *Widget) quad(z float32, tex *render.Texture, tint color.RGBA) render.Quad {
	return render.Quad{
		Min:     mgl32.Vec2{w.bounds.X, w.bounds.Y},
		Max:     mgl32.Vec2{w.bounds.MaxX(), w.bounds.MaxY()},
		Z:       z,
		Texture: tex,
		Tint:    tint,
	}
}
