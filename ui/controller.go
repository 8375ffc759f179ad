// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ui

// Controller receives widget events from a Surface. Methods run on the
// render thread, from inside Surface.PointerFocus, Click or ClickRelease.
type Controller interface {
	// OnClick is called when a button is released while still focused.
	OnClick(w *Widget)

	// OnValueChanged is called each time the user changes a slider value.
	OnValueChanged(w *Widget, value float32)

	// OnLockChanged is called when a slider acquires or releases the drag
	// lock.
	OnLockChanged(w *Widget, locked bool)
}

// NopController ignores all events.
type NopController struct{}

// OnClick does nothing.
func (NopController) OnClick(*Widget) {}

// OnValueChanged does nothing.
func (NopController) OnValueChanged(*Widget, float32) {}

// OnLockChanged does nothing.
func (NopController) OnLockChanged(*Widget, bool) {}

var _ Controller = NopController{}

// ControllerFuncs adapts plain functions to Controller. Nil fields are
// skipped.
type ControllerFuncs struct {
	Click        func(w *Widget)
	ValueChanged func(w *Widget, value float32)
	LockChanged  func(w *Widget, locked bool)
}

// OnClick calls f.Click.
func (f ControllerFuncs) OnClick(w *Widget) {
	if f.Click != nil {
		f.Click(w)
	}
}

// OnValueChanged calls f.ValueChanged.
func (f ControllerFuncs) OnValueChanged(w *Widget, value float32) {
	if f.ValueChanged != nil {
		f.ValueChanged(w, value)
	}
}

// OnLockChanged calls f.LockChanged.
func (f ControllerFuncs) OnLockChanged(w *Widget, locked bool) {
	if f.LockChanged != nil {
		f.LockChanged(w, locked)
	}
}
