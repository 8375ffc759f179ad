// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ui implements spatial widgets hit-tested by a head-pose pointer
// ray instead of a 2D cursor.
//
// A Surface is a rectangle in the scene, parallel to the XY plane and facing
// the viewer, holding an ordered list of widgets. Each frame the host calls
// PointerFocus with the current pointer ray: the topmost widget the ray
// hits becomes focused, unless a widget holds the drag lock, in which case
// the locked widget keeps focus. Click and ClickRelease go to that widget
// only.
//
// Widgets are a closed tagged variant (Button, Slider, Label, Screen)
// rather than an interface hierarchy. Behavior is reported to a Controller
// bound to the surface.
//
// Coordinates: widget frames are given in the surface's design units, with
// (0, 0) at the surface's bottom-left corner and Y up. SetSize scales every
// widget proportionally from the design size.
//
// Surfaces and widgets are NOT safe for concurrent use; they belong to the
// render thread.
package ui
