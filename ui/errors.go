// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ui

import "errors"

var (
	// ErrNilWidget is returned when adding a nil widget.
	ErrNilWidget = errors.New("ui: nil widget")

	// ErrAttached is returned when adding a widget that already belongs to
	// a surface.
	ErrAttached = errors.New("ui: widget already belongs to a surface")

	// ErrDetached is returned when a widget needs its surface but has none.
	ErrDetached = errors.New("ui: widget is not on a surface")
)
