// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hmdview

import "errors"

var (
	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = errors.New("hmdview: invalid config")

	// ErrViewerClosed is returned by Frame after Close.
	ErrViewerClosed = errors.New("hmdview: viewer closed")
)
