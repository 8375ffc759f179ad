// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package hmdview is a stereoscopic, head-tracked video viewer.
//
// # Overview
//
// A decoded video frame is projected onto a virtual screen inside a 3D
// scene, rendered once per eye from head-pose matrices, and composited into
// a side-by-side output image. A control panel of buttons, a position slider
// and time labels lives in the same scene and is driven by a pointer ray
// from the head pose instead of a mouse cursor.
//
// # Quick Start
//
//	player, _ := video.NewPatternPlayer()
//	v, err := hmdview.NewViewer(player)
//	if err != nil {
//	    log.Fatal(err) // eye targets could not be created
//	}
//	defer v.Close()
//
//	for running {
//	    if err := v.Frame(); err != nil {
//	        hmdview.Logger().Warn("frame", "err", err)
//	    }
//	    show(v.Output().Front())
//	}
//
// # Architecture
//
// The module is organized into:
//   - render: eye targets, the software rasterizer, programs, compositing
//   - pose: head tracker, per-eye matrices and the pointer ray
//   - ui: interaction surfaces and the button, slider, label and screen widgets
//   - video: frame surfaces and the player interface
//   - hmdview: the viewer loop and the playback controller wiring them together
//
// # Threading
//
// Viewer methods must be called from one goroutine (the render thread).
// Players notify from their own goroutine; notifications are queued and
// applied at the start of the next Frame.
package hmdview

// Version information
const (
	// Version is the current version of the module
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
