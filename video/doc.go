// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package video defines the boundary between the viewer and video playback.
//
// A Player decodes on its own goroutine into a FrameSurface and reports
// playback state through Callbacks. The render thread copies the current
// frame into a texture with FrameSurface.UploadTexture, which holds the
// surface lock for the entire copy so a frame is never observed half
// written.
//
// PatternPlayer is a synthetic player that renders test patterns at a fixed
// frame rate. It stands in for a real decoder in the headless command and
// in tests.
package video
