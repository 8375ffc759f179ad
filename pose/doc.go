// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pose supplies per-frame head pose samples: the projection and
// view matrices for each eye and the pointer ray derived from the head's
// orientation and position.
//
// Device acquisition is outside this package. HeadTracker is a synthetic
// sampler driven by yaw/pitch/roll input (mouse-look in the window host,
// scripted motion in tests); any tracker that can produce a Sample can be
// plugged in through the Sampler interface.
package pose
