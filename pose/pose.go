// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pose

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/hmdview/render"
)

// Sample is one frame's head pose.
type Sample struct {
	LeftProjection  mgl32.Mat4
	RightProjection mgl32.Mat4
	LeftView        mgl32.Mat4
	RightView       mgl32.Mat4

	// Ray is the pointer ray for hit-testing, in world space.
	Ray Ray

	Orientation mgl32.Quat
	Position    mgl32.Vec3
}

// Projection returns the projection matrix for eye.
func (s Sample) Projection(eye render.Eye) mgl32.Mat4 {
	if eye == render.EyeRight {
		return s.RightProjection
	}
	return s.LeftProjection
}

// View returns the view matrix for eye.
func (s Sample) View(eye render.Eye) mgl32.Mat4 {
	if eye == render.EyeRight {
		return s.RightView
	}
	return s.LeftView
}

var _ render.EyeMatrices = Sample{}

// Sampler is pulled once per frame by the render loop.
type Sampler interface {
	// Sample returns the current pose.
	Sample() Sample

	// Reset zeroes orientation and position.
	Reset()
}

// Identity returns a sample with identity matrices and a ray from the
// origin along -Z.
func Identity() Sample {
	id := mgl32.Ident4()
	return Sample{
		LeftProjection:  id,
		RightProjection: id,
		LeftView:        id,
		RightView:       id,
		Ray:             Ray{Direction: mgl32.Vec3{0, 0, -1}},
		Orientation:     mgl32.QuatIdent(),
	}
}

// Static is a Sampler that always returns the same sample.
type Static struct {
	Pose Sample
}

// Sample returns s.Pose.
func (s *Static) Sample() Sample { return s.Pose }

// Reset restores the identity sample.
func (s *Static) Reset() { s.Pose = Identity() }

var _ Sampler = (*Static)(nil)
