// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pose

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/hmdview/render"
)

func TestHeadTrackerDefaultSample(t *testing.T) {
	h := NewHeadTracker()
	s := h.Sample()

	if !vecNear(s.Ray.Direction, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Ray.Direction = %v, want (0,0,-1)", s.Ray.Direction)
	}
	if s.Ray.Origin != (mgl32.Vec3{}) {
		t.Errorf("Ray.Origin = %v, want origin", s.Ray.Origin)
	}

	// Each eye's view moves the world opposite to the eye offset.
	half := float32(DefaultIPD / 2)
	l := s.LeftView.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	r := s.RightView.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !mgl32.FloatEqualThreshold(l.X(), half, 1e-6) {
		t.Errorf("left view origin x = %v, want %v", l.X(), half)
	}
	if !mgl32.FloatEqualThreshold(r.X(), -half, 1e-6) {
		t.Errorf("right view origin x = %v, want %v", r.X(), -half)
	}
	if !s.LeftProjection.ApproxEqual(s.RightProjection) {
		t.Error("symmetric tracker should share projections")
	}
}

func TestHeadTrackerYaw(t *testing.T) {
	h := NewHeadTracker()
	// Turning left by 90 degrees looks down -X.
	h.SetOrientation(mgl32.DegToRad(90), 0, 0)
	s := h.Sample()
	if !vecNear(s.Ray.Direction, mgl32.Vec3{-1, 0, 0}) {
		t.Errorf("Ray.Direction = %v, want (-1,0,0)", s.Ray.Direction)
	}
}

func TestHeadTrackerPitchClamped(t *testing.T) {
	h := NewHeadTracker()
	h.Rotate(0, 10)
	s := h.Sample()
	if s.Ray.Direction.Y() >= 1 || s.Ray.Direction.Y() < 0.99 {
		t.Errorf("Ray.Direction.Y = %v, want just below 1", s.Ray.Direction.Y())
	}
}

func TestHeadTrackerReset(t *testing.T) {
	h := NewHeadTracker()
	h.SetOrientation(1, 0.5, 0.2)
	h.SetPosition(mgl32.Vec3{1, 2, 3})
	h.Reset()

	s := h.Sample()
	if s.Position != (mgl32.Vec3{}) {
		t.Errorf("Position = %v, want origin", s.Position)
	}
	if !vecNear(s.Ray.Direction, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Ray.Direction = %v, want (0,0,-1)", s.Ray.Direction)
	}
}

func TestHeadTrackerPosition(t *testing.T) {
	h := NewHeadTracker(WithIPD(0))
	h.SetPosition(mgl32.Vec3{0, 1, 0})
	s := h.Sample()

	// A world point at head height projects to the view-space origin.
	p := s.LeftView.Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	if !vecNear(p.Vec3(), mgl32.Vec3{}) {
		t.Errorf("view-space head = %v, want origin", p)
	}
	if s.Ray.Origin != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Ray.Origin = %v", s.Ray.Origin)
	}
}

func TestHeadOptions(t *testing.T) {
	h := NewHeadTracker(WithFOV(60), WithAspect(2), WithClipPlanes(0.5, 10), WithIPD(-1), WithFOV(500))
	want := mgl32.Perspective(mgl32.DegToRad(60), 2, 0.5, 10)
	if got := h.Sample().LeftProjection; !got.ApproxEqual(want) {
		t.Errorf("LeftProjection = %v, want %v", got, want)
	}
	if h.opts.ipd != DefaultIPD {
		t.Errorf("ipd = %v, negative value should be ignored", h.opts.ipd)
	}
}

func TestSampleEyeMatrices(t *testing.T) {
	s := Identity()
	s.RightView = mgl32.Translate3D(1, 0, 0)
	if !s.View(render.EyeRight).ApproxEqual(s.RightView) {
		t.Error("View(right) did not return RightView")
	}
	if !s.View(render.EyeLeft).ApproxEqual(mgl32.Ident4()) {
		t.Error("View(left) did not return LeftView")
	}
}

func TestStaticSampler(t *testing.T) {
	s := &Static{Pose: Sample{Position: mgl32.Vec3{1, 0, 0}}}
	if s.Sample().Position.X() != 1 {
		t.Error("Static.Sample() did not return its pose")
	}
	s.Reset()
	if s.Sample().Position != (mgl32.Vec3{}) {
		t.Error("Static.Reset() did not restore identity")
	}
}

func TestHeadTrackerConcurrent(t *testing.T) {
	h := NewHeadTracker()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			h.Rotate(0.01, 0.001)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = h.Sample()
		}
	}()
	wg.Wait()
}
