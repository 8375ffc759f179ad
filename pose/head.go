// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pose

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Default head tracker parameters.
const (
	DefaultIPD    = 0.063
	DefaultFOV    = 90
	DefaultAspect = 2160.0 / 2400.0
	DefaultNear   = 0.01
	DefaultFar    = 100

	maxPitch = math32.Pi/2 - 0.01
)

// HeadOption configures a HeadTracker.
type HeadOption func(*headOptions)

type headOptions struct {
	ipd       float32
	fov       float32
	aspect    float32
	near, far float32
}

func defaultHeadOptions() headOptions {
	return headOptions{
		ipd:    DefaultIPD,
		fov:    DefaultFOV,
		aspect: DefaultAspect,
		near:   DefaultNear,
		far:    DefaultFar,
	}
}

// WithIPD sets the interpupillary distance in scene units.
func WithIPD(ipd float32) HeadOption {
	return func(o *headOptions) {
		if ipd >= 0 {
			o.ipd = ipd
		}
	}
}

// WithFOV sets the vertical field of view in degrees.
func WithFOV(deg float32) HeadOption {
	return func(o *headOptions) {
		if deg > 0 && deg < 180 {
			o.fov = deg
		}
	}
}

// WithAspect sets the per-eye aspect ratio (width / height).
func WithAspect(aspect float32) HeadOption {
	return func(o *headOptions) {
		if aspect > 0 {
			o.aspect = aspect
		}
	}
}

// WithClipPlanes sets the near and far clip distances.
func WithClipPlanes(near, far float32) HeadOption {
	return func(o *headOptions) {
		if near > 0 && far > near {
			o.near, o.far = near, far
		}
	}
}

// HeadTracker is a synthetic Sampler whose orientation and position are set
// by the host. It is safe for concurrent use: input handlers may move the
// head while the render thread samples it.
type HeadTracker struct {
	mu               sync.Mutex
	yaw, pitch, roll float32
	position         mgl32.Vec3
	opts             headOptions
}

var _ Sampler = (*HeadTracker)(nil)

// NewHeadTracker creates a tracker looking down -Z from the origin.
func NewHeadTracker(opts ...HeadOption) *HeadTracker {
	o := defaultHeadOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &HeadTracker{opts: o}
}

// SetOrientation sets yaw (around Y), pitch (around X) and roll (around Z)
// in radians. Pitch is clamped short of straight up or down.
func (h *HeadTracker) SetOrientation(yaw, pitch, roll float32) {
	h.mu.Lock()
	h.yaw = yaw
	h.pitch = clampPitch(pitch)
	h.roll = roll
	h.mu.Unlock()
}

// Rotate adds dYaw and dPitch radians to the current orientation.
func (h *HeadTracker) Rotate(dYaw, dPitch float32) {
	h.mu.Lock()
	h.yaw += dYaw
	h.pitch = clampPitch(h.pitch + dPitch)
	h.mu.Unlock()
}

// SetPosition sets the head position.
func (h *HeadTracker) SetPosition(p mgl32.Vec3) {
	h.mu.Lock()
	h.position = p
	h.mu.Unlock()
}

// Reset zeroes orientation and position.
func (h *HeadTracker) Reset() {
	h.mu.Lock()
	h.yaw, h.pitch, h.roll = 0, 0, 0
	h.position = mgl32.Vec3{}
	h.mu.Unlock()
}

// Sample computes the per-eye matrices and pointer ray for the current
// head state.
func (h *HeadTracker) Sample() Sample {
	h.mu.Lock()
	yaw, pitch, roll := h.yaw, h.pitch, h.roll
	pos := h.position
	o := h.opts
	h.mu.Unlock()

	q := mgl32.AnglesToQuat(yaw, pitch, roll, mgl32.YXZ)
	head := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(q.Mat4())

	half := o.ipd / 2
	leftEye := head.Mul4(mgl32.Translate3D(-half, 0, 0))
	rightEye := head.Mul4(mgl32.Translate3D(half, 0, 0))

	proj := mgl32.Perspective(mgl32.DegToRad(o.fov), o.aspect, o.near, o.far)
	return Sample{
		LeftProjection:  proj,
		RightProjection: proj,
		LeftView:        leftEye.Inv(),
		RightView:       rightEye.Inv(),
		Ray:             NewRay(pos, q.Rotate(mgl32.Vec3{0, 0, -1})),
		Orientation:     q,
		Position:        pos,
	}
}

func clampPitch(p float32) float32 {
	return math32.Max(-maxPitch, math32.Min(maxPitch, p))
}
