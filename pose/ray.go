// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pose

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// parallelEpsilon bounds |Direction.Z| below which a ray is treated as
// parallel to a z plane.
const parallelEpsilon = 1e-6

// Ray is a half-line in world space.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, direction mgl32.Vec3) Ray {
	if direction.Len() > 0 {
		direction = direction.Normalize()
	}
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectPlaneZ returns where the ray meets the plane z = const.
// It reports false when the ray is parallel to the plane or the plane lies
// behind the origin.
func (r Ray) IntersectPlaneZ(z float32) (mgl32.Vec3, bool) {
	dz := r.Direction.Z()
	if math32.Abs(dz) < parallelEpsilon {
		return mgl32.Vec3{}, false
	}
	t := (z - r.Origin.Z()) / dz
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}
