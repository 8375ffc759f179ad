// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ui

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/hmdview/pose"
	"github.com/gogpu/hmdview/render"
)

// pointerLift keeps the marker in front of every widget layer.
const pointerLift = 1e-3

// DrawPointer draws a square marker where ray meets the surface plane.
// Nothing is drawn if the plane is behind or parallel to the ray.
func (s *Surface) DrawPointer(ctx *render.Context, ray pose.Ray) {
	hit, ok := ray.IntersectPlaneZ(s.origin.Z())
	if !ok {
		return
	}
	half := s.pointerSize / 2
	ctx.DrawQuad(render.Quad{
		Min:  mgl32.Vec2{hit.X() - half, hit.Y() - half},
		Max:  mgl32.Vec2{hit.X() + half, hit.Y() + half},
		Z:    s.origin.Z() + pointerLift,
		Tint: s.pointerColor,
	})
}
