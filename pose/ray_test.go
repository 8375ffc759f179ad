// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pose

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewRayNormalizes(t *testing.T) {
	r := NewRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -5})
	if !vecNear(r.Direction, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Direction = %v, want (0,0,-1)", r.Direction)
	}
	zero := NewRay(mgl32.Vec3{}, mgl32.Vec3{})
	if zero.Direction != (mgl32.Vec3{}) {
		t.Errorf("zero Direction = %v", zero.Direction)
	}
}

func TestIntersectPlaneZ(t *testing.T) {
	tests := []struct {
		name   string
		ray    Ray
		z      float32
		want   mgl32.Vec3
		wantOK bool
	}{
		{
			name:   "straight ahead",
			ray:    Ray{Direction: mgl32.Vec3{0, 0, -1}},
			z:      -2,
			want:   mgl32.Vec3{0, 0, -2},
			wantOK: true,
		},
		{
			name:   "oblique",
			ray:    NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, -1}),
			z:      -1,
			want:   mgl32.Vec3{1, 0, -1},
			wantOK: true,
		},
		{
			name:   "offset origin",
			ray:    Ray{Origin: mgl32.Vec3{0.5, 0.25, 1}, Direction: mgl32.Vec3{0, 0, -1}},
			z:      -0.4,
			want:   mgl32.Vec3{0.5, 0.25, -0.4},
			wantOK: true,
		},
		{
			name: "parallel",
			ray:  Ray{Direction: mgl32.Vec3{1, 0, 0}},
			z:    -1,
		},
		{
			name: "behind",
			ray:  Ray{Direction: mgl32.Vec3{0, 0, -1}},
			z:    1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectPlaneZ(tt.z)
			if ok != tt.wantOK {
				t.Fatalf("IntersectPlaneZ() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !vecNear(got, tt.want) {
				t.Errorf("IntersectPlaneZ() = %v, want %v", got, tt.want)
			}
		})
	}
}

// vecNear compares with an absolute tolerance; mgl32's relative comparison
// rejects tiny rounding errors against zero components.
func vecNear(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-5
}
