// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

// boundContext returns a context bound to a fresh size x size eye target
// cleared to black.
func boundContext(t *testing.T, size int) (*Context, *EyeTarget) {
	t.Helper()
	target, err := CreateEyeTarget(CPUDevice(), EyeLeft, size, size)
	if err != nil {
		t.Fatal(err)
	}
	ctx := NewContext(target.dev, nil)
	if err := ctx.BindTarget(target); err != nil {
		t.Fatal(err)
	}
	ctx.SetViewport(0, 0, size, size)
	ctx.SetClearColor(black)
	ctx.Clear()
	return ctx, target
}

func perspective() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 100)
}

func TestDrawQuadOrientation(t *testing.T) {
	ctx, target := boundContext(t, 64)
	ctx.SetProjection(mgl32.Ortho(-1, 1, -1, 1, -1, 1))

	// Top-left quadrant in NDC.
	ctx.DrawQuad(Quad{Min: mgl32.Vec2{-1, 0}, Max: mgl32.Vec2{0, 1}, Tint: red})

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{10, 10, red},
		{31, 31, red},
		{40, 10, black},
		{10, 40, black},
		{40, 40, black},
	}
	for _, tt := range tests {
		if got := target.Pixel(tt.x, tt.y); got != tt.want {
			t.Errorf("Pixel(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawQuadTextureOrientation(t *testing.T) {
	ctx, target := boundContext(t, 64)
	ctx.SetProjection(mgl32.Ortho(-1, 1, -1, 1, -1, 1))

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, green)
	img.SetRGBA(0, 1, blue)
	img.SetRGBA(1, 1, blue)
	tex, err := NewTextureFromImage(CPUDevice(), "quadrants", img)
	if err != nil {
		t.Fatal(err)
	}

	ctx.DrawQuad(Quad{Min: mgl32.Vec2{-1, -1}, Max: mgl32.Vec2{1, 1}, Texture: tex})

	if got := target.Pixel(5, 5); got != red {
		t.Errorf("top-left = %v, want red", got)
	}
	if got := target.Pixel(60, 5); got != green {
		t.Errorf("top-right = %v, want green", got)
	}
	if got := target.Pixel(5, 60); got != blue {
		t.Errorf("bottom-left = %v, want blue", got)
	}
}

func TestDrawQuadDepthTest(t *testing.T) {
	for _, nearFirst := range []bool{true, false} {
		ctx, target := boundContext(t, 32)
		ctx.SetProjection(perspective())
		ctx.SetDepthTest(true)

		near := Quad{Min: mgl32.Vec2{-0.5, -0.5}, Max: mgl32.Vec2{0.5, 0.5}, Z: -1, Tint: red}
		far := Quad{Min: mgl32.Vec2{-5, -5}, Max: mgl32.Vec2{5, 5}, Z: -3, Tint: green}
		if nearFirst {
			ctx.DrawQuad(near)
			ctx.DrawQuad(far)
		} else {
			ctx.DrawQuad(far)
			ctx.DrawQuad(near)
		}

		if got := target.Pixel(16, 16); got != red {
			t.Errorf("nearFirst=%v: center = %v, want red", nearFirst, got)
		}
		if got := target.Pixel(1, 1); got != green {
			t.Errorf("nearFirst=%v: corner = %v, want green", nearFirst, got)
		}
		if d := target.Depth(16, 16); d >= 1 || d <= 0 {
			t.Errorf("nearFirst=%v: depth = %v, want in (0,1)", nearFirst, d)
		}
	}
}

func TestDrawQuadWithoutDepthTest(t *testing.T) {
	ctx, target := boundContext(t, 32)
	ctx.SetProjection(perspective())
	ctx.SetDepthTest(false)

	ctx.DrawQuad(Quad{Min: mgl32.Vec2{-0.5, -0.5}, Max: mgl32.Vec2{0.5, 0.5}, Z: -1, Tint: red})
	ctx.DrawQuad(Quad{Min: mgl32.Vec2{-5, -5}, Max: mgl32.Vec2{5, 5}, Z: -3, Tint: green})

	if got := target.Pixel(16, 16); got != green {
		t.Errorf("center = %v, want green (painter's order)", got)
	}
}

func TestDrawQuadBlend(t *testing.T) {
	ctx, target := boundContext(t, 16)
	ctx.SetProjection(mgl32.Ortho(-1, 1, -1, 1, -1, 1))
	ctx.SetBlend(true)

	ctx.DrawQuad(Quad{Min: mgl32.Vec2{-1, -1}, Max: mgl32.Vec2{1, 1}, Tint: color.RGBA{R: 255, G: 255, B: 255, A: 128}})

	got := target.Pixel(8, 8)
	if got.R < 126 || got.R > 130 {
		t.Errorf("blended R = %d, want ~128", got.R)
	}
	if got.A != 255 {
		t.Errorf("blended A = %d, want 255", got.A)
	}

	ctx.SetBlend(false)
	ctx.DrawQuad(Quad{Min: mgl32.Vec2{-1, -1}, Max: mgl32.Vec2{1, 1}, Tint: color.RGBA{R: 200, A: 100}})
	if got := target.Pixel(8, 8); got != (color.RGBA{R: 200, A: 100}) {
		t.Errorf("unblended = %v, want raw source", got)
	}
}

func TestDrawQuadBehindViewerCulled(t *testing.T) {
	ctx, target := boundContext(t, 16)
	ctx.SetProjection(perspective())

	ctx.DrawQuad(Quad{Min: mgl32.Vec2{-1, -1}, Max: mgl32.Vec2{1, 1}, Z: 2, Tint: red})

	if got := target.Pixel(8, 8); got != black {
		t.Errorf("center = %v, want untouched black", got)
	}
	if s := ctx.Stats(); s.Culled != 1 || s.DrawCalls != 1 {
		t.Errorf("Stats() = %+v, want 1 draw, 1 culled", s)
	}
}

func TestDrawQuadNearPlaneClip(t *testing.T) {
	ctx, target := boundContext(t, 32)
	ctx.SetProjection(perspective())
	// A floor quad running from behind the viewer into the distance.
	ctx.PushModel(mgl32.HomogRotate3DX(mgl32.DegToRad(-90)))
	ctx.DrawQuad(Quad{Min: mgl32.Vec2{-10, -10}, Max: mgl32.Vec2{10, 10}, Z: -1, Tint: red})
	ctx.PopModel()

	if got := target.Pixel(16, 30); got != red {
		t.Errorf("floor pixel = %v, want red", got)
	}
	if got := target.Pixel(16, 2); got != black {
		t.Errorf("sky pixel = %v, want black", got)
	}
}

func TestDrawQuadSharedEdgeBlendedOnce(t *testing.T) {
	ctx, target := boundContext(t, 16)
	ctx.SetProjection(mgl32.Ortho(-1, 1, -1, 1, -1, 1))

	ctx.DrawQuad(Quad{Min: mgl32.Vec2{-1, -1}, Max: mgl32.Vec2{1, 1}, Tint: color.RGBA{R: 255, A: 128}})

	want := target.Pixel(0, 0)
	for i := 0; i < 16; i++ {
		if got := target.Pixel(i, 15-i); got != want {
			t.Fatalf("diagonal Pixel(%d,%d) = %v, want %v", i, 15-i, got, want)
		}
	}
}

func TestModelStack(t *testing.T) {
	ctx := NewContext(CPUDevice(), nil)
	ctx.PushModel(mgl32.Translate3D(1, 0, 0))
	ctx.PushModel(mgl32.Translate3D(0, 2, 0))

	p := ctx.Model().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if p.X() != 1 || p.Y() != 2 {
		t.Errorf("Model() origin = %v, want (1,2)", p)
	}
	ctx.PopModel()
	ctx.PopModel()
	ctx.PopModel() // identity stays
	if !ctx.Model().ApproxEqual(mgl32.Ident4()) {
		t.Errorf("Model() = %v, want identity", ctx.Model())
	}
}
