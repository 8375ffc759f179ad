// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type fixedMatrices struct {
	proj, view [2]mgl32.Mat4
}

func (m fixedMatrices) Projection(e Eye) mgl32.Mat4 { return m.proj[e] }
func (m fixedMatrices) View(e Eye) mgl32.Mat4       { return m.view[e] }

func identityMatrices() fixedMatrices {
	id := mgl32.Ident4()
	return fixedMatrices{proj: [2]mgl32.Mat4{id, id}, view: [2]mgl32.Mat4{id, id}}
}

type pipeline struct {
	out         *OutputSurface
	left, right *EyeTarget
	comp        *Compositor
}

func newPipeline(t *testing.T, dev *Device, outW, outH, eyeW, eyeH int, opts ...CompositorOption) *pipeline {
	t.Helper()
	out, err := NewOutputSurface(outW, outH)
	if err != nil {
		t.Fatal(err)
	}
	left, err := CreateEyeTarget(dev, EyeLeft, eyeW, eyeH)
	if err != nil {
		t.Fatal(err)
	}
	right, err := CreateEyeTarget(dev, EyeRight, eyeW, eyeH)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		left.Destroy()
		right.Destroy()
	})
	return &pipeline{
		out:   out,
		left:  left,
		right: right,
		comp:  NewCompositor(NewContext(dev, out), opts...),
	}
}

func TestRenderEyeClearRoundTrip(t *testing.T) {
	c := color.RGBA{R: 12, G: 34, B: 56, A: 255}
	p := newPipeline(t, CPUDevice(), 8, 4, 6, 6, WithClearColor(c))

	if err := p.comp.RenderEye(p.left, mgl32.Ident4(), mgl32.Ident4(), nil); err != nil {
		t.Fatalf("RenderEye() error = %v", err)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if got := p.left.Pixel(x, y); got != c {
				t.Fatalf("Pixel(%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}
}

func TestRenderEyeRestoresBinding(t *testing.T) {
	p := newPipeline(t, CPUDevice(), 8, 4, 4, 4)
	ctx := p.comp.Context()
	ctx.SetViewport(1, 2, 3, 4)

	var during *EyeTarget
	var vp Viewport
	err := p.comp.RenderEye(p.right, mgl32.Ident4(), mgl32.Ident4(), func(ctx *Context, eye Eye) {
		during = ctx.BoundTarget()
		vp = ctx.Viewport()
		if eye != EyeRight {
			t.Errorf("draw eye = %v, want right", eye)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if during != p.right {
		t.Error("draw callback did not see the eye target bound")
	}
	if vp != (Viewport{Width: 4, Height: 4}) {
		t.Errorf("viewport during draw = %+v, want full target", vp)
	}
	if ctx.BoundTarget() != nil {
		t.Error("default framebuffer not restored after RenderEye")
	}
	if got := ctx.Viewport(); got != (Viewport{X: 1, Y: 2, Width: 3, Height: 4}) {
		t.Errorf("viewport after RenderEye = %+v", got)
	}
}

func TestRenderEyeErrors(t *testing.T) {
	p := newPipeline(t, CPUDevice(), 8, 4, 4, 4)
	if err := p.comp.RenderEye(nil, mgl32.Ident4(), mgl32.Ident4(), nil); !errors.Is(err, ErrNilTarget) {
		t.Errorf("RenderEye(nil) = %v, want ErrNilTarget", err)
	}
	p.left.Destroy()
	if err := p.comp.RenderEye(p.left, mgl32.Ident4(), mgl32.Ident4(), nil); !errors.Is(err, ErrTargetDestroyed) {
		t.Errorf("RenderEye(destroyed) = %v, want ErrTargetDestroyed", err)
	}
}

func TestCompositeEyesOrder(t *testing.T) {
	p := newPipeline(t, CPUDevice(), 8, 4, 4, 4, WithEyeClearColors(red, blue))

	if err := p.comp.Frame(p.left, p.right, identityMatrices(), nil); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	front := p.out.Front()
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			want := red
			if x >= 4 {
				want = blue
			}
			if got := front.RGBAAt(x, y); got != want {
				t.Fatalf("output(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCompositeEyesScales(t *testing.T) {
	p := newPipeline(t, CPUDevice(), 16, 8, 2, 2, WithEyeClearColors(green, red))
	if err := p.comp.Frame(p.left, p.right, identityMatrices(), nil); err != nil {
		t.Fatal(err)
	}
	front := p.out.Front()
	if got := front.RGBAAt(7, 7); got != green {
		t.Errorf("output(7,7) = %v, want green", got)
	}
	if got := front.RGBAAt(8, 0); got != red {
		t.Errorf("output(8,0) = %v, want red", got)
	}
}

func TestFrameEyeOrder(t *testing.T) {
	p := newPipeline(t, CPUDevice(), 8, 4, 4, 4)

	var order []Eye
	err := p.comp.Frame(p.left, p.right, identityMatrices(), func(ctx *Context, eye Eye) {
		order = append(order, eye)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != EyeLeft || order[1] != EyeRight {
		t.Errorf("draw order = %v, want [left right]", order)
	}
	if p.out.Frames() != 1 || p.comp.Frames() != 1 {
		t.Errorf("frames = %d/%d, want 1", p.out.Frames(), p.comp.Frames())
	}
}

func TestFramePerEyeMatrices(t *testing.T) {
	p := newPipeline(t, CPUDevice(), 8, 4, 4, 4)
	m := identityMatrices()
	m.view[EyeLeft] = mgl32.Translate3D(0.03, 0, 0)
	m.view[EyeRight] = mgl32.Translate3D(-0.03, 0, 0)

	err := p.comp.Frame(p.left, p.right, m, func(ctx *Context, eye Eye) {
		if !ctx.View().ApproxEqual(m.view[eye]) {
			t.Errorf("%v eye view = %v, want %v", eye, ctx.View(), m.view[eye])
		}
		if !ctx.DepthTest() || !ctx.Blend() {
			t.Errorf("%v eye: depth=%v blend=%v, want both enabled", eye, ctx.DepthTest(), ctx.Blend())
		}
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestFrameWithGPU(t *testing.T) {
	dev, cleanup := createNoopDevice(t)
	defer cleanup()

	programs, errs := LoadPrograms(dev, ProgramSources{})
	for _, err := range errs {
		t.Logf("program unavailable: %v", err)
	}
	defer programs.Destroy()

	p := newPipeline(t, dev, 8, 4, 4, 4, WithPrograms(programs), WithEyeClearColors(red, blue))
	if err := p.comp.Frame(p.left, p.right, identityMatrices(), nil); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if got := p.out.Front().RGBAAt(0, 0); got != red {
		t.Errorf("output(0,0) = %v, want red", got)
	}
	if got := p.left.RenderPassDescriptor().ColorAttachments[0].ClearValue; got.R != 1 || got.B != 0 {
		t.Errorf("left pass ClearValue = %+v, want red", got)
	}
	if got := p.right.RenderPassDescriptor().ColorAttachments[0].ClearValue; got.B != 1 || got.R != 0 {
		t.Errorf("right pass ClearValue = %+v, want blue", got)
	}
}

func TestFrameNilTarget(t *testing.T) {
	p := newPipeline(t, CPUDevice(), 8, 4, 4, 4)
	err := p.comp.Frame(p.left, nil, identityMatrices(), nil)
	if !errors.Is(err, ErrNilTarget) {
		t.Errorf("Frame() = %v, want ErrNilTarget", err)
	}
}
