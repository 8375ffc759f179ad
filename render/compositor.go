// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"
)

// EyeMatrices supplies per-eye projection and view matrices for a frame.
type EyeMatrices interface {
	Projection(eye Eye) mgl32.Mat4
	View(eye Eye) mgl32.Mat4
}

// DrawFunc draws one eye's scene into the context. The bound target,
// viewport, projection and view are already set.
type DrawFunc func(ctx *Context, eye Eye)

// CompositorOption configures a Compositor.
type CompositorOption func(*compositorOptions)

type compositorOptions struct {
	clear    [2]color.RGBA
	filter   xdraw.Interpolator
	programs *ProgramSet
}

func defaultCompositorOptions() compositorOptions {
	black := color.RGBA{A: 255}
	return compositorOptions{
		clear:  [2]color.RGBA{black, black},
		filter: xdraw.NearestNeighbor,
	}
}

// WithClearColor sets the clear color for both eyes.
func WithClearColor(c color.RGBA) CompositorOption {
	return func(o *compositorOptions) {
		o.clear = [2]color.RGBA{c, c}
	}
}

// WithEyeClearColors sets distinct clear colors per eye.
func WithEyeClearColors(left, right color.RGBA) CompositorOption {
	return func(o *compositorOptions) {
		o.clear = [2]color.RGBA{left, right}
	}
}

// WithFilter sets the interpolator used to scale eye images onto the
// output. Nearest neighbor is the default.
func WithFilter(f xdraw.Interpolator) CompositorOption {
	return func(o *compositorOptions) {
		if f != nil {
			o.filter = f
		}
	}
}

// WithPrograms sets the program set bound at each pipeline stage.
func WithPrograms(p *ProgramSet) CompositorOption {
	return func(o *compositorOptions) {
		o.programs = p
	}
}

// Compositor drives the per-frame stereo pipeline: render the left eye,
// render the right eye, composite both side by side into the output, then
// present.
type Compositor struct {
	ctx      *Context
	opts     compositorOptions
	programs *ProgramSet
	frames   uint64
}

// NewCompositor creates a compositor rendering through ctx.
func NewCompositor(ctx *Context, opts ...CompositorOption) *Compositor {
	o := defaultCompositorOptions()
	for _, opt := range opts {
		opt(&o)
	}
	programs := o.programs
	if programs == nil {
		programs = &ProgramSet{}
	}
	ctx.SetFilter(o.filter)
	return &Compositor{ctx: ctx, opts: o, programs: programs}
}

// Context returns the pipeline state the compositor renders through.
func (c *Compositor) Context() *Context { return c.ctx }

// Frames returns the number of frames completed by Frame.
func (c *Compositor) Frames() uint64 { return c.frames }

// RenderEye binds t, sets its full viewport, clears it, installs proj and
// view, runs draw, and uploads the result. The previous binding is
// restored on return.
func (c *Compositor) RenderEye(t *EyeTarget, proj, view mgl32.Mat4, draw DrawFunc) error {
	if t == nil {
		return ErrNilTarget
	}
	ctx := c.ctx
	prev := ctx.BoundTarget()
	prevVP := ctx.Viewport()
	if err := ctx.BindTarget(t); err != nil {
		return fmt.Errorf("render: bind %s eye: %w", t.Eye(), err)
	}
	defer func() {
		if err := ctx.BindTarget(prev); err != nil {
			// The previous target was destroyed mid-frame.
			_ = ctx.BindTarget(nil)
		}
		ctx.SetViewport(prevVP.X, prevVP.Y, prevVP.Width, prevVP.Height)
	}()

	ctx.SetViewport(0, 0, t.Width(), t.Height())
	ctx.SetClearColor(c.opts.clear[t.Eye()&1])
	ctx.Clear()
	ctx.SetProjection(proj)
	ctx.SetView(view)
	ctx.ResetModel()
	ctx.UseProgram(c.programs.Widget)
	ctx.SetDepthTest(true)
	ctx.SetBlend(true)

	if draw != nil {
		draw(ctx, t.Eye())
	}
	t.upload()
	return nil
}

// CompositeEyes draws left into the left half and right into the right
// half of the default framebuffer, covering width x height pixels.
func (c *Compositor) CompositeEyes(left, right *EyeTarget, width, height int) error {
	if left == nil || right == nil {
		return ErrNilTarget
	}
	if left.Destroyed() || right.Destroyed() {
		return ErrTargetDestroyed
	}
	ctx := c.ctx
	if err := ctx.BindTarget(nil); err != nil {
		return err
	}
	ctx.SetViewport(0, 0, width, height)
	ctx.SetDepthTest(false)
	ctx.SetBlend(false)
	ctx.UseProgram(c.programs.Composite)

	half := width / 2
	ctx.Blit(left.ColorImage(), image.Rect(0, 0, half, height))
	ctx.Blit(right.ColorImage(), image.Rect(half, 0, width, height))

	ctx.UseProgram(c.programs.Widget)
	return nil
}

// Frame runs one complete stereo frame: left eye, right eye, composite,
// present. Errors from both eyes are joined; the frame is still composited
// and presented so the display keeps updating.
func (c *Compositor) Frame(left, right *EyeTarget, m EyeMatrices, draw DrawFunc) error {
	c.ctx.ResetStats()
	var errs []error
	for _, t := range [2]*EyeTarget{left, right} {
		if t == nil {
			errs = append(errs, ErrNilTarget)
			continue
		}
		if err := c.RenderEye(t, m.Projection(t.Eye()), m.View(t.Eye()), draw); err != nil {
			errs = append(errs, err)
		}
	}
	out := c.ctx.Output()
	if out == nil {
		return errors.Join(append(errs, ErrNoOutput)...)
	}
	if err := c.CompositeEyes(left, right, out.Width(), out.Height()); err != nil {
		errs = append(errs, err)
	}
	out.Present()
	c.frames++
	if c.frames%300 == 0 {
		s := c.ctx.Stats()
		slogger().Debug("render: frame stats", "frame", c.frames, "draws", s.DrawCalls, "fragments", s.Fragments, "culled", s.Culled)
	}
	return errors.Join(errs...)
}
