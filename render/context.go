// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"
)

// Viewport is the pixel rectangle NDC coordinates map to.
// Origin is the top-left corner of the bound color buffer.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Rect returns the viewport as an image rectangle.
func (v Viewport) Rect() image.Rectangle {
	return image.Rect(v.X, v.Y, v.X+v.Width, v.Y+v.Height)
}

// Stats counts work issued since the last ResetStats.
type Stats struct {
	DrawCalls int
	Fragments int
	Culled    int
}

// Context is the render thread's graphics pipeline state: the bound
// framebuffer, viewport, projection/view/model transforms, active program,
// and depth/blend switches.
//
// Context mirrors a fixed-function GL context: every operation mutates shared
// state, and callers must not assume state survives a call into the
// compositor. Context is NOT safe for concurrent use.
type Context struct {
	dev    *Device
	output *OutputSurface
	bound  *EyeTarget

	viewport   Viewport
	projection mgl32.Mat4
	view       mgl32.Mat4
	model      []mgl32.Mat4

	program    *Program
	depthTest  bool
	blend      bool
	clearColor color.RGBA
	filter     xdraw.Interpolator

	stats Stats
}

// NewContext creates a context whose default framebuffer is output.
// The default framebuffer is bound and the viewport covers it.
func NewContext(dev *Device, output *OutputSurface) *Context {
	c := &Context{
		dev:        dev,
		output:     output,
		projection: mgl32.Ident4(),
		view:       mgl32.Ident4(),
		model:      []mgl32.Mat4{mgl32.Ident4()},
		blend:      true,
		filter:     xdraw.NearestNeighbor,
	}
	if output != nil {
		c.viewport = Viewport{Width: output.Width(), Height: output.Height()}
	}
	return c
}

// Device returns the device the context renders with.
func (c *Context) Device() *Device { return c.dev }

// Output returns the default framebuffer.
func (c *Context) Output() *OutputSurface { return c.output }

// BindTarget makes t the destination of subsequent clears and draws.
// Passing nil binds the default framebuffer (the output surface).
func (c *Context) BindTarget(t *EyeTarget) error {
	if t != nil && t.Destroyed() {
		return ErrTargetDestroyed
	}
	c.bound = t
	return nil
}

// BoundTarget returns the bound eye target, or nil when the default
// framebuffer is bound.
func (c *Context) BoundTarget() *EyeTarget { return c.bound }

// SetViewport sets the NDC-to-pixel mapping.
func (c *Context) SetViewport(x, y, width, height int) {
	c.viewport = Viewport{X: x, Y: y, Width: width, Height: height}
}

// Viewport returns the current viewport.
func (c *Context) Viewport() Viewport { return c.viewport }

// SetClearColor sets the color used by Clear.
func (c *Context) SetClearColor(col color.RGBA) { c.clearColor = col }

// ClearColor returns the color used by Clear.
func (c *Context) ClearColor() color.RGBA { return c.clearColor }

// Clear fills the bound framebuffer's color with the clear color and its
// depth (if any) with the far plane.
func (c *Context) Clear() {
	if c.bound != nil {
		c.bound.clear(c.clearColor)
		return
	}
	if c.output != nil {
		back := c.output.Back()
		clearRGBA(back, back.Bounds(), c.clearColor)
	}
}

// SetProjection sets the projection matrix.
func (c *Context) SetProjection(m mgl32.Mat4) { c.projection = m }

// Projection returns the projection matrix.
func (c *Context) Projection() mgl32.Mat4 { return c.projection }

// SetView sets the view (camera) matrix.
func (c *Context) SetView(m mgl32.Mat4) { c.view = m }

// View returns the view matrix.
func (c *Context) View() mgl32.Mat4 { return c.view }

// PushModel multiplies m onto the current model matrix and pushes the result.
func (c *Context) PushModel(m mgl32.Mat4) {
	top := c.model[len(c.model)-1]
	c.model = append(c.model, top.Mul4(m))
}

// PopModel restores the model matrix saved by the matching PushModel.
// The identity at the bottom of the stack is never popped.
func (c *Context) PopModel() {
	if len(c.model) > 1 {
		c.model = c.model[:len(c.model)-1]
	}
}

// Model returns the current model matrix.
func (c *Context) Model() mgl32.Mat4 { return c.model[len(c.model)-1] }

// ResetModel clears the model stack to identity.
func (c *Context) ResetModel() {
	c.model = c.model[:1]
	c.model[0] = mgl32.Ident4()
}

// UseProgram binds p. A nil program (one that failed to compile or link)
// leaves the previously bound program active so rendering degrades instead
// of stopping.
func (c *Context) UseProgram(p *Program) {
	if p == nil {
		name := "none"
		if c.program != nil {
			name = c.program.Name()
		}
		slogger().Debug("render: program unavailable, keeping previous", "program", name)
		return
	}
	c.program = p
}

// Program returns the active program, or nil if none was ever bound.
func (c *Context) Program() *Program { return c.program }

// SetDepthTest enables or disables the LESS depth test.
func (c *Context) SetDepthTest(on bool) { c.depthTest = on }

// DepthTest reports whether the depth test is enabled.
func (c *Context) DepthTest() bool { return c.depthTest }

// SetBlend enables or disables source-over blending.
func (c *Context) SetBlend(on bool) { c.blend = on }

// Blend reports whether blending is enabled.
func (c *Context) Blend() bool { return c.blend }

// SetFilter sets the interpolator used by Blit.
func (c *Context) SetFilter(f xdraw.Interpolator) {
	if f != nil {
		c.filter = f
	}
}

// Stats returns the counters accumulated since the last ResetStats.
func (c *Context) Stats() Stats { return c.stats }

// ResetStats zeroes the counters.
func (c *Context) ResetStats() { c.stats = Stats{} }

// colorBuffer returns the bound color attachment.
func (c *Context) colorBuffer() *image.RGBA {
	if c.bound != nil {
		return c.bound.color
	}
	if c.output != nil {
		return c.output.Back()
	}
	return nil
}

// depthBuffer returns the bound depth attachment; the default framebuffer
// has none.
func (c *Context) depthBuffer() ([]float32, int) {
	if c.bound != nil {
		return c.bound.depth, c.bound.width
	}
	return nil, 0
}

// Blit draws src as a screen-aligned quad covering dst (in pixels of the
// bound framebuffer), clipped to the viewport. Under ProgramWidget with
// blending on, src is drawn source-over; otherwise it replaces dst.
func (c *Context) Blit(src image.Image, dst image.Rectangle) {
	buf := c.colorBuffer()
	if buf == nil || src == nil {
		return
	}
	c.stats.DrawCalls++
	clip := dst.Intersect(c.viewport.Rect()).Intersect(buf.Bounds())
	if clip.Empty() {
		c.stats.Culled++
		return
	}
	sub, ok := buf.SubImage(clip).(*image.RGBA)
	if !ok {
		return
	}
	// Scale into the full dst rectangle, letting SubImage do the clipping.
	op := xdraw.Src
	if c.blend && c.shading() == ProgramWidget {
		op = xdraw.Over
	}
	c.filter.Scale(sub, dst, src, src.Bounds(), op, nil)
	c.stats.Fragments += clip.Dx() * clip.Dy()
}
