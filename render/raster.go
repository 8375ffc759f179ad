// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Quad is an axis-aligned rectangle in the model's XY plane at depth Z.
// Min is the bottom-left corner and Max the top-right; Y grows upward.
type Quad struct {
	Min, Max mgl32.Vec2
	Z        float32

	// Texture is sampled with (0,0) at the top-left corner. Nil draws a
	// flat Tint.
	Texture *Texture

	// Tint multiplies the texel color. The zero value is treated as opaque
	// white.
	Tint color.RGBA
}

// vertex is a clip-space position with its texture coordinate.
type vertex struct {
	pos  mgl32.Vec4
	u, v float32
}

// screenVertex is a vertex after the perspective divide and viewport
// transform. invW, uw and vw are interpolated linearly in screen space.
type screenVertex struct {
	x, y, depth  float32
	invW, uw, vw float32
}

const nearEpsilon = 1e-6

var opaqueWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// shading returns the fragment stage of the active program.
func (c *Context) shading() ProgramKind {
	if c.program == nil {
		return ProgramWidget
	}
	return c.program.Kind()
}

// DrawQuad rasterizes q through projection * view * model into the bound
// framebuffer using the active program, depth and blend state.
//
// Under ProgramComposite texels are copied opaquely and the tint is
// ignored. Under ProgramWidget, or with no program bound, texels are
// modulated by the tint and blended source-over when blending is on.
func (c *Context) DrawQuad(q Quad) {
	buf := c.colorBuffer()
	if buf == nil {
		return
	}
	c.stats.DrawCalls++

	mvp := c.projection.Mul4(c.view).Mul4(c.Model())
	corners := [4]vertex{
		{pos: mgl32.Vec4{q.Min.X(), q.Min.Y(), q.Z, 1}, u: 0, v: 1},
		{pos: mgl32.Vec4{q.Max.X(), q.Min.Y(), q.Z, 1}, u: 1, v: 1},
		{pos: mgl32.Vec4{q.Max.X(), q.Max.Y(), q.Z, 1}, u: 1, v: 0},
		{pos: mgl32.Vec4{q.Min.X(), q.Max.Y(), q.Z, 1}, u: 0, v: 0},
	}
	poly := make([]vertex, 0, 8)
	for _, v := range corners {
		v.pos = mvp.Mul4x1(v.pos)
		poly = append(poly, v)
	}
	poly = clipNear(poly)
	if len(poly) < 3 {
		c.stats.Culled++
		return
	}

	sv := make([]screenVertex, len(poly))
	for i, v := range poly {
		sv[i] = c.toScreen(v)
	}

	tint := q.Tint
	kind := c.shading()
	if tint == (color.RGBA{}) || kind == ProgramComposite {
		tint = opaqueWhite
	}
	for i := 1; i+1 < len(sv); i++ {
		c.rasterTriangle(sv[0], sv[i], sv[i+1], q.Texture, tint, kind)
	}
}

// clipNear clips a convex clip-space polygon against the near plane
// (z >= -w), interpolating texture coordinates along cut edges.
func clipNear(in []vertex) []vertex {
	dist := func(v vertex) float32 { return v.pos.Z() + v.pos.W() - nearEpsilon }
	out := make([]vertex, 0, len(in)+2)
	for i := range in {
		a := in[i]
		b := in[(i+1)%len(in)]
		da, db := dist(a), dist(b)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, vertex{
				pos: a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
				u:   a.u + (b.u-a.u)*t,
				v:   a.v + (b.v-a.v)*t,
			})
		}
	}
	return out
}

// toScreen applies the perspective divide and maps NDC into the viewport.
// NDC y = +1 maps to the top row.
func (c *Context) toScreen(v vertex) screenVertex {
	invW := 1 / v.pos.W()
	nx := v.pos.X() * invW
	ny := v.pos.Y() * invW
	nz := v.pos.Z() * invW
	vp := c.viewport
	return screenVertex{
		x:     float32(vp.X) + (nx+1)*0.5*float32(vp.Width),
		y:     float32(vp.Y) + (1-ny)*0.5*float32(vp.Height),
		depth: (nz + 1) * 0.5,
		invW:  invW,
		uw:    v.u * invW,
		vw:    v.v * invW,
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// ownsEdge breaks ties for pixel centers exactly on an edge so that a
// shared edge belongs to exactly one of its two triangles.
func ownsEdge(ax, ay, bx, by float32) bool {
	dy := by - ay
	return dy < 0 || (dy == 0 && bx-ax > 0)
}

func (c *Context) rasterTriangle(v0, v1, v2 screenVertex, tex *Texture, tint color.RGBA, kind ProgramKind) {
	area := edge(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	buf := c.colorBuffer()
	depth, depthStride := c.depthBuffer()
	clip := c.viewport.Rect().Intersect(buf.Bounds())
	if clip.Empty() {
		return
	}

	minX := math32.Max(math32.Floor(math32.Min(v0.x, math32.Min(v1.x, v2.x))), float32(clip.Min.X))
	maxX := math32.Min(math32.Ceil(math32.Max(v0.x, math32.Max(v1.x, v2.x))), float32(clip.Max.X))
	minY := math32.Max(math32.Floor(math32.Min(v0.y, math32.Min(v1.y, v2.y))), float32(clip.Min.Y))
	maxY := math32.Min(math32.Ceil(math32.Max(v0.y, math32.Max(v1.y, v2.y))), float32(clip.Max.Y))

	own0 := ownsEdge(v1.x, v1.y, v2.x, v2.y)
	own1 := ownsEdge(v2.x, v2.y, v0.x, v0.y)
	own2 := ownsEdge(v0.x, v0.y, v1.x, v1.y)

	for py := int(minY); py < int(maxY); py++ {
		cy := float32(py) + 0.5
		for px := int(minX); px < int(maxX); px++ {
			cx := float32(px) + 0.5
			w0 := edge(v1.x, v1.y, v2.x, v2.y, cx, cy)
			w1 := edge(v2.x, v2.y, v0.x, v0.y, cx, cy)
			w2 := edge(v0.x, v0.y, v1.x, v1.y, cx, cy)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			if (w0 == 0 && !own0) || (w1 == 0 && !own1) || (w2 == 0 && !own2) {
				continue
			}
			b0, b1, b2 := w0/area, w1/area, w2/area

			z := b0*v0.depth + b1*v1.depth + b2*v2.depth
			if z < 0 || z > 1 {
				continue
			}
			if c.depthTest && depth != nil {
				di := (py-buf.Rect.Min.Y)*depthStride + (px - buf.Rect.Min.X)
				if z >= depth[di] {
					continue
				}
				depth[di] = z
			}

			invW := b0*v0.invW + b1*v1.invW + b2*v2.invW
			u := (b0*v0.uw + b1*v1.uw + b2*v2.uw) / invW
			v := (b0*v0.vw + b1*v1.vw + b2*v2.vw) / invW

			src := shade(tex, u, v, tint)
			if kind == ProgramComposite {
				src.A = 255
			}
			off := buf.PixOffset(px, py)
			dst := buf.Pix[off : off+4 : off+4]
			if c.blend && src.A < 255 {
				blendOver(dst, src)
			} else {
				dst[0], dst[1], dst[2], dst[3] = src.R, src.G, src.B, src.A
			}
			c.stats.Fragments++
		}
	}
}

// shade samples tex at (u, v) with nearest filtering and clamp-to-edge
// addressing, then modulates by tint. The result is non-premultiplied.
func shade(tex *Texture, u, v float32, tint color.RGBA) color.RGBA {
	texel := opaqueWhite
	if tex != nil && !tex.Released() && tex.Width() > 0 && tex.Height() > 0 {
		x := clampIndex(int(u*float32(tex.Width())), tex.Width())
		y := clampIndex(int(v*float32(tex.Height())), tex.Height())
		texel = tex.At(x, y)
	}
	return color.RGBA{
		R: mul8(texel.R, tint.R),
		G: mul8(texel.G, tint.G),
		B: mul8(texel.B, tint.B),
		A: mul8(texel.A, tint.A),
	}
}

// blendOver composites non-premultiplied src over dst in place.
func blendOver(dst []byte, src color.RGBA) {
	a := uint32(src.A)
	ia := 255 - a
	dst[0] = uint8((uint32(src.R)*a + uint32(dst[0])*ia + 127) / 255) //nolint:gosec // result <= 255
	dst[1] = uint8((uint32(src.G)*a + uint32(dst[1])*ia + 127) / 255) //nolint:gosec // result <= 255
	dst[2] = uint8((uint32(src.B)*a + uint32(dst[2])*ia + 127) / 255) //nolint:gosec // result <= 255
	dst[3] = uint8(a + (uint32(dst[3])*ia+127)/255)                   //nolint:gosec // result <= 255
}

func mul8(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255) //nolint:gosec // result <= 255
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
