// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Eye selects one of the two stereo views.
type Eye uint8

const (
	// EyeLeft is rendered first and composited into the left half.
	EyeLeft Eye = iota

	// EyeRight is rendered second and composited into the right half.
	EyeRight
)

// String returns "left" or "right".
func (e Eye) String() string {
	switch e {
	case EyeLeft:
		return "left"
	case EyeRight:
		return "right"
	default:
		return fmt.Sprintf("Eye(%d)", uint8(e))
	}
}

// clearDepth is the depth value written by Clear (far plane).
const clearDepth float32 = 1

// EyeTarget is an offscreen color+depth render destination for one eye.
//
// The color attachment is an RGBA8 image and the depth attachment a float32
// buffer; both are sized to the eye's output resolution. On a GPU device the
// target also owns a color texture, a Depth24PlusStencil8 texture, their
// views, and the render-pass descriptor binding them (the framebuffer).
//
// An EyeTarget is valid from CreateEyeTarget until Destroy and is never
// shared between the two eyes. Its content is overwritten every frame.
type EyeTarget struct {
	eye    Eye
	width  int
	height int
	dev    *Device

	color *image.RGBA
	depth []float32

	colorTex  hal.Texture
	colorView hal.TextureView
	depthTex  hal.Texture
	depthView hal.TextureView
	pass      *hal.RenderPassDescriptor

	destroyed bool
}

// CreateEyeTarget allocates the color and depth attachments for one eye and
// binds them to a new offscreen framebuffer.
//
// It returns a *ResourceCreationError if allocation fails or the framebuffer
// is incomplete; the caller must not use the target and should abort startup.
func CreateEyeTarget(dev *Device, eye Eye, width, height int) (*EyeTarget, error) {
	label := "eye_" + eye.String()
	if width <= 0 || height <= 0 || width > dev.MaxTextureSize() || height > dev.MaxTextureSize() {
		return nil, &ResourceCreationError{
			Resource: "eye target",
			Label:    label,
			Err:      fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height),
		}
	}

	t := &EyeTarget{
		eye:    eye,
		width:  width,
		height: height,
		dev:    dev,
		color:  image.NewRGBA(image.Rect(0, 0, width, height)),
		depth:  make([]float32, width*height),
	}

	if dev.HasGPU() {
		if err := t.createGPU(label); err != nil {
			t.destroyGPU()
			return nil, &ResourceCreationError{Resource: "eye target", Label: label, Err: err}
		}
	}

	if err := t.checkStatus(); err != nil {
		t.destroyGPU()
		return nil, &ResourceCreationError{Resource: "eye target", Label: label, Err: err}
	}

	slogger().Info("render: eye target created",
		"eye", eye.String(), "width", width, "height", height, "gpu", dev.HasGPU())
	return t, nil
}

// createGPU allocates the GPU-side attachments and the render-pass
// descriptor that binds them.
func (t *EyeTarget) createGPU(label string) error {
	size := hal.Extent3D{
		Width:              uint32(t.width),  //nolint:gosec // validated against MaxTextureSize
		Height:             uint32(t.height), //nolint:gosec // validated against MaxTextureSize
		DepthOrArrayLayers: 1,
	}

	colorTex, err := t.dev.hal.CreateTexture(&hal.TextureDescriptor{
		Label:         label + "_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage: gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopyDst | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	t.colorTex = colorTex

	colorView, err := t.dev.hal.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: label + "_color_view",
	})
	if err != nil {
		return fmt.Errorf("create color texture view: %w", err)
	}
	t.colorView = colorView

	depthTex, err := t.dev.hal.CreateTexture(&hal.TextureDescriptor{
		Label:         label + "_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth24PlusStencil8,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	t.depthTex = depthTex

	depthView, err := t.dev.hal.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: label + "_depth_view",
	})
	if err != nil {
		return fmt.Errorf("create depth texture view: %w", err)
	}
	t.depthView = depthView

	t.pass = &hal.RenderPassDescriptor{
		Label: label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       t.colorView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gpuColor(color.RGBA{}),
			},
		},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              t.depthView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	}
	return nil
}

// checkStatus verifies that the attachments form a complete framebuffer.
func (t *EyeTarget) checkStatus() error {
	if t.color == nil || t.color.Bounds().Dx() != t.width || t.color.Bounds().Dy() != t.height {
		return fmt.Errorf("%w: color attachment missing or mis-sized", ErrIncompleteFramebuffer)
	}
	if len(t.depth) != t.width*t.height {
		return fmt.Errorf("%w: depth attachment mis-sized", ErrIncompleteFramebuffer)
	}
	if t.dev.HasGPU() {
		if t.colorView == nil || t.depthView == nil || t.pass == nil {
			return fmt.Errorf("%w: GPU attachments missing", ErrIncompleteFramebuffer)
		}
	}
	return nil
}

// destroyGPU releases GPU attachments. Each resource is nil-checked to
// support partial cleanup.
func (t *EyeTarget) destroyGPU() {
	if !t.dev.HasGPU() {
		return
	}
	t.pass = nil
	if t.depthView != nil {
		t.dev.hal.DestroyTextureView(t.depthView)
		t.depthView = nil
	}
	if t.depthTex != nil {
		t.dev.hal.DestroyTexture(t.depthTex)
		t.depthTex = nil
	}
	if t.colorView != nil {
		t.dev.hal.DestroyTextureView(t.colorView)
		t.colorView = nil
	}
	if t.colorTex != nil {
		t.dev.hal.DestroyTexture(t.colorTex)
		t.colorTex = nil
	}
}

// Eye returns which eye this target renders.
func (t *EyeTarget) Eye() Eye { return t.eye }

// Width returns the target width in pixels.
func (t *EyeTarget) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *EyeTarget) Height() int { return t.height }

// ColorImage returns the color attachment. It shares memory with the target.
func (t *EyeTarget) ColorImage() *image.RGBA { return t.color }

// Pixel samples the color attachment at (x, y).
func (t *EyeTarget) Pixel(x, y int) color.RGBA { return t.color.RGBAAt(x, y) }

// Depth returns the depth value at (x, y), or +Inf outside the target.
func (t *EyeTarget) Depth(x, y int) float32 {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return float32(math.Inf(1))
	}
	return t.depth[y*t.width+x]
}

// ColorTexture returns the GPU color attachment, or nil on CPU devices.
func (t *EyeTarget) ColorTexture() hal.Texture { return t.colorTex }

// RenderPassDescriptor returns a copy of the GPU framebuffer binding, or
// nil on CPU devices. Its color clear value is the color of the last Clear
// of this target.
func (t *EyeTarget) RenderPassDescriptor() *hal.RenderPassDescriptor {
	if t.pass == nil {
		return nil
	}
	pass := *t.pass
	pass.ColorAttachments = []hal.RenderPassColorAttachment{t.pass.ColorAttachments[0]}
	return &pass
}

// Destroyed reports whether Destroy has been called.
func (t *EyeTarget) Destroyed() bool { return t.destroyed }

// Destroy releases all resources. Destroy is idempotent.
func (t *EyeTarget) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyGPU()
	t.color = nil
	t.depth = nil
	t.destroyed = true
}

// clear fills color with c and depth with the far plane. The GPU pass
// clears to the same color.
func (t *EyeTarget) clear(c color.RGBA) {
	clearRGBA(t.color, t.color.Bounds(), c)
	for i := range t.depth {
		t.depth[i] = clearDepth
	}
	if t.pass != nil {
		t.pass.ColorAttachments[0].ClearValue = gpuColor(c)
	}
}

func gpuColor(c color.RGBA) gputypes.Color {
	return gputypes.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// upload copies the finished color attachment to the GPU texture.
func (t *EyeTarget) upload() {
	if t.colorTex == nil {
		return
	}
	t.dev.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.colorTex,
			MipLevel: 0,
		},
		t.color.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(t.color.Stride), //nolint:gosec // stride is 4*width
			RowsPerImage: uint32(t.height),       //nolint:gosec // validated at creation
		},
		&hal.Extent3D{
			Width:              uint32(t.width),  //nolint:gosec // validated at creation
			Height:             uint32(t.height), //nolint:gosec // validated at creation
			DepthOrArrayLayers: 1,
		},
	)
}

// clearRGBA fills r within img with c.
func clearRGBA(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	row := img.PixOffset(r.Min.X, r.Min.Y)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := row
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[off+0] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = c.A
			off += 4
		}
		row += img.Stride
	}
}
