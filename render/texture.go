// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	xdraw "golang.org/x/image/draw"
)

// Texture is a sampled RGBA8 image owned by the render thread.
//
// The CPU copy is always present and is what the software rasterizer
// samples. On a GPU device a mirror texture is kept in sync on every write.
type Texture struct {
	label string
	img   *image.RGBA
	dev   *Device

	gpuTex  hal.Texture
	gpuView hal.TextureView

	generation uint64
	released   bool
}

// NewTexture allocates a cleared texture of the given size.
func NewTexture(dev *Device, label string, width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 || width > dev.MaxTextureSize() || height > dev.MaxTextureSize() {
		return nil, &ResourceCreationError{
			Resource: "texture",
			Label:    label,
			Err:      fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height),
		}
	}
	t := &Texture{
		label: label,
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		dev:   dev,
	}
	if err := t.createGPU(); err != nil {
		return nil, &ResourceCreationError{Resource: "texture", Label: label, Err: err}
	}
	return t, nil
}

// NewTextureFromImage allocates a texture holding a copy of img.
func NewTextureFromImage(dev *Device, label string, img image.Image) (*Texture, error) {
	b := img.Bounds()
	t, err := NewTexture(dev, label, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	xdraw.Copy(t.img, image.Point{}, img, b, xdraw.Src, nil)
	t.sync()
	return t, nil
}

// createGPU allocates the GPU mirror texture and view, if the device has one.
func (t *Texture) createGPU() error {
	if !t.dev.HasGPU() {
		return nil
	}
	b := t.img.Bounds()
	tex, err := t.dev.hal.CreateTexture(&hal.TextureDescriptor{
		Label: t.label,
		Size: hal.Extent3D{
			Width:              uint32(b.Dx()), //nolint:gosec // validated against MaxTextureSize
			Height:             uint32(b.Dy()), //nolint:gosec // validated against MaxTextureSize
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	view, err := t.dev.hal.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: t.label + "_view",
	})
	if err != nil {
		t.dev.hal.DestroyTexture(tex)
		return fmt.Errorf("create texture view: %w", err)
	}
	t.gpuTex = tex
	t.gpuView = view
	return nil
}

func (t *Texture) destroyGPU() {
	if !t.dev.HasGPU() {
		return
	}
	if t.gpuView != nil {
		t.dev.hal.DestroyTextureView(t.gpuView)
		t.gpuView = nil
	}
	if t.gpuTex != nil {
		t.dev.hal.DestroyTexture(t.gpuTex)
		t.gpuTex = nil
	}
}

// sync copies the CPU pixels to the GPU mirror.
func (t *Texture) sync() {
	t.generation++
	if t.gpuTex == nil {
		return
	}
	b := t.img.Bounds()
	w, h := uint32(b.Dx()), uint32(b.Dy()) //nolint:gosec // validated at creation
	t.dev.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.gpuTex,
			MipLevel: 0,
		},
		t.img.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(t.img.Stride), //nolint:gosec // stride is 4*width
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
}

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.img.Bounds().Dx() }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.img.Bounds().Dy() }

// Image returns the CPU copy. The image shares memory with the texture and
// must only be modified from the render thread, followed by MarkDirty.
func (t *Texture) Image() *image.RGBA { return t.img }

// Generation counts uploads since creation. Screen widgets use it to tell
// whether a new video frame arrived.
func (t *Texture) Generation() uint64 { return t.generation }

// GPUTexture returns the GPU mirror, or nil on CPU-only devices.
func (t *Texture) GPUTexture() hal.Texture { return t.gpuTex }

// GPUView returns the GPU mirror view, or nil on CPU-only devices.
func (t *Texture) GPUView() hal.TextureView { return t.gpuView }

// Released reports whether Release has been called.
func (t *Texture) Released() bool { return t.released }

// At returns the texel at (x, y).
func (t *Texture) At(x, y int) color.RGBA {
	return t.img.RGBAAt(x, y)
}

// MarkDirty re-uploads the CPU copy after it was modified through Image.
func (t *Texture) MarkDirty() {
	if !t.released {
		t.sync()
	}
}

// Resize reallocates the texture. Contents are not preserved.
// It is a no-op when the size is unchanged.
func (t *Texture) Resize(width, height int) error {
	if t.released {
		return ErrTextureReleased
	}
	if width == t.Width() && height == t.Height() {
		return nil
	}
	if width <= 0 || height <= 0 || width > t.dev.MaxTextureSize() || height > t.dev.MaxTextureSize() {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	t.destroyGPU()
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
	if err := t.createGPU(); err != nil {
		return &ResourceCreationError{Resource: "texture", Label: t.label, Err: err}
	}
	return nil
}

// WritePixels replaces the contents with tightly packed RGBA data.
func (t *Texture) WritePixels(pix []byte) error {
	if t.released {
		return ErrTextureReleased
	}
	if len(pix) != len(t.img.Pix) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrTextureSizeMismatch, len(pix), len(t.img.Pix))
	}
	copy(t.img.Pix, pix)
	t.sync()
	return nil
}

// WriteFunc resizes the texture to width x height if needed and lets fill
// write the RGBA rows directly, then uploads the result.
func (t *Texture) WriteFunc(width, height int, fill func(dst []byte, stride int)) error {
	if err := t.Resize(width, height); err != nil {
		return err
	}
	fill(t.img.Pix, t.img.Stride)
	t.sync()
	return nil
}

// Release frees GPU resources. Release is idempotent.
func (t *Texture) Release() {
	if t.released {
		return
	}
	t.destroyGPU()
	t.released = true
}

// TextureID identifies a texture slot in a TextureArena. Interaction
// surfaces use widget IDs, so no two widgets alias one texture.
type TextureID uint32

// TextureArena owns one texture per ID.
//
// TextureArena is NOT safe for concurrent use.
type TextureArena struct {
	dev      *Device
	textures map[TextureID]*Texture
}

// NewTextureArena creates an empty arena allocating on dev.
func NewTextureArena(dev *Device) *TextureArena {
	return &TextureArena{
		dev:      dev,
		textures: make(map[TextureID]*Texture),
	}
}

// Device returns the device textures are allocated on.
func (a *TextureArena) Device() *Device { return a.dev }

// Get returns the texture for id, or nil.
func (a *TextureArena) Get(id TextureID) *Texture {
	return a.textures[id]
}

// Ensure returns the texture for id, creating or resizing it as needed.
func (a *TextureArena) Ensure(id TextureID, label string, width, height int) (*Texture, error) {
	if t, ok := a.textures[id]; ok {
		if err := t.Resize(width, height); err != nil {
			return nil, err
		}
		return t, nil
	}
	t, err := NewTexture(a.dev, label, width, height)
	if err != nil {
		return nil, err
	}
	a.textures[id] = t
	return t, nil
}

// Put stores tex under id, releasing any texture previously stored there.
func (a *TextureArena) Put(id TextureID, tex *Texture) {
	if old, ok := a.textures[id]; ok && old != tex {
		old.Release()
	}
	a.textures[id] = tex
}

// Release frees and forgets the texture for id.
func (a *TextureArena) Release(id TextureID) {
	if t, ok := a.textures[id]; ok {
		t.Release()
		delete(a.textures, id)
	}
}

// Len returns the number of live textures.
func (a *TextureArena) Len() int { return len(a.textures) }

// Close releases every texture in the arena.
func (a *TextureArena) Close() {
	for id, t := range a.textures {
		t.Release()
		delete(a.textures, id)
	}
}
