// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package video

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/hmdview/render"
)

var (
	// ErrInvalidSize is returned for zero or negative frame sizes.
	ErrInvalidSize = errors.New("video: invalid frame size")

	// ErrFrameSize is returned when written pixel data does not match the
	// surface size.
	ErrFrameSize = errors.New("video: frame data size mismatch")
)

// PixelFormat is the memory layout of a decoded frame.
type PixelFormat uint8

const (
	// PixelFormatBGR24 is packed 8-bit blue, green, red.
	PixelFormatBGR24 PixelFormat = iota

	// PixelFormatRGBA32 is packed 8-bit red, green, blue, alpha.
	PixelFormatRGBA32
)

// BytesPerPixel returns the pixel stride of f.
func (f PixelFormat) BytesPerPixel() int {
	if f == PixelFormatRGBA32 {
		return 4
	}
	return 3
}

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatBGR24:
		return "BGR24"
	case PixelFormatRGBA32:
		return "RGBA32"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint8(f))
	}
}

// FrameSurface holds the most recently decoded frame.
//
// The decode goroutine writes through Write or WriteFrame; the render
// thread reads through UploadTexture. Both hold the same mutex for the whole
// operation, so uploads never see a partially written frame and writers
// stall while an upload is in progress.
type FrameSurface struct {
	mu     sync.Mutex
	width  int
	height int
	format PixelFormat
	pix    []byte
	seq    uint64
}

// NewFrameSurface allocates a black width x height frame.
func NewFrameSurface(width, height int, format PixelFormat) (*FrameSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &FrameSurface{
		width:  width,
		height: height,
		format: format,
		pix:    make([]byte, width*height*format.BytesPerPixel()),
	}, nil
}

// Size returns the frame dimensions.
func (f *FrameSurface) Size() (width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height
}

// AspectRatio returns width / height.
func (f *FrameSurface) AspectRatio() float32 {
	w, h := f.Size()
	return float32(w) / float32(h)
}

// Format returns the pixel format.
func (f *FrameSurface) Format() PixelFormat {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.format
}

// Sequence returns the number of frames written so far.
func (f *FrameSurface) Sequence() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq
}

// Resize changes the frame dimensions, as when a new video starts.
// Contents are cleared to black and count as a new frame.
func (f *FrameSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width, f.height = width, height
	f.pix = make([]byte, width*height*f.format.BytesPerPixel())
	f.seq++
	return nil
}

// Write replaces the frame with tightly packed pixels in the surface format.
func (f *FrameSurface) Write(pix []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(pix) != len(f.pix) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrFrameSize, len(pix), len(f.pix))
	}
	copy(f.pix, pix)
	f.seq++
	return nil
}

// WriteFrame lets fill decode directly into the frame buffer while the
// lock is held.
func (f *FrameSurface) WriteFrame(fill func(pix []byte, stride int)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fill(f.pix, f.width*f.format.BytesPerPixel())
	f.seq++
}

// UploadTexture copies the current frame into tex as RGBA, resizing tex to
// the frame size if needed. The surface lock is held for the entire copy.
func (f *FrameSurface) UploadTexture(tex *render.Texture) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	bpp := f.format.BytesPerPixel()
	srcStride := f.width * bpp
	err := tex.WriteFunc(f.width, f.height, func(dst []byte, stride int) {
		for y := 0; y < f.height; y++ {
			src := f.pix[y*srcStride : (y+1)*srcStride]
			row := dst[y*stride : y*stride+f.width*4]
			if f.format == PixelFormatRGBA32 {
				copy(row, src)
				continue
			}
			for x, si := 0, 0; x < f.width; x, si = x+1, si+3 {
				di := x * 4
				row[di+0] = src[si+2]
				row[di+1] = src[si+1]
				row[di+2] = src[si+0]
				row[di+3] = 0xff
			}
		}
	})
	if err != nil {
		return fmt.Errorf("video: upload frame: %w", err)
	}
	return nil
}
