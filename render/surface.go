// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"sync/atomic"
)

// OutputSurface is the window-sized default framebuffer. Rendering goes to
// the back buffer; Present swaps it with the front buffer atomically so a
// presenter never observes a partially composited frame.
//
// Back and Present belong to the render thread. Front may be called from
// any goroutine; the returned image stays unmodified until the second
// Present after it was returned.
type OutputSurface struct {
	width, height int

	back   *image.RGBA
	spare  *image.RGBA
	front  atomic.Pointer[image.RGBA]
	frames atomic.Uint64
}

// NewOutputSurface allocates a width x height surface.
func NewOutputSurface(width, height int) (*OutputSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: output %dx%d", ErrInvalidDimensions, width, height)
	}
	s := &OutputSurface{}
	s.alloc(width, height)
	return s, nil
}

func (s *OutputSurface) alloc(width, height int) {
	s.width, s.height = width, height
	r := image.Rect(0, 0, width, height)
	s.back = image.NewRGBA(r)
	s.spare = image.NewRGBA(r)
	s.front.Store(image.NewRGBA(r))
}

// Width returns the surface width in pixels.
func (s *OutputSurface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *OutputSurface) Height() int { return s.height }

// Back returns the buffer currently being rendered.
func (s *OutputSurface) Back() *image.RGBA { return s.back }

// Front returns the most recently presented frame.
func (s *OutputSurface) Front() *image.RGBA { return s.front.Load() }

// Frames returns the number of frames presented.
func (s *OutputSurface) Frames() uint64 { return s.frames.Load() }

// Present publishes the back buffer. Three buffers rotate so the image a
// reader obtained from Front is not reused as the back buffer by the very
// next frame.
func (s *OutputSurface) Present() {
	old := s.front.Swap(s.back)
	s.back = s.spare
	s.spare = old
	s.frames.Add(1)
}

// Resize reallocates all buffers. Contents are discarded.
func (s *OutputSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: output %dx%d", ErrInvalidDimensions, width, height)
	}
	if width == s.width && height == s.height {
		return nil
	}
	s.alloc(width, height)
	slogger().Debug("render: output resized", "width", width, "height", height)
	return nil
}
