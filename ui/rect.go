// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ui

import "github.com/chewxy/math32"

// Rect is an axis-aligned rectangle in surface units. X, Y is the
// bottom-left corner.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// R returns a Rect with negative sizes clamped to zero.
func R(x, y, width, height float32) Rect {
	return Rect{X: x, Y: y, Width: math32.Max(width, 0), Height: math32.Max(height, 0)}
}

// MaxX returns the right edge.
func (r Rect) MaxX() float32 { return r.X + r.Width }

// MaxY returns the top edge.
func (r Rect) MaxY() float32 { return r.Y + r.Height }

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.MaxX() && y >= r.Y && y <= r.MaxY()
}

// Scale multiplies position and size by sx, sy.
func (r Rect) Scale(sx, sy float32) Rect {
	return R(r.X*sx, r.Y*sy, r.Width*sx, r.Height*sy)
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }
