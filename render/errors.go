// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by render operations.
var (
	// ErrIncompleteFramebuffer is the cause of a ResourceCreationError when
	// the color and depth attachments of an eye target do not form a
	// complete framebuffer.
	ErrIncompleteFramebuffer = errors.New("render: incomplete framebuffer")

	// ErrInvalidDimensions is returned for zero or negative target sizes.
	ErrInvalidDimensions = errors.New("render: invalid dimensions")

	// ErrTargetDestroyed is returned when a destroyed eye target is bound.
	ErrTargetDestroyed = errors.New("render: eye target destroyed")

	// ErrNilTarget is returned when a nil eye target is passed.
	ErrNilTarget = errors.New("render: nil eye target")

	// ErrNoOutput is returned when a frame is run without an output surface.
	ErrNoOutput = errors.New("render: no output surface")

	// ErrTextureReleased is returned when writing to a released texture.
	ErrTextureReleased = errors.New("render: texture has been released")

	// ErrTextureSizeMismatch is returned when pixel data does not match
	// the texture dimensions.
	ErrTextureSizeMismatch = errors.New("render: pixel data size does not match texture")
)

// ResourceCreationError reports a failure to allocate a framebuffer or
// texture. It is fatal at startup: callers must not use the partially
// created resource and should abort before the main loop starts.
type ResourceCreationError struct {
	// Resource names what was being created ("eye target", "texture").
	Resource string

	// Label is the debug label of the resource.
	Label string

	// Err is the underlying cause.
	Err error
}

func (e *ResourceCreationError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("render: create %s %q: %v", e.Resource, e.Label, e.Err)
	}
	return fmt.Sprintf("render: create %s: %v", e.Resource, e.Err)
}

func (e *ResourceCreationError) Unwrap() error { return e.Err }

// ShaderCompileError reports a WGSL compilation failure. Rendering continues
// with the last successfully bound program.
type ShaderCompileError struct {
	Program string
	Log     string
	Err     error
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("render: compile program %q failed: %s", e.Program, e.Log)
}

func (e *ShaderCompileError) Unwrap() error { return e.Err }

// ShaderLinkError reports a program whose stages could not be linked
// (missing entry points or a rejected shader module). Rendering continues
// with the last successfully bound program.
type ShaderLinkError struct {
	Program string
	Log     string
	Err     error
}

func (e *ShaderLinkError) Error() string {
	return fmt.Sprintf("render: link program %q failed: %s", e.Program, e.Log)
}

func (e *ShaderLinkError) Unwrap() error { return e.Err }
