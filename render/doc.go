// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render implements the stereo rendering pipeline of hmdview.
//
// The pipeline draws the scene twice per frame, once per eye, into
// offscreen eye targets, then composites both side by side into the
// window-sized output surface and presents it.
//
// # Key Principle
//
// render RECEIVES a GPU device from the host application, it does NOT create
// its own. Pixels are produced on the CPU and mirrored into HAL textures when
// a device is present, so the same code path runs headless, in tests, and
// inside a windowed host.
//
// # Core Types
//
//   - Device: wraps a DeviceHandle (or nothing, for CPU-only rendering)
//   - EyeTarget: color + depth offscreen framebuffer for one eye
//   - Texture / TextureArena: sampled images, one per widget ID
//   - Program / ProgramSet: the composite and widget shader programs
//   - Context: pipeline state (binding, viewport, matrices, program, depth, blend)
//   - OutputSurface: triple-buffered default framebuffer with atomic Present
//   - Compositor: RenderEye, CompositeEyes, Frame
//
// # Usage
//
//	dev := render.CPUDevice()
//	out, _ := render.NewOutputSurface(2160, 1200)
//	left, _ := render.CreateEyeTarget(dev, render.EyeLeft, 2160, 2400)
//	right, _ := render.CreateEyeTarget(dev, render.EyeRight, 2160, 2400)
//	programs, _ := render.LoadPrograms(dev, render.ProgramSources{})
//
//	comp := render.NewCompositor(render.NewContext(dev, out), render.WithPrograms(programs))
//	err := comp.Frame(left, right, sample, func(ctx *render.Context, eye render.Eye) {
//	    ctx.DrawQuad(render.Quad{Min: mgl32.Vec2{-1, -1}, Max: mgl32.Vec2{1, 1}, Z: -2})
//	})
//	img := out.Front()
//
// # Coordinate Conventions
//
// World space is right-handed with Y up and the viewer looking down -Z.
// NDC y = +1 maps to the top row of the bound framebuffer. Depth maps from
// NDC [-1, 1] to [0, 1] and is tested with LESS against a buffer cleared to 1.
//
// # Thread Safety
//
// Context, Compositor, EyeTarget and Texture are NOT thread-safe and belong
// to the render thread. OutputSurface.Front may be called from any goroutine.
package render
