// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/hmdview"
	"github.com/gogpu/hmdview/pose"
)

// mouseLook is radians of head rotation per pixel of mouse movement.
const mouseLook = 0.003

// runWindow shows the viewer output in a window until ESC, window close
// or ctx is canceled.
func runWindow(ctx context.Context, v *hmdview.Viewer, tracker *pose.HeadTracker, cfg hmdview.Config) error {
	g := &host{ctx: ctx, v: v, tracker: tracker}
	ebiten.SetWindowTitle("hmdview")
	ebiten.SetWindowSize(cfg.Window.Width/2, cfg.Window.Height/2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type host struct {
	ctx     context.Context
	v       *hmdview.Viewer
	tracker *pose.HeadTracker

	img          *ebiten.Image
	lastX, lastY int
	tracking     bool
}

func (h *host) Update() error {
	if h.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		h.v.ResetPose()
	}

	x, y := ebiten.CursorPosition()
	if h.tracking {
		h.tracker.Rotate(-float32(x-h.lastX)*mouseLook, -float32(y-h.lastY)*mouseLook)
	}
	h.lastX, h.lastY, h.tracking = x, y, true

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		h.v.Click()
	}
	if inpututil.IsKeyJustReleased(ebiten.KeySpace) {
		h.v.ClickRelease()
	}

	// Frame logs its own errors; a degraded frame is still presented.
	_ = h.v.Frame()
	return nil
}

func (h *host) Draw(screen *ebiten.Image) {
	out := h.v.Output()
	front := out.Front()
	if front == nil {
		return
	}
	if h.img == nil || h.img.Bounds() != front.Bounds() {
		if h.img != nil {
			h.img.Deallocate()
		}
		h.img = ebiten.NewImage(out.Width(), out.Height())
	}
	h.img.WritePixels(front.Pix)
	screen.DrawImage(h.img, nil)
}

func (h *host) Layout(_, _ int) (int, int) {
	out := h.v.Output()
	return out.Width(), out.Height()
}
