// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hmdview

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/hmdview/ui"
	"github.com/gogpu/hmdview/video"
)

// Screen distance limits for zooming, in world units along -Z.
const (
	ZoomStep = 0.1
	ZoomNear = -0.5
	ZoomFar  = -10
)

// Controls are the panel widgets a PlayerController drives. Nil widgets
// are skipped.
type Controls struct {
	Play        *ui.Widget
	Pause       *ui.Widget
	ZoomIn      *ui.Widget
	ZoomOut     *ui.Widget
	Slider      *ui.Widget
	CurrentTime *ui.Widget
	Length      *ui.Widget
}

// PlayerController connects panel widgets to a video player.
//
// Widget events arrive on the render thread and call the player directly.
// Player notifications arrive on the player's goroutine; they are queued
// and applied to the widgets by Sync, which must run on the render thread.
type PlayerController struct {
	player   video.Player
	controls Controls
	screen   *ui.Surface

	unsubscribe func()

	mu      sync.Mutex
	pending []func()
	closed  bool

	// Render thread only.
	sliderLocked bool
}

var _ ui.Controller = (*PlayerController)(nil)

// NewPlayerController subscribes to p and shows the play or pause button
// according to its current state. screen is the surface moved by the zoom
// buttons and may be nil.
func NewPlayerController(p video.Player, controls Controls, screen *ui.Surface) *PlayerController {
	c := &PlayerController{
		player:   p,
		controls: controls,
		screen:   screen,
	}
	c.showPlaying(p.Playing())
	c.unsubscribe = p.Subscribe(video.Callbacks{
		OnPositionChanged: func(pos float32) { c.enqueue(func() { c.positionChanged(pos) }) },
		OnPlaying:         func() { c.enqueue(func() { c.showPlaying(true) }) },
		OnPaused:          func() { c.enqueue(func() { c.showPlaying(false) }) },
		OnTimeChanged:     func(t time.Duration) { c.enqueue(func() { setText(c.controls.CurrentTime, t) }) },
		OnLengthChanged:   func(d time.Duration) { c.enqueue(func() { setText(c.controls.Length, d) }) },
	})
	return c
}

func (c *PlayerController) enqueue(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.pending = append(c.pending, fn)
	}
}

// Sync applies queued player notifications in arrival order and returns
// how many were applied.
func (c *PlayerController) Sync() int {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// OnClick implements ui.Controller.
func (c *PlayerController) OnClick(w *ui.Widget) {
	var err error
	switch w {
	case nil:
		return
	case c.controls.Play:
		err = c.player.Play()
	case c.controls.Pause:
		err = c.player.Pause()
	case c.controls.ZoomIn:
		c.ZoomIn()
	case c.controls.ZoomOut:
		c.ZoomOut()
	}
	if err != nil {
		Logger().Warn("hmdview: player control failed", "widget", w.String(), "err", err)
	}
}

// OnValueChanged implements ui.Controller. Slider drags only move the
// slider; playback seeks when the drag ends.
func (c *PlayerController) OnValueChanged(w *ui.Widget, value float32) {
	if w == c.controls.Slider {
		Logger().Debug("hmdview: slider moved", "value", value)
	}
}

// OnLockChanged implements ui.Controller. While the slider is locked,
// position notifications do not move it; unlocking seeks to its value.
func (c *PlayerController) OnLockChanged(w *ui.Widget, locked bool) {
	if w == nil || w != c.controls.Slider {
		return
	}
	c.sliderLocked = locked
	if locked {
		return
	}
	if err := c.player.Seek(w.Value()); err != nil {
		Logger().Warn("hmdview: seek failed", "pos", w.Value(), "err", err)
	}
}

// SliderLocked reports whether the user is dragging the slider.
func (c *PlayerController) SliderLocked() bool { return c.sliderLocked }

// ZoomIn moves the screen one step toward the viewer.
func (c *PlayerController) ZoomIn() { c.zoom(ZoomStep) }

// ZoomOut moves the screen one step away from the viewer.
func (c *PlayerController) ZoomOut() { c.zoom(-ZoomStep) }

func (c *PlayerController) zoom(dz float32) {
	if c.screen == nil {
		return
	}
	x, y, z := c.screen.Position()
	z = min(max(z+dz, ZoomFar), ZoomNear)
	c.screen.SetPosition(x, y, z)
}

func (c *PlayerController) positionChanged(pos float32) {
	if c.sliderLocked || c.controls.Slider == nil {
		return
	}
	c.controls.Slider.SetValue(pos)
}

func (c *PlayerController) showPlaying(playing bool) {
	if c.controls.Play != nil {
		c.controls.Play.SetVisible(!playing)
	}
	if c.controls.Pause != nil {
		c.controls.Pause.SetVisible(playing)
	}
}

func setText(w *ui.Widget, d time.Duration) {
	if w != nil {
		w.SetText(FormatTime(d))
	}
}

// Close unsubscribes from the player and drops queued notifications.
// Close is idempotent.
func (c *PlayerController) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.pending = nil
	c.mu.Unlock()

	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// FormatTime formats d as H:MM:SS when it is an hour or longer and MM:SS
// otherwise. Negative durations format as zero.
func FormatTime(d time.Duration) string {
	s := int64(max(d, 0) / time.Second)
	h, m, sec := s/3600, s/60%60, s%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}
