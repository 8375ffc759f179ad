// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hmdview

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/hmdview/pose"
	"github.com/gogpu/hmdview/render"
	"github.com/gogpu/hmdview/ui"
	"github.com/gogpu/hmdview/video"
)

// Viewer renders a video player's frames on a virtual screen with a
// head-pointer control panel, in side-by-side stereo.
//
// Viewer is NOT safe for concurrent use; call it from the render thread.
type Viewer struct {
	cfg     Config
	dev     *render.Device
	output  *render.OutputSurface
	ctx     *render.Context
	comp    *render.Compositor
	program *render.ProgramSet
	left    *render.EyeTarget
	right   *render.EyeTarget
	arena   *render.TextureArena

	sampler pose.Sampler
	player  video.Player

	panel      *ui.Surface
	screenSurf *ui.Surface
	screen     *ui.Widget
	controls   Controls
	controller *PlayerController

	ray    pose.Ray
	closed bool
}

// NewViewer creates the eye targets, programs and surfaces for player.
// Failing to create an eye target or the output surface is fatal; program
// build failures are logged and rendering continues with degraded output.
func NewViewer(player video.Player, opts ...ViewerOption) (*Viewer, error) {
	o := defaultViewerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	cfg := o.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if o.device == nil {
		o.device = render.CPUDevice()
	}
	if o.sampler == nil {
		o.sampler = pose.NewHeadTracker(cfg.HeadOptions()...)
	}

	v := &Viewer{
		cfg:     cfg,
		dev:     o.device,
		sampler: o.sampler,
		player:  player,
	}

	var err error
	if v.output, err = render.NewOutputSurface(cfg.Window.Width, cfg.Window.Height); err != nil {
		return nil, fmt.Errorf("hmdview: output surface: %w", err)
	}
	if v.left, err = render.CreateEyeTarget(v.dev, render.EyeLeft, cfg.Eye.Width, cfg.Eye.Height); err != nil {
		return nil, err
	}
	if v.right, err = render.CreateEyeTarget(v.dev, render.EyeRight, cfg.Eye.Width, cfg.Eye.Height); err != nil {
		v.left.Destroy()
		return nil, err
	}

	// Program failures are already logged and leave the previous program bound.
	v.program, _ = render.LoadPrograms(v.dev, o.programs)

	v.ctx = render.NewContext(v.dev, v.output)
	v.comp = render.NewCompositor(v.ctx,
		render.WithClearColor(o.clearColor),
		render.WithPrograms(v.program),
	)
	v.arena = render.NewTextureArena(v.dev)

	if err := v.buildSurfaces(); err != nil {
		v.Close()
		return nil, err
	}

	Logger().Info("hmdview: viewer ready",
		"window", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height),
		"eye", fmt.Sprintf("%dx%d", cfg.Eye.Width, cfg.Eye.Height),
		"gpu", v.dev.HasGPU())
	return v, nil
}

func (v *Viewer) buildSurfaces() error {
	cfg := v.cfg
	pointer, err := cfg.Pointer.RGBA()
	if err != nil {
		return err
	}

	v.panel = ui.NewSurface("panel",
		mgl32.Vec3{cfg.Panel.X, cfg.Panel.Y, cfg.Panel.Z}, cfg.Panel.Width, cfg.Panel.Height,
		ui.WithTextureArena(v.arena),
		ui.WithPointer(pointer, cfg.Pointer.Size),
	)
	v.screenSurf = ui.NewSurface("screen",
		mgl32.Vec3{cfg.Screen.X, cfg.Screen.Y, cfg.Screen.Z}, cfg.Screen.Width, cfg.Screen.Height,
		ui.WithTextureArena(v.arena),
	)

	// Panel layout in panel units (0.4 x 0.1 by default).
	v.controls = Controls{
		Play:        ui.NewButton("play", ui.R(0.02, 0.02, 0.05, 0.05), loadIcon(cfg.Icons.Play, ui.IconPlay)),
		Pause:       ui.NewButton("pause", ui.R(0.02, 0.02, 0.05, 0.05), loadIcon(cfg.Icons.Pause, ui.IconPause)),
		Slider:      ui.NewSlider("position", ui.R(0.05, 0.09, 0.3, 0.01)),
		CurrentTime: ui.NewLabel("time", 0.01, 0.085, 14, ""),
		Length:      ui.NewLabel("length", 0.355, 0.085, 14, ""),
		ZoomIn:      ui.NewButton("zoom-in", ui.R(0.34, 0.02, 0.02, 0.02), loadIcon(cfg.Icons.ZoomIn, ui.IconZoomIn)),
		ZoomOut:     ui.NewButton("zoom-out", ui.R(0.365, 0.02, 0.02, 0.02), loadIcon(cfg.Icons.ZoomOut, ui.IconZoomOut)),
	}
	c := v.controls
	for _, w := range []*ui.Widget{c.Play, c.Pause, c.Slider, c.CurrentTime, c.Length, c.ZoomIn, c.ZoomOut} {
		if err := v.panel.Add(w); err != nil {
			return err
		}
	}

	v.screen = ui.NewScreen("video", ui.R(0, 0, cfg.Screen.Width, cfg.Screen.Height), v.player.Frame())
	if err := v.screenSurf.Add(v.screen); err != nil {
		return err
	}

	v.controller = NewPlayerController(v.player, v.controls, v.screenSurf)
	v.panel.SetController(v.controller)
	return nil
}

// loadIcon reads the icon at path, falling back to the built-in icon.
func loadIcon(path string, fallback ui.Icon) image.Image {
	if path != "" {
		img, err := ui.LoadIcon(path, ui.IconSize)
		if err == nil {
			return img
		}
		Logger().Warn("hmdview: icon unavailable, using built-in", "path", path, "err", err)
	}
	return fallback.Image(ui.IconSize)
}

// Frame runs one output frame: apply player notifications, sample the
// pose, update pointer focus, upload the newest video frame, render both
// eyes and present. Errors are per-frame and non-fatal; the next Frame
// proceeds normally.
func (v *Viewer) Frame() error {
	if v.closed {
		return ErrViewerClosed
	}
	v.controller.Sync()

	sample := v.sampler.Sample()
	v.ray = sample.Ray
	v.panel.PointerFocus(v.ray)
	v.screenSurf.PointerFocus(v.ray)

	var errs []error
	if err := v.screen.UpdateTexture(); err != nil {
		errs = append(errs, fmt.Errorf("hmdview: screen upload: %w", err))
	}
	v.syncAspect()

	if err := v.comp.Frame(v.left, v.right, sample, v.drawScene); err != nil {
		errs = append(errs, err)
	}
	err := errors.Join(errs...)
	if err != nil {
		Logger().Warn("hmdview: frame degraded", "frame", v.comp.Frames(), "err", err)
	}
	return err
}

// syncAspect resizes the screen surface to the video's aspect ratio and
// keeps it centered on the view axis.
func (v *Viewer) syncAspect() {
	frame := v.screen.FrameSurface()
	if frame == nil {
		return
	}
	ar := frame.AspectRatio()
	if ar <= 0 {
		return
	}
	width := v.cfg.Screen.Width
	v.screenSurf.SetSize(width, width/ar)
	v.screen.SetAspectAdjustedSize(ar)
	_, _, z := v.screenSurf.Position()
	v.screenSurf.SetPosition(-width/2, -width/ar/2, z)
}

func (v *Viewer) drawScene(ctx *render.Context, _ render.Eye) {
	v.panel.Draw(ctx)
	v.screenSurf.Draw(ctx)
	v.panel.DrawPointer(ctx, v.ray)
}

// Click presses on the panel widget under the pointer.
func (v *Viewer) Click() {
	if !v.closed {
		v.panel.Click()
	}
}

// ClickRelease ends a click started by Click.
func (v *Viewer) ClickRelease() {
	if !v.closed {
		v.panel.ClickRelease()
	}
}

// ResetPose zeroes the head orientation and position.
func (v *Viewer) ResetPose() {
	v.sampler.Reset()
}

// Output returns the presented output surface.
func (v *Viewer) Output() *render.OutputSurface { return v.output }

// Panel returns the control panel surface.
func (v *Viewer) Panel() *ui.Surface { return v.panel }

// ScreenSurface returns the surface holding the video screen.
func (v *Viewer) ScreenSurface() *ui.Surface { return v.screenSurf }

// Controls returns the panel widgets.
func (v *Viewer) Controls() Controls { return v.controls }

// Controller returns the playback controller.
func (v *Viewer) Controller() *PlayerController { return v.controller }

// Sampler returns the pose source.
func (v *Viewer) Sampler() pose.Sampler { return v.sampler }

// Eyes returns the left and right eye targets.
func (v *Viewer) Eyes() (left, right *render.EyeTarget) { return v.left, v.right }

// Close releases surfaces, textures, programs and eye targets. The player
// is not closed. Close is idempotent.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	if v.controller != nil {
		v.controller.Close()
	}
	if v.panel != nil {
		v.panel.Close()
	}
	if v.screenSurf != nil {
		v.screenSurf.Close()
	}
	v.arena.Close()
	if v.program != nil {
		v.program.Destroy()
	}
	v.left.Destroy()
	v.right.Destroy()
	Logger().Info("hmdview: viewer closed", "frames", v.comp.Frames())
}
