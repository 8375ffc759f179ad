// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command hmdview plays a generated test video on a virtual screen in
// side-by-side stereo, with a head-pointer control panel.
//
// In a window, the mouse turns the head, SPACE clicks the widget under the
// pointer, F1 toggles fullscreen, F2 resets the pose and ESC quits. With
// -frames it renders headless and writes the last output frame as a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/hmdview"
	"github.com/gogpu/hmdview/pose"
	"github.com/gogpu/hmdview/video"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file (defaults if empty)")
		frames     = flag.Int("frames", 0, "render this many frames headless and exit")
		output     = flag.String("output", "hmdview.png", "output file for headless mode")
		pattern    = flag.String("pattern", "bars", "test video pattern: bars or solid")
		length     = flag.Duration("length", 2*time.Minute, "test video length")
		fps        = flag.Float64("fps", 30, "test video frame rate")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	hmdview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath, *frames, *output, *pattern, *length, *fps); err != nil {
		hmdview.Logger().Error("hmdview: fatal", "err", err)
		os.Exit(1)
	}
}

func run(configPath string, frames int, output, pattern string, length time.Duration, fps float64) error {
	cfg := hmdview.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = hmdview.LoadConfig(configPath); err != nil {
			return err
		}
	}

	fn := video.ColorBars
	switch pattern {
	case "bars":
	case "solid":
		fn = video.Solid(32, 96, 160)
	default:
		return fmt.Errorf("unknown pattern %q", pattern)
	}
	player, err := video.NewPatternPlayer(
		video.WithPattern(fn),
		video.WithLength(length),
		video.WithFrameRate(fps),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := player.Close(); err != nil {
			hmdview.Logger().Warn("hmdview: player close", "err", err)
		}
	}()

	tracker := pose.NewHeadTracker(cfg.HeadOptions()...)
	viewer, err := hmdview.NewViewer(player,
		hmdview.WithConfig(cfg),
		hmdview.WithSampler(tracker),
	)
	if err != nil {
		return err
	}
	defer viewer.Close()

	if frames > 0 {
		return headless(viewer, player, frames, fps, output)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := player.Start(ctx); err != nil {
		return err
	}
	if err := player.Play(); err != nil {
		return err
	}
	return runWindow(ctx, viewer, tracker, cfg)
}

// headless steps playback deterministically and saves the last frame.
func headless(v *hmdview.Viewer, p *video.PatternPlayer, frames int, fps float64, output string) error {
	if err := p.Play(); err != nil {
		return err
	}
	step := time.Duration(float64(time.Second) / fps)
	for i := 0; i < frames; i++ {
		if i > 0 {
			p.Advance(step)
		}
		// Per-frame errors are logged by the viewer and never stop the loop.
		_ = v.Frame()
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, v.Output().Front()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Rendered %d frames to %s (%dx%d)\n", frames, output,
		v.Output().Width(), v.Output().Height())
	return nil
}
