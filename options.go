// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hmdview

import (
	"image/color"

	"github.com/gogpu/hmdview/pose"
	"github.com/gogpu/hmdview/render"
)

// ViewerOption configures a Viewer during creation.
//
// Example:
//
//	// Software rendering with the default layout
//	v, err := hmdview.NewViewer(player)
//
//	// GPU device and a config file
//	cfg, _ := hmdview.LoadConfig("hmdview.toml")
//	v, err := hmdview.NewViewer(player,
//	    hmdview.WithConfig(cfg),
//	    hmdview.WithDevice(render.NewDevice(provider)))
type ViewerOption func(*viewerOptions)

// viewerOptions holds optional configuration for Viewer creation.
type viewerOptions struct {
	config     Config
	device     *render.Device
	sampler    pose.Sampler
	programs   render.ProgramSources
	clearColor color.RGBA
}

// defaultViewerOptions returns the default viewer options.
func defaultViewerOptions() viewerOptions {
	return viewerOptions{
		config:     DefaultConfig(),
		clearColor: color.RGBA{A: 255},
	}
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) ViewerOption {
	return func(o *viewerOptions) {
		o.config = cfg
	}
}

// WithDevice sets the device eye targets and textures are created on.
// By default the viewer renders on the CPU only.
func WithDevice(dev *render.Device) ViewerOption {
	return func(o *viewerOptions) {
		o.device = dev
	}
}

// WithSampler sets the pose source. By default a HeadTracker configured
// from the Config head settings is used.
func WithSampler(s pose.Sampler) ViewerOption {
	return func(o *viewerOptions) {
		o.sampler = s
	}
}

// WithProgramSources overrides the WGSL of the composite and widget
// programs.
func WithProgramSources(src render.ProgramSources) ViewerOption {
	return func(o *viewerOptions) {
		o.programs = src
	}
}

// WithBackground sets the eye clear color.
func WithBackground(c color.RGBA) ViewerOption {
	return func(o *viewerOptions) {
		o.clearColor = c
	}
}
