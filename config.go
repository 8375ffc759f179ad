// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hmdview

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/hmdview/pose"
)

// Config describes the viewer setup. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	Window  SizeConfig    `toml:"window"`
	Eye     SizeConfig    `toml:"eye"`
	Panel   SurfaceConfig `toml:"panel"`
	Screen  SurfaceConfig `toml:"screen"`
	Head    HeadConfig    `toml:"head"`
	Pointer PointerConfig `toml:"pointer"`
	Icons   IconConfig    `toml:"icons"`
}

// SizeConfig is a pixel size.
type SizeConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// SurfaceConfig places an interaction surface: its bottom-left corner in
// world space and its size in world units.
type SurfaceConfig struct {
	X      float32 `toml:"x"`
	Y      float32 `toml:"y"`
	Z      float32 `toml:"z"`
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// HeadConfig holds the head tracker optics.
type HeadConfig struct {
	IPD  float32 `toml:"ipd"`
	FOV  float32 `toml:"fov"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
}

// PointerConfig styles the pointer marker. Color is "#rrggbb" or
// "#rrggbbaa".
type PointerConfig struct {
	Color string  `toml:"color"`
	Size  float32 `toml:"size"`
}

// IconConfig holds optional icon image paths. Empty paths use the
// built-in icons.
type IconConfig struct {
	Play    string `toml:"play"`
	Pause   string `toml:"pause"`
	ZoomIn  string `toml:"zoom_in"`
	ZoomOut string `toml:"zoom_out"`
}

// DefaultConfig returns the stock viewer layout: a 2160x1200 window,
// 2160x2400 eye targets, the control panel just below eye level and the
// video screen two units ahead.
func DefaultConfig() Config {
	return Config{
		Window: SizeConfig{Width: 2160, Height: 1200},
		Eye:    SizeConfig{Width: 2160, Height: 2400},
		Panel:  SurfaceConfig{X: -0.2, Y: -0.2, Z: -0.4, Width: 0.4, Height: 0.1},
		Screen: SurfaceConfig{X: -0.5, Y: -0.5, Z: -2, Width: 1, Height: 1},
		Head: HeadConfig{
			IPD:  pose.DefaultIPD,
			FOV:  pose.DefaultFOV,
			Near: pose.DefaultNear,
			Far:  pose.DefaultFar,
		},
		Pointer: PointerConfig{Color: "#ff4040", Size: 0.004},
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Keys missing from the
// file keep their defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("hmdview: read config: %w", err)
	}
	cfg, err := ParseConfig(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML from r over DefaultConfig and validates it.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("hmdview: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Eye.Width <= 0 || c.Eye.Height <= 0:
		return fmt.Errorf("%w: eye %dx%d", ErrInvalidConfig, c.Eye.Width, c.Eye.Height)
	case c.Panel.Width <= 0 || c.Panel.Height <= 0:
		return fmt.Errorf("%w: panel size %gx%g", ErrInvalidConfig, c.Panel.Width, c.Panel.Height)
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size %gx%g", ErrInvalidConfig, c.Screen.Width, c.Screen.Height)
	case c.Head.FOV <= 0 || c.Head.FOV >= 180:
		return fmt.Errorf("%w: fov %g", ErrInvalidConfig, c.Head.FOV)
	case c.Head.Near <= 0 || c.Head.Far <= c.Head.Near:
		return fmt.Errorf("%w: clip planes %g..%g", ErrInvalidConfig, c.Head.Near, c.Head.Far)
	case c.Head.IPD < 0:
		return fmt.Errorf("%w: ipd %g", ErrInvalidConfig, c.Head.IPD)
	}
	if _, err := c.Pointer.RGBA(); err != nil {
		return err
	}
	return nil
}

// HeadOptions converts the head settings into tracker options. The aspect
// ratio comes from the eye target size.
func (c Config) HeadOptions() []pose.HeadOption {
	return []pose.HeadOption{
		pose.WithIPD(c.Head.IPD),
		pose.WithFOV(c.Head.FOV),
		pose.WithAspect(float32(c.Eye.Width) / float32(c.Eye.Height)),
		pose.WithClipPlanes(c.Head.Near, c.Head.Far),
	}
}

// RGBA parses the pointer color.
func (p PointerConfig) RGBA() (color.RGBA, error) {
	s := strings.TrimPrefix(p.Color, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: pointer color %q", ErrInvalidConfig, p.Color)
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: pointer color %q", ErrInvalidConfig, p.Color)
	}
	return color.RGBA{
		R: uint8(v >> 24), //nolint:gosec // masked by the shift width
		G: uint8(v >> 16), //nolint:gosec // truncation intended
		B: uint8(v >> 8),  //nolint:gosec // truncation intended
		A: uint8(v),       //nolint:gosec // truncation intended
	}, nil
}
