// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hmdview

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, SizeConfig{Width: 2160, Height: 1200}, cfg.Window)
	assert.Equal(t, SizeConfig{Width: 2160, Height: 2400}, cfg.Eye)
	assert.Equal(t, SurfaceConfig{X: -0.2, Y: -0.2, Z: -0.4, Width: 0.4, Height: 0.1}, cfg.Panel)
	assert.Equal(t, SurfaceConfig{X: -0.5, Y: -0.5, Z: -2, Width: 1, Height: 1}, cfg.Screen)
	assert.Len(t, cfg.HeadOptions(), 4)
}

func TestParseConfigOverlaysDefaults(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`
[window]
width = 1280
height = 720

[screen]
z = -3.5

[pointer]
color = "#00ff0080"
`))
	require.NoError(t, err)
	assert.Equal(t, SizeConfig{Width: 1280, Height: 720}, cfg.Window)
	assert.Equal(t, float32(-3.5), cfg.Screen.Z)
	assert.Equal(t, float32(1), cfg.Screen.Width, "unset keys keep defaults")
	assert.Equal(t, DefaultConfig().Eye, cfg.Eye)

	c, err := cfg.Pointer.RGBA()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 255, A: 128}, c)
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	_, err := ParseConfig(strings.NewReader("[window]\nwidht = 10\n"))
	require.Error(t, err)
	var strict *toml.StrictMissingError
	assert.ErrorAs(t, err, &strict)
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"zero window", "[window]\nwidth = 0\n"},
		{"negative eye", "[eye]\nheight = -1\n"},
		{"flat panel", "[panel]\nheight = 0.0\n"},
		{"fov", "[head]\nfov = 180.0\n"},
		{"clip planes", "[head]\nnear = 5.0\nfar = 1.0\n"},
		{"ipd", "[head]\nipd = -0.1\n"},
		{"pointer color", "[pointer]\ncolor = \"red\"\n"},
		{"pointer hex", "[pointer]\ncolor = \"#gg0000\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(strings.NewReader(tt.toml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseConfigSyntaxError(t *testing.T) {
	_, err := ParseConfig(strings.NewReader("[window\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "default.toml")
	data, err := DefaultConfig().Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg, "marshal round trip")

	path = filepath.Join(dir, "ipd.toml")
	require.NoError(t, os.WriteFile(path, []byte("[head]\nipd = 0.07\n"), 0o600))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.07, cfg.Head.IPD, 1e-6)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
