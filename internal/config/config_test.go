package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sierpinski/geometry"
	"sierpinski/hal"
	"sierpinski/render"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sierpinski.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 800, c.Width)
	assert.Equal(t, 800, c.Height)
	assert.Equal(t, geometry.Offset{X: 0.2, Y: -0.7}, c.Offset())
	assert.Equal(t, render.Background, c.Render().Background)
	assert.Equal(t, BackendGL, c.Backend)
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
backend = "headless"
width = 320
offset_x = 0.0
background = [0.0, 0.5, 1.0, 1.0]
frames = 4
snapshot = "out/frame.png"
supersample = 2
`)
	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 320, c.Width)
	assert.Equal(t, 800, c.Height, "missing keys keep defaults")
	assert.Equal(t, float32(0), c.OffsetX)
	assert.Equal(t, float32(-0.7), c.OffsetY)
	assert.Equal(t, hal.Color{R: 0, G: 0.5, B: 1, A: 1}, c.Render().Background)
	assert.Equal(t, hal.HeadlessConfig{Hz: 60, Frames: 4, Supersample: 2}, c.Headless())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, `colour = "red"`))
	assert.ErrorContains(t, err, "colour")

	_, err = Load(writeFile(t, `width = "wide"`))
	assert.Error(t, err)
}

func parse(t *testing.T, args ...string) (*flag.FlagSet, *Flags) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var f Flags
	f.Register(fs)
	require.NoError(t, fs.Parse(args))
	return fs, &f
}

func TestApplyOnlySetFlags(t *testing.T) {
	c, err := Load(writeFile(t, `
title = "from file"
width = 640
`))
	require.NoError(t, err)

	fs, f := parse(t, "-width", "1024", "-offset-y", "0.5", "-vsync=false")
	c.Apply(fs, f)

	assert.Equal(t, 1024, c.Width, "flag wins over file")
	assert.Equal(t, "from file", c.Title, "unset flag keeps file value")
	assert.Equal(t, float32(0.5), c.OffsetY)
	assert.Equal(t, float32(0.2), c.OffsetX)
	assert.False(t, c.VSync)
}

func TestApplyHeadlessFlags(t *testing.T) {
	c := Default()
	fs, f := parse(t,
		"-backend", "headless",
		"-frames", "2",
		"-hz", "0",
		"-snapshot", "frame.webp",
		"-supersample", "4",
		"-caption", "hello",
		"-prime-frame",
		"-wireframe",
		"-quiet",
	)
	c.Apply(fs, f)
	require.NoError(t, c.Validate())
	assert.Equal(t, hal.HeadlessConfig{Hz: 0, Frames: 2, Supersample: 4}, c.Headless())
	assert.Equal(t, "frame.webp", c.Snapshot)
	assert.Equal(t, "hello", c.Caption)
	assert.True(t, c.Render().PrimeFrame)
	assert.True(t, c.Render().Wireframe)
	assert.True(t, c.Quiet)
}

func TestValidateSupersampleLimit(t *testing.T) {
	c := Default()
	c.Backend = BackendHeadless
	c.Width, c.Height, c.Supersample = 2048, 2048, 8
	assert.NoError(t, c.Validate())
	c.Width = 2049
	assert.Error(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"huge height", func(c *Config) { c.Height = 1 << 20 }},
		{"unknown backend", func(c *Config) { c.Backend = "vulkan" }},
		{"background range", func(c *Config) { c.Background[1] = 1.5 }},
		{"negative hz", func(c *Config) { c.Backend = BackendHeadless; c.Hz = -1 }},
		{"supersample", func(c *Config) { c.Backend = BackendHeadless; c.Supersample = 0 }},
		{"snapshot on gl", func(c *Config) { c.Snapshot = "a.png" }},
		{"frames on ebiten", func(c *Config) { c.Backend = BackendEbiten; c.Frames = 3 }},
		{"snapshot ext", func(c *Config) { c.Backend = BackendHeadless; c.Snapshot = "a.jpg" }},
		{"caption alone", func(c *Config) { c.Backend = BackendHeadless; c.Caption = "x" }},
		{"supersampled too large", func(c *Config) { c.Backend = BackendHeadless; c.Width = 16384; c.Supersample = 8 }},
		{"supersampled height", func(c *Config) { c.Backend = BackendHeadless; c.Height = 4097; c.Supersample = 4 }},
		{"ebiten wireframe", func(c *Config) { c.Backend = BackendEbiten; c.Wireframe = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.edit(&c)
			assert.Error(t, c.Validate())
		})
	}
}
