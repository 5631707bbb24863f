package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"sierpinski/geometry"
	"sierpinski/hal"
	"sierpinski/internal/snapshot"
	"sierpinski/render"
)

// Backends accepted by Config.Backend.
const (
	BackendGL       = "gl"
	BackendEbiten   = "ebiten"
	BackendHeadless = "headless"
)

// maxSide bounds a window or headless framebuffer edge.
const maxSide = 16384

// Config holds the window, geometry and backend settings.
type Config struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`

	OffsetX    float32    `toml:"offset_x"`
	OffsetY    float32    `toml:"offset_y"`
	Background [4]float32 `toml:"background"`

	Backend    string `toml:"backend"`
	VSync      bool   `toml:"vsync"`
	PrimeFrame bool   `toml:"prime_frame"`
	Wireframe  bool   `toml:"wireframe"`
	Quiet      bool   `toml:"quiet"`

	// Headless only.
	Hz          int    `toml:"hz"`
	Frames      uint64 `toml:"frames"`
	Snapshot    string `toml:"snapshot"`
	Supersample int    `toml:"supersample"`
	Caption     string `toml:"caption"`
}

// Default returns the reference setup: an 800x800 GLFW window with the mesh
// offset by (0.2, -0.7).
func Default() Config {
	bg := render.Background
	return Config{
		Width:       800,
		Height:      800,
		Title:       "Sierpinski",
		OffsetX:     0.2,
		OffsetY:     -0.7,
		Background:  [4]float32{bg.R, bg.G, bg.B, bg.A},
		Backend:     BackendGL,
		VSync:       true,
		Hz:          60,
		Supersample: 1,
	}
}

// Load reads a TOML config file on top of Default. Keys missing from the
// file keep their default; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: parse %s: %s", path, strict.String())
		}
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Width > maxSide || c.Height > maxSide {
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	}
	switch c.Backend {
	case BackendGL, BackendEbiten, BackendHeadless:
	default:
		return fmt.Errorf("config: unknown backend %q (want %s, %s or %s)", c.Backend, BackendGL, BackendEbiten, BackendHeadless)
	}
	for i, v := range c.Background {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: background[%d] = %g out of range 0..1", i, v)
		}
	}
	if c.Hz < 0 {
		return fmt.Errorf("config: invalid hz: %d", c.Hz)
	}
	if c.Supersample < 1 || c.Supersample > 8 {
		return fmt.Errorf("config: supersample must be 1..8, got %d", c.Supersample)
	}
	if c.Width*c.Supersample > maxSide || c.Height*c.Supersample > maxSide {
		return fmt.Errorf("config: %dx%d at supersample %d exceeds %d pixels per side", c.Width, c.Height, c.Supersample, maxSide)
	}
	if c.Wireframe && c.Backend == BackendEbiten {
		return fmt.Errorf("config: wireframe on %s: %w", c.Backend, hal.ErrNotImplemented)
	}
	if c.Backend != BackendHeadless {
		if c.Snapshot != "" || c.Caption != "" || c.Frames != 0 || c.Supersample != 1 {
			return fmt.Errorf("config: snapshot, caption, frames and supersample need the %s backend", BackendHeadless)
		}
	}
	if c.Snapshot != "" {
		if _, err := snapshot.FormatOf(c.Snapshot); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if c.Caption != "" && c.Snapshot == "" {
		return errors.New("config: caption needs a snapshot path")
	}
	return nil
}

// Offset is the mesh translation.
func (c Config) Offset() geometry.Offset {
	return geometry.Offset{X: c.OffsetX, Y: c.OffsetY}
}

// Render returns the driver settings.
func (c Config) Render() render.Config {
	bg := c.Background
	return render.Config{
		Width:      c.Width,
		Height:     c.Height,
		Title:      c.Title,
		Background: hal.Color{R: bg[0], G: bg[1], B: bg[2], A: bg[3]},
		PrimeFrame: c.PrimeFrame,
		Wireframe:  c.Wireframe,
	}
}

// Headless returns the software backend settings.
func (c Config) Headless() hal.HeadlessConfig {
	return hal.HeadlessConfig{Hz: c.Hz, Frames: c.Frames, Supersample: c.Supersample}
}

// Flags holds CLI values that override the config file.
type Flags struct {
	Config string

	Width, Height    int
	Title            string
	OffsetX, OffsetY float64
	Backend          string
	VSync            bool
	PrimeFrame       bool
	Wireframe        bool
	Quiet            bool
	Hz               int
	Frames           uint64
	Snapshot         string
	Supersample      int
	Caption          string
}

// Register defines the flags on fs, with defaults taken from Default.
func (f *Flags) Register(fs *flag.FlagSet) {
	d := Default()
	fs.StringVar(&f.Config, "config", "", "TOML config file; flags override it.")
	fs.IntVar(&f.Width, "width", d.Width, "Window width.")
	fs.IntVar(&f.Height, "height", d.Height, "Window height.")
	fs.StringVar(&f.Title, "title", d.Title, "Window title.")
	fs.Float64Var(&f.OffsetX, "offset-x", float64(d.OffsetX), "Horizontal mesh offset in NDC.")
	fs.Float64Var(&f.OffsetY, "offset-y", float64(d.OffsetY), "Vertical mesh offset in NDC.")
	fs.StringVar(&f.Backend, "backend", d.Backend, "Backend: "+strings.Join([]string{BackendGL, BackendEbiten, BackendHeadless}, ", ")+".")
	fs.BoolVar(&f.VSync, "vsync", d.VSync, "Wait for vertical blank on swap.")
	fs.BoolVar(&f.PrimeFrame, "prime-frame", d.PrimeFrame, "Clear and present once before the loop.")
	fs.BoolVar(&f.Wireframe, "wireframe", d.Wireframe, "Draw triangle outlines only.")
	fs.BoolVar(&f.Quiet, "quiet", d.Quiet, "Disable logging.")
	fs.IntVar(&f.Hz, "hz", d.Hz, "Frame rate in headless mode (0 = unpaced).")
	fs.Uint64Var(&f.Frames, "frames", d.Frames, "Stop after N frames in headless mode (0 = until interrupted).")
	fs.StringVar(&f.Snapshot, "snapshot", d.Snapshot, "Write the last headless frame to this .png, .webp, .tga or .bmp file.")
	fs.IntVar(&f.Supersample, "supersample", d.Supersample, "Headless render scale, resolved down for the snapshot.")
	fs.StringVar(&f.Caption, "caption", d.Caption, "Text stamped onto the snapshot.")
}

// Apply copies the flags that were set on the command line into c.
func (c *Config) Apply(fs *flag.FlagSet, f *Flags) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			c.Width = f.Width
		case "height":
			c.Height = f.Height
		case "title":
			c.Title = f.Title
		case "offset-x":
			c.OffsetX = float32(f.OffsetX)
		case "offset-y":
			c.OffsetY = float32(f.OffsetY)
		case "backend":
			c.Backend = f.Backend
		case "vsync":
			c.VSync = f.VSync
		case "prime-frame":
			c.PrimeFrame = f.PrimeFrame
		case "wireframe":
			c.Wireframe = f.Wireframe
		case "quiet":
			c.Quiet = f.Quiet
		case "hz":
			c.Hz = f.Hz
		case "frames":
			c.Frames = f.Frames
		case "snapshot":
			c.Snapshot = f.Snapshot
		case "supersample":
			c.Supersample = f.Supersample
		case "caption":
			c.Caption = f.Caption
		}
	})
}
