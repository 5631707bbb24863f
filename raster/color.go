package raster

import "image/color"

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// FromFloat converts 0..1 components, rounding to the nearest 8-bit value.
func FromFloat(r, g, b, a float32) Color {
	return Color{R: unit8(r), G: unit8(g), B: unit8(b), A: unit8(a)}
}

func (c Color) RGBA8() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

func unit8(v float32) uint8 {
	return uint8(clampF32(v, 0, 1)*255 + 0.5)
}
