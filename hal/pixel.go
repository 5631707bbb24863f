package hal

import (
	"image/color"

	"sierpinski/raster"
)

func rgba8(c Color) color.RGBA {
	return raster.FromFloat(c.R, c.G, c.B, c.A).RGBA8()
}

func rasterColor(c Color) raster.Color {
	return raster.FromFloat(c.R, c.G, c.B, c.A)
}
