package snapshot

import (
	"image"

	"golang.org/x/image/draw"
)

// Resolve scales a frame rendered at factor times the output size back down.
// CatmullRom approximates Lanczos and keeps triangle edges smooth.
func Resolve(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx()/factor, b.Dy()/factor
	if w == 0 || h == 0 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
