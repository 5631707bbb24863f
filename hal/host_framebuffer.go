package hal

import (
	"image"
	"sync"

	"sierpinski/raster"
)

// hostFramebuffer is a double-buffered RGBA surface. Drawing goes to the back
// buffer; present copies it to the front buffer, which snapshots read.
type hostFramebuffer struct {
	mu    sync.Mutex
	back  *image.RGBA
	front *image.RGBA
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	r := image.Rect(0, 0, width, height)
	return &hostFramebuffer{
		back:  image.NewRGBA(r),
		front: image.NewRGBA(r),
	}
}

func (f *hostFramebuffer) target() raster.Target { return raster.RGBATarget{Img: f.back} }

func (f *hostFramebuffer) present() {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front.Pix, f.back.Pix)
}

func (f *hostFramebuffer) snapshot() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	dst := image.NewRGBA(f.front.Bounds())
	copy(dst.Pix, f.front.Pix)
	return dst
}
