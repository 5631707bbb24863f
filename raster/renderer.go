package raster

import (
	"image"

	"github.com/chewxy/math32"
)

// Renderer rasterizes indexed triangle lists.
//
// Create it once and reuse it; it holds no per-frame allocations.
type Renderer struct {
	Mode RenderMode

	// Viewport is in target pixels with the origin at the bottom-left, as in
	// glViewport. An empty viewport covers the whole target.
	Viewport image.Rectangle
}

func NewRenderer() *Renderer {
	return &Renderer{Mode: RenderSolid}
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

type screenPoint struct {
	X, Y float32
}

// DrawIndexed draws pos[idx[i]], pos[idx[i+1]], pos[idx[i+2]] for each
// complete triple and returns how many triangles were drawn. Triples that
// reference missing vertices are skipped.
func (r *Renderer) DrawIndexed(t Target, pos [][3]float32, idx []uint32, c Color) int {
	if r == nil || t == nil {
		return 0
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return 0
	}
	vp := r.Viewport
	if vp.Empty() {
		vp = image.Rect(0, 0, w, h)
	}

	drawn := 0
	for i := 0; i+2 < len(idx); i += 3 {
		i0, i1, i2 := int(idx[i+0]), int(idx[i+1]), int(idx[i+2])
		if i0 >= len(pos) || i1 >= len(pos) || i2 >= len(pos) {
			continue
		}
		p0 := ndcToScreen(pos[i0], vp, h)
		p1 := ndcToScreen(pos[i1], vp, h)
		p2 := ndcToScreen(pos[i2], vp, h)

		switch r.Mode {
		case RenderWireframe:
			r.drawLine(t, p0, p1, c)
			r.drawLine(t, p1, p2, c)
			r.drawLine(t, p2, p0, c)
		default:
			r.fillTriangle(t, w, h, p0, p1, p2, c)
		}
		drawn++
	}
	return drawn
}

// ndcToScreen maps NDC through the viewport into top-down target pixels.
func ndcToScreen(p [3]float32, vp image.Rectangle, h int) screenPoint {
	x := float32(vp.Min.X) + (p[0]*0.5+0.5)*float32(vp.Dx())
	up := float32(vp.Min.Y) + (p[1]*0.5+0.5)*float32(vp.Dy())
	return screenPoint{X: x, Y: float32(h) - up}
}

// Project maps an NDC position to top-down pixel coordinates on a target of
// height h, through the bottom-left-origin viewport vp.
func Project(p [3]float32, vp image.Rectangle, h int) (x, y float32) {
	s := ndcToScreen(p, vp, h)
	return s.X, s.Y
}

// ScreenToNDC is the inverse of the viewport mapping for the pixel center at
// (x, y), with y growing downwards. Tests use it to probe coverage.
func ScreenToNDC(x, y int, vp image.Rectangle, h int) (float32, float32) {
	cx := float32(x) + 0.5
	cy := float32(h) - (float32(y) + 0.5)
	nx := (cx-float32(vp.Min.X))/float32(vp.Dx())*2 - 1
	ny := (cy-float32(vp.Min.Y))/float32(vp.Dy())*2 - 1
	return nx, ny
}

func (r *Renderer) fillTriangle(t Target, w, h int, p0, p1, p2 screenPoint, c Color) {
	area := edgeFn(p0, p1, p2)
	if area == 0 {
		return
	}

	minX := int(math32.Floor(min3(p0.X, p1.X, p2.X)))
	maxX := int(math32.Ceil(max3(p0.X, p1.X, p2.X)))
	minY := int(math32.Floor(min3(p0.Y, p1.Y, p2.Y)))
	maxY := int(math32.Ceil(max3(p0.Y, p1.Y, p2.Y)))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := screenPoint{X: float32(x) + 0.5, Y: float32(y) + 0.5}
			w0 := edgeFn(p1, p2, p)
			w1 := edgeFn(p2, p0, p)
			w2 := edgeFn(p0, p1, p)
			// Same sign as the area means inside, whichever the winding.
			if w0*area < 0 || w1*area < 0 || w2*area < 0 {
				continue
			}
			t.SetPixel(x, y, c)
		}
	}
}

func (r *Renderer) drawLine(t Target, a, b screenPoint, c Color) {
	x0, y0 := int(math32.Floor(a.X)), int(math32.Floor(a.Y))
	x1, y1 := int(math32.Floor(b.X)), int(math32.Floor(b.Y))

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func edgeFn(a, b, p screenPoint) float32 {
	return (p.X-a.X)*(b.Y-a.Y) - (p.Y-a.Y)*(b.X-a.X)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c float32) float32 {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c float32) float32 {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
