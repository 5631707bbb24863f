package raster

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bg   = RGB(18, 33, 43)
	fill = RGB(204, 77, 5)
)

func newTarget(w, h int) RGBATarget {
	t := RGBATarget{Img: image.NewRGBA(image.Rect(0, 0, w, h))}
	t.Clear(bg)
	return t
}

func at(t RGBATarget, x, y int) Color {
	c := t.Img.RGBAAt(x, y)
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, RGB(18, 33, 43), FromFloat(0.07, 0.13, 0.17, 1))
	assert.Equal(t, RGB(204, 77, 5), FromFloat(0.8, 0.3, 0.02, 1))
	assert.Equal(t, RGBA(0, 255, 0, 0), FromFloat(-1, 2, 0, 0))
}

func TestClear(t *testing.T) {
	tg := newTarget(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, bg, at(tg, x, y))
		}
	}
}

func TestFillLowerLeftHalf(t *testing.T) {
	tg := newTarget(100, 100)
	pos := [][3]float32{{-1, -1, 0}, {1, -1, 0}, {-1, 1, 0}}

	n := NewRenderer().DrawIndexed(tg, pos, []uint32{0, 1, 2}, fill)
	require.Equal(t, 1, n)

	assert.Equal(t, fill, at(tg, 10, 90), "bottom-left is inside")
	assert.Equal(t, bg, at(tg, 90, 10), "top-right is outside")
}

func TestBothWindingsFilled(t *testing.T) {
	pos := [][3]float32{{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0, 0.5, 0}}

	ccw := newTarget(64, 64)
	cw := newTarget(64, 64)
	NewRenderer().DrawIndexed(ccw, pos, []uint32{0, 1, 2}, fill)
	NewRenderer().DrawIndexed(cw, pos, []uint32{0, 2, 1}, fill)

	assert.Equal(t, ccw.Img.Pix, cw.Img.Pix)
	assert.Equal(t, fill, at(ccw, 32, 40))
}

func TestSkipsOutOfRangeTriples(t *testing.T) {
	tg := newTarget(16, 16)
	pos := [][3]float32{{-1, -1, 0}, {1, -1, 0}, {-1, 1, 0}}
	n := NewRenderer().DrawIndexed(tg, pos, []uint32{0, 1, 7, 0, 1, 2, 0, 1}, fill)
	assert.Equal(t, 1, n, "bad triple and trailing partial triple are skipped")
}

func TestViewport(t *testing.T) {
	tg := newTarget(100, 100)
	r := NewRenderer()
	// Right half only, origin bottom-left.
	r.Viewport = image.Rect(50, 0, 100, 100)
	pos := [][3]float32{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}
	r.DrawIndexed(tg, pos, []uint32{0, 1, 2, 0, 2, 3}, fill)

	assert.Equal(t, bg, at(tg, 25, 50))
	assert.Equal(t, fill, at(tg, 75, 50))
}

func TestWireframe(t *testing.T) {
	tg := newTarget(100, 100)
	r := NewRenderer()
	r.SetRenderMode(RenderWireframe)
	pos := [][3]float32{{-0.8, -0.8, 0}, {0.8, -0.8, 0}, {0, 0.8, 0}}
	r.DrawIndexed(tg, pos, []uint32{0, 1, 2}, fill)

	assert.Equal(t, bg, at(tg, 50, 50), "interior stays empty")
	assert.Equal(t, fill, at(tg, 50, 90), "bottom edge is drawn")
}

func TestScreenToNDCRoundTrip(t *testing.T) {
	vp := image.Rect(0, 0, 800, 800)
	x, y := ScreenToNDC(399, 399, vp, 800)
	assert.InDelta(t, 0, x, 2.0/800)
	assert.InDelta(t, 0, y, 2.0/800)

	p := ndcToScreen([3]float32{x, y, 0}, vp, 800)
	assert.InDelta(t, 399.5, p.X, 1e-3)
	assert.InDelta(t, 399.5, p.Y, 1e-3)
}

func TestProject(t *testing.T) {
	vp := image.Rect(0, 0, 200, 100)
	x, y := Project([3]float32{-1, 1, 0}, vp, 100)
	assert.Equal(t, []float32{0, 0}, []float32{x, y}, "top-left corner")
	x, y = Project([3]float32{0, 0, 0}, vp, 100)
	assert.Equal(t, []float32{100, 50}, []float32{x, y})
}

func TestZeroSizedTarget(t *testing.T) {
	n := NewRenderer().DrawIndexed(RGBATarget{}, [][3]float32{{0, 0, 0}}, []uint32{0, 0, 0}, fill)
	assert.Zero(t, n)
}
