package snapshot

import (
	"image"
	"image/color"
	"strings"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const captionMargin = 2

// CaptionColor is the default text color for Caption.
var CaptionColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// rgbaDisplay lets tinyfont draw straight into an image.
type rgbaDisplay struct {
	img *image.RGBA
}

var _ drivers.Displayer = rgbaDisplay{}

func (d rgbaDisplay) Size() (x, y int16) {
	if d.img == nil {
		return 0, 0
	}
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d rgbaDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.img == nil {
		return
	}
	b := d.img.Bounds()
	px, py := b.Min.X+int(x), b.Min.Y+int(y)
	if !(image.Point{X: px, Y: py}).In(b) {
		return
	}
	d.img.SetRGBA(px, py, c)
}

func (d rgbaDisplay) Display() error { return nil }

// Caption stamps text into the bottom-left corner of img, one row per line.
func Caption(img *image.RGBA, text string, fg color.RGBA) {
	if img == nil || text == "" {
		return
	}
	font := &tinyfont.TomThumb
	lineHeight := int16(font.GetYAdvance())
	if lineHeight <= 0 {
		lineHeight = 6
	}

	d := rgbaDisplay{img: img}
	_, h := d.Size()
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	y := h - captionMargin - int16(len(lines)-1)*lineHeight
	for _, line := range lines {
		tinyfont.WriteLine(d, font, captionMargin, y, line, fg)
		y += lineHeight
	}
}
