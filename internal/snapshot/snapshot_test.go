package snapshot

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

var (
	bg   = color.RGBA{R: 18, G: 33, B: 43, A: 255}
	fill = color.RGBA{R: 204, G: 77, B: 5, A: 255}
)

func frame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := bg
			if x < w/2 {
				c = fill
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestExtToFormat(t *testing.T) {
	for ext, want := range map[string]Format{
		".png":  PNG,
		"PNG":   PNG,
		".webp": WebP,
		".tga":  TGA,
		"bmp":   BMP,
	} {
		got, err := ExtToFormat(ext)
		require.NoError(t, err, ext)
		assert.Equal(t, want, got, ext)
	}

	_, err := ExtToFormat(".jpg")
	assert.Error(t, err)
	_, err = ExtToFormat("")
	assert.Error(t, err)
	_, err = FormatOf("frame")
	assert.Error(t, err)
}

func TestSaveLossless(t *testing.T) {
	src := frame(16, 8)
	dir := t.TempDir()

	decoders := map[string]func(f *os.File) (image.Image, error){
		"out.png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"out.webp": func(f *os.File) (image.Image, error) { return webp.Decode(f) },
		"out.tga":  func(f *os.File) (image.Image, error) { return tga.Decode(f) },
		"out.bmp":  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
	}
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			require.NoError(t, Save(src, path))

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()
			img, err := decode(f)
			require.NoError(t, err)

			require.Equal(t, src.Bounds(), img.Bounds())
			for _, p := range []image.Point{{0, 0}, {7, 4}, {8, 4}, {15, 7}} {
				want := src.RGBAAt(p.X, p.Y)
				assert.Equal(t, want, color.RGBAModel.Convert(img.At(p.X, p.Y)), "%s at %v", name, p)
			}
		})
	}
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	assert.Error(t, Save(frame(2, 2), path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing is created")
}

func TestWriteInvalidFormat(t *testing.T) {
	assert.Error(t, Write(frame(2, 2), nil, None))
}

func TestResolve(t *testing.T) {
	src := frame(64, 32)
	dst := Resolve(src, 4)
	require.Equal(t, image.Rect(0, 0, 16, 8), dst.Bounds())

	near := func(want, got color.RGBA) {
		t.Helper()
		assert.InDelta(t, want.R, got.R, 1)
		assert.InDelta(t, want.G, got.G, 1)
		assert.InDelta(t, want.B, got.B, 1)
		assert.InDelta(t, want.A, got.A, 1)
	}
	near(fill, dst.RGBAAt(2, 4))
	near(bg, dst.RGBAAt(13, 4))

	assert.Same(t, src, Resolve(src, 1))
	assert.Same(t, src, Resolve(src, 0))
}

func TestCaption(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for i := range img.Pix {
		img.Pix[i] = 0
	}
	Caption(img, "OK\nv1", CaptionColor)

	var top, bottom int
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if img.RGBAAt(x, y) == CaptionColor {
				if y < 16 {
					top++
				} else {
					bottom++
				}
			}
		}
	}
	assert.Zero(t, top, "caption stays at the bottom")
	assert.Positive(t, bottom)
}

func TestCaptionNoop(t *testing.T) {
	img := frame(8, 8)
	before := append([]byte(nil), img.Pix...)
	Caption(img, "", CaptionColor)
	Caption(nil, "x", CaptionColor)
	assert.Equal(t, before, img.Pix)
}

func TestDisplayerClips(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	d := rgbaDisplay{img: img}
	d.SetPixel(-1, 0, fill)
	d.SetPixel(4, 4, fill)
	d.SetPixel(1, 2, fill)
	x, y := d.Size()
	assert.Equal(t, []int16{4, 4}, []int16{x, y})
	assert.Equal(t, fill, img.RGBAAt(1, 2))
	assert.NoError(t, d.Display())
}
