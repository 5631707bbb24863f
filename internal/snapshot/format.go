// Package snapshot post-processes and writes rendered frames to disk.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// Format is an image encoding, picked from the file extension.
type Format int32

const (
	None Format = iota
	PNG
	WebP
	TGA
	BMP
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case WebP:
		return "webp"
	case TGA:
		return "tga"
	case BMP:
		return "bmp"
	}
	return "none"
}

// ExtToFormat returns the Format for a filename extension, with or without
// the leading dot.
func ExtToFormat(ext string) (Format, error) {
	if ext == "" {
		return None, errors.New("snapshot: missing file extension")
	}
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	case "tga":
		return TGA, nil
	case "bmp":
		return BMP, nil
	}
	return None, fmt.Errorf("snapshot: extension %q not recognized", ext)
}

// FormatOf returns the Format for path's extension.
func FormatOf(path string) (Format, error) {
	return ExtToFormat(filepath.Ext(path))
}

// Save writes img to path, creating parent directories as needed.
func Save(img image.Image, path string) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	bw := bufio.NewWriter(file)
	if err := Write(img, bw, f); err != nil {
		file.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("snapshot: %w", err)
	}
	return file.Close()
}

// Write encodes img to w as f.
func Write(img image.Image, w io.Writer, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case TGA:
		err = tga.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("snapshot: format %v not valid", f)
	}
	if err != nil {
		return fmt.Errorf("snapshot: %s encode: %w", f, err)
	}
	return nil
}
