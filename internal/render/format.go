package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
)

// ErrUnsupportedFormat is returned for export formats other than PNG and JPEG.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is a raster export format.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// ParseFormat accepts "png", "jpeg" and "jpg". Empty input means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Extension is the file extension used for downloads.
func (f Format) Extension() string { return string(f) }

func (f Format) ContentType() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Encode writes img in format f. JPEG has no alpha channel, so the image is
// first flattened over bg (white when bg is transparent).
func Encode(w io.Writer, img image.Image, f Format, bg color.RGBA) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		opaque := color.RGBA{bg.R, bg.G, bg.B, 255}
		if bg.A == 0 {
			opaque = color.RGBA{255, 255, 255, 255}
		}
		b := img.Bounds()
		out := image.NewRGBA(b)
		draw.Draw(out, b, &image.Uniform{C: opaque}, image.Point{}, draw.Src)
		draw.Draw(out, b, img, b.Min, draw.Over)
		return jpeg.Encode(w, out, &jpeg.Options{Quality: 92})
	default:
		return ErrUnsupportedFormat
	}
}
