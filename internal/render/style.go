// Package render draws styled QR codes: it maps a design onto writer
// options, renders rasters for the live preview and resolves centre logos.
package render

import (
	"image/color"

	"github.com/cristianadrielbraun/beam/internal/design"
	"github.com/yeqown/go-qrcode/writer/standard"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// Options translates a design into writer options. The finder patterns
// (outer eye ring and inner eye dot) are drawn by the eye shape and share
// the foreground colour with the data modules.
func Options(d design.Design) []standard.ImageOption {
	fg := design.ParseColor(d.Color, black)
	if fg.A == 0 {
		fg = black
	}

	opts := []standard.ImageOption{
		standard.WithFgColor(fg),
		standard.WithCustomShape(newModuleShape(d.DotShape, d.EyeShape)),
	}

	bg := design.ParseColor(d.BgColor, white)
	if bg.A == 0 {
		opts = append(opts, standard.WithBgTransparent())
	} else {
		opts = append(opts, standard.WithBgColor(bg))
	}
	return opts
}

// Background returns the opaque or transparent background colour of d.
func Background(d design.Design) color.RGBA {
	return design.ParseColor(d.BgColor, white)
}
