// Package export packages the rendered QR raster as a downloadable file,
// optionally branded with the Beam footer.
package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/cristianadrielbraun/beam/internal/render"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPadding      = 40
	DefaultFooterHeight = 60

	watermarkText = "Powered by Beam"
	textSize      = 20
	iconSize      = 28
	iconGap       = 10
)

var textColor = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}

// BrandIcon is the Beam mark.
var BrandIcon = []byte(`<svg width="64" height="64" viewBox="0 0 32 32" fill="none" xmlns="http://www.w3.org/2000/svg"><rect x="2" y="2" width="28" height="28" rx="8" fill="#2563eb"/><path d="M20 2L10 30" stroke="white" stroke-width="3" stroke-linecap="round"/><rect x="7" y="10" width="3" height="3" rx="1" fill="white" fill-opacity="0.9"/><rect x="7" y="18" width="3" height="3" rx="1" fill="white" fill-opacity="0.9"/><rect x="22" y="10" width="3" height="3" rx="1" fill="white" fill-opacity="0.9"/><circle cx="21.5" cy="20.5" r="2.5" fill="#bfdbfe"/></svg>`)

// Source provides the encoded raster to export. *render.Preview implements it.
type Source interface {
	RawData(f render.Format) ([]byte, error)
}

// File is a finished download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Compositor struct {
	padding int
	footer  int
	log     *zap.SugaredLogger
}

type Option func(*Compositor)

func WithPadding(px int) Option {
	return func(c *Compositor) {
		if px >= 0 {
			c.padding = px
		}
	}
}

func WithFooterHeight(px int) Option {
	return func(c *Compositor) {
		if px > 0 {
			c.footer = px
		}
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Compositor) {
		if log != nil {
			c.log = log
		}
	}
}

func New(opts ...Option) *Compositor {
	c := &Compositor{
		padding: DefaultPadding,
		footer:  DefaultFooterHeight,
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Export returns the current raster of src as a file. Without a watermark
// the raw data is passed through unchanged. When src has nothing rendered
// yet, Export returns nil and no error.
func (c *Compositor) Export(ctx context.Context, src Source, f render.Format, watermark bool) (*File, error) {
	raw, err := src.RawData(f)
	if err != nil {
		return nil, fmt.Errorf("read raster: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	if !watermark {
		return &File{Name: FileName(f, false), ContentType: f.ContentType(), Data: raw}, nil
	}

	data, err := c.watermark(ctx, raw, f)
	if err != nil {
		return nil, err
	}
	return &File{Name: FileName(f, true), ContentType: f.ContentType(), Data: data}, nil
}

// FileName is the download name for format f.
func FileName(f render.Format, watermark bool) string {
	if watermark {
		return "qr-code-beam." + f.Extension()
	}
	return "qr-code." + f.Extension()
}

func (c *Compositor) watermark(ctx context.Context, raw []byte, f render.Format) ([]byte, error) {
	var qr, icon image.Image

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return fmt.Errorf("decode raster: %w", err)
		}
		qr = img
		return gctx.Err()
	})
	g.Go(func() error {
		img, err := render.RasterizeSVG(BrandIcon, iconSize, iconSize)
		if err != nil {
			return fmt.Errorf("decode brand icon: %w", err)
		}
		icon = img
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		c.log.Warnw("watermark export failed", "error", err)
		return nil, err
	}

	face, err := newFace()
	if err != nil {
		return nil, err
	}
	defer face.Close()

	b := qr.Bounds()
	w := b.Dx() + 2*c.padding
	h := b.Dy() + 2*c.padding + c.footer

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.DrawImage(qr, c.padding, c.padding)

	mid := float64(b.Dy()+2*c.padding) + float64(c.footer)/2
	dc.DrawImageAnchored(icon, c.padding, int(mid), 0, 0.5)

	dc.SetFontFace(face)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(watermarkText, float64(c.padding+iconSize+iconGap), mid, 0, 0.5)

	var buf bytes.Buffer
	if err := render.Encode(&buf, dc.Image(), f, color.RGBA{255, 255, 255, 255}); err != nil {
		return nil, fmt.Errorf("encode watermarked raster: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	boldOnce sync.Once
	boldFont *opentype.Font
	boldErr  error
)

// newFace returns a fresh face per call; faces keep per-glyph buffers and
// must not be shared between goroutines.
func newFace() (font.Face, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	if boldErr != nil {
		return nil, fmt.Errorf("parse font: %w", boldErr)
	}
	face, err := opentype.NewFace(boldFont, &opentype.FaceOptions{Size: textSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("load font face: %w", err)
	}
	return face, nil
}
