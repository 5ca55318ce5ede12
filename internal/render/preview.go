package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"sync"

	"github.com/cristianadrielbraun/beam/internal/design"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"go.uber.org/zap"
)

const (
	DefaultSize = 300

	// quietZone is the border around the symbol, in modules.
	quietZone = 2
	// logoScale is the logo edge relative to the raster edge.
	logoScale = 0.24
	// logoMargin is the gap in pixels between the logo and its disc.
	logoMargin = 5
)

// Preview renders one QR code at a fixed pixel size and keeps the result
// until the inputs change.
type Preview struct {
	mu      sync.Mutex
	width   int
	height  int
	log     *zap.SugaredLogger
	key     string
	img     image.Image
	bg      color.RGBA
	canvas  Canvas
	renders int
}

type PreviewOption func(*Preview)

// WithSize sets the raster size. Non-positive values keep the default.
func WithSize(width, height int) PreviewOption {
	return func(p *Preview) {
		if width > 0 {
			p.width = width
		}
		if height > 0 {
			p.height = height
		}
	}
}

func WithLogger(log *zap.SugaredLogger) PreviewOption {
	return func(p *Preview) {
		if log != nil {
			p.log = log
		}
	}
}

func NewPreview(opts ...PreviewOption) *Preview {
	p := &Preview{
		width:  DefaultSize,
		height: DefaultSize,
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Update re-renders when content, design or logo presence changed since the
// last call. A failed render blanks the mounted canvas.
func (p *Preview) Update(text string, d design.Design, logo image.Image) error {
	key := text + "\x00" + d.Fingerprint() + "\x00" + strconv.FormatBool(logo != nil)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.renders > 0 && key == p.key {
		return nil
	}
	p.key = key
	p.renders++

	img, err := Render(text, d, logo, p.width, p.height)
	if err != nil {
		p.img = nil
		if p.canvas != nil {
			p.canvas.Reset()
		}
		p.log.Warnw("qr render failed", "error", err)
		return err
	}

	p.img = img
	p.bg = Background(d)
	if p.canvas != nil {
		p.canvas.Show(img)
	}
	return nil
}

// Mount attaches the preview to c. Mounting the same canvas again clears it
// first so the image is never attached twice; a different canvas replaces
// the previous one, which is cleared.
func (p *Preview) Mount(c Canvas) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.canvas != nil && p.canvas != c {
		p.canvas.Reset()
	}
	p.canvas = c
	c.Reset()
	if p.img != nil {
		c.Show(p.img)
	}
}

// Unmount clears and detaches the current canvas.
func (p *Preview) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.canvas != nil {
		p.canvas.Reset()
		p.canvas = nil
	}
}

// Image returns the last successful render, or nil.
func (p *Preview) Image() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.img
}

// RawData encodes the current raster. It returns nil data and no error when
// nothing has been rendered.
func (p *Preview) RawData(f Format) ([]byte, error) {
	p.mu.Lock()
	img, bg := p.img, p.bg
	p.mu.Unlock()

	if img == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img, f, bg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Preview) Size() (int, int) { return p.width, p.height }

// Renders counts how many times the raster was actually redrawn.
func (p *Preview) Renders() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renders
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Render draws text as a styled QR raster of exactly width x height pixels.
// Empty text renders a code for a single space.
func Render(text string, d design.Design, logo image.Image, width, height int) (image.Image, error) {
	if text == "" {
		text = " "
	}

	level := qrcode.ErrorCorrectionQuart
	if logo != nil {
		level = qrcode.ErrorCorrectionHighest
	}
	qrc, err := qrcode.NewWith(text, qrcode.WithErrorCorrectionLevel(level))
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	// The writer only takes whole-pixel modules; render at the largest module
	// size that fits and let the rescale close the remainder.
	side := min(width, height)
	module := side / (qrc.Dimension() + 2*quietZone)
	module = max(1, min(255, module))

	opts := append(Options(d),
		standard.WithQRWidth(uint8(module)),
		standard.WithBorderWidth(quietZone*module),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)

	var buf bytes.Buffer
	if err := qrc.Save(standard.NewWithWriter(nopCloser{&buf}, opts...)); err != nil {
		return nil, fmt.Errorf("write qr: %w", err)
	}
	raw, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode qr raster: %w", err)
	}

	var out image.Image = imaging.Resize(raw, width, height, imaging.NearestNeighbor)
	if logo != nil {
		out = overlayLogo(out, logo, Background(d))
	}
	return out, nil
}

// overlayLogo centres logo over a disc of the background colour.
func overlayLogo(dst, logo image.Image, bg color.RGBA) image.Image {
	b := dst.Bounds()
	edge := uint(float64(min(b.Dx(), b.Dy())) * logoScale)
	if edge == 0 {
		return dst
	}
	scaled := resize.Thumbnail(edge, edge, logo, resize.Lanczos3)
	sb := scaled.Bounds()

	if bg.A == 0 {
		bg = white
	}
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	r := math.Hypot(float64(sb.Dx()), float64(sb.Dy()))/2 + logoMargin

	dc := gg.NewContextForImage(dst)
	dc.DrawCircle(cx, cy, r)
	dc.SetColor(bg)
	dc.Fill()
	dc.DrawImageAnchored(scaled, int(cx), int(cy), 0.5, 0.5)
	return dc.Image()
}
