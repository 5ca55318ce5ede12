package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/cristianadrielbraun/beam/internal/design"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
)

const (
	// maxLogoBytes caps remote logo downloads.
	maxLogoBytes = 5 << 20
	// svgRasterSize is the edge used when an SVG declares no size.
	svgRasterSize = 256
	// maxSVGEdge caps the raster of an SVG logo. The logo is drawn at a
	// fraction of the QR edge, so nothing larger is ever shown.
	maxSVGEdge = 512
	// maxLogoEdge caps the declared dimensions of bitmap logos.
	maxLogoEdge = 4096
)

var (
	ErrLogoTooLarge = errors.New("logo dimensions are too large")
	// ErrForbiddenHost is returned when a logo URL resolves to an address
	// that is not publicly routable.
	ErrForbiddenHost = errors.New("logo host is not publicly routable")
)

// sharedAddressSpace is the carrier-grade NAT range, which netip does not
// count as private.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// LogoResolver turns the logo of a design into something displayable and
// owns the temporary reference created for an uploaded file. At most one
// reference is live at a time.
type LogoResolver struct {
	mu       sync.Mutex
	store    *BlobStore
	client   *http.Client
	log      *zap.SugaredLogger
	logo     design.Logo
	ref      string
	uploadID string
}

type LogoOption func(*LogoResolver)

// WithFetchTimeout bounds remote logo downloads.
func WithFetchTimeout(d time.Duration) LogoOption {
	return func(r *LogoResolver) {
		if d > 0 {
			r.client = publicClient(d)
		}
	}
}

func WithHTTPClient(c *http.Client) LogoOption {
	return func(r *LogoResolver) {
		if c != nil {
			r.client = c
		}
	}
}

func WithLogoLogger(log *zap.SugaredLogger) LogoOption {
	return func(r *LogoResolver) {
		if log != nil {
			r.log = log
		}
	}
}

func NewLogoResolver(store *BlobStore, opts ...LogoOption) *LogoResolver {
	r := &LogoResolver{
		store:  store,
		client: publicClient(5 * time.Second),
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve records l as the current logo and returns its display reference:
// empty for none, the URL itself for remote logos and a temporary blob
// reference for uploads. The previous blob reference is revoked as soon as
// the upload changes or goes away.
func (r *LogoResolver) Resolve(l design.Logo) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logo = l
	switch l.Kind() {
	case design.LogoUpload:
		u, _ := l.Upload()
		if r.ref != "" && r.uploadID == u.ID {
			return r.ref
		}
		r.revokeLocked()
		r.ref = r.store.Create(u.ContentType, u.Data)
		r.uploadID = u.ID
		return r.ref
	case design.LogoURL:
		r.revokeLocked()
		url, _ := l.URL()
		return url
	default:
		r.revokeLocked()
		return ""
	}
}

// Ref returns the live blob reference, if any.
func (r *LogoResolver) Ref() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ref
}

// Close revokes the live reference. It is safe to call more than once.
func (r *LogoResolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revokeLocked()
	r.logo = design.NoLogo()
}

func (r *LogoResolver) revokeLocked() {
	if r.ref == "" {
		return
	}
	r.store.Revoke(r.ref)
	r.ref = ""
	r.uploadID = ""
}

// Image decodes the current logo. It returns nil without error when there is
// no logo.
func (r *LogoResolver) Image(ctx context.Context) (image.Image, error) {
	r.mu.Lock()
	l := r.logo
	r.mu.Unlock()

	var (
		img image.Image
		err error
	)
	switch l.Kind() {
	case design.LogoUpload:
		u, _ := l.Upload()
		img, err = DecodeImage(u.ContentType, u.Data)
	case design.LogoURL:
		url, _ := l.URL()
		img, err = r.fetch(ctx, url)
	default:
		return nil, nil
	}
	if err != nil {
		r.log.Warnw("logo unavailable", "kind", l.Kind().String(), "error", err)
		return nil, err
	}
	return img, nil
}

// publicClient only dials publicly routable addresses. The check runs on the
// resolved address, so redirects and DNS rebinding go through it too.
func publicClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: timeout, Control: refusePrivate}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return &http.Client{Timeout: timeout, Transport: transport}
}

func refusePrivate(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrForbiddenHost, host)
	}
	ip = ip.Unmap()
	if !publicAddr(ip) {
		return fmt.Errorf("%w: %s", ErrForbiddenHost, ip)
	}
	return nil
}

func publicAddr(ip netip.Addr) bool {
	return ip.IsValid() &&
		!ip.IsLoopback() &&
		!ip.IsPrivate() &&
		!ip.IsLinkLocalUnicast() &&
		!ip.IsLinkLocalMulticast() &&
		!ip.IsInterfaceLocalMulticast() &&
		!ip.IsMulticast() &&
		!ip.IsUnspecified() &&
		!sharedAddressSpace.Contains(ip)
}

func (r *LogoResolver) fetch(ctx context.Context, ref string) (image.Image, error) {
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		return nil, fmt.Errorf("unsupported logo reference %q", ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("build logo request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch logo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch logo: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read logo: %w", err)
	}
	if len(data) > maxLogoBytes {
		return nil, errors.New("logo is too large")
	}
	return DecodeImage(resp.Header.Get("Content-Type"), data)
}

// DecodeImage decodes PNG, JPEG, GIF and SVG data. Bitmaps whose header
// declares an edge above maxLogoEdge are refused before decoding.
func DecodeImage(contentType string, data []byte) (image.Image, error) {
	if isSVG(contentType, data) {
		return RasterizeSVG(data, 0, 0)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width > maxLogoEdge || cfg.Height > maxLogoEdge {
		return nil, fmt.Errorf("%w: %dx%d", ErrLogoTooLarge, cfg.Width, cfg.Height)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func isSVG(contentType string, data []byte) bool {
	if strings.Contains(contentType, "svg") {
		return true
	}
	head := bytes.TrimSpace(data[:min(len(data), 256)])
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}

// RasterizeSVG draws an SVG document at width x height. Zero dimensions use
// the document's view box scaled down to fit maxSVGEdge, falling back to a
// square default.
func RasterizeSVG(data []byte, width, height int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if width <= 0 || height <= 0 {
		width, height = svgSize(icon.ViewBox.W, icon.ViewBox.H)
	}
	if width > maxSVGEdge || height > maxSVGEdge {
		return nil, fmt.Errorf("%w: %dx%d", ErrLogoTooLarge, width, height)
	}

	icon.SetTarget(0, 0, float64(width), float64(height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)
	return img, nil
}

// svgSize fits a view box into maxSVGEdge keeping its aspect ratio.
func svgSize(w, h float64) (int, int) {
	if !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return svgRasterSize, svgRasterSize
	}
	scale := math.Min(1, maxSVGEdge/math.Max(w, h))
	return max(1, int(math.Round(w*scale))), max(1, int(math.Round(h*scale)))
}
