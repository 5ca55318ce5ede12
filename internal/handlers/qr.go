package handlers

import (
	"fmt"
	"image"
	"net/http"
	"strconv"
	"strings"

	"github.com/cristianadrielbraun/beam/internal/content"
	"github.com/cristianadrielbraun/beam/internal/design"
	"github.com/cristianadrielbraun/beam/internal/export"
	"github.com/cristianadrielbraun/beam/internal/render"
	"github.com/cristianadrielbraun/beam/web/pages"
	"github.com/gin-gonic/gin"
)

const (
	downloadSize = 1024
	minQRSize    = 64
	maxQRSize    = 2048
)

// Home renders the anonymous generator. htmx requests re-render the same page
// and select the preview out of it.
func (h *Handler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, pages.HomePage(strings.TrimSpace(c.Query("data"))))
}

// QRCodeHandler renders a code for anonymous visitors. It takes the content
// as either url (normalized to http/https) or data (encoded verbatim) plus
// optional colour, shape, size and format parameters. Downloads carry the
// Beam watermark.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	text, err := anonymousContent(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d := design.Default()
	if v, ok := design.NormalizeHex(firstQuery(c, "color", "fg")); ok {
		d.Color = v
	}
	if v, ok := design.NormalizeHex(c.Query("bg")); ok {
		d.BgColor = v
	}
	d.DotShape = design.ParseDotShape(c.Query("dot"))
	d.EyeShape = design.ParseEyeShape(c.Query("eye"))

	size := h.qrSize(c.Query("size"))

	var logo image.Image
	if c.Query("logo") == "beam" {
		logo = h.brandLogo()
	}

	p := render.NewPreview(render.WithSize(size, size), render.WithLogger(h.log))
	if err := p.Update(text, d, logo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create QR code"})
		return
	}

	download := c.Query("download") == "1"
	file, err := h.exporter.Export(c.Request.Context(), p, f, download)
	if err != nil || file == nil {
		h.log.Errorw("anonymous export failed", "format", f, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode QR code"})
		return
	}

	h.log.Debugw("qr rendered", "format", f, "size", size, "dot", d.DotShape, "eye", d.EyeShape, "download", download)
	if download {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	} else {
		c.Header("Cache-Control", "public, max-age=3600")
	}
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func anonymousContent(c *gin.Context) (string, error) {
	if raw := strings.TrimSpace(c.Query("url")); raw != "" {
		return content.NormalizeHTTPURL(raw)
	}
	if data := c.Query("data"); strings.TrimSpace(data) != "" {
		if len(data) > 4096 {
			return "", fmt.Errorf("data is too long")
		}
		return data, nil
	}
	return "", fmt.Errorf("data or url parameter is required")
}

// qrSize accepts "preview", "download" or a pixel count.
func (h *Handler) qrSize(s string) int {
	switch s {
	case "", "preview":
		return h.previewSize
	case "download":
		return downloadSize
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return h.previewSize
	}
	return min(max(n, minQRSize), maxQRSize)
}

// brandLogo is the rasterized Beam mark, built on first use.
func (h *Handler) brandLogo() image.Image {
	h.brandOnce.Do(func() {
		img, err := render.RasterizeSVG(export.BrandIcon, 256, 256)
		if err != nil {
			h.log.Errorw("brand icon rasterization failed", "error", err)
			return
		}
		h.brand = img
	})
	if h.brand == nil {
		return nil
	}
	return h.brand
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			return v
		}
	}
	return ""
}
