package handlers

import (
	"context"
	"errors"
	"image"
	"net/http"
	"sync"

	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/internal/api"
	"github.com/cristianadrielbraun/beam/internal/export"
	"github.com/cristianadrielbraun/beam/internal/render"
	"github.com/cristianadrielbraun/beam/internal/session"
	"github.com/cristianadrielbraun/beam/internal/wizard"
	"github.com/cristianadrielbraun/beam/web/components"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Backend is the subset of the backend client the handlers call.
type Backend interface {
	wizard.Creator
	wizard.Updater

	GoogleLoginURL() string
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)

	ListQR(ctx context.Context) ([]api.Record, error)
	GetQR(ctx context.Context, id api.ID) (*api.Record, error)
	DeleteQR(ctx context.Context, id api.ID) error
	QRImage(ctx context.Context, id api.ID) ([]byte, string, error)

	QRSummary(ctx context.Context, id api.ID) (*api.Summary, error)
	DashboardSummary(ctx context.Context) (*api.Summary, error)
	DashboardTimeseries(ctx context.Context) ([]api.TimePoint, error)

	ListProjects(ctx context.Context) ([]api.Project, error)
	CreateProject(ctx context.Context, name string) (*api.Project, error)
	GetProject(ctx context.Context, id api.ID) (*api.Project, error)
	ProjectQRs(ctx context.Context, id api.ID) ([]api.Record, error)
	AddToProject(ctx context.Context, projectID, qrID api.ID) error
	RemoveFromProject(ctx context.Context, projectID, qrID api.ID) error

	UpdateSettings(ctx context.Context, req api.SettingsRequest) error
}

// Deps are the collaborators of Handler. Log and Exporter may be nil.
type Deps struct {
	Log         *zap.SugaredLogger
	Backend     Backend
	Sessions    *session.Manager
	Wizards     *wizard.Registry
	Blobs       *render.BlobStore
	Exporter    *export.Compositor
	PreviewSize int
	// ScanWorkers bounds the concurrent summary calls of the QR list.
	ScanWorkers int
}

// Handler holds the dependencies of every HTTP handler.
type Handler struct {
	log         *zap.SugaredLogger
	backend     Backend
	sessions    *session.Manager
	wizards     *wizard.Registry
	blobs       *render.BlobStore
	exporter    *export.Compositor
	previewSize int
	scanWorkers int

	brandOnce sync.Once
	brand     *image.RGBA
}

func New(d Deps) *Handler {
	h := &Handler{
		log:         d.Log,
		backend:     d.Backend,
		sessions:    d.Sessions,
		wizards:     d.Wizards,
		blobs:       d.Blobs,
		exporter:    d.Exporter,
		previewSize: d.PreviewSize,
		scanWorkers: d.ScanWorkers,
	}
	if h.log == nil {
		h.log = zap.NewNop().Sugar()
	}
	if h.exporter == nil {
		h.exporter = export.New(export.WithLogger(h.log))
	}
	if h.previewSize <= 0 {
		h.previewSize = render.DefaultSize
	}
	if h.scanWorkers <= 0 {
		h.scanWorkers = 4
	}
	return h
}

// Register mounts every route on r.
func (h *Handler) Register(r *gin.Engine) {
	r.Use(h.sessions.Middleware())

	r.GET("/", h.Home)
	r.GET("/sitemap.xml", h.SitemapXML)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/qr", h.QRCodeHandler)
		apiGroup.POST("/htmx/toast", h.GenericToast)
	}

	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/signup", h.SignupForm)
	r.POST("/signup", h.Signup)
	r.GET("/auth/google", h.GoogleLogin)
	r.GET("/auth/callback", h.AuthCallback)
	r.POST("/logout", h.Logout)

	dash := r.Group("/dashboard", h.sessions.RequireAuth())
	{
		dash.GET("", h.Dashboard)
		dash.GET("/blob/:id", h.Blob)

		dash.GET("/qr", h.QRList)
		dash.GET("/qr/create", h.CreateForm)
		dash.GET("/qr/create/preview.png", h.CreatePreview)
		dash.GET("/qr/create/download", h.CreateDownload)
		dash.POST("/qr/create/:action", h.CreateAction)

		dash.GET("/qr/:id/image", h.QRImage)
		dash.POST("/qr/:id/delete", h.DeleteQR)
		dash.GET("/qr/:id/analytics", h.QRAnalytics)
		dash.GET("/qr/:id/edit", h.EditForm)
		dash.GET("/qr/:id/edit/preview.png", h.EditPreview)
		dash.GET("/qr/:id/edit/download", h.EditDownload)
		dash.POST("/qr/:id/edit/:action", h.EditAction)

		dash.GET("/analytics", h.Analytics)

		dash.GET("/projects", h.Projects)
		dash.POST("/projects", h.CreateProject)
		dash.GET("/projects/:id", h.Project)
		dash.POST("/projects/:id/add/:qrId", h.AddToProject)
		dash.POST("/projects/:id/remove/:qrId", h.RemoveFromProject)

		dash.GET("/billing", h.Billing)
		dash.GET("/settings", h.Settings)
		dash.POST("/settings", h.UpdateSettings)
	}
}

// SitemapXML serves a minimal sitemap of the public pages.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (host == "localhost:8080" || host == "127.0.0.1:8080") {
		scheme = "http"
	}
	base := scheme + "://" + host

	xml := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n"
	for _, u := range []struct{ path, freq, prio string }{
		{"/", "weekly", "1.0"},
		{"/signup", "monthly", "0.8"},
		{"/login", "monthly", "0.5"},
	} {
		xml += "  <url>\n" +
			"    <loc>" + base + u.path + "</loc>\n" +
			"    <changefreq>" + u.freq + "</changefreq>\n" +
			"    <priority>" + u.prio + "</priority>\n" +
			"  </url>\n"
	}
	xml += "</urlset>\n"
	c.String(http.StatusOK, xml)
}

func (h *Handler) render(c *gin.Context, status int, comp templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := comp.Render(c.Request.Context(), c.Writer); err != nil {
		h.log.Errorw("render failed", "path", c.Request.URL.Path, "error", err)
	}
}

func (h *Handler) shell(c *gin.Context, title, active string) components.ShellData {
	d := components.ShellData{Title: title, Active: active}
	if s, ok := session.From(c); ok {
		d.UserName = s.User.Name
	}
	return d
}

// expired ends the session, with its open workspaces, and sends the visitor
// to the login page when err is a rejected token. It reports whether the
// response was written.
func (h *Handler) expired(c *gin.Context, err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}
	if id := sessionID(c); id != "" {
		h.wizards.DiscardSession(id)
	}
	h.sessions.End(c)
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
	return true
}

// sessionID is the key prefix of per-session wizard workspaces.
func sessionID(c *gin.Context) string {
	if s, ok := session.From(c); ok {
		return s.ID
	}
	return ""
}
