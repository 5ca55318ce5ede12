package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cristianadrielbraun/beam/internal/api"
	"github.com/cristianadrielbraun/beam/internal/session"
	"github.com/cristianadrielbraun/beam/web/pages"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// soft logs a failed backend call that the page can render without. It
// reports whether the token was rejected and the response is already done.
func (h *Handler) soft(c *gin.Context, err error, what string) bool {
	if err == nil {
		return false
	}
	if h.expired(c, err) {
		return true
	}
	h.log.Warnw("backend call failed", "call", what, "path", c.Request.URL.Path, "error", err)
	return false
}

func (h *Handler) Dashboard(c *gin.Context) {
	var (
		d               pages.OverviewData
		listErr, sumErr error
		g, ctx          = errgroup.WithContext(c.Request.Context())
	)
	g.Go(func() error {
		d.Records, listErr = h.backend.ListQR(ctx)
		return nil
	})
	g.Go(func() error {
		var s *api.Summary
		if s, sumErr = h.backend.DashboardSummary(ctx); s != nil {
			d.Summary = *s
		}
		return nil
	})
	_ = g.Wait()

	if h.soft(c, listErr, "list qr") || h.soft(c, sumErr, "dashboard summary") {
		return
	}
	h.render(c, http.StatusOK, pages.DashboardPage(h.shell(c, "Dashboard", "/dashboard"), d))
}

func (h *Handler) QRList(c *gin.Context) {
	d := pages.QRListData{
		Query: strings.TrimSpace(c.Query("q")),
		Error: c.Query("error"),
	}
	recs, err := h.backend.ListQR(c.Request.Context())
	if h.soft(c, err, "list qr") {
		return
	}
	if err != nil {
		d.Error = api.Message(err, "Failed to load QR codes")
	}
	d.Records = filterByName(recs, d.Query)
	h.refreshScans(c.Request.Context(), d.Records)
	h.render(c, http.StatusOK, pages.QRListPage(h.shell(c, "QR Codes", "/dashboard/qr"), d))
}

func filterByName(recs []api.Record, q string) []api.Record {
	if q == "" {
		return recs
	}
	q = strings.ToLower(q)
	out := recs[:0:0]
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
		}
	}
	return out
}

// refreshScans replaces each record's scan count with the live summary
// total. Failed lookups keep the listed count.
func (h *Handler) refreshScans(ctx context.Context, recs []api.Record) {
	var g errgroup.Group
	g.SetLimit(h.scanWorkers)
	for i := range recs {
		g.Go(func() error {
			s, err := h.backend.QRSummary(ctx, recs[i].ID)
			if err != nil {
				h.log.Debugw("scan count refresh failed", "qr", recs[i].ID, "error", err)
				return nil
			}
			recs[i].ScanCount = s.TotalScans
			return nil
		})
	}
	_ = g.Wait()
}

// QRImage proxies the stored image of a code. With download=1 it is sent
// as an attachment named after the code.
func (h *Handler) QRImage(c *gin.Context) {
	id := api.ID(c.Param("id"))
	data, ct, err := h.backend.QRImage(c.Request.Context(), id)
	if err != nil {
		if h.expired(c, err) {
			return
		}
		h.log.Warnw("qr image unavailable", "qr", id, "error", err)
		c.Status(http.StatusNotFound)
		return
	}
	if ct == "" {
		ct = "image/png"
	}
	if c.Query("download") == "1" {
		name := "qr-code"
		if rec, err := h.backend.GetQR(c.Request.Context(), id); err == nil && rec.Name != "" {
			name = rec.Name
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.png"`, strings.ReplaceAll(name, `"`, "")))
	}
	c.Data(http.StatusOK, ct, data)
}

func (h *Handler) DeleteQR(c *gin.Context) {
	id := api.ID(c.Param("id"))
	err := h.backend.DeleteQR(c.Request.Context(), id)
	if h.expired(c, err) {
		return
	}
	target := "/dashboard/qr"
	if err != nil {
		h.log.Warnw("delete failed", "qr", id, "error", err)
		target += "?error=" + url.QueryEscape(api.Message(err, "Failed to delete QR"))
	} else {
		h.wizards.Discard(sessionID(c) + ":edit:" + id.String())
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *Handler) QRAnalytics(c *gin.Context) {
	id := api.ID(c.Param("id"))
	var (
		d      pages.QRAnalyticsData
		recErr error
		sumErr error
		g, ctx = errgroup.WithContext(c.Request.Context())
	)
	g.Go(func() error {
		var rec *api.Record
		if rec, recErr = h.backend.GetQR(ctx, id); rec != nil {
			d.Record = *rec
		}
		return nil
	})
	g.Go(func() error {
		var s *api.Summary
		if s, sumErr = h.backend.QRSummary(ctx, id); s != nil {
			d.Summary = *s
		}
		return nil
	})
	_ = g.Wait()

	if recErr != nil {
		if h.expired(c, recErr) {
			return
		}
		c.String(http.StatusNotFound, "QR code not found")
		return
	}
	if h.soft(c, sumErr, "qr summary") {
		return
	}
	h.render(c, http.StatusOK, pages.QRAnalyticsPage(h.shell(c, d.Record.DisplayName(), "/dashboard/qr"), d))
}

func (h *Handler) Analytics(c *gin.Context) {
	var (
		d             pages.AnalyticsData
		sumErr, tsErr error
		g, ctx        = errgroup.WithContext(c.Request.Context())
	)
	g.Go(func() error {
		var s *api.Summary
		if s, sumErr = h.backend.DashboardSummary(ctx); s != nil {
			d.Summary = *s
		}
		return nil
	})
	g.Go(func() error {
		d.Series, tsErr = h.backend.DashboardTimeseries(ctx)
		return nil
	})
	_ = g.Wait()

	if h.soft(c, sumErr, "dashboard summary") || h.soft(c, tsErr, "dashboard timeseries") {
		return
	}
	h.render(c, http.StatusOK, pages.AnalyticsPage(h.shell(c, "Analytics", "/dashboard/analytics"), d))
}

func (h *Handler) Projects(c *gin.Context) {
	d := pages.ProjectsData{Error: c.Query("error")}
	projects, err := h.backend.ListProjects(c.Request.Context())
	if h.soft(c, err, "list projects") {
		return
	}
	if err != nil {
		d.Error = api.Message(err, "Failed to load projects")
	}
	d.Projects = projects
	h.render(c, http.StatusOK, pages.ProjectsPage(h.shell(c, "Projects", "/dashboard/projects"), d))
}

func (h *Handler) CreateProject(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.Redirect(http.StatusSeeOther, "/dashboard/projects?error="+url.QueryEscape("Project name is required"))
		return
	}
	_, err := h.backend.CreateProject(c.Request.Context(), name)
	if h.expired(c, err) {
		return
	}
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard/projects?error="+url.QueryEscape(api.Message(err, "Failed to create project")))
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/projects")
}

func (h *Handler) Project(c *gin.Context) {
	id := api.ID(c.Param("id"))
	var (
		d                          = pages.ProjectData{Error: c.Query("error")}
		all                        []api.Record
		projErr, memberErr, allErr error
		g, ctx                     = errgroup.WithContext(c.Request.Context())
	)
	g.Go(func() error {
		var p *api.Project
		if p, projErr = h.backend.GetProject(ctx, id); p != nil {
			d.Project = *p
		}
		return nil
	})
	g.Go(func() error {
		d.Members, memberErr = h.backend.ProjectQRs(ctx, id)
		return nil
	})
	g.Go(func() error {
		all, allErr = h.backend.ListQR(ctx)
		return nil
	})
	_ = g.Wait()

	if projErr != nil {
		if h.expired(c, projErr) {
			return
		}
		c.String(http.StatusNotFound, "Project not found")
		return
	}
	if h.soft(c, memberErr, "project qrs") || h.soft(c, allErr, "list qr") {
		return
	}
	if d.Project.ID == "" {
		d.Project.ID = id
	}
	d.Others = outside(all, d.Members, id)
	h.render(c, http.StatusOK, pages.ProjectPage(h.shell(c, d.Project.Name, "/dashboard/projects"), d))
}

// outside returns the codes of all that are not in project id.
func outside(all, members []api.Record, id api.ID) []api.Record {
	in := make(map[api.ID]bool, len(members))
	for _, m := range members {
		in[m.ID] = true
	}
	var out []api.Record
	for _, r := range all {
		if r.ProjectID != id && !in[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

func (h *Handler) AddToProject(c *gin.Context) {
	h.membership(c, h.backend.AddToProject, "Failed to add QR to project")
}

func (h *Handler) RemoveFromProject(c *gin.Context) {
	h.membership(c, h.backend.RemoveFromProject, "Failed to remove QR from project")
}

func (h *Handler) membership(c *gin.Context, fn func(ctx context.Context, projectID, qrID api.ID) error, fallback string) {
	pid, qid := api.ID(c.Param("id")), api.ID(c.Param("qrId"))
	err := fn(c.Request.Context(), pid, qid)
	if h.expired(c, err) {
		return
	}
	target := "/dashboard/projects/" + url.PathEscape(pid.String())
	if err != nil {
		h.log.Warnw("project membership change failed", "project", pid, "qr", qid, "error", err)
		target += "?error=" + url.QueryEscape(api.Message(err, fallback))
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *Handler) Billing(c *gin.Context) {
	recs, err := h.backend.ListQR(c.Request.Context())
	if h.soft(c, err, "list qr") {
		return
	}
	h.render(c, http.StatusOK, pages.BillingPage(h.shell(c, "Billing", "/dashboard/billing"), pages.BillingData{Used: len(recs)}))
}

func (h *Handler) Settings(c *gin.Context) {
	s, _ := session.From(c)
	d := pages.SettingsData{Name: s.User.Name, Email: s.User.Email}
	h.render(c, http.StatusOK, pages.SettingsPage(h.shell(c, "Settings", "/dashboard/settings"), d))
}

// UpdateSettings saves the profile and mirrors the new name into the
// session so the header updates at once.
func (h *Handler) UpdateSettings(c *gin.Context) {
	s, _ := session.From(c)
	req := api.SettingsRequest{
		Name:            strings.TrimSpace(c.PostForm("name")),
		CurrentPassword: c.PostForm("current_password"),
		NewPassword:     c.PostForm("new_password"),
	}
	d := pages.SettingsData{Name: req.Name, Email: s.User.Email}

	err := h.backend.UpdateSettings(c.Request.Context(), req)
	if h.expired(c, err) {
		return
	}
	status := http.StatusOK
	if err != nil {
		d.Error = api.Message(err, "Failed to update profile")
		status = http.StatusBadRequest
	} else {
		d.Success = true
		s.User.Name = req.Name
		if err := h.sessions.Update(c.Request.Context(), s); err != nil {
			h.log.Warnw("session user update failed", "error", err)
		}
	}
	h.render(c, status, pages.SettingsPage(h.shell(c, "Settings", "/dashboard/settings"), d))
}

// Blob serves a temporary upload reference while it is live.
func (h *Handler) Blob(c *gin.Context) {
	b, ok := h.blobs.Open(c.Param("id"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "private, no-store")
	c.Data(http.StatusOK, b.ContentType, b.Data)
}
