package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/cristianadrielbraun/beam/internal/api"
	"github.com/cristianadrielbraun/beam/internal/content"
	"github.com/cristianadrielbraun/beam/internal/design"
	"github.com/cristianadrielbraun/beam/internal/render"
	"github.com/cristianadrielbraun/beam/internal/wizard"
	"github.com/cristianadrielbraun/beam/web/pages"
	"github.com/gin-gonic/gin"
)

const (
	createBase    = "/dashboard/qr/create"
	maxLogoUpload = 5 << 20
	maxFileUpload = 10 << 20
)

var errTooLarge = errors.New("file is too large")

func createKey(c *gin.Context) string { return sessionID(c) + ":create" }

func editKey(c *gin.Context, id api.ID) string {
	return sessionID(c) + ":edit:" + id.String()
}

func editBase(id api.ID) string { return "/dashboard/qr/" + id.String() + "/edit" }

// CreateForm renders the wizard. A ?type= seed starts a fresh flow and
// redirects so reloading does not reset it again.
func (h *Handler) CreateForm(c *gin.Context) {
	key := createKey(c)
	if seed := c.Query("type"); seed != "" {
		if _, ok := content.ParseType(seed); ok {
			h.wizards.Put(key, wizard.New(seed))
		}
		c.Redirect(http.StatusFound, createBase)
		return
	}

	ws := h.wizards.Get(key)
	ws.Lock()
	defer ws.Unlock()
	h.render(c, http.StatusOK, pages.CreatePage(h.shell(c, "Create QR Code", "/dashboard/qr"), pages.WizardData{
		Wizard:  ws.Wizard,
		Base:    createBase,
		LogoRef: ws.LogoRef,
		Version: ws.Slot.Version(),
	}))
}

func (h *Handler) CreateAction(c *gin.Context) {
	key := createKey(c)
	action := c.Param("action")
	if action == "reset" {
		h.wizards.Put(key, wizard.New(""))
		c.Redirect(http.StatusSeeOther, createBase)
		return
	}

	ws := h.wizards.Get(key)
	ws.Lock()
	defer ws.Unlock()
	w := ws.Wizard

	switch action {
	case "type":
		t, _ := content.ParseType(c.PostForm("type"))
		if !w.SelectType(t) {
			h.log.Debugw("type change rejected", "step", w.Step, "type", c.PostForm("type"))
		}
	case "save":
		if err := w.Save(c.Request.Context(), h.backend); err != nil {
			if h.expired(c, err) {
				return
			}
			h.log.Infow("qr create failed", "type", w.Type, "error", err)
		} else {
			h.log.Infow("qr created", "id", w.Created.ID, "type", w.Type)
		}
	default:
		if !h.applyAction(c, ws, action) {
			return
		}
	}

	if w.Step >= wizard.StepDesign {
		h.refresh(c, ws)
	}
	c.Redirect(http.StatusSeeOther, createBase)
}

// applyAction handles the actions shared by the create and edit flows. It
// reports false when it already answered the request.
func (h *Handler) applyAction(c *gin.Context, ws *wizard.Workspace, action string) bool {
	w := ws.Wizard
	switch action {
	case "next":
		if err := w.Next(); err != nil {
			h.log.Debugw("wizard step blocked", "step", w.Step)
		}
	case "back":
		w.Back()
	case "content":
		if err := applyContent(c, w); err != nil {
			w.Err = err.Error()
		}
	case "design":
		applyDesign(c, w)
	case "color":
		value := c.PostForm("swatch")
		if value == "" {
			value = c.PostForm("value")
		}
		if err := w.SetColor(c.PostForm("field"), value); err != nil {
			h.log.Debugw("colour rejected", "field", c.PostForm("field"), "value", value, "error", err)
		}
	case "logo":
		if err := applyLogo(c, w); err != nil {
			w.Err = err.Error()
		}
	default:
		c.Status(http.StatusNotFound)
		return false
	}
	return true
}

func (h *Handler) refresh(c *gin.Context, ws *wizard.Workspace) {
	if err := ws.Refresh(c.Request.Context()); err != nil {
		h.log.Debugw("preview refresh failed", "error", err)
	}
}

// applyContent copies the posted fields of the selected type. Absent fields
// keep their value.
func applyContent(c *gin.Context, w *wizard.Wizard) error {
	p := &w.Content
	set := func(key string, dst *string) {
		if v, ok := c.GetPostForm(key); ok {
			*dst = v
		}
	}
	switch w.Type {
	case content.TypeURL:
		set("url", &p.URL)
	case content.TypeText:
		set("text", &p.Text)
	case content.TypeWiFi:
		set("ssid", &p.SSID)
		set("password", &p.Password)
	case content.TypeVCard:
		set("name", &p.Name)
		set("phone", &p.Phone)
		set("email", &p.Email)
		set("company", &p.Company)
	case content.TypePDF:
		if fh, err := c.FormFile("file"); err == nil {
			data, err := readUpload(fh, maxFileUpload)
			if err != nil {
				return fmt.Errorf("upload %s: %w", fh.Filename, err)
			}
			p.File = &content.File{Name: fh.Filename, Size: fh.Size, Data: data}
		}
	case content.TypeMenu:
		set("menuURL", &p.MenuURL)
	}
	if w.Type != content.TypeVCard {
		set("name", &p.Name)
	}
	return nil
}

func applyDesign(c *gin.Context, w *wizard.Wizard) {
	d := &w.Design
	if v, ok := c.GetPostForm("dotShape"); ok {
		d.DotShape = design.ParseDotShape(v)
	}
	if v, ok := c.GetPostForm("eyeShape"); ok {
		d.EyeShape = design.ParseEyeShape(v)
	}
	if v, ok := c.GetPostForm("frameStyle"); ok {
		d.FrameStyle = design.ParseFrameStyle(v)
	}
	if v, ok := c.GetPostForm("frameText"); ok {
		w.SetFrameText(v)
	}
}

// applyLogo sets the logo from an uploaded file, a pasted URL or a removal
// request, in that order of precedence.
func applyLogo(c *gin.Context, w *wizard.Wizard) error {
	if c.PostForm("remove") == "1" {
		w.Design.Logo = design.NoLogo()
		return nil
	}
	if fh, err := c.FormFile("logo"); err == nil {
		data, err := readUpload(fh, maxLogoUpload)
		if err != nil {
			return fmt.Errorf("logo %s: %w", fh.Filename, err)
		}
		w.Design.Logo = design.UploadLogo(design.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
		return nil
	}
	// A blank URL field only clears a URL logo, never an upload.
	if v, ok := c.GetPostForm("logoURL"); ok && (strings.TrimSpace(v) != "" || w.Design.Logo.Kind() == design.LogoURL) {
		w.Design.Logo = design.URLLogo(v)
	}
	return nil
}

func readUpload(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	if fh.Size > limit {
		return nil, errTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit))
}

func (h *Handler) CreatePreview(c *gin.Context) {
	ws, ok := h.wizards.Lookup(createKey(c))
	h.servePreview(c, ws, ok)
}

func (h *Handler) CreateDownload(c *gin.Context) {
	ws, ok := h.wizards.Lookup(createKey(c))
	h.serveDownload(c, ws, ok)
}

// servePreview writes the mounted preview as PNG. An empty canvas answers
// 204 so the page shows a blank image.
func (h *Handler) servePreview(c *gin.Context, ws *wizard.Workspace, ok bool) {
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	var buf bytes.Buffer
	if err := ws.Slot.WritePNG(&buf); err != nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// serveDownload exports the current preview without the watermark.
func (h *Handler) serveDownload(c *gin.Context, ws *wizard.Workspace, ok bool) {
	f, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	file, err := h.exporter.Export(c.Request.Context(), ws.Preview, f, false)
	if err != nil {
		h.log.Errorw("export failed", "format", f, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if file == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// editWorkspace returns the open edit workspace for the code in the path,
// loading the record on first use.
func (h *Handler) editWorkspace(c *gin.Context) (*wizard.Workspace, bool) {
	id := api.ID(c.Param("id"))
	key := editKey(c, id)
	if ws, ok := h.wizards.Lookup(key); ok {
		return ws, true
	}

	rec, err := h.backend.GetQR(c.Request.Context(), id)
	if err != nil {
		if !h.expired(c, err) {
			c.String(http.StatusNotFound, "QR code not found")
		}
		return nil, false
	}
	w, err := wizard.FromRecord(*rec)
	if err != nil {
		h.log.Warnw("stored design unreadable, using defaults", "qr", id, "error", err)
		plain := *rec
		plain.DesignJSON = ""
		w, _ = wizard.FromRecord(plain)
	}
	ws := h.wizards.Put(key, w)
	ws.Lock()
	h.refresh(c, ws)
	ws.Unlock()
	return ws, true
}

func (h *Handler) EditForm(c *gin.Context) {
	ws, ok := h.editWorkspace(c)
	if !ok {
		return
	}
	ws.Lock()
	defer ws.Unlock()
	id := api.ID(c.Param("id"))
	h.render(c, http.StatusOK, pages.EditPage(h.shell(c, "Edit QR Code", "/dashboard/qr"), pages.WizardData{
		Wizard:  ws.Wizard,
		Base:    editBase(id),
		LogoRef: ws.LogoRef,
		Version: ws.Slot.Version(),
		Tab:     c.Query("tab"),
	}, c.Query("saved") == "1"))
}

func (h *Handler) EditAction(c *gin.Context) {
	ws, ok := h.editWorkspace(c)
	if !ok {
		return
	}
	ws.Lock()
	defer ws.Unlock()
	w := ws.Wizard
	action := c.Param("action")
	target := editBase(w.EditID)

	switch action {
	case "save":
		if err := w.SaveEdit(c.Request.Context(), h.backend); err != nil {
			if h.expired(c, err) {
				return
			}
			h.log.Infow("qr update failed", "id", w.EditID, "error", err)
		} else {
			target += "?saved=1"
		}
	case "content":
		if !h.applyAction(c, ws, action) {
			return
		}
	case "design", "color", "logo":
		if !h.applyAction(c, ws, action) {
			return
		}
		target += "?tab=design"
	default:
		c.Status(http.StatusNotFound)
		return
	}

	h.refresh(c, ws)
	c.Redirect(http.StatusSeeOther, target)
}

func (h *Handler) EditPreview(c *gin.Context) {
	ws, ok := h.wizards.Lookup(editKey(c, api.ID(c.Param("id"))))
	h.servePreview(c, ws, ok)
}

func (h *Handler) EditDownload(c *gin.Context) {
	ws, ok := h.wizards.Lookup(editKey(c, api.ID(c.Param("id"))))
	h.serveDownload(c, ws, ok)
}
