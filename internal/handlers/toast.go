package handlers

import (
	"net/http"

	"github.com/cristianadrielbraun/beam/web/components/ui/toast"
	"github.com/gin-gonic/gin"
)

// GenericToast renders a toast fragment for htmx swaps into #toasts.
func (h *Handler) GenericToast(c *gin.Context) {
	h.render(c, http.StatusOK, toast.Toast(toast.Props{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     toast.ParseVariant(c.PostForm("variant")),
		Position:    toast.PositionBottomRight,
		Duration:    2000,
		Dismissible: c.PostForm("dismissible") == "on",
		Icon:        true,
	}))
}
