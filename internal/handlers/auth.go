package handlers

import (
	"net/http"
	"strings"

	"github.com/cristianadrielbraun/beam/internal/api"
	"github.com/cristianadrielbraun/beam/internal/session"
	"github.com/cristianadrielbraun/beam/web/pages"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authData(c *gin.Context) pages.AuthData {
	d := pages.AuthData{GoogleURL: h.backend.GoogleLoginURL()}
	if c.Query("error") == "missing_token" {
		d.Error = "Google sign-in did not return a token. Please try again."
	}
	return d
}

func (h *Handler) LoginForm(c *gin.Context) {
	if _, ok := session.From(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	h.render(c, http.StatusOK, pages.LoginPage(h.authData(c)))
}

func (h *Handler) Login(c *gin.Context) {
	req := api.LoginRequest{
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}
	res, err := h.backend.Login(c.Request.Context(), req)
	if err != nil {
		d := h.authData(c)
		d.Email = req.Email
		d.Error = api.Message(err, "Login failed")
		h.log.Infow("login rejected", "email", req.Email, "error", err)
		h.render(c, http.StatusUnauthorized, pages.LoginPage(d))
		return
	}
	h.startSession(c, res)
}

func (h *Handler) SignupForm(c *gin.Context) {
	h.render(c, http.StatusOK, pages.SignupPage(h.authData(c)))
}

func (h *Handler) Signup(c *gin.Context) {
	req := api.RegisterRequest{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}
	res, err := h.backend.Register(c.Request.Context(), req)
	if err != nil {
		d := h.authData(c)
		d.Name, d.Email = req.Name, req.Email
		d.Error = api.Message(err, "Signup failed")
		h.render(c, http.StatusBadRequest, pages.SignupPage(d))
		return
	}
	h.startSession(c, res)
}

func (h *Handler) startSession(c *gin.Context, res *api.AuthResponse) {
	var user api.User
	if res.User != nil {
		user = *res.User
	}
	if _, err := h.sessions.Start(c, res.Token, user); err != nil {
		h.log.Errorw("session start failed", "error", err)
		h.render(c, http.StatusInternalServerError, pages.LoginPage(pages.AuthData{Error: "Could not start your session. Please try again."}))
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// GoogleLogin hands the browser to the backend OAuth flow.
func (h *Handler) GoogleLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, h.backend.GoogleLoginURL())
}

// AuthCallback receives the token the backend appends after Google sign-in.
func (h *Handler) AuthCallback(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Redirect(http.StatusFound, "/login?error=missing_token")
		return
	}
	h.startSession(c, &api.AuthResponse{Token: token, User: &api.User{Name: c.Query("name")}})
}

func (h *Handler) Logout(c *gin.Context) {
	if id := sessionID(c); id != "" {
		h.wizards.DiscardSession(id)
	}
	h.sessions.End(c)
	c.Redirect(http.StatusSeeOther, "/login")
}
