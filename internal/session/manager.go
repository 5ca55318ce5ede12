package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cristianadrielbraun/beam/internal/api"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultCookie = "beam_session"
	DefaultTTL    = 24 * time.Hour

	contextKey = "session"
)

type idKey struct{}

// Manager ties sessions to cookies.
type Manager struct {
	store  Store
	cookie string
	ttl    time.Duration
	secure bool
	log    *zap.SugaredLogger
}

type Option func(*Manager)

func WithCookie(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.cookie = name
		}
	}
}

func WithTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

// WithSecureCookie marks the cookie https-only.
func WithSecureCookie(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		cookie: DefaultCookie,
		ttl:    DefaultTTL,
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start stores a new session for token and sets the cookie.
func (m *Manager) Start(c *gin.Context, token string, user api.User) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: time.Now(),
	}
	if err := m.store.Save(c.Request.Context(), s); err != nil {
		return nil, err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookie, s.ID, int(m.ttl.Seconds()), "/", "", m.secure, true)
	c.Set(contextKey, s)
	return s, nil
}

// Update persists changes to an existing session.
func (m *Manager) Update(ctx context.Context, s *Session) error {
	return m.store.Save(ctx, s)
}

// End deletes the current session and clears the cookie.
func (m *Manager) End(c *gin.Context) {
	if id, err := c.Cookie(m.cookie); err == nil && id != "" {
		if err := m.store.Delete(c.Request.Context(), id); err != nil {
			m.log.Warnw("session delete failed", "error", err)
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookie, "", -1, "/", "", m.secure, true)
}

// Middleware loads the session named by the cookie, if any, and attaches its
// token to the request context for backend calls.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(m.cookie)
		if err != nil || id == "" {
			c.Next()
			return
		}
		s, err := m.store.Get(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				m.log.Warnw("session lookup failed", "error", err)
			}
			c.Next()
			return
		}

		c.Set(contextKey, s)
		ctx := api.WithToken(c.Request.Context(), s.Token)
		ctx = context.WithValue(ctx, idKey{}, s.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth redirects visitors without a session to the login page.
func (m *Manager) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := From(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Expire drops the session whose request ctx carries. The backend client
// calls it when a token is rejected.
func (m *Manager) Expire(ctx context.Context) {
	id, _ := ctx.Value(idKey{}).(string)
	if id == "" {
		return
	}
	if err := m.store.Delete(ctx, id); err != nil {
		m.log.Warnw("session expire failed", "error", err)
		return
	}
	m.log.Infow("session expired by backend", "session", id)
}

// From returns the session loaded by Middleware.
func From(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok && s != nil
}
