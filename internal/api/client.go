// Package api is the client for the Beam backend REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnauthorized is returned when the backend rejects the session token.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx backend response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Message extracts a user-facing message from err.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type tokenKey struct{}

// WithToken attaches the bearer token used by calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token carried by ctx.
func TokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey{}).(string)
	return t
}

type Client struct {
	base           string
	http           *http.Client
	log            *zap.SugaredLogger
	onUnauthorized func(ctx context.Context)
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.http.Timeout = d
		}
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(cl *Client) {
		if log != nil {
			cl.log = log
		}
	}
}

// WithUnauthorizedHook registers fn to run whenever the backend answers 401.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(cl *Client) { cl.onUnauthorized = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
		log:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL is the backend root every path is resolved against.
func (c *Client) BaseURL() string { return c.base }

// GoogleLoginURL is where the browser goes to start the Google sign-in.
func (c *Client) GoogleLoginURL() string { return c.base + "/auth/google/login" }

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListQR(ctx context.Context) ([]Record, error) {
	var out []Record
	if err := c.do(ctx, http.MethodGet, "/qr/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetQR(ctx context.Context, id ID) (*Record, error) {
	var out Record
	if err := c.do(ctx, http.MethodGet, "/qr/"+escape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateQR stores a new dynamic code.
func (c *Client) CreateQR(ctx context.Context, req CreateQRRequest) (*Record, error) {
	var out Record
	if err := c.do(ctx, http.MethodPost, "/qr/dynamic/url", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateQR(ctx context.Context, id ID, req UpdateQRRequest) error {
	return c.do(ctx, http.MethodPut, "/qr/"+escape(id), req, nil)
}

func (c *Client) DeleteQR(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "/qr/"+escape(id), nil, nil)
}

// QRImage fetches the stored raster of a code.
func (c *Client) QRImage(ctx context.Context, id ID) ([]byte, string, error) {
	resp, err := c.send(ctx, http.MethodGet, "/qr/"+escape(id)+"/image", nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read qr image: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) QRSummary(ctx context.Context, id ID) (*Summary, error) {
	var out Summary
	if err := c.do(ctx, http.MethodGet, "/analytics/"+escape(id)+"/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DashboardSummary(ctx context.Context) (*Summary, error) {
	var out Summary
	if err := c.do(ctx, http.MethodGet, "/analytics/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DashboardTimeseries(ctx context.Context) ([]TimePoint, error) {
	var out []TimePoint
	if err := c.do(ctx, http.MethodGet, "/analytics/dashboard/timeseries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.do(ctx, http.MethodGet, "/projects/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProject(ctx context.Context, name string) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodPost, "/projects/", map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProject(ctx context.Context, id ID) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+escape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProjectQRs(ctx context.Context, id ID) ([]Record, error) {
	var out []Record
	if err := c.do(ctx, http.MethodGet, "/projects/"+escape(id)+"/qr", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddToProject(ctx context.Context, projectID, qrID ID) error {
	return c.do(ctx, http.MethodPut, "/projects/"+escape(projectID)+"/add/"+escape(qrID), nil, nil)
}

func (c *Client) RemoveFromProject(ctx context.Context, projectID, qrID ID) error {
	return c.do(ctx, http.MethodPut, "/projects/"+escape(projectID)+"/remove/"+escape(qrID), nil, nil)
}

func (c *Client) UpdateSettings(ctx context.Context, req SettingsRequest) error {
	return c.do(ctx, http.MethodPut, "/settings/", req, nil)
}

func escape(id ID) string { return url.PathEscape(string(id)) }

// do sends a JSON request and decodes a JSON response into out when out is
// non-nil. Empty and null bodies leave out untouched.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send performs the request and turns non-2xx responses into *Error. The
// caller closes the body of a successful response.
func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	c.log.Debugw("backend call", "method", method, "path", path, "status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &Error{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
	return nil, apiErr
}

func errorMessage(r io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	b, _ := io.ReadAll(io.LimitReader(r, 64<<10))
	if err := json.Unmarshal(b, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(b))
}
