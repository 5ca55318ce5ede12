package handlers

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cristianadrielbraun/beam/internal/api"
	"github.com/cristianadrielbraun/beam/internal/render"
	"github.com/cristianadrielbraun/beam/internal/session"
	"github.com/cristianadrielbraun/beam/internal/wizard"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBackend struct {
	mu sync.Mutex

	loginErr  error
	listErr   error
	records   []api.Record
	summaries map[api.ID]api.Summary
	summary   api.Summary
	series    []api.TimePoint
	projects  []api.Project
	members   []api.Record
	settings  error

	created  []api.CreateQRRequest
	updated  []api.UpdateQRRequest
	deleted  []api.ID
	added    [][2]api.ID
	profiles []api.SettingsRequest
}

func (f *fakeBackend) GoogleLoginURL() string { return "https://backend.test/auth/google/login" }

func (f *fakeBackend) Login(_ context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &api.AuthResponse{Token: "tok", User: &api.User{ID: "1", Name: "Ada", Email: req.Email}}, nil
}

func (f *fakeBackend) Register(_ context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	return &api.AuthResponse{Token: "tok", User: &api.User{Name: req.Name, Email: req.Email}}, nil
}

func (f *fakeBackend) ListQR(context.Context) ([]api.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Record(nil), f.records...), f.listErr
}

func (f *fakeBackend) GetQR(_ context.Context, id api.ID) (*api.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, &api.Error{Status: http.StatusNotFound, Message: "not found"}
}

func (f *fakeBackend) CreateQR(_ context.Context, req api.CreateQRRequest) (*api.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	return &api.Record{ID: "42", Name: req.Name}, nil
}

func (f *fakeBackend) UpdateQR(_ context.Context, _ api.ID, req api.UpdateQRRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, req)
	return nil
}

func (f *fakeBackend) DeleteQR(_ context.Context, id api.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) QRImage(context.Context, api.ID) ([]byte, string, error) {
	return []byte("PNG"), "image/png", nil
}

func (f *fakeBackend) QRSummary(_ context.Context, id api.ID) (*api.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.summaries[id]
	if !ok {
		return nil, &api.Error{Status: http.StatusInternalServerError, Message: "boom"}
	}
	return &s, nil
}

func (f *fakeBackend) DashboardSummary(context.Context) (*api.Summary, error) {
	s := f.summary
	return &s, nil
}

func (f *fakeBackend) DashboardTimeseries(context.Context) ([]api.TimePoint, error) {
	return f.series, nil
}

func (f *fakeBackend) ListProjects(context.Context) ([]api.Project, error) { return f.projects, nil }

func (f *fakeBackend) CreateProject(_ context.Context, name string) (*api.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := api.Project{ID: "p1", Name: name}
	f.projects = append(f.projects, p)
	return &p, nil
}

func (f *fakeBackend) GetProject(_ context.Context, id api.ID) (*api.Project, error) {
	return &api.Project{ID: id, Name: "Spring"}, nil
}

func (f *fakeBackend) ProjectQRs(context.Context, api.ID) ([]api.Record, error) { return f.members, nil }

func (f *fakeBackend) AddToProject(_ context.Context, pid, qid api.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, [2]api.ID{pid, qid})
	return nil
}

func (f *fakeBackend) RemoveFromProject(context.Context, api.ID, api.ID) error { return nil }

func (f *fakeBackend) UpdateSettings(_ context.Context, req api.SettingsRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles = append(f.profiles, req)
	return f.settings
}

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	backend *fakeBackend
	blobs   *render.BlobStore
	wizards *wizard.Registry
	cookie  *http.Cookie
}

func newTestServer(t *testing.T, b *fakeBackend) *testServer {
	t.Helper()
	blobs := render.NewBlobStore("/dashboard/blob")
	wizards := wizard.NewRegistry(blobs, wizard.WithPreviewOptions(render.WithSize(120, 120)))
	sessions := session.NewManager(session.NewMemoryStore(time.Hour))

	r := gin.New()
	New(Deps{
		Backend:     b,
		Sessions:    sessions,
		Wizards:     wizards,
		Blobs:       blobs,
		PreviewSize: 300,
	}).Register(r)

	return &testServer{t: t, router: r, backend: b, blobs: blobs, wizards: wizards}
}

func (s *testServer) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	s.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login() {
	s.t.Helper()
	w := s.do(http.MethodPost, "/login", url.Values{"email": {"ada@example.com"}, "password": {"x"}})
	require.Equal(s.t, http.StatusSeeOther, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.DefaultCookie {
			s.cookie = c
		}
	}
	require.NotNil(s.t, s.cookie)
}

func TestAnonymousQRPreview(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})

	w := s.do(http.MethodGet, "/api/qr?data=hello&color=%23dc2626&dot=dots", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestAnonymousQRDownloadIsWatermarked(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})

	w := s.do(http.MethodGet, "/api/qr?url=example.com&logo=beam&format=jpg&download=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "qr-code-beam.jpeg")
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))

	img, _, err := image.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 380, img.Bounds().Dx())
	assert.Equal(t, 440, img.Bounds().Dy())
}

func TestAnonymousQRRejectsBadInput(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})

	for _, target := range []string{
		"/api/qr",
		"/api/qr?url=ftp://example.com",
		"/api/qr?data=x&format=bmp",
	} {
		w := s.do(http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestHomeAndSitemap(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})

	w := s.do(http.MethodGet, "/?data=https://a.io", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https%3A%2F%2Fa.io")

	w = s.do(http.MethodGet, "/sitemap.xml", nil)
	assert.Contains(t, w.Body.String(), "<loc>https://example.com/signup</loc>")
}

func TestToast(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	w := s.do(http.MethodPost, "/api/htmx/toast", url.Values{"title": {"Saved"}, "variant": {"error"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Saved")
	assert.Contains(t, w.Body.String(), "bg-red-50")
}

func TestDashboardRequiresLogin(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	w := s.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLoginFailureShowsMessage(t *testing.T) {
	s := newTestServer(t, &fakeBackend{loginErr: &api.Error{Status: 401, Message: "Invalid credentials"}})
	w := s.do(http.MethodPost, "/login", url.Values{"email": {"a@b.c"}, "password": {"x"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Contains(t, w.Body.String(), `value="a@b.c"`)
}

func TestGoogleCallback(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})

	w := s.do(http.MethodGet, "/auth/google", nil)
	assert.Equal(t, "https://backend.test/auth/google/login", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/auth/callback", nil)
	assert.Equal(t, "/login?error=missing_token", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/auth/callback?token=abc&name=Grace", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestDashboardZeroData(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	s.login()

	w := s.do(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total QR Codes")

	w = s.do(http.MethodGet, "/dashboard/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No data yet")
	assert.Contains(t, w.Body.String(), "No scan data available.")
}

func TestQRListSearchAndScanCounts(t *testing.T) {
	b := &fakeBackend{
		records: []api.Record{
			{ID: "1", Name: "Spring Flyer", ScanCount: 1},
			{ID: "2", Name: "Menu", ScanCount: 2},
			{ID: "3", Name: "spring poster", ScanCount: 3},
		},
		summaries: map[api.ID]api.Summary{"1": {TotalScans: 17}},
	}
	s := newTestServer(t, b)
	s.login()

	w := s.do(http.MethodGet, "/dashboard/qr?q=SPRING", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Spring Flyer")
	assert.Contains(t, body, "spring poster")
	assert.NotContains(t, body, ">Menu<")
	assert.Contains(t, body, `<span class="font-semibold">17</span>`)
}

func TestUnauthorizedBackendEndsSession(t *testing.T) {
	b := &fakeBackend{}
	s := newTestServer(t, b)
	s.login()

	b.listErr = &api.Error{Status: http.StatusUnauthorized, Message: "expired"}
	w := s.do(http.MethodGet, "/dashboard/qr", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestQRImageDownloadName(t *testing.T) {
	s := newTestServer(t, &fakeBackend{records: []api.Record{{ID: "5", Name: "Flyer"}}})
	s.login()

	w := s.do(http.MethodGet, "/dashboard/qr/5/image?download=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Flyer.png"`, w.Header().Get("Content-Disposition"))

	w = s.do(http.MethodGet, "/dashboard/qr/9/image?download=1", nil)
	assert.Equal(t, `attachment; filename="qr-code.png"`, w.Header().Get("Content-Disposition"))
}

func TestDeleteQR(t *testing.T) {
	b := &fakeBackend{}
	s := newTestServer(t, b)
	s.login()

	w := s.do(http.MethodPost, "/dashboard/qr/7/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []api.ID{"7"}, b.deleted)
}

func TestCreateWizardFlow(t *testing.T) {
	b := &fakeBackend{}
	s := newTestServer(t, b)
	s.login()

	post := func(action string, form url.Values) {
		t.Helper()
		w := s.do(http.MethodPost, "/dashboard/qr/create/"+action, form)
		require.Equal(t, http.StatusSeeOther, w.Code, action)
	}

	w := s.do(http.MethodGet, "/dashboard/qr/create/download?format=png", nil)
	assert.Equal(t, http.StatusNoContent, w.Code, "nothing rendered yet")

	post("type", url.Values{"type": {"url"}})
	post("next", url.Values{})
	post("content", url.Values{"url": {"example.com"}})
	post("next", url.Values{})
	post("color", url.Values{"field": {wizard.FieldColor}, "swatch": {"#2563eb"}})
	post("design", url.Values{"dotShape": {"rounded"}, "frameStyle": {"classic"}, "frameText": {"Scan this code please now!"}})

	w = s.do(http.MethodGet, "/dashboard/qr/create/preview.png", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = s.do(http.MethodGet, "/dashboard/qr/create/download?format=jpeg", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="qr-code.jpeg"`)

	w = s.do(http.MethodGet, "/dashboard/qr/create", nil)
	assert.Contains(t, w.Body.String(), `data-frame="classic"`)
	assert.Contains(t, w.Body.String(), "Scan this code pleas<")

	post("next", url.Values{})
	post("save", url.Values{})

	require.Len(t, b.created, 1)
	assert.Equal(t, "URL QR", b.created[0].Name)
	assert.Equal(t, "https://example.com", b.created[0].TargetURL)
	assert.Equal(t, "#2563eb", b.created[0].Design.Color)

	w = s.do(http.MethodGet, "/dashboard/qr/create", nil)
	assert.Contains(t, w.Body.String(), "QR Code Created!")

	post("reset", url.Values{})
	w = s.do(http.MethodGet, "/dashboard/qr/create", nil)
	assert.Contains(t, w.Body.String(), "What do you want to share?")
}

func TestCreateSaveIsGated(t *testing.T) {
	b := &fakeBackend{}
	s := newTestServer(t, b)
	s.login()

	post := func(action string, form url.Values) {
		t.Helper()
		w := s.do(http.MethodPost, "/dashboard/qr/create/"+action, form)
		require.Equal(t, http.StatusSeeOther, w.Code, action)
	}

	post("type", url.Values{"type": {"url"}})
	post("next", url.Values{})
	post("content", url.Values{"url": {"ab"}})
	post("save", url.Values{})
	post("save", url.Values{})
	assert.Empty(t, b.created, "content below the minimum never reaches the backend")

	post("type", url.Values{"type": {"text"}})
	post("content", url.Values{"url": {"example.com"}})
	post("next", url.Values{})
	post("save", url.Values{})
	assert.Empty(t, b.created, "design step cannot save")

	post("next", url.Values{})
	post("save", url.Values{})
	post("save", url.Values{})
	require.Len(t, b.created, 1)
	assert.Equal(t, "url", b.created[0].QRType, "type is fixed after the type step")
}

func TestCreateSeedType(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	s.login()

	w := s.do(http.MethodGet, "/dashboard/qr/create?type=wifi", nil)
	assert.Equal(t, http.StatusFound, w.Code)

	w = s.do(http.MethodGet, "/dashboard/qr/create", nil)
	assert.Contains(t, w.Body.String(), `name="ssid"`)
}

func TestEditFlow(t *testing.T) {
	b := &fakeBackend{records: []api.Record{{ID: "9", Name: "Promo", QRType: "url", TargetURL: "https://old.io"}}}
	s := newTestServer(t, b)
	s.login()

	w := s.do(http.MethodGet, "/dashboard/qr/9/edit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="https://old.io"`)

	w = s.do(http.MethodPost, "/dashboard/qr/9/edit/content", url.Values{"url": {"new.io"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = s.do(http.MethodPost, "/dashboard/qr/9/edit/save", url.Values{})
	assert.Equal(t, "/dashboard/qr/9/edit?saved=1", w.Header().Get("Location"))
	require.Len(t, b.updated, 1)
	assert.Equal(t, "https://new.io", b.updated[0].TargetURL)
	assert.Equal(t, "Promo", b.updated[0].Name)

	s.do(http.MethodPost, "/dashboard/qr/9/edit/content", url.Values{"url": {"ab"}})
	w = s.do(http.MethodPost, "/dashboard/qr/9/edit/save", url.Values{})
	assert.Equal(t, "/dashboard/qr/9/edit", w.Header().Get("Location"))
	assert.Len(t, b.updated, 1, "invalid content is not sent")

	w = s.do(http.MethodGet, "/dashboard/qr/404/edit", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func (s *testServer) upload(target, field, filename string, data []byte) *httptest.ResponseRecorder {
	s.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(s.t, err)
	_, err = fw.Write(data)
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(s.cookie)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

var blobRef = regexp.MustCompile(`/dashboard/blob/[0-9a-f-]+`)

func TestLogoUploadBlobLifecycle(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	s.login()

	s.do(http.MethodPost, "/dashboard/qr/create/type", url.Values{"type": {"url"}})
	s.do(http.MethodPost, "/dashboard/qr/create/next", url.Values{})
	s.do(http.MethodPost, "/dashboard/qr/create/content", url.Values{"url": {"example.com"}})
	s.do(http.MethodPost, "/dashboard/qr/create/next", url.Values{})

	var logo bytes.Buffer
	require.NoError(t, png.Encode(&logo, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	w := s.upload("/dashboard/qr/create/logo", "logo", "logo.png", logo.Bytes())
	require.Equal(t, http.StatusSeeOther, w.Code)

	page := s.do(http.MethodGet, "/dashboard/qr/create", nil).Body.String()
	ref := blobRef.FindString(page)
	require.NotEmpty(t, ref)

	w = s.do(http.MethodGet, ref, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, logo.Bytes(), w.Body.Bytes())

	s.do(http.MethodPost, "/dashboard/qr/create/logo", url.Values{"remove": {"1"}})
	w = s.do(http.MethodGet, ref, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, s.blobs.Revoked())
}

func TestUnauthorizedBackendReleasesWorkspaces(t *testing.T) {
	b := &fakeBackend{}
	s := newTestServer(t, b)
	s.login()

	s.do(http.MethodPost, "/dashboard/qr/create/type", url.Values{"type": {"url"}})
	s.do(http.MethodPost, "/dashboard/qr/create/next", url.Values{})
	s.do(http.MethodPost, "/dashboard/qr/create/content", url.Values{"url": {"example.com"}})
	s.do(http.MethodPost, "/dashboard/qr/create/next", url.Values{})

	var logo bytes.Buffer
	require.NoError(t, png.Encode(&logo, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	require.Equal(t, http.StatusSeeOther, s.upload("/dashboard/qr/create/logo", "logo", "logo.png", logo.Bytes()).Code)
	require.Equal(t, 1, s.blobs.Live())

	b.listErr = &api.Error{Status: http.StatusUnauthorized, Message: "expired"}
	w := s.do(http.MethodGet, "/dashboard/qr", nil)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	assert.Equal(t, 0, s.wizards.Len())
	assert.Equal(t, 0, s.blobs.Live())
	assert.Equal(t, 1, s.blobs.Revoked())
}

func TestProjects(t *testing.T) {
	b := &fakeBackend{
		records: []api.Record{{ID: "1", Name: "In", ProjectID: "4"}, {ID: "2", Name: "Out"}},
		members: []api.Record{{ID: "1", Name: "In", ProjectID: "4"}},
	}
	s := newTestServer(t, b)
	s.login()

	w := s.do(http.MethodPost, "/dashboard/projects", url.Values{"name": {"Spring"}})
	assert.Equal(t, "/dashboard/projects", w.Header().Get("Location"))
	w = s.do(http.MethodGet, "/dashboard/projects", nil)
	assert.Contains(t, w.Body.String(), "Spring")

	w = s.do(http.MethodGet, "/dashboard/projects/4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `/dashboard/projects/4/add/2`)
	assert.NotContains(t, w.Body.String(), `/dashboard/projects/4/add/1`)

	w = s.do(http.MethodPost, "/dashboard/projects/4/add/2", url.Values{})
	assert.Equal(t, "/dashboard/projects/4", w.Header().Get("Location"))
	assert.Equal(t, [][2]api.ID{{"4", "2"}}, b.added)
}

func TestSettingsUpdatesSessionName(t *testing.T) {
	b := &fakeBackend{}
	s := newTestServer(t, b)
	s.login()

	w := s.do(http.MethodPost, "/dashboard/settings", url.Values{"name": {"Ada L."}, "current_password": {""}, "new_password": {""}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Profile updated successfully!")
	require.Len(t, b.profiles, 1)
	assert.Empty(t, b.profiles[0].NewPassword)

	w = s.do(http.MethodGet, "/dashboard/settings", nil)
	assert.Contains(t, w.Body.String(), `value="Ada L."`)

	b.settings = &api.Error{Status: 400, Message: "Current password is incorrect"}
	w = s.do(http.MethodPost, "/dashboard/settings", url.Values{"name": {"Ada"}, "new_password": {"n"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Current password is incorrect")
}

func TestBillingUsage(t *testing.T) {
	s := newTestServer(t, &fakeBackend{records: make([]api.Record, 3)})
	s.login()
	w := s.do(http.MethodGet, "/dashboard/billing", nil)
	assert.Contains(t, w.Body.String(), "3 used of 50 limit")
}
