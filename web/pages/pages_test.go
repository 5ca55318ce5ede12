package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/internal/api"
	"github.com/cristianadrielbraun/beam/internal/content"
	"github.com/cristianadrielbraun/beam/internal/design"
	"github.com/cristianadrielbraun/beam/internal/wizard"
	"github.com/cristianadrielbraun/beam/web/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

var shell = components.ShellData{Title: "Test", UserName: "Ada"}

func TestHomePageDefault(t *testing.T) {
	out := render(t, HomePage(""))
	assert.Contains(t, out, "/api/qr?data=https%3A%2F%2Fbeam.example")
	assert.Contains(t, out, "download=1")
}

func TestDashboardZeroScans(t *testing.T) {
	out := render(t, DashboardPage(shell, OverviewData{}))
	assert.Contains(t, out, "Total QR Codes")
	assert.Contains(t, out, "0%")
	assert.Contains(t, out, "No QR codes yet.")
}

func TestDashboardRecentLimit(t *testing.T) {
	recs := make([]api.Record, 6)
	for i := range recs {
		recs[i] = api.Record{ID: api.ID(string(rune('a' + i))), Name: "code-" + string(rune('a'+i))}
	}
	out := render(t, DashboardPage(shell, OverviewData{Records: recs}))
	assert.Contains(t, out, "code-d")
	assert.NotContains(t, out, "code-e")
}

func TestAnalyticsEmpty(t *testing.T) {
	out := render(t, AnalyticsPage(shell, AnalyticsData{}))
	assert.Contains(t, out, "Global Analytics")
	assert.Contains(t, out, "No scan data available.")
	assert.Contains(t, out, "No data yet")
}

func TestQRAnalytics(t *testing.T) {
	out := render(t, QRAnalyticsPage(shell, QRAnalyticsData{
		Record:  api.Record{Name: "Flyer", TargetURL: "https://x.io"},
		Summary: api.Summary{TotalScans: 3, Countries: map[string]int{"AR": 2, "US": 1}},
	}))
	assert.Contains(t, out, "Flyer")
	assert.Contains(t, out, "AR")
	assert.Contains(t, out, "—")
}

func TestCreateTypeStep(t *testing.T) {
	w := wizard.New("")
	out := render(t, CreatePage(shell, WizardData{Wizard: w, Base: "/dashboard/qr/create"}))
	assert.Contains(t, out, `action="/dashboard/qr/create/type"`)
	assert.Contains(t, out, "Website URL")
	assert.Contains(t, out, " disabled class=")
}

func TestCreateContentStep(t *testing.T) {
	w := wizard.New("wifi")
	out := render(t, CreatePage(shell, WizardData{Wizard: w, Base: "/b"}))
	assert.Contains(t, out, `name="ssid"`)
	assert.Contains(t, out, `name="password"`)

	w.Content.SSID = "home"
	out = render(t, CreatePage(shell, WizardData{Wizard: w, Base: "/b"}))
	assert.NotContains(t, out, " disabled class=")
}

func TestCreateDesignStep(t *testing.T) {
	w := wizard.New("url")
	w.Content.URL = "example.com"
	require.NoError(t, w.Next())
	w.Design.FrameStyle = design.FrameBanner

	out := render(t, CreatePage(shell, WizardData{Wizard: w, Base: "/b", Version: 7}))
	assert.Contains(t, out, `src="/b/preview.png?v=7"`)
	assert.Contains(t, out, `data-frame="banner"`)
	assert.Contains(t, out, `name="frameText"`)
	assert.Contains(t, out, wizard.FieldFrameTextColor)
}

func TestUnsafeURLsAreSanitized(t *testing.T) {
	w := wizard.New("url")
	w.Content.URL = "example.com"
	require.NoError(t, w.Next())

	out := render(t, CreatePage(shell, WizardData{Wizard: w, Base: "/b", LogoRef: `javascript:alert("x")`}))
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, `src="about:invalid#TemplFailedSanitizationURL"`)

	out = render(t, ProjectPage(shell, ProjectData{
		Project: api.Project{ID: "4", Name: "Spring"},
		Others:  []api.Record{{ID: `2"/../x`, Name: "Out"}},
	}))
	assert.Contains(t, out, `action="/dashboard/projects/4/add/2%22%2F..%2Fx"`)
}

func TestCreatePreviewAndDone(t *testing.T) {
	w := wizard.New("url")
	w.Content.URL = "example.com"
	w.Step = wizard.StepPreview
	w.Err = "quota exceeded"

	out := render(t, CreatePage(shell, WizardData{Wizard: w, Base: "/b"}))
	assert.Contains(t, out, "quota exceeded")
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "/b/download?format=jpeg")

	w.Created = &api.Record{ID: "12"}
	out = render(t, CreatePage(shell, WizardData{Wizard: w, Base: "/b"}))
	assert.Contains(t, out, "QR Code Created!")
	assert.Contains(t, out, "/dashboard/qr/12/analytics")
}

func TestEditTabs(t *testing.T) {
	w, err := wizard.FromRecord(api.Record{ID: "9", Name: "Promo", QRType: string(content.TypeURL), TargetURL: "https://a.io"})
	require.NoError(t, err)

	out := render(t, EditPage(shell, WizardData{Wizard: w, Base: "/dashboard/qr/9/edit"}, false))
	assert.Contains(t, out, `value="https://a.io"`)
	assert.Contains(t, out, "Edit Promo")

	out = render(t, EditPage(shell, WizardData{Wizard: w, Base: "/dashboard/qr/9/edit", Tab: "design"}, true))
	assert.Contains(t, out, `name="dotShape"`)
	assert.Contains(t, out, "Changes saved.")
}

func TestProjectPage(t *testing.T) {
	out := render(t, ProjectPage(shell, ProjectData{
		Project: api.Project{ID: "4", Name: "Spring"},
		Members: []api.Record{{ID: "1", Name: "In"}},
		Others:  []api.Record{{ID: "2", Name: "Out"}},
	}))
	assert.Contains(t, out, `action="/dashboard/projects/4/remove/1"`)
	assert.Contains(t, out, `action="/dashboard/projects/4/add/2"`)
}

func TestBillingUsage(t *testing.T) {
	out := render(t, BillingPage(shell, BillingData{Used: 12}))
	assert.Contains(t, out, "12 used of 50 limit")
	assert.Contains(t, out, "width:24%")
}

func TestSettingsSuccess(t *testing.T) {
	out := render(t, SettingsPage(shell, SettingsData{Name: "Ada", Success: true}))
	assert.Contains(t, out, "Profile updated successfully!")
}
