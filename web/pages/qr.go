package pages

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/internal/analytics"
	"github.com/cristianadrielbraun/beam/internal/api"
	"github.com/cristianadrielbraun/beam/web/components"
)

type QRListData struct {
	Records []api.Record
	Query   string
	Error   string
}

func QRListPage(shell components.ShellData, d QRListData) templ.Component {
	return components.Shell(shell, components.Func(func(h *components.HTML) {
		h.Raw(`<div class="mx-auto max-w-7xl space-y-6 p-4 md:p-8">`)
		h.Render(components.PageHeader("My QR Codes", "Manage and track your codes.", components.LinkButton(templ.URL("/dashboard/qr/create"), "+ Create QR Code")))
		h.Render(components.Alert(components.AlertError, d.Error))
		h.Raw(`<form method="get" action="/dashboard/qr">`)
		h.Rawf(`<input type="search" name="q" value="%s" placeholder="Search by name" class="w-full max-w-sm rounded-lg border px-3 py-2 focus:border-blue-500 focus:outline-none"></form>`, d.Query)
		if len(d.Records) == 0 {
			msg := "No QR codes yet."
			if d.Query != "" {
				msg = "No QR codes match your search."
			}
			h.Render(components.EmptyState(msg, nil))
		} else {
			h.Raw(`<div class="grid grid-cols-1 gap-6 sm:grid-cols-2 lg:grid-cols-3 xl:grid-cols-4">`)
			for _, rec := range d.Records {
				h.Render(components.QRCard(rec))
			}
			h.Raw(`</div>`)
		}
		h.Raw(`</div>`)
	}))
}

type QRAnalyticsData struct {
	Record  api.Record
	Summary api.Summary
}

func QRAnalyticsPage(shell components.ShellData, d QRAnalyticsData) templ.Component {
	s := d.Summary
	return components.Shell(shell, components.Func(func(h *components.HTML) {
		h.Raw(`<div class="mx-auto max-w-6xl space-y-8 p-4 md:p-8">`)
		h.Raw(`<a href="/dashboard/qr" class="text-sm text-gray-500 hover:text-gray-900">← Back to QR codes</a>`)
		h.Render(components.PageHeader(d.Record.DisplayName(), d.Record.TargetURL, nil))
		h.Raw(`<div class="grid grid-cols-1 gap-6 md:grid-cols-3">`)
		h.Render(components.StatCard("Total Scans", strconv.Itoa(s.TotalScans)))
		h.Render(components.StatCard("Top Country", analytics.TopKey(s.Countries)))
		h.Render(components.StatCard("Top Device", analytics.TopKey(s.Devices)))
		h.Raw(`</div><div class="grid grid-cols-1 gap-6 md:grid-cols-3">`)
		breakdowns(h, s)
		h.Raw(`</div></div>`)
	}))
}

func breakdowns(h *components.HTML, s api.Summary) {
	h.Render(components.Breakdown("Countries", analytics.Breakdown(s.Countries, s.TotalScans)))
	h.Render(components.Breakdown("Devices", analytics.Breakdown(s.Devices, s.TotalScans)))
	h.Render(components.Breakdown("Browsers", analytics.Breakdown(s.Browsers, s.TotalScans)))
}

type AnalyticsData struct {
	Summary api.Summary
	Series  []api.TimePoint
}

func AnalyticsPage(shell components.ShellData, d AnalyticsData) templ.Component {
	s := d.Summary
	counts := make([]int, len(d.Series))
	for i, p := range d.Series {
		counts[i] = p.Count
	}
	scale := analytics.SeriesScale(counts)

	return components.Shell(shell, components.Func(func(h *components.HTML) {
		h.Raw(`<div class="mx-auto max-w-7xl space-y-8 p-4 md:p-8">`)
		h.Render(components.PageHeader("Global Analytics", "Performance across all your QR codes.", nil))
		h.Raw(`<div class="grid grid-cols-1 gap-6 md:grid-cols-3">`)
		h.Render(components.StatCard("Total Scans", strconv.Itoa(s.TotalScans)))
		h.Render(components.StatCard("Unique Visitors", strconv.Itoa(s.UniqueIPs)))
		h.Render(components.StatCard("Top Device", analytics.TopKey(s.Devices)))
		h.Raw(`</div>`)

		h.Raw(`<div class="rounded-xl border bg-white p-6 shadow-sm"><h3 class="font-semibold">Scan Performance</h3><div class="flex h-64 items-end gap-2 pt-4">`)
		if len(d.Series) == 0 {
			h.Raw(`<div class="flex h-full w-full items-center justify-center text-sm text-gray-400">No scan data available.</div>`)
		}
		for _, p := range d.Series {
			h.Rawf(`<div class="flex flex-1 flex-col justify-end" title="%s: %d Scans"><div class="min-h-[4px] w-full rounded-t-md bg-blue-100 hover:bg-blue-500" style="height:%.1f%%"></div></div>`,
				p.Timestamp.Format("Jan 2, 2006"), p.Count, analytics.BarHeight(p.Count, scale))
		}
		h.Raw(`</div></div><div class="grid grid-cols-1 gap-6 md:grid-cols-3">`)
		breakdowns(h, s)
		h.Raw(`</div></div>`)
	}))
}
