package pages

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/internal/analytics"
	"github.com/cristianadrielbraun/beam/internal/api"
	"github.com/cristianadrielbraun/beam/internal/content"
	"github.com/cristianadrielbraun/beam/web/components"
)

// RecentLimit is how many codes the overview lists.
const RecentLimit = 4

type OverviewData struct {
	Records []api.Record
	Summary api.Summary
}

func DashboardPage(shell components.ShellData, d OverviewData) templ.Component {
	s := d.Summary
	return components.Shell(shell, components.Func(func(h *components.HTML) {
		h.Raw(`<div class="mx-auto max-w-7xl space-y-8 p-4 md:p-8">`)
		h.Render(components.PageHeader("Dashboard", "", components.LinkButton(templ.URL("/dashboard/qr/create"), "+ Create QR Code")))

		h.Raw(`<div class="grid grid-cols-1 gap-4 sm:grid-cols-2 lg:grid-cols-4 md:gap-6">`)
		h.Render(components.StatCard("Total QR Codes", strconv.Itoa(len(d.Records))))
		h.Render(components.StatCard("Total Scans", strconv.Itoa(s.TotalScans)))
		h.Render(components.StatCard("Unique Visitors", strconv.Itoa(s.UniqueIPs)))
		h.Render(components.StatCard("Active Devices", strconv.Itoa(len(s.Devices))))
		h.Raw(`</div>`)

		h.Raw(`<section class="space-y-4"><h2 class="text-lg md:text-xl font-semibold text-gray-800">Create new QR Code</h2>`)
		h.Raw(`<div class="grid grid-cols-2 gap-3 md:grid-cols-3 lg:grid-cols-6 md:gap-4">`)
		for _, t := range content.Types {
			h.Rawf(`<a href="%s" class="rounded-xl border bg-white p-4 text-center text-sm font-medium shadow-sm hover:border-blue-300">%s</a>`, templ.URL("/dashboard/qr/create?type="+url.QueryEscape(string(t.Type))), t.Label)
		}
		h.Raw(`</div></section>`)

		h.Raw(`<div class="grid grid-cols-1 gap-6 lg:grid-cols-3">`)
		h.Raw(`<div class="rounded-xl border bg-white p-6 shadow-sm"><h3 class="mb-4 font-semibold">Devices</h3><ul class="space-y-3 text-sm">`)
		for _, dev := range []string{"Mobile", "Desktop", "Tablet"} {
			h.Rawf(`<li class="flex justify-between"><span>%s</span><span class="font-semibold">%s</span></li>`, dev, analytics.DevicePercent(s.Devices, dev, s.TotalScans))
		}
		h.Raw(`</ul></div>`)

		h.Raw(`<div class="rounded-xl border bg-white p-6 shadow-sm lg:col-span-2"><div class="mb-4 flex items-center justify-between"><h3 class="font-semibold">Recent QR Codes</h3>`)
		if len(d.Records) > 0 {
			h.Raw(`<a href="/dashboard/qr" class="text-sm text-blue-600 hover:underline">View All</a>`)
		}
		h.Raw(`</div>`)
		if len(d.Records) == 0 {
			h.Render(components.EmptyState("No QR codes yet.", components.LinkButton(templ.URL("/dashboard/qr/create"), "Create your first")))
		} else {
			h.Raw(`<ul class="divide-y">`)
			for _, rec := range d.Records[:min(RecentLimit, len(d.Records))] {
				h.Render(components.QRRow(rec, nil))
			}
			h.Raw(`</ul>`)
		}
		h.Raw(`</div></div></div>`)
	}))
}
