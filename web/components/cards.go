package components

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/internal/analytics"
	"github.com/cristianadrielbraun/beam/internal/api"
)

// StatCard shows one headline number.
func StatCard(title, value string) templ.Component {
	return Func(func(h *HTML) {
		h.Raw(`<div class="rounded-xl border bg-white p-6 shadow-sm">`)
		h.Rawf(`<p class="text-sm font-medium text-gray-500">%s</p>`, title)
		h.Rawf(`<p class="mt-2 text-3xl font-bold">%s</p>`, value)
		h.Raw(`</div>`)
	})
}

// Breakdown lists the top entries of a count map with percentage bars.
func Breakdown(title string, rows []analytics.Row) templ.Component {
	return Func(func(h *HTML) {
		h.Raw(`<div class="rounded-xl border bg-white p-6 shadow-sm">`)
		h.Rawf(`<h3 class="mb-4 font-semibold">%s</h3>`, title)
		if len(rows) == 0 {
			h.Raw(`<p class="text-sm text-gray-400">No data yet</p></div>`)
			return
		}
		h.Raw(`<ul class="space-y-3">`)
		for _, r := range rows {
			h.Raw(`<li>`)
			h.Rawf(`<div class="flex justify-between text-sm"><span class="font-medium">%s</span><span class="text-gray-500">%d (%d%%)</span></div>`, r.Label, r.Count, r.Percent)
			h.Rawf(`<div class="mt-1 h-2 rounded-full bg-gray-100"><div class="h-2 rounded-full bg-blue-500" style="width:%d%%"></div></div>`, min(r.Percent, 100))
			h.Raw(`</li>`)
		}
		h.Raw(`</ul></div>`)
	})
}

// QRCard is one code in the list view.
func QRCard(rec api.Record) templ.Component {
	return Func(func(h *HTML) {
		id := rec.ID.String()
		h.Rawf(`<div data-qr="%s" class="flex flex-col rounded-xl border bg-white p-4 shadow-sm">`, id)
		h.Rawf(`<img src="%s" alt="%s" loading="lazy" class="mx-auto h-36 w-36 rounded-lg border bg-white object-contain">`, QRURL(rec.ID, "/image"), rec.DisplayName())
		h.Rawf(`<h3 class="mt-3 truncate font-semibold">%s</h3>`, rec.DisplayName())
		h.Rawf(`<p class="text-xs font-medium uppercase text-blue-600">%s</p>`, rec.QRType)
		h.Rawf(`<p class="truncate text-sm text-gray-500">%s</p>`, rec.TargetURL)
		h.Rawf(`<p class="mt-2 text-sm"><span class="font-semibold">%d</span> scans</p>`, rec.ScanCount)
		h.Raw(`<div class="mt-4 flex flex-wrap gap-2 text-sm">`)
		h.Rawf(`<a href="%s" class="text-blue-600 hover:underline">Analytics</a>`, QRURL(rec.ID, "/analytics"))
		h.Rawf(`<a href="%s" class="text-blue-600 hover:underline">Edit</a>`, QRURL(rec.ID, "/edit"))
		h.Rawf(`<a href="%s" class="text-blue-600 hover:underline">Download</a>`, QRURL(rec.ID, "/image?download=1"))
		h.Rawf(`<form method="post" action="%s" onsubmit="return confirm('Are you sure you want to delete this QR?')" class="ml-auto">`, QRURL(rec.ID, "/delete"))
		h.Raw(`<button class="text-red-600 hover:underline">Delete</button></form>`)
		h.Raw(`</div></div>`)
	})
}

// QRRow is the compact list entry used on the overview and project pages.
func QRRow(rec api.Record, action templ.Component) templ.Component {
	return Func(func(h *HTML) {
		h.Raw(`<li class="flex items-center gap-4 py-3">`)
		h.Rawf(`<img src="%s" alt="" class="h-12 w-12 rounded border bg-white">`, QRURL(rec.ID, "/image"))
		h.Rawf(`<div class="min-w-0 flex-1"><p class="truncate font-medium">%s</p><p class="truncate text-xs text-gray-500">%s · %s</p></div>`,
			rec.DisplayName(), strings.ToUpper(rec.QRType), rec.TargetURL)
		h.Rawf(`<span class="text-sm text-gray-500">%s scans</span>`, strconv.Itoa(rec.ScanCount))
		h.Render(action)
		h.Raw(`</li>`)
	})
}

// EmptyState is shown where a list has nothing to show.
func EmptyState(msg string, action templ.Component) templ.Component {
	return Func(func(h *HTML) {
		h.Raw(`<div class="rounded-xl border border-dashed bg-white p-10 text-center">`)
		h.Rawf(`<p class="text-gray-500">%s</p>`, msg)
		if action != nil {
			h.Raw(`<div class="mt-4">`).Render(action).Raw(`</div>`)
		}
		h.Raw(`</div>`)
	})
}
