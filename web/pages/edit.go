package pages

import (
	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/web/components"
)

// EditPage shows the content and design tabs of an existing code next to a
// live preview. Saving persists target and design together.
func EditPage(shell components.ShellData, d WizardData, saved bool) templ.Component {
	w := d.Wizard
	tab := d.Tab
	if tab != "design" {
		tab = "content"
	}
	return components.Shell(shell, components.Func(func(h *components.HTML) {
		h.Raw(`<div id="wizard" class="mx-auto max-w-6xl space-y-6 p-4 md:p-8">`)
		h.Raw(`<a href="/dashboard/qr" class="text-sm text-gray-500 hover:text-gray-900">← Back to QR codes</a>`)
		h.Render(components.PageHeader("Edit "+w.Name(), "Change where this code points or how it looks.", nil))
		h.Render(components.Alert(components.AlertError, w.Err))
		if saved {
			h.Render(components.Alert(components.AlertSuccess, "Changes saved."))
		}

		h.Raw(`<div class="flex gap-2 border-b">`)
		for _, t := range []string{"content", "design"} {
			h.Rawf(`<a href="%s" class="%s">%s</a>`, d.url("?tab="+t),
				components.Class("-mb-px border-b-2 border-transparent px-4 py-2 text-sm font-medium text-gray-500", when(t == tab, "border-blue-600 text-blue-600")),
				t)
		}
		h.Raw(`</div>`)

		h.Raw(`<div class="grid gap-8 lg:grid-cols-[1fr_320px]"><div class="space-y-6 rounded-2xl border bg-white p-6 shadow-sm">`)
		if tab == "design" {
			designForms(h, d)
		} else {
			contentForm(h, d, false)
		}
		h.Raw(`</div><div class="space-y-4">`)
		previewPanel(h, d)
		downloads(h, d)
		h.Rawf(`<form method="post" action="%s"><button class="w-full rounded-lg bg-blue-600 py-3 font-medium text-white hover:bg-blue-700">Save changes</button></form>`, d.url("/save"))
		h.Raw(`</div></div></div>`)
	}))
}

func when(ok bool, s string) string {
	if ok {
		return s
	}
	return ""
}
