package components

import (
	"strings"

	"github.com/a-h/templ"
)

// Document is the html skeleton shared by every page.
func Document(title string, body templ.Component) templ.Component {
	return Func(func(h *HTML) {
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Rawf(`<title>%s</title>`, title)
		h.Raw(`<script src="https://cdn.tailwindcss.com"></script>`)
		h.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`)
		h.Raw(`</head><body class="bg-gray-50 text-gray-900 antialiased">`)
		h.Render(body)
		h.Raw(`<div id="toasts"></div></body></html>`)
	})
}

// Shell wraps a dashboard page in the sidebar and top bar.
func Shell(d ShellData, body templ.Component) templ.Component {
	title := "Beam"
	if d.Title != "" {
		title = d.Title + " · Beam"
	}
	return Document(title, Func(func(h *HTML) {
		h.Raw(`<div class="flex min-h-screen">`)
		h.Raw(`<aside class="hidden md:flex w-60 flex-col border-r bg-white p-4 gap-1">`)
		h.Raw(`<a href="/dashboard" class="flex items-center gap-2 px-2 mb-6 text-xl font-bold">`)
		h.Render(Logo(28))
		h.Raw(`<span>Beam</span></a>`)
		for _, item := range Nav {
			active := item.Href == d.Active
			h.Rawf(`<a href="%s" class="%s">%s</a>`, templ.URL(item.Href),
				Class("rounded-lg px-3 py-2 text-sm font-medium text-gray-600 hover:bg-gray-100",
					when(active, "bg-blue-50 text-blue-700 hover:bg-blue-50")),
				item.Label)
		}
		h.Raw(`</aside><div class="flex-1 flex flex-col">`)
		h.Raw(`<header class="flex items-center justify-between border-b bg-white px-4 md:px-8 h-16">`)
		h.Rawf(`<span class="text-sm text-gray-500">%s</span>`, d.Title)
		h.Raw(`<div class="flex items-center gap-3">`)
		h.Rawf(`<span class="flex h-8 w-8 items-center justify-center rounded-full bg-blue-600 text-sm font-semibold text-white">%s</span>`, initial(d.UserName))
		h.Rawf(`<span class="hidden sm:inline text-sm font-medium">%s</span>`, d.UserName)
		h.Raw(`<form method="post" action="/logout"><button class="text-sm text-gray-500 hover:text-red-600">Log out</button></form>`)
		h.Raw(`</div></header><main class="flex-1">`)
		h.Render(body)
		h.Raw(`</main></div></div>`)
	}))
}

// Logo is the Beam mark at the given pixel size.
func Logo(size int) templ.Component {
	return Func(func(h *HTML) {
		h.Rawf(`<svg width="%d" height="%d" viewBox="0 0 32 32" fill="none" xmlns="http://www.w3.org/2000/svg">`, size, size)
		h.Raw(`<rect x="2" y="2" width="28" height="28" rx="8" fill="#2563eb"/>`)
		h.Raw(`<path d="M20 2L10 30" stroke="white" stroke-width="3" stroke-linecap="round"/>`)
		h.Raw(`<rect x="7" y="10" width="3" height="3" rx="1" fill="white" fill-opacity="0.9"/>`)
		h.Raw(`<rect x="7" y="18" width="3" height="3" rx="1" fill="white" fill-opacity="0.9"/>`)
		h.Raw(`<rect x="22" y="10" width="3" height="3" rx="1" fill="white" fill-opacity="0.9"/>`)
		h.Raw(`<circle cx="21.5" cy="20.5" r="2.5" fill="#bfdbfe"/></svg>`)
	})
}

// PageHeader renders a page title with an optional subtitle and action.
func PageHeader(title, subtitle string, action templ.Component) templ.Component {
	return Func(func(h *HTML) {
		h.Raw(`<div class="flex flex-col sm:flex-row sm:items-center justify-between gap-4">`)
		h.Rawf(`<div><h1 class="text-2xl md:text-3xl font-bold tracking-tight">%s</h1>`, title)
		if subtitle != "" {
			h.Rawf(`<p class="text-gray-500 mt-1">%s</p>`, subtitle)
		}
		h.Raw(`</div>`)
		h.Render(action)
		h.Raw(`</div>`)
	})
}

// LinkButton is an anchor styled as the primary button.
func LinkButton(href templ.SafeURL, label string) templ.Component {
	return Func(func(h *HTML) {
		h.Rawf(`<a href="%s" class="inline-flex items-center justify-center gap-2 rounded-xl bg-blue-600 px-5 py-2.5 text-sm font-medium text-white shadow-sm hover:bg-blue-700">%s</a>`, href, label)
	})
}

func when(cond bool, classes string) string {
	if cond {
		return classes
	}
	return ""
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "U"
	}
	return strings.ToUpper(string([]rune(name)[:1]))
}
