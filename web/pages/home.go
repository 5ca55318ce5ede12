// Package pages assembles full pages from components.
package pages

import (
	"net/url"

	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/web/components"
)

const homeDefault = "https://beam.example"

// HomePage is the anonymous landing generator: type a link, get a branded
// code. The preview refreshes through htmx as the visitor types.
func HomePage(data string) templ.Component {
	if data == "" {
		data = homeDefault
	}
	q := url.Values{"data": {data}, "logo": {"beam"}}

	return components.Document("Beam · Dynamic QR codes", components.Func(func(h *components.HTML) {
		h.Raw(`<header class="flex items-center justify-between px-6 py-4 max-w-6xl mx-auto">`)
		h.Raw(`<a href="/" class="flex items-center gap-2 text-xl font-bold">`).Render(components.Logo(32)).Raw(`<span>Beam</span></a>`)
		h.Raw(`<nav class="flex items-center gap-4 text-sm font-medium"><a href="/login" class="text-gray-600 hover:text-gray-900">Log in</a>`)
		h.Render(components.LinkButton(templ.URL("/signup"), "Get started"))
		h.Raw(`</nav></header>`)

		h.Raw(`<main class="mx-auto grid max-w-6xl gap-12 px-6 py-16 md:grid-cols-2 md:items-center">`)
		h.Raw(`<section><h1 class="text-4xl md:text-5xl font-extrabold tracking-tight">QR codes that <span class="text-blue-600">track every scan</span>.</h1>`)
		h.Raw(`<p class="mt-4 text-lg text-gray-500">Create styled, dynamic QR codes, change where they point at any time and see who scans them.</p>`)
		h.Raw(`<form method="get" action="/" class="mt-8 flex gap-2">`)
		h.Rawf(`<input type="text" name="data" value="%s" placeholder="Paste a link" hx-get="/" hx-trigger="keyup changed delay:300ms" hx-select="#preview" hx-target="#preview" hx-swap="outerHTML" class="flex-1 rounded-xl border px-4 py-3 shadow-sm focus:border-blue-500 focus:outline-none">`, data)
		h.Raw(`<button class="rounded-xl bg-blue-600 px-5 py-3 font-medium text-white hover:bg-blue-700">Generate</button></form></section>`)

		h.Raw(`<section id="preview" class="flex flex-col items-center gap-4">`)
		h.Raw(`<div class="rounded-2xl border bg-white p-6 shadow-lg">`)
		h.Rawf(`<img src="%s" width="300" height="300" alt="QR code preview">`, templ.URL("/api/qr?"+q.Encode()))
		h.Raw(`</div><div class="flex gap-3 text-sm font-medium">`)
		for _, f := range []string{"png", "jpeg"} {
			dq := url.Values{"data": {data}, "logo": {"beam"}, "format": {f}, "download": {"1"}}
			h.Rawf(`<a href="%s" class="rounded-lg border bg-white px-4 py-2 hover:bg-gray-50">Download %s</a>`, templ.URL("/api/qr?"+dq.Encode()), f)
		}
		h.Raw(`</div></section></main>`)
	}))
}
