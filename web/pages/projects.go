package pages

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/internal/api"
	"github.com/cristianadrielbraun/beam/web/components"
)

type ProjectsData struct {
	Projects []api.Project
	Error    string
}

func ProjectsPage(shell components.ShellData, d ProjectsData) templ.Component {
	return components.Shell(shell, components.Func(func(h *components.HTML) {
		h.Raw(`<div class="mx-auto max-w-5xl space-y-6 p-4 md:p-8">`)
		h.Render(components.PageHeader("Projects", "Group your codes by campaign or client.", nil))
		h.Render(components.Alert(components.AlertError, d.Error))
		h.Raw(`<form method="post" action="/dashboard/projects" class="flex gap-2">`)
		h.Raw(`<input type="text" name="name" required placeholder="New project name" class="flex-1 rounded-lg border px-3 py-2 focus:border-blue-500 focus:outline-none">`)
		h.Raw(`<button class="rounded-lg bg-blue-600 px-5 py-2 font-medium text-white hover:bg-blue-700">Create</button></form>`)

		if len(d.Projects) == 0 {
			h.Render(components.EmptyState("No projects yet.", nil))
		} else {
			h.Raw(`<div class="grid grid-cols-1 gap-4 sm:grid-cols-2 lg:grid-cols-3">`)
			for _, p := range d.Projects {
				h.Rawf(`<a href="%s" class="rounded-xl border bg-white p-5 shadow-sm hover:border-blue-300">`, projectURL(p.ID, ""))
				h.Rawf(`<h3 class="font-semibold">%s</h3><p class="mt-1 text-sm text-gray-500">%s QR codes</p></a>`, p.Name, strconv.Itoa(p.Count))
			}
			h.Raw(`</div>`)
		}
		h.Raw(`</div>`)
	}))
}

type ProjectData struct {
	Project api.Project
	// Members are the codes in the project; Others can still be added.
	Members []api.Record
	Others  []api.Record
	Error   string
}

func ProjectPage(shell components.ShellData, d ProjectData) templ.Component {
	return components.Shell(shell, components.Func(func(h *components.HTML) {
		h.Raw(`<div class="mx-auto max-w-5xl space-y-6 p-4 md:p-8">`)
		h.Raw(`<a href="/dashboard/projects" class="text-sm text-gray-500 hover:text-gray-900">← All projects</a>`)
		h.Render(components.PageHeader(d.Project.Name, strconv.Itoa(len(d.Members))+" QR codes", nil))
		h.Render(components.Alert(components.AlertError, d.Error))

		h.Raw(`<section class="rounded-xl border bg-white p-6 shadow-sm"><h3 class="mb-4 font-semibold">In this project</h3>`)
		if len(d.Members) == 0 {
			h.Render(components.EmptyState("No QR codes in this project.", nil))
		} else {
			h.Raw(`<ul class="divide-y">`)
			for _, rec := range d.Members {
				h.Render(components.QRRow(rec, membership(projectURL(d.Project.ID, "/remove/"+url.PathEscape(rec.ID.String())), "Remove")))
			}
			h.Raw(`</ul>`)
		}
		h.Raw(`</section>`)

		if len(d.Others) > 0 {
			h.Raw(`<section class="rounded-xl border bg-white p-6 shadow-sm"><h3 class="mb-4 font-semibold">Add codes</h3><ul class="divide-y">`)
			for _, rec := range d.Others {
				h.Render(components.QRRow(rec, membership(projectURL(d.Project.ID, "/add/"+url.PathEscape(rec.ID.String())), "Add")))
			}
			h.Raw(`</ul></section>`)
		}
		h.Raw(`</div>`)
	}))
}

func projectURL(id api.ID, suffix string) templ.SafeURL {
	return templ.URL("/dashboard/projects/" + url.PathEscape(id.String()) + suffix)
}

func membership(action templ.SafeURL, label string) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.Rawf(`<form method="post" action="%s">`, action)
		h.Rawf(`<button class="rounded-lg border px-3 py-1.5 text-sm font-medium hover:bg-gray-50">%s</button></form>`, label)
	})
}
