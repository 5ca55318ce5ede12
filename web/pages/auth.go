package pages

import (
	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/web/components"
)

// AuthData fills the login and signup forms.
type AuthData struct {
	Error     string
	Name      string
	Email     string
	GoogleURL string
}

func LoginPage(d AuthData) templ.Component {
	return authPage("Log in", "Welcome back", templ.URL("/login"), d, false)
}

func SignupPage(d AuthData) templ.Component {
	return authPage("Sign up", "Create your account", templ.URL("/signup"), d, true)
}

func authPage(title, heading string, action templ.SafeURL, d AuthData, signup bool) templ.Component {
	return components.Document(title+" · Beam", components.Func(func(h *components.HTML) {
		h.Raw(`<div class="flex min-h-screen items-center justify-center p-4"><div class="w-full max-w-md space-y-6 rounded-2xl border bg-white p-8 shadow-sm">`)
		h.Raw(`<a href="/" class="flex justify-center">`).Render(components.Logo(40)).Raw(`</a>`)
		h.Rawf(`<h1 class="text-center text-2xl font-bold">%s</h1>`, heading)
		h.Render(components.Alert(components.AlertError, d.Error))
		h.Rawf(`<form method="post" action="%s" class="space-y-4">`, action)
		if signup {
			field(h, "Name", "text", "name", d.Name)
		}
		field(h, "Email", "email", "email", d.Email)
		field(h, "Password", "password", "password", "")
		h.Rawf(`<button class="w-full rounded-lg bg-blue-600 py-2.5 font-medium text-white hover:bg-blue-700">%s</button></form>`, title)
		if d.GoogleURL != "" {
			h.Raw(`<div class="relative text-center text-xs uppercase text-gray-400"><span class="bg-white px-2">or</span></div>`)
			h.Raw(`<a href="/auth/google" class="flex w-full items-center justify-center gap-2 rounded-lg border py-2.5 font-medium hover:bg-gray-50">Continue with Google</a>`)
		}
		if signup {
			h.Raw(`<p class="text-center text-sm text-gray-500">Already have an account? <a href="/login" class="text-blue-600 hover:underline">Log in</a></p>`)
		} else {
			h.Raw(`<p class="text-center text-sm text-gray-500">No account yet? <a href="/signup" class="text-blue-600 hover:underline">Sign up</a></p>`)
		}
		h.Raw(`</div></div>`)
	}))
}

func field(h *components.HTML, label, typ, name, value string) {
	h.Rawf(`<label class="block"><span class="text-sm font-medium text-gray-700">%s</span>`, label)
	h.Rawf(`<input type="%s" name="%s" value="%s" required class="mt-1 w-full rounded-lg border px-3 py-2 focus:border-blue-500 focus:outline-none"></label>`, typ, name, value)
}
