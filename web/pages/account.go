package pages

import (
	"fmt"

	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/web/components"
)

// PlanLimit is the number of codes the Pro plan includes.
const PlanLimit = 50

type BillingData struct {
	Used int
}

func BillingPage(shell components.ShellData, d BillingData) templ.Component {
	pct := min(100, d.Used*100/PlanLimit)
	return components.Shell(shell, components.Func(func(h *components.HTML) {
		h.Raw(`<div class="mx-auto max-w-3xl space-y-6 p-4 md:p-8">`)
		h.Render(components.PageHeader("Billing", "Your plan and usage.", nil))
		h.Raw(`<div class="space-y-4 rounded-xl border bg-white p-6 shadow-sm">`)
		h.Raw(`<div class="flex items-center justify-between"><div><p class="text-sm text-gray-500">Current plan</p><p class="text-xl font-bold">Pro Plan</p></div>`)
		h.Raw(`<span class="rounded-full bg-green-100 px-3 py-1 text-xs font-semibold text-green-700">Active</span></div>`)
		h.Rawf(`<div><div class="flex justify-between text-sm"><span>QR codes</span><span>%s</span></div>`, fmt.Sprintf("%d used of %d limit", d.Used, PlanLimit))
		h.Rawf(`<div class="mt-2 h-2 rounded-full bg-gray-100"><div class="h-2 rounded-full bg-blue-600" style="width:%d%%"></div></div></div>`, pct)
		h.Raw(`</div></div>`)
	}))
}

type SettingsData struct {
	Name    string
	Email   string
	Error   string
	Success bool
}

func SettingsPage(shell components.ShellData, d SettingsData) templ.Component {
	return components.Shell(shell, components.Func(func(h *components.HTML) {
		h.Raw(`<div class="mx-auto max-w-2xl space-y-6 p-4 md:p-8">`)
		h.Render(components.PageHeader("Settings", "Manage your profile and password.", nil))
		h.Render(components.Alert(components.AlertError, d.Error))
		if d.Success {
			h.Render(components.Alert(components.AlertSuccess, "Profile updated successfully!"))
		}
		h.Raw(`<form method="post" action="/dashboard/settings" class="space-y-6 rounded-xl border bg-white p-6 shadow-sm">`)
		h.Raw(`<section class="space-y-4"><h3 class="font-semibold">Profile</h3>`)
		field(h, "Name", "text", "name", d.Name)
		h.Rawf(`<label class="block"><span class="text-sm font-medium text-gray-700">Email</span><input type="email" value="%s" disabled class="mt-1 w-full rounded-lg border bg-gray-50 px-3 py-2 text-gray-500"></label>`, d.Email)
		h.Raw(`</section><section class="space-y-4"><h3 class="font-semibold">Change password</h3>`)
		input(h, "Current password", "current_password", "password", "", "")
		input(h, "New password", "new_password", "password", "", "")
		h.Raw(`</section><button class="rounded-lg bg-blue-600 px-5 py-2.5 font-medium text-white hover:bg-blue-700">Save changes</button></form></div>`)
	}))
}
