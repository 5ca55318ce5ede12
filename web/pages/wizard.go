package pages

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/internal/content"
	"github.com/cristianadrielbraun/beam/internal/design"
	"github.com/cristianadrielbraun/beam/internal/wizard"
	"github.com/cristianadrielbraun/beam/web/components"
)

// WizardData is the state a create or edit page renders from.
type WizardData struct {
	Wizard *wizard.Wizard
	// Base is the path the forms post to, e.g. /dashboard/qr/create.
	Base    string
	LogoRef string
	Version int
	// Tab selects the edit page panel: "content" or "design".
	Tab string
}

func (d WizardData) url(suffix string) templ.SafeURL { return templ.URL(d.Base + suffix) }

func CreatePage(shell components.ShellData, d WizardData) templ.Component {
	w := d.Wizard
	return components.Shell(shell, components.Func(func(h *components.HTML) {
		h.Raw(`<div id="wizard" class="mx-auto max-w-5xl space-y-6 p-4 md:p-8">`)
		h.Raw(`<div class="space-y-2 text-center"><h1 class="text-2xl sm:text-3xl font-bold tracking-tight">Create QR Code</h1>`)
		h.Raw(`<p class="text-sm sm:text-base text-gray-500">Design and customize your QR code in seconds.</p></div>`)

		if w.Done() {
			created(h, d)
			h.Raw(`</div>`)
			return
		}

		h.Render(components.Stepper(w.Step))
		h.Raw(`<div class="rounded-2xl border bg-white p-4 sm:p-8 shadow-sm">`)
		switch w.Step {
		case wizard.StepType:
			typeStep(h, d)
		case wizard.StepContent:
			contentForm(h, d, true)
		case wizard.StepDesign:
			h.Raw(`<div class="grid gap-8 lg:grid-cols-[1fr_320px]"><div class="space-y-6">`)
			designForms(h, d)
			actions(h, d, "Continue")
			h.Raw(`</div>`)
			previewPanel(h, d)
			h.Raw(`</div>`)
		case wizard.StepPreview:
			previewStep(h, d)
		}
		h.Raw(`</div></div>`)
	}))
}

func typeStep(h *components.HTML, d WizardData) {
	w := d.Wizard
	h.Raw(`<h3 class="mb-4 text-lg font-semibold">What do you want to share?</h3>`)
	h.Rawf(`<form method="post" action="%s" class="grid grid-cols-2 gap-3 md:grid-cols-3">`, d.url("/type"))
	for _, t := range content.Types {
		sel := w.Type == t.Type
		h.Rawf(`<button type="submit" name="type" value="%s" class="%s">`, string(t.Type),
			components.Class("rounded-xl border bg-white p-4 text-left hover:border-blue-300", selClass(sel)))
		h.Rawf(`<span class="block font-semibold">%s</span><span class="block text-xs text-gray-500">%s</span></button>`, t.Label, t.Desc)
	}
	h.Raw(`</form>`)
	actions(h, d, "Continue")
}

// contentForm renders the type-specific inputs. Typing re-renders the action
// bar so Continue enables as soon as the minimum is met.
func contentForm(h *components.HTML, d WizardData, withActions bool) {
	w := d.Wizard
	p := w.Content
	h.Rawf(`<form method="post" action="%s" enctype="multipart/form-data" class="space-y-4"`, d.url("/content"))
	if withActions {
		h.Rawf(` hx-post="%s" hx-trigger="input changed delay:250ms" hx-target="#wizard-actions" hx-select="#wizard-actions" hx-swap="outerHTML"`, d.url("/content"))
	}
	h.Raw(`>`)
	h.Rawf(`<h3 class="text-lg font-semibold">%s</h3>`, typeLabel(w.Type))
	switch w.Type {
	case content.TypeURL:
		input(h, "Website URL", "url", "text", p.URL, "https://example.com")
	case content.TypeText:
		h.Rawf(`<label class="block"><span class="text-sm font-medium text-gray-700">Message</span><textarea name="text" rows="4" class="mt-1 w-full rounded-lg border px-3 py-2">%s</textarea></label>`, p.Text)
	case content.TypeWiFi:
		input(h, "Network name (SSID)", "ssid", "text", p.SSID, "")
		input(h, "Password", "password", "text", p.Password, "")
	case content.TypeVCard:
		input(h, "Full name", "name", "text", p.Name, "")
		input(h, "Phone", "phone", "tel", p.Phone, "")
		input(h, "Email", "email", "email", p.Email, "")
		input(h, "Company", "company", "text", p.Company, "")
	case content.TypePDF:
		if p.File != nil {
			h.Rawf(`<p class="rounded-lg border bg-gray-50 p-4 text-sm"><span class="font-semibold">%s</span> · %s KB</p>`, p.File.Name, strconv.FormatInt((p.File.Size+1023)/1024, 10))
		}
		h.Raw(`<label class="block"><span class="text-sm font-medium text-gray-700">PDF file</span><input type="file" name="file" accept="application/pdf" class="mt-1 block w-full text-sm"></label>`)
		h.Raw(`<button class="rounded-lg border px-4 py-2 text-sm font-medium hover:bg-gray-50">Upload</button>`)
	case content.TypeMenu:
		input(h, "Menu URL", "menuURL", "text", p.MenuURL, "https://restaurant.example/menu")
	}
	if w.Type != content.TypeVCard {
		input(h, "QR name (optional)", "name", "text", p.Name, "")
	}
	h.Raw(`</form>`)
	if withActions {
		actions(h, d, "Continue")
	}
}

func input(h *components.HTML, label, name, typ, value, placeholder string) {
	h.Rawf(`<label class="block"><span class="text-sm font-medium text-gray-700">%s</span>`, label)
	h.Rawf(`<input type="%s" name="%s" value="%s" placeholder="%s" class="mt-1 w-full rounded-lg border px-3 py-2 focus:border-blue-500 focus:outline-none"></label>`, typ, name, value, placeholder)
}

func designForms(h *components.HTML, d WizardData) {
	ds := d.Wizard.Design

	h.Raw(`<section class="space-y-3"><h4 class="font-semibold">Colors</h4><div class="grid gap-4 sm:grid-cols-2">`)
	h.Render(components.ColorPicker(d.url("/color"), wizard.FieldColor, "Foreground", ds.Color))
	h.Render(components.ColorPicker(d.url("/color"), wizard.FieldBgColor, "Background", ds.BgColor))
	h.Raw(`</div></section>`)

	h.Raw(`<section class="space-y-3"><h4 class="font-semibold">Logo</h4>`)
	h.Rawf(`<form method="post" action="%s" enctype="multipart/form-data" class="space-y-3">`, d.url("/logo"))
	if d.LogoRef != "" {
		h.Rawf(`<div class="flex items-center gap-3"><img src="%s" alt="Logo" class="h-12 w-12 rounded border object-contain">`, templ.URL(d.LogoRef))
		h.Raw(`<button type="submit" name="remove" value="1" class="text-sm text-red-600 hover:underline">Remove</button></div>`)
	}
	h.Raw(`<input type="file" name="logo" accept="image/*" class="block w-full text-sm">`)
	logoURL, _ := ds.Logo.URL()
	h.Rawf(`<input type="text" name="logoURL" value="%s" placeholder="or paste an image URL" class="w-full rounded-lg border px-3 py-2 text-sm">`, logoURL)
	h.Raw(`<button class="rounded-lg border px-4 py-2 text-sm font-medium hover:bg-gray-50">Apply logo</button></form></section>`)

	h.Rawf(`<form method="post" action="%s" class="space-y-6">`, d.url("/design"))
	h.Raw(`<section class="space-y-3"><h4 class="font-semibold">Dot style</h4><div class="grid grid-cols-3 gap-2">`)
	for _, s := range design.DotShapes {
		h.Render(components.OptionButton("dotShape", string(s), strings.ReplaceAll(string(s), "-", " "), ds.DotShape == s))
	}
	h.Raw(`</div></section><section class="space-y-3"><h4 class="font-semibold">Eye style</h4><div class="grid grid-cols-3 gap-2">`)
	for _, s := range design.EyeShapes {
		h.Render(components.OptionButton("eyeShape", string(s), strings.ReplaceAll(string(s), "-", " "), ds.EyeShape == s))
	}
	h.Raw(`</div></section><section class="space-y-3"><h4 class="font-semibold">Frame</h4><div class="grid grid-cols-3 gap-2">`)
	for _, s := range design.FrameStyles {
		h.Render(components.OptionButton("frameStyle", string(s), string(s), ds.FrameStyle == s))
	}
	h.Raw(`</div>`)
	if ds.FrameStyle != design.FrameNone {
		h.Rawf(`<input type="text" name="frameText" value="%s" maxlength="%d" class="w-full rounded-lg border px-3 py-2 text-sm">`, ds.FrameText, design.MaxFrameText)
		h.Raw(`<button class="rounded-lg border px-4 py-2 text-sm font-medium hover:bg-gray-50">Update caption</button>`)
	}
	h.Raw(`</section></form>`)

	if ds.FrameStyle != design.FrameNone {
		h.Raw(`<div class="grid gap-4 sm:grid-cols-2">`)
		h.Render(components.ColorPicker(d.url("/color"), wizard.FieldFrameColor, "Frame color", ds.FrameColor))
		h.Render(components.ColorPicker(d.url("/color"), wizard.FieldFrameTextColor, "Text color", ds.FrameTextColor))
		h.Raw(`</div>`)
	}
}

func previewPanel(h *components.HTML, d WizardData) {
	img := components.Func(func(h *components.HTML) {
		h.Rawf(`<img id="qr-preview" src="%s" width="240" height="240" alt="QR preview" class="block">`, d.url("/preview.png?v="+strconv.Itoa(d.Version)))
	})
	h.Raw(`<aside class="flex flex-col items-center gap-4 lg:sticky lg:top-8">`)
	h.Render(components.Frame(d.Wizard.Design, img))
	h.Raw(`</aside>`)
}

func downloads(h *components.HTML, d WizardData) {
	h.Raw(`<div class="flex gap-3">`)
	for _, f := range []string{"png", "jpeg"} {
		h.Rawf(`<a href="%s" class="rounded-lg border px-4 py-2 text-sm font-medium hover:bg-gray-50">Download %s</a>`, d.url("/download?format="+f), strings.ToUpper(f))
	}
	h.Raw(`</div>`)
}

func previewStep(h *components.HTML, d WizardData) {
	w := d.Wizard
	h.Raw(`<div class="grid gap-8 md:grid-cols-2"><div class="flex flex-col items-center gap-4">`)
	previewPanel(h, d)
	downloads(h, d)
	h.Raw(`</div><div class="space-y-4">`)
	h.Render(components.Alert(components.AlertError, w.Err))
	h.Raw(`<dl class="space-y-2 text-sm">`)
	h.Rawf(`<div><dt class="text-gray-500">Name</dt><dd class="font-medium">%s</dd></div>`, w.Name())
	h.Rawf(`<div><dt class="text-gray-500">Type</dt><dd class="font-medium">%s</dd></div>`, typeLabel(w.Type))
	h.Rawf(`<div><dt class="text-gray-500">Content</dt><dd class="break-all font-mono text-xs">%s</dd></div>`, w.Content.TargetURL(w.Type))
	h.Raw(`</dl>`)
	h.Rawf(`<form method="post" action="%s">`, d.url("/save"))
	h.Raw(`<button class="w-full rounded-lg bg-blue-600 py-3 font-medium text-white hover:bg-blue-700">Save QR Code</button></form>`)
	h.Rawf(`<form method="post" action="%s"><button class="w-full rounded-lg border py-2.5 text-sm font-medium hover:bg-gray-50">Back</button></form>`, d.url("/back"))
	h.Raw(`</div></div>`)
}

func created(h *components.HTML, d WizardData) {
	rec := d.Wizard.Created
	h.Raw(`<div class="space-y-6 rounded-2xl border bg-white p-8 text-center shadow-sm">`)
	h.Raw(`<h2 class="text-3xl font-bold">QR Code Created!</h2>`)
	h.Raw(`<p class="text-gray-500">Your QR code has been saved to your dashboard. You can now download it or track its performance.</p>`)
	h.Raw(`<div class="flex justify-center">`)
	previewPanel(h, d)
	h.Raw(`</div><div class="flex justify-center">`)
	downloads(h, d)
	h.Raw(`</div><div class="flex flex-wrap justify-center gap-3">`)
	h.Render(components.LinkButton("/dashboard/qr", "Go to my QR codes"))
	if rec.ID != "" {
		h.Rawf(`<a href="%s" class="rounded-xl border px-5 py-2.5 text-sm font-medium hover:bg-gray-50">View analytics</a>`, components.QRURL(rec.ID, "/analytics"))
	}
	h.Rawf(`<form method="post" action="%s"><button class="rounded-xl border px-5 py-2.5 text-sm font-medium hover:bg-gray-50">Create another</button></form>`, d.url("/reset"))
	h.Raw(`</div></div>`)
}

// actions is the Back / Continue bar. Continue is disabled while the step is
// incomplete.
func actions(h *components.HTML, d WizardData, next string) {
	w := d.Wizard
	h.Raw(`<div id="wizard-actions" class="mt-8 flex justify-between border-t pt-6">`)
	if w.Step > wizard.StepType {
		h.Rawf(`<form method="post" action="%s"><button class="rounded-lg border px-6 py-2.5 font-medium text-gray-700 hover:bg-gray-50">Back</button></form>`, d.url("/back"))
	} else {
		h.Raw(`<span></span>`)
	}
	h.Rawf(`<form method="post" action="%s"><button`, d.url("/next"))
	if !w.CanAdvance() {
		h.Raw(` disabled`)
	}
	h.Rawf(` class="rounded-lg bg-blue-600 px-6 py-2.5 font-medium text-white hover:bg-blue-700 disabled:cursor-not-allowed disabled:opacity-50">%s</button></form>`, next)
	h.Raw(`</div>`)
}

func selClass(sel bool) string {
	if sel {
		return "border-blue-600 bg-blue-50 ring-1 ring-blue-600"
	}
	return ""
}

func typeLabel(t content.Type) string {
	for _, info := range content.Types {
		if info.Type == t {
			return info.Label
		}
	}
	return "Content"
}
