package components

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/internal/wizard"
)

// Stepper shows the four wizard steps with the current one highlighted.
func Stepper(current wizard.Step) templ.Component {
	return Func(func(h *HTML) {
		h.Raw(`<nav aria-label="Progress" class="rounded-2xl border bg-white p-4 sm:p-6 shadow-sm"><ol class="flex items-center justify-between">`)
		for _, s := range wizard.Steps {
			done, cur := current > s, current == s
			h.Rawf(`<li class="flex flex-col items-center flex-1" data-step="%d"`, int(s)).Raw(ariaCurrent(cur)).Raw(`>`)
			h.Rawf(`<span class="%s">%s</span>`,
				Class("flex h-10 w-10 items-center justify-center rounded-full bg-gray-100 text-sm font-semibold text-gray-400 ring-4 ring-white",
					when(cur, "bg-white border-2 border-blue-600 text-blue-600 ring-blue-50"),
					when(done, "bg-blue-600 text-white ring-blue-50")),
				stepMark(s, done))
			h.Rawf(`<span class="%s">%s</span>`,
				Class("mt-2 text-[10px] sm:text-xs font-medium uppercase tracking-wider text-gray-400", when(cur, "text-blue-600")),
				s.String())
			h.Raw(`</li>`)
		}
		h.Raw(`</ol></nav>`)
	})
}

func ariaCurrent(cur bool) string {
	if cur {
		return ` aria-current="step"`
	}
	return ""
}

func stepMark(s wizard.Step, done bool) string {
	if done {
		return "✓"
	}
	return string(rune('0' + int(s)))
}

// ColorPicker edits one colour field. The hex text box, the native picker
// and the swatches post to the same action, so they can never disagree.
func ColorPicker(action templ.SafeURL, field, label, value string) templ.Component {
	return Func(func(h *HTML) {
		h.Rawf(`<form method="post" action="%s" class="space-y-2" data-color-field="%s">`, action, field)
		h.Rawf(`<input type="hidden" name="field" value="%s">`, field)
		h.Rawf(`<label class="block text-xs font-medium text-gray-500">%s</label>`, label)
		h.Raw(`<div class="relative flex items-center gap-3 rounded-lg border bg-white p-2">`)
		h.Rawf(`<span class="h-8 w-8 flex-shrink-0 rounded-md border shadow-sm" style="background-color:%s"></span>`, value)
		h.Rawf(`<input type="text" name="value" value="%s" maxlength="7" class="h-8 w-full border-none p-0 font-mono text-sm uppercase focus:ring-0">`, strings.ToUpper(value))
		h.Rawf(`<input type="color" value="%s" oninput="this.form.elements.value.value=this.value" onchange="this.form.requestSubmit()" class="h-8 w-8 cursor-pointer">`, value)
		h.Raw(`<button class="rounded-md bg-gray-100 px-2 py-1 text-xs font-medium hover:bg-gray-200">Apply</button>`)
		h.Raw(`</div><div class="flex flex-wrap gap-2">`)
		for _, sw := range wizard.Swatches {
			h.Rawf(`<button type="submit" name="swatch" value="%s" title="%s" class="%s" style="background-color:%s"></button>`,
				sw, sw, Class("h-6 w-6 rounded-full border", when(strings.EqualFold(sw, value), "ring-2 ring-blue-600 ring-offset-1")), sw)
		}
		h.Raw(`</div></form>`)
	})
}

// OptionButton is a selectable choice inside a form posting name=value.
func OptionButton(name, value, label string, selected bool) templ.Component {
	return Func(func(h *HTML) {
		h.Rawf(`<button type="submit" name="%s" value="%s" class="%s">%s</button>`, name, value,
			Class("h-12 rounded-lg border bg-white text-xs font-medium capitalize text-gray-600 hover:border-blue-300",
				when(selected, "bg-blue-50 border-blue-600 text-blue-700 ring-1 ring-blue-600 hover:border-blue-600")),
			label)
	})
}
