package components

import "github.com/a-h/templ"

type AlertVariant string

const (
	AlertError   AlertVariant = "error"
	AlertSuccess AlertVariant = "success"
)

// Alert is the inline banner used for backend messages. Empty messages
// render nothing.
func Alert(v AlertVariant, msg string) templ.Component {
	return Func(func(h *HTML) {
		if msg == "" {
			return
		}
		cls := "bg-red-50 text-red-600 border-red-200"
		if v == AlertSuccess {
			cls = "bg-green-50 text-green-600 border-green-200"
		}
		h.Rawf(`<div role="alert" class="%s">%s</div>`, Class("p-4 rounded-lg border text-sm font-medium", cls), msg)
	})
}
