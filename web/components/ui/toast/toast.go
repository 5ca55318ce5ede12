// Package toast renders the transient notifications swapped in by htmx.
package toast

import (
	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/web/components"
)

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Position string

const (
	PositionTopRight    Position = "top-right"
	PositionBottomRight Position = "bottom-right"
	PositionBottomLeft  Position = "bottom-left"
)

type Props struct {
	Title         string
	Description   string
	Variant       Variant
	Position      Position
	Duration      int // milliseconds; 0 keeps the toast until dismissed
	Dismissible   bool
	ShowIndicator bool
	Icon          bool
	Class         string
}

// ParseVariant maps form values onto a variant, defaulting to success.
func ParseVariant(s string) Variant {
	switch s {
	case "error", "destructive":
		return VariantError
	case "warning":
		return VariantWarning
	case "info":
		return VariantInfo
	default:
		return VariantSuccess
	}
}

var variantClass = map[Variant]string{
	VariantDefault: "bg-white text-gray-900 border-gray-200",
	VariantSuccess: "bg-green-50 text-green-700 border-green-200",
	VariantError:   "bg-red-50 text-red-600 border-red-200",
	VariantWarning: "bg-yellow-50 text-yellow-700 border-yellow-200",
	VariantInfo:    "bg-blue-50 text-blue-700 border-blue-200",
}

var positionClass = map[Position]string{
	PositionTopRight:    "top-4 right-4",
	PositionBottomRight: "bottom-4 right-4",
	PositionBottomLeft:  "bottom-4 left-4",
}

var variantIcon = map[Variant]string{
	VariantSuccess: "✓",
	VariantError:   "!",
	VariantWarning: "!",
	VariantInfo:    "i",
}

func Toast(p Props) templ.Component {
	if p.Variant == "" {
		p.Variant = VariantDefault
	}
	if p.Position == "" {
		p.Position = PositionBottomRight
	}
	return components.Func(func(h *components.HTML) {
		h.Rawf(`<div role="status" data-toast data-duration="%d" class="%s">`, p.Duration,
			components.Class("fixed z-50 flex items-start gap-3 rounded-lg border p-4 shadow-lg max-w-sm",
				positionClass[p.Position], variantClass[p.Variant], p.Class))
		if p.Icon && variantIcon[p.Variant] != "" {
			h.Rawf(`<span class="font-bold">%s</span>`, variantIcon[p.Variant])
		}
		h.Raw(`<div class="flex-1">`)
		if p.Title != "" {
			h.Rawf(`<p class="text-sm font-semibold">%s</p>`, p.Title)
		}
		if p.Description != "" {
			h.Rawf(`<p class="text-sm opacity-90">%s</p>`, p.Description)
		}
		if p.ShowIndicator && p.Duration > 0 {
			h.Rawf(`<div class="mt-2 h-1 rounded bg-current opacity-30" style="animation: shrink %dms linear forwards"></div>`, p.Duration)
		}
		h.Raw(`</div>`)
		if p.Dismissible {
			h.Raw(`<button type="button" aria-label="Dismiss" onclick="this.closest('[data-toast]').remove()" class="text-sm opacity-60 hover:opacity-100">×</button>`)
		}
		h.Raw(`</div>`)
		if p.Duration > 0 {
			h.Rawf(`<script>setTimeout(function(){var t=document.querySelectorAll('[data-toast]');if(t.length)t[t.length-1].remove()},%d)</script>`, p.Duration)
		}
	})
}
