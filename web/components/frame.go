package components

import (
	"github.com/a-h/templ"
	"github.com/cristianadrielbraun/beam/internal/design"
)

// Frame decorates the live preview. It is markup only and never reaches an
// exported file.
func Frame(d design.Design, child templ.Component) templ.Component {
	style := design.ParseFrameStyle(string(d.FrameStyle))
	if style == design.FrameNone {
		return child
	}
	color := hexOr(d.FrameColor, design.DefaultFrameColor)
	text := hexOr(d.FrameTextColor, design.DefaultFrameTextColor)

	return Func(func(h *HTML) {
		switch style {
		case design.FrameClassic:
			h.Rawf(`<div data-frame="classic" class="inline-flex flex-col overflow-hidden rounded-xl border-4" style="border-color:%s">`, color)
			h.Raw(`<div class="bg-white p-3">`).Render(child).Raw(`</div>`)
			h.Rawf(`<div class="px-4 py-2 text-center text-sm font-bold uppercase tracking-wide" style="background:%s;color:%s">%s</div>`, color, text, d.FrameText)
			h.Raw(`</div>`)
		case design.FrameBubble:
			h.Rawf(`<div data-frame="bubble" class="relative inline-block rounded-2xl border-4 bg-white p-3 pt-6" style="border-color:%s">`, color)
			h.Rawf(`<span class="absolute -top-4 left-1/2 -translate-x-1/2 whitespace-nowrap rounded-full px-4 py-1 text-sm font-bold shadow" style="background:%s;color:%s">%s</span>`, color, text, d.FrameText)
			h.Render(child)
			h.Raw(`</div>`)
		default:
			radius := "rounded-md"
			if style == design.FrameRounded {
				radius = "rounded-3xl"
			}
			h.Rawf(`<div data-frame="%s" class="inline-flex flex-col items-center gap-2">`, string(style))
			h.Rawf(`<div class="%s" style="border-color:%s">`, Class("border-4 bg-white p-3", radius), color)
			h.Render(child)
			h.Raw(`</div>`)
			h.Rawf(`<div class="%s" style="background:%s;color:%s">%s</div>`,
				Class("px-4 py-1.5 text-sm font-bold", radius), color, text, d.FrameText)
			h.Raw(`</div>`)
		}
	})
}

func hexOr(s, fallback string) string {
	if v, ok := design.NormalizeHex(s); ok {
		return v
	}
	return fallback
}
