package render

import (
	"github.com/cristianadrielbraun/beam/internal/design"
	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"
)

type drawFunc func(ctx *standard.DrawContext)

// moduleShape implements standard.IShape with separate drawers for data
// modules and finder (eye) modules.
type moduleShape struct {
	block  drawFunc
	finder drawFunc
}

func (s *moduleShape) Draw(ctx *standard.DrawContext) { s.block(ctx) }

func (s *moduleShape) DrawFinder(ctx *standard.DrawContext) { s.finder(ctx) }

func newModuleShape(dot design.DotShape, eye design.EyeShape) *moduleShape {
	return &moduleShape{block: dotDrawer(dot), finder: eyeDrawer(eye)}
}

func dotDrawer(s design.DotShape) drawFunc {
	switch s {
	case design.DotRounded:
		return roundedBlock(0.25, 0.25, 0.25, 0.25)
	case design.DotDots:
		return circleBlock(1)
	case design.DotClassy:
		return roundedBlock(0.45, 0, 0.45, 0)
	case design.DotClassyRounded:
		return roundedBlock(0.5, 0.15, 0.5, 0.15)
	case design.DotExtraRounded:
		return shapes.LiquidBlock()
	default:
		return squareBlock
	}
}

func eyeDrawer(s design.EyeShape) drawFunc {
	switch s {
	case design.EyeDot:
		return circleBlock(1.08)
	case design.EyeExtraRounded:
		return roundedBlock(0.4, 0.4, 0.4, 0.4)
	case design.EyeLeaf:
		return roundedBlock(0.5, 0, 0.5, 0)
	case design.EyeDiamond:
		return diamondBlock
	default:
		return squareBlock
	}
}

func squareBlock(ctx *standard.DrawContext) {
	x, y := ctx.UpperLeft()
	w, h := ctx.Edge()
	ctx.DrawRectangle(x, y, float64(w), float64(h))
	ctx.SetColor(ctx.Color())
	ctx.Fill()
}

// circleBlock draws a disc; scale slightly above 1 closes the gaps between
// neighbouring eye modules.
func circleBlock(scale float64) drawFunc {
	return func(ctx *standard.DrawContext) {
		x, y := ctx.UpperLeft()
		w, h := ctx.Edge()
		r := float64(min(w, h)) / 2
		ctx.DrawCircle(x+float64(w)/2, y+float64(h)/2, r*scale)
		ctx.SetColor(ctx.Color())
		ctx.Fill()
	}
}

// roundedBlock draws a rectangle whose corners (top-left, top-right,
// bottom-right, bottom-left) are rounded by the given fractions of the edge.
func roundedBlock(tl, tr, br, bl float64) drawFunc {
	return func(ctx *standard.DrawContext) {
		x, y := ctx.UpperLeft()
		wi, hi := ctx.Edge()
		w, h := float64(wi), float64(hi)
		e := min(w, h)
		rTL, rTR, rBR, rBL := tl*e, tr*e, br*e, bl*e

		ctx.MoveTo(x+rTL, y)
		ctx.LineTo(x+w-rTR, y)
		ctx.QuadraticTo(x+w, y, x+w, y+rTR)
		ctx.LineTo(x+w, y+h-rBR)
		ctx.QuadraticTo(x+w, y+h, x+w-rBR, y+h)
		ctx.LineTo(x+rBL, y+h)
		ctx.QuadraticTo(x, y+h, x, y+h-rBL)
		ctx.LineTo(x, y+rTL)
		ctx.QuadraticTo(x, y, x+rTL, y)
		ctx.ClosePath()
		ctx.SetColor(ctx.Color())
		ctx.Fill()
	}
}

func diamondBlock(ctx *standard.DrawContext) {
	x, y := ctx.UpperLeft()
	wi, hi := ctx.Edge()
	w, h := float64(wi), float64(hi)

	ctx.MoveTo(x+w/2, y)
	ctx.LineTo(x+w, y+h/2)
	ctx.LineTo(x+w/2, y+h)
	ctx.LineTo(x, y+h/2)
	ctx.ClosePath()
	ctx.SetColor(ctx.Color())
	ctx.Fill()
}
