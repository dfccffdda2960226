package sheet

import (
	"github.com/cutstack/cutstack/pkg/imposition"
	"github.com/cutstack/cutstack/pkg/render"
)

// RenderPDF renders the plan's cut guide as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(plan *imposition.Plan, opts ...SVGOption) ([]byte, error) {
	svg := RenderSVG(plan, opts...)
	return render.ToPDF(svg)
}
