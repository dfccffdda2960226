package sheet

import (
	"github.com/cutstack/cutstack/pkg/imposition"
	"github.com/cutstack/cutstack/pkg/render"
)

// defaultPNGScale balances file size against legible page numbers.
const defaultPNGScale = 2.0

// RenderPNG renders the plan's cut guide as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(plan *imposition.Plan, opts ...SVGOption) ([]byte, error) {
	svg := RenderSVG(plan, opts...)
	return render.ToPNG(svg, defaultPNGScale)
}
