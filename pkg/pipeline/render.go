package pipeline

import (
	"github.com/cutstack/cutstack/pkg/errors"
	"github.com/cutstack/cutstack/pkg/imposition"
	"github.com/cutstack/cutstack/pkg/render/sheet"
)

// RenderFormat renders plan into a single output format.
func RenderFormat(plan *imposition.Plan, format string, opts Options) ([]byte, error) {
	svgOpts := []sheet.SVGOption{
		sheet.WithCutLines(opts.CutLines),
		sheet.WithPageNumbers(opts.PageNumbers),
	}

	switch format {
	case FormatSVG:
		return sheet.RenderSVG(plan, svgOpts...), nil
	case FormatJSON:
		return sheet.RenderJSON(plan)
	case FormatPDF:
		return sheet.RenderPDF(plan, svgOpts...)
	case FormatPNG:
		return sheet.RenderPNG(plan, svgOpts...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}
