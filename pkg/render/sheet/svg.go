package sheet

import (
	"bytes"
	"fmt"

	"github.com/cutstack/cutstack/pkg/imposition"
)

// Default panel geometry. Panels use A4 portrait proportions in points so the
// printed guide matches the physical sheet.
const (
	defaultSheetWidth  = 595.0
	defaultSheetHeight = 842.0

	panelGap    = 24.0
	panelMargin = 24.0
	labelHeight = 18.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	sheetWidth  float64
	sheetHeight float64
	cutLines    bool
	pageNumbers bool
}

// WithCutLines toggles the dashed cut-line overlay.
func WithCutLines(enabled bool) SVGOption {
	return func(r *svgRenderer) { r.cutLines = enabled }
}

// WithPageNumbers toggles the page-number overlay.
func WithPageNumbers(enabled bool) SVGOption {
	return func(r *svgRenderer) { r.pageNumbers = enabled }
}

// WithSheetSize overrides the panel dimensions (points). Non-positive values
// keep the A4 default.
func WithSheetSize(width, height float64) SVGOption {
	return func(r *svgRenderer) {
		if width > 0 && height > 0 {
			r.sheetWidth = width
			r.sheetHeight = height
		}
	}
}

// RenderSVG draws the plan as one SVG document: one row per sheet, front and
// back panels side by side. Cells show their assigned page number; blank
// padding cells are shaded. Cut lines run dashed along interior grid
// boundaries, mirroring what the operator will cut.
func RenderSVG(plan *imposition.Plan, opts ...SVGOption) []byte {
	r := svgRenderer{
		sheetWidth:  defaultSheetWidth,
		sheetHeight: defaultSheetHeight,
		cutLines:    true,
		pageNumbers: true,
	}
	for _, opt := range opts {
		opt(&r)
	}

	rowHeight := labelHeight + r.sheetHeight + panelGap
	totalWidth := panelMargin*2 + r.sheetWidth*2 + panelGap
	totalHeight := panelMargin*2 + rowHeight*float64(len(plan.Cells)) - panelGap

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		totalWidth, totalHeight, totalWidth, totalHeight)
	fmt.Fprintf(&buf, `<rect width="%.1f" height="%.1f" fill="white"/>`+"\n", totalWidth, totalHeight)

	for i, sc := range plan.Cells {
		y := panelMargin + float64(i)*rowHeight
		frontX := panelMargin
		backX := panelMargin + r.sheetWidth + panelGap

		r.renderLabel(&buf, frontX, y, fmt.Sprintf("Sheet %d — front", i+1))
		r.renderLabel(&buf, backX, y, fmt.Sprintf("Sheet %d — back", i+1))

		r.renderPanel(&buf, frontX, y+labelHeight, plan.Layout, sc.Front)
		r.renderPanel(&buf, backX, y+labelHeight, plan.Layout, sc.Back)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderLabel draws the panel caption above a sheet side.
func (r *svgRenderer) renderLabel(buf *bytes.Buffer, x, y float64, text string) {
	fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="12" fill="#555">%s</text>`+"\n",
		x, y+12, text)
}

// renderPanel draws one sheet side: border, cells, cut lines, page numbers.
func (r *svgRenderer) renderPanel(buf *bytes.Buffer, x, y float64, layout imposition.GridLayout, cells []imposition.CellAssignment) {
	cellW := r.sheetWidth / float64(layout.Columns)
	cellH := r.sheetHeight / float64(layout.Rows)

	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#333" stroke-width="1"/>`+"\n",
		x, y, r.sheetWidth, r.sheetHeight)

	for _, c := range cells {
		cx := x + float64(c.Column)*cellW
		cy := y + float64(c.Row)*cellH

		if c.Slot.Blank {
			fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#eee"/>`+"\n",
				cx, cy, cellW, cellH)
			continue
		}
		if r.pageNumbers {
			// Number sits near the cell's top-left corner, as on the
			// printed overlay.
			fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="10" fill="#000">%d</text>`+"\n",
				cx+10, cy+14, c.Slot.Page)
		}
	}

	if r.cutLines {
		for col := 1; col < layout.Columns; col++ {
			lx := x + float64(col)*cellW
			fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888" stroke-width="0.5" stroke-dasharray="4 4"/>`+"\n",
				lx, y, lx, y+r.sheetHeight)
		}
		for row := 1; row < layout.Rows; row++ {
			ly := y + float64(row)*cellH
			fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888" stroke-width="0.5" stroke-dasharray="4 4"/>`+"\n",
				x, ly, x+r.sheetWidth, ly)
		}
	}
}
