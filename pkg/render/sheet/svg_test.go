package sheet

import (
	"strings"
	"testing"

	"github.com/cutstack/cutstack/pkg/imposition"
)

func mustPlan(t *testing.T, pages, perSide int) *imposition.Plan {
	t.Helper()
	plan, err := imposition.Impose(pages, perSide)
	if err != nil {
		t.Fatalf("Impose(%d, %d): %v", pages, perSide, err)
	}
	return plan
}

func TestRenderSVG(t *testing.T) {
	plan := mustPlan(t, 7, 2)
	svg := string(RenderSVG(plan))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Fatal("output is not a well-formed SVG document")
	}

	// One labeled panel pair per sheet.
	for _, label := range []string{"Sheet 1 — front", "Sheet 1 — back", "Sheet 2 — front", "Sheet 2 — back"} {
		if !strings.Contains(svg, label) {
			t.Errorf("missing panel label %q", label)
		}
	}

	// Real pages get numbers; the padded page 8 is a shaded blank, not a number.
	for _, page := range []string{">1<", ">2<", ">7<"} {
		if !strings.Contains(svg, page) {
			t.Errorf("missing page number %s", page)
		}
	}
	if strings.Contains(svg, ">8<") {
		t.Error("blank slot 8 should not be numbered")
	}
	if !strings.Contains(svg, `fill="#eee"`) {
		t.Error("blank slot should render as shaded cell")
	}
}

func TestRenderSVGCutLines(t *testing.T) {
	// 4-up is a 2×2 grid: one vertical and one horizontal interior cut line
	// per panel.
	plan := mustPlan(t, 8, 4)

	withLines := string(RenderSVG(plan))
	if !strings.Contains(withLines, "stroke-dasharray") {
		t.Error("cut lines should be dashed")
	}

	withoutLines := string(RenderSVG(plan, WithCutLines(false)))
	if strings.Contains(withoutLines, "stroke-dasharray") {
		t.Error("WithCutLines(false) should suppress cut lines")
	}
}

func TestRenderSVGPageNumbers(t *testing.T) {
	plan := mustPlan(t, 4, 2)
	svg := string(RenderSVG(plan, WithPageNumbers(false)))
	if strings.Contains(svg, ">1<") {
		t.Error("WithPageNumbers(false) should suppress numbering")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	plan := mustPlan(t, 12, 4)
	a := RenderSVG(plan)
	b := RenderSVG(plan)
	if string(a) != string(b) {
		t.Error("rendering must be deterministic")
	}
}
