package sheet

import (
	"encoding/json"

	"github.com/cutstack/cutstack/pkg/imposition"
)

type jsonOutput struct {
	Layout jsonLayout  `json:"layout"`
	Stats  jsonStats   `json:"stats"`
	Sheets []jsonSheet `json:"sheets"`
}

type jsonLayout struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

type jsonStats struct {
	InputPages    int    `json:"input_pages"`
	TotalPages    int    `json:"total_pages"`
	PaddingPages  int    `json:"padding_pages"`
	SheetCount    int    `json:"sheet_count"`
	PairsPerStack int    `json:"pairs_per_stack"`
	PagesPerSide  int    `json:"pages_per_side"`
	Grid          string `json:"grid"`
}

type jsonSheet struct {
	Index int        `json:"index"`
	Front []jsonCell `json:"front"`
	Back  []jsonCell `json:"back"`
}

type jsonCell struct {
	Row    int  `json:"row"`
	Column int  `json:"column"`
	Page   int  `json:"page"`
	Blank  bool `json:"blank,omitempty"`
}

// RenderJSON exports the plan as a pretty-printed JSON document. This is the
// primary interchange format: the preview UI, the render pipeline, and
// external tooling all consume it, so previewed and produced layouts can
// never drift apart.
//
// RenderJSON does not modify the plan and is safe to call concurrently.
func RenderJSON(plan *imposition.Plan) ([]byte, error) {
	out := jsonOutput{
		Layout: jsonLayout{Columns: plan.Layout.Columns, Rows: plan.Layout.Rows},
		Stats: jsonStats{
			InputPages:    plan.Stats.InputPages,
			TotalPages:    plan.Stats.TotalPages,
			PaddingPages:  plan.Stats.PaddingPages,
			SheetCount:    plan.Stats.SheetCount,
			PairsPerStack: plan.Stats.PairsPerStack,
			PagesPerSide:  plan.Stats.PagesPerSide,
			Grid:          plan.Stats.Grid,
		},
		Sheets: make([]jsonSheet, len(plan.Cells)),
	}

	for i, sc := range plan.Cells {
		out.Sheets[i] = jsonSheet{
			Index: i,
			Front: toJSONCells(sc.Front),
			Back:  toJSONCells(sc.Back),
		}
	}

	return json.MarshalIndent(out, "", "  ")
}

func toJSONCells(cells []imposition.CellAssignment) []jsonCell {
	out := make([]jsonCell, len(cells))
	for i, c := range cells {
		out[i] = jsonCell{
			Row:    c.Row,
			Column: c.Column,
			Page:   c.Slot.Page,
			Blank:  c.Slot.Blank,
		}
	}
	return out
}
