package imposition

import (
	"github.com/cutstack/cutstack/pkg/errors"
)

// PreviewDefaultPages is the page count substituted for 0 by preview
// surfaces (the preview CLI command and HTTP endpoint). The core itself
// rejects 0; only preview callers opt into the fallback.
const PreviewDefaultPages = 8

// SheetCells holds the resolved cell assignments for both sides of one sheet.
type SheetCells struct {
	Front []CellAssignment `json:"front"`
	Back  []CellAssignment `json:"back"`
}

// Stats summarizes an imposition plan. All values are derived; none are
// separately stored state.
type Stats struct {
	InputPages    int    `json:"input_pages"`
	TotalPages    int    `json:"total_pages"`
	PaddingPages  int    `json:"padding_pages"`
	SheetCount    int    `json:"sheet_count"`
	PairsPerStack int    `json:"pairs_per_stack"`
	PagesPerSide  int    `json:"pages_per_side"`
	Grid          string `json:"grid"`
}

// Plan is the complete result of one imposition request: the grid geometry,
// the page-to-sheet partition, the per-sheet cell assignments, and summary
// statistics. Plans are immutable after construction.
type Plan struct {
	Layout GridLayout   `json:"layout"`
	Sheets SheetSet     `json:"sheets"`
	Cells  []SheetCells `json:"cells"`
	Stats  Stats        `json:"stats"`
}

// Impose computes the full imposition plan for the given page count and N-up
// value.
//
// Bounds are validated before any computation runs: inputPages must be within
// [errors.MinPageCount, errors.MaxPageCount] and pagesPerSide within
// [errors.MinPagesPerSide, errors.MaxPagesPerSide]. Validation failures
// return a structured error with code INVALID_PAGE_COUNT or
// INVALID_PAGES_PER_SHEET and no partial result.
//
// The computation is all-or-nothing and referentially transparent: identical
// arguments always produce structurally identical plans.
func Impose(inputPages, pagesPerSide int, opts ...GridOption) (*Plan, error) {
	if err := errors.ValidatePageCount(inputPages); err != nil {
		return nil, err
	}
	if err := errors.ValidatePagesPerSide(pagesPerSide); err != nil {
		return nil, err
	}

	layout := ComputeGrid(pagesPerSide, opts...)
	sheets := GenerateAssignments(inputPages, pagesPerSide)

	cells := make([]SheetCells, len(sheets.Sheets))
	for i, sheet := range sheets.Sheets {
		cells[i] = SheetCells{
			Front: MapToGrid(sheet.Front, true, layout),
			Back:  MapToGrid(sheet.Back, false, layout),
		}
	}

	return &Plan{
		Layout: layout,
		Sheets: sheets,
		Cells:  cells,
		Stats: Stats{
			InputPages:    inputPages,
			TotalPages:    sheets.TotalPages,
			PaddingPages:  sheets.PaddingPages,
			SheetCount:    sheets.SheetCount(),
			PairsPerStack: sheets.SheetCount(),
			PagesPerSide:  pagesPerSide,
			Grid:          layout.String(),
		},
	}, nil
}
