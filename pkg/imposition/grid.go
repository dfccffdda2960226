package imposition

import (
	"fmt"
	"math"
)

// DefaultTargetRatio is the rows-to-columns ratio the grid search steers
// toward when breaking waste ties. It approximates sqrt(2), the
// height-to-width ratio of A-series portrait paper, so chosen grids lean
// portrait like the sheet they print on.
const DefaultTargetRatio = 1.414

// GridLayout describes the cell grid arranging pages on one sheet side.
// Invariant: Columns*Rows is at least the N-up value the grid was computed
// for.
type GridLayout struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// Capacity returns the number of cells in the grid.
func (g GridLayout) Capacity() int {
	return g.Columns * g.Rows
}

// String renders the layout as "columns×rows", e.g. "2×2".
func (g GridLayout) String() string {
	return fmt.Sprintf("%d×%d", g.Columns, g.Rows)
}

// GridOption configures the grid search.
type GridOption func(*gridSearch)

type gridSearch struct {
	targetRatio float64
}

// WithTargetRatio overrides the rows/columns aspect ratio used to break
// waste ties. Use a value below 1 to prefer landscape-leaning grids.
// Non-positive values fall back to DefaultTargetRatio.
func WithTargetRatio(ratio float64) GridOption {
	return func(s *gridSearch) {
		if ratio > 0 {
			s.targetRatio = ratio
		}
	}
}

// ComputeGrid picks the best grid for arranging pagesPerSide pages on one
// sheet side.
//
// Candidate column counts run from 1 to ceil(sqrt(n))+2; rows follow as
// ceil(n/columns). Selection minimizes waste (capacity beyond n), ties are
// broken by closeness of rows/columns to the target ratio, and remaining
// ties keep the lowest column count. Enumeration is ascending, which makes
// the result deterministic.
//
// pagesPerSide must be at least 1; callers validate bounds before invoking.
func ComputeGrid(pagesPerSide int, opts ...GridOption) GridLayout {
	s := gridSearch{targetRatio: DefaultTargetRatio}
	for _, opt := range opts {
		opt(&s)
	}

	if pagesPerSide <= 1 {
		return GridLayout{Columns: 1, Rows: 1}
	}

	limit := int(math.Ceil(math.Sqrt(float64(pagesPerSide)))) + 2

	best := GridLayout{}
	bestWaste := math.MaxInt
	bestDiff := math.MaxFloat64

	for c := 1; c <= limit; c++ {
		r := (pagesPerSide + c - 1) / c
		waste := c*r - pagesPerSide
		diff := math.Abs(float64(r)/float64(c) - s.targetRatio)

		if waste < bestWaste || (waste == bestWaste && diff < bestDiff) {
			best = GridLayout{Columns: c, Rows: r}
			bestWaste = waste
			bestDiff = diff
		}
	}

	return best
}
