package imposition

// CellAssignment is the resolved physical position of one slot within one
// sheet side's grid.
type CellAssignment struct {
	Row    int      `json:"row"`
	Column int      `json:"column"`
	Slot   PageSlot `json:"slot"`
}

// MapToGrid resolves each slot of one sheet side to a concrete grid cell.
//
// Slot index idx occupies logical row idx/columns and logical column
// idx%columns. On the front side the logical position is the physical one.
// On the back side the column is mirrored (columns−1−col): flipping a sheet
// about its vertical axis reverses column order, and the mirror realigns each
// back page with its front partner so cut piles read consecutively. With a
// single column the mirror is the identity.
//
// len(slots) must not exceed the grid capacity; upstream construction always
// supplies exactly pagesPerSide slots. Cells beyond len(slots) stay empty and
// are omitted from the result.
func MapToGrid(slots []PageSlot, front bool, layout GridLayout) []CellAssignment {
	cells := make([]CellAssignment, len(slots))
	for idx, slot := range slots {
		row := idx / layout.Columns
		col := idx % layout.Columns
		if !front {
			col = layout.Columns - 1 - col
		}
		cells[idx] = CellAssignment{Row: row, Column: col, Slot: slot}
	}
	return cells
}
