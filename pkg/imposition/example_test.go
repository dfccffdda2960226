package imposition_test

import (
	"fmt"

	"github.com/cutstack/cutstack/pkg/imposition"
)

func ExampleImpose() {
	// Impose an 8-page document at 2-up: two pages per side, four per sheet.
	plan, err := imposition.Impose(8, 2)
	if err != nil {
		panic(err)
	}

	fmt.Println("Grid:", plan.Layout)
	fmt.Println("Sheets:", plan.Stats.SheetCount)
	fmt.Println("Total pages:", plan.Stats.TotalPages)
	// Output:
	// Grid: 1×2
	// Sheets: 2
	// Total pages: 8
}

func ExampleComputeGrid() {
	// 4-up prefers the square 2×2 over the zero-waste but lopsided 1×4.
	fmt.Println(imposition.ComputeGrid(4))
	// A landscape target ratio flips the orientation preference.
	fmt.Println(imposition.ComputeGrid(2, imposition.WithTargetRatio(0.5)))
	// Output:
	// 2×2
	// 2×1
}

func ExampleGenerateAssignments() {
	// Seven pages at 2-up: two sheets, one padded blank at the end.
	set := imposition.GenerateAssignments(7, 2)

	for i, sheet := range set.Sheets {
		fmt.Printf("sheet %d front: %d %d\n", i, sheet.Front[0].Page, sheet.Front[1].Page)
		fmt.Printf("sheet %d back:  %d %d\n", i, sheet.Back[0].Page, sheet.Back[1].Page)
	}
	fmt.Println("padding:", set.PaddingPages)
	// Output:
	// sheet 0 front: 1 3
	// sheet 0 back:  2 4
	// sheet 1 front: 5 7
	// sheet 1 back:  6 8
	// padding: 1
}

func ExampleMapToGrid() {
	layout := imposition.GridLayout{Columns: 2, Rows: 2}
	slots := []imposition.PageSlot{{Page: 2}, {Page: 4}, {Page: 6}, {Page: 8}}

	// Back-side cells mirror the column so cut piles line up after flipping.
	for _, c := range imposition.MapToGrid(slots, false, layout) {
		fmt.Printf("page %d -> row %d, col %d\n", c.Slot.Page, c.Row, c.Column)
	}
	// Output:
	// page 2 -> row 0, col 1
	// page 4 -> row 0, col 0
	// page 6 -> row 1, col 1
	// page 8 -> row 1, col 0
}
