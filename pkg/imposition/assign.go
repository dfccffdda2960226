package imposition

// PageSlot is one position in a sheet side's page sequence. It holds either a
// real 1-indexed page number or a padding marker for page numbers beyond the
// input document.
type PageSlot struct {
	Page  int  `json:"page"`
	Blank bool `json:"blank,omitempty"`
}

// Sheet is one physical piece of paper printed on both sides. Front and Back
// each hold exactly pagesPerSide slots in stack order.
type Sheet struct {
	Front []PageSlot `json:"front"`
	Back  []PageSlot `json:"back"`
}

// SheetSet is the complete partition of an input document onto sheets, plus
// derived totals. Values are immutable after construction.
type SheetSet struct {
	Sheets       []Sheet `json:"sheets"`
	InputPages   int     `json:"input_pages"`
	PagesPerSide int     `json:"pages_per_side"`
	TotalPages   int     `json:"total_pages"`
	PaddingPages int     `json:"padding_pages"`
}

// SheetCount returns the number of physical sheets.
func (s SheetSet) SheetCount() int {
	return len(s.Sheets)
}

// GenerateAssignments partitions inputPages logical pages onto sheets holding
// pagesPerSide pages per side.
//
// Pages are assigned strictly sequentially in front/back pairs: for sheet s
// and grid position g, the global pair index is s*pagesPerSide+g, the front
// page is 2*pair+1 and the back page 2*pair+2. This guarantees that stacking
// the printed sheets in order and cutting along the grid yields pages in
// original document order. Page numbers beyond inputPages become blank slots.
//
// Inputs must be pre-validated (inputPages and pagesPerSide at least 1);
// Impose enforces the full bounds.
func GenerateAssignments(inputPages, pagesPerSide int) SheetSet {
	capacityPerSheet := pagesPerSide * 2
	numSheets := (inputPages + capacityPerSheet - 1) / capacityPerSheet
	totalPages := numSheets * capacityPerSheet

	sheets := make([]Sheet, numSheets)
	for s := range sheets {
		front := make([]PageSlot, pagesPerSide)
		back := make([]PageSlot, pagesPerSide)
		for g := 0; g < pagesPerSide; g++ {
			pair := s*pagesPerSide + g
			front[g] = newSlot(2*pair+1, inputPages)
			back[g] = newSlot(2*pair+2, inputPages)
		}
		sheets[s] = Sheet{Front: front, Back: back}
	}

	return SheetSet{
		Sheets:       sheets,
		InputPages:   inputPages,
		PagesPerSide: pagesPerSide,
		TotalPages:   totalPages,
		PaddingPages: totalPages - inputPages,
	}
}

// newSlot builds a slot for the given page number, marking it blank when the
// number exceeds the input document.
func newSlot(page, inputPages int) PageSlot {
	return PageSlot{Page: page, Blank: page > inputPages}
}
