package errors

// Input bounds enforced at every entry surface (CLI flags, HTTP handlers,
// pipeline options) before any imposition math runs.
const (
	// MinPageCount and MaxPageCount bound the logical page count of an
	// input document.
	MinPageCount = 1
	MaxPageCount = 500

	// MinPagesPerSide and MaxPagesPerSide bound the N-up value (logical
	// pages per physical sheet side).
	MinPagesPerSide = 1
	MaxPagesPerSide = 128
)

// ValidatePageCount validates a logical page count against the supported range.
//
// A value of 0 is rejected here. Preview contexts that want "0 means use a
// demo default" must substitute the default before calling into validation;
// see pipeline.Options.
func ValidatePageCount(n int) error {
	if n < MinPageCount || n > MaxPageCount {
		return New(ErrCodeInvalidPageCount,
			"page count must be between %d and %d, got %d", MinPageCount, MaxPageCount, n)
	}
	return nil
}

// ValidatePagesPerSide validates an N-up value against the supported range.
func ValidatePagesPerSide(n int) error {
	if n < MinPagesPerSide || n > MaxPagesPerSide {
		return New(ErrCodeInvalidPagesPerSheet,
			"pages per sheet must be between %d and %d, got %d", MinPagesPerSide, MaxPagesPerSide, n)
	}
	return nil
}
