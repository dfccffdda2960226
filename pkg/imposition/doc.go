// Package imposition computes print-imposition layouts.
//
// Given a logical page count and an N-up value (pages per sheet side), the
// package determines how pages are grouped onto physical sheets, the grid
// geometry used to arrange N pages on one side, and the page-to-cell mapping
// including the back-side mirroring needed for correct stacking after cutting.
//
// The package is purely computational: it never touches files, sockets, or
// shared state. Every function is referentially transparent and safe to call
// concurrently.
//
// # Pipeline
//
// Three pure functions compose into one pipeline:
//
//  1. ComputeGrid picks the (columns, rows) grid for an N-up value.
//  2. GenerateAssignments partitions pages into sheets with front and back
//     page sequences, padding the tail with blank slots.
//  3. MapToGrid resolves each slot of a sheet side to a concrete grid cell,
//     mirroring columns on the back side.
//
// Impose ties the three together and derives summary statistics.
//
// # Correctness properties
//
// Pages are assigned sequentially in front/back pairs: pages 1 and 2 share
// the first grid cell (front and back), pages 3 and 4 the second, and so on.
// Stacking the printed sheets in order, cutting along the grid, and stacking
// the resulting piles cell by cell yields the pages in original document
// order.
//
// The back side mirrors column placement horizontally (column c becomes
// columns−1−c) because flipping a sheet about its vertical axis reverses the
// columns. The mirror realigns each back page with its front partner, so
// every cut pile reads front page N, back page N+1 in the same physical spot.
//
// # Usage
//
//	plan, err := imposition.Impose(48, 4)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(plan.Layout)           // 2×2
//	fmt.Println(plan.Stats.SheetCount) // 6
package imposition
