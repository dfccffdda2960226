// Package sheet renders imposition plans as printable and machine-readable
// artifacts.
//
// The package is the rendering/output collaborator of the imposition core: it
// consumes a computed [imposition.Plan] and draws each sheet side as a grid
// panel with dashed cut lines, page numbers, and shaded blank cells — the
// guide an operator prints, cuts, and stacks. It owns all document-format
// concerns; the core never sees them.
//
// Available sinks:
//   - RenderSVG: per-sheet front/back panels as a single SVG document
//   - RenderJSON: the plan as a pretty-printed JSON interchange document
//   - RenderPDF, RenderPNG: SVG converted via librsvg
package sheet
