// Package layout renders tables of text cells into fixed-width terminal
// output.
//
// A table is a slice of rows, each a slice of cell strings. Column widths are
// given per column as a fixed character count, a percentage of the available
// width, "content-width" or "auto":
//
//	out, err := layout.Render(rows, 80, layout.Options{
//		Columns: layout.Widths(12, "50%", "auto"),
//	})
//
// Cells wrap within their column. Escape sequences are measured as zero width,
// never split, and styles left open across a wrap are reopened on the next
// line. The package does not query the terminal; pass the available width in,
// or Unbounded for output that never wraps.
package layout
