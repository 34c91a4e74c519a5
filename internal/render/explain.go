package render

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/tabletron/pkg/layout"
)

// Explain describes how the table is laid out at stdoutColumns as a tree:
// the width used, the column set chosen, and every resolved column.
func (r *Renderer) Explain(stdoutColumns int) (string, error) {
	opts := r.options(stdoutColumns)
	columns, err := layout.Plan(r.rows, stdoutColumns, opts)
	if err != nil {
		return "", err
	}

	effective := stdoutColumns
	if opts.StdoutColumns != nil {
		effective = *opts.StdoutColumns
	}

	tree := treeprint.New()
	tree.AddNode("available: " + layout.FormatAvailable(stdoutColumns))
	if effective != stdoutColumns {
		tree.AddNode("override: " + layout.FormatAvailable(effective))
	}
	tree.AddNode("layout: " + r.selection(stdoutColumns))
	tree.AddNode(fmt.Sprintf("rows: %d", len(r.rows)))

	branch := tree.AddBranch(fmt.Sprintf("columns (%d)", len(columns)))
	total := 0
	for i, c := range columns {
		label := fmt.Sprintf("[%d] %s", i, c.Kind)
		if i < len(opts.Columns) {
			if w, err := layout.ParseWidth(opts.Columns[i].Width); err == nil {
				label = fmt.Sprintf("[%d] %s", i, w)
			}
		}
		col := branch.AddBranch(label)
		col.AddNode(fmt.Sprintf("width: %d", c.Width))
		col.AddNode(fmt.Sprintf("padding: %d %d %d %d", c.PaddingLeft, c.PaddingRight, c.PaddingTop, c.PaddingBottom))
		col.AddNode("align: " + string(c.Align))
		if c.Allotment >= 0 {
			col.AddNode(fmt.Sprintf("allotment: %d", c.Allotment))
		}
		total += c.TotalWidth()
	}
	tree.AddNode(fmt.Sprintf("line width: %d", total))
	return tree.String(), nil
}
