package layout

import "strings"

// Options configures a render call.
type Options struct {
	// Columns holds per-column specs, left to right. It may be shorter than
	// the table; remaining columns are "auto".
	Columns []Column

	// StdoutColumns, when set, replaces the width passed to Render. Use
	// AvailableWidth(Unbounded) to force a layout that never wraps.
	StdoutColumns *int

	// Measurer defaults to DefaultMeasurer.
	Measurer Measurer
}

// OptionsFunc picks options for the current available width.
type OptionsFunc func(stdoutColumns int) Options

// AvailableWidth returns a pointer to n for Options.StdoutColumns.
func AvailableWidth(n int) *int {
	return &n
}

func (o Options) width(stdoutColumns int) int {
	if o.StdoutColumns != nil {
		return *o.StdoutColumns
	}
	return stdoutColumns
}

// Render lays out rows into a single string no wider than stdoutColumns where
// the column specs allow it. Rows are joined with "\n", without a trailing
// newline. A table with no rows or no columns renders as "".
func Render(rows [][]string, stdoutColumns int, opts Options) (string, error) {
	columns, err := Plan(rows, stdoutColumns, opts)
	if err != nil || len(columns) == 0 {
		return "", err
	}

	m := measurerOrDefault(opts.Measurer)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, RenderRow(columns, row, m)...)
	}
	return strings.Join(lines, "\n"), nil
}

// RenderFunc is Render with options chosen by fn for stdoutColumns.
func RenderFunc(rows [][]string, stdoutColumns int, fn OptionsFunc) (string, error) {
	if ColumnCount(rows) == 0 {
		return "", nil
	}
	var opts Options
	if fn != nil {
		opts = fn(stdoutColumns)
	}
	return Render(rows, stdoutColumns, opts)
}

// Plan measures rows and resolves the column layout without rendering. It
// returns nil for a table with no rows or no columns.
func Plan(rows [][]string, stdoutColumns int, opts Options) ([]ResolvedColumn, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	contentWidths := ContentWidths(rows, opts.Measurer)
	if len(contentWidths) == 0 {
		return nil, nil
	}
	return Resolve(opts.width(stdoutColumns), opts.Columns, contentWidths)
}
