// Package render turns a loaded table and its layout config into text. The
// root command renders once; watch mode re-renders on every resize.
package render

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/tabletron/internal/config"
	"github.com/oakwood-commons/tabletron/internal/limiter"
	"github.com/oakwood-commons/tabletron/pkg/layout"
	"github.com/oakwood-commons/tabletron/pkg/loader"
	"github.com/oakwood-commons/tabletron/pkg/logger"
)

// Request collects everything a Renderer needs.
type Request struct {
	Table  *loader.Table
	Config *config.File
	// Columns replaces the config's columns and breakpoints when set.
	Columns []config.ColumnConfig
	Limit   limiter.Config
	// Header overrides the loader's and the config's header decision.
	Header   *bool
	NoColor  bool
	Measurer layout.Measurer
}

// Renderer renders one table at any available width.
type Renderer struct {
	rows    [][]string
	header  bool
	file    *config.File
	builder *config.Builder
	options layout.OptionsFunc
	log     logr.Logger
}

// New prepares rows and compiles the layout options. Config errors, such as
// an invalid CEL breakpoint, are reported here rather than at render time.
func New(req Request, lgr logr.Logger) (*Renderer, error) {
	if req.Table == nil {
		return nil, fmt.Errorf("no table to render")
	}
	if err := req.Limit.Validate(); err != nil {
		return nil, err
	}
	f := req.Config
	if f == nil {
		var err error
		if f, err = config.Default(); err != nil {
			return nil, err
		}
	}

	header := req.Table.Header || f.HeaderEnabled()
	if req.Header != nil {
		header = *req.Header
	}
	header = header && len(req.Table.Rows) > 0

	rows := req.Limit.Apply(req.Table.Rows, header)
	rows = append([][]string(nil), rows...)
	if header && !req.NoColor {
		rows[0] = config.StyleRow(rows[0], f.HeaderStyle)
	}

	b := &config.Builder{NoColor: req.NoColor, Measurer: req.Measurer, Columns: req.Columns}
	fn, err := b.OptionsFunc(f)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		rows:    rows,
		header:  header,
		file:    f,
		builder: b,
		options: fn,
		log:     lgr,
	}, nil
}

// Rows returns the rows that are rendered, after limiting and header styling.
func (r *Renderer) Rows() [][]string {
	return r.rows
}

// Header reports whether the first row is styled as a header.
func (r *Renderer) Header() bool {
	return r.header
}

// Render lays out the table for stdoutColumns.
func (r *Renderer) Render(stdoutColumns int) (string, error) {
	r.log.V(1).Info("rendering table",
		logger.AvailableKey, layout.FormatAvailable(stdoutColumns),
		logger.BreakpointKey, r.selection(stdoutColumns),
		logger.RowsKey, len(r.rows),
		logger.ColumnsKey, layout.ColumnCount(r.rows))
	return layout.RenderFunc(r.rows, stdoutColumns, r.options)
}

// Plan resolves the columns for stdoutColumns without rendering.
func (r *Renderer) Plan(stdoutColumns int) ([]layout.ResolvedColumn, error) {
	return layout.Plan(r.rows, stdoutColumns, r.options(stdoutColumns))
}

// selection names the column set chosen for stdoutColumns.
func (r *Renderer) selection(stdoutColumns int) string {
	if len(r.builder.Columns) > 0 {
		return "--column"
	}
	i, err := r.builder.Select(r.file, stdoutColumns)
	if err != nil || i < 0 {
		return "columns"
	}
	return "breakpoints[" + fmt.Sprint(i) + "] " + r.file.Breakpoints[i].Label()
}
