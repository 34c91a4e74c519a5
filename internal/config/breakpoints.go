package config

import (
	"fmt"

	"github.com/oakwood-commons/tabletron/internal/cel"
	"github.com/oakwood-commons/tabletron/pkg/layout"
)

// BreakpointConfig switches to its own columns when the available width
// matches. When holds a threshold such as ">= 120"; Expr holds a CEL
// expression over width and unbounded. Setting neither matches every width.
// Width, when set, replaces the available width for the render.
type BreakpointConfig struct {
	When    string         `yaml:"when,omitempty" toml:"when,omitempty"`
	Expr    string         `yaml:"expr,omitempty" toml:"expr,omitempty"`
	Width   any            `yaml:"width,omitempty" toml:"width,omitempty"`
	Columns []ColumnConfig `yaml:"columns,omitempty" toml:"columns,omitempty"`
}

// Validate checks the threshold, width and columns. CEL expressions are
// compiled later by Builder.
func (b BreakpointConfig) Validate() error {
	if b.When != "" && b.Expr != "" {
		return fmt.Errorf("set either when or expr, not both")
	}
	if b.When != "" {
		if _, err := layout.ParseThreshold(b.When); err != nil {
			return err
		}
	}
	if _, err := ParseAvailable(b.Width); err != nil {
		return err
	}
	for i, c := range b.Columns {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("columns[%d]: %w", i, err)
		}
	}
	return nil
}

// Label describes the breakpoint condition for logs and --explain.
func (b BreakpointConfig) Label() string {
	switch {
	case b.When != "":
		return b.When
	case b.Expr != "":
		return b.Expr
	default:
		return "always"
	}
}

// Builder turns a File into layout options.
type Builder struct {
	NoColor  bool
	Measurer layout.Measurer
	// Evaluator compiles expr breakpoints. One is created on demand when nil.
	Evaluator *cel.Evaluator
	// Columns, when set, replaces the file's columns and breakpoints.
	Columns []ColumnConfig
}

// OptionsFunc builds the options callback for f. Breakpoints are tried in
// file order; the top-level columns apply when none match.
func (b *Builder) OptionsFunc(f *File) (layout.OptionsFunc, error) {
	if len(b.Columns) > 0 {
		opts, err := b.options(b.Columns, nil)
		if err != nil {
			return nil, err
		}
		return func(int) layout.Options { return opts }, nil
	}

	base, err := b.options(f.Columns, nil)
	if err != nil {
		return nil, err
	}
	if len(f.Breakpoints) == 0 {
		return func(int) layout.Options { return base }, nil
	}

	bps := make([]layout.Breakpoint, 0, len(f.Breakpoints)+1)
	for i, bc := range f.Breakpoints {
		match, err := b.predicate(bc)
		if err != nil {
			return nil, fmt.Errorf("breakpoints[%d]: %w", i, err)
		}
		opts, err := b.options(bc.Columns, bc.Width)
		if err != nil {
			return nil, fmt.Errorf("breakpoints[%d]: %w", i, err)
		}
		bps = append(bps, layout.Breakpoint{Match: match, Options: opts})
	}
	bps = append(bps, layout.Breakpoint{Match: always, Options: base})
	return layout.Breakpoints(bps...), nil
}

// Select reports which breakpoint of f matches stdoutColumns, -1 for the
// top-level columns.
func (b *Builder) Select(f *File, stdoutColumns int) (int, error) {
	if len(b.Columns) > 0 {
		return -1, nil
	}
	w := stdoutColumns
	if w < 0 {
		w = int(^uint(0) >> 1)
	}
	for i, bc := range f.Breakpoints {
		match, err := b.predicate(bc)
		if err != nil {
			return -1, err
		}
		if match(w) {
			return i, nil
		}
	}
	return -1, nil
}

func (b *Builder) options(cfgs []ColumnConfig, width any) (layout.Options, error) {
	cols, err := Columns(cfgs, b.NoColor)
	if err != nil {
		return layout.Options{}, err
	}
	opts := layout.Options{Columns: cols, Measurer: b.Measurer}
	opts.StdoutColumns, err = ParseAvailable(width)
	return opts, err
}

func (b *Builder) predicate(bc BreakpointConfig) (layout.Predicate, error) {
	if err := bc.Validate(); err != nil {
		return nil, err
	}
	switch {
	case bc.When != "":
		t, _ := layout.ParseThreshold(bc.When)
		return t.Match, nil
	case bc.Expr != "":
		if b.Evaluator == nil {
			e, err := cel.NewEvaluator()
			if err != nil {
				return nil, err
			}
			b.Evaluator = e
		}
		p, err := b.Evaluator.Compile(bc.Expr)
		if err != nil {
			return nil, err
		}
		return p.Match, nil
	default:
		return always, nil
	}
}

func always(int) bool { return true }
