package layout

import "fmt"

// TooManyColumnsError is returned when more column specs are supplied than the
// table has columns.
type TooManyColumnsError struct {
	Defined int
	Found   int
}

func (e *TooManyColumnsError) Error() string {
	return fmt.Sprintf("%d columns defined, but only %d columns found", e.Defined, e.Found)
}

// InvalidWidthError is returned when a column width is not a non-negative
// integer, a percentage, "auto" or "content-width".
type InvalidWidthError struct {
	Value any
}

func (e *InvalidWidthError) Error() string {
	if s, ok := e.Value.(string); ok {
		return fmt.Sprintf("invalid column width: %q", s)
	}
	return fmt.Sprintf("invalid column width: \"%v\"", e.Value)
}

// InvalidBreakpointError is returned when a breakpoint threshold expression
// cannot be parsed.
type InvalidBreakpointError struct {
	Expr string
}

func (e *InvalidBreakpointError) Error() string {
	return fmt.Sprintf("invalid breakpoint %q: expected an optional comparison (>=, >, <=, <, =) followed by an integer", e.Expr)
}
