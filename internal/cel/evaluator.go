// Package cel compiles CEL expressions used as layout breakpoint predicates.
//
// Expressions see two variables: width, the available width as an int, and
// unbounded, true when output has no width limit (width is then the largest
// int). For example:
//
//	width >= 80 && width < 120
//	unbounded || width > 200
package cel

import (
	"fmt"
	"math"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"
)

const (
	// VarWidth is the available width variable.
	VarWidth = "width"
	// VarUnbounded reports an unlimited width.
	VarUnbounded = "unbounded"
)

// Evaluator compiles breakpoint expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the width variables and the math and
// strings extensions.
func NewEvaluator() (*Evaluator, error) {
	env, err := newStandardCELEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// newStandardCELEnv creates the breakpoint environment. Additional options
// extend it.
func newStandardCELEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 4+len(opts))
	allOpts = append(allOpts,
		cel.Variable(VarWidth, cel.IntType),
		cel.Variable(VarUnbounded, cel.BoolType),
		celext.Math(),
		celext.Strings(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// Predicate is a compiled boolean expression over the available width.
type Predicate struct {
	expr string
	prg  cel.Program
}

// Compile parses and type-checks expr. It must evaluate to a bool.
func (e *Evaluator) Compile(expr string) (*Predicate, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error in %q: %w", expr, issues.Err())
	}
	if out := ast.OutputType(); out != cel.BoolType && out != cel.DynType {
		return nil, fmt.Errorf("breakpoint expression %q must return bool, got %v", expr, out)
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program creation error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// Eval evaluates the predicate at the given width. Widths from the layout
// breakpoint helpers arrive as math.MaxInt when unbounded; a negative width
// means unbounded as well.
func (p *Predicate) Eval(width int) (bool, error) {
	unbounded := width < 0 || width == math.MaxInt
	if width < 0 {
		width = math.MaxInt
	}
	out, _, err := p.prg.Eval(map[string]any{
		VarWidth:     int64(width),
		VarUnbounded: unbounded,
	})
	if err != nil {
		return false, fmt.Errorf("evaluation error in %q: %w", p.expr, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("breakpoint expression %q returned %T, not bool", p.expr, out.Value())
	}
	return b, nil
}

// Match is Eval with errors treated as false. It satisfies layout.Predicate.
func (p *Predicate) Match(width int) bool {
	ok, err := p.Eval(width)
	return err == nil && ok
}

func (p *Predicate) String() string {
	return p.expr
}
