package layout

import (
	"math"
	"regexp"
	"sort"
	"strconv"
)

// Predicate reports whether a breakpoint applies at the given available
// width. Unbounded widths are passed as math.MaxInt.
type Predicate func(stdoutColumns int) bool

// Breakpoint pairs a width predicate with the options to use when it matches.
type Breakpoint struct {
	Match   Predicate
	Options Options
}

// Threshold is a parsed comparison such as ">= 90".
type Threshold struct {
	Op    string
	Bound int
}

var thresholdPattern = regexp.MustCompile(`^\s*(>=|<=|==|>|<|=)?\s*(\d+)\s*$`)

// ParseThreshold parses "[op] N" where op is one of >=, >, <=, <, = or ==.
// A bare number means ">=".
func ParseThreshold(expr string) (Threshold, error) {
	m := thresholdPattern.FindStringSubmatch(expr)
	if m == nil {
		return Threshold{}, &InvalidBreakpointError{Expr: expr}
	}
	bound, err := strconv.Atoi(m[2])
	if err != nil {
		return Threshold{}, &InvalidBreakpointError{Expr: expr}
	}
	op := m[1]
	switch op {
	case "":
		op = ">="
	case "==":
		op = "="
	}
	return Threshold{Op: op, Bound: bound}, nil
}

// Match implements Predicate.
func (t Threshold) Match(stdoutColumns int) bool {
	switch t.Op {
	case ">":
		return stdoutColumns > t.Bound
	case "<=":
		return stdoutColumns <= t.Bound
	case "<":
		return stdoutColumns < t.Bound
	case "=":
		return stdoutColumns == t.Bound
	default:
		return stdoutColumns >= t.Bound
	}
}

func (t Threshold) String() string {
	return t.Op + " " + strconv.Itoa(t.Bound)
}

// AtLeast is a breakpoint for widths of n or more.
func AtLeast(n int, opts Options) Breakpoint {
	return Breakpoint{Match: Threshold{Op: ">=", Bound: n}.Match, Options: opts}
}

// Breakpoints returns an OptionsFunc that uses the first breakpoint, in order,
// whose predicate matches. When none match it returns zero Options.
func Breakpoints(bps ...Breakpoint) OptionsFunc {
	return func(stdoutColumns int) Options {
		w := stdoutColumns
		if isUnbounded(w) {
			w = math.MaxInt
		}
		for _, bp := range bps {
			if bp.Match != nil && bp.Match(w) {
				return bp.Options
			}
		}
		return Options{}
	}
}

// BreakpointsFromMap builds breakpoints keyed by threshold expressions, e.g.
//
//	{">= 90": wide, ">= 25": normal, ">= 0": narrow}
//
// Larger bounds are tried first.
func BreakpointsFromMap(m map[string]Options) (OptionsFunc, error) {
	type entry struct {
		key string
		t   Threshold
	}
	entries := make([]entry, 0, len(m))
	for k := range m {
		t, err := ParseThreshold(k)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{key: k, t: t})
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].t.Bound != entries[b].t.Bound {
			return entries[a].t.Bound > entries[b].t.Bound
		}
		return entries[a].key < entries[b].key
	})

	bps := make([]Breakpoint, len(entries))
	for i, e := range entries {
		bps[i] = Breakpoint{Match: e.t.Match, Options: m[e.key]}
	}
	return Breakpoints(bps...), nil
}
