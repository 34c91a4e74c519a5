package layout

import (
	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
)

// Measurer returns the on-screen column count of a single line of text. It
// must ignore escape sequences and weight wide and combining characters.
type Measurer interface {
	StringWidth(s string) int
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(s string) int

// StringWidth calls f(s).
func (f MeasurerFunc) StringWidth(s string) int {
	return f(s)
}

// DefaultMeasurer measures with lipgloss, which understands ANSI sequences and
// grapheme clusters.
var DefaultMeasurer Measurer = MeasurerFunc(lipgloss.Width)

// RuneWidthMeasurer measures escape-stripped text with go-runewidth. Setting
// EastAsianWidth counts ambiguous-width runes as two columns, matching CJK
// terminals.
type RuneWidthMeasurer struct {
	cond *runewidth.Condition
}

// NewRuneWidthMeasurer returns a go-runewidth based measurer.
func NewRuneWidthMeasurer(eastAsian bool) *RuneWidthMeasurer {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = eastAsian
	return &RuneWidthMeasurer{cond: cond}
}

// StringWidth implements Measurer.
func (m *RuneWidthMeasurer) StringWidth(s string) int {
	return m.cond.StringWidth(StripEscapes(s))
}

func measurerOrDefault(m Measurer) Measurer {
	if m == nil {
		return DefaultMeasurer
	}
	return m
}
