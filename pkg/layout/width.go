package layout

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unbounded marks an available width with no upper limit. Any negative width is
// treated the same way.
const Unbounded = -1

const (
	// ContentWidth sizes a column exactly to its longest line.
	ContentWidth = "content-width"
	// Auto shares whatever width remains evenly with the other auto columns.
	Auto = "auto"
)

// WidthKind classifies a column width spec.
type WidthKind int

const (
	// Share columns split the remaining width ("auto"). This is the zero value.
	Share WidthKind = iota
	// Fixed columns use an explicit character count.
	Fixed
	// Percent columns take a percentage of the available width.
	Percent
	// ContentFit columns size to their measured content ("content-width").
	ContentFit
)

// String returns the spec token for the kind.
func (k WidthKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Percent:
		return "percent"
	case ContentFit:
		return ContentWidth
	default:
		return Auto
	}
}

// Width is a parsed column width spec.
type Width struct {
	Kind WidthKind
	// Chars is the character count of a Fixed width.
	Chars int
	// Percent is the magnitude of a Percent width, 0..100.
	Percent float64
}

var percentPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)%$`)

// ParseWidth converts a raw width value into a Width. Accepted values are
// non-negative integers (any Go integer type or an integral float), the strings
// "auto" and "content-width", and percentage strings such as "50%" or "12.5%".
// A nil value means "auto". Numeric strings like "100" are rejected; callers
// reading text input (flags, config files) convert them before parsing.
func ParseWidth(v any) (Width, error) {
	switch t := v.(type) {
	case nil:
		return Width{Kind: Share}, nil
	case Width:
		return t, nil
	case int:
		return fixedWidth(int64(t), v)
	case int8:
		return fixedWidth(int64(t), v)
	case int16:
		return fixedWidth(int64(t), v)
	case int32:
		return fixedWidth(int64(t), v)
	case int64:
		return fixedWidth(t, v)
	case uint:
		return fixedWidth(int64(t), v)
	case uint8:
		return fixedWidth(int64(t), v)
	case uint16:
		return fixedWidth(int64(t), v)
	case uint32:
		return fixedWidth(int64(t), v)
	case uint64:
		if t > math.MaxInt32 {
			return Width{}, &InvalidWidthError{Value: v}
		}
		return fixedWidth(int64(t), v)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
			return Width{}, &InvalidWidthError{Value: v}
		}
		if t > math.MaxInt32 {
			return Width{}, &InvalidWidthError{Value: v}
		}
		return fixedWidth(int64(t), v)
	case string:
		return parseWidthString(t)
	default:
		return Width{}, &InvalidWidthError{Value: v}
	}
}

func fixedWidth(n int64, raw any) (Width, error) {
	if n < 0 || n > math.MaxInt32 {
		return Width{}, &InvalidWidthError{Value: raw}
	}
	return Width{Kind: Fixed, Chars: int(n)}, nil
}

func parseWidthString(s string) (Width, error) {
	switch s {
	case Auto:
		return Width{Kind: Share}, nil
	case ContentWidth:
		return Width{Kind: ContentFit}, nil
	}
	m := percentPattern.FindStringSubmatch(s)
	if m == nil {
		return Width{}, &InvalidWidthError{Value: s}
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil || pct > 100 {
		return Width{}, &InvalidWidthError{Value: s}
	}
	return Width{Kind: Percent, Percent: pct}, nil
}

// ParseWidthText parses a width written as text, as found in flags and config
// files. Unlike ParseWidth it accepts bare integers ("20") as Fixed widths.
func ParseWidthText(s string) (Width, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Width{Kind: Share}, nil
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return fixedWidth(n, s)
	}
	return parseWidthString(trimmed)
}

// String renders the width back into its spec token.
func (w Width) String() string {
	switch w.Kind {
	case Fixed:
		return strconv.Itoa(w.Chars)
	case Percent:
		return strconv.FormatFloat(w.Percent, 'f', -1, 64) + "%"
	case ContentFit:
		return ContentWidth
	default:
		return Auto
	}
}

// of evaluates a percentage against a finite available width.
func (w Width) of(available int) int {
	return int(math.Floor(float64(available) * w.Percent / 100))
}

// isUnbounded reports whether an available width has no limit.
func isUnbounded(available int) bool {
	return available < 0
}

// FormatAvailable renders an available width for messages and logs.
func FormatAvailable(available int) string {
	if isUnbounded(available) {
		return "unbounded"
	}
	return fmt.Sprintf("%d", available)
}
