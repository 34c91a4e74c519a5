package layout

// Align controls how a wrapped line shorter than the column is padded.
type Align string

const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// Padding is counted in character columns (Left, Right) or blank lines
// (Top, Bottom).
type Padding struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// DefaultPadding is used for columns that do not set Padding.
var DefaultPadding = Padding{Left: 1, Right: 1}

// Horizontal returns Left + Right.
func (p Padding) Horizontal() int {
	return p.Left + p.Right
}

func (p Padding) normalized() Padding {
	return Padding{
		Left:   max(p.Left, 0),
		Right:  max(p.Right, 0),
		Top:    max(p.Top, 0),
		Bottom: max(p.Bottom, 0),
	}
}

// Column configures one table column. The zero value is an "auto" column with
// default padding and left alignment.
type Column struct {
	// Width is the raw width spec, see ParseWidth. nil means "auto".
	Width any

	// Padding overrides DefaultPadding when set.
	Padding *Padding

	Align Align

	// Preprocess runs once on the whole cell text before wrapping.
	Preprocess func(text string) string

	// Postprocess runs on every wrapped content line with its zero-based index
	// within the cell. It never sees vertical padding lines.
	Postprocess func(line string, index int) string
}

func (c Column) padding() Padding {
	if c.Padding == nil {
		return DefaultPadding
	}
	return c.Padding.normalized()
}

// Widths builds columns from bare width specs, e.g. Widths(10, "50%", "auto").
func Widths(specs ...any) []Column {
	cols := make([]Column, len(specs))
	for i, s := range specs {
		cols[i] = Column{Width: s}
	}
	return cols
}

// ResolvedColumn is the concrete layout of one column for a single render.
type ResolvedColumn struct {
	Kind WidthKind

	// Width is the content width in character columns.
	Width int

	PaddingLeft   int
	PaddingRight  int
	PaddingTop    int
	PaddingBottom int

	// Allotment is the total width the resolver granted the column, padding
	// included. -1 when the available width is unbounded.
	Allotment int

	Align       Align
	Preprocess  func(text string) string
	Postprocess func(line string, index int) string
}

// TotalWidth is content plus horizontal padding.
func (c ResolvedColumn) TotalWidth() int {
	return c.Width + c.PaddingLeft + c.PaddingRight
}
