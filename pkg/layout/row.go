package layout

import "strings"

// RenderRow lays out one table row against resolved columns and returns its
// lines. Every line has the same width: the sum of the columns' total widths.
// Missing cells render as empty.
func RenderRow(columns []ResolvedColumn, row []string, m Measurer) []string {
	m = measurerOrDefault(m)

	cells := make([][]string, len(columns))
	height := 0
	for i, col := range columns {
		text := ""
		if i < len(row) {
			text = row[i]
		}
		cells[i] = renderCell(col, text, m)
		height = max(height, len(cells[i]))
	}

	lines := make([]string, height)
	var b strings.Builder
	for li := 0; li < height; li++ {
		b.Reset()
		for i, col := range columns {
			if li < len(cells[i]) {
				b.WriteString(cells[i][li])
			} else {
				b.WriteString(spaces(col.TotalWidth()))
			}
		}
		lines[li] = b.String()
	}
	return lines
}

// renderCell returns the column's lines for one cell, vertical padding
// included.
func renderCell(col ResolvedColumn, text string, m Measurer) []string {
	var content []string
	if col.Width <= 0 {
		content = []string{""}
	} else {
		if col.Preprocess != nil {
			text = col.Preprocess(text)
		}
		content = Wrap(text, col.Width, m)
		for i, line := range content {
			line = alignLine(line, col.Width, col.Align, m)
			if col.Postprocess != nil {
				line = col.Postprocess(line, i)
			}
			content[i] = line
		}
	}

	blank := spaces(col.TotalWidth())
	left := spaces(col.PaddingLeft)
	right := spaces(col.PaddingRight)

	out := make([]string, 0, col.PaddingTop+len(content)+col.PaddingBottom)
	for i := 0; i < col.PaddingTop; i++ {
		out = append(out, blank)
	}
	for _, line := range content {
		out = append(out, left+line+right)
	}
	for i := 0; i < col.PaddingBottom; i++ {
		out = append(out, blank)
	}
	return out
}

// alignLine pads line with spaces up to width. Center puts the odd space on
// the right.
func alignLine(line string, width int, a Align, m Measurer) string {
	gap := width - m.StringWidth(line)
	if gap <= 0 {
		return line
	}
	switch a {
	case AlignRight:
		return spaces(gap) + line
	case AlignCenter:
		left := gap / 2
		return spaces(left) + line + spaces(gap-left)
	default:
		return line + spaces(gap)
	}
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
