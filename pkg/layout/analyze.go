package layout

import "strings"

// ColumnCount returns the length of the longest row.
func ColumnCount(rows [][]string) int {
	n := 0
	for _, row := range rows {
		n = max(n, len(row))
	}
	return n
}

// ContentWidths returns, per column, the widest single line found in that
// column across all rows. Missing cells count as empty.
func ContentWidths(rows [][]string, m Measurer) []int {
	m = measurerOrDefault(m)
	widths := make([]int, ColumnCount(rows))
	for _, row := range rows {
		for i, cell := range row {
			if cell == "" {
				continue
			}
			for _, line := range splitLines(cell) {
				if w := m.StringWidth(expandTabs(line, m)); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

// splitLines splits on \n after folding \r\n and bare \r into \n.
func splitLines(s string) []string {
	if strings.ContainsRune(s, '\r') {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
	}
	return strings.Split(s, "\n")
}
