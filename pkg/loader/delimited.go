package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadDelimited reads CSV (sep ',') or TSV (sep '\t'). Ragged rows are kept
// as-is; the layout treats missing cells as empty.
func loadDelimited(input string, sep rune) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(input))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = sep == '\t'

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", delimitedName(sep), err)
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	return rows, nil
}

func delimitedName(sep rune) string {
	if sep == '\t' {
		return "TSV"
	}
	return "CSV"
}

// isLikelyDelimited reports whether input parses as sep-separated records of
// a consistent width greater than one, and YAML would not read it as
// anything richer than a plain string.
func isLikelyDelimited(input string, sep rune) bool {
	firstLine, _, _ := strings.Cut(input, "\n")
	if !strings.ContainsRune(firstLine, sep) {
		return false
	}
	if first := strings.TrimSpace(firstLine); strings.HasPrefix(first, "{") || strings.HasPrefix(first, "[") {
		return false
	}

	reader := csv.NewReader(strings.NewReader(input))
	reader.Comma = sep
	reader.LazyQuotes = sep == '\t'
	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 || len(records[0]) < 2 {
		return false
	}
	if sep == '\t' {
		return true
	}

	var probe interface{}
	if yaml.Unmarshal([]byte(input), &probe) != nil {
		return true
	}
	_, isScalar := probe.(string)
	return isScalar
}
