package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Format names an input format.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatCSV      Format = "csv"
	FormatTSV      Format = "tsv"
	FormatJSON     Format = "json"
	FormatNDJSON   Format = "ndjson"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatMarkdown Format = "markdown"
)

// Formats lists every format ParseFormat accepts, auto first.
var Formats = []Format{FormatAuto, FormatCSV, FormatTSV, FormatJSON, FormatNDJSON, FormatYAML, FormatTOML, FormatMarkdown}

// ParseFormat validates a --format value. "" and "auto" mean detect; "md" and
// "yml" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	default:
		for _, known := range Formats {
			if f == known {
				return f, nil
			}
		}
		return "", fmt.Errorf("invalid format %q: valid values are auto, csv, tsv, json, ndjson, yaml, toml, markdown", s)
	}
}

// FormatFromPath guesses a format from a file extension. Unknown extensions
// yield FormatAuto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".tsv", ".tab":
		return FormatTSV
	case ".json":
		return FormatJSON
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatAuto
	}
}

// Table is loaded input ready for layout.
type Table struct {
	Rows [][]string
	// Header reports whether Rows[0] holds column names rather than data.
	Header bool
	// Format is the format the input was parsed as.
	Format Format
}

// DetectFormat guesses the format of input from its content.
func DetectFormat(input string) Format {
	input = strings.TrimSpace(input)
	switch {
	case strings.HasPrefix(input, "---"), strings.Contains(input, "\n---"):
		return FormatYAML
	case isLikelyMarkdownTable(input):
		return FormatMarkdown
	case isLikelyDelimited(input, '\t'):
		return FormatTSV
	case isLikelyDelimited(input, ','):
		return FormatCSV
	default:
		return detectStructured(input)
	}
}

// Load parses input in the given format into a table. FormatAuto detects the
// format from content.
func Load(input string, format Format) (*Table, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	if format == "" || format == FormatAuto {
		format = DetectFormat(input)
	}

	switch format {
	case FormatCSV:
		rows, err := loadDelimited(input, ',')
		if err != nil {
			return nil, err
		}
		return &Table{Rows: rows, Format: format}, nil
	case FormatTSV:
		rows, err := loadDelimited(input, '\t')
		if err != nil {
			return nil, err
		}
		return &Table{Rows: rows, Format: format}, nil
	case FormatMarkdown:
		rows, err := loadMarkdown(input)
		if err != nil {
			return nil, err
		}
		return &Table{Rows: rows, Header: true, Format: format}, nil
	}

	var docs []interface{}
	var err error
	trimmed := strings.TrimSpace(input)
	switch format {
	case FormatJSON:
		docs, err = loadJSON(trimmed)
	case FormatNDJSON:
		docs, err = loadNDJSON(trimmed)
	case FormatTOML:
		docs, err = loadTOML(trimmed)
	case FormatYAML:
		docs, err = loadYAML(trimmed)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}
	t := FromDocuments(docs)
	t.Format = format
	return t, nil
}

// LoadReader reads all of r and loads it.
func LoadReader(r io.Reader, format Format) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return Load(string(data), format)
}

// LoadFile reads a file and loads it. With FormatAuto the extension is
// consulted before the content.
func LoadFile(path string, format Format) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if format == "" || format == FormatAuto {
		format = FormatFromPath(path)
	}
	return Load(string(data), format)
}

// FromDocuments turns parsed documents into rows.
//
// A single document that is a list is treated as the list of rows; several
// documents (NDJSON, multi-document YAML) are one row each. A single object
// holding exactly one list (a TOML array of tables) is unwrapped to that
// list; any other single object becomes KEY/VALUE rows.
//
// List rows become cells in order. When every row is an object the sorted
// union of their keys becomes a header row.
func FromDocuments(docs []interface{}) *Table {
	items := docs
	if len(docs) == 1 {
		switch v := docs[0].(type) {
		case []interface{}:
			items = v
		case map[string]interface{}:
			if list, ok := soleList(v); ok {
				items = list
			} else {
				return keyValueTable(v)
			}
		}
	}

	if keys, ok := objectKeys(items); ok {
		rows := make([][]string, 0, len(items)+1)
		rows = append(rows, keys)
		for _, item := range items {
			obj := item.(map[string]interface{})
			row := make([]string, len(keys))
			for i, k := range keys {
				row[i] = Stringify(obj[k])
			}
			rows = append(rows, row)
		}
		return &Table{Rows: rows, Header: true}
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, rowOf(item))
	}
	return &Table{Rows: rows}
}

func rowOf(item interface{}) []string {
	list, ok := item.([]interface{})
	if !ok {
		return []string{Stringify(item)}
	}
	row := make([]string, len(list))
	for i, v := range list {
		row[i] = Stringify(v)
	}
	return row
}

func soleList(m map[string]interface{}) ([]interface{}, bool) {
	if len(m) != 1 {
		return nil, false
	}
	for _, v := range m {
		list, ok := v.([]interface{})
		return list, ok
	}
	return nil, false
}

// objectKeys returns the sorted union of keys when every item is an object.
func objectKeys(items []interface{}) ([]string, bool) {
	if len(items) == 0 {
		return nil, false
	}
	keySet := make(map[string]bool)
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		for k := range obj {
			keySet[k] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, true
}

func keyValueTable(m map[string]interface{}) *Table {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys)+1)
	rows = append(rows, []string{"KEY", "VALUE"})
	for _, k := range keys {
		rows = append(rows, []string{k, Stringify(m[k])})
	}
	return &Table{Rows: rows, Header: true}
}

// Stringify renders a parsed value as cell text. Strings keep their line
// breaks; nested maps and lists become compact JSON.
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(t)
	case map[string]any, []any:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", t)
	case fmt.Stringer:
		return t.String()
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() { //nolint:exhaustive // only complex types need JSON marshaling
		case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
			if b, err := json.Marshal(v); err == nil {
				return string(b)
			}
		}
		return fmt.Sprintf("%v", v)
	}
}
