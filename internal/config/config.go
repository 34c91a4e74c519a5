// Package config reads table layout settings from YAML or TOML files.
//
// A config file describes columns, an optional width override and
// breakpoints that switch column layouts by available width:
//
//	width: 100
//	header: true
//	columns:
//	  - width: content-width
//	    align: right
//	    padding: {left: 0, right: 2}
//	    style: {foreground: "12", bold: true}
//	    transform: upper
//	breakpoints:
//	  - when: ">= 120"
//	    columns: [{width: 30}, {width: auto}]
//	  - expr: "width % 2 == 0"
//	    width: unbounded
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tabletron/pkg/layout"
)

// File is a parsed config file.
type File struct {
	// Width is used instead of the detected terminal width when --width is
	// not given: an int, or "unbounded".
	Width any `yaml:"width,omitempty" toml:"width,omitempty"`
	// Header styles the first row with HeaderStyle.
	Header *bool `yaml:"header,omitempty" toml:"header,omitempty"`
	// Format forces an input format, see loader.ParseFormat.
	Format      string             `yaml:"format,omitempty" toml:"format,omitempty"`
	HeaderStyle *StyleConfig       `yaml:"header_style,omitempty" toml:"header_style,omitempty"`
	Columns     []ColumnConfig     `yaml:"columns,omitempty" toml:"columns,omitempty"`
	Breakpoints []BreakpointConfig `yaml:"breakpoints,omitempty" toml:"breakpoints,omitempty"`
}

// Parse decodes config data. format is "yaml" or "toml"; "" means YAML.
func Parse(data []byte, format string) (*File, error) {
	var f File
	switch strings.ToLower(format) {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode TOML config: %w", err)
		}
	case "", "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads a config file, choosing TOML for a .toml extension and YAML
// otherwise, and merges it over the embedded defaults. An empty path yields
// the defaults.
func Load(path string) (*File, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = "toml"
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return base.Merge(f), nil
}

// ResolvePath returns explicit when set, otherwise the first existing file
// among $XDG_CONFIG_HOME/tabletron/config.{yaml,toml} (or ~/.config when XDG
// is unset). It returns "" when there is none.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		candidate := filepath.Join(dir, "tabletron", name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// Merge returns a copy of f with every field set in override replacing its
// counterpart.
func (f *File) Merge(override *File) *File {
	out := *f
	if override == nil {
		return &out
	}
	if override.Width != nil {
		out.Width = override.Width
	}
	if override.Header != nil {
		out.Header = override.Header
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.HeaderStyle != nil {
		out.HeaderStyle = override.HeaderStyle
	}
	if len(override.Columns) > 0 {
		out.Columns = override.Columns
	}
	if len(override.Breakpoints) > 0 {
		out.Breakpoints = override.Breakpoints
	}
	return &out
}

// HeaderEnabled reports whether the first row is a header.
func (f *File) HeaderEnabled() bool {
	return f.Header != nil && *f.Header
}

// Validate checks every width, alignment, transform and breakpoint without
// compiling CEL expressions.
func (f *File) Validate() error {
	if _, err := ParseAvailable(f.Width); err != nil {
		return err
	}
	for i, c := range f.Columns {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("columns[%d]: %w", i, err)
		}
	}
	for i, bp := range f.Breakpoints {
		if err := bp.Validate(); err != nil {
			return fmt.Errorf("breakpoints[%d]: %w", i, err)
		}
	}
	return nil
}

// ParseAvailable converts a width override into an available width. nil
// means no override.
func ParseAvailable(v any) (*int, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case int:
		return availableFromInt(int64(t), v)
	case int64:
		return availableFromInt(t, v)
	case uint64:
		if t > uint64(^uint32(0)>>1) {
			return nil, fmt.Errorf("invalid width %v", v)
		}
		return availableFromInt(int64(t), v)
	case float64:
		if t != float64(int64(t)) {
			return nil, fmt.Errorf("invalid width %v", v)
		}
		return availableFromInt(int64(t), v)
	case string:
		s := strings.TrimSpace(t)
		if strings.EqualFold(s, "unbounded") {
			return layout.AvailableWidth(layout.Unbounded), nil
		}
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid width %q: expected an integer or \"unbounded\"", t)
		}
		return availableFromInt(n, v)
	default:
		return nil, fmt.Errorf("invalid width %v", v)
	}
}

func availableFromInt(n int64, raw any) (*int, error) {
	if n < 0 {
		return layout.AvailableWidth(layout.Unbounded), nil
	}
	if n > 1<<31-1 {
		return nil, fmt.Errorf("invalid width %v", raw)
	}
	return layout.AvailableWidth(int(n)), nil
}
