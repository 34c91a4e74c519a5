package config

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// StyleConfig is a lipgloss style in config form. Colors take anything
// lipgloss.Color accepts: ANSI numbers ("12") or hex ("#ff8800").
type StyleConfig struct {
	Foreground string `yaml:"foreground,omitempty" toml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty" toml:"background,omitempty"`
	Bold       bool   `yaml:"bold,omitempty" toml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty" toml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty" toml:"underline,omitempty"`
	Faint      bool   `yaml:"faint,omitempty" toml:"faint,omitempty"`
	Reverse    bool   `yaml:"reverse,omitempty" toml:"reverse,omitempty"`
}

// IsZero reports whether the style changes nothing.
func (s *StyleConfig) IsZero() bool {
	return s == nil || *s == StyleConfig{}
}

// Style builds the lipgloss style.
func (s *StyleConfig) Style() lipgloss.Style {
	st := lipgloss.NewStyle()
	if s == nil {
		return st
	}
	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		st = st.Background(lipgloss.Color(s.Background))
	}
	return st.
		Bold(s.Bold).
		Italic(s.Italic).
		Underline(s.Underline).
		Faint(s.Faint).
		Reverse(s.Reverse)
}

// Postprocess returns a layout hook that styles each wrapped line.
func (s *StyleConfig) Postprocess() func(line string, index int) string {
	st := s.Style()
	return func(line string, _ int) string {
		return st.Render(line)
	}
}

// StyleRow styles every line of every cell in row. Lines are styled one at a
// time so multi-line cells are not padded into blocks.
func StyleRow(row []string, s *StyleConfig) []string {
	if s.IsZero() {
		return row
	}
	st := s.Style()
	out := make([]string, len(row))
	for i, cell := range row {
		if cell == "" {
			continue
		}
		lines := strings.Split(cell, "\n")
		for j, l := range lines {
			lines[j] = st.Render(l)
		}
		out[i] = strings.Join(lines, "\n")
	}
	return out
}

func isStyleFlag(s string) bool {
	switch strings.ToLower(s) {
	case "bold", "italic", "underline", "faint", "reverse":
		return true
	}
	return false
}

func (s *StyleConfig) setFlag(name string) {
	switch name {
	case "bold":
		s.Bold = true
	case "italic":
		s.Italic = true
	case "underline":
		s.Underline = true
	case "faint":
		s.Faint = true
	case "reverse":
		s.Reverse = true
	}
}

func (s *StyleConfig) specParts() []string {
	var parts []string
	if s.Foreground != "" {
		parts = append(parts, "fg="+s.Foreground)
	}
	if s.Background != "" {
		parts = append(parts, "bg="+s.Background)
	}
	flags := []struct {
		name string
		on   bool
	}{
		{"bold", s.Bold},
		{"italic", s.Italic},
		{"underline", s.Underline},
		{"faint", s.Faint},
		{"reverse", s.Reverse},
	}
	for _, f := range flags {
		if f.on {
			parts = append(parts, f.name)
		}
	}
	return parts
}
