package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oakwood-commons/tabletron/pkg/layout"
)

// ColumnConfig configures one column.
type ColumnConfig struct {
	// Width is an int, a percentage string, "auto" or "content-width".
	Width     any            `yaml:"width,omitempty" toml:"width,omitempty"`
	Align     string         `yaml:"align,omitempty" toml:"align,omitempty"`
	Padding   *PaddingConfig `yaml:"padding,omitempty" toml:"padding,omitempty"`
	Style     *StyleConfig   `yaml:"style,omitempty" toml:"style,omitempty"`
	Transform string         `yaml:"transform,omitempty" toml:"transform,omitempty"`
}

// PaddingConfig overrides individual sides of layout.DefaultPadding.
type PaddingConfig struct {
	Left   *int `yaml:"left,omitempty" toml:"left,omitempty"`
	Right  *int `yaml:"right,omitempty" toml:"right,omitempty"`
	Top    *int `yaml:"top,omitempty" toml:"top,omitempty"`
	Bottom *int `yaml:"bottom,omitempty" toml:"bottom,omitempty"`
}

// Padding applies p over the default padding.
func (p *PaddingConfig) Padding() layout.Padding {
	out := layout.DefaultPadding
	if p == nil {
		return out
	}
	if p.Left != nil {
		out.Left = *p.Left
	}
	if p.Right != nil {
		out.Right = *p.Right
	}
	if p.Top != nil {
		out.Top = *p.Top
	}
	if p.Bottom != nil {
		out.Bottom = *p.Bottom
	}
	return out
}

// Transforms maps transform names to preprocess hooks.
var Transforms = map[string]func(string) string{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"trim":  strings.TrimSpace,
}

// ParseWidth validates the configured width. Text values accept bare integers.
func (c ColumnConfig) ParseWidth() (layout.Width, error) {
	if s, ok := c.Width.(string); ok {
		return layout.ParseWidthText(s)
	}
	return layout.ParseWidth(c.Width)
}

// Validate checks the width, alignment and transform.
func (c ColumnConfig) Validate() error {
	if _, err := c.ParseWidth(); err != nil {
		return err
	}
	if _, err := parseAlign(c.Align); err != nil {
		return err
	}
	if c.Transform != "" {
		if _, ok := Transforms[c.Transform]; !ok {
			return fmt.Errorf("unknown transform %q: valid values are upper, lower, trim", c.Transform)
		}
	}
	return nil
}

// Column converts the config into a layout column. Styles are dropped when
// noColor is set.
func (c ColumnConfig) Column(noColor bool) (layout.Column, error) {
	if err := c.Validate(); err != nil {
		return layout.Column{}, err
	}
	w, _ := c.ParseWidth()
	align, _ := parseAlign(c.Align)
	pad := c.Padding.Padding()

	col := layout.Column{
		Width:      w,
		Padding:    &pad,
		Align:      align,
		Preprocess: Transforms[c.Transform],
	}
	if !noColor && c.Style != nil && !c.Style.IsZero() {
		col.Postprocess = c.Style.Postprocess()
	}
	return col, nil
}

// Columns converts a list of column configs.
func Columns(cfgs []ColumnConfig, noColor bool) ([]layout.Column, error) {
	cols := make([]layout.Column, 0, len(cfgs))
	for i, c := range cfgs {
		col, err := c.Column(noColor)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func parseAlign(s string) (layout.Align, error) {
	switch a := layout.Align(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return layout.AlignLeft, nil
	case layout.AlignLeft, layout.AlignRight, layout.AlignCenter:
		return a, nil
	default:
		return "", fmt.Errorf("invalid align %q: valid values are left, right, center", s)
	}
}

// ParseColumnSpec parses the --column flag syntax. A bare value is a width
// ("20", "30%", "auto", "content-width"). Otherwise it is a comma separated
// list of key=value pairs:
//
//	width=20,align=right,padding=1:1:0:0,fg=12,bg=236,bold,transform=upper
//
// padding takes one value (all sides left/right), two (left:right) or four
// (left:right:top:bottom). bold, italic, underline, faint and reverse are
// flags.
func ParseColumnSpec(spec string) (ColumnConfig, error) {
	spec = strings.TrimSpace(spec)
	if !strings.ContainsAny(spec, "=,") && !isStyleFlag(spec) {
		c := ColumnConfig{Width: spec}
		return c, c.Validate()
	}

	var c ColumnConfig
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		if !hasValue {
			if !isStyleFlag(key) {
				return ColumnConfig{}, fmt.Errorf("invalid column option %q: expected key=value", part)
			}
			if c.Style == nil {
				c.Style = &StyleConfig{}
			}
			c.Style.setFlag(key)
			continue
		}

		switch key {
		case "width", "w":
			c.Width = value
		case "align", "a":
			c.Align = value
		case "padding", "pad", "p":
			p, err := parsePaddingSpec(value)
			if err != nil {
				return ColumnConfig{}, err
			}
			c.Padding = p
		case "fg", "foreground", "color":
			if c.Style == nil {
				c.Style = &StyleConfig{}
			}
			c.Style.Foreground = value
		case "bg", "background":
			if c.Style == nil {
				c.Style = &StyleConfig{}
			}
			c.Style.Background = value
		case "transform", "t":
			c.Transform = value
		default:
			return ColumnConfig{}, fmt.Errorf("unknown column option %q", key)
		}
	}
	return c, c.Validate()
}

func parsePaddingSpec(s string) (*PaddingConfig, error) {
	parts := strings.Split(s, ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid padding %q: expected non-negative integers separated by ':'", s)
		}
		nums[i] = n
	}
	switch len(nums) {
	case 1:
		return &PaddingConfig{Left: &nums[0], Right: &nums[0]}, nil
	case 2:
		return &PaddingConfig{Left: &nums[0], Right: &nums[1]}, nil
	case 4:
		return &PaddingConfig{Left: &nums[0], Right: &nums[1], Top: &nums[2], Bottom: &nums[3]}, nil
	default:
		return nil, fmt.Errorf("invalid padding %q: expected 1, 2 or 4 values", s)
	}
}

// String renders c back in --column syntax.
func (c ColumnConfig) String() string {
	var parts []string
	if c.Width != nil {
		parts = append(parts, fmt.Sprintf("width=%v", c.Width))
	}
	if c.Align != "" {
		parts = append(parts, "align="+c.Align)
	}
	if c.Padding != nil {
		p := c.Padding.Padding()
		parts = append(parts, fmt.Sprintf("padding=%d:%d:%d:%d", p.Left, p.Right, p.Top, p.Bottom))
	}
	if c.Transform != "" {
		parts = append(parts, "transform="+c.Transform)
	}
	if c.Style != nil {
		parts = append(parts, c.Style.specParts()...)
	}
	return strings.Join(parts, ",")
}
