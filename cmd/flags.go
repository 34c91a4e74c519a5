package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/oakwood-commons/tabletron/internal/config"
)

var _ pflag.Value = (*columnsFlag)(nil)

// columnsFlag collects repeated --column values.
type columnsFlag struct {
	configs []config.ColumnConfig
}

func (c *columnsFlag) String() string {
	parts := make([]string, len(c.configs))
	for i, cfg := range c.configs {
		parts[i] = cfg.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (c *columnsFlag) Set(s string) error {
	cfg, err := config.ParseColumnSpec(s)
	if err != nil {
		return err
	}
	c.configs = append(c.configs, cfg)
	return nil
}

func (c *columnsFlag) Type() string {
	return "spec"
}
