package cmd

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tabletron/internal/config"
	"github.com/oakwood-commons/tabletron/pkg/settings"
)

func newConfigCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged layout config",
		Long: `Print the layout config in effect: the built-in defaults merged with the
file from --config or the default location. The result can be saved and
edited as a starting point.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ResolvePath(settings.OrDefault(cmd.Context()).ConfigPath)
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			out, err := marshalConfig(cfg, output)
			if err != nil {
				return err
			}
			if path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# merged with %s\n", path)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml|toml")
	return cmd
}

func marshalConfig(cfg *config.File, format string) (string, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("encode YAML config: %w", err)
		}
		return string(data), nil
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("encode TOML config: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported config output %q: valid values are yaml, toml", format)
	}
}
