package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/tabletron/internal/config"
	"github.com/oakwood-commons/tabletron/internal/render"
	"github.com/oakwood-commons/tabletron/internal/watch"
	"github.com/oakwood-commons/tabletron/pkg/loader"
	"github.com/oakwood-commons/tabletron/pkg/logger"
	"github.com/oakwood-commons/tabletron/pkg/settings"
)

func newWatchCmd(o *options) *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "watch [file|-]",
		Short: "Show a table full screen and lay it out again on resize or change",
		Long: `Show the table in the alternate screen. It is laid out again whenever the
terminal is resized, and reloaded when the input file or the config file
changes. Use the arrow keys to scroll, r to reload, q to quit.

Logs would corrupt the screen, so they go to --log-file or nowhere.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run := settings.OrDefault(cmd.Context())
			lgr := logr.Discard()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				lgr = *logger.New(logger.Options{Level: run.MinLogLevel, Output: f})
				lgr = lgr.WithValues(logger.CommandKey, cmd.Name())
			}
			return runWatch(cmd, args, o, run, lgr)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string, o *options, run *settings.Run, lgr logr.Logger) error {
	cfgPath := config.ResolvePath(run.ConfigPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	width, err := render.Available(run.Width, cmd.Flags().Changed("width"), cfg, func() int { return 0 })
	if err != nil {
		return err
	}

	var paths []string
	var stdinTable *loader.Table
	if len(args) > 0 && args[0] != "-" {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		args = []string{abs}
		paths = append(paths, abs)
	} else {
		// stdin can be read once; reloads only pick up config changes
		format, err := inputFormat(run, cfg)
		if err != nil {
			return err
		}
		if stdinTable, err = readTable(cmd.InOrStdin(), args, format); err != nil {
			if errors.Is(err, errShowHelp) {
				return cmd.Help()
			}
			return err
		}
	}
	if cfgPath != "" {
		abs, err := filepath.Abs(cfgPath)
		if err != nil {
			return err
		}
		cfgPath = abs
		paths = append(paths, abs)
	}

	load := func() (*render.Renderer, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		tbl := stdinTable
		if tbl == nil {
			format, err := inputFormat(run, cfg)
			if err != nil {
				return nil, err
			}
			if tbl, err = readTable(nil, args, format); err != nil {
				return nil, err
			}
		}
		return render.New(o.request(cmd, run, tbl, cfg), lgr)
	}

	return watch.Run(cmd.Context(), watch.Options{
		Load:    load,
		Width:   width,
		Paths:   paths,
		NoColor: run.NoColor || os.Getenv("NO_COLOR") != "",
		Log:     lgr,
	})
}
