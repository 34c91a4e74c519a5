package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/tabletron/internal/config"
	"github.com/oakwood-commons/tabletron/internal/limiter"
	"github.com/oakwood-commons/tabletron/internal/render"
	"github.com/oakwood-commons/tabletron/pkg/loader"
	"github.com/oakwood-commons/tabletron/pkg/logger"
	"github.com/oakwood-commons/tabletron/pkg/settings"
	"github.com/oakwood-commons/tabletron/pkg/terminal"
)

// errShowHelp is returned by readTable when there is no input to read.
var errShowHelp = errors.New("no input provided")

// Terminal probes, replaced in tests.
var (
	detectWidth  = terminal.Width
	colorEnabled = terminal.IsTerminal
)

// options holds the flag values of one command tree.
type options struct {
	run     *settings.Run
	columns columnsFlag
	limit   limiter.Config
}

const rootLong = `tabletron lays out rows of text as a borderless table that fits the
terminal. Cells wrap inside their columns, escape sequences such as colors
and hyperlinks survive wrapping, and column widths may be fixed ("12"), a
percentage ("30%"), sized to content ("content-width") or share what is left
("auto").

Input is CSV, TSV, JSON, NDJSON, YAML, TOML or a Markdown pipe table, read
from a file or stdin and detected from its content.`

const rootExample = `  tabletron data.csv
  kubectl get pods -o json | jq .items | tabletron --header
  tabletron -c content-width -c 30% -c auto notes.md
  tabletron -c 'width=10,align=right,fg=12' --width 60 data.tsv
  tabletron --explain --width 100 data.yaml`

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	o := &options{run: settings.NewCliParams()}

	root := &cobra.Command{
		Use:           settings.CliBinaryName + " [file|-]",
		Short:         "Lay out tables that fit the terminal",
		Long:          rootLong,
		Example:       rootExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			lgr := logger.Get(o.run.MinLogLevel)
			lgr = logger.WithValues(lgr, logger.CommandKey, cmd.Name())
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.WithLogger(ctx, lgr)
			cmd.SetContext(settings.IntoContext(ctx, o.run))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, o)
		},
	}

	pf := root.PersistentFlags()
	pf.IntVarP(&o.run.Width, "width", "w", 0, "available width in columns (0 = detect terminal, -1 = unbounded)")
	pf.StringVar(&o.run.ConfigPath, "config", "", "path to a YAML or TOML layout config (default $XDG_CONFIG_HOME/tabletron/config.yaml)")
	pf.StringVarP(&o.run.Format, "format", "f", string(loader.FormatAuto), "input format: auto|csv|tsv|json|ndjson|yaml|toml|markdown")
	pf.BoolVar(&o.run.Header, "header", false, "treat the first row as a header and style it")
	pf.BoolVar(&o.run.NoColor, "no-color", false, "disable header and column styles")
	pf.BoolVar(&o.run.EastAsian, "east-asian", false, "measure ambiguous-width characters as two columns")
	pf.VarP(&o.columns, "column", "c", "column spec, repeatable: auto, content-width, N, N%, or key=value list (width, align, padding, fg, bg, transform, bold...)")
	pf.IntVar(&o.limit.Limit, "limit", 0, "show at most N rows")
	pf.IntVar(&o.limit.Offset, "offset", 0, "skip the first N rows")
	pf.IntVar(&o.limit.Tail, "tail", 0, "show the last N rows (mutually exclusive with --limit; ignores --offset)")
	pf.Int8Var(&o.run.MinLogLevel, "log-level", 0, "log level: -1 debug, 0 info, 1 warn, 2 error")

	root.Flags().BoolVar(&o.run.Explain, "explain", false, "print the resolved column layout instead of the table")

	root.Version = cliVersionString()
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(newVersionCmd(), newConfigCmd(), newWatchCmd(o))
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

func runRoot(cmd *cobra.Command, args []string, o *options) error {
	lgr := logger.FromContext(cmd.Context())
	run := settings.OrDefault(cmd.Context())

	cfg, err := config.Load(config.ResolvePath(run.ConfigPath))
	if err != nil {
		return err
	}
	format, err := inputFormat(run, cfg)
	if err != nil {
		return err
	}

	tbl, err := readTable(cmd.InOrStdin(), args, format)
	switch {
	case errors.Is(err, errShowHelp):
		return cmd.Help()
	case errors.Is(err, loader.ErrEmptyInput):
		return nil
	case err != nil:
		return err
	}
	lgr.V(1).Info("loaded input", logger.FormatKey, tbl.Format, logger.RowsKey, len(tbl.Rows))

	r, err := render.New(o.request(cmd, run, tbl, cfg), *lgr)
	if err != nil {
		return err
	}
	width, err := render.Available(run.Width, cmd.Flags().Changed("width"), cfg, detectWidth)
	if err != nil {
		return err
	}

	var out string
	if run.Explain {
		out, err = r.Explain(width)
	} else {
		out, err = r.Render(width)
	}
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}

// inputFormat picks the input format: the flag, then the config file.
func inputFormat(run *settings.Run, cfg *config.File) (loader.Format, error) {
	name := run.Format
	if (name == "" || name == string(loader.FormatAuto)) && cfg != nil && cfg.Format != "" {
		name = cfg.Format
	}
	return loader.ParseFormat(name)
}

// request collects the render inputs from flags and config.
func (o *options) request(cmd *cobra.Command, run *settings.Run, tbl *loader.Table, cfg *config.File) render.Request {
	req := render.Request{
		Table:    tbl,
		Config:   cfg,
		Columns:  o.columns.configs,
		Limit:    o.limit,
		NoColor:  run.NoColor || os.Getenv("NO_COLOR") != "" || !colorEnabled(),
		Measurer: run.Measurer(),
	}
	if cmd.Flags().Changed("header") {
		h := run.Header
		req.Header = &h
	}
	return req
}

// readTable loads args[0], or stdin when there is no argument or it is "-".
// A terminal on stdin with no argument means there is nothing to read.
func readTable(stdin io.Reader, args []string, format loader.Format) (*loader.Table, error) {
	if len(args) > 0 && args[0] != "-" {
		return loader.LoadFile(args[0], format)
	}
	if len(args) == 0 {
		if f, ok := stdin.(*os.File); ok {
			if st, err := f.Stat(); err == nil && st.Mode()&os.ModeCharDevice != 0 {
				return nil, errShowHelp
			}
		}
	}
	return loader.LoadReader(stdin, format)
}
