package cmd

import (
	"fmt"
	"runtime"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/tabletron/pkg/settings"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print " + settings.CliBinaryName + " version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
			return nil
		},
	}
}

// cliVersionString describes the build for `version` and --version. Values
// set by ldflags win; otherwise the module build info fills them in.
func cliVersionString() string {
	info := settings.VersionInformation
	goVersion := runtime.Version()

	if bi, ok := rdebug.ReadBuildInfo(); ok {
		if info.BuildVersion == "v0.0.0-nightly" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.BuildVersion = bi.Main.Version
		}
		if info.Commit == "unknown" {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					info.Commit = s.Value[:7]
					break
				}
			}
		}
		if bi.GoVersion != "" {
			goVersion = bi.GoVersion
		}
	}

	return fmt.Sprintf("%s %s (commit %s, built %s, %s %s/%s)",
		settings.CliBinaryName, info.BuildVersion, info.Commit, info.BuildTime,
		goVersion, runtime.GOOS, runtime.GOARCH)
}
