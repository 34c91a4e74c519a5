// Package settings provides build metadata, per-run configuration and
// context helpers used across the tabletron CLI.
package settings

import "github.com/oakwood-commons/tabletron/pkg/layout"

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "tabletron"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the settings of a single invocation.
type Run struct {
	MinLogLevel int8
	// Width is the available width: 0 detects the terminal, negative means
	// unbounded.
	Width      int
	ConfigPath string
	Format     string
	NoColor    bool
	EastAsian  bool
	Header     bool
	Explain    bool
}

// NewCliParams returns the defaults for a CLI run: detect the terminal,
// auto-detect the input format.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Format:      "auto",
	}
}

// Measurer returns the width measurer selected by EastAsian.
func (r *Run) Measurer() layout.Measurer {
	if r.EastAsian {
		return layout.NewRuneWidthMeasurer(true)
	}
	return layout.DefaultMeasurer
}
