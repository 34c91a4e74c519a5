package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/tabletron/pkg/settings"
)

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, settings.CliBinaryName+" ")
	assert.Contains(t, out, settings.VersionInformation.BuildTime)

	flagOut, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, out, flagOut)
}

func TestConfigCmd(t *testing.T) {
	t.Run("yaml defaults", func(t *testing.T) {
		out, err := execute(t, "", "config")
		require.NoError(t, err)
		assert.Contains(t, out, "header_style:")
		assert.Contains(t, out, `foreground: "12"`)
		assert.NotContains(t, out, "# merged with")
	})

	t.Run("toml merged", func(t *testing.T) {
		cfg := writeFile(t, "config.yaml", "header: true\n")
		out, err := execute(t, "", "config", "--config", cfg, "-o", "toml")
		require.NoError(t, err)
		assert.Contains(t, out, "# merged with "+cfg)
		assert.Contains(t, out, "header = true")
		assert.Contains(t, out, "[header_style]")
	})

	t.Run("unknown output", func(t *testing.T) {
		_, err := execute(t, "", "config", "-o", "json")
		assert.ErrorContains(t, err, "unsupported config output")
	})
}
