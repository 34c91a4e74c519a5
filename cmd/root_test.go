package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/tabletron/internal/config"
	"github.com/oakwood-commons/tabletron/pkg/layout"
	"github.com/oakwood-commons/tabletron/pkg/loader"
	"github.com/oakwood-commons/tabletron/pkg/settings"
)

const sizes = "name,size\nalpha,1\nbeta,22\n"

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootRender(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "unbounded",
			stdin: sizes,
			args:  []string{"--width", "-1"},
			want:  " name   size \n alpha  1    \n beta   22   \n",
		},
		{
			name:  "fixed and auto",
			stdin: "abcdef,x\n",
			args:  []string{"-c", "3", "-c", "auto", "--width", "12"},
			want:  " abc  x     \n def        \n",
		},
		{
			name:  "stdin dash",
			stdin: "a,b\n",
			args:  []string{"-", "-w", "-1"},
			want:  " a  b \n",
		},
		{
			name:  "header with tail",
			stdin: sizes,
			args:  []string{"--header", "--tail", "1", "--width", "-1"},
			want:  " name  size \n beta  22   \n",
		},
		{
			name:  "tail",
			stdin: sizes,
			args:  []string{"--tail", "1", "--width", "-1"},
			want:  " beta  22 \n",
		},
		{
			name:  "column options",
			stdin: "a,b\n",
			args:  []string{"-c", "width=3,align=right,padding=0:1", "--width", "-1"},
			want:  "  a  b \n",
		},
		{
			name:  "transform",
			stdin: "abc,d\n",
			args:  []string{"-c", "width=content-width,transform=upper", "-w", "-1"},
			want:  " ABC  d \n",
		},
		{
			name:  "forced format",
			stdin: "a;b,c\n",
			args:  []string{"--format", "tsv", "-w", "-1"},
			want:  " a;b,c \n",
		},
		{
			name:  "empty input",
			stdin: "  \n",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRootDetectsWidth(t *testing.T) {
	out, err := execute(t, "a,b\n")
	require.NoError(t, err)
	line := strings.TrimSuffix(out, "\n")
	assert.Equal(t, 40, len(line))
	assert.True(t, strings.HasPrefix(line, " a"))
}

func TestRootFileInput(t *testing.T) {
	path := writeFile(t, "data.json", `[{"b": 1, "a": "x"}]`)
	out, err := execute(t, "", path, "--width", "-1")
	require.NoError(t, err)
	assert.Equal(t, " a  b \n x  1 \n", out)

	_, err = execute(t, "", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "failed to read file")
}

func TestRootConfig(t *testing.T) {
	t.Run("width and columns", func(t *testing.T) {
		cfg := writeFile(t, "config.yaml", "width: 10\ncolumns:\n  - width: 4\n")
		out, err := execute(t, "a,b\n", "--config", cfg)
		require.NoError(t, err)
		assert.Equal(t, " a     b  \n", out)
	})

	t.Run("flag width wins", func(t *testing.T) {
		cfg := writeFile(t, "config.yaml", "width: 10\n")
		out, err := execute(t, "a,b\n", "--config", cfg, "--width", "-1")
		require.NoError(t, err)
		assert.Equal(t, " a  b \n", out)
	})

	t.Run("toml breakpoints", func(t *testing.T) {
		cfg := writeFile(t, "config.toml", `
[[columns]]
width = 1

[[breakpoints]]
when = ">= 50"
[[breakpoints.columns]]
width = "content-width"
`)
		narrow, err := execute(t, "abc\n", "--config", cfg, "-w", "20")
		require.NoError(t, err)
		assert.Equal(t, " a \n b \n c \n", narrow)

		wide, err := execute(t, "abc\n", "--config", cfg, "-w", "60")
		require.NoError(t, err)
		assert.Equal(t, " abc \n", wide)
	})

	t.Run("format from config", func(t *testing.T) {
		cfg := writeFile(t, "config.yaml", "format: tsv\n")
		out, err := execute(t, "a,b\n", "--config", cfg, "-w", "-1")
		require.NoError(t, err)
		assert.Equal(t, " a,b \n", out)
	})

	t.Run("invalid", func(t *testing.T) {
		cfg := writeFile(t, "config.yaml", "columns:\n  - width: wide\n")
		_, err := execute(t, "a\n", "--config", cfg)
		assert.ErrorContains(t, err, `invalid column width: "wide"`)
	})
}

func TestRootExplain(t *testing.T) {
	out, err := execute(t, "a,b\n", "--explain", "--width", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "available: 30")
	assert.Contains(t, out, "columns (2)")
	assert.Contains(t, out, "line width: 30")
}

func TestRootErrors(t *testing.T) {
	t.Run("too many columns", func(t *testing.T) {
		_, err := execute(t, "a,b\n", "-c", "1", "-c", "1", "-c", "1")
		var tooMany *layout.TooManyColumnsError
		require.ErrorAs(t, err, &tooMany)
		assert.EqualError(t, err, "3 columns defined, but only 2 columns found")
	})

	t.Run("invalid column flag", func(t *testing.T) {
		_, err := execute(t, "a,b\n", "-c", "wide")
		assert.ErrorContains(t, err, `invalid column width: "wide"`)
	})

	t.Run("limit and tail", func(t *testing.T) {
		_, err := execute(t, sizes, "--limit", "1", "--tail", "1")
		assert.ErrorContains(t, err, "mutually exclusive")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, sizes, "--format", "xml")
		assert.Error(t, err)
	})
}

func TestRootSettingsInContext(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--width", "30", "--format", "csv", "--east-asian", "config"})
	cmd, err := root.ExecuteC()
	require.NoError(t, err)

	run, ok := settings.FromContext(cmd.Context())
	require.True(t, ok)
	assert.Equal(t, 30, run.Width)
	assert.Equal(t, "csv", run.Format)
	assert.True(t, run.EastAsian)
}

func TestInputFormat(t *testing.T) {
	tests := []struct {
		name string
		flag string
		cfg  *config.File
		want loader.Format
	}{
		{name: "flag wins", flag: "json", cfg: &config.File{Format: "tsv"}, want: loader.FormatJSON},
		{name: "config when auto", flag: "auto", cfg: &config.File{Format: "tsv"}, want: loader.FormatTSV},
		{name: "auto without config", flag: "auto", want: loader.FormatAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inputFormat(&settings.Run{Format: tt.flag}, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnsFlag(t *testing.T) {
	var f columnsFlag
	assert.Equal(t, "spec", f.Type())
	require.NoError(t, f.Set("12"))
	require.NoError(t, f.Set("width=30%,align=center"))
	require.Len(t, f.configs, 2)
	assert.Equal(t, "12", f.configs[0].Width)
	assert.Equal(t, "center", f.configs[1].Align)
	assert.Contains(t, f.String(), "30%")

	assert.Error(t, f.Set("size=3"))
	assert.Len(t, f.configs, 2)
}
