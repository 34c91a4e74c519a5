package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "fits", text: "hello", width: 10, want: []string{"hello"}},
		{name: "breaks at space", text: "hello world", width: 5, want: []string{"hello", "world"}},
		{name: "breaks at last space", text: "ab cdefg", width: 5, want: []string{"ab", "cdefg"}},
		{name: "hard break mid-word", text: "abcdefgh", width: 3, want: []string{"abc", "def", "gh"}},
		{name: "keeps line breaks", text: "a\nb", width: 5, want: []string{"a", "b"}},
		{name: "empty text", text: "", width: 5, want: []string{""}},
		{name: "zero width", text: "abc", width: 0, want: []string{""}},
		{name: "wide characters", text: "日本語", width: 4, want: []string{"日本", "語"}},
		{name: "wide character wider than column", text: "日", width: 1, want: []string{"日"}},
		{name: "combining marks stay with base", text: "ééé", width: 2, want: []string{"éé", "é"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, tt.width, nil))
		})
	}
}

func TestWrapEscapes(t *testing.T) {
	t.Run("open style is closed and reopened", func(t *testing.T) {
		got := Wrap("\x1b[31mabcdef\x1b[0m", 3, nil)
		assert.Equal(t, []string{
			"\x1b[31mabc\x1b[0m",
			"\x1b[31mdef\x1b[0m",
		}, got)
	})

	t.Run("closed style is not carried", func(t *testing.T) {
		got := Wrap("\x1b[1mab\x1b[0m cd", 2, nil)
		assert.Equal(t, []string{"\x1b[1mab\x1b[0m", "cd"}, got)
	})

	t.Run("styles carry across explicit line breaks", func(t *testing.T) {
		got := Wrap("\x1b[4mab\ncd\x1b[0m", 5, nil)
		assert.Equal(t, []string{
			"\x1b[4mab\x1b[0m",
			"\x1b[4mcd\x1b[0m",
		}, got)
	})

	t.Run("hyperlinks are closed and reopened", func(t *testing.T) {
		open := "\x1b]8;;https://example.com\x07"
		closeLink := "\x1b]8;;\x07"
		got := Wrap(open+"abcd"+closeLink, 2, nil)
		assert.Equal(t, []string{open + "ab" + closeLink, open + "cd" + closeLink}, got)
	})

	t.Run("hyperlinks with string terminators", func(t *testing.T) {
		open := "\x1b]8;;http://x\x1b\\"
		got := Wrap(open+"link text here\x1b]8;;\x1b\\", 4, nil)
		assert.Equal(t, []string{
			open + "link\x1b]8;;\x07",
			open + "text\x1b]8;;\x07",
			open + "here\x1b]8;;\x1b\\",
		}, got)
	})

	t.Run("reset with attributes replaces the style", func(t *testing.T) {
		got := Wrap("\x1b[1mab\x1b[0;32mcdef", 2, nil)
		assert.Equal(t, []string{
			"\x1b[1mab\x1b[0m",
			"\x1b[1m\x1b[0;32mcd\x1b[0m",
			"\x1b[0;32mef\x1b[0m",
		}, got)
	})

	t.Run("other sequences are not carried", func(t *testing.T) {
		got := Wrap("\x1b]0;title\x07abcd", 2, nil)
		assert.Equal(t, []string{"\x1b]0;title\x07ab", "cd"}, got)
	})
}

func TestWrapTabs(t *testing.T) {
	assert.Equal(t, []string{"a       b"}, Wrap("a\tb", 10, nil))
	assert.Equal(t, []string{"a", "  b"}, Wrap("a\tb", 5, nil))
	assert.Equal(t, []string{"ab      c"}, Wrap("ab\tc", 9, nil))
}

func TestContentWidthsExpandTabs(t *testing.T) {
	assert.Equal(t, []int{9}, ContentWidths([][]string{{"a\tb"}}, nil))
	assert.Equal(t, []int{16}, ContentWidths([][]string{{"\t\t"}}, nil))
}

func TestStripEscapes(t *testing.T) {
	assert.Equal(t, "bold", StripEscapes("\x1b[1mbold\x1b[0m"))
	assert.Equal(t, "link", StripEscapes("\x1b]8;;http://x\x07link\x1b]8;;\x07"))
	assert.Equal(t, "plain", StripEscapes("plain"))
	assert.Equal(t, "st", StripEscapes("\x1b]0;title\x1b\\st"))
}
