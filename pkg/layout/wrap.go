package layout

import (
	"bytes"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/ansi/parser"
)

const (
	sgrReset = "\x1b[0m"
	tabWidth = 8
)

type tokenKind uint8

const (
	tokenText tokenKind = iota
	tokenEscape
)

// escapeKind classifies escape sequences by their effect on state that has
// to be carried across wrapped lines.
type escapeKind uint8

const (
	escapeOther escapeKind = iota
	escapeStyle
	escapeStyleReset
	// escapeStyleReplace resets and then sets attributes, e.g. "\x1b[0;31m".
	escapeStyleReplace
	escapeLinkOpen
	escapeLinkClose
)

// token is either one grapheme cluster with its visual width or one complete
// escape sequence (width 0).
type token struct {
	text   string
	width  int
	kind   tokenKind
	escape escapeKind
	space  bool
}

var parsers = sync.Pool{
	New: func() any {
		p := new(ansi.Parser)
		p.SetParamsSize(parser.MaxParamsSize)
		p.SetDataSize(512)
		return p
	},
}

// tokenize splits a single line (no line breaks, tabs expanded) into
// graphemes and escape sequences. Escape sequences are never split.
func tokenize(line string, m Measurer) []token {
	p := parsers.Get().(*ansi.Parser)
	defer parsers.Put(p)

	tokens := make([]token, 0, len(line))
	for len(line) > 0 {
		_, _, n, _ := ansi.DecodeSequence(line, ansi.NormalState, nil)
		seq := line[:max(n, 1)]
		line = line[len(seq):]
		if isEscape(seq) {
			tokens = append(tokens, token{text: seq, kind: tokenEscape, escape: classify(seq, p)})
			continue
		}
		tokens = append(tokens, token{
			text:  seq,
			width: m.StringWidth(seq),
			space: seq == " ",
		})
	}
	return tokens
}

func isEscape(seq string) bool {
	switch seq[0] {
	case ansi.ESC, ansi.CSI, ansi.OSC, ansi.DCS, ansi.APC, ansi.SOS, ansi.PM:
		return true
	}
	return false
}

// classify decodes seq again with p to read its command and parameters.
func classify(seq string, p *ansi.Parser) escapeKind {
	switch {
	case ansi.HasCsiPrefix(seq):
		if !strings.HasSuffix(seq, "m") || strings.Count(seq, ";")+strings.Count(seq, ":") >= parser.MaxParamsSize {
			return escapeOther
		}
		ansi.DecodeSequence(seq, ansi.NormalState, p)
		cmd := ansi.Cmd(p.Command())
		if cmd.Final() != 'm' || cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
			return escapeOther
		}
		params := p.Params()
		first, _, _ := params.Param(0, 0)
		switch {
		case first != 0:
			return escapeStyle
		case len(params) <= 1:
			return escapeStyleReset
		default:
			return escapeStyleReplace
		}
	case ansi.HasOscPrefix(seq):
		ansi.DecodeSequence(seq, ansi.NormalState, p)
		if p.Command() != 8 {
			return escapeOther
		}
		// OSC 8 ; params ; URI, an empty URI closes the link
		parts := bytes.SplitN(p.Data(), []byte{';'}, 3)
		if len(parts) == 3 && len(parts[2]) > 0 {
			return escapeLinkOpen
		}
		return escapeLinkClose
	}
	return escapeOther
}

// StripEscapes removes escape sequences from s.
func StripEscapes(s string) string {
	return ansi.Strip(s)
}

// expandTabs replaces tabs with spaces up to the next multiple of tabWidth,
// counted from the start of line.
func expandTabs(line string, m Measurer) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	parts := strings.Split(line, "\t")
	var b strings.Builder
	col := 0
	for i, part := range parts {
		b.WriteString(part)
		col += m.StringWidth(part)
		if i < len(parts)-1 {
			n := tabWidth - col%tabWidth
			b.WriteString(spaces(n))
			col += n
		}
	}
	return b.String()
}

// Wrap breaks text into lines no wider than width. Existing line breaks are
// kept. Long lines break at the whitespace nearest the limit, or mid-word when
// there is none. Styles and hyperlinks left open at the end of a line are
// closed there and reopened on the next line. Tabs are expanded to spaces. A
// width of 0 or less yields a single empty line.
func Wrap(text string, width int, m Measurer) []string {
	if width <= 0 {
		return []string{""}
	}
	m = measurerOrDefault(m)
	var wrapped [][]token
	for _, line := range splitLines(text) {
		wrapped = append(wrapped, wrapTokens(tokenize(expandTabs(line, m), m), width)...)
	}
	return carryStyles(wrapped)
}

func wrapTokens(tokens []token, width int) [][]token {
	var lines [][]token
	var cur []token
	curW := 0
	lastSpace := -1

	flush := func() {
		lines = append(lines, trimTrailingSpace(cur))
		cur = nil
		curW = 0
		lastSpace = -1
	}

	for _, t := range tokens {
		if t.kind == tokenEscape {
			cur = append(cur, t)
			continue
		}
		if curW+t.width > width {
			switch {
			case t.space:
				// the breaking space is consumed
				flush()
				continue
			case lastSpace >= 0:
				tail := append([]token(nil), cur[lastSpace+1:]...)
				cur = cur[:lastSpace]
				flush()
				cur = tail
				for _, tt := range tail {
					curW += tt.width
				}
				if curW+t.width > width {
					flush()
				}
			case curW > 0:
				// styles opened right before the break belong to the next line
				head, pending := splitTrailingEscapes(cur)
				cur = head
				flush()
				cur = pending
			}
		}
		cur = append(cur, t)
		curW += t.width
		if t.space {
			lastSpace = len(cur) - 1
		}
	}
	lines = append(lines, cur)
	return lines
}

func splitTrailingEscapes(line []token) (head, escapes []token) {
	end := len(line)
	for end > 0 && line[end-1].kind == tokenEscape {
		end--
	}
	return line[:end], append([]token(nil), line[end:]...)
}

// trimTrailingSpace drops space tokens at the end of a line, keeping any
// escape sequences that follow them.
func trimTrailingSpace(line []token) []token {
	end := len(line)
	var escapes []token
	for end > 0 {
		t := line[end-1]
		if t.kind == tokenEscape {
			escapes = append(escapes, t)
		} else if !t.space {
			break
		}
		end--
	}
	if end == len(line) {
		return line
	}
	out := append([]token(nil), line[:end]...)
	for i := len(escapes) - 1; i >= 0; i-- {
		out = append(out, escapes[i])
	}
	return out
}

// carryStyles renders token lines to strings, reopening SGR styles and the
// hyperlink that were still active at the end of the previous line.
func carryStyles(lines [][]token) []string {
	out := make([]string, 0, len(lines))
	var active []string
	var link string
	for _, line := range lines {
		var b strings.Builder
		for _, seq := range active {
			b.WriteString(seq)
		}
		b.WriteString(link)
		for _, t := range line {
			b.WriteString(t.text)
			switch t.escape {
			case escapeStyle:
				active = append(active, t.text)
			case escapeStyleReset:
				active = active[:0]
			case escapeStyleReplace:
				active = append(active[:0], t.text)
			case escapeLinkOpen:
				link = t.text
			case escapeLinkClose:
				link = ""
			}
		}
		if link != "" {
			b.WriteString(ansi.ResetHyperlink())
		}
		if len(active) > 0 {
			b.WriteString(sgrReset)
		}
		out = append(out, b.String())
	}
	return out
}
