package loader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

var markdownDelimiterRow = regexp.MustCompile(`^\s*\|?\s*:?-+:?\s*(\|\s*:?-+:?\s*)*\|?\s*$`)

// isLikelyMarkdownTable reports whether input starts with a pipe table: a
// header row followed by a delimiter row such as |---|:--:|.
func isLikelyMarkdownTable(input string) bool {
	lines := strings.SplitN(input, "\n", 3)
	if len(lines) < 2 {
		return false
	}
	header := strings.TrimSpace(lines[0])
	delim := strings.TrimSpace(lines[1])
	return strings.Contains(header, "|") && strings.Contains(delim, "-") && markdownDelimiterRow.MatchString(delim)
}

// loadMarkdown extracts the first pipe table of a Markdown document. Inline
// markup is dropped; code spans keep their text.
func loadMarkdown(input string) ([][]string, error) {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse([]byte(input), p)

	var rows [][]string
	var row []string
	done := false
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if done {
			return ast.Terminate
		}
		switch n := node.(type) {
		case *ast.Table:
			if !entering {
				done = true
				return ast.Terminate
			}
		case *ast.TableRow:
			if entering {
				row = nil
			} else {
				rows = append(rows, row)
			}
		case *ast.TableCell:
			if entering {
				row = append(row, strings.TrimSpace(cellText(n)))
				return ast.SkipChildren
			}
		}
		return ast.GoToNext
	})

	if len(rows) == 0 {
		return nil, fmt.Errorf("no table found in Markdown input")
	}
	return rows, nil
}

func cellText(cell ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(cell, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.Text:
			b.Write(n.Literal)
		case *ast.Code:
			b.Write(n.Literal)
		case *ast.Softbreak, *ast.Hardbreak:
			b.WriteString("\n")
		}
		return ast.GoToNext
	})
	return b.String()
}
