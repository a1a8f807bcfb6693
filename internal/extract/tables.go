package extract

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// htmlTable is a parsed <table> block with its byte offset in the scanned
// content. The offset lets roster extraction check how close a table sits
// to its trigger sentence.
type htmlTable struct {
	rows [][]string
	pos  int
}

// scanHTMLTables tokenizes content and collects every top-level <table> as
// a grid of trimmed cell strings. Nested tables contribute their text to
// the enclosing cell instead of opening a new grid.
func scanHTMLTables(content string) []htmlTable {
	z := html.NewTokenizer(strings.NewReader(content))

	var tables []htmlTable
	var cur htmlTable
	var row []string
	var cell strings.Builder
	depth := 0
	inRow := false
	inCell := false
	consumed := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := len(z.Raw())

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "table":
				if depth == 0 {
					cur = htmlTable{pos: consumed}
				}
				depth++
			case "tr":
				if depth == 1 {
					inRow = true
					row = nil
				}
			case "td", "th":
				if depth == 1 && inRow {
					inCell = true
					cell.Reset()
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "table":
				if depth > 0 {
					depth--
					if depth == 0 && len(cur.rows) > 0 {
						tables = append(tables, cur)
					}
				}
			case "tr":
				if depth == 1 && inRow {
					if len(row) > 0 {
						cur.rows = append(cur.rows, row)
					}
					inRow = false
				}
			case "td", "th":
				if depth == 1 && inCell {
					row = append(row, strings.TrimSpace(cell.String()))
					inCell = false
				}
			}
		case html.TextToken:
			if inCell {
				cell.Write(z.Text())
			}
		}
		consumed += raw
	}
	return tables
}

var pipeTableMarkdown = goldmark.New(goldmark.WithExtensions(extension.Table))

var separatorRowRe = regexp.MustCompile(`^\s*\|(?:\s*:?---+:?.*\|)+\s*$`)

// blockToHTML converts a captured table block to the flat
// <table><tr><td>…</td></tr></table> HTML used throughout the output.
// Blocks that already carry HTML table markup pass through with newlines
// removed; pipe tables are parsed with goldmark, falling back to a plain
// cell split when the block has no delimiter row for goldmark to latch on.
func blockToHTML(tableLines []string) string {
	for _, line := range tableLines {
		if strings.Contains(line, "<table>") || strings.Contains(line, "<tr>") ||
			strings.Contains(line, "<td>") || strings.Contains(line, "<th>") {
			return strings.ReplaceAll(strings.Join(tableLines, ""), "\n", "")
		}
	}
	if grid := parsePipeTable(strings.Join(tableLines, "\n")); len(grid) > 0 {
		return gridToHTML(grid)
	}
	return gridToHTML(splitPipeRows(tableLines))
}

// parsePipeTable runs goldmark's table extension over the block and
// flattens the resulting header/body rows. Returns nil when goldmark does
// not recognize a table.
func parsePipeTable(src string) [][]string {
	source := []byte(src)
	doc := pipeTableMarkdown.Parser().Parse(text.NewReader(source))

	var grid [][]string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		tbl, ok := n.(*east.Table)
		if !ok {
			continue
		}
		for rowNode := tbl.FirstChild(); rowNode != nil; rowNode = rowNode.NextSibling() {
			var row []string
			for cellNode := rowNode.FirstChild(); cellNode != nil; cellNode = cellNode.NextSibling() {
				row = append(row, strings.TrimSpace(nodeText(cellNode, source)))
			}
			grid = append(grid, row)
		}
		break
	}
	return grid
}

func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// splitPipeRows is the fallback for delimiter-less pipe tables: one row per
// line, cells split on '|'.
func splitPipeRows(tableLines []string) [][]string {
	var grid [][]string
	for _, line := range tableLines {
		if separatorRowRe.MatchString(line) {
			continue
		}
		trimmed := strings.Trim(strings.TrimSpace(line), "|")
		cells := strings.Split(trimmed, "|")
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = strings.TrimSpace(c)
		}
		grid = append(grid, row)
	}
	return grid
}

func gridToHTML(grid [][]string) string {
	var b strings.Builder
	b.WriteString("<table>")
	for _, row := range grid {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>")
			b.WriteString(cell)
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}
