package outline

import (
	"fmt"
	"strings"

	"github.com/sskannan007/UX-CAG/internal/doctree"
)

// TableHTML renders a resolved table grid as an HTML table string. The first
// row renders as header cells, span attributes appear only when greater than
// one, lines within a cell join with <br>, and nested tables embed
// recursively.
func TableHTML(t *doctree.Table) string {
	var sb strings.Builder
	sb.WriteString("<table>\n")
	for i, row := range t.Rows {
		sb.WriteString("  <tr>\n")
		tag := "td"
		if i == 0 {
			tag = "th"
		}
		for _, cell := range row.Cells {
			var attrs string
			if cell.ColSpan > 1 {
				attrs += fmt.Sprintf(` colspan="%d"`, cell.ColSpan)
			}
			if cell.RowSpan > 1 {
				attrs += fmt.Sprintf(` rowspan="%d"`, cell.RowSpan)
			}
			fmt.Fprintf(&sb, "    <%s%s>%s</%s>\n", tag, attrs, cellHTML(cell), tag)
		}
		sb.WriteString("  </tr>\n")
	}
	sb.WriteString("</table>")
	return sb.String()
}

// cellHTML joins the cell's text lines and nested tables with <br>.
func cellHTML(c *doctree.Cell) string {
	var parts []string
	for _, line := range strings.Split(c.Text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	for _, nested := range c.Tables {
		parts = append(parts, TableHTML(nested))
	}
	return strings.Join(parts, "<br>")
}
