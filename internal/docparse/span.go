package docparse

import (
	"strconv"
	"strings"

	"github.com/sskannan007/UX-CAG/internal/doctree"
)

type gridPos struct {
	row, col int
}

// resolveTable flattens a source table into a grid of anchor cells with
// explicit spans. Every grid position covered by a merge is recorded in a
// processed set so it is emitted exactly once, at its anchor.
func (e *Extractor) resolveTable(t *tableXML) *doctree.Table {
	out := &doctree.Table{}
	if len(t.Rows) == 0 {
		return out
	}

	extent := columnExtent(t)
	processed := make(map[gridPos]bool)
	for r, row := range t.Rows {
		outRow := &doctree.Row{}
		c := 0
		for i := range row.Cells {
			cell := &row.Cells[i]
			colspan := e.colspan(cell)
			if colspan > 1 && c+colspan > extent {
				e.log.Warn("gridSpan past table extent, treating as 1",
					"row", r, "col", c, "span", colspan, "extent", extent)
				colspan = 1
			}

			// Continuation cells, and any position already claimed by
			// an anchor above, only advance the grid cursor.
			if processed[gridPos{r, c}] || cell.mergeContinue() {
				c += colspan
				continue
			}

			rowspan := 1
			if cell.mergeRestart() {
				rowspan += e.countContinuations(t, r, c)
			}
			for rr := r; rr < r+rowspan; rr++ {
				for cc := c; cc < c+colspan; cc++ {
					processed[gridPos{rr, cc}] = true
				}
			}

			outRow.Cells = append(outRow.Cells, e.resolveCell(cell, rowspan, colspan))
			c += colspan
		}
		out.Rows = append(out.Rows, outRow)
	}
	return out
}

// columnExtent returns the table's declared column count from tblGrid.
// Documents missing the grid fall back to the widest row's cell count,
// which a row's anchors can never exceed.
func columnExtent(t *tableXML) int {
	extent := len(t.Grid.Cols)
	if extent > 0 {
		return extent
	}
	for _, row := range t.Rows {
		if len(row.Cells) > extent {
			extent = len(row.Cells)
		}
	}
	return extent
}

// countContinuations walks the rows below a merge anchor and counts the cells
// at the same grid column that continue the merge. The scan stops at the
// first non-continuing cell or at a row that ends before the column.
func (e *Extractor) countContinuations(t *tableXML, anchorRow, col int) int {
	count := 0
	for r := anchorRow + 1; r < len(t.Rows); r++ {
		cell := cellAtColumn(e, &t.Rows[r], col)
		if cell == nil {
			e.log.Warn("ragged row ends merge scan", "row", r, "col", col)
			return count
		}
		if !cell.mergeContinue() {
			return count
		}
		count++
	}
	return count
}

// cellAtColumn finds the source cell covering a grid column, using declared
// column spans to tile the row. Returns nil when the row ends early.
func cellAtColumn(e *Extractor, row *rowXML, col int) *cellXML {
	c := 0
	for i := range row.Cells {
		cell := &row.Cells[i]
		span := e.colspan(cell)
		if col >= c && col < c+span {
			return cell
		}
		c += span
	}
	return nil
}

// colspan reads the declared gridSpan, degrading malformed or non-positive
// values to 1 with a warning.
func (e *Extractor) colspan(cell *cellXML) int {
	raw := cell.gridSpanVal()
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		e.log.Warn("malformed gridSpan, treating as 1", "value", raw)
		return 1
	}
	return n
}

// resolveCell assembles cell text from its direct paragraphs, joined with
// newlines, and recurses into nested tables.
func (e *Extractor) resolveCell(cell *cellXML, rowspan, colspan int) *doctree.Cell {
	var lines []string
	out := &doctree.Cell{RowSpan: rowspan, ColSpan: colspan}
	for _, b := range cell.Blocks {
		switch {
		case b.Para != nil:
			lines = append(lines, b.Para.text())
		case b.Table != nil:
			out.Tables = append(out.Tables, e.resolveTable(b.Table))
		}
	}
	out.Text = strings.Join(lines, "\n")
	return out
}
