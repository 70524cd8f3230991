package excerpt

import (
	"strings"

	"github.com/dgallion1/sowgen/internal/doctree"
	"github.com/dgallion1/sowgen/internal/textnorm"
)

// CellSeparator joins cells within a rendered table row.
const CellSeparator = " | "

// TableDetector finds tabular regions in a document.
type TableDetector interface {
	Detect(doc *doctree.Document) []doctree.Table
}

// RowTableDetector treats a run of consecutive multi-cell rows on one page as
// a table.
type RowTableDetector struct {
	MinRows int // Shortest run that counts as a table; defaults to 2.
}

func (d RowTableDetector) Detect(doc *doctree.Document) []doctree.Table {
	minRows := d.MinRows
	if minRows <= 0 {
		minRows = 2
	}

	var tables []doctree.Table
	for _, page := range doc.Pages {
		var run [][]string
		flush := func() {
			if len(run) >= minRows {
				tables = append(tables, doctree.Table{Page: page.Number, Rows: run})
			}
			run = nil
		}
		for _, row := range page.Rows {
			if len(row.Cells) < 2 {
				flush()
				continue
			}
			run = append(run, row.Cells)
		}
		flush()
	}
	return tables
}

// RenderTable writes the header cells then one line per body row, cells
// joined by CellSeparator. Body rows shorter than the header are padded with
// empty cells.
func RenderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	header := textnorm.Cells(rows[0])
	lines := make([]string, 0, len(rows))
	lines = append(lines, strings.Join(header, CellSeparator))
	for _, row := range rows[1:] {
		cells := textnorm.Cells(row)
		for len(cells) < len(header) {
			cells = append(cells, "")
		}
		lines = append(lines, strings.Join(cells, CellSeparator))
	}
	return strings.Join(lines, "\n")
}
