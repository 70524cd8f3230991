package sow

import (
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rotisserie/eris"
)

// Column widths of the phase table in millimetres; they fill an A4 page
// inside the default margins.
var pdfColumns = []float64{60, 100, 30}

const pdfLineHeight = 6

// WritePDF writes the rendered SOW text as an A4 PDF. Table rows are laid out
// as bordered cells; everything else flows as wrapped text.
func WritePDF(w io.Writer, text string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	header := true
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		switch {
		case isTableRule(line):
			continue
		case strings.HasPrefix(line, "|"):
			style := ""
			if header || strings.Contains(line, "**") {
				style = "B"
			}
			header = false
			pdf.SetFont("Arial", style, 9)
			for i, cell := range tableCells(line) {
				if i >= len(pdfColumns) {
					break
				}
				pdf.CellFormat(pdfColumns[i], pdfLineHeight, tr(cell), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		case headingLine.MatchString(line):
			pdf.SetFont("Arial", "B", 12)
			pdf.MultiCell(0, pdfLineHeight+1, tr(line), "", "L", false)
		case line == "":
			pdf.Ln(pdfLineHeight / 2)
		default:
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, pdfLineHeight, tr(line), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return eris.Wrap(err, "write pdf")
	}
	return nil
}
