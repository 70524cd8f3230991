package parser

import (
	"bytes"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/sowgen/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
)

// cellGap is the horizontal gap, in multiples of the font size, that splits
// two text runs on the same row into separate cells.
const cellGap = 1.5

// PDFReader handles PDF files. It reads text and row layout with the Go
// library and, when enabled, falls back to pdftotext for text only.
type PDFReader struct {
	FallbackPdftotext bool
}

func (p *PDFReader) Read(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "read pdf")
	}

	doc := &doctree.Document{Title: baseTitle(filename)}
	pages, err := readPDFPages(data)
	if err != nil && p.FallbackPdftotext {
		pages, err = readPdftotext(data)
	}
	if err != nil {
		return nil, eris.Wrap(err, "extract pdf text")
	}
	doc.Pages = pages
	return doc, nil
}

func readPDFPages(data []byte) (pages []*doctree.Page, err error) {
	// The library panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, eris.Wrap(err, "open pdf")
	}

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		out := &doctree.Page{Number: i}
		if text, err := page.GetPlainText(nil); err == nil {
			out.Text = text
		}
		out.Rows = pageRows(page)
		pages = append(pages, out)
	}
	return pages, nil
}

// pageRows lays out a page's positioned text. A page whose content stream
// cannot be interpreted keeps its plain text and gets no rows.
func pageRows(page pdflib.Page) (rows []doctree.Row) {
	defer func() {
		if r := recover(); r != nil {
			rows = nil
		}
	}()
	return layoutRows(page.Content().Text)
}

// layoutRows groups positioned glyphs into rows, top to bottom, and splits
// each row into cells.
func layoutRows(glyphs []pdflib.Text) []doctree.Row {
	runs := joinRuns(glyphs)
	// PDF y grows upward.
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Y > runs[j].Y })

	var out []doctree.Row
	for start := 0; start < len(runs); {
		end := start + 1
		for end < len(runs) && sameLine(runs[start], runs[end]) {
			end++
		}
		if cells := splitCells(runs[start:end]); len(cells) > 0 {
			out = append(out, doctree.Row{Cells: cells})
		}
		start = end
	}
	return out
}

// joinRuns merges consecutive glyphs that continue one another on the same
// line. Fonts without width tables report W=0 and never advance X, so a glyph
// at the previous glyph's X also continues the run.
func joinRuns(glyphs []pdflib.Text) []pdflib.Text {
	var runs []pdflib.Text
	var prev pdflib.Text
	for _, g := range glyphs {
		if len(runs) > 0 && sameLine(prev, g) && continues(prev, g) {
			last := &runs[len(runs)-1]
			last.S += g.S
			last.W += g.W
		} else {
			runs = append(runs, g)
		}
		prev = g
	}
	return runs
}

func continues(prev, next pdflib.Text) bool {
	const slack = 0.5
	return next.X >= prev.X-slack && next.X <= prev.X+prev.W+slack
}

func sameLine(a, b pdflib.Text) bool {
	tol := math.Max(a.FontSize, b.FontSize) * 0.3
	if tol < 1 {
		tol = 1
	}
	return math.Abs(a.Y-b.Y) <= tol
}

// splitCells merges text runs that sit close together and starts a new cell
// wherever the gap to the previous run exceeds cellGap font sizes.
func splitCells(runs []pdflib.Text) []string {
	items := make([]pdflib.Text, 0, len(runs))
	for _, t := range runs {
		if strings.TrimSpace(t.S) != "" {
			items = append(items, t)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].X < items[j].X })

	var cells []string
	var cur strings.Builder
	end := 0.0
	for i, t := range items {
		size := t.FontSize
		if size <= 0 {
			size = 10
		}
		if i > 0 {
			gap := t.X - end
			switch {
			case gap > size*cellGap:
				cells = append(cells, strings.TrimSpace(cur.String()))
				cur.Reset()
			case gap > size*0.2:
				cur.WriteString(" ")
			}
		}
		cur.WriteString(t.S)
		w := t.W
		if w <= 0 {
			w = float64(utf8.RuneCountInString(t.S)) * size * 0.5
		}
		if t.X+w > end || i == 0 {
			end = t.X + w
		}
	}
	if cur.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cur.String()))
	}
	return cells
}

// readPdftotext shells out to pdftotext. Pages come back without row layout.
func readPdftotext(data []byte) ([]*doctree.Page, error) {
	tmp, err := os.CreateTemp("", "sowgen-pdf-*.pdf")
	if err != nil {
		return nil, eris.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, eris.Wrap(err, "write temp file")
	}
	tmp.Close()

	cmd := exec.Command("pdftotext", "-layout", tmpPath, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, eris.Wrap(err, "pdftotext")
	}

	var pages []*doctree.Page
	for i, text := range splitPages(string(out)) {
		if i > 0 && text == "" {
			continue
		}
		pages = append(pages, &doctree.Page{Number: i + 1, Text: text})
	}
	return pages, nil
}

func splitPages(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\f"), "\f")
}
