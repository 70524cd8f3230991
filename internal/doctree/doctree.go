package doctree

import "strings"

// Document is the page-ordered content of an uploaded file.
type Document struct {
	Title string  // Filename without extension
	Pages []*Page // In source order
}

// Page holds the plain text and row layout of a single page.
type Page struct {
	Number int    // 1-based
	Text   string // Plain text as reported by the reader
	Rows   []Row  // Text rows top to bottom; empty for readers without layout
}

// Row is one visual line of a page split into cells by horizontal gaps.
type Row struct {
	Cells []string
}

// Table is a detected tabular region. The first row is the header.
type Table struct {
	Page int
	Rows [][]string
}

// FullText joins page texts with newlines, preserving page order.
func (d *Document) FullText() string {
	if d == nil {
		return ""
	}
	var sb strings.Builder
	for i, p := range d.Pages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
