package parser

import (
	"io"

	"github.com/dgallion1/sowgen/internal/doctree"
	"github.com/rotisserie/eris"
)

// TextReader handles plain text uploads. The whole file is one page with no
// table layout.
type TextReader struct{}

func (p *TextReader) Read(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "read text")
	}
	doc := &doctree.Document{Title: baseTitle(filename)}
	if len(data) > 0 {
		doc.Pages = []*doctree.Page{{Number: 1, Text: string(data)}}
	}
	return doc, nil
}
