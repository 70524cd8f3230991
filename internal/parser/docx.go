package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/sowgen/internal/doctree"
	"github.com/fumiama/go-docx"
	"github.com/rotisserie/eris"
)

// DOCXReader handles Word uploads. Each body paragraph is one line of a
// single page; tables and images are skipped.
type DOCXReader struct{}

func (p *DOCXReader) Read(r io.Reader, filename string) (*doctree.Document, error) {
	// go-docx needs a ReaderAt and the size.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "read docx")
	}
	parsed, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, eris.Wrap(err, "parse docx")
	}

	var lines []string
	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		lines = append(lines, docxParagraphText(para))
	}

	doc := &doctree.Document{Title: baseTitle(filename)}
	if text := strings.Join(lines, "\n"); strings.TrimSpace(text) != "" {
		doc.Pages = []*doctree.Page{{Number: 1, Text: text}}
	}
	return doc, nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
