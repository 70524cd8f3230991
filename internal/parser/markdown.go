package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/sowgen/internal/doctree"
	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownReader handles Markdown uploads. Headings become bare title lines
// so section lookup sees "Scope" rather than "## Scope"; everything else
// keeps its source text. The result is a single page.
type MarkdownReader struct{}

func (p *MarkdownReader) Read(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "read markdown")
	}

	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var lines []string
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			lines = append(lines, strings.TrimSpace(string(blockLines(h, src))))
			continue
		}
		if t := strings.TrimSpace(blockText(n, src)); t != "" {
			lines = append(lines, t)
		}
	}

	doc := &doctree.Document{Title: baseTitle(filename)}
	if len(lines) > 0 {
		doc.Pages = []*doctree.Page{{Number: 1, Text: strings.Join(lines, "\n")}}
	}
	return doc, nil
}

// blockText collects the source lines of n and every block below it.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		buf.Write(blockLines(c, src))
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func blockLines(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return buf.Bytes()
}
