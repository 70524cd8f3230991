package sow

import (
	"io"
	"regexp"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/rotisserie/eris"
)

// headingLine matches the numbered section headings and the schedule title.
var headingLine = regexp.MustCompile(`^(\d+\. |Schedule A:)`)

// WriteDOCX writes the rendered SOW text as a Word document, one paragraph
// per line. Headings are bold and the phase table keeps its text layout.
func WriteDOCX(w io.Writer, text string) error {
	doc := docx.New().WithDefaultTheme()
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		para := doc.AddParagraph()
		if line == "" {
			continue
		}
		run := para.AddText(line)
		if headingLine.MatchString(line) {
			run.Bold()
		}
	}
	if _, err := doc.WriteTo(w); err != nil {
		return eris.Wrap(err, "write docx")
	}
	return nil
}
