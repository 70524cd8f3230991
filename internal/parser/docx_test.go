package parser

import (
	"bytes"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	w := docx.New().WithDefaultTheme()
	for _, p := range paragraphs {
		w.AddParagraph().AddText(p)
	}
	var buf bytes.Buffer
	_, err := w.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDOCXReader_Read(t *testing.T) {
	data := buildDOCX(t, "Scope", "Production only.", "Timeline:", "Q3.")

	doc, err := (&DOCXReader{}).Read(bytes.NewReader(data), "plan.docx")
	require.NoError(t, err)
	assert.Equal(t, "plan", doc.Title)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "Scope\nProduction only.\nTimeline:\nQ3.", doc.FullText())
}

func TestDOCXReader_RejectsGarbage(t *testing.T) {
	_, err := (&DOCXReader{}).Read(bytes.NewReader([]byte("not a zip")), "bad.docx")
	assert.Error(t, err)
}
