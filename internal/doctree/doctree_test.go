package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_FullText(t *testing.T) {
	doc := &Document{Pages: []*Page{
		{Number: 1, Text: "first page"},
		{Number: 2, Text: ""},
		{Number: 3, Text: "third page"},
	}}
	assert.Equal(t, "first page\n\nthird page", doc.FullText())
}

func TestDocument_FullTextEmpty(t *testing.T) {
	var doc *Document
	assert.Empty(t, doc.FullText())
	assert.Empty(t, (&Document{}).FullText())
}
