package excerpt

import (
	"regexp"

	"github.com/dgallion1/sowgen/internal/textnorm"
)

// BoundaryFinder locates the body of a titled section in extracted text.
type BoundaryFinder interface {
	// Find returns the section body for title and whether the title was found.
	Find(text, title string) (string, bool)
}

// nextHeading ends a section at the first line that opens with a capitalized
// word and a colon, or at end of text.
const nextHeading = `(?:\n[A-Z][a-z]+:|\z)`

// HeadingBoundary matches the title case-insensitively, skips whitespace and
// captures up to the next "Word:" line. Only the first occurrence counts.
//
// The heuristic cuts a section short when its body has a line such as
// "Note: ..." and finds nothing in documents with other heading styles.
// Callers rely on exactly that output, so keep it as is and add a new
// BoundaryFinder for smarter parsing.
type HeadingBoundary struct{}

func (HeadingBoundary) Find(text, title string) (string, bool) {
	re, err := regexp.Compile(`(?s)(?i:` + regexp.QuoteMeta(title) + `)\s*(.*?)` + nextHeading)
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return textnorm.Normalize(m[1]), true
}
