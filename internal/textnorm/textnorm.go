// Package textnorm cleans text fragments pulled out of web pages and documents.
package textnorm

import "strings"

// Normalize strips leading and trailing whitespace from a fragment.
// Inner whitespace is left untouched.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// Cells normalizes each cell of a table row. A nil row yields an empty,
// non-nil slice so callers can render it directly.
func Cells(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = Normalize(c)
	}
	return out
}
