// Package excerpt pulls named sections and tables out of an uploaded
// document and combines them into one block of prompt-ready text.
package excerpt

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/sowgen/internal/doctree"
	"github.com/dgallion1/sowgen/internal/memo"
	"github.com/dgallion1/sowgen/internal/parser"
	"github.com/rotisserie/eris"
)

// TableSeparator is the line between section text and table text.
const TableSeparator = "--- Extracted Tables ---"

// DefaultSectionTitles are looked up when the caller names none.
var DefaultSectionTitles = []string{
	"Introduction",
	"Scope",
	"Requirements",
	"Timeline",
	"Assumptions",
}

// Extractor turns document bytes into a combined excerpt. Safe for
// concurrent use.
type Extractor struct {
	finder   BoundaryFinder
	detector TableDetector
	readers  parser.Options
	cache    *memo.Cache[string]
	log      *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithBoundaryFinder replaces the section boundary strategy.
func WithBoundaryFinder(f BoundaryFinder) Option {
	return func(e *Extractor) {
		e.finder = f
	}
}

// WithTableDetector replaces the table detection strategy.
func WithTableDetector(d TableDetector) Option {
	return func(e *Extractor) {
		e.detector = d
	}
}

// WithReaderOptions tunes the document readers.
func WithReaderOptions(o parser.Options) Option {
	return func(e *Extractor) {
		e.readers = o
	}
}

// WithCache turns memoization on or off. On by default.
func WithCache(enabled bool) Option {
	return func(e *Extractor) {
		if enabled {
			e.cache = memo.New[string]()
		} else {
			e.cache = nil
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Extractor) {
		e.log = log
	}
}

// New creates an Extractor using HeadingBoundary and RowTableDetector.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		finder:   HeadingBoundary{},
		detector: RowTableDetector{},
		cache:    memo.New[string](),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads the document, finds each title's section and every table, and
// returns the combined excerpt. Results are memoized by content and titles.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte, titles []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := cacheKey(filename, data, titles)
	return e.cache.Do(key, func() (string, error) {
		return e.extract(filename, data, titles)
	})
}

// ExtractText is Extract with failures rendered as a readable message.
func (e *Extractor) ExtractText(ctx context.Context, filename string, data []byte, titles []string) string {
	out, err := e.Extract(ctx, filename, data, titles)
	if err != nil {
		return fmt.Sprintf("Could not extract document sections: %s", err)
	}
	return out
}

func (e *Extractor) extract(filename string, data []byte, titles []string) (string, error) {
	r, err := parser.ForFile(filename, e.readers)
	if err != nil {
		return "", err
	}
	doc, err := r.Read(bytes.NewReader(data), filename)
	if err != nil {
		return "", eris.Wrapf(err, "read %s", filename)
	}

	sections := e.Sections(doc.FullText(), titles)
	tables := e.Tables(doc)
	e.log.Info("document extracted",
		"filename", filename,
		"pages", len(doc.Pages),
		"sections_found", len(sections),
		"sections_requested", len(titles),
		"tables", len(tables),
	)
	return Combine(titles, sections, tables), nil
}

// Sections maps each title found in text to its section body. Titles that are
// not found have no entry.
func (e *Extractor) Sections(text string, titles []string) map[string]string {
	out := make(map[string]string, len(titles))
	for _, title := range titles {
		if body, ok := e.finder.Find(text, title); ok {
			out[title] = body
		}
	}
	return out
}

// Tables renders every detected table in page-then-discovery order.
func (e *Extractor) Tables(doc *doctree.Document) []string {
	detected := e.detector.Detect(doc)
	out := make([]string, 0, len(detected))
	for _, t := range detected {
		out = append(out, RenderTable(t.Rows))
	}
	return out
}

// Combine writes "title:\nbody" for each present title in caller order, then
// the table separator and the tables. Nothing is written for absent titles;
// the separator appears only when there are tables.
func Combine(titles []string, sections map[string]string, tables []string) string {
	var blocks []string
	for _, title := range titles {
		body, ok := sections[title]
		if !ok {
			continue
		}
		blocks = append(blocks, title+":\n"+body)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(blocks, "\n\n"))
	if len(tables) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(TableSeparator)
		sb.WriteString("\n")
		sb.WriteString(strings.Join(tables, "\n\n"))
	}
	return sb.String()
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

func cacheKey(filename string, data []byte, titles []string) string {
	return strings.Join(append([]string{parser.Extension(filename), ContentHashHex(data)}, titles...), "\x00")
}
