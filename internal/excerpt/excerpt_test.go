package excerpt_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dgallion1/sowgen/internal/doctree"
	"github.com/dgallion1/sowgen/internal/excerpt"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brief = "Introduction\nTwo databases move to Exadata.\nScope:\nProd only.\nTimeline\nQ3."

func TestCombine(t *testing.T) {
	t.Parallel()

	t.Run("present titles in caller order before tables", func(t *testing.T) {
		t.Parallel()

		sections := map[string]string{"Introduction": "intro text", "Scope": "scope text"}
		got := excerpt.Combine(
			[]string{"Scope", "Budget", "Introduction"},
			sections,
			[]string{"A | B\n1 | 2", "C | D"},
		)
		want := "Scope:\nscope text\n\nIntroduction:\nintro text\n\n" +
			excerpt.TableSeparator + "\nA | B\n1 | 2\n\nC | D"
		assert.Equal(t, want, got)
	})

	t.Run("absent titles leave no trace", func(t *testing.T) {
		t.Parallel()

		got := excerpt.Combine([]string{"Budget"}, map[string]string{}, nil)
		assert.Empty(t, got)
	})

	t.Run("empty section body is still present", func(t *testing.T) {
		t.Parallel()

		got := excerpt.Combine([]string{"Scope"}, map[string]string{"Scope": ""}, nil)
		assert.Equal(t, "Scope:\n", got)
	})

	t.Run("tables only", func(t *testing.T) {
		t.Parallel()

		got := excerpt.Combine(nil, nil, []string{"A | B"})
		assert.Equal(t, excerpt.TableSeparator+"\nA | B", got)
	})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("text upload", func(t *testing.T) {
		t.Parallel()

		e := excerpt.New()
		got, err := e.Extract(context.Background(), "brief.txt", []byte(brief), []string{"Introduction", "Budget", "Timeline"})
		require.NoError(t, err)
		assert.Equal(t, "Introduction:\nTwo databases move to Exadata.\n\nTimeline:\nQ3.", got)
	})

	t.Run("unsupported upload is an error", func(t *testing.T) {
		t.Parallel()

		_, err := excerpt.New().Extract(context.Background(), "brief.pptx", []byte("x"), excerpt.DefaultSectionTitles)
		require.Error(t, err)
	})

	t.Run("unreadable pdf is an error", func(t *testing.T) {
		t.Parallel()

		_, err := excerpt.New().Extract(context.Background(), "brief.pdf", []byte("%PDF-garbage"), excerpt.DefaultSectionTitles)
		require.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := excerpt.New().Extract(ctx, "brief.txt", []byte(brief), nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}

// planPDF lays out prose on page 1 and a two-column table on page 2 the
// way gofpdf places text, one positioned string per cell.
func planPDF(t *testing.T) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetFont("Helvetica", "", 11)

	pdf.AddPage()
	for i, line := range []string{"Introduction", "Moving the estate.", "Timeline", "Cutover in Q3."} {
		pdf.Text(20, 20+float64(i)*8, line)
	}

	pdf.AddPage()
	for i, row := range [][]string{{"Phase", "Hours"}, {"Assessment", "30"}} {
		for j, cell := range row {
			pdf.Text(20+float64(j)*60, 20+float64(i)*8, cell)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestExtractor_PDFTables(t *testing.T) {
	t.Parallel()

	got, err := excerpt.New().Extract(context.Background(), "plan.pdf", planPDF(t), []string{"Introduction", "Scope", "Timeline"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "Introduction:\n"), got)
	assert.Contains(t, got, "Moving the estate.")
	assert.NotContains(t, got, "Scope:")
	assert.True(t, strings.HasSuffix(got, "\n\n"+excerpt.TableSeparator+"\nPhase | Hours\nAssessment | 30"), got)
}

type countingFinder struct {
	calls int
}

func (c *countingFinder) Find(text, title string) (string, bool) {
	c.calls++
	return strings.ToUpper(title), true
}

func TestExtractor_PluggableBoundaryAndCache(t *testing.T) {
	t.Parallel()

	finder := &countingFinder{}
	e := excerpt.New(excerpt.WithBoundaryFinder(finder))

	for range 3 {
		got, err := e.Extract(context.Background(), "brief.txt", []byte(brief), []string{"Scope"})
		require.NoError(t, err)
		assert.Equal(t, "Scope:\nSCOPE", got)
	}
	assert.Equal(t, 1, finder.calls)

	_, err := e.Extract(context.Background(), "brief.txt", []byte(brief), []string{"Scope", "Timeline"})
	require.NoError(t, err)
	assert.Equal(t, 3, finder.calls)

	uncached := excerpt.New(excerpt.WithBoundaryFinder(finder), excerpt.WithCache(false))
	for range 2 {
		_, err := uncached.Extract(context.Background(), "brief.txt", []byte(brief), []string{"Scope"})
		require.NoError(t, err)
	}
	assert.Equal(t, 5, finder.calls)
}

type fixedDetector struct{}

func (fixedDetector) Detect(*doctree.Document) []doctree.Table {
	return []doctree.Table{{Page: 1, Rows: [][]string{{"A", "B"}, {"1", ""}}}}
}

func TestExtractor_TablesFollowSections(t *testing.T) {
	t.Parallel()

	e := excerpt.New(excerpt.WithTableDetector(fixedDetector{}))
	got, err := e.Extract(context.Background(), "brief.txt", []byte(brief), []string{"Timeline"})
	require.NoError(t, err)
	assert.Equal(t, "Timeline:\nQ3.\n\n"+excerpt.TableSeparator+"\nA | B\n1 | ", got)
}

func TestExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	msg := excerpt.New().ExtractText(context.Background(), "brief.pptx", []byte("x"), nil)
	assert.True(t, strings.HasPrefix(msg, "Could not extract document sections: "))

	ok := excerpt.New().ExtractText(context.Background(), "brief.txt", []byte(brief), []string{"Timeline"})
	assert.Equal(t, "Timeline:\nQ3.", ok)
}

func TestContentHashHex(t *testing.T) {
	t.Parallel()

	// SHA-256 of "hello world" is well-known.
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", excerpt.ContentHashHex([]byte("hello world")))
	assert.NotEqual(t, excerpt.ContentHashHex([]byte("aaa")), excerpt.ContentHashHex([]byte("bbb")))
}
