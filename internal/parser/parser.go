package parser

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/sowgen/internal/doctree"
	"github.com/rotisserie/eris"
)

// Reader converts raw upload bytes into a page-ordered Document.
type Reader interface {
	Read(r io.Reader, filename string) (*doctree.Document, error)
}

// SupportedExtensions lists upload extensions the extractor can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".docx":     true,
}

// ForFile returns the appropriate reader for a filename.
func ForFile(filename string, opts Options) (Reader, error) {
	ext := Extension(filename)
	switch ext {
	case ".pdf":
		return &PDFReader{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".txt":
		return &TextReader{}, nil
	case ".md", ".markdown":
		return &MarkdownReader{}, nil
	case ".docx":
		return &DOCXReader{}, nil
	default:
		return nil, eris.Errorf("unsupported file extension: %q", ext)
	}
}

// Options tunes the readers returned by ForFile.
type Options struct {
	FallbackPdftotext bool
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[Extension(filename)]
}

func baseTitle(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// Extension returns the lower-cased extension of filename.
func Extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
