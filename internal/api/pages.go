package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templateFS embed.FS

type pages struct {
	index  *template.Template
	result *template.Template
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newPages() *pages {
	return &pages{
		index:  parsePage("index.html"),
		result: parsePage("result.html"),
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// parsePage parses one page together with the shared layout blocks.
func parsePage(name string) *template.Template {
	return template.Must(template.New(name).ParseFS(templateFS, "templates/"+name, "templates/layout.html"))
}

// markdownHTML renders model output as sanitized HTML. Raw HTML in the
// source is escaped by goldmark and anything left is filtered by the policy.
func (p *pages) markdownHTML(src string) template.HTML {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(p.policy.SanitizeBytes(buf.Bytes()))
}

func (p *pages) render(w http.ResponseWriter, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, t.Name(), data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}
