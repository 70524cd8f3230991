// Package pipeline runs one guide and SOW generation end to end and keeps the
// results around for download.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/sowgen/internal/excerpt"
	"github.com/dgallion1/sowgen/internal/form"
	"github.com/dgallion1/sowgen/internal/guide"
	"github.com/dgallion1/sowgen/internal/llm"
	"github.com/dgallion1/sowgen/internal/parser"
	"github.com/dgallion1/sowgen/internal/sow"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// GuideSource fetches the vendor guide text for a seed URL.
type GuideSource interface {
	Fetch(ctx context.Context, seedURL string) (string, error)
}

// ExcerptSource pulls the named sections and tables out of a document.
type ExcerptSource interface {
	Extract(ctx context.Context, filename string, data []byte, titles []string) (string, error)
}

// Request is one submission. Document is optional; empty SeedURL and Titles
// fall back to the generator's defaults.
type Request struct {
	Form         form.Form
	IncludeGuide bool
	SeedURL      string
	Filename     string
	Document     []byte
	Titles       []string
}

// Generator wires the fetcher, the extractor, the model and the SOW renderer.
type Generator struct {
	guides    GuideSource
	excerpts  ExcerptSource
	completer llm.Completer
	results   *ResultStore
	log       *slog.Logger

	SeedURL string
	Titles  []string
}

func NewGenerator(guides GuideSource, excerpts ExcerptSource, completer llm.Completer, results *ResultStore, log *slog.Logger) *Generator {
	return &Generator{
		guides:    guides,
		excerpts:  excerpts,
		completer: completer,
		results:   results,
		log:       log,
		SeedURL:   guide.DefaultSeedURL,
		Titles:    excerpt.DefaultSectionTitles,
	}
}

// Results exposes the store backing downloads.
func (g *Generator) Results() *ResultStore {
	return g.results
}

// Generate produces the guide and the SOW. Guide fetch, document extraction
// and model failures never fail the request: they become notices or degraded
// text, and both artifacts are always produced.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		ID:        uuid.NewString(),
		Form:      req.Form,
		Filename:  req.Filename,
		Notices:   []string{},
		Model:     g.completer.Model(),
		CreatedAt: time.Now(),
	}
	log := g.log.With("result_id", res.ID)

	var guideText string
	if req.IncludeGuide {
		seed := req.SeedURL
		if seed == "" {
			seed = g.SeedURL
		}
		text, err := g.guides.Fetch(ctx, seed)
		if err != nil {
			log.Warn("guide fetch failed", "seed", seed, "error", err)
			res.Notices = append(res.Notices, fmt.Sprintf("Could not fetch guide content: %s", err))
		} else {
			guideText = text
		}
	}
	res.GuideContext = len(guideText)

	if len(req.Document) > 0 {
		titles := req.Titles
		if len(titles) == 0 {
			titles = g.Titles
		}
		text, err := g.excerpts.Extract(ctx, req.Filename, req.Document, titles)
		if err != nil {
			log.Warn("document extraction failed", "filename", req.Filename, "error", err)
			res.Notices = append(res.Notices, fmt.Sprintf("Could not extract document sections: %s", err))
		} else {
			res.Excerpt = text
		}
		if parser.Extension(req.Filename) == ".pdf" {
			if n, err := parser.PageCount(req.Document); err == nil {
				res.PageCount = n
			} else {
				log.Debug("page count unavailable", "error", err)
			}
		}
	}

	prompt := llm.BuildGuidePrompt(req.Form, guideText, res.Excerpt)
	log.Info("calling model", "model", res.Model, "prompt_tokens", llm.EstimateTokens(prompt))
	res.Guide = llm.GenerateGuide(ctx, g.completer, prompt)

	text, err := sow.Render(sow.ScopeFromForm(req.Form, res.Excerpt))
	if err != nil {
		return nil, eris.Wrap(err, "render sow")
	}
	res.SOW = text

	g.results.Put(res)
	log.Info("generation complete",
		"guide_context_chars", res.GuideContext,
		"excerpt_chars", len(res.Excerpt),
		"notices", len(res.Notices),
	)
	return res, nil
}
