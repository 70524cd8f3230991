package pipeline

import (
	"context"
	"log/slog"

	"github.com/dgallion1/sowgen/internal/config"
	"github.com/dgallion1/sowgen/internal/excerpt"
	"github.com/dgallion1/sowgen/internal/guide"
	"github.com/dgallion1/sowgen/internal/llm"
	"github.com/dgallion1/sowgen/internal/parser"
)

// NewFromConfig builds a Generator from configuration. Model calls are
// recorded in stats; a nil stats disables recording.
func NewFromConfig(ctx context.Context, cfg config.Config, stats *llm.Stats, log *slog.Logger) (*Generator, error) {
	completer, err := llm.New(ctx, LLMSettings(cfg))
	if err != nil {
		return nil, err
	}

	fetcher := guide.NewFetcher(
		guide.WithTimeout(cfg.GuideHTTPTimeout),
		guide.WithOrigin(cfg.GuideOrigin),
		guide.WithSubpath(cfg.GuideSubpath),
		guide.WithContentRegion(cfg.GuideSelector),
		guide.WithRateLimit(cfg.GuideRateLimit),
		guide.WithCache(cfg.GuideCache),
		guide.WithLogger(log.With("component", "guide")),
	)
	extractor := excerpt.New(
		excerpt.WithReaderOptions(parser.Options{FallbackPdftotext: cfg.PDFFallbackPdftotext}),
		excerpt.WithLogger(log.With("component", "excerpt")),
	)

	g := NewGenerator(fetcher, extractor, llm.WithStats(completer, stats), NewResultStore(cfg.ResultTTL), log.With("component", "pipeline"))
	g.SeedURL = cfg.GuideURL
	g.Titles = cfg.PDFSectionTitles
	return g, nil
}

// LLMSettings picks the key and model of the configured provider.
func LLMSettings(cfg config.Config) llm.Settings {
	s := llm.Settings{
		Provider:    cfg.LLMProvider,
		APIKey:      cfg.AnthropicAPIKey,
		Model:       cfg.AnthropicModel,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
	}
	if cfg.LLMProvider == llm.ProviderGemini {
		s.APIKey = cfg.GeminiAPIKey
		s.Model = cfg.GeminiModel
	}
	return s
}
