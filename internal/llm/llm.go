// Package llm sends the assembled guide prompt to a language model.
package llm

import (
	"context"
	"fmt"
	"time"
)

// Providers selectable by configuration.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// DefaultTemperature keeps the guide close to the reference material.
const DefaultTemperature = 0.2

// Completer sends one prompt and returns one free-text completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Instrumented records the latency and outcome of every call into Stats.
type Instrumented struct {
	Completer
	Stats *Stats
}

// WithStats wraps c so each call is recorded in s.
func WithStats(c Completer, s *Stats) *Instrumented {
	return &Instrumented{Completer: c, Stats: s}
}

func (i *Instrumented) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := i.Completer.Complete(ctx, prompt)
	i.Stats.Record(time.Since(start), err)
	return out, err
}

// GenerateGuide asks c for the migration guide. A failed call yields a
// readable message in place of the guide.
func GenerateGuide(ctx context.Context, c Completer, prompt string) string {
	out, err := c.Complete(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("Error generating migration guide: %s", err)
	}
	return out
}
