package llm

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
)

// Settings selects and tunes a provider.
type Settings struct {
	Provider    string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// New returns the Completer for s.Provider.
func New(ctx context.Context, s Settings) (Completer, error) {
	switch strings.ToLower(s.Provider) {
	case ProviderAnthropic, "":
		return NewAnthropicClient(s.APIKey, s.Model, int64(s.MaxTokens), s.Temperature), nil
	case ProviderGemini:
		c, err := NewGeminiClient(ctx, s.APIKey, s.Model, int32(s.MaxTokens), float32(s.Temperature))
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, eris.Errorf("unknown llm provider %q", s.Provider)
	}
}
