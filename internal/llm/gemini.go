package llm

import (
	"context"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"
)

// GeminiClient completes prompts with Google Gemini.
type GeminiClient struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
}

// NewGeminiClient connects to the Gemini API. Extra HTTP options (base URL,
// headers) are passed through to the SDK.
func NewGeminiClient(ctx context.Context, apiKey, model string, maxTokens int32, temperature float32, httpOpts ...genai.HTTPOptions) (*GeminiClient, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if len(httpOpts) > 0 {
		cfg.HTTPOptions = httpOpts[0]
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "gemini: connect")
	}
	return &GeminiClient{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

func (c *GeminiClient) Model() string {
	return c.model
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	temp := c.temperature
	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			Temperature:     &temp,
			MaxOutputTokens: c.maxTokens,
		},
	)
	if err != nil {
		return "", eris.Wrap(err, "gemini: generate content")
	}
	if result == nil {
		return "", eris.New("gemini: nil result")
	}
	text := result.Text()
	if text == "" {
		return "", eris.New("gemini: empty response")
	}
	return text, nil
}
