package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func jsonServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiClient_Complete(t *testing.T) {
	newClient := func(t *testing.T, body string) *GeminiClient {
		t.Helper()
		srv := jsonServer(t, body)
		c, err := NewGeminiClient(context.Background(), "k", "gemini-test", 64, 0.2, genai.HTTPOptions{BaseURL: srv.URL + "/"})
		require.NoError(t, err)
		return c
	}

	t.Run("text is returned", func(t *testing.T) {
		c := newClient(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Phase 1"}]}}]}`)
		out, err := c.Complete(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "Phase 1", out)
	})

	t.Run("empty text is an error", func(t *testing.T) {
		c := newClient(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":""}]}}]}`)
		out, err := c.Complete(context.Background(), "prompt")
		require.ErrorContains(t, err, "gemini: empty response")
		assert.Empty(t, out)
	})

	t.Run("no candidates is an error", func(t *testing.T) {
		c := newClient(t, `{"candidates":[]}`)
		_, err := c.Complete(context.Background(), "prompt")
		require.ErrorContains(t, err, "gemini: empty response")
	})
}

func TestAnthropicClient_EmptyResponse(t *testing.T) {
	srv := jsonServer(t, `{"id":"msg_1","type":"message","role":"assistant","model":"m","content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`)
	c := NewAnthropicClient("k", "m", 64, 0.2, option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	_, err := c.Complete(context.Background(), "prompt")
	require.ErrorContains(t, err, "anthropic: empty response")
}
