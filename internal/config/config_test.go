package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "LLM_PROVIDER", "LLM_TEMPERATURE", "GUIDE_URL", "PDF_SECTION_TITLES", "RESULT_TTL", "GUIDE_CACHE", "GUIDE_HTTP_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "anthropic", cfg.LLMProvider)
	assert.InDelta(t, 0.2, cfg.LLMTemperature, 1e-9)
	assert.Equal(t, "https://www.oracle.com/database/cloud-migration/", cfg.GuideURL)
	assert.Equal(t, []string{"Introduction", "Scope", "Requirements", "Timeline", "Assumptions"}, cfg.PDFSectionTitles)
	assert.Equal(t, time.Hour, cfg.ResultTTL)
	assert.True(t, cfg.GuideCache)
	assert.Equal(t, 30*time.Second, cfg.GuideHTTPTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("PDF_SECTION_TITLES", " Scope , ,Timeline")
	t.Setenv("RESULT_TTL", "15m")
	t.Setenv("MAX_UPLOAD_BYTES", "-1")
	t.Setenv("GUIDE_CACHE", "false")
	t.Setenv("GUIDE_RATE_LIMIT", "not-a-number")
	t.Setenv("GUIDE_HTTP_TIMEOUT", "0s")

	cfg := Load()
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.InDelta(t, 0.7, cfg.LLMTemperature, 1e-9)
	assert.Equal(t, []string{"Scope", "Timeline"}, cfg.PDFSectionTitles)
	assert.Equal(t, 15*time.Minute, cfg.ResultTTL)
	assert.Equal(t, int64(52428800), cfg.MaxUploadBytes)
	assert.False(t, cfg.GuideCache)
	assert.Zero(t, cfg.GuideRateLimit)
	assert.Zero(t, cfg.GuideHTTPTimeout)
}

func TestValidate(t *testing.T) {
	base := Config{LLMProvider: "anthropic", GuideURL: "https://example.test/"}

	require.Error(t, base.Validate())

	withKey := base
	withKey.AnthropicAPIKey = "k"
	require.NoError(t, withKey.Validate())

	gemini := base
	gemini.LLMProvider = "gemini"
	require.Error(t, gemini.Validate())
	gemini.GeminiAPIKey = "g"
	require.NoError(t, gemini.Validate())

	unknown := withKey
	unknown.LLMProvider = "openai"
	assert.ErrorContains(t, unknown.Validate(), "LLM_PROVIDER")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}
