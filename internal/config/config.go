package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth for /api. Empty disables it.
	APIKey string

	// Model
	LLMProvider     string
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
	LLMTemperature  float64
	LLMMaxTokens    int

	// Guide fetching
	GuideURL         string
	GuideOrigin      string
	GuideSubpath     string
	GuideSelector    string
	GuideCache       bool
	GuideHTTPTimeout time.Duration
	GuideRateLimit   float64

	// Document excerpts
	PDFSectionTitles     []string
	PDFFallbackPdftotext bool

	// Upload limits
	MaxUploadBytes int64

	// Result state
	ResultTTL time.Duration

	// Logging
	LogLevel string
	LogFile  string
}

// Load reads configuration from the environment. A .env file in the working
// directory, when present, is applied first without overriding variables
// that are already set.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("SOWGEN_API_KEY"),

		LLMProvider:     strings.ToLower(envOr("LLM_PROVIDER", "anthropic")),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMTemperature:  envFloat("LLM_TEMPERATURE", 0.2),
		LLMMaxTokens:    envInt("LLM_MAX_TOKENS", 4096),

		GuideURL:         envOr("GUIDE_URL", "https://www.oracle.com/database/cloud-migration/"),
		GuideOrigin:      envOr("GUIDE_ORIGIN", "https://www.oracle.com"),
		GuideSubpath:     envOr("GUIDE_SUBPATH", "oracle.com/database/cloud-migration/"),
		GuideSelector:    envOr("GUIDE_SELECTOR", "article"),
		GuideCache:       envBool("GUIDE_CACHE", true),
		GuideHTTPTimeout: envDuration("GUIDE_HTTP_TIMEOUT", 30*time.Second),
		GuideRateLimit:   envFloat("GUIDE_RATE_LIMIT", 0),

		PDFSectionTitles:     envList("PDF_SECTION_TITLES", []string{"Introduction", "Scope", "Requirements", "Timeline", "Assumptions"}),
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		ResultTTL: envDuration("RESULT_TTL", 1*time.Hour),

		LogLevel: envOr("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
	}

	if cfg.LLMMaxTokens <= 0 {
		cfg.LLMMaxTokens = 4096
	}
	if cfg.LLMTemperature < 0 {
		cfg.LLMTemperature = 0.2
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 1 * time.Hour
	}
	if cfg.GuideHTTPTimeout < 0 {
		cfg.GuideHTTPTimeout = 30 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.LLMProvider {
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required")
		}
	default:
		return fmt.Errorf("LLM_PROVIDER must be anthropic or gemini, got %q", c.LLMProvider)
	}
	if c.GuideURL == "" {
		return errors.New("GUIDE_URL must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated value, dropping blank entries.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
