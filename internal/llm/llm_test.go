package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/sowgen/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	out    string
	err    error
	prompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.out, s.err
}

func (s *stubCompleter) Model() string { return "stub-model" }

func TestGenerateGuide(t *testing.T) {
	ok := &stubCompleter{out: "# Guide"}
	assert.Equal(t, "# Guide", GenerateGuide(context.Background(), ok, "p"))
	assert.Equal(t, "p", ok.prompt)

	failing := &stubCompleter{err: errors.New("quota exceeded")}
	got := GenerateGuide(context.Background(), failing, "p")
	assert.Equal(t, "Error generating migration guide: quota exceeded", got)
}

func TestInstrumented_RecordsCalls(t *testing.T) {
	stats := NewStats(time.Hour)
	c := WithStats(&stubCompleter{out: "x"}, stats)
	_, err := c.Complete(context.Background(), "p")
	require.NoError(t, err)

	failing := WithStats(&stubCompleter{err: errors.New("down")}, stats)
	_, err = failing.Complete(context.Background(), "p")
	require.Error(t, err)

	snap := stats.Snapshot()
	assert.Equal(t, 2, snap.Count)
	assert.Equal(t, 1, snap.Errors)
	assert.Equal(t, "stub-model", c.Model())
}

func TestBuildGuidePrompt(t *testing.T) {
	f := form.Defaults()
	f.IncludeNonProd = false

	t.Run("includes guide and every input", func(t *testing.T) {
		p := BuildGuidePrompt(f, "GUIDE BODY", "")
		assert.Contains(t, p, "migration planning guide:\nGUIDE BODY\n")
		for _, want := range []string{
			"1. Planning", "2. Execution", "3. Post-Migration Validation",
			"- DB size: 2TB", "- Downtime: 5 hours", "- Upgrade required: Yes",
			"- Current version: 12.2", "- Target version: 19c",
			"- Target platform: Exadata Cloud Service", "- Include non-prod: No",
		} {
			assert.Contains(t, p, want)
		}
		assert.NotContains(t, p, "excerpts from their own planning document")
		assert.True(t, strings.HasSuffix(p, "Provide a thorough, professional guide."))
	})

	t.Run("excerpt block only when present", func(t *testing.T) {
		p := BuildGuidePrompt(f, "", "Scope:\nProd only.")
		assert.Contains(t, p, "excerpts from their own planning document")
		assert.Contains(t, p, "Scope:\nProd only.")
		assert.Less(t, strings.Index(p, "Scope:\nProd only."), strings.Index(p, "Use the following inputs:"))
	})
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 0, EstimateTokens("   "))
	assert.Equal(t, 1, EstimateTokens("word"))
	assert.Equal(t, 4, EstimateTokens("one two three"))
}

func TestNew_Providers(t *testing.T) {
	c, err := New(context.Background(), Settings{Provider: "Anthropic", APIKey: "k", Model: "m", MaxTokens: 10, Temperature: DefaultTemperature})
	require.NoError(t, err)
	assert.IsType(t, &AnthropicClient{}, c)
	assert.Equal(t, "m", c.Model())

	_, err = New(context.Background(), Settings{Provider: "openai"})
	assert.ErrorContains(t, err, "unknown llm provider")
}
