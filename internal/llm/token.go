package llm

import "strings"

// EstimateTokens approximates the token count of text from its word count,
// at roughly four tokens per three words. It only feeds prompt-size logging.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return max(1, words*4/3)
}
