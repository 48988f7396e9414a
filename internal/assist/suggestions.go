package assist

import (
	"context"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/api"
)

// defaultSuggestions are shown when the suggestions endpoint fails.
var defaultSuggestions = []string{
	"What are the key obligations in this contract?",
	"What are the termination conditions?",
	"Are there any penalty clauses or liquidated damages?",
	"What are the payment terms and schedules?",
	"What confidentiality requirements are specified?",
}

// SuggestedQuestions returns the backend's suggested questions for a
// document, falling back to the built-in defaults on any failure. The
// second return value reports whether the fallback was used.
func SuggestedQuestions(ctx context.Context, client *api.Client, documentID string) ([]string, bool) {
	resp, err := client.Suggestions(ctx, documentID)
	if err != nil || len(resp.SuggestedQuestions) == 0 {
		out := make([]string, len(defaultSuggestions))
		copy(out, defaultSuggestions)
		return out, true
	}
	return resp.SuggestedQuestions, false
}
