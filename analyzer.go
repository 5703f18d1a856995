package bookmarkai

import "context"

// Analysis is the AI-derived metadata for a page. Every field is always
// populated; sub-failures resolve to defaults rather than errors.
type Analysis struct {
	Summary  string
	Tags     []string
	Category Category

	// Degraded is set when at least one provider call failed and its field
	// holds a default.
	Degraded bool
}

// Analyzer produces a summary, tags and a category for page content.
type Analyzer interface {
	// Analyze returns EUNAUTHORIZED when credential is empty. Provider
	// failures do not produce errors; they produce default values and mark
	// the analysis Degraded.
	Analyze(ctx context.Context, url, content, credential string) (*Analysis, error)
}

// Prompt is a single chat-style completion request.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Provider sends prompts to a large language model on behalf of a user.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Complete returns the model's text reply to prompt. credential is the
	// user's API key for the provider; an empty credential returns EUNAUTHORIZED.
	Complete(ctx context.Context, credential string, prompt Prompt) (string, error)
}
