// Package gemini implements bookmarkai.Provider using Google Gemini.
package gemini

import (
	"context"
	"strings"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// MinThinkingBudget is the smallest thinking budget accepted by models that
// cannot turn thinking off.
const MinThinkingBudget = 128

// Ensure Provider implements bookmarkai.Provider at compile time.
var _ bookmarkai.Provider = (*Provider)(nil)

// Provider implements bookmarkai.Provider using Google Gemini. A client is
// created per call because each user supplies their own API key.
type Provider struct {
	model   string
	baseURL string
}

// Option configures a Provider.
type Option func(*Provider)

// WithModel sets the Gemini model.
func WithModel(model string) Option {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// WithBaseURL overrides the Gemini API endpoint.
func WithBaseURL(url string) Option {
	return func(p *Provider) {
		p.baseURL = url
	}
}

// NewProvider creates a new Provider.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{model: DefaultModel}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns "gemini".
func (p *Provider) Name() string {
	return "gemini"
}

// Complete sends prompt to Gemini using credential as the API key.
func (p *Provider) Complete(ctx context.Context, credential string, prompt bookmarkai.Prompt) (string, error) {
	if credential == "" {
		return "", bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "gemini API key required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      credential,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: p.baseURL},
	})
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, p.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt.User}},
		}},
		BuildConfig(p.model, prompt),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", bookmarkai.Errorf(bookmarkai.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for a prompt sent to model.
// Thinking is switched off on flash models so it does not consume the small
// output budgets used for tags and categories. Pro models cannot switch it
// off, so they get the minimum budget on top of the prompt's MaxTokens.
// Other models get no thinking settings.
func BuildConfig(model string, prompt bookmarkai.Prompt) *genai.GenerateContentConfig {
	temp := float32(prompt.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(prompt.MaxTokens),
	}

	switch {
	case strings.HasPrefix(model, "gemini-2.5-flash"):
		budget := int32(0)
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
	case strings.Contains(model, "-pro"):
		budget := int32(MinThinkingBudget)
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
		config.MaxOutputTokens += budget
	}

	if prompt.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: prompt.System}},
		}
	}
	return config
}
