// Package openai implements bookmarkai.Provider using the OpenAI chat
// completions API.
package openai

import (
	"context"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is the OpenAI model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// Ensure Provider implements bookmarkai.Provider at compile time.
var _ bookmarkai.Provider = (*Provider)(nil)

// Provider implements bookmarkai.Provider using OpenAI.
type Provider struct {
	model   string
	baseURL string
}

// Option configures a Provider.
type Option func(*Provider)

// WithModel sets the OpenAI model.
func WithModel(model string) Option {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// WithBaseURL points the provider at an OpenAI-compatible endpoint.
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

// Name returns "openai".
func (p *Provider) Name() string {
	return "openai"
}

// Complete sends prompt to OpenAI using credential as the API key.
// The request is attempted once.
func (p *Provider) Complete(ctx context.Context, credential string, prompt bookmarkai.Prompt) (string, error) {
	if credential == "" {
		return "", bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "openai API key required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(credential),
		option.WithMaxRetries(0),
	}
	if p.baseURL != "" {
		opts = append(opts, option.WithBaseURL(p.baseURL))
	}
	client := openai.NewClient(opts...)

	completion, err := client.Chat.Completions.New(ctx, BuildParams(p.model, prompt))
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", bookmarkai.Errorf(bookmarkai.EINTERNAL, "no response from openai")
	}
	return completion.Choices[0].Message.Content, nil
}

// BuildParams returns the chat completion parameters for a prompt.
func BuildParams(model string, prompt bookmarkai.Prompt) openai.ChatCompletionNewParams {
	var messages []openai.ChatCompletionMessageParamUnion
	if prompt.System != "" {
		messages = append(messages, openai.SystemMessage(prompt.System))
	}
	messages = append(messages, openai.UserMessage(prompt.User))

	params := openai.ChatCompletionNewParams{
		Messages:    openai.F(messages),
		Model:       openai.F(model),
		Temperature: openai.F(prompt.Temperature),
	}
	if prompt.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(prompt.MaxTokens))
	}
	return params
}
