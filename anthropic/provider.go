// Package anthropic implements bookmarkai.Provider using Anthropic Claude
// through llmkit.
package anthropic

import (
	"context"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// DefaultModel is the Claude model used when none is configured.
const DefaultModel = "claude-3-5-haiku-latest"

// Ensure Provider implements bookmarkai.Provider at compile time.
var _ bookmarkai.Provider = (*Provider)(nil)

// Provider implements bookmarkai.Provider using Anthropic Claude.
type Provider struct {
	model string
}

// NewProvider creates a new Provider. An empty model selects DefaultModel.
func NewProvider(model string) *Provider {
	if model == "" {
		model = DefaultModel
	}
	return &Provider{model: model}
}

// Name returns "anthropic".
func (p *Provider) Name() string {
	return "anthropic"
}

// Complete sends prompt to Claude using credential as the API key.
// llmkit does not accept a context, so cancellation abandons the request
// rather than aborting it.
func (p *Provider) Complete(ctx context.Context, credential string, prompt bookmarkai.Prompt) (string, error) {
	if credential == "" {
		return "", bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "anthropic API key required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := p.prompt(credential, prompt)
		done <- result{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}

func (p *Provider) prompt(credential string, prompt bookmarkai.Prompt) (string, error) {
	response, err := anthropic.PromptWithSettings(prompt.System, prompt.User, "", credential, BuildSettings(p.model, prompt))
	if err != nil {
		return "", err
	}
	if len(response.Content) == 0 {
		return "", bookmarkai.Errorf(bookmarkai.EINTERNAL, "no content in anthropic response")
	}
	return response.Content[0].Text, nil
}

// BuildSettings returns the llmkit request settings for a prompt.
func BuildSettings(model string, prompt bookmarkai.Prompt) types.RequestSettings {
	return types.RequestSettings{
		Model:       model,
		MaxTokens:   prompt.MaxTokens,
		Temperature: prompt.Temperature,
	}
}
