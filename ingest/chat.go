package ingest

import (
	"context"
	"strings"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// Chat call settings.
const (
	ChatMaxTokens   = 500
	ChatTemperature = 0.7
)

// Ensure Chatter implements bookmarkai.Chatter at compile time.
var _ bookmarkai.Chatter = (*Chatter)(nil)

// Chatter implements bookmarkai.Chatter with a single provider call.
type Chatter struct {
	provider bookmarkai.Provider
}

// NewChatter creates a new Chatter.
func NewChatter(provider bookmarkai.Provider) *Chatter {
	return &Chatter{provider: provider}
}

// Chat returns the assistant's reply to message.
func (c *Chatter) Chat(ctx context.Context, message, credential string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", bookmarkai.Errorf(bookmarkai.EINVALID, "Message is required")
	}
	if credential == "" {
		return "", bookmarkai.Errorf(bookmarkai.EINVALID, "API key is required. Please add it in your account settings.")
	}

	reply, err := c.provider.Complete(ctx, credential, bookmarkai.Prompt{
		System:      chatSystemPrompt,
		User:        message,
		MaxTokens:   ChatMaxTokens,
		Temperature: ChatTemperature,
	})
	if err != nil {
		return "", err
	}
	if reply == "" {
		return "", bookmarkai.Errorf(bookmarkai.EINTERNAL, "no response from %s", c.provider.Name())
	}
	return reply, nil
}
