package slog

import (
	"context"
	"log/slog"
	"time"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// Ensure LoggingProvider implements bookmarkai.Provider.
var _ bookmarkai.Provider = (*LoggingProvider)(nil)

// LoggingProvider wraps a Provider with debug logging. Prompts and
// credentials are never logged.
type LoggingProvider struct {
	next   bookmarkai.Provider
	logger *slog.Logger
}

// NewLoggingProvider creates a new LoggingProvider.
func NewLoggingProvider(next bookmarkai.Provider, logger *slog.Logger) *LoggingProvider {
	return &LoggingProvider{next: next, logger: logger}
}

// Name delegates to the wrapped provider.
func (p *LoggingProvider) Name() string {
	return p.next.Name()
}

// Complete delegates to the wrapped provider and logs the call.
func (p *LoggingProvider) Complete(ctx context.Context, credential string, prompt bookmarkai.Prompt) (reply string, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("completion",
			"provider", p.next.Name(),
			"max_tokens", prompt.MaxTokens,
			"reply_bytes", len(reply),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Complete(ctx, credential, prompt)
}
