package slog

import (
	"context"
	"log/slog"
	"time"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// Ensure LoggingIngester implements bookmarkai.Ingester.
var _ bookmarkai.Ingester = (*LoggingIngester)(nil)

// LoggingIngester wraps an Ingester with logging. Degraded bookmarks are
// logged at warn level.
type LoggingIngester struct {
	next   bookmarkai.Ingester
	logger *slog.Logger
}

// NewLoggingIngester creates a new LoggingIngester.
func NewLoggingIngester(next bookmarkai.Ingester, logger *slog.Logger) *LoggingIngester {
	return &LoggingIngester{next: next, logger: logger}
}

// CreateBookmark delegates to the wrapped ingester and logs the outcome.
func (i *LoggingIngester) CreateBookmark(ctx context.Context, userID, rawURL, credential string) (b *bookmarkai.Bookmark, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"user", userID,
			"url", rawURL,
			"duration", time.Since(begin),
		}
		switch {
		case err != nil:
			i.logger.Info("ingest rejected", append(attrs, "code", bookmarkai.ErrorCode(err), "err", err)...)
		case b.Degraded():
			i.logger.Warn("ingest degraded", append(attrs, "id", b.ID, "warning", b.Warning)...)
		default:
			i.logger.Info("ingest", append(attrs, "id", b.ID, "category", b.Category, "tags", len(b.Tags))...)
		}
	}(time.Now())
	return i.next.CreateBookmark(ctx, userID, rawURL, credential)
}
