package mock

import (
	"context"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

var _ bookmarkai.Chatter = (*Chatter)(nil)

// Chatter is a mock implementation of bookmarkai.Chatter.
type Chatter struct {
	ChatFn func(ctx context.Context, message, credential string) (string, error)
}

func (c *Chatter) Chat(ctx context.Context, message, credential string) (string, error) {
	return c.ChatFn(ctx, message, credential)
}
