package bookmarkai_test

import (
	"context"
	"testing"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockChatter verifies Chatter interface can be implemented.
type mockChatter struct {
	ChatFn func(ctx context.Context, message, credential string) (string, error)
}

func (m *mockChatter) Chat(ctx context.Context, message, credential string) (string, error) {
	return m.ChatFn(ctx, message, credential)
}

// Compile-time check that mockChatter implements Chatter.
var _ bookmarkai.Chatter = (*mockChatter)(nil)

func TestChatter_CanBeImplemented(t *testing.T) {
	t.Parallel()

	chatter := &mockChatter{
		ChatFn: func(_ context.Context, message, _ string) (string, error) {
			return "reply to " + message, nil
		},
	}

	reply, err := chatter.Chat(context.Background(), "hello", "key")

	require.NoError(t, err)
	assert.Equal(t, "reply to hello", reply)
}
