package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/mmelton12/bookmark-ai/mock"
	bmslog "github.com/mmelton12/bookmark-ai/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingProvider_Complete(t *testing.T) {
	t.Parallel()

	newLogger := func(buf *bytes.Buffer) *slog.Logger {
		return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	t.Run("logs provider and reply size without secrets", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Provider{
			NameFn: func() string { return "gemini" },
			CompleteFn: func(ctx context.Context, credential string, prompt bookmarkai.Prompt) (string, error) {
				return "a summary", nil
			},
		}

		provider := bmslog.NewLoggingProvider(inner, newLogger(&buf))
		reply, err := provider.Complete(context.Background(), "secret-key", bookmarkai.Prompt{
			System:    "system prompt",
			User:      "private page text",
			MaxTokens: 150,
		})

		require.NoError(t, err)
		assert.Equal(t, "a summary", reply)
		assert.Equal(t, "gemini", provider.Name())
		output := buf.String()
		assert.Contains(t, output, "msg=completion")
		assert.Contains(t, output, "provider=gemini")
		assert.Contains(t, output, "max_tokens=150")
		assert.Contains(t, output, "reply_bytes=9")
		assert.NotContains(t, output, "secret-key")
		assert.NotContains(t, output, "private page text")
	})

	t.Run("logs error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Provider{
			CompleteFn: func(ctx context.Context, credential string, prompt bookmarkai.Prompt) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}

		_, err := bmslog.NewLoggingProvider(inner, newLogger(&buf)).Complete(context.Background(), "k", bookmarkai.Prompt{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="quota exceeded"`)
	})

	t.Run("silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Provider{
			CompleteFn: func(ctx context.Context, credential string, prompt bookmarkai.Prompt) (string, error) {
				return "ok", nil
			},
		}

		_, err := bmslog.NewLoggingProvider(inner, slog.New(slog.NewTextHandler(&buf, nil))).Complete(context.Background(), "k", bookmarkai.Prompt{})

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}
