package http_test

import (
	"context"
	"net/http"
	"testing"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/mmelton12/bookmark-ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Chat(t *testing.T) {
	t.Parallel()

	echo := &mock.Chatter{
		ChatFn: func(ctx context.Context, message, credential string) (string, error) {
			if message == "" {
				return "", bookmarkai.Errorf(bookmarkai.EINVALID, "Message is required")
			}
			return credential + ": " + message, nil
		},
	}

	t.Run("uses stored credential", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.Chatter = echo

		w := do(t, s, http.MethodPost, "/api/chat", `{"message":"hello"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"reply":"stored-key: hello"}`, w.Body.String())
	})

	t.Run("request credential overrides stored one", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.Chatter = echo

		w := do(t, s, http.MethodPost, "/api/chat", `{"message":"hello","apiKey":"override"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"reply":"override: hello"}`, w.Body.String())
	})

	t.Run("rejects empty message", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.Chatter = echo

		requireMessage(t, do(t, s, http.MethodPost, "/api/chat", `{"message":""}`), http.StatusBadRequest, "Message is required")
	})
}
