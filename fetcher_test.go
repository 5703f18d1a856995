package bookmarkai_test

import (
	"errors"
	"fmt"
	"testing"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/stretchr/testify/assert"
)

func TestFetchError_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *bookmarkai.FetchError
		want string
	}{
		{
			name: "refused",
			err:  &bookmarkai.FetchError{Kind: bookmarkai.FetchRefused},
			want: "Could not connect to the website. Please check the URL and try again.",
		},
		{
			name: "timeout",
			err:  &bookmarkai.FetchError{Kind: bookmarkai.FetchTimeout},
			want: "Request timed out. Please try again.",
		},
		{
			name: "forbidden",
			err:  &bookmarkai.FetchError{Kind: bookmarkai.FetchForbidden, StatusCode: 403},
			want: "Access to this website is forbidden. The website might be blocking our requests.",
		},
		{
			name: "not found",
			err:  &bookmarkai.FetchError{Kind: bookmarkai.FetchNotFound, StatusCode: 404},
			want: "The page could not be found. Please check the URL and try again.",
		},
		{
			name: "rate limited",
			err:  &bookmarkai.FetchError{Kind: bookmarkai.FetchRateLimited, StatusCode: 429},
			want: "Too many requests to this website. Please try again later.",
		},
		{
			name: "other status",
			err:  &bookmarkai.FetchError{Kind: bookmarkai.FetchFailed, StatusCode: 500},
			want: "Failed to fetch content: HTTP 500",
		},
		{
			name: "transport error",
			err:  &bookmarkai.FetchError{Kind: bookmarkai.FetchFailed, Err: errors.New("tls handshake")},
			want: "Failed to fetch content: tls handshake",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.err.Message())
		})
	}
}

func TestFetchErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("unwraps fetch error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("fetching: %w", &bookmarkai.FetchError{Kind: bookmarkai.FetchTimeout})

		assert.Equal(t, "Request timed out. Please try again.", bookmarkai.FetchErrorMessage(err))
	})

	t.Run("falls back to generic message", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Failed to fetch content: boom", bookmarkai.FetchErrorMessage(errors.New("boom")))
	})
}

func TestStatusFetchErrorKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bookmarkai.FetchForbidden, bookmarkai.StatusFetchErrorKind(403))
	assert.Equal(t, bookmarkai.FetchNotFound, bookmarkai.StatusFetchErrorKind(404))
	assert.Equal(t, bookmarkai.FetchRateLimited, bookmarkai.StatusFetchErrorKind(429))
	assert.Equal(t, bookmarkai.FetchFailed, bookmarkai.StatusFetchErrorKind(502))
}
