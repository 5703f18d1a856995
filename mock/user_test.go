package mock_test

import (
	"testing"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/mmelton12/bookmark-ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_DelegatesToFns(t *testing.T) {
	t.Parallel()

	var issuedFor string
	s := &mock.TokenService{
		IssueFn: func(userID string) (string, error) {
			issuedFor = userID
			return "token-" + userID, nil
		},
		VerifyFn: func(token string) (string, error) {
			return "", bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "bad token %s", token)
		},
	}

	token, err := s.Issue("u1")
	require.NoError(t, err)
	assert.Equal(t, "token-u1", token)
	assert.Equal(t, "u1", issuedFor)

	_, err = s.Verify("x")
	assert.Equal(t, bookmarkai.EUNAUTHORIZED, bookmarkai.ErrorCode(err))
}

func TestProvider_DefaultName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mock", (&mock.Provider{}).Name())
	assert.Equal(t, "gemini", (&mock.Provider{NameFn: func() string { return "gemini" }}).Name())
}
