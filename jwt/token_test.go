package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/mmelton12/bookmark-ai/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	t.Parallel()

	t.Run("round-trips user ID", func(t *testing.T) {
		t.Parallel()

		svc := jwt.NewTokenService("secret")

		token, err := svc.Issue("user-1")
		require.NoError(t, err)
		userID, err := svc.Verify(token)

		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		t.Parallel()

		issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		issuer := jwt.NewTokenService("secret", jwt.WithTTL(time.Hour), jwt.WithClock(func() time.Time { return issued }))
		verifier := jwt.NewTokenService("secret", jwt.WithClock(func() time.Time { return issued.Add(2 * time.Hour) }))

		token, err := issuer.Issue("user-1")
		require.NoError(t, err)
		_, err = verifier.Verify(token)

		assert.Equal(t, bookmarkai.EUNAUTHORIZED, bookmarkai.ErrorCode(err))
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		t.Parallel()

		token, err := jwt.NewTokenService("other").Issue("user-1")
		require.NoError(t, err)

		_, err = jwt.NewTokenService("secret").Verify(token)

		assert.Equal(t, bookmarkai.EUNAUTHORIZED, bookmarkai.ErrorCode(err))
	})

	t.Run("rejects unsigned token", func(t *testing.T) {
		t.Parallel()

		unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{
			Issuer:    jwt.Issuer,
			Subject:   "user-1",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = jwt.NewTokenService("secret").Verify(unsigned)

		assert.Equal(t, bookmarkai.EUNAUTHORIZED, bookmarkai.ErrorCode(err))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		_, err := jwt.NewTokenService("secret").Verify("not-a-token")

		assert.Equal(t, bookmarkai.EUNAUTHORIZED, bookmarkai.ErrorCode(err))
	})

	t.Run("requires user ID and secret", func(t *testing.T) {
		t.Parallel()

		_, err := jwt.NewTokenService("secret").Issue("")
		assert.Equal(t, bookmarkai.EINVALID, bookmarkai.ErrorCode(err))

		_, err = jwt.NewTokenService("").Issue("user-1")
		assert.Equal(t, bookmarkai.EINTERNAL, bookmarkai.ErrorCode(err))
	})
}
