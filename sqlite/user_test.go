package sqlite_test

import (
	"context"
	"testing"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/mmelton12/bookmark-ai/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUserService_CreateUser(t *testing.T) {
	t.Parallel()

	t.Run("creates user with generated ID and lowercased email", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewUserService(db)

		u := &bookmarkai.User{Email: " Ada@Example.com ", Name: "Ada", PasswordHash: "hash"}
		require.NoError(t, svc.CreateUser(context.Background(), u))

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "ada@example.com", u.Email)
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("returns ECONFLICT for duplicate email", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewUserService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateUser(ctx, &bookmarkai.User{Email: "a@example.com", PasswordHash: "h"}))
		err := svc.CreateUser(ctx, &bookmarkai.User{Email: "A@example.com", PasswordHash: "h"})

		require.Error(t, err)
		assert.Equal(t, bookmarkai.ECONFLICT, bookmarkai.ErrorCode(err))
	})

	t.Run("returns EINVALID for invalid email", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		err := sqlite.NewUserService(db).CreateUser(context.Background(), &bookmarkai.User{Email: "nope", PasswordHash: "h"})

		assert.Equal(t, bookmarkai.EINVALID, bookmarkai.ErrorCode(err))
	})
}

func TestUserService_Find(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewUserService(db)
	ctx := context.Background()
	u := createTestUser(t, db, "find@example.com")

	byID, err := svc.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "find@example.com", byID.Email)
	assert.Equal(t, "hash", byID.PasswordHash)

	byEmail, err := svc.FindUserByEmail(ctx, "FIND@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = svc.FindUserByID(ctx, "missing")
	assert.Equal(t, bookmarkai.ENOTFOUND, bookmarkai.ErrorCode(err))
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Parallel()

	t.Run("sets and clears API key", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewUserService(db)
		ctx := context.Background()
		u := createTestUser(t, db, "key@example.com")

		updated, err := svc.UpdateUser(ctx, u.ID, bookmarkai.UserUpdate{APIKey: ptr(" sk-123 ")})
		require.NoError(t, err)
		assert.Equal(t, "sk-123", updated.APIKey)

		found, err := svc.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, found.HasAPIKey())

		_, err = svc.UpdateUser(ctx, u.ID, bookmarkai.UserUpdate{APIKey: ptr("")})
		require.NoError(t, err)
		found, err = svc.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, found.HasAPIKey())
	})

	t.Run("returns ENOTFOUND for missing user", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		_, err := sqlite.NewUserService(db).UpdateUser(context.Background(), "missing", bookmarkai.UserUpdate{Name: ptr("x")})

		assert.Equal(t, bookmarkai.ENOTFOUND, bookmarkai.ErrorCode(err))
	})
}
