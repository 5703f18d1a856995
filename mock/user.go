package mock

import (
	"context"

	bookmarkai "github.com/mmelton12/bookmark-ai"
)

var _ bookmarkai.UserService = (*UserService)(nil)

// UserService is a mock implementation of bookmarkai.UserService.
type UserService struct {
	CreateUserFn      func(ctx context.Context, u *bookmarkai.User) error
	FindUserByIDFn    func(ctx context.Context, id string) (*bookmarkai.User, error)
	FindUserByEmailFn func(ctx context.Context, email string) (*bookmarkai.User, error)
	UpdateUserFn      func(ctx context.Context, id string, upd bookmarkai.UserUpdate) (*bookmarkai.User, error)
}

func (s *UserService) CreateUser(ctx context.Context, u *bookmarkai.User) error {
	return s.CreateUserFn(ctx, u)
}

func (s *UserService) FindUserByID(ctx context.Context, id string) (*bookmarkai.User, error) {
	return s.FindUserByIDFn(ctx, id)
}

func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*bookmarkai.User, error) {
	return s.FindUserByEmailFn(ctx, email)
}

func (s *UserService) UpdateUser(ctx context.Context, id string, upd bookmarkai.UserUpdate) (*bookmarkai.User, error) {
	return s.UpdateUserFn(ctx, id, upd)
}

var _ bookmarkai.PasswordHasher = (*PasswordHasher)(nil)

// PasswordHasher is a mock implementation of bookmarkai.PasswordHasher.
type PasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hash, password string) error
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	return h.HashFn(password)
}

func (h *PasswordHasher) Compare(hash, password string) error {
	return h.CompareFn(hash, password)
}

var _ bookmarkai.TokenService = (*TokenService)(nil)

// TokenService is a mock implementation of bookmarkai.TokenService.
type TokenService struct {
	IssueFn  func(userID string) (string, error)
	VerifyFn func(token string) (string, error)
}

func (s *TokenService) Issue(userID string) (string, error) {
	return s.IssueFn(userID)
}

func (s *TokenService) Verify(token string) (string, error) {
	return s.VerifyFn(token)
}
