// Package bcrypt implements bookmarkai.PasswordHasher with bcrypt.
package bcrypt

import (
	"errors"

	bookmarkai "github.com/mmelton12/bookmark-ai"
	"golang.org/x/crypto/bcrypt"
)

// Ensure PasswordHasher implements bookmarkai.PasswordHasher at compile time.
var _ bookmarkai.PasswordHasher = (*PasswordHasher)(nil)

// PasswordHasher hashes passwords with a fixed bcrypt cost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher. A cost outside bcrypt's
// accepted range falls back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", bookmarkai.Errorf(bookmarkai.EINVALID, "Password is too long")
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare returns EUNAUTHORIZED if password does not match hash.
func (h *PasswordHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return bookmarkai.Errorf(bookmarkai.EUNAUTHORIZED, "Invalid credentials")
	}
	return nil
}
