package bookmarkai

import (
	"context"
	"net/mail"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

// User represents an account that owns bookmarks and folders.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// APIKey is the user's AI provider credential. Never serialized.
	APIKey string `json:"-"`
}

// HasAPIKey reports whether the user configured a provider credential.
func (u *User) HasAPIKey() bool {
	return u.APIKey != ""
}

// Validate returns an error if the user contains invalid fields.
func (u *User) Validate() error {
	if u.Email == "" {
		return Errorf(EINVALID, "Please provide a valid email")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return Errorf(EINVALID, "Please provide a valid email")
	}
	if u.PasswordHash == "" {
		return Errorf(EINVALID, "user password required")
	}
	return nil
}

// NormalizeEmail trims and lowercases an email address so that accounts
// are matched regardless of the case a user types.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserService represents a service for managing users.
type UserService interface {
	// CreateUser creates a new user.
	// Returns ECONFLICT if the email is already registered.
	CreateUser(ctx context.Context, u *User) error

	// FindUserByID retrieves a user by ID.
	// Returns ENOTFOUND if the user does not exist.
	FindUserByID(ctx context.Context, id string) (*User, error)

	// FindUserByEmail retrieves a user by email.
	// Returns ENOTFOUND if the user does not exist.
	FindUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdateUser updates an existing user.
	// Returns ENOTFOUND if the user does not exist.
	UpdateUser(ctx context.Context, id string, upd UserUpdate) (*User, error)
}

// UserUpdate represents fields that can be updated on a user.
type UserUpdate struct {
	Name   *string `json:"name"`
	APIKey *string `json:"apiKey"`
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns EUNAUTHORIZED if password does not match hash.
	Compare(hash, password string) error
}

// TokenService issues and verifies bearer tokens identifying a user.
type TokenService interface {
	Issue(userID string) (string, error)

	// Verify returns the user ID carried by token.
	// Returns EUNAUTHORIZED for an invalid or expired token.
	Verify(token string) (string, error)
}
