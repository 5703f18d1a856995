package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	bookmarkai "github.com/mmelton12/bookmark-ai"
)

// Compile-time interface verification.
var _ bookmarkai.UserService = (*UserService)(nil)

// UserService implements bookmarkai.UserService using SQLite.
type UserService struct {
	db *DB
}

// NewUserService creates a new UserService.
func NewUserService(db *DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates a new user. Emails are stored lowercased.
func (s *UserService) CreateUser(ctx context.Context, u *bookmarkai.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if err := u.Validate(); err != nil {
		return err
	}

	u.ID = uuid.New().String()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, api_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.Name, u.PasswordHash, u.APIKey,
		u.CreatedAt.Format(time.RFC3339), u.UpdatedAt.Format(time.RFC3339))

	if isUniqueViolation(err) {
		return bookmarkai.Errorf(bookmarkai.ECONFLICT, "User already exists")
	}
	return err
}

// FindUserByID retrieves a user by ID.
func (s *UserService) FindUserByID(ctx context.Context, id string) (*bookmarkai.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

// FindUserByEmail retrieves a user by email, case-insensitively.
func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*bookmarkai.User, error) {
	return s.findUser(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (s *UserService) findUser(ctx context.Context, where string, arg any) (*bookmarkai.User, error) {
	var u bookmarkai.User
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, api_key, created_at, updated_at
		FROM users
		WHERE `+where, arg).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.APIKey, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, bookmarkai.Errorf(bookmarkai.ENOTFOUND, "User not found")
	}
	if err != nil {
		return nil, err
	}

	if err := parseTimestamps(createdAt, updatedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser updates an existing user.
func (s *UserService) UpdateUser(ctx context.Context, id string, upd bookmarkai.UserUpdate) (*bookmarkai.User, error) {
	u, err := s.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.APIKey != nil {
		u.APIKey = strings.TrimSpace(*upd.APIKey)
	}

	u.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, api_key = ?, updated_at = ?
		WHERE id = ?
	`, u.Name, u.APIKey, u.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}
	return u, nil
}
