package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const usersTable = "users"

var userColumns = []string{"id", "email", "password_hash", "confirmed", "confirm_token", "created_at"}

// User is an account that owns one profile.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Confirmed    bool
	ConfirmToken string
	CreatedAt    time.Time
}

// UserStore manages accounts.
type UserStore interface {
	// CreateUser inserts u. Returns ErrDuplicate if the email is taken.
	CreateUser(ctx context.Context, u *User) error
	// GetUserByEmail returns the account for email, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// GetUserByID returns the account for id, or ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*User, error)
	// ConfirmUser marks the account holding token as confirmed and clears
	// the token. Returns ErrNotFound for an unknown token.
	ConfirmUser(ctx context.Context, token string) (*User, error)
	// DeleteUser removes the account with id. Deleting a missing account
	// is not an error.
	DeleteUser(ctx context.Context, id string) error
}

// NormalizeEmail lowercases and trims an address for lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser implements UserStore.
func (s *Store) CreateUser(ctx context.Context, u *User) error {
	u.Email = NormalizeEmail(u.Email)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	query, args := s.builder().
		Insert(usersTable).
		Columns(userColumns...).
		Values(u.ID, u.Email, u.PasswordHash, boolInt(u.Confirmed), u.ConfirmToken, u.CreatedAt.Format(time.RFC3339Nano)).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByEmail implements UserStore.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.getUser(ctx, entsql.EQ("email", NormalizeEmail(email)))
}

// GetUserByID implements UserStore.
func (s *Store) GetUserByID(ctx context.Context, id string) (*User, error) {
	return s.getUser(ctx, entsql.EQ("id", id))
}

// ConfirmUser implements UserStore.
func (s *Store) ConfirmUser(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	u, err := s.getUser(ctx, entsql.EQ("confirm_token", token))
	if err != nil {
		return nil, err
	}
	query, args := s.builder().
		Update(usersTable).
		Set("confirmed", 1).
		Set("confirm_token", "").
		Where(entsql.EQ("id", u.ID)).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("confirm user: %w", err)
	}
	u.Confirmed = true
	u.ConfirmToken = ""
	return u, nil
}

// DeleteUser implements UserStore.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	query, args := s.builder().
		Delete(usersTable).
		Where(entsql.EQ("id", id)).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *Store) getUser(ctx context.Context, where *entsql.Predicate) (*User, error) {
	query, args := s.builder().
		Select(userColumns...).
		From(entsql.Table(usersTable)).
		Where(where).
		Limit(1).
		Query()

	var (
		u         User
		confirmed int
		created   string
	)
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Email, &u.PasswordHash, &confirmed, &u.ConfirmToken, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.Confirmed = confirmed != 0
	if u.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("decode user created_at: %w", err)
	}
	return &u, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
