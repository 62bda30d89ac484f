// Package auth signs learners up and in. Accounts live in the user store;
// sessions are signed JWTs.
package auth

import (
	"context"
	"errors"
	"time"
)

// Errors returned by the service. Use UserMessage to show them.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password too short")
	ErrNotSignedIn        = errors.New("not signed in")
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Identity is the authenticated account a profile is keyed by.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is a signed-in identity and its bearer token.
type Session struct {
	Identity
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SignUpResult tells the caller what a sign-up did.
type SignUpResult int

const (
	// SignedIn means the account was created and a session issued.
	SignedIn SignUpResult = iota
	// AlreadyRegistered means the email already has an account.
	AlreadyRegistered
	// ConfirmationSent means the account waits for email confirmation.
	ConfirmationSent
)

func (r SignUpResult) String() string {
	switch r {
	case AlreadyRegistered:
		return "already_registered"
	case ConfirmationSent:
		return "confirmation_sent"
	default:
		return "signed_in"
	}
}

// MarshalText renders the result by name.
func (r SignUpResult) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Provider is the authentication capability the front ends depend on.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (SignUpResult, *Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	// CurrentSession returns the signed-in session or nil.
	CurrentSession(ctx context.Context) (*Session, error)
	// OnAuthStateChange calls fn with the new session (nil on sign out)
	// and returns a function that stops the notifications.
	OnAuthStateChange(fn func(*Session)) (unsubscribe func())
}

// UserMessage maps an auth error to a message fit for the learner.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return "That email and password don't match. Try again!"
	case errors.Is(err, ErrEmailNotConfirmed):
		return "Please confirm your email first. Check your inbox!"
	case errors.Is(err, ErrInvalidToken):
		return "That link has expired. Please sign in again."
	case errors.Is(err, ErrInvalidEmail):
		return "That doesn't look like an email address."
	case errors.Is(err, ErrWeakPassword):
		return "Your password needs at least 6 characters."
	case errors.Is(err, ErrNotSignedIn):
		return "Please sign in to keep your progress."
	default:
		return "Something went wrong. Please try again."
	}
}
