package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/mathforest/internal/store"
)

// DefaultTokenTTL is how long a session token stays valid.
const DefaultTokenTTL = 30 * 24 * time.Hour

// Options configure a Service.
type Options struct {
	Secret []byte
	TTL    time.Duration
	// RequireConfirmation holds new accounts until the emailed link is
	// followed. It only applies when the mailer is enabled.
	RequireConfirmation bool
	Mailer              Mailer
	Logger              *slog.Logger
	Now                 func() time.Time
	// BcryptCost overrides bcrypt.DefaultCost; tests lower it.
	BcryptCost int
}

// Service registers and authenticates accounts. It holds no session state
// and is safe for concurrent use.
type Service struct {
	users store.UserStore
	opts  Options
	log   *slog.Logger
}

// NewService returns a service backed by users.
func NewService(users store.UserStore, opts Options) (*Service, error) {
	if len(opts.Secret) == 0 {
		return nil, fmt.Errorf("auth: empty signing secret")
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTokenTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Mailer == nil {
		opts.Mailer = LogMailer{Logger: log}
	}
	return &Service{users: users, opts: opts, log: log.With("component", "auth")}, nil
}

// SignUp creates an account. An existing email yields AlreadyRegistered
// and no session. When confirmation is required the account is created
// unconfirmed, the link is mailed and ConfirmationSent is returned. If the
// mail cannot be sent the account is removed again.
func (s *Service) SignUp(ctx context.Context, email, password string) (SignUpResult, *Session, error) {
	email, err := validate(email, password)
	if err != nil {
		return 0, nil, err
	}
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return AlreadyRegistered, nil, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return 0, nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if err != nil {
		return 0, nil, fmt.Errorf("hash password: %w", err)
	}
	confirm := s.opts.RequireConfirmation && s.opts.Mailer.Enabled()
	u := &store.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Confirmed:    !confirm,
	}
	if confirm {
		u.ConfirmToken = uuid.NewString()
	}
	if err := s.users.CreateUser(ctx, u); errors.Is(err, store.ErrDuplicate) {
		return AlreadyRegistered, nil, nil
	} else if err != nil {
		return 0, nil, fmt.Errorf("create user: %w", err)
	}

	if confirm {
		if err := s.opts.Mailer.SendConfirmation(ctx, u.Email, u.ConfirmToken); err != nil {
			s.log.Error("confirmation email failed", "email", u.Email, "error", err)
			// Nobody holds the token, so drop the account and let a retry
			// start over.
			if derr := s.users.DeleteUser(context.WithoutCancel(ctx), u.ID); derr != nil {
				s.log.Error("remove unconfirmed account", "user", u.ID, "error", derr)
			}
			return 0, nil, fmt.Errorf("send confirmation: %w", err)
		}
		s.log.Info("account created, awaiting confirmation", "user", u.ID)
		return ConfirmationSent, nil, nil
	}

	sess, err := s.issue(u)
	if err != nil {
		return 0, nil, err
	}
	s.log.Info("account created", "user", u.ID)
	return SignedIn, sess, nil
}

// SignInWithPassword checks the credentials and issues a session.
func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.Confirmed {
		return nil, ErrEmailNotConfirmed
	}
	return s.issue(u)
}

// Confirm completes an emailed confirmation and signs the account in.
func (s *Service) Confirm(ctx context.Context, token string) (*Session, error) {
	u, err := s.users.ConfirmUser(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("confirm user: %w", err)
	}
	s.log.Info("account confirmed", "user", u.ID)
	return s.issue(u)
}

// Verify resolves a bearer token to its identity.
func (s *Service) Verify(token string) (Identity, error) {
	claims, err := parseToken(s.opts.Secret, token, s.opts.Now())
	if err != nil {
		return Identity{}, err
	}
	return Identity{ID: claims.Subject, Email: claims.Email}, nil
}

func (s *Service) issue(u *store.User) (*Session, error) {
	id := Identity{ID: u.ID, Email: u.Email}
	tok, exp, err := signToken(s.opts.Secret, id, s.opts.Now(), s.opts.TTL)
	if err != nil {
		return nil, err
	}
	return &Session{Identity: id, Token: tok, ExpiresAt: exp}, nil
}

func validate(email, password string) (string, error) {
	email = store.NormalizeEmail(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return "", ErrWeakPassword
	}
	return email, nil
}
