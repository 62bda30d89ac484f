package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/mathforest/internal/app"
	"github.com/abhisek/mathforest/internal/auth"
	"github.com/abhisek/mathforest/internal/config"
	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/persist"
	"github.com/abhisek/mathforest/internal/session"
	"github.com/abhisek/mathforest/internal/store"
)

// stderrLogger is used by the non-interactive commands.
func stderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// fileLogger writes to mathforest.log in the data dir so the TUI's alt
// screen stays clean. The returned func closes the file.
func fileLogger() (*slog.Logger, func(), error) {
	dir, err := store.DataDir()
	if err != nil {
		return nil, nil, err
	}
	path := filepath.Join(dir, "mathforest.log")
	if err := store.EnsureDir(path); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }, nil
}

// signingSecret returns the configured JWT secret or a per-install one kept
// next to the config file.
func signingSecret(cfg config.Config) ([]byte, error) {
	if cfg.Auth.JWTSecret != "" {
		return []byte(cfg.Auth.JWTSecret), nil
	}
	path := filepath.Join(config.Home(), "secret")
	data, err := os.ReadFile(path)
	if err == nil && len(strings.TrimSpace(string(data))) > 0 {
		return []byte(strings.TrimSpace(string(data))), nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read secret: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	secret := hex.EncodeToString(buf)
	if err := store.EnsureDir(path); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(secret+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("write secret: %w", err)
	}
	return []byte(secret), nil
}

// newAuthService builds the account service with SES mail when configured.
func newAuthService(ctx context.Context, cfg config.Config, users store.UserStore, log *slog.Logger) (*auth.Service, error) {
	secret, err := signingSecret(cfg)
	if err != nil {
		return nil, err
	}
	mailer, err := auth.NewSESMailer(ctx, cfg.Email.Region, cfg.Email.From, cfg.Email.FromName, cfg.Email.BaseURL, log)
	if err != nil {
		return nil, err
	}
	return auth.NewService(users, auth.Options{
		Secret:              secret,
		TTL:                 cfg.Auth.TokenTTL,
		RequireConfirmation: cfg.Auth.RequireConfirmation,
		Mailer:              mailer,
		Logger:              log,
	})
}

// newClient wraps the service with the on-disk session.
func newClient(ctx context.Context, cfg config.Config, users store.UserStore, log *slog.Logger) (*auth.Client, error) {
	svc, err := newAuthService(ctx, cfg, users, log)
	if err != nil {
		return nil, err
	}
	return auth.NewClient(svc, auth.FileSessionStore{Path: cfg.Auth.SessionFile}), nil
}

// gameOptions maps the [game] settings onto game.Options.
func gameOptions(cfg config.Config, log *slog.Logger, metrics *persist.Metrics) game.Options {
	return game.Options{
		Gate:     session.Gate{MinAnswers: cfg.Game.SessionMinAnswers, MinDuration: cfg.Game.SessionMinDuration},
		Debounce: cfg.Game.Debounce,
		Logger:   log,
		Persist: persist.Options{
			SavedRevert:  cfg.Game.SavedRevert,
			FailedRevert: cfg.Game.FailedRevert,
			Logger:       log,
			Metrics:      metrics,
		},
	}
}

// openGame loads the profile for id. A failed load is reported but the
// game still starts on default progress.
func openGame(ctx context.Context, st store.ProfileStore, id string, opts game.Options) *game.Game {
	g := game.New(st, id, opts)
	if err := g.Load(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not load saved progress:", err)
	}
	return g
}

// currentIdentity returns the signed-in identity, or the guest profile.
func currentIdentity(ctx context.Context, client *auth.Client) (id, label string) {
	s, err := client.CurrentSession(ctx)
	if err != nil || s == nil {
		return app.GuestID, "guest"
	}
	return s.ID, s.Email
}
