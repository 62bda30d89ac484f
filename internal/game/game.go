// Package game combines the session, boss and persistence pieces into the
// single learner-facing engine both front ends drive.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/abhisek/mathforest/internal/boss"
	"github.com/abhisek/mathforest/internal/persist"
	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/session"
	"github.com/abhisek/mathforest/internal/store"
)

// MaxNameLength is the longest display name accepted, in runes.
const MaxNameLength = 20

var (
	ErrNoPractice  = errors.New("no practice session in progress")
	ErrNoEncounter = errors.New("no boss encounter in progress")
	ErrEmptyName   = errors.New("name is empty")

	// ErrSaveFailed wraps a store failure after the in-memory state was
	// already updated. The change stands; only the write was lost.
	ErrSaveFailed = errors.New("save failed")
)

// Options configure a Game. Zero values use the defaults.
type Options struct {
	Generator *problemgen.Generator
	Gate      session.Gate
	Debounce  time.Duration
	Now       func() time.Time
	Logger    *slog.Logger
	Persist   persist.Options
}

// Game is one learner's engine. Methods are safe for concurrent use; the
// profile and the active session or encounter are guarded by one mutex and
// saves are issued after it is released.
type Game struct {
	id       string
	gw       *persist.Gateway
	sessions *session.Controller
	bosses   *boss.Controller
	debounce time.Duration
	now      func() time.Time
	log      *slog.Logger

	mu        sync.Mutex
	profile   progression.Profile
	practice  *session.State
	encounter *boss.Encounter
}

// New creates a game for identity id backed by st. Call Load before play.
func New(st store.ProfileStore, id string, opts Options) *Game {
	if opts.Generator == nil {
		opts.Generator = problemgen.New(nil)
	}
	if opts.Gate == (session.Gate{}) {
		opts.Gate = session.DefaultGate()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = persist.DefaultDebounce
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Persist.Logger == nil {
		opts.Persist.Logger = log
	}

	g := &Game{
		id:       id,
		sessions: session.NewController(opts.Generator, opts.Gate, opts.Now),
		bosses:   boss.NewController(opts.Generator),
		debounce: opts.Debounce,
		now:      opts.Now,
		log:      log.With("component", "game", "profile", id),
		profile:  progression.DefaultProfile(),
	}
	g.gw = persist.NewGateway(st, id, persist.SourceFunc(g.Profile), opts.Persist)
	return g
}

// ID returns the identity the game belongs to.
func (g *Game) ID() string { return g.id }

// Gateway exposes the persistence gateway for save status subscriptions.
func (g *Game) Gateway() *persist.Gateway { return g.gw }

// SaveStatus returns the current save indicator.
func (g *Game) SaveStatus() persist.Status { return g.gw.Status() }

// Load replaces the in-memory profile with the stored one. On a store
// failure the defaults are kept and the error is returned.
func (g *Game) Load(ctx context.Context) error {
	p, err := g.gw.Load(ctx)
	g.mu.Lock()
	g.profile = p
	g.practice = nil
	g.encounter = nil
	g.mu.Unlock()
	return err
}

// Profile returns a copy of the current profile.
func (g *Game) Profile() progression.Profile {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.profile.Clone()
}

// SetName sets the display name and saves immediately.
func (g *Game) SetName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
	}
	g.mu.Lock()
	g.profile.Name = name
	g.mu.Unlock()
	return g.save(ctx, persist.Immediate)
}

// Reset wipes all progress, including the name and boss defeats, and saves
// immediately.
func (g *Game) Reset(ctx context.Context) error {
	g.mu.Lock()
	g.profile = progression.DefaultProfile()
	g.practice = nil
	g.encounter = nil
	g.mu.Unlock()
	g.log.Info("progress reset")
	return g.save(ctx, persist.Immediate)
}

// Close flushes any pending save.
func (g *Game) Close(ctx context.Context) error {
	return g.gw.Close(ctx)
}

func (g *Game) save(ctx context.Context, policy persist.FlushPolicy) error {
	if err := g.gw.Save(ctx, policy); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}
