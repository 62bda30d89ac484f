// Package persist mirrors the in-memory profile to the profile store.
package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/store"
)

// Default timings.
const (
	DefaultDebounce     = 500 * time.Millisecond
	DefaultSavedRevert  = 1500 * time.Millisecond
	DefaultFailedRevert = 4 * time.Second
)

// FlushPolicy selects how a Save is written.
type FlushPolicy struct {
	delay time.Duration
}

// Immediate writes now and cancels any pending debounced write.
var Immediate = FlushPolicy{}

// Debounced coalesces saves issued within d into one write.
func Debounced(d time.Duration) FlushPolicy {
	return FlushPolicy{delay: d}
}

// IsImmediate reports whether the policy writes synchronously.
func (f FlushPolicy) IsImmediate() bool { return f.delay <= 0 }

func (f FlushPolicy) mode() string {
	if f.IsImmediate() {
		return "immediate"
	}
	return "debounced"
}

// Source supplies the profile to write. It is read when the write happens, so
// a debounced save sees the latest state.
type Source interface {
	Snapshot() progression.Profile
}

// SourceFunc adapts a function to Source.
type SourceFunc func() progression.Profile

// Snapshot implements Source.
func (f SourceFunc) Snapshot() progression.Profile { return f() }

// Options tune a Gateway. Zero values fall back to the defaults.
type Options struct {
	SavedRevert  time.Duration
	FailedRevert time.Duration
	Logger       *slog.Logger
	Metrics      *Metrics
}

// Gateway loads and saves one identity's profile.
type Gateway struct {
	store store.ProfileStore
	id    string
	src   Source
	opts  Options
	log   *slog.Logger

	writeMu sync.Mutex

	mu        sync.Mutex
	pending   *time.Timer
	revert    *time.Timer
	status    Status
	gen       uint64
	listeners map[int]func(Status)
	nextL     int
	closed    bool
}

// NewGateway returns a gateway writing src's snapshot for id into st.
func NewGateway(st store.ProfileStore, id string, src Source, opts Options) *Gateway {
	if opts.SavedRevert <= 0 {
		opts.SavedRevert = DefaultSavedRevert
	}
	if opts.FailedRevert <= 0 {
		opts.FailedRevert = DefaultFailedRevert
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{
		store:     st,
		id:        id,
		src:       src,
		opts:      opts,
		log:       log.With("component", "persist", "profile", id),
		listeners: make(map[int]func(Status)),
	}
}

// ID returns the identity the gateway writes for.
func (g *Gateway) ID() string { return g.id }

// Load fetches the stored profile. A missing record yields the default
// profile and no error. Any other failure is logged and the default profile
// is returned together with the error so the caller can continue.
func (g *Gateway) Load(ctx context.Context) (progression.Profile, error) {
	rec, err := g.store.GetProfile(ctx, g.id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		g.opts.Metrics.load("not_found")
		return progression.DefaultProfile(), nil
	case err != nil:
		g.opts.Metrics.load("error")
		g.log.Error("load profile failed", "error", err)
		return progression.DefaultProfile(), fmt.Errorf("load profile: %w", err)
	}
	g.opts.Metrics.load("ok")
	return FromRecord(rec), nil
}

// Save schedules or performs a write according to policy. Immediate saves
// return the write error; debounced saves always return nil and report
// failures through the status.
func (g *Gateway) Save(ctx context.Context, policy FlushPolicy) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	if policy.IsImmediate() {
		g.mu.Unlock()
		return g.write(ctx, policy.mode())
	}

	bg := context.WithoutCancel(ctx)
	var t *time.Timer
	t = time.AfterFunc(policy.delay, func() {
		g.mu.Lock()
		if g.pending != t {
			g.mu.Unlock()
			return
		}
		g.pending = nil
		g.mu.Unlock()
		_ = g.write(bg, "debounced")
	})
	g.pending = t
	g.mu.Unlock()
	return nil
}

// Flush writes a pending debounced save now. It is a no-op when nothing is
// pending.
func (g *Gateway) Flush(ctx context.Context) error {
	g.mu.Lock()
	if g.pending == nil {
		g.mu.Unlock()
		return nil
	}
	g.pending.Stop()
	g.pending = nil
	g.mu.Unlock()
	return g.write(ctx, "flush")
}

// Pending reports whether a debounced write is scheduled.
func (g *Gateway) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending != nil
}

// Close flushes any pending write and stops the timers.
func (g *Gateway) Close(ctx context.Context) error {
	err := g.Flush(ctx)
	g.mu.Lock()
	g.closed = true
	if g.revert != nil {
		g.revert.Stop()
		g.revert = nil
	}
	g.mu.Unlock()
	return err
}

// Status returns the current save status.
func (g *Gateway) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// OnStatus registers fn to be called on every status change and returns a
// function that removes it. fn runs on the goroutine that changed the status.
func (g *Gateway) OnStatus(fn func(Status)) (unsubscribe func()) {
	g.mu.Lock()
	id := g.nextL
	g.nextL++
	g.listeners[id] = fn
	g.mu.Unlock()
	return func() {
		g.mu.Lock()
		delete(g.listeners, id)
		g.mu.Unlock()
	}
}

func (g *Gateway) write(ctx context.Context, mode string) error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	g.setStatus(StatusSaving)
	rec := ToRecord(g.id, g.src.Snapshot())
	if err := g.store.UpsertProfile(ctx, rec); err != nil {
		g.opts.Metrics.save(mode, "error")
		g.log.Error("save profile failed", "mode", mode, "error", err)
		g.setStatus(StatusFailed)
		return fmt.Errorf("save profile: %w", err)
	}
	g.opts.Metrics.save(mode, "ok")
	g.log.Debug("profile saved", "mode", mode)
	g.setStatus(StatusSaved)
	return nil
}

func (g *Gateway) setStatus(s Status) {
	g.mu.Lock()
	if g.revert != nil {
		g.revert.Stop()
		g.revert = nil
	}
	g.status = s
	g.gen++
	gen := g.gen

	var after time.Duration
	switch s {
	case StatusSaved:
		after = g.opts.SavedRevert
	case StatusFailed:
		after = g.opts.FailedRevert
	}
	if after > 0 && !g.closed {
		g.revert = time.AfterFunc(after, func() { g.revertIdle(gen) })
	}
	fns := g.snapshotListeners()
	g.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

func (g *Gateway) revertIdle(gen uint64) {
	g.mu.Lock()
	if g.gen != gen {
		g.mu.Unlock()
		return
	}
	g.status = StatusIdle
	g.gen++
	g.revert = nil
	fns := g.snapshotListeners()
	g.mu.Unlock()

	for _, fn := range fns {
		fn(StatusIdle)
	}
}

func (g *Gateway) snapshotListeners() []func(Status) {
	fns := make([]func(Status), 0, len(g.listeners))
	for _, fn := range g.listeners {
		fns = append(fns, fn)
	}
	return fns
}
