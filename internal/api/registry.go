package api

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/store"
)

// Registry holds one loaded game per identity.
type Registry struct {
	store store.ProfileStore
	opts  game.Options

	mu    sync.Mutex
	games map[string]*entry
}

// entry is closed once its game has finished loading.
type entry struct {
	g     *game.Game
	ready chan struct{}
}

// NewRegistry returns a registry creating games over st with opts.
func NewRegistry(st store.ProfileStore, opts game.Options) *Registry {
	return &Registry{store: st, opts: opts, games: make(map[string]*entry)}
}

// Get returns the game for id, loading the profile on first use. A load
// failure still yields a playable game on default progress; only the
// caller that ran the load sees the error. Loads of different ids run
// concurrently.
func (r *Registry) Get(ctx context.Context, id string) (*game.Game, error) {
	r.mu.Lock()
	if e, ok := r.games[id]; ok {
		r.mu.Unlock()
		<-e.ready
		return e.g, nil
	}
	e := &entry{g: game.New(r.store, id, r.opts), ready: make(chan struct{})}
	r.games[id] = e
	r.mu.Unlock()

	err := e.g.Load(ctx)
	close(e.ready)
	return e.g, err
}

// Len returns the number of loaded games.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.games)
}

// Close flushes every game.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	entries := make([]*entry, 0, len(r.games))
	for _, e := range r.games {
		entries = append(entries, e)
	}
	r.games = make(map[string]*entry)
	r.mu.Unlock()

	var errs []error
	for _, e := range entries {
		<-e.ready
		if err := e.g.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
