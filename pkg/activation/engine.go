package activation

import (
	"context"
	"sync"

	"github.com/arthur-debert/agm/pkg/datastore"
	"github.com/arthur-debert/agm/pkg/types"
	"golang.org/x/sync/semaphore"
)

// Engine runs activation state transitions
type Engine struct {
	fs       types.FS
	store    datastore.DataStore
	rollback bool
	locks    *gameLocks
}

// Option configures an Engine
type Option func(*Engine)

// WithRollback controls whether a failed switch restores the previous
// preset. It is on by default.
func WithRollback(enabled bool) Option {
	return func(e *Engine) {
		e.rollback = enabled
	}
}

// New creates an engine linking on fs. The store must keep its records on
// the same filesystem.
func New(fs types.FS, store datastore.DataStore, opts ...Option) *Engine {
	e := &Engine{
		fs:       fs,
		store:    store,
		rollback: true,
		locks:    newGameLocks(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// gameLocks hands out one exclusive lock per game
type gameLocks struct {
	mu    sync.Mutex
	games map[string]*semaphore.Weighted
}

func newGameLocks() *gameLocks {
	return &gameLocks{games: map[string]*semaphore.Weighted{}}
}

// lock blocks until game is free and returns the release function
func (l *gameLocks) lock(game string) func() {
	l.mu.Lock()
	sem, ok := l.games[game]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.games[game] = sem
	}
	l.mu.Unlock()

	// Acquire only fails on a cancelled context
	_ = sem.Acquire(context.Background(), 1)
	return func() { sem.Release(1) }
}

// UpdateState loads the game's state, applies fn and saves it, holding the
// game's lock throughout. Nothing is saved when fn fails.
func (e *Engine) UpdateState(game string, fn func(*types.GameState) error) error {
	defer e.locks.lock(game)()

	state, err := e.store.LoadGameState(game)
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	return e.store.SaveGameState(state)
}
