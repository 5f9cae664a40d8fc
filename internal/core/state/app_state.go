package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute

	// generationsPerSnapshot sizes the generation table relative to the snapshot cache.
	generationsPerSnapshot = 4
)

// AppState owns the loaded snapshot of each user. Mutations call Invalidate, which stamps
// the user with a new generation; a load that started under an older generation is
// superseded and is never published over fresher state.
//
// Generations come from one counter shared by all users and are kept in a bounded LRU.
// A user without an entry reads as floor, the counter value at the last eviction, so an
// evicted user still supersedes every load that began before the eviction.
type AppState struct {
	src   Sources
	clock func() time.Time

	mu          sync.Mutex
	counter     uint64
	floor       uint64
	generations *lru.Cache[string, uint64]
	cache       *expirable.LRU[string, *Snapshot]
}

// Option configures an AppState.
type Option func(*AppState)

// WithClock overrides time.Now for LoadedAt stamps.
func WithClock(clock func() time.Time) Option {
	return func(a *AppState) { a.clock = clock }
}

// New creates an AppState keeping at most size snapshots, each for at most ttl.
func New(src Sources, size int, ttl time.Duration, opts ...Option) *AppState {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	a := &AppState{
		src:   src,
		clock: time.Now,
		cache: expirable.NewLRU[string, *Snapshot](size, nil, ttl),
	}
	// The callback runs inside Add, which is only called with mu held.
	generations, err := lru.NewWithEvict[string, uint64](size*generationsPerSnapshot, func(string, uint64) {
		a.floor = a.counter
	})
	if err != nil {
		// Only returned for a non-positive size, which is ruled out above.
		panic(err)
	}
	a.generations = generations
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// generation returns the user's current generation. mu must be held.
func (a *AppState) generation(userID string) uint64 {
	if gen, ok := a.generations.Get(userID); ok {
		return gen
	}
	return a.floor
}

// Snapshot returns the user's current snapshot, loading it when none is cached.
func (a *AppState) Snapshot(ctx context.Context, userID string) (*Snapshot, error) {
	a.mu.Lock()
	gen := a.generation(userID)
	if snap, ok := a.cache.Get(userID); ok && snap.Generation == gen {
		a.mu.Unlock()
		return snap, nil
	}
	a.mu.Unlock()

	snap, err := Load(ctx, a.src, userID)
	if err != nil {
		return nil, apperrors.Persistence("load application state", err)
	}
	snap.Generation = gen
	snap.LoadedAt = a.clock().UTC()

	if !a.publish(snap) {
		middleware.GetLoggerFromCtx(ctx).Debug("Discarded superseded state load",
			slog.String("user_id", userID),
			slog.Uint64("generation", gen))
	}
	return snap, nil
}

// publish stores snap unless a mutation happened after its load began.
func (a *AppState) publish(snap *Snapshot) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.generation(snap.UserID) != snap.Generation {
		return false
	}
	a.cache.Add(snap.UserID, snap)
	return true
}

// Invalidate drops the user's snapshot and supersedes any load in flight.
func (a *AppState) Invalidate(userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counter++
	a.generations.Add(userID, a.counter)
	a.cache.Remove(userID)
}

// Generation returns the user's current generation.
func (a *AppState) Generation(userID string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generation(userID)
}
