package repository

import (
	"context"
	"sync"
	"time"

	"github.com/ridloal/clothing-storefront/internal/cart/domain"
)

// MutateFunc receives the current lines of a cart and returns the new lines.
// Returning an error leaves the cart untouched.
type MutateFunc func(lines []domain.CartLine) ([]domain.CartLine, error)

type CartRepository interface {
	// Mutate runs fn while holding the session's lock, creating the cart on
	// first use, and returns a snapshot of the resulting lines.
	Mutate(ctx context.Context, sessionID string, fn MutateFunc) ([]domain.CartLine, error)
	// Snapshot returns a copy of the session's lines, empty if it has none.
	Snapshot(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	// EvictIdle drops carts not touched within ttl and reports how many.
	EvictIdle(ctx context.Context, ttl time.Duration) int
	Sessions() int
}

type sessionCart struct {
	mu         sync.Mutex
	lines      []domain.CartLine
	lastAccess time.Time
	evicted    bool
}

// Lock order: carts map before a sessionCart.mu. Callers holding a cart
// lock never take the map lock.
type memoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]*sessionCart
	now   func() time.Time
}

func NewMemoryCartRepository() CartRepository {
	return NewMemoryCartRepositoryWithClock(time.Now)
}

func NewMemoryCartRepositoryWithClock(now func() time.Time) CartRepository {
	return &memoryCartRepository{
		carts: make(map[string]*sessionCart),
		now:   now,
	}
}

func (r *memoryCartRepository) lookup(sessionID string) *sessionCart {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.carts[sessionID]
}

func (r *memoryCartRepository) getOrCreate(sessionID string) *sessionCart {
	if c := r.lookup(sessionID); c != nil {
		return c
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[sessionID]
	if !ok {
		c = &sessionCart{lines: []domain.CartLine{}, lastAccess: r.now()}
		r.carts[sessionID] = c
	}
	return c
}

func (r *memoryCartRepository) Mutate(ctx context.Context, sessionID string, fn MutateFunc) ([]domain.CartLine, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := r.getOrCreate(sessionID)
		c.mu.Lock()
		if c.evicted {
			// Sweeper won the race; the next getOrCreate sees a fresh cart.
			c.mu.Unlock()
			continue
		}
		c.lastAccess = r.now()

		next, err := fn(cloneLines(c.lines))
		if err != nil {
			c.mu.Unlock()
			return nil, err
		}
		if next == nil {
			next = []domain.CartLine{}
		}
		c.lines = next
		out := cloneLines(c.lines)
		c.mu.Unlock()
		return out, nil
	}
}

func (r *memoryCartRepository) Snapshot(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	c := r.lookup(sessionID)
	if c == nil {
		return []domain.CartLine{}, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.evicted {
		return []domain.CartLine{}, nil
	}
	c.lastAccess = r.now()
	return cloneLines(c.lines), nil
}

func (r *memoryCartRepository) EvictIdle(ctx context.Context, ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, c := range r.carts {
		c.mu.Lock()
		if c.lastAccess.Before(cutoff) {
			c.evicted = true
			delete(r.carts, id)
			evicted++
		}
		c.mu.Unlock()
	}
	return evicted
}

func (r *memoryCartRepository) Sessions() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}

func cloneLines(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}
