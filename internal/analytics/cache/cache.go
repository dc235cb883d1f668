// Package cache holds the most recent dashboard snapshot behind a TTL with a
// single-flight guard: concurrent misses share one computation instead of
// each triggering their own.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/smallbiznis/compass/internal/analytics/domain"
	"github.com/smallbiznis/compass/internal/clock"
)

type ComputeFunc func(ctx context.Context) (*domain.Snapshot, error)

// SnapshotCache stores one snapshot under a single logical key. The guarded
// state machine is: empty -> computing -> populated; entries are replaced
// wholesale and never mutated in place.
type SnapshotCache struct {
	clock clock.Clock
	ttl   time.Duration

	mu       sync.Mutex
	entry    *entry
	inflight *call
}

type entry struct {
	snapshot   *domain.Snapshot
	computedAt time.Time
	expiresAt  time.Time
}

type call struct {
	done     chan struct{}
	snapshot *domain.Snapshot
	err      error
}

func New(clk clock.Clock, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{clock: clk, ttl: ttl}
}

// Get returns the cached snapshot when present and not expired.
func (c *SnapshotCache) Get() (*domain.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.entry; e != nil && c.clock.Now().Before(e.expiresAt) {
		return e.snapshot, true
	}
	return nil, false
}

// GetOrCompute returns the cached snapshot, or runs compute on a miss. When a
// computation is already in flight, the caller waits for its result rather
// than starting another. A failed computation stores nothing; every waiter
// receives the same error, and an expired entry is never resurrected.
func (c *SnapshotCache) GetOrCompute(ctx context.Context, compute ComputeFunc) (*domain.Snapshot, error) {
	c.mu.Lock()
	if e := c.entry; e != nil && c.clock.Now().Before(e.expiresAt) {
		snapshot := e.snapshot
		c.mu.Unlock()
		return snapshot, nil
	}
	if fl := c.inflight; fl != nil {
		c.mu.Unlock()
		select {
		case <-fl.done:
			return fl.snapshot, fl.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	fl := &call{done: make(chan struct{})}
	c.inflight = fl
	c.mu.Unlock()

	// The flight serves every waiter, so it must outlive its initiator:
	// one disconnecting client cannot fail the rest.
	snapshot, err := compute(context.WithoutCancel(ctx))

	c.mu.Lock()
	if err == nil {
		now := c.clock.Now()
		c.entry = &entry{
			snapshot:   snapshot,
			computedAt: now,
			expiresAt:  now.Add(c.ttl),
		}
	}
	c.inflight = nil
	fl.snapshot = snapshot
	fl.err = err
	c.mu.Unlock()
	close(fl.done)

	return snapshot, err
}
