package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smallbiznis/compass/internal/analytics/domain"
	"github.com/smallbiznis/compass/internal/clock"
)

func newTestCache(t *testing.T) (*SnapshotCache, *clock.FakeClock) {
	t.Helper()
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return New(clk, 600*time.Second), clk
}

func TestGetOrComputeCachesWithinTTL(t *testing.T) {
	c, clk := newTestCache(t)

	var calls int32
	compute := func(ctx context.Context) (*domain.Snapshot, error) {
		atomic.AddInt32(&calls, 1)
		return &domain.Snapshot{ActiveUsers: 7, ComputedAt: clk.Now()}, nil
	}

	first, err := c.GetOrCompute(context.Background(), compute)
	if err != nil {
		t.Fatalf("first GetOrCompute: %v", err)
	}

	clk.Advance(599 * time.Second)
	second, err := c.GetOrCompute(context.Background(), compute)
	if err != nil {
		t.Fatalf("second GetOrCompute: %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 computation, got %d", got)
	}
	if first != second {
		t.Fatalf("expected the identical snapshot within the TTL")
	}
}

func TestGetOrComputeRecomputesAfterExpiry(t *testing.T) {
	c, clk := newTestCache(t)

	var calls int32
	compute := func(ctx context.Context) (*domain.Snapshot, error) {
		n := atomic.AddInt32(&calls, 1)
		return &domain.Snapshot{ActiveUsers: int64(n)}, nil
	}

	if _, err := c.GetOrCompute(context.Background(), compute); err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}

	clk.Advance(601 * time.Second)
	snapshot, err := c.GetOrCompute(context.Background(), compute)
	if err != nil {
		t.Fatalf("GetOrCompute after expiry: %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 computations, got %d", got)
	}
	if snapshot.ActiveUsers != 2 {
		t.Fatalf("expected the fresh snapshot, got %+v", snapshot)
	}
}

func TestConcurrentMissesShareOneComputation(t *testing.T) {
	c, _ := newTestCache(t)

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	compute := func(ctx context.Context) (*domain.Snapshot, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return &domain.Snapshot{ActiveUsers: 42}, nil
	}

	const waiters = 8
	results := make([]*domain.Snapshot, waiters)
	errs := make([]error, waiters)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = c.GetOrCompute(context.Background(), compute)
	}()
	<-started

	for i := 1; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.GetOrCompute(context.Background(), compute)
		}(i)
	}
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single shared computation, got %d", got)
	}
	for i := 0; i < waiters; i++ {
		if errs[i] != nil {
			t.Fatalf("waiter %d: %v", i, errs[i])
		}
		if results[i] == nil || results[i].ActiveUsers != 42 {
			t.Fatalf("waiter %d got %+v", i, results[i])
		}
	}
}

func TestFailureCachesNothingAndBroadcasts(t *testing.T) {
	c, _ := newTestCache(t)

	boom := errors.New("store down")
	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[0] = c.GetOrCompute(context.Background(), func(ctx context.Context) (*domain.Snapshot, error) {
			close(started)
			<-release
			return nil, boom
		})
	}()
	<-started

	// The flight is guaranteed in place once started closes; hold it open
	// until the second caller is on its way to the waiter path. Its own
	// compute closure only runs in the fresh-flight case, where it yields
	// the same failure.
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[1] = c.GetOrCompute(context.Background(), func(ctx context.Context) (*domain.Snapshot, error) {
			return nil, boom
		})
	}()
	close(release)
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, boom) {
			t.Fatalf("caller %d: expected the shared error, got %v", i, err)
		}
	}
	if _, ok := c.Get(); ok {
		t.Fatalf("a failed computation must not populate the cache")
	}

	// The next call retries instead of replaying the failure.
	snapshot, err := c.GetOrCompute(context.Background(), func(ctx context.Context) (*domain.Snapshot, error) {
		return &domain.Snapshot{ActiveUsers: 1}, nil
	})
	if err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if snapshot.ActiveUsers != 1 {
		t.Fatalf("retry got %+v", snapshot)
	}
}

func TestFlightSurvivesInitiatorCancellation(t *testing.T) {
	c, _ := newTestCache(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var computeCtx context.Context

	initiatorCtx, cancelInitiator := context.WithCancel(context.Background())

	var (
		snapshot *domain.Snapshot
		err      error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		snapshot, err = c.GetOrCompute(initiatorCtx, func(ctx context.Context) (*domain.Snapshot, error) {
			computeCtx = ctx
			close(started)
			<-release
			return &domain.Snapshot{ActiveUsers: 9}, nil
		})
	}()
	<-started

	cancelInitiator()
	if computeCtx.Err() != nil {
		t.Fatalf("the flight context must not die with its initiator: %v", computeCtx.Err())
	}
	close(release)
	<-done

	if err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if snapshot == nil || snapshot.ActiveUsers != 9 {
		t.Fatalf("got %+v", snapshot)
	}
	if _, ok := c.Get(); !ok {
		t.Fatalf("the completed flight must populate the cache")
	}
}

func TestExpiredEntryIsNotResurrectedOnFailure(t *testing.T) {
	c, clk := newTestCache(t)

	if _, err := c.GetOrCompute(context.Background(), func(ctx context.Context) (*domain.Snapshot, error) {
		return &domain.Snapshot{ActiveUsers: 5}, nil
	}); err != nil {
		t.Fatalf("seed computation: %v", err)
	}

	clk.Advance(601 * time.Second)
	boom := errors.New("store down")
	if _, err := c.GetOrCompute(context.Background(), func(ctx context.Context) (*domain.Snapshot, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected the computation error, got %v", err)
	}

	if _, ok := c.Get(); ok {
		t.Fatalf("the expired entry must stay gone after a failed refresh")
	}
}

func TestWaiterHonorsContextCancellation(t *testing.T) {
	c, _ := newTestCache(t)

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = c.GetOrCompute(context.Background(), func(ctx context.Context) (*domain.Snapshot, error) {
			close(started)
			<-release
			return &domain.Snapshot{}, nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetOrCompute(ctx, func(ctx context.Context) (*domain.Snapshot, error) {
		t.Fatalf("a waiter must not start its own computation")
		return nil, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	close(release)
}
