package domain

import (
	"context"
	"errors"
)

type Service interface {
	// GetDashboardAnalytics returns the current snapshot, recomputing it when
	// the cached one has expired. Safe for concurrent callers; an expired
	// cache admits at most one computation at a time.
	GetDashboardAnalytics(ctx context.Context) (*Snapshot, error)
}

var (
	// ErrStoreUnavailable wraps failures reaching or querying the raw data
	// source. Nothing is cached and the previous entry is not resurrected.
	ErrStoreUnavailable = errors.New("store_unavailable")

	// ErrComputationFailed wraps failures inside the aggregation itself.
	ErrComputationFailed = errors.New("computation_failed")
)
