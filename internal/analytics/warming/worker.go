// Package warming keeps the dashboard snapshot fresh in the background so
// the first request after TTL expiry does not pay the computation cost.
package warming

import (
	"context"
	"time"

	"github.com/smallbiznis/compass/internal/analytics/domain"
	"github.com/smallbiznis/compass/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Worker struct {
	svc      domain.Service
	log      *zap.Logger
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func NewWorker(cfg config.Config, log *zap.Logger, svc domain.Service) *Worker {
	return &Worker{
		svc:      svc,
		log:      log.Named("analytics.warming"),
		interval: cfg.Analytics.WarmInterval,
	}
}

// Register starts the worker when a warm interval is configured.
func Register(lc fx.Lifecycle, w *Worker) {
	if w.interval <= 0 {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			runCtx, cancel := context.WithCancel(context.Background())
			w.cancel = cancel
			w.done = make(chan struct{})
			go w.run(runCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			w.cancel()
			select {
			case <-w.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	w.log.Info("snapshot warming started", zap.Duration("interval", w.interval))
	w.warm(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("snapshot warming stopped")
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *Worker) warm(ctx context.Context) {
	// Shares the single-flight path with foreground requests, so a warm
	// cycle can never race a caller into a duplicate computation.
	if _, err := w.svc.GetDashboardAnalytics(ctx); err != nil && ctx.Err() == nil {
		w.log.Warn("snapshot warm cycle failed", zap.Error(err))
	}
}
