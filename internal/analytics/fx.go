package analytics

import (
	"github.com/smallbiznis/compass/internal/analytics/cache"
	"github.com/smallbiznis/compass/internal/analytics/repository"
	"github.com/smallbiznis/compass/internal/analytics/service"
	"github.com/smallbiznis/compass/internal/analytics/warming"
	"github.com/smallbiznis/compass/internal/clock"
	"github.com/smallbiznis/compass/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("analytics.service",
	fx.Provide(repository.Provide),
	fx.Provide(newSnapshotCache),
	fx.Provide(service.New),
	fx.Provide(warming.NewWorker),
	fx.Invoke(warming.Register),
)

func newSnapshotCache(cfg config.Config, clk clock.Clock) *cache.SnapshotCache {
	return cache.New(clk, cfg.Analytics.CacheTTL)
}
