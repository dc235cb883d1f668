package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/smallbiznis/compass/internal/analytics/cache"
	"github.com/smallbiznis/compass/internal/analytics/domain"
	"github.com/smallbiznis/compass/internal/clock"
	"github.com/smallbiznis/compass/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Params struct {
	fx.In

	Cfg   config.Config
	Log   *zap.Logger
	Clock clock.Clock
	Store domain.Store
	Cache *cache.SnapshotCache
}

type Service struct {
	log               *zap.Logger
	clock             clock.Clock
	store             domain.Store
	cache             *cache.SnapshotCache
	lowStockThreshold int64
}

func New(p Params) domain.Service {
	return &Service{
		log:               p.Log.Named("analytics.service"),
		clock:             p.Clock,
		store:             p.Store,
		cache:             p.Cache,
		lowStockThreshold: p.Cfg.Analytics.LowStockThreshold,
	}
}

func (s *Service) GetDashboardAnalytics(ctx context.Context) (*domain.Snapshot, error) {
	return s.cache.GetOrCompute(ctx, s.compute)
}

// compute fans the aggregate reads out concurrently, joins them, and
// assembles the snapshot. Any failure abandons the whole fan-out; a partial
// snapshot is never produced.
func (s *Service) compute(ctx context.Context) (*domain.Snapshot, error) {
	var (
		activeUsers   int64
		totalProducts int64
		revenue       domain.RevenueTotals
		monthlySales  []domain.MonthlyBucket
		inventory     domain.InventoryMetrics
		hasInventory  bool
		purchases     []domain.CustomerPurchase
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		activeUsers, err = s.store.CountUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		totalProducts, err = s.store.CountProducts(ctx)
		return err
	})
	g.Go(func() (err error) {
		revenue, err = s.store.RevenueTotals(ctx)
		return err
	})
	g.Go(func() (err error) {
		monthlySales, err = s.store.MonthlySales(ctx)
		return err
	})
	g.Go(func() (err error) {
		inventory, hasInventory, err = s.store.InventoryMetrics(ctx, s.lowStockThreshold)
		return err
	})
	g.Go(func() (err error) {
		purchases, err = s.store.CustomerPurchases(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("snapshot computation failed", zap.Error(err))
		return nil, classify(err)
	}

	now := s.clock.Now()
	segments := classifySegments(purchases, now)

	var totalStock int64
	var inventoryOut *domain.InventoryMetrics
	if hasInventory {
		totalStock = inventory.TotalStock
		inventoryOut = &inventory
	}

	snapshot := &domain.Snapshot{
		ActiveUsers:       activeUsers,
		TotalProducts:     totalProducts,
		TotalRevenue:      revenue.TotalRevenue,
		MonthlySales:      monthlySales,
		Inventory:         inventoryOut,
		CustomerAnalytics: summarizeCustomers(segments),
		KPIs:              deriveKPIs(revenue, activeUsers, totalStock),
		ComputedAt:        now,
	}

	s.log.Info("snapshot computed",
		zap.Int64("active_users", activeUsers),
		zap.Int64("total_products", totalProducts),
		zap.Float64("total_revenue", revenue.TotalRevenue),
		zap.Int("monthly_buckets", len(monthlySales)),
		zap.Int("customers", len(segments)),
	)
	return snapshot, nil
}

func classify(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) || errors.Is(err, domain.ErrComputationFailed) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrComputationFailed, err)
}
