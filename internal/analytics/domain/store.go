package domain

import "context"

// Store is the aggregate read surface the dashboard needs from the raw data
// source. One snapshot computation issues each read exactly once.
type Store interface {
	CountUsers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	RevenueTotals(ctx context.Context) (RevenueTotals, error)
	MonthlySales(ctx context.Context) ([]MonthlyBucket, error)
	// InventoryMetrics reports ok=false when the product set is empty.
	InventoryMetrics(ctx context.Context, lowStockThreshold int64) (InventoryMetrics, bool, error)
	CustomerPurchases(ctx context.Context) ([]CustomerPurchase, error)
}
