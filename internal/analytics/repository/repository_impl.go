package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/compass/internal/analytics/domain"
	productdomain "github.com/smallbiznis/compass/internal/product/domain"
	userdomain "github.com/smallbiznis/compass/internal/user/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Store {
	return &repo{db: db}
}

func (r *repo) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userdomain.User{}).Count(&count).Error; err != nil {
		return 0, storeErr("count users", err)
	}
	return count, nil
}

func (r *repo) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&productdomain.Product{}).Count(&count).Error; err != nil {
		return 0, storeErr("count products", err)
	}
	return count, nil
}

func (r *repo) RevenueTotals(ctx context.Context) (domain.RevenueTotals, error) {
	var totals domain.RevenueTotals
	err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(total_amount), 0) AS total_revenue, COUNT(*) AS total_orders
		 FROM orders`,
	).Scan(&totals).Error
	if err != nil {
		return domain.RevenueTotals{}, storeErr("revenue totals", err)
	}
	return totals, nil
}

func (r *repo) MonthlySales(ctx context.Context) ([]domain.MonthlyBucket, error) {
	var buckets []domain.MonthlyBucket
	err := r.db.WithContext(ctx).Raw(r.monthlySalesQuery()).Scan(&buckets).Error
	if err != nil {
		return nil, storeErr("monthly sales", err)
	}

	// Ascending (year, month) is part of the contract; never trust the
	// store's iteration order.
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year < buckets[j].Year
		}
		return buckets[i].Month < buckets[j].Month
	})
	return buckets, nil
}

func (r *repo) monthlySalesQuery() string {
	switch r.db.Dialector.Name() {
	case "sqlite":
		return `SELECT CAST(strftime('%Y', ordered_at) AS INTEGER) AS year,
		               CAST(strftime('%m', ordered_at) AS INTEGER) AS month,
		               SUM(total_amount) AS revenue,
		               COUNT(*) AS orders
		        FROM orders
		        GROUP BY year, month`
	case "mysql":
		return `SELECT YEAR(ordered_at) AS year,
		               MONTH(ordered_at) AS month,
		               SUM(total_amount) AS revenue,
		               COUNT(*) AS orders
		        FROM orders
		        GROUP BY year, month`
	default:
		return `SELECT EXTRACT(YEAR FROM ordered_at)::int AS year,
		               EXTRACT(MONTH FROM ordered_at)::int AS month,
		               SUM(total_amount) AS revenue,
		               COUNT(*) AS orders
		        FROM orders
		        GROUP BY 1, 2`
	}
}

func (r *repo) InventoryMetrics(ctx context.Context, lowStockThreshold int64) (domain.InventoryMetrics, bool, error) {
	var row struct {
		TotalStock   int64   `gorm:"column:total_stock"`
		AverageStock float64 `gorm:"column:average_stock"`
		LowStock     int64   `gorm:"column:low_stock"`
		OutOfStock   int64   `gorm:"column:out_of_stock"`
		ProductCount int64   `gorm:"column:product_count"`
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(stock), 0) AS total_stock,
		        COALESCE(AVG(stock), 0) AS average_stock,
		        COALESCE(SUM(CASE WHEN stock < ? THEN 1 ELSE 0 END), 0) AS low_stock,
		        COALESCE(SUM(CASE WHEN stock = 0 THEN 1 ELSE 0 END), 0) AS out_of_stock,
		        COUNT(*) AS product_count
		 FROM products`,
		lowStockThreshold,
	).Scan(&row).Error
	if err != nil {
		return domain.InventoryMetrics{}, false, storeErr("inventory metrics", err)
	}
	metrics := domain.InventoryMetrics{
		TotalStock:   row.TotalStock,
		AverageStock: row.AverageStock,
		LowStock:     row.LowStock,
		OutOfStock:   row.OutOfStock,
	}
	return metrics, row.ProductCount > 0, nil
}

const customerPurchasesQuery = `SELECT user_id AS customer_id,
	        SUM(total_amount) AS total_spent,
	        COUNT(*) AS order_count,
	        MAX(ordered_at) AS last_purchase_at
	 FROM orders
	 GROUP BY user_id`

func (r *repo) CustomerPurchases(ctx context.Context) ([]domain.CustomerPurchase, error) {
	// sqlite hands MAX(ordered_at) back as TEXT; an aggregate expression
	// carries no declared column type the driver could convert from.
	if r.db.Dialector.Name() == "sqlite" {
		return r.customerPurchasesSQLite(ctx)
	}

	var purchases []domain.CustomerPurchase
	err := r.db.WithContext(ctx).Raw(customerPurchasesQuery).Scan(&purchases).Error
	if err != nil {
		return nil, storeErr("customer purchases", err)
	}
	return purchases, nil
}

func (r *repo) customerPurchasesSQLite(ctx context.Context) ([]domain.CustomerPurchase, error) {
	var rows []struct {
		CustomerID     snowflake.ID `gorm:"column:customer_id"`
		TotalSpent     float64      `gorm:"column:total_spent"`
		OrderCount     int64        `gorm:"column:order_count"`
		LastPurchaseAt string       `gorm:"column:last_purchase_at"`
	}
	err := r.db.WithContext(ctx).Raw(customerPurchasesQuery).Scan(&rows).Error
	if err != nil {
		return nil, storeErr("customer purchases", err)
	}

	purchases := make([]domain.CustomerPurchase, 0, len(rows))
	for _, row := range rows {
		lastPurchaseAt, err := parseSQLiteTime(row.LastPurchaseAt)
		if err != nil {
			return nil, storeErr("customer purchases", err)
		}
		purchases = append(purchases, domain.CustomerPurchase{
			CustomerID:     row.CustomerID,
			TotalSpent:     row.TotalSpent,
			OrderCount:     row.OrderCount,
			LastPurchaseAt: lastPurchaseAt,
		})
	}
	return purchases, nil
}

// sqliteTimeLayouts covers the text forms the sqlite driver writes
// timestamps in, most precise first.
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05-07:00",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseSQLiteTime(value string) (time.Time, error) {
	for _, layout := range sqliteTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable sqlite timestamp %q", value)
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}
