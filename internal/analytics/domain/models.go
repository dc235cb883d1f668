package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer segment labels, ordered from most to least valuable. Assignment is
// a strict first-match over the rule list in the service; a customer gets
// exactly one label.
const (
	SegmentVIP     = "VIP"
	SegmentActive  = "Active"
	SegmentRegular = "Regular"
	SegmentAtRisk  = "At Risk"
)

// MonthlyBucket holds revenue and order counts for one calendar month.
// Buckets are unique per (year, month) and sorted ascending.
type MonthlyBucket struct {
	Year    int     `gorm:"column:year" json:"year"`
	Month   int     `gorm:"column:month" json:"month"`
	Revenue float64 `gorm:"column:revenue" json:"revenue"`
	Orders  int64   `gorm:"column:orders" json:"orders"`
}

// RevenueTotals is the all-time reduction over orders.
type RevenueTotals struct {
	TotalRevenue float64 `gorm:"column:total_revenue" json:"total_revenue"`
	TotalOrders  int64   `gorm:"column:total_orders" json:"total_orders"`
}

type InventoryMetrics struct {
	TotalStock   int64   `gorm:"column:total_stock" json:"total_stock"`
	AverageStock float64 `gorm:"column:average_stock" json:"average_stock"`
	LowStock     int64   `gorm:"column:low_stock" json:"low_stock"`
	OutOfStock   int64   `gorm:"column:out_of_stock" json:"out_of_stock"`
}

// CustomerPurchase is the per-customer reduction the store produces; recency
// and segment are derived later, at classification time.
type CustomerPurchase struct {
	CustomerID     snowflake.ID `gorm:"column:customer_id"`
	TotalSpent     float64      `gorm:"column:total_spent"`
	OrderCount     int64        `gorm:"column:order_count"`
	LastPurchaseAt time.Time    `gorm:"column:last_purchase_at"`
}

type CustomerSegment struct {
	CustomerID            snowflake.ID `json:"customer_id"`
	TotalSpent            float64      `json:"total_spent"`
	OrderCount            int64        `json:"order_count"`
	AverageOrderValue     float64      `json:"average_order_value"`
	LastPurchaseAt        time.Time    `json:"last_purchase_at"`
	DaysSinceLastPurchase float64      `json:"days_since_last_purchase"`
	Segment               string       `json:"segment"`
}

type CustomerAnalytics struct {
	TotalCustomers       int64             `json:"total_customers"`
	AverageLifetimeValue float64           `json:"average_lifetime_value"`
	Segments             []CustomerSegment `json:"segments"`
}

// KPIs are total functions over the aggregates: every zero denominator is
// defined as zero. ConversionRate is a fixed two-decimal string to match
// what the dashboard frontend renders.
type KPIs struct {
	AverageOrderValue float64 `json:"average_order_value"`
	ConversionRate    string  `json:"conversion_rate"`
	StockTurnoverRate float64 `json:"stock_turnover_rate"`
}

// Snapshot is the immutable dashboard aggregate. Inventory is nil when there
// are no products, mirroring an empty group reduction.
type Snapshot struct {
	ActiveUsers       int64             `json:"active_users"`
	TotalProducts     int64             `json:"total_products"`
	TotalRevenue      float64           `json:"total_revenue"`
	MonthlySales      []MonthlyBucket   `json:"monthly_sales"`
	Inventory         *InventoryMetrics `json:"inventory,omitempty"`
	CustomerAnalytics CustomerAnalytics `json:"customer_analytics"`
	KPIs              KPIs              `json:"kpis"`
	ComputedAt        time.Time         `json:"computed_at"`
}
