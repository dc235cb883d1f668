package service

import (
	"strconv"

	"github.com/smallbiznis/compass/internal/analytics/domain"
)

// deriveKPIs is a total function: every zero denominator yields zero (or the
// fixed "0.00" string for the conversion rate).
func deriveKPIs(revenue domain.RevenueTotals, activeUsers, totalStock int64) domain.KPIs {
	kpis := domain.KPIs{ConversionRate: "0.00"}

	if revenue.TotalOrders > 0 {
		kpis.AverageOrderValue = revenue.TotalRevenue / float64(revenue.TotalOrders)
	}
	if activeUsers > 0 {
		rate := float64(revenue.TotalOrders) / float64(activeUsers) * 100
		kpis.ConversionRate = strconv.FormatFloat(rate, 'f', 2, 64)
	}
	if totalStock > 0 {
		kpis.StockTurnoverRate = revenue.TotalRevenue / float64(totalStock)
	}
	return kpis
}
