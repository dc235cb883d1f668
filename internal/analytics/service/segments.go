package service

import (
	"time"

	"github.com/smallbiznis/compass/internal/analytics/domain"
)

const daySeconds = 24 * 60 * 60

// segmentRules is evaluated top-down; the first match wins. The order is
// load-bearing: spend only promotes to VIP inside the seven-day window, so a
// big spender whose last purchase is ten days old lands in Regular.
var segmentRules = []struct {
	segment string
	match   func(totalSpent, daysSince float64) bool
}{
	{domain.SegmentVIP, func(totalSpent, daysSince float64) bool {
		return totalSpent >= 1000 && daysSince < 7
	}},
	{domain.SegmentActive, func(_, daysSince float64) bool {
		return daysSince < 7
	}},
	{domain.SegmentRegular, func(_, daysSince float64) bool {
		return daysSince < 30
	}},
}

func classifySegments(purchases []domain.CustomerPurchase, now time.Time) []domain.CustomerSegment {
	segments := make([]domain.CustomerSegment, 0, len(purchases))
	for _, p := range purchases {
		daysSince := now.Sub(p.LastPurchaseAt).Seconds() / daySeconds

		var averageOrderValue float64
		if p.OrderCount > 0 {
			averageOrderValue = p.TotalSpent / float64(p.OrderCount)
		}

		segments = append(segments, domain.CustomerSegment{
			CustomerID:            p.CustomerID,
			TotalSpent:            p.TotalSpent,
			OrderCount:            p.OrderCount,
			AverageOrderValue:     averageOrderValue,
			LastPurchaseAt:        p.LastPurchaseAt,
			DaysSinceLastPurchase: daysSince,
			Segment:               segmentFor(p.TotalSpent, daysSince),
		})
	}
	return segments
}

func segmentFor(totalSpent, daysSince float64) string {
	for _, rule := range segmentRules {
		if rule.match(totalSpent, daysSince) {
			return rule.segment
		}
	}
	return domain.SegmentAtRisk
}

func summarizeCustomers(segments []domain.CustomerSegment) domain.CustomerAnalytics {
	summary := domain.CustomerAnalytics{
		TotalCustomers: int64(len(segments)),
		Segments:       segments,
	}
	if len(segments) == 0 {
		return summary
	}

	var totalSpent float64
	for _, segment := range segments {
		totalSpent += segment.TotalSpent
	}
	summary.AverageLifetimeValue = totalSpent / float64(len(segments))
	return summary
}
