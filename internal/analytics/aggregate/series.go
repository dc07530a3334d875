package aggregate

import (
	"sort"
	"time"

	analytics "github.com/smallbiznis/shopdesk/internal/analytics/domain"
	catalog "github.com/smallbiznis/shopdesk/internal/catalog/domain"
)

// OrderCountsByDate buckets orders in r by UTC creation day.
func OrderCountsByDate(orders []catalog.Order, r analytics.DateRange) []analytics.DateBucket {
	return bucketByDay(orders, r, func(catalog.Order) int64 { return 1 })
}

// RevenueByDate buckets derived order revenue in r by UTC creation day.
func RevenueByDate(orders []catalog.Order, r analytics.DateRange) []analytics.DateBucket {
	return bucketByDay(orders, r, catalog.Order.Revenue)
}

func bucketByDay(orders []catalog.Order, r analytics.DateRange, value func(catalog.Order) int64) []analytics.DateBucket {
	totals := make(map[time.Time]int64)
	for _, o := range orders {
		if !r.Contains(o.CreatedAt) {
			continue
		}
		totals[dayOf(o.CreatedAt)] += value(o)
	}

	out := make([]analytics.DateBucket, 0, len(totals))
	for day, v := range totals {
		out = append(out, analytics.DateBucket{Date: day, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// JoinSeries aligns revenue onto the order-count series by date.
//
// The join is anchored on orderCounts: a date with revenue but no order count is
// dropped, and a missing revenue defaults to zero. Output is ascending by date.
func JoinSeries(orderCounts, revenue []analytics.DateBucket) []analytics.JoinedPoint {
	revenueByDay := make(map[time.Time]int64, len(revenue))
	for _, b := range revenue {
		revenueByDay[dayOf(b.Date)] += b.Value
	}

	out := make([]analytics.JoinedPoint, 0, len(orderCounts))
	for _, b := range orderCounts {
		day := dayOf(b.Date)
		out = append(out, analytics.JoinedPoint{
			Date:       day,
			OrderCount: b.Value,
			Revenue:    revenueByDay[day],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
