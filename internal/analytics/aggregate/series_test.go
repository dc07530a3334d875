package aggregate

import (
	"testing"
	"time"

	analytics "github.com/smallbiznis/shopdesk/internal/analytics/domain"
	catalog "github.com/smallbiznis/shopdesk/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucket(d int, v int64) analytics.DateBucket {
	return analytics.DateBucket{Date: time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC), Value: v}
}

func TestJoinSeriesIsAnchoredOnOrderCounts(t *testing.T) {
	counts := []analytics.DateBucket{bucket(3, 1), bucket(1, 2), bucket(2, 5)}
	revenue := []analytics.DateBucket{bucket(1, 300), bucket(3, 150), bucket(9, 999)}

	joined := JoinSeries(counts, revenue)

	require.Len(t, joined, len(counts))
	assert.Equal(t, 1, joined[0].Date.Day())
	assert.Equal(t, int64(2), joined[0].OrderCount)
	assert.Equal(t, int64(300), joined[0].Revenue)
	assert.Equal(t, 2, joined[1].Date.Day())
	assert.Equal(t, int64(0), joined[1].Revenue)
	assert.Equal(t, 3, joined[2].Date.Day())
	assert.Equal(t, int64(150), joined[2].Revenue)
}

func TestJoinSeriesEmpty(t *testing.T) {
	assert.Empty(t, JoinSeries(nil, []analytics.DateBucket{bucket(1, 10)}))
}

func TestDailyBuckets(t *testing.T) {
	orders := []catalog.Order{
		{ID: 1, CreatedAt: time.Date(2024, 6, 2, 23, 0, 0, 0, time.UTC), LineItems: []catalog.LineItem{{Quantity: 1, Price: 40}}},
		{ID: 2, CreatedAt: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), LineItems: []catalog.LineItem{{Quantity: 2, Price: 5}}},
		{ID: 3, CreatedAt: time.Date(2024, 6, 2, 1, 0, 0, 0, time.UTC)},
		{ID: 4, CreatedAt: time.Date(2024, 7, 1, 1, 0, 0, 0, time.UTC), LineItems: []catalog.LineItem{{Quantity: 1, Price: 1}}},
	}
	r := analytics.NewDateRange(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))

	counts := OrderCountsByDate(orders, r)
	revenue := RevenueByDate(orders, r)

	require.Len(t, counts, 2)
	assert.Equal(t, bucket(1, 1), counts[0])
	assert.Equal(t, bucket(2, 2), counts[1])
	require.Len(t, revenue, 2)
	assert.Equal(t, bucket(1, 10), revenue[0])
	assert.Equal(t, bucket(2, 40), revenue[1])
}
