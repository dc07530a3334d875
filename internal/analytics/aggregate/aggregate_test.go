package aggregate

import (
	"testing"
	"time"

	analytics "github.com/smallbiznis/shopdesk/internal/analytics/domain"
	catalog "github.com/smallbiznis/shopdesk/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTime = analytics.NewDateRange(
	time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 10, 30, 0, 0, time.UTC)
}

func settledOrder(id, customer int64, at time.Time, items ...catalog.LineItem) catalog.Order {
	return catalog.Order{
		ID:            id,
		CustomerID:    customer,
		CreatedAt:     at,
		Status:        catalog.OrderStatusDelivered,
		PaymentStatus: catalog.PaymentStatusPaid,
		LineItems:     items,
	}
}

type fixture struct {
	stores     []catalog.Store
	categories []catalog.Category
	products   []catalog.Product
	orders     []catalog.Order
}

func newFixture() fixture {
	return fixture{
		stores: []catalog.Store{
			{ID: 1, Name: "North"},
			{ID: 2, Name: "Central"},
			{ID: 3, Name: "South"},
		},
		categories: []catalog.Category{
			{ID: 10, Name: "Shoes"},
			{ID: 20, Name: "Bags"},
		},
		products: []catalog.Product{
			{ID: 100, Name: "Runner", CategoryID: 10, StoreID: 2, Price: 50, StockQuantity: 4},
			{ID: 101, Name: "Tote", CategoryID: 20, StoreID: 1, Price: 30, StockQuantity: 2},
			{ID: 102, Name: "Loafer", CategoryID: 10, StoreID: 3, Price: 80, StockQuantity: 0},
		},
		orders: []catalog.Order{
			settledOrder(1, 7, day(1), catalog.LineItem{ProductID: 100, Quantity: 2, Price: 50}),
			{
				ID: 2, CustomerID: 8, CreatedAt: day(2),
				Status: catalog.OrderStatusPending, PaymentStatus: catalog.PaymentStatusPending,
				LineItems: []catalog.LineItem{{ProductID: 101, Quantity: 3, Price: 30}},
			},
			settledOrder(3, 7, day(3), catalog.LineItem{ProductID: 999, Quantity: 1, Price: 1000}),
		},
	}
}

func TestComputeOverviewStats(t *testing.T) {
	f := newFixture()

	stats := ComputeOverviewStats(f.products, f.orders, allTime)

	assert.Equal(t, 3, stats.ProductCount)
	assert.Equal(t, int64(6), stats.TotalStockQuantity)
	assert.Equal(t, int64(4*50+2*30), stats.InventoryValue)
	assert.Equal(t, 2, stats.DistinctPayingCustomerCount)
	assert.Equal(t, int64(100+90+1000), stats.TotalRevenue)
}

func TestComputeOverviewStatsHonorsRange(t *testing.T) {
	f := newFixture()
	r := analytics.NewDateRange(day(2), day(2))

	stats := ComputeOverviewStats(f.products, f.orders, r)

	assert.Equal(t, int64(90), stats.TotalRevenue)
	assert.Equal(t, 1, stats.DistinctPayingCustomerCount)
	assert.Equal(t, 3, stats.ProductCount)
}

func TestTopStoresByRevenueKeepsZeroRevenueStoresInInputOrder(t *testing.T) {
	f := newFixture()

	ranked := TopStoresByRevenue(f.stores, f.orders, f.products, 3, allTime)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Central", ranked[0].StoreName)
	assert.Equal(t, int64(100), ranked[0].Revenue)
	assert.Equal(t, "North", ranked[1].StoreName)
	assert.Equal(t, int64(0), ranked[1].Revenue)
	assert.Equal(t, "South", ranked[2].StoreName)
	assert.Equal(t, int64(0), ranked[2].Revenue)
}

func TestTopStoresByRevenueTruncates(t *testing.T) {
	f := newFixture()

	ranked := TopStoresByRevenue(f.stores, f.orders, f.products, 1, allTime)

	require.Len(t, ranked, 1)
	assert.Equal(t, int64(2), ranked[0].StoreID)
}

func TestTopProductsByRevenueIgnoresStatus(t *testing.T) {
	f := newFixture()

	ranked := TopProductsByRevenue(f.products, f.categories, f.orders, 0, allTime)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Runner", ranked[0].ProductName)
	assert.Equal(t, "Shoes", ranked[0].CategoryName)
	assert.Equal(t, int64(100), ranked[0].Revenue)
	assert.Equal(t, "Tote", ranked[1].ProductName)
	assert.Equal(t, int64(3), ranked[1].UnitsSold)
	assert.Equal(t, int64(0), ranked[2].Revenue)
}

func TestTopCategoriesBySoldQuantity(t *testing.T) {
	f := newFixture()

	ranked := TopCategoriesBySoldQuantity(f.categories, f.products, f.orders, 5, allTime)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Bags", ranked[0].CategoryName)
	assert.Equal(t, int64(3), ranked[0].UnitsSold)
	assert.Equal(t, "Shoes", ranked[1].CategoryName)
	assert.Equal(t, int64(2), ranked[1].UnitsSold)
}

func TestDenominators(t *testing.T) {
	f := newFixture()

	assert.Equal(t, int64(1100), SettledRevenue(f.orders, allTime))
	assert.Equal(t, int64(6), UnitsSold(f.orders, allTime))
}

func TestAggregatorsDoNotMutateInputs(t *testing.T) {
	f := newFixture()
	before := append([]catalog.Store(nil), f.stores...)

	_ = TopStoresByRevenue(f.stores, f.orders, f.products, 0, allTime)

	assert.Equal(t, before, f.stores)
}
