package rows

import (
	"strconv"

	analytics "github.com/smallbiznis/shopdesk/internal/analytics/domain"
)

var (
	OverviewColumns      = []string{"Metric", "Value"}
	TopStoresColumns     = []string{"Rank", "Store", "Revenue", "Share"}
	TopProductsColumns   = []string{"Rank", "Product", "Category", "Units Sold", "Revenue", "Share"}
	TopCategoriesColumns = []string{"Rank", "Category", "Units Sold", "Share"}
	DateSeriesColumns    = []string{"Date", "Order Count", "Revenue"}
)

// Builder turns aggregator output into row sets with money and share
// formatting applied.
type Builder struct {
	money *MoneyFormatter
}

func NewBuilder(money *MoneyFormatter) *Builder {
	return &Builder{money: money}
}

func (b *Builder) Overview(name string, stats analytics.OverviewStats) (RowSet, error) {
	return NewRowSet(name, OverviewColumns, []MetricRow{
		{Text("Products"), Int(int64(stats.ProductCount))},
		{Text("Total Stock Quantity"), Int(stats.TotalStockQuantity)},
		{Text("Inventory Value"), Text(b.money.Format(stats.InventoryValue))},
		{Text("Paying Customers"), Int(int64(stats.DistinctPayingCustomerCount))},
		{Text("Total Revenue"), Text(b.money.Format(stats.TotalRevenue))},
	})
}

// TopStores computes each share against total.
func (b *Builder) TopStores(name string, items []analytics.StoreRevenue, total int64) (RowSet, error) {
	out := make([]MetricRow, 0, len(items))
	for i, item := range items {
		out = append(out, MetricRow{
			Int(int64(i + 1)),
			Text(nameOrPlaceholder(item.StoreName)),
			Text(b.money.Format(item.Revenue)),
			Text(Percent(item.Revenue, total)),
		})
	}
	return NewRowSet(name, TopStoresColumns, out)
}

func (b *Builder) TopProducts(name string, items []analytics.ProductRevenue, total int64) (RowSet, error) {
	out := make([]MetricRow, 0, len(items))
	for i, item := range items {
		out = append(out, MetricRow{
			Int(int64(i + 1)),
			Text(nameOrPlaceholder(item.ProductName)),
			Text(nameOrPlaceholder(item.CategoryName)),
			Int(item.UnitsSold),
			Text(b.money.Format(item.Revenue)),
			Text(Percent(item.Revenue, total)),
		})
	}
	return NewRowSet(name, TopProductsColumns, out)
}

func (b *Builder) TopCategories(name string, items []analytics.CategoryQuantity, totalUnits int64) (RowSet, error) {
	out := make([]MetricRow, 0, len(items))
	for i, item := range items {
		out = append(out, MetricRow{
			Int(int64(i + 1)),
			Text(nameOrPlaceholder(item.CategoryName)),
			Int(item.UnitsSold),
			Text(Percent(item.UnitsSold, totalUnits)),
		})
	}
	return NewRowSet(name, TopCategoriesColumns, out)
}

func (b *Builder) DateSeries(name string, points []analytics.JoinedPoint) (RowSet, error) {
	out := make([]MetricRow, 0, len(points))
	for _, p := range points {
		out = append(out, MetricRow{
			Text(p.Date.UTC().Format(analytics.DateLayout)),
			Int(p.OrderCount),
			Text(b.money.Format(p.Revenue)),
		})
	}
	return NewRowSet(name, DateSeriesColumns, out)
}

// Summary describes a row set for artifact listings, e.g. "Top Stores (3 rows)".
func Summary(s RowSet) string {
	if len(s.Rows) == 1 {
		return s.Name + " (1 row)"
	}
	return s.Name + " (" + strconv.Itoa(len(s.Rows)) + " rows)"
}
