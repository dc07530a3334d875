// Package aggregate derives dashboard and export metrics from catalog snapshots.
//
// Every function here is pure: inputs are never mutated and the date range is
// assumed to be validated by the caller.
package aggregate

import (
	"sort"

	analytics "github.com/smallbiznis/shopdesk/internal/analytics/domain"
	catalog "github.com/smallbiznis/shopdesk/internal/catalog/domain"
)

// ComputeOverviewStats summarizes inventory over all products and revenue over orders in r.
func ComputeOverviewStats(products []catalog.Product, orders []catalog.Order, r analytics.DateRange) analytics.OverviewStats {
	stats := analytics.OverviewStats{ProductCount: len(products)}
	for _, p := range products {
		stats.TotalStockQuantity += p.StockQuantity
		stats.InventoryValue += p.Price * p.StockQuantity
	}

	customers := make(map[int64]struct{})
	for _, o := range orders {
		if !r.Contains(o.CreatedAt) {
			continue
		}
		stats.TotalRevenue += o.Revenue()
		customers[o.CustomerID] = struct{}{}
	}
	stats.DistinctPayingCustomerCount = len(customers)
	return stats
}

// TopStoresByRevenue ranks every store by revenue from delivered, paid orders in r.
// Line items whose product is unknown contribute nothing.
func TopStoresByRevenue(stores []catalog.Store, orders []catalog.Order, products []catalog.Product, limit int, r analytics.DateRange) []analytics.StoreRevenue {
	storeByProduct := make(map[int64]int64, len(products))
	for _, p := range products {
		storeByProduct[p.ID] = p.StoreID
	}

	revenue := make(map[int64]int64, len(stores))
	for _, o := range orders {
		if !o.Settled() || !r.Contains(o.CreatedAt) {
			continue
		}
		for _, item := range o.LineItems {
			storeID, ok := storeByProduct[item.ProductID]
			if !ok {
				continue
			}
			revenue[storeID] += item.Subtotal()
		}
	}

	out := make([]analytics.StoreRevenue, 0, len(stores))
	for _, s := range stores {
		out = append(out, analytics.StoreRevenue{
			StoreID:   s.ID,
			StoreName: s.Name,
			Revenue:   revenue[s.ID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return truncate(out, limit)
}

// TopProductsByRevenue ranks every product by revenue from all orders in r, regardless of status.
func TopProductsByRevenue(products []catalog.Product, categories []catalog.Category, orders []catalog.Order, limit int, r analytics.DateRange) []analytics.ProductRevenue {
	categoryNames := categoryNameIndex(categories)

	type tally struct {
		units   int64
		revenue int64
	}
	totals := make(map[int64]tally, len(products))
	for _, o := range orders {
		if !r.Contains(o.CreatedAt) {
			continue
		}
		for _, item := range o.LineItems {
			t := totals[item.ProductID]
			t.units += int64(item.Quantity)
			t.revenue += item.Subtotal()
			totals[item.ProductID] = t
		}
	}

	out := make([]analytics.ProductRevenue, 0, len(products))
	for _, p := range products {
		t := totals[p.ID]
		out = append(out, analytics.ProductRevenue{
			ProductID:    p.ID,
			ProductName:  p.Name,
			CategoryName: categoryNames[p.CategoryID],
			UnitsSold:    t.units,
			Revenue:      t.revenue,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return truncate(out, limit)
}

// TopCategoriesBySoldQuantity ranks every category by units sold in r via product membership.
func TopCategoriesBySoldQuantity(categories []catalog.Category, products []catalog.Product, orders []catalog.Order, limit int, r analytics.DateRange) []analytics.CategoryQuantity {
	categoryByProduct := make(map[int64]int64, len(products))
	for _, p := range products {
		categoryByProduct[p.ID] = p.CategoryID
	}

	units := make(map[int64]int64, len(categories))
	for _, o := range orders {
		if !r.Contains(o.CreatedAt) {
			continue
		}
		for _, item := range o.LineItems {
			categoryID, ok := categoryByProduct[item.ProductID]
			if !ok {
				continue
			}
			units[categoryID] += int64(item.Quantity)
		}
	}

	out := make([]analytics.CategoryQuantity, 0, len(categories))
	for _, c := range categories {
		out = append(out, analytics.CategoryQuantity{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			UnitsSold:    units[c.ID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UnitsSold > out[j].UnitsSold })
	return truncate(out, limit)
}

// SettledRevenue is the denominator for store revenue shares.
func SettledRevenue(orders []catalog.Order, r analytics.DateRange) int64 {
	var total int64
	for _, o := range orders {
		if o.Settled() && r.Contains(o.CreatedAt) {
			total += o.Revenue()
		}
	}
	return total
}

// UnitsSold counts every unit ordered in r.
func UnitsSold(orders []catalog.Order, r analytics.DateRange) int64 {
	var total int64
	for _, o := range orders {
		if !r.Contains(o.CreatedAt) {
			continue
		}
		for _, item := range o.LineItems {
			total += int64(item.Quantity)
		}
	}
	return total
}

func categoryNameIndex(categories []catalog.Category) map[int64]string {
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
