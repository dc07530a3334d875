package service

import (
	"fmt"

	"github.com/smallbiznis/shopdesk/internal/analytics/aggregate"
	analytics "github.com/smallbiznis/shopdesk/internal/analytics/domain"
	catalog "github.com/smallbiznis/shopdesk/internal/catalog/domain"
	"github.com/smallbiznis/shopdesk/internal/export/domain"
	"github.com/smallbiznis/shopdesk/internal/export/rows"
)

// buildRowSets aggregates only the selected categories, in selection order.
func buildRowSets(b *rows.Builder, snap catalog.Snapshot, selection []domain.Category, r analytics.DateRange, limit int) ([]rows.RowSet, error) {
	sets := make([]rows.RowSet, 0, len(selection))
	for _, category := range selection {
		set, err := buildRowSet(b, snap, category, r, limit)
		if err != nil {
			return nil, fmt.Errorf("build %s rows: %w", category, err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func buildRowSet(b *rows.Builder, snap catalog.Snapshot, category domain.Category, r analytics.DateRange, limit int) (rows.RowSet, error) {
	name := category.Label()
	switch category {
	case domain.CategoryOverview:
		return b.Overview(name, aggregate.ComputeOverviewStats(snap.Products, snap.Orders, r))
	case domain.CategoryTopStores:
		ranked := aggregate.TopStoresByRevenue(snap.Stores, snap.Orders, snap.Products, limit, r)
		return b.TopStores(name, ranked, aggregate.SettledRevenue(snap.Orders, r))
	case domain.CategoryTopProducts:
		ranked := aggregate.TopProductsByRevenue(snap.Products, snap.Categories, snap.Orders, limit, r)
		total := aggregate.ComputeOverviewStats(nil, snap.Orders, r).TotalRevenue
		return b.TopProducts(name, ranked, total)
	case domain.CategoryTopCategories:
		ranked := aggregate.TopCategoriesBySoldQuantity(snap.Categories, snap.Products, snap.Orders, limit, r)
		return b.TopCategories(name, ranked, aggregate.UnitsSold(snap.Orders, r))
	case domain.CategoryDateSeries:
		joined := aggregate.JoinSeries(
			aggregate.OrderCountsByDate(snap.Orders, r),
			aggregate.RevenueByDate(snap.Orders, r),
		)
		return b.DateSeries(name, joined)
	default:
		return rows.RowSet{}, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, category)
	}
}
