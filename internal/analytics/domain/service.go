package domain

import "context"

// Service computes the dashboard view over a fresh catalog snapshot.
type Service interface {
	Dashboard(ctx context.Context, req DashboardRequest) (*Dashboard, error)
}

// DashboardRequest uses the default range when Range is zero and the
// configured top limit when Limit is not positive.
type DashboardRequest struct {
	Range DateRange
	Limit int
}

type Dashboard struct {
	Start         string             `json:"start"`
	End           string             `json:"end"`
	Overview      OverviewStats      `json:"overview"`
	TopStores     []StoreRevenue     `json:"top_stores"`
	TopProducts   []ProductRevenue   `json:"top_products"`
	TopCategories []CategoryQuantity `json:"top_categories"`
	Series        []JoinedPoint      `json:"series"`
}
