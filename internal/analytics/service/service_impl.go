package service

import (
	"context"

	"github.com/smallbiznis/shopdesk/internal/analytics/aggregate"
	"github.com/smallbiznis/shopdesk/internal/analytics/domain"
	catalog "github.com/smallbiznis/shopdesk/internal/catalog/domain"
	"github.com/smallbiznis/shopdesk/internal/clock"
	"github.com/smallbiznis/shopdesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Clock   clock.Clock
	Config  *config.ExportConfigHolder
	Catalog catalog.Service
}

type Service struct {
	log     *zap.Logger
	clock   clock.Clock
	cfg     *config.ExportConfigHolder
	catalog catalog.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("analytics.service"),
		clock:   p.Clock,
		cfg:     p.Config,
		catalog: p.Catalog,
	}
}

func (s *Service) Dashboard(ctx context.Context, req domain.DashboardRequest) (*domain.Dashboard, error) {
	cfg := s.cfg.Get()
	today := clock.Today(s.clock)

	r := req.Range
	if r.Start.IsZero() && r.End.IsZero() {
		r = domain.LastDays(today, cfg.DefaultRangeDays)
	}
	if err := r.Validate(cfg.EpochDate(), today); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = cfg.TopLimit
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		Start:         r.StartLabel(),
		End:           r.EndLabel(),
		Overview:      aggregate.ComputeOverviewStats(snap.Products, snap.Orders, r),
		TopStores:     aggregate.TopStoresByRevenue(snap.Stores, snap.Orders, snap.Products, limit, r),
		TopProducts:   aggregate.TopProductsByRevenue(snap.Products, snap.Categories, snap.Orders, limit, r),
		TopCategories: aggregate.TopCategoriesBySoldQuantity(snap.Categories, snap.Products, snap.Orders, limit, r),
		Series: aggregate.JoinSeries(
			aggregate.OrderCountsByDate(snap.Orders, r),
			aggregate.RevenueByDate(snap.Orders, r),
		),
	}, nil
}
