package service

import (
	"context"
	"fmt"

	"github.com/smallbiznis/shopdesk/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

func (s *Service) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	products, err := s.repo.ListProducts(ctx, s.db)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: products: %v", domain.ErrSnapshotUnavailable, err)
	}
	orders, err := s.repo.ListOrders(ctx, s.db)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: orders: %v", domain.ErrSnapshotUnavailable, err)
	}
	stores, err := s.repo.ListStores(ctx, s.db)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: stores: %v", domain.ErrSnapshotUnavailable, err)
	}
	categories, err := s.repo.ListCategories(ctx, s.db)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: categories: %v", domain.ErrSnapshotUnavailable, err)
	}

	s.log.Debug("catalog snapshot loaded",
		zap.Int("products", len(products)),
		zap.Int("orders", len(orders)),
		zap.Int("stores", len(stores)),
		zap.Int("categories", len(categories)),
	)

	return domain.Snapshot{
		Products:   products,
		Orders:     orders,
		Stores:     stores,
		Categories: categories,
	}, nil
}

// AutoMigrate creates the snapshot tables; only used for local sqlite setups and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Store{},
		&domain.Category{},
		&domain.Product{},
		&domain.Order{},
		&domain.LineItem{},
	)
}
