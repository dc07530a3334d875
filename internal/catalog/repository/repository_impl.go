package repository

import (
	"context"

	"github.com/smallbiznis/shopdesk/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListProducts(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, category_id, store_id, price, stock_quantity
		 FROM products ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListOrders returns every order with its line items, oldest first.
func (r *repo) ListOrders(ctx context.Context, db *gorm.DB) ([]domain.Order, error) {
	var items []domain.Order
	err := db.WithContext(ctx).
		Model(&domain.Order{}).
		Preload("LineItems", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id ASC")
		}).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListStores(ctx context.Context, db *gorm.DB) ([]domain.Store, error) {
	var items []domain.Store
	err := db.WithContext(ctx).Raw(
		`SELECT id, name FROM stores ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	var items []domain.Category
	err := db.WithContext(ctx).Raw(
		`SELECT id, name FROM categories ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
