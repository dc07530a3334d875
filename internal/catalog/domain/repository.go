package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListProducts(ctx context.Context, db *gorm.DB) ([]Product, error)
	ListOrders(ctx context.Context, db *gorm.DB) ([]Order, error)
	ListStores(ctx context.Context, db *gorm.DB) ([]Store, error)
	ListCategories(ctx context.Context, db *gorm.DB) ([]Category, error)
}
