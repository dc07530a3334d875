package service

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/shopdesk/internal/catalog/domain"
	"github.com/smallbiznis/shopdesk/internal/catalog/repository"
	"github.com/smallbiznis/shopdesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func setupCatalogDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(conn))
	return conn
}

func TestSnapshotLoadsOrdersWithLineItems(t *testing.T) {
	conn := setupCatalogDB(t)

	require.NoError(t, conn.Create(&domain.Store{ID: 1, Name: "Downtown"}).Error)
	require.NoError(t, conn.Create(&domain.Category{ID: 7, Name: "Shoes"}).Error)
	require.NoError(t, conn.Create(&domain.Product{ID: 10, Name: "Runner", CategoryID: 7, StoreID: 1, Price: 4500, StockQuantity: 3}).Error)

	older := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)
	require.NoError(t, conn.Create(&domain.Order{
		ID: 200, CustomerID: 5, Status: domain.OrderStatusDelivered, PaymentStatus: domain.PaymentStatusPaid, CreatedAt: newer,
		LineItems: []domain.LineItem{{ID: 2, ProductID: 10, Quantity: 1, Price: 4500}},
	}).Error)
	require.NoError(t, conn.Create(&domain.Order{
		ID: 100, CustomerID: 6, Status: domain.OrderStatusPending, PaymentStatus: domain.PaymentStatusPending, CreatedAt: older,
		LineItems: []domain.LineItem{{ID: 1, ProductID: 10, Quantity: 2, Price: 4500}, {ID: 3, ProductID: 99, Quantity: 1, Price: 100}},
	}).Error)

	svc := New(Params{DB: conn, Log: zaptest.NewLogger(t), Repo: repository.Provide()})
	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Orders, 2)
	assert.Equal(t, int64(100), snap.Orders[0].ID)
	assert.Len(t, snap.Orders[0].LineItems, 2)
	assert.Equal(t, int64(9100), snap.Orders[0].Revenue())
	assert.Equal(t, int64(4500), snap.Orders[1].Revenue())

	require.Len(t, snap.Products, 1)
	assert.Equal(t, int64(3), snap.Products[0].StockQuantity)
	assert.Len(t, snap.Stores, 1)
	assert.Len(t, snap.Categories, 1)
}

func TestSnapshotWrapsRepositoryErrors(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	svc := New(Params{DB: conn, Log: zaptest.NewLogger(t), Repo: repository.Provide()})
	_, err = svc.Snapshot(context.Background())

	assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)
}
