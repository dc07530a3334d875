package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/shopdesk/internal/catalog/domain"
	"gorm.io/gorm"
)

// DemoDays is how many days of order history the demo catalog spans, ending at today.
const DemoDays = 14

var (
	demoStores     = []string{"Downtown", "Harbor", "Uptown"}
	demoCategories = []string{"Footwear", "Outerwear", "Accessories", "Café Goods"}
)

type demoProduct struct {
	name     string
	category int
	store    int
	price    int64
	stock    int64
}

var demoProducts = []demoProduct{
	{name: "Trail Runner", category: 0, store: 0, price: 8900, stock: 40},
	{name: "City Loafer", category: 0, store: 1, price: 12500, stock: 12},
	{name: "Rain Shell", category: 1, store: 0, price: 15900, stock: 8},
	{name: "Wool Parka", category: 1, store: 2, price: 24900, stock: 5},
	{name: "Leather Belt", category: 2, store: 1, price: 3500, stock: 60},
	{name: "Crème Brûlée Tin", category: 3, store: 2, price: 1200, stock: 100},
}

var (
	demoStatuses = []catalogdomain.OrderStatus{
		catalogdomain.OrderStatusDelivered,
		catalogdomain.OrderStatusShipped,
		catalogdomain.OrderStatusDelivered,
		catalogdomain.OrderStatusCancelled,
		catalogdomain.OrderStatusDelivered,
		catalogdomain.OrderStatusReturned,
	}
	demoPayments = []catalogdomain.PaymentStatus{
		catalogdomain.PaymentStatusPaid,
		catalogdomain.PaymentStatusPaid,
		catalogdomain.PaymentStatusPaid,
		catalogdomain.PaymentStatusFailed,
		catalogdomain.PaymentStatusPaid,
		catalogdomain.PaymentStatusRefunded,
	}
)

// EnsureDemoCatalog fills an empty catalog with a small deterministic data set.
// It reports false without writing when any store already exists.
func EnsureDemoCatalog(db *gorm.DB, node *snowflake.Node, today time.Time) (bool, error) {
	if db == nil {
		return false, errors.New("seed database handle is required")
	}
	if node == nil {
		return false, errors.New("seed id generator is required")
	}

	ctx := context.Background()
	seeded := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.Store{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		stores := make([]catalogdomain.Store, 0, len(demoStores))
		for _, name := range demoStores {
			stores = append(stores, catalogdomain.Store{ID: node.Generate().Int64(), Name: name})
		}
		if err := tx.Create(&stores).Error; err != nil {
			return err
		}

		categories := make([]catalogdomain.Category, 0, len(demoCategories))
		for _, name := range demoCategories {
			categories = append(categories, catalogdomain.Category{ID: node.Generate().Int64(), Name: name})
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		products := make([]catalogdomain.Product, 0, len(demoProducts))
		for _, p := range demoProducts {
			products = append(products, catalogdomain.Product{
				ID:            node.Generate().Int64(),
				Name:          p.name,
				CategoryID:    categories[p.category].ID,
				StoreID:       stores[p.store].ID,
				Price:         p.price,
				StockQuantity: p.stock,
			})
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		orders := demoOrders(node, products, today)
		if err := tx.Create(&orders).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	return seeded, err
}

// demoOrders places one or two orders per day, skipping every fourth day so
// the date series has gaps.
func demoOrders(node *snowflake.Node, products []catalogdomain.Product, today time.Time) []catalogdomain.Order {
	start := today.AddDate(0, 0, -(DemoDays - 1))
	orders := make([]catalogdomain.Order, 0, DemoDays*2)
	seq := 0
	for day := 0; day < DemoDays; day++ {
		if day%4 == 3 {
			continue
		}
		perDay := 1 + day%2
		for n := 0; n < perDay; n++ {
			product := products[seq%len(products)]
			companion := products[(seq+2)%len(products)]
			orders = append(orders, catalogdomain.Order{
				ID:            node.Generate().Int64(),
				CustomerID:    int64(1000 + seq%5),
				Status:        demoStatuses[seq%len(demoStatuses)],
				PaymentStatus: demoPayments[seq%len(demoPayments)],
				CreatedAt:     start.AddDate(0, 0, day).Add(time.Duration(9+n*4) * time.Hour),
				LineItems: []catalogdomain.LineItem{
					{ID: node.Generate().Int64(), ProductID: product.ID, Quantity: uint32(1 + seq%3), Price: product.Price},
					{ID: node.Generate().Int64(), ProductID: companion.ID, Quantity: 1, Price: companion.Price},
				},
			})
			seq++
		}
	}
	return orders
}
