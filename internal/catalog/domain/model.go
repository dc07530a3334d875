package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusReturned   OrderStatus = "RETURNED"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type Store struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:text;not null"`
}

func (Store) TableName() string { return "stores" }

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:text;not null"`
}

func (Category) TableName() string { return "categories" }

// Product prices are integer minor currency units.
type Product struct {
	ID            int64  `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"type:text;not null"`
	CategoryID    int64  `json:"category_id" gorm:"column:category_id;index"`
	StoreID       int64  `json:"store_id" gorm:"column:store_id;index"`
	Price         int64  `json:"price" gorm:"not null;default:0"`
	StockQuantity int64  `json:"stock_quantity" gorm:"column:stock_quantity;not null;default:0"`
}

func (Product) TableName() string { return "products" }

type Order struct {
	ID            int64         `json:"id" gorm:"primaryKey"`
	CustomerID    int64         `json:"customer_id" gorm:"column:customer_id;index"`
	Status        OrderStatus   `json:"status" gorm:"type:text;not null"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"column:payment_status;type:text;not null"`
	CreatedAt     time.Time     `json:"created_at" gorm:"not null;index"`
	LineItems     []LineItem    `json:"line_items" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }

// Revenue is derived from line items on every call and never stored.
func (o Order) Revenue() int64 {
	var total int64
	for _, item := range o.LineItems {
		total += item.Subtotal()
	}
	return total
}

// Settled reports whether the order counts toward store revenue.
func (o Order) Settled() bool {
	return o.Status == OrderStatusDelivered && o.PaymentStatus == PaymentStatusPaid
}

type LineItem struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	OrderID   int64  `json:"order_id" gorm:"column:order_id;index"`
	ProductID int64  `json:"product_id" gorm:"column:product_id;index"`
	Quantity  uint32 `json:"quantity" gorm:"not null"`
	Price     int64  `json:"price" gorm:"not null"`
}

func (LineItem) TableName() string { return "order_line_items" }

func (li LineItem) Subtotal() int64 {
	return int64(li.Quantity) * li.Price
}

// Snapshot is the read-only, fully materialized input of the analytics pipeline.
type Snapshot struct {
	Products   []Product
	Orders     []Order
	Stores     []Store
	Categories []Category
}
