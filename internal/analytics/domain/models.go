package domain

import "time"

type OverviewStats struct {
	ProductCount                int   `json:"product_count"`
	TotalStockQuantity          int64 `json:"total_stock_quantity"`
	InventoryValue              int64 `json:"inventory_value"`
	DistinctPayingCustomerCount int   `json:"distinct_paying_customer_count"`
	TotalRevenue                int64 `json:"total_revenue"`
}

type StoreRevenue struct {
	StoreID   int64  `json:"store_id"`
	StoreName string `json:"store_name"`
	Revenue   int64  `json:"revenue"`
}

type ProductRevenue struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	CategoryName string `json:"category_name"`
	UnitsSold    int64  `json:"units_sold"`
	Revenue      int64  `json:"revenue"`
}

type CategoryQuantity struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	UnitsSold    int64  `json:"units_sold"`
}

// DateBucket holds one day's value of a daily series.
type DateBucket struct {
	Date  time.Time `json:"date"`
	Value int64     `json:"value"`
}

type JoinedPoint struct {
	Date       time.Time `json:"date"`
	OrderCount int64     `json:"order_count"`
	Revenue    int64     `json:"revenue"`
}
