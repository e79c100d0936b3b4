package reports

import "time"

// Summary is the admin dashboard snapshot.
type Summary struct {
	TotalItems      int            `json:"total_items"`
	TotalOrders     int            `json:"total_orders"`
	TotalCustomers  int            `json:"total_customers"`
	OrdersByStatus  map[string]int `json:"orders_by_status"`
	LowStockItems   int            `json:"low_stock_items"`
	OutOfStockItems int            `json:"out_of_stock_items"`
	RecentOrders    []*RecentOrder `json:"recent_orders"`
}

// RecentOrder is a compact row for the dashboard's latest-orders list.
type RecentOrder struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
