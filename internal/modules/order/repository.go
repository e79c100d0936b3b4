package order

import "context"

// CustomerRef is the slice of a customer record the coordinator needs for
// its active-check.
type CustomerRef struct {
	ID     string
	Active bool
}

// Repository defines data access for orders plus the cross-table stock and
// customer operations the lifecycle coordinator drives in lockstep with
// order mutations.
type Repository interface {
	// CreateOrder persists a new order and its line items in one transaction.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with its line items.
	GetOrderByID(ctx context.Context, id string) (*Order, error)

	// ListOrders returns all orders, newest created first, items attached.
	ListOrders(ctx context.Context) ([]*Order, error)

	// UpdateOrder overwrites the order row and replaces its line items.
	UpdateOrder(ctx context.Context, o *Order) error

	// DeleteOrder removes the order and its line items.
	DeleteOrder(ctx context.Context, id string) error

	// DeductStock atomically takes qty units from an inventory item, failing
	// without effect when fewer than qty units are available. Returns
	// ErrItemNotFound / ErrInsufficientStock.
	DeductStock(ctx context.Context, inventoryID string, qty int) error

	// RestoreStock returns qty units to an inventory item. Items that no
	// longer exist are skipped silently.
	RestoreStock(ctx context.Context, inventoryID string, qty int) error

	// GetCustomer fetches the id and active flag of a customer.
	GetCustomer(ctx context.Context, id string) (*CustomerRef, error)

	// IncrementCustomerOrders adds one to a customer's total_orders counter.
	IncrementCustomerOrders(ctx context.Context, id string) error
}
