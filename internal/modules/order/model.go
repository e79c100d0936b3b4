package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// IsTerminal reports whether no further status transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// customPrefix marks line items not backed by inventory. Such items bypass
// all stock checks and stock movements.
const customPrefix = "custom-"

// Order represents a customer order. Contact fields are a snapshot taken at
// creation time, not live-synced to the customer record.
type Order struct {
	ID           uuid.UUID   `json:"id"`
	CustomerID   *uuid.UUID  `json:"customer_id,omitempty"`
	CustomerName string      `json:"customer_name"`
	Email        string      `json:"email"`
	Organization string      `json:"organization,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Status       OrderStatus `json:"status"`
	Items        []*LineItem `json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// LineItem is one (inventory item, quantity) pair within an order. The item
// name is a snapshot; InventoryID is either an inventory item UUID or a
// "custom-" sentinel id with no backing record.
type LineItem struct {
	InventoryID string `json:"inventory_id"`
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity"`
}

// IsCustom reports whether the line bypasses inventory entirely.
func (li *LineItem) IsCustom() bool {
	return strings.HasPrefix(li.InventoryID, customPrefix)
}

// CreateOrderRequest is the payload for placing a new order.
type CreateOrderRequest struct {
	CustomerID   string      `json:"customer_id,omitempty"`
	CustomerName string      `json:"customer_name"`
	Email        string      `json:"email"`
	Organization string      `json:"organization,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Items        []*LineItem `json:"items"`
}

// UpdateOrderRequest is a partial update. Items may only be replaced while
// the order is still PENDING; a status change is evaluated before items.
type UpdateOrderRequest struct {
	CustomerName *string     `json:"customer_name,omitempty"`
	Email        *string     `json:"email,omitempty"`
	Organization *string     `json:"organization,omitempty"`
	Phone        *string     `json:"phone,omitempty"`
	Status       *string     `json:"status,omitempty"`
	Items        []*LineItem `json:"items,omitempty"`
}
