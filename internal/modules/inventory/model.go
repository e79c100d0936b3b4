package inventory

import (
	"time"

	"github.com/google/uuid"
)

// ItemStatus is the derived stock status of an inventory item. It is a cache
// of CalculateStatus over the item's own fields, recomputed on every read
// path that has write access.
type ItemStatus string

const (
	StatusInStock    ItemStatus = "IN_STOCK"
	StatusLowStock   ItemStatus = "LOW_STOCK"
	StatusOutOfStock ItemStatus = "OUT_OF_STOCK"
	StatusExpired    ItemStatus = "EXPIRED"
)

// Item represents a stocked inventory item.
type Item struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category,omitempty"`
	Quantity   int        `json:"quantity"`
	Threshold  int        `json:"threshold"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Status     ItemStatus `json:"status"`
	Barcode    string     `json:"barcode"`
	ImageURL   string     `json:"image_url,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateItemRequest is the payload for adding a new item.
type CreateItemRequest struct {
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Quantity   int        `json:"quantity"`
	Threshold  *int       `json:"threshold,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Barcode    string     `json:"barcode"`
	ImageURL   string     `json:"image_url,omitempty"`
}

// UpdateItemRequest is a partial update; only non-nil fields are applied.
// A nil ExpiryDate means "leave unchanged"; set ClearExpiry to remove an
// expiry date from an item.
type UpdateItemRequest struct {
	Name        *string    `json:"name,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Quantity    *int       `json:"quantity,omitempty"`
	Threshold   *int       `json:"threshold,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	ClearExpiry bool       `json:"clear_expiry,omitempty"`
	Barcode     *string    `json:"barcode,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
}
