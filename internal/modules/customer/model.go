package customer

import (
	"time"

	"github.com/google/uuid"
)

// CustomerStatus gates whether new orders may be placed against a customer.
type CustomerStatus string

const (
	StatusActive   CustomerStatus = "ACTIVE"
	StatusInactive CustomerStatus = "INACTIVE"
)

// Customer represents a business customer. TotalOrders counts linked order
// creations and is never decremented, even when orders are cancelled or
// deleted.
type Customer struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Organization string         `json:"organization,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Address      string         `json:"address,omitempty"`
	Status       CustomerStatus `json:"status"`
	TotalOrders  int            `json:"total_orders"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// CreateCustomerRequest is the payload for registering a customer.
type CreateCustomerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

// UpdateCustomerRequest is a partial update; only non-nil fields are applied.
type UpdateCustomerRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Organization *string `json:"organization,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	Status       *string `json:"status,omitempty"`
}
