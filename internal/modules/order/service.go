package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when no order matches the given id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrItemNotFound is returned when a line item references a missing
	// inventory record.
	ErrItemNotFound = errors.New("inventory item not found")
	// ErrCustomerNotFound is returned when the referenced customer is missing.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrInsufficientStock is returned when a line item asks for more units
	// than are available.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidTransition is returned for status changes out of a terminal
	// state and for line-item edits on a non-PENDING order.
	ErrInvalidTransition = errors.New("invalid order state transition")
	// ErrInactiveCustomer is returned when creating an order against a
	// customer that is not ACTIVE.
	ErrInactiveCustomer = errors.New("customer is not active")
)

// Service is the order lifecycle coordinator. It is the only legitimate
// writer of order records and the only caller that moves inventory stock in
// lockstep with order state.
//
// Stock is deducted eagerly at creation time and restored as the
// compensating action on cancel and delete. The per-line deduction loop is
// sequential and not transactional: when line N fails, lines 1..N-1 stay
// deducted. Operators reconcile such partial applications manually.
type Service interface {
	// CreateOrder validates the lines, deducts stock, persists the order as
	// PENDING and bumps the linked customer's order counter.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)

	// GetOrder retrieves a full order by UUID.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListOrders returns all orders, newest first.
	ListOrders(ctx context.Context) ([]*Order, error)

	// UpdateOrder applies a status transition, line replacement and/or
	// contact changes, moving stock accordingly.
	UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error)

	// DeleteOrder removes an order, restoring stock unless it was CANCELLED
	// (cancellation already restored it).
	DeleteOrder(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new order service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	if req.CustomerName == "" {
		return nil, fmt.Errorf("customer_name is required")
	}
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	for _, li := range req.Items {
		if li.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be > 0 for item %s", li.InventoryID)
		}
	}

	o := &Order{
		ID:           uuid.New(),
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Organization: req.Organization,
		Phone:        req.Phone,
		Status:       StatusPending,
		Items:        req.Items,
	}

	if req.CustomerID != "" {
		cid, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer_id: %w", err)
		}
		customer, err := s.repo.GetCustomer(ctx, req.CustomerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}
		if !customer.Active {
			return nil, ErrInactiveCustomer
		}
		o.CustomerID = &cid
	}

	// Eager deduction, one line at a time. A failure here surfaces as-is;
	// earlier lines stay deducted.
	if err := s.deductLines(ctx, o.Items); err != nil {
		return nil, err
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// Best-effort counter bump; the order already exists, so a failure here
	// is logged rather than unwound.
	if o.CustomerID != nil {
		if err := s.repo.IncrementCustomerOrders(ctx, o.CustomerID.String()); err != nil {
			slog.Warn("failed to increment customer order counter",
				"customer_id", o.CustomerID.String(), "order_id", o.ID.String(), "error", err)
		}
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *service) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	// Status transition first, before any line replacement.
	if req.Status != nil {
		newStatus := OrderStatus(strings.ToUpper(*req.Status))
		switch newStatus {
		case StatusPending, StatusCompleted, StatusCancelled:
		default:
			return nil, fmt.Errorf("unknown order status %q", *req.Status)
		}
		if newStatus != o.Status {
			if o.Status.IsTerminal() {
				return nil, fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, o.Status)
			}
			if newStatus == StatusCancelled {
				s.restoreLines(ctx, o.Items)
			}
			o.Status = newStatus
		}
		// A same-value "change" is a no-op, not an error.
	}

	if req.Items != nil {
		if o.Status != StatusPending {
			return nil, fmt.Errorf("%w: line items can only be edited while PENDING", ErrInvalidTransition)
		}
		for _, li := range req.Items {
			if li.Quantity <= 0 {
				return nil, fmt.Errorf("quantity must be > 0 for item %s", li.InventoryID)
			}
		}
		// Hand back the old lines, then take the new ones. Like create, the
		// deduction loop does not unwind on mid-loop failure.
		s.restoreLines(ctx, o.Items)
		if err := s.deductLines(ctx, req.Items); err != nil {
			return nil, err
		}
		o.Items = req.Items
	}

	if req.CustomerName != nil {
		o.CustomerName = *req.CustomerName
	}
	if req.Email != nil {
		o.Email = *req.Email
	}
	if req.Organization != nil {
		o.Organization = *req.Organization
	}
	if req.Phone != nil {
		o.Phone = *req.Phone
	}
	o.UpdatedAt = time.Now()

	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, id string) error {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}
	// A cancelled order already had its stock restored. Anything else,
	// PENDING or COMPLETED alike, hands its units back on deletion.
	if o.Status != StatusCancelled {
		s.restoreLines(ctx, o.Items)
	}
	return s.repo.DeleteOrder(ctx, id)
}

// deductLines takes stock for every non-custom line, persisting each
// deduction immediately. The first failure stops the loop and is returned;
// earlier deductions are not rolled back.
func (s *service) deductLines(ctx context.Context, lines []*LineItem) error {
	for _, li := range lines {
		if li.IsCustom() {
			continue
		}
		if err := s.repo.DeductStock(ctx, li.InventoryID, li.Quantity); err != nil {
			return fmt.Errorf("item %s: %w", li.InventoryID, err)
		}
	}
	return nil
}

// restoreLines is the compensating action: every non-custom line's quantity
// goes back to inventory. Best-effort; lines whose item was deleted in the
// meantime are skipped silently.
func (s *service) restoreLines(ctx context.Context, lines []*LineItem) {
	for _, li := range lines {
		if li.IsCustom() {
			continue
		}
		if err := s.repo.RestoreStock(ctx, li.InventoryID, li.Quantity); err != nil {
			slog.Warn("failed to restore stock", "inventory_id", li.InventoryID,
				"quantity", li.Quantity, "error", err)
		}
	}
}
