package inventory

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
	// ErrItemNotFound is returned when no item matches the given id or barcode.
	ErrItemNotFound = errors.New("inventory item not found")
	// ErrDuplicateBarcode is returned when a create/update collides with an
	// existing barcode.
	ErrDuplicateBarcode = errors.New("barcode already in use")
)

// searchLimit caps autocomplete results.
const searchLimit = 10

// Service defines inventory business logic.
type Service interface {
	// CreateItem validates and persists a new item with its derived status.
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)

	// GetItem retrieves one item by UUID, status freshly computed.
	GetItem(ctx context.Context, id string) (*Item, error)

	// GetItemByBarcode retrieves one item by exact barcode.
	GetItemByBarcode(ctx context.Context, barcode string) (*Item, error)

	// ListItems returns all items with freshly computed status. Stale stored
	// statuses are corrected in the background.
	ListItems(ctx context.Context) ([]*Item, error)

	// SearchItems is the autocomplete lookup over name and barcode.
	SearchItems(ctx context.Context, query string) ([]*Item, error)

	// UpdateItem applies a partial update and recomputes the status.
	UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*Item, error)

	// DeleteItem removes an item and its image asset.
	DeleteItem(ctx context.Context, id string) error

	// GetAlerts derives the low-stock/expiry alert feed over all items.
	GetAlerts(ctx context.Context) (*AlertsResponse, error)
}

type service struct {
	repo   Repository
	images ImageStore
	now    func() time.Time
}

// NewService creates a new inventory service.
func NewService(repo Repository, images ImageStore) Service {
	return &service{repo: repo, images: images, now: time.Now}
}

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Barcode == "" {
		return nil, fmt.Errorf("barcode is required")
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}

	threshold := 1
	if req.Threshold != nil {
		if *req.Threshold < 0 {
			return nil, fmt.Errorf("threshold must not be negative")
		}
		threshold = *req.Threshold
	}

	item := &Item{
		ID:         uuid.New(),
		Name:       req.Name,
		Category:   req.Category,
		Quantity:   req.Quantity,
		Threshold:  threshold,
		ExpiryDate: req.ExpiryDate,
		Barcode:    req.Barcode,
		ImageURL:   req.ImageURL,
	}
	item.Status = CalculateStatus(item.Quantity, item.Threshold, item.ExpiryDate, s.now())

	if err := s.repo.CreateItem(ctx, item); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateBarcode
		}
		return nil, fmt.Errorf("failed to persist item: %w", err)
	}
	return item, nil
}

func (s *service) GetItem(ctx context.Context, id string) (*Item, error) {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	s.refreshStatus(item)
	return item, nil
}

func (s *service) GetItemByBarcode(ctx context.Context, barcode string) (*Item, error) {
	item, err := s.repo.GetItemByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	s.refreshStatus(item)
	return item, nil
}

func (s *service) ListItems(ctx context.Context) ([]*Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		s.refreshStatus(item)
	}
	return items, nil
}

func (s *service) SearchItems(ctx context.Context, query string) ([]*Item, error) {
	if query == "" {
		return nil, nil
	}
	return s.repo.SearchItems(ctx, query, searchLimit)
}

func (s *service) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*Item, error) {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	oldImage := item.ImageURL

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("quantity must not be negative")
		}
		item.Quantity = *req.Quantity
	}
	if req.Threshold != nil {
		if *req.Threshold < 0 {
			return nil, fmt.Errorf("threshold must not be negative")
		}
		item.Threshold = *req.Threshold
	}
	if req.ClearExpiry {
		item.ExpiryDate = nil
	} else if req.ExpiryDate != nil {
		item.ExpiryDate = req.ExpiryDate
	}
	if req.Barcode != nil {
		item.Barcode = *req.Barcode
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	item.Status = CalculateStatus(item.Quantity, item.Threshold, item.ExpiryDate, s.now())
	item.UpdatedAt = s.now()

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateBarcode
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if req.ImageURL != nil && oldImage != "" && oldImage != item.ImageURL {
		if err := s.images.Delete(oldImage); err != nil {
			slog.Warn("failed to delete replaced item image", "item_id", id, "error", err)
		}
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, id string) error {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrItemNotFound
		}
		return err
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	if item.ImageURL != "" {
		if err := s.images.Delete(item.ImageURL); err != nil {
			slog.Warn("failed to delete item image", "item_id", id, "error", err)
		}
	}
	return nil
}

func (s *service) GetAlerts(ctx context.Context) (*AlertsResponse, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()
	for _, item := range items {
		s.refreshStatus(item)
	}
	return DeriveAlerts(items, today), nil
}

// refreshStatus recomputes the item's status in place. When the stored value
// went stale (a day passed an expiry boundary, or a write skipped the
// recompute) the correction is persisted fire-and-forget: the caller's
// response already carries the fresh value and must not wait on, or fail
// with, the write-back.
func (s *service) refreshStatus(item *Item) {
	fresh := CalculateStatus(item.Quantity, item.Threshold, item.ExpiryDate, s.now())
	if fresh == item.Status {
		return
	}
	item.Status = fresh

	id := item.ID.String()
	go func() {
		if err := s.repo.UpdateItemStatus(context.Background(), id, fresh); err != nil {
			slog.Error("background status correction failed", "item_id", id, "error", err)
		}
	}()
}

// isDuplicateKey returns true when the error is a PostgreSQL unique
// constraint violation (code 23505).
func isDuplicateKey(err error) bool {
	return strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key")
}
