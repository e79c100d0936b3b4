package inventory

import "context"

// Repository defines inventory item data storage.
type Repository interface {
	// CreateItem persists a new item. Duplicate barcodes are rejected by a
	// unique constraint.
	CreateItem(ctx context.Context, item *Item) error

	// GetItemByID retrieves a single item by UUID.
	GetItemByID(ctx context.Context, id string) (*Item, error)

	// GetItemByBarcode retrieves a single item by exact barcode.
	GetItemByBarcode(ctx context.Context, barcode string) (*Item, error)

	// ListItems returns all items, newest first.
	ListItems(ctx context.Context) ([]*Item, error)

	// SearchItems returns up to limit items whose name or barcode contains
	// the query, case-insensitively.
	SearchItems(ctx context.Context, query string, limit int) ([]*Item, error)

	// UpdateItem overwrites the mutable fields of an item.
	UpdateItem(ctx context.Context, item *Item) error

	// UpdateItemStatus persists just the derived status. Used by the
	// background self-correction on read paths.
	UpdateItemStatus(ctx context.Context, id string, status ItemStatus) error

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, id string) error
}
