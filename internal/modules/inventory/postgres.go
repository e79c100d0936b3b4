package inventory

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL inventory repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const itemColumns = `id,name,category,quantity,threshold,expiry_date,status,barcode,image_url,created_at,updated_at`

func (r *postgresRepo) CreateItem(ctx context.Context, item *Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_items
		  (id,name,category,quantity,threshold,expiry_date,status,barcode,image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		item.ID, item.Name, item.Category, item.Quantity, item.Threshold,
		item.ExpiryDate, item.Status, item.Barcode, item.ImageURL)
	return err
}

func (r *postgresRepo) GetItemByID(ctx context.Context, id string) (*Item, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE id=$1`, uid))
}

func (r *postgresRepo) GetItemByBarcode(ctx context.Context, barcode string) (*Item, error) {
	return scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE barcode=$1`, barcode))
}

func (r *postgresRepo) ListItems(ctx context.Context) ([]*Item, error) {
	return r.queryItems(ctx,
		`SELECT `+itemColumns+` FROM inventory_items ORDER BY created_at DESC`)
}

func (r *postgresRepo) SearchItems(ctx context.Context, query string, limit int) ([]*Item, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+` FROM inventory_items
		WHERE name ILIKE '%' || $1 || '%' OR barcode ILIKE '%' || $1 || '%'
		ORDER BY name ASC LIMIT $2`, escapeLike(query), limit)
}

func (r *postgresRepo) UpdateItem(ctx context.Context, item *Item) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE inventory_items
		SET name=$1, category=$2, quantity=$3, threshold=$4, expiry_date=$5,
		    status=$6, barcode=$7, image_url=$8, updated_at=$9
		WHERE id=$10`,
		item.Name, item.Category, item.Quantity, item.Threshold, item.ExpiryDate,
		item.Status, item.Barcode, item.ImageURL, time.Now(), item.ID)
	return err
}

func (r *postgresRepo) UpdateItemStatus(ctx context.Context, id string, status ItemStatus) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE inventory_items SET status=$1 WHERE id=$2`, status, uid)
	return err
}

func (r *postgresRepo) DeleteItem(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id=$1`, uid)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

// escapeLike neutralizes ILIKE metacharacters in user-supplied search text so
// a query of "%" matches a literal percent sign, not every row.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*Item, error) {
	item := &Item{}
	var expiry sql.NullTime
	var category, imageURL sql.NullString
	if err := row.Scan(&item.ID, &item.Name, &category, &item.Quantity,
		&item.Threshold, &expiry, &item.Status, &item.Barcode, &imageURL,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if expiry.Valid {
		t := expiry.Time
		item.ExpiryDate = &t
	}
	item.Category = category.String
	item.ImageURL = imageURL.String
	return item, nil
}

func (r *postgresRepo) queryItems(ctx context.Context, query string, args ...interface{}) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
