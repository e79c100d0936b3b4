package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateOrder inserts the order and all its line items inside a single
// transaction.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, customer_id, customer_name, email, organization, phone, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		o.ID, o.CustomerID, o.CustomerName, o.Email, o.Organization, o.Phone, o.Status)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	if err := insertLines(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT id,customer_id,customer_name,email,organization,phone,status,created_at,updated_at
		FROM orders WHERE id=$1`, uid))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listLines(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListOrders(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,customer_id,customer_name,email,organization,phone,status,created_at,updated_at
		FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.listLines(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateOrder rewrites the order row and replaces the full line item set in
// one transaction.
func (r *postgresRepo) UpdateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET customer_name=$1, email=$2, organization=$3, phone=$4, status=$5, updated_at=$6
		WHERE id=$7`,
		o.CustomerName, o.Email, o.Organization, o.Phone, o.Status, time.Now(), o.ID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id=$1`, o.ID); err != nil {
		return fmt.Errorf("clear order_items: %w", err)
	}
	if err := insertLines(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) DeleteOrder(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return sql.ErrNoRows
	}
	// order_items cascades on delete.
	_, err = r.db.ExecContext(ctx, `DELETE FROM orders WHERE id=$1`, uid)
	return err
}

// DeductStock takes qty units in a single conditional update so two racing
// orders cannot drive the quantity negative. Zero rows affected means either
// the item is gone or the stock does not cover the request.
func (r *postgresRepo) DeductStock(ctx context.Context, inventoryID string, qty int) error {
	uid, err := uuid.Parse(inventoryID)
	if err != nil {
		return ErrItemNotFound
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory_items
		SET quantity = quantity - $1, updated_at = NOW()
		WHERE id = $2 AND quantity >= $1`, qty, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM inventory_items WHERE id=$1)`, uid).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrItemNotFound
	}
	return ErrInsufficientStock
}

// RestoreStock hands qty units back. Missing items are skipped silently so a
// cancel/delete never fails because an item was removed in the meantime.
func (r *postgresRepo) RestoreStock(ctx context.Context, inventoryID string, qty int) error {
	uid, err := uuid.Parse(inventoryID)
	if err != nil {
		return nil
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE inventory_items
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2`, qty, uid)
	return err
}

func (r *postgresRepo) GetCustomer(ctx context.Context, id string) (*CustomerRef, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	ref := &CustomerRef{}
	var status string
	err = r.db.QueryRowContext(ctx,
		`SELECT id, status FROM customers WHERE id=$1`, uid).Scan(&ref.ID, &status)
	if err != nil {
		return nil, err
	}
	ref.Active = status == "ACTIVE"
	return ref, nil
}

// IncrementCustomerOrders is a single atomic increment; there is no
// read-modify-write window and no matching decrement anywhere.
func (r *postgresRepo) IncrementCustomerOrders(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE customers
		SET total_orders = total_orders + 1, updated_at = NOW()
		WHERE id = $1`, uid)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	var customerID sql.NullString
	var organization, phone sql.NullString
	err := row.Scan(&o.ID, &customerID, &o.CustomerName, &o.Email,
		&organization, &phone, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		uid, err := uuid.Parse(customerID.String)
		if err != nil {
			return nil, errors.New("malformed customer_id on order row")
		}
		o.CustomerID = &uid
	}
	o.Organization = organization.String
	o.Phone = phone.String
	return o, nil
}

func insertLines(ctx context.Context, tx *sql.Tx, orderID uuid.UUID, lines []*LineItem) error {
	for i, li := range lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, position, inventory_id, item_name, quantity)
			VALUES ($1,$2,$3,$4,$5)`,
			orderID, i, li.InventoryID, li.ItemName, li.Quantity)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}
	return nil
}

func (r *postgresRepo) listLines(ctx context.Context, orderID uuid.UUID) ([]*LineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT inventory_id, item_name, quantity
		FROM order_items WHERE order_id=$1 ORDER BY position ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []*LineItem
	for rows.Next() {
		li := &LineItem{}
		if err := rows.Scan(&li.InventoryID, &li.ItemName, &li.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, li)
	}
	return lines, rows.Err()
}
