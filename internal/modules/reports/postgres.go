package reports

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL reports repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetSummary(ctx context.Context) (*Summary, error) {
	s := &Summary{OrdersByStatus: make(map[string]int)}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory_items`).Scan(&s.TotalItems)
	if err != nil {
		return nil, err
	}
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders`).Scan(&s.TotalOrders)
	if err != nil {
		return nil, err
	}
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers`).Scan(&s.TotalCustomers)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		s.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Stock counts come from the live quantities, not the cached status, so
	// a stale status cannot skew the dashboard.
	err = r.db.QueryRowContext(ctx, `
		SELECT
		  COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= threshold),
		  COUNT(*) FILTER (WHERE quantity = 0)
		FROM inventory_items`).Scan(&s.LowStockItems, &s.OutOfStockItems)
	if err != nil {
		return nil, err
	}

	orderRows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_name, status, created_at
		FROM orders ORDER BY created_at DESC LIMIT 5`)
	if err != nil {
		return nil, err
	}
	defer orderRows.Close()
	for orderRows.Next() {
		ro := &RecentOrder{}
		if err := orderRows.Scan(&ro.ID, &ro.CustomerName, &ro.Status, &ro.CreatedAt); err != nil {
			return nil, err
		}
		s.RecentOrders = append(s.RecentOrders, ro)
	}
	return s, orderRows.Err()
}
