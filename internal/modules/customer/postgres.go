package customer

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL customer repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const customerColumns = `id,name,email,organization,phone,address,status,total_orders,created_at,updated_at`

func (r *postgresRepo) CreateCustomer(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id,name,email,organization,phone,address,status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.Name, c.Email, c.Organization, c.Phone, c.Address, c.Status)
	return err
}

func (r *postgresRepo) GetCustomerByID(ctx context.Context, id string) (*Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	return scanCustomer(r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id=$1`, uid))
}

func (r *postgresRepo) ListCustomers(ctx context.Context) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var customers []*Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresRepo) UpdateCustomer(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET name=$1, email=$2, organization=$3, phone=$4, address=$5, status=$6, updated_at=$7
		WHERE id=$8`,
		c.Name, c.Email, c.Organization, c.Phone, c.Address, c.Status, time.Now(), c.ID)
	return err
}

func (r *postgresRepo) DeleteCustomer(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return sql.ErrNoRows
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM customers WHERE id=$1`, uid)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*Customer, error) {
	c := &Customer{}
	var organization, phone, address sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Email, &organization, &phone, &address,
		&c.Status, &c.TotalOrders, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Organization = organization.String
	c.Phone = phone.String
	c.Address = address.String
	return c, nil
}
