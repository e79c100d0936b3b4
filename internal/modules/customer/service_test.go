package customer

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mu        sync.Mutex
	customers map[string]*Customer
}

func newMockRepo() *mockRepo {
	return &mockRepo{customers: make(map[string]*Customer)}
}

func (m *mockRepo) CreateCustomer(ctx context.Context, c *Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.customers {
		if existing.Email == c.Email {
			return errDuplicate
		}
	}
	cp := *c
	m.customers[c.ID.String()] = &cp
	return nil
}

func (m *mockRepo) GetCustomerByID(ctx context.Context, id string) (*Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (m *mockRepo) ListCustomers(ctx context.Context) ([]*Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var customers []*Customer
	for _, c := range m.customers {
		cp := *c
		customers = append(customers, &cp)
	}
	return customers, nil
}

func (m *mockRepo) UpdateCustomer(ctx context.Context, c *Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[c.ID.String()]; !ok {
		return sql.ErrNoRows
	}
	cp := *c
	m.customers[c.ID.String()] = &cp
	return nil
}

func (m *mockRepo) DeleteCustomer(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.customers, id)
	return nil
}

var errDuplicate = &duplicateErr{}

type duplicateErr struct{}

func (e *duplicateErr) Error() string { return "duplicate key value violates unique constraint" }

func strptr(s string) *string { return &s }

func TestCreateCustomer(t *testing.T) {
	svc := NewService(newMockRepo())

	c, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{
		Name: "Jordan Reyes", Email: "jordan@acme.test", Organization: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, c.Status, "new customers start ACTIVE")
	assert.Equal(t, 0, c.TotalOrders)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, CreateCustomerRequest{Name: "A", Email: "same@acme.test"})
	require.NoError(t, err)
	_, err = svc.CreateCustomer(ctx, CreateCustomerRequest{Name: "B", Email: "same@acme.test"})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpdateCustomer_StatusChange(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	c, err := svc.CreateCustomer(ctx, CreateCustomerRequest{Name: "A", Email: "a@acme.test"})
	require.NoError(t, err)

	updated, err := svc.UpdateCustomer(ctx, c.ID.String(), UpdateCustomerRequest{
		Status: strptr("inactive"),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, updated.Status)

	_, err = svc.UpdateCustomer(ctx, c.ID.String(), UpdateCustomerRequest{
		Status: strptr("suspended"),
	})
	assert.Error(t, err, "unknown status rejected")
}

func TestGetCustomer_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.GetCustomer(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, ErrCustomerNotFound)
}
