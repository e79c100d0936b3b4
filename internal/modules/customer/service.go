package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrCustomerNotFound is returned when no customer matches the given id.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDuplicateEmail is returned when a create/update collides with an
	// existing customer email.
	ErrDuplicateEmail = errors.New("email already in use")
)

// Service defines customer business logic.
type Service interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	c := &Customer{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Organization: req.Organization,
		Phone:        req.Phone,
		Address:      req.Address,
		Status:       StatusActive,
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to persist customer: %w", err)
	}
	return c, nil
}

func (s *service) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	c, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *service) ListCustomers(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *service) UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*Customer, error) {
	c, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Organization != nil {
		c.Organization = *req.Organization
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Status != nil {
		status := CustomerStatus(strings.ToUpper(*req.Status))
		if status != StatusActive && status != StatusInactive {
			return nil, fmt.Errorf("unknown customer status %q", *req.Status)
		}
		c.Status = status
	}
	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return c, nil
}

func (s *service) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := s.repo.GetCustomerByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCustomerNotFound
		}
		return err
	}
	return s.repo.DeleteCustomer(ctx, id)
}

// isDuplicateKey returns true when the error is a PostgreSQL unique
// constraint violation (code 23505).
func isDuplicateKey(err error) bool {
	return strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key")
}
