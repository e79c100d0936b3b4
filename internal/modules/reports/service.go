package reports

import "context"

// Service defines the reporting business logic.
type Service interface {
	GetSummary(ctx context.Context) (*Summary, error)
}

type service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetSummary(ctx context.Context) (*Summary, error) {
	return s.repo.GetSummary(ctx)
}
