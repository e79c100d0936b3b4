package reports

import "context"

// Repository defines the read-only aggregation queries behind the dashboard.
type Repository interface {
	GetSummary(ctx context.Context) (*Summary, error)
}
