package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateptr(t time.Time) *time.Time { return &t }

func TestCalculateStatus(t *testing.T) {
	today := date(2025, 6, 15)

	tests := []struct {
		name      string
		quantity  int
		threshold int
		expiry    *time.Time
		want      ItemStatus
	}{
		{"plenty of stock", 50, 5, nil, StatusInStock},
		{"zero quantity", 0, 5, nil, StatusOutOfStock},
		{"zero quantity zero threshold", 0, 0, nil, StatusOutOfStock},
		{"at threshold", 5, 5, nil, StatusLowStock},
		{"below threshold", 2, 5, nil, StatusLowStock},
		{"one above threshold", 6, 5, nil, StatusInStock},
		{"expired yesterday", 50, 5, dateptr(date(2025, 6, 14)), StatusExpired},
		{"expires today", 50, 5, dateptr(date(2025, 6, 15)), StatusExpired},
		{"expires tomorrow", 50, 5, dateptr(date(2025, 6, 16)), StatusInStock},
		{"expired wins over out of stock", 0, 5, dateptr(date(2025, 6, 1)), StatusExpired},
		{"expired wins over low stock", 2, 5, dateptr(date(2025, 6, 1)), StatusExpired},
		{"future expiry still low stock", 2, 5, dateptr(date(2026, 1, 1)), StatusLowStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStatus(tt.quantity, tt.threshold, tt.expiry, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateStatus_IgnoresTimeOfDay(t *testing.T) {
	// Comparison is at day granularity: an expiry late tonight is already
	// expired this morning.
	expiry := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	today := time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, StatusExpired, CalculateStatus(10, 1, &expiry, today))
}

func TestDaysUntil(t *testing.T) {
	today := date(2025, 6, 15)

	assert.Equal(t, 0, daysUntil(date(2025, 6, 15), today))
	assert.Equal(t, 1, daysUntil(date(2025, 6, 16), today))
	assert.Equal(t, -2, daysUntil(date(2025, 6, 13), today))
	assert.Equal(t, 30, daysUntil(date(2025, 7, 15), today))

	// Time of day never shifts the day count.
	late := time.Date(2025, 6, 17, 22, 0, 0, 0, time.UTC)
	early := time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, daysUntil(late, early))
}
