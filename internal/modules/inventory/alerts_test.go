package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(name string, quantity, threshold int, expiry *time.Time) *Item {
	return &Item{
		ID:         uuid.New(),
		Name:       name,
		Quantity:   quantity,
		Threshold:  threshold,
		ExpiryDate: expiry,
		Barcode:    "BC-" + name,
	}
}

func TestDeriveAlerts_SortOrder(t *testing.T) {
	today := date(2025, 6, 15)

	a := testItem("A", 0, 5, nil)                         // out of stock
	b := testItem("B", 20, 5, dateptr(date(2025, 6, 13))) // expired 2 days ago
	c := testItem("C", 20, 5, dateptr(date(2025, 6, 18))) // expiring in 3 days
	d := testItem("D", 2, 5, nil)                         // low stock

	// Feed them in scrambled order; the feed must come back A, B, C, D.
	resp := DeriveAlerts([]*Item{d, c, b, a}, today)

	require.Len(t, resp.Alerts, 4)
	assert.Equal(t, "A", resp.Alerts[0].Item.Name)
	assert.Equal(t, "B", resp.Alerts[1].Item.Name)
	assert.Equal(t, "C", resp.Alerts[2].Item.Name)
	assert.Equal(t, "D", resp.Alerts[3].Item.Name)

	assert.Equal(t, AlertOutOfStock, resp.Alerts[0].Type)
	assert.Equal(t, AlertExpired, resp.Alerts[1].Type)
	assert.Equal(t, AlertExpiringSoon, resp.Alerts[2].Type)
	assert.Equal(t, AlertLowStock, resp.Alerts[3].Type)
}

func TestDeriveAlerts_ExpiryWinsOverStock(t *testing.T) {
	today := date(2025, 6, 15)
	// Low on stock AND expiring in 10 days: exactly one alert, the expiry one.
	item := testItem("dual", 1, 5, dateptr(date(2025, 6, 25)))

	resp := DeriveAlerts([]*Item{item}, today)

	require.Len(t, resp.Alerts, 1)
	assert.Equal(t, AlertExpiring, resp.Alerts[0].Type)
	assert.Equal(t, SeverityWarning, resp.Alerts[0].Severity)
	assert.Equal(t, 1, resp.Stats.Total)
	assert.Equal(t, 0, resp.Stats.LowStock)
}

func TestDeriveAlerts_ExclusivityAtSevenDays(t *testing.T) {
	today := date(2025, 6, 15)
	// Seven days is the last day of the critical band; eight is warning.
	soon := testItem("soon", 1, 5, dateptr(date(2025, 6, 22))) // 7 days
	warn := testItem("warn", 1, 5, dateptr(date(2025, 6, 23))) // 8 days

	resp := DeriveAlerts([]*Item{soon, warn}, today)

	require.Len(t, resp.Alerts, 2)
	assert.Equal(t, AlertExpiringSoon, resp.Alerts[0].Type)
	assert.Equal(t, SeverityCritical, resp.Alerts[0].Severity)
	assert.Equal(t, AlertExpiring, resp.Alerts[1].Type)
	assert.Equal(t, SeverityWarning, resp.Alerts[1].Severity)
}

func TestDeriveAlerts_DistantExpiryFallsThroughToStock(t *testing.T) {
	today := date(2025, 6, 15)
	// Expiry 40 days out raises nothing by itself; low stock still does.
	healthy := testItem("healthy", 50, 5, dateptr(date(2025, 8, 1)))
	low := testItem("low", 2, 5, dateptr(date(2025, 8, 1)))

	resp := DeriveAlerts([]*Item{healthy, low}, today)

	require.Len(t, resp.Alerts, 1)
	assert.Equal(t, "low", resp.Alerts[0].Item.Name)
	assert.Equal(t, AlertLowStock, resp.Alerts[0].Type)
}

func TestDeriveAlerts_HealthyItemsExcluded(t *testing.T) {
	today := date(2025, 6, 15)
	resp := DeriveAlerts([]*Item{testItem("fine", 100, 5, nil)}, today)
	assert.Empty(t, resp.Alerts)
	assert.Equal(t, AlertStats{}, resp.Stats)
}

func TestDeriveAlerts_Stats(t *testing.T) {
	today := date(2025, 6, 15)
	items := []*Item{
		testItem("expired", 10, 1, dateptr(date(2025, 6, 10))), // critical / expired
		testItem("soon", 10, 1, dateptr(date(2025, 6, 20))),    // critical / expiring-soon
		testItem("warning", 10, 1, dateptr(date(2025, 7, 5))),  // warning / expiring
		testItem("empty", 0, 1, nil),                           // out-of-stock
		testItem("scarce", 1, 5, nil),                          // low-stock
	}

	resp := DeriveAlerts(items, today)

	assert.Equal(t, AlertStats{
		Total:        5,
		Critical:     2,
		Warning:      1,
		LowStock:     1,
		OutOfStock:   1,
		Expired:      1,
		ExpiringSoon: 1,
		Expiring:     1,
	}, resp.Stats)
}

func TestDeriveAlerts_OutOfStockOutranksLongExpired(t *testing.T) {
	today := date(2025, 6, 15)
	// Expired over three years ago; daysLeft is a large negative number, but
	// out-of-stock entries still lead the feed.
	stale := testItem("stale", 10, 1, dateptr(date(2022, 5, 1)))
	empty := testItem("empty", 0, 1, nil)

	resp := DeriveAlerts([]*Item{stale, empty}, today)

	require.Len(t, resp.Alerts, 2)
	assert.Equal(t, "empty", resp.Alerts[0].Item.Name)
	assert.Equal(t, AlertOutOfStock, resp.Alerts[0].Type)
	assert.Equal(t, "stale", resp.Alerts[1].Item.Name)
	assert.Equal(t, AlertExpired, resp.Alerts[1].Type)
}

func TestDeriveAlerts_ExpiredSortedByUrgency(t *testing.T) {
	today := date(2025, 6, 15)
	older := testItem("older", 10, 1, dateptr(date(2025, 6, 1)))  // expired 14 days ago
	newer := testItem("newer", 10, 1, dateptr(date(2025, 6, 14))) // expired yesterday

	resp := DeriveAlerts([]*Item{newer, older}, today)

	require.Len(t, resp.Alerts, 2)
	assert.Equal(t, "older", resp.Alerts[0].Item.Name, "more negative daysLeft sorts first")
	assert.Equal(t, "newer", resp.Alerts[1].Item.Name)
}
