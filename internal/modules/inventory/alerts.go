package inventory

import (
	"sort"
	"time"
)

// AlertSeverity classifies how urgent an alert is.
type AlertSeverity string

const (
	SeverityCritical   AlertSeverity = "critical"
	SeverityWarning    AlertSeverity = "warning"
	SeverityLowStock   AlertSeverity = "low-stock"
	SeverityOutOfStock AlertSeverity = "out-of-stock"
)

// AlertType names the condition that raised the alert.
type AlertType string

const (
	AlertExpired      AlertType = "expired"
	AlertExpiringSoon AlertType = "expiring-soon"
	AlertExpiring     AlertType = "expiring"
	AlertOutOfStock   AlertType = "out-of-stock"
	AlertLowStock     AlertType = "low-stock"
)

// AlertEntry is one item's alert in the alerts feed. An item raises at most
// one alert; expiry conditions take precedence over stock conditions.
type AlertEntry struct {
	Item     *Item         `json:"item"`
	Severity AlertSeverity `json:"severity"`
	Type     AlertType     `json:"alert_type"`
	DaysLeft *int          `json:"days_left,omitempty"`
}

// AlertStats aggregates the alert feed. critical/warning count by severity,
// the rest by alert type; every entry lands in exactly one of each.
type AlertStats struct {
	Total        int `json:"total"`
	Critical     int `json:"critical"`
	Warning      int `json:"warning"`
	LowStock     int `json:"lowStock"`
	OutOfStock   int `json:"outOfStock"`
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiringSoon"`
	Expiring     int `json:"expiring"`
}

// AlertsResponse is the alerts feed payload.
type AlertsResponse struct {
	Alerts []*AlertEntry `json:"alerts"`
	Stats  AlertStats    `json:"stats"`
}

// DeriveAlerts scans every item and produces the sorted alert feed plus
// aggregate stats. Items that are healthy raise nothing and are excluded.
func DeriveAlerts(items []*Item, today time.Time) *AlertsResponse {
	var entries []*AlertEntry
	for _, item := range items {
		if e := classify(item, today); e != nil {
			entries = append(entries, e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		bandI, daysI := alertOrder(entries[i])
		bandJ, daysJ := alertOrder(entries[j])
		if bandI != bandJ {
			return bandI < bandJ
		}
		return daysI < daysJ
	})

	stats := AlertStats{Total: len(entries)}
	for _, e := range entries {
		switch e.Severity {
		case SeverityCritical:
			stats.Critical++
		case SeverityWarning:
			stats.Warning++
		}
		switch e.Type {
		case AlertExpired:
			stats.Expired++
		case AlertExpiringSoon:
			stats.ExpiringSoon++
		case AlertExpiring:
			stats.Expiring++
		case AlertOutOfStock:
			stats.OutOfStock++
		case AlertLowStock:
			stats.LowStock++
		}
	}

	return &AlertsResponse{Alerts: entries, Stats: stats}
}

// classify returns the single alert an item raises, or nil. Expiry wins over
// stock; an expiry more than 30 days out falls through to the stock check.
func classify(item *Item, today time.Time) *AlertEntry {
	if item.ExpiryDate != nil {
		days := daysUntil(*item.ExpiryDate, today)
		switch {
		case days < 0:
			return &AlertEntry{Item: item, Severity: SeverityCritical, Type: AlertExpired, DaysLeft: &days}
		case days <= 7:
			return &AlertEntry{Item: item, Severity: SeverityCritical, Type: AlertExpiringSoon, DaysLeft: &days}
		case days <= 30:
			return &AlertEntry{Item: item, Severity: SeverityWarning, Type: AlertExpiring, DaysLeft: &days}
		}
	}
	if item.Quantity == 0 {
		return &AlertEntry{Item: item, Severity: SeverityOutOfStock, Type: AlertOutOfStock}
	}
	if item.Quantity <= item.Threshold {
		return &AlertEntry{Item: item, Severity: SeverityLowStock, Type: AlertLowStock}
	}
	return nil
}

// alertOrder places entries in the feed: out-of-stock first, then expired,
// then expiring-soon, then warnings and low stock. Within a band ties break
// on days left, so an item expired longer ago sorts ahead of one expired
// yesterday. Pure stock alerts carry no daysLeft and compare as zero.
func alertOrder(e *AlertEntry) (band, days int) {
	if e.DaysLeft != nil {
		days = *e.DaysLeft
	}

	switch {
	case e.Severity == SeverityOutOfStock:
		return 0, days
	case e.Severity == SeverityCritical && e.Type == AlertExpired:
		return 1, days
	case e.Severity == SeverityCritical:
		return 2, days
	default:
		return 3, days
	}
}
