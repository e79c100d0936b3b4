package inventory

import "time"

// CalculateStatus derives an item's status from its quantity, threshold and
// expiry date. Expiry wins over stock level; comparisons happen at day
// granularity so an item expiring "today" is already expired.
func CalculateStatus(quantity, threshold int, expiry *time.Time, today time.Time) ItemStatus {
	if expiry != nil && !midnight(*expiry).After(midnight(today)) {
		return StatusExpired
	}
	if quantity == 0 {
		return StatusOutOfStock
	}
	if quantity <= threshold {
		return StatusLowStock
	}
	return StatusInStock
}

// daysUntil returns the number of whole calendar days from today until the
// given date. Negative when the date is in the past.
func daysUntil(date, today time.Time) int {
	return int(midnight(date).Sub(midnight(today)).Hours() / 24)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
