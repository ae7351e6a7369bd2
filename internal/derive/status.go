// Package derive computes the synthetic fields shown next to stored records.
// Everything here is a pure function of its inputs; callers pass the clock.
package derive

import (
	"time"

	"streetsupply/internal/domain"
)

// LowStockThreshold is the fixed quantity below which an item counts as low stock.
const LowStockThreshold = 50

const (
	StatusExpiringSoon = "Expiring Soon"
	StatusLowStock     = "Low Stock"
	StatusAvailable    = "Available"
)

// expiringWindowDays is the inclusive upper bound of the expiring-soon window.
const expiringWindowDays = 2

// ItemStatus is the derived badge state of one inventory item.
type ItemStatus struct {
	LowStock     bool   `json:"isLowStock"`
	ExpiringSoon bool   `json:"isExpiringSoon"`
	Display      string `json:"status"`
}

// IsLowStock reports whether qty is below LowStockThreshold.
func IsLowStock(qty float64) bool { return qty < LowStockThreshold }

// DaysUntil returns the whole calendar-day difference between date (YYYY-MM-DD)
// and the calendar day of now. ok is false when date is empty or malformed.
func DaysUntil(date string, now time.Time) (int, bool) {
	if date == "" {
		return 0, false
	}
	d, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return 0, false
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	y, m, day = d.Date()
	target := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24), true
}

// IsExpiringSoon reports whether expiry falls today or within the next two days.
// Already expired items are not flagged.
func IsExpiringSoon(expiry string, now time.Time) bool {
	days, ok := DaysUntil(expiry, now)
	return ok && days >= 0 && days <= expiringWindowDays
}

// Status derives the flags and the single display badge for an item.
func Status(item domain.InventoryItem, now time.Time) ItemStatus {
	st := ItemStatus{
		LowStock:     IsLowStock(item.Quantity),
		ExpiringSoon: IsExpiringSoon(item.ExpiryDate, now),
	}
	switch {
	case st.ExpiringSoon:
		st.Display = StatusExpiringSoon
	case st.LowStock:
		st.Display = StatusLowStock
	default:
		st.Display = StatusAvailable
	}
	return st
}
