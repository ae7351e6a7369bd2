package derive

import (
	"time"

	"github.com/shopspring/decimal"

	"streetsupply/internal/domain"
)

type InventorySummary struct {
	Total        int             `json:"totalItems"`
	Visible      int             `json:"visibleItems"`
	LowStock     int             `json:"lowStockItems"`
	ExpiringSoon int             `json:"expiringSoonItems"`
	TotalValue   decimal.Decimal `json:"totalValue"`
}

// InventoryStats reduces a snapshot of a supplier's items. Value counts every
// item regardless of visibility.
func InventoryStats(items []domain.InventoryItem, now time.Time) InventorySummary {
	s := InventorySummary{TotalValue: decimal.Zero}
	for _, it := range items {
		s.Total++
		if it.IsVisible {
			s.Visible++
		}
		if IsLowStock(it.Quantity) {
			s.LowStock++
		}
		if IsExpiringSoon(it.ExpiryDate, now) {
			s.ExpiringSoon++
		}
		s.TotalValue = s.TotalValue.Add(decimal.NewFromFloat(it.Quantity).Mul(it.UnitPrice))
	}
	return s
}

// TotalQuantity sums quantities across a need's lines, for display only.
func TotalQuantity(lines []domain.MaterialLine) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}
