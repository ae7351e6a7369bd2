package derive

import "streetsupply/internal/domain"

// OfferCounts tallies offers by status.
type OfferCounts struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

// OfferPartition groups offers by their stored status.
type OfferPartition struct {
	Pending  []domain.SupplierOffer `json:"pending"`
	Accepted []domain.SupplierOffer `json:"accepted"`
	Rejected []domain.SupplierOffer `json:"rejected"`
	Counts   OfferCounts            `json:"counts"`
}

// PartitionOffers splits offers by their stored status. Offers with an unknown
// status only count towards Total.
func PartitionOffers(offers []domain.SupplierOffer) OfferPartition {
	p := OfferPartition{
		Pending:  []domain.SupplierOffer{},
		Accepted: []domain.SupplierOffer{},
		Rejected: []domain.SupplierOffer{},
	}
	for _, o := range offers {
		switch o.Status {
		case domain.OfferPending:
			p.Pending = append(p.Pending, o)
		case domain.OfferAccepted:
			p.Accepted = append(p.Accepted, o)
		case domain.OfferRejected:
			p.Rejected = append(p.Rejected, o)
		}
	}
	p.Counts = OfferCounts{
		Pending:  len(p.Pending),
		Accepted: len(p.Accepted),
		Rejected: len(p.Rejected),
		Total:    len(offers),
	}
	return p
}

// SupplierOfferStats counts a supplier's submitted offers by status.
func SupplierOfferStats(offers []domain.SupplierOffer) OfferCounts {
	var c OfferCounts
	for _, o := range offers {
		c.Total++
		switch o.Status {
		case domain.OfferPending:
			c.Pending++
		case domain.OfferAccepted:
			c.Accepted++
		case domain.OfferRejected:
			c.Rejected++
		}
	}
	return c
}

// OfferFor returns the supplier's offer on the given need, if any.
func OfferFor(offers []domain.SupplierOffer, needID string) (domain.SupplierOffer, bool) {
	for _, o := range offers {
		if o.VendorNeedID == needID {
			return o, true
		}
	}
	return domain.SupplierOffer{}, false
}
