package services

import (
	"errors"

	"streetsupply/internal/derive"
	"streetsupply/internal/domain"
	"streetsupply/internal/repos"
	"streetsupply/internal/store"
	"streetsupply/internal/validate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OfferService struct {
	Offers *repos.OfferRepo
	Needs  *repos.NeedRepo
	Hub    *store.Hub
	Clock  Clock
}

func NewOfferService(offers *repos.OfferRepo, needs *repos.NeedRepo, hub *store.Hub, clock Clock) *OfferService {
	return &OfferService{Offers: offers, Needs: needs, Hub: hub, Clock: clock}
}

type OfferInput struct {
	TotalPrice   decimal.Decimal `json:"totalPrice" form:"totalPrice"`
	DeliveryTime string          `json:"deliveryTime" form:"deliveryTime"`
	DeliveryMode string          `json:"deliveryMode" form:"deliveryMode"`
	Notes        string          `json:"notes" form:"notes"`
}

// VendorOffer is an offer as the vendor sees it, with the supplier's company name.
type VendorOffer struct {
	domain.SupplierOffer
	SupplierName string `json:"supplierName"`
}

type VendorOffers struct {
	Pending  []VendorOffer      `json:"pending"`
	Accepted []VendorOffer      `json:"accepted"`
	Rejected []VendorOffer      `json:"rejected"`
	Counts   derive.OfferCounts `json:"counts"`
}

type SupplierOffers struct {
	Offers []domain.SupplierOffer `json:"offers"`
	Counts derive.OfferCounts     `json:"counts"`
}

// Submit records the supplier's offer on a vendor need. One offer per
// supplier and need; a second attempt returns ErrAlreadyOffered.
func (s *OfferService) Submit(id domain.Identity, needID string, in OfferInput) (*domain.SupplierOffer, error) {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return nil, err
	}
	needID, ok := validate.ID(needID)
	if !ok {
		return nil, invalid("needId", "invalid need id")
	}
	o := domain.SupplierOffer{VendorNeedID: needID}
	if !in.TotalPrice.IsPositive() {
		return nil, invalid("totalPrice", "enter a price greater than zero")
	}
	o.TotalPrice = in.TotalPrice
	if o.DeliveryTime = validate.Text(in.DeliveryTime, 60); o.DeliveryTime == "" {
		return nil, invalid("deliveryTime", "delivery time is required")
	}
	if o.DeliveryMode, ok = validate.OneOf(in.DeliveryMode, domain.DeliveryModes); !ok {
		return nil, invalid("deliveryMode", "choose a delivery mode")
	}
	o.Notes = validate.Text(in.Notes, 500)

	hasLines, err := s.Needs.HasLines(needID)
	if err != nil {
		return nil, err
	}
	if !hasLines {
		return nil, ErrNotFound
	}

	o.ID = uuid.NewString()
	o.SupplierID = id.UserID
	o.Status = domain.OfferPending
	o.CreatedAt = s.Clock.stamp()
	o.UpdatedAt = o.CreatedAt
	if err := s.Offers.Insert(o); err != nil {
		if errors.Is(err, repos.ErrDuplicate) {
			return nil, ErrAlreadyOffered
		}
		return nil, err
	}
	s.Hub.Publish(store.SupplierOffers, o.ID, needID)
	return &o, nil
}

func (s *OfferService) Accept(id domain.Identity, offerID string) (*domain.SupplierOffer, error) {
	return s.decide(id, offerID, domain.OfferAccepted)
}

func (s *OfferService) Reject(id domain.Identity, offerID string) (*domain.SupplierOffer, error) {
	return s.decide(id, offerID, domain.OfferRejected)
}

// decide moves a pending offer on the caller's own need to a terminal status.
// Sibling offers on the same need are left alone.
func (s *OfferService) decide(id domain.Identity, offerID, status string) (*domain.SupplierOffer, error) {
	if err := requireRole(id, domain.RoleVendor); err != nil {
		return nil, err
	}
	offerID, ok := validate.ID(offerID)
	if !ok {
		return nil, invalid("id", "invalid offer id")
	}
	err := s.Offers.Decide(offerID, id.UserID, status, s.Clock.stamp())
	switch {
	case errors.Is(err, repos.ErrNotPending):
		return nil, ErrOfferClosed
	case err != nil:
		return nil, storeErr(err)
	}
	o, err := s.Offers.Get(offerID)
	if err != nil {
		return nil, storeErr(err)
	}
	s.Hub.Publish(store.SupplierOffers, o.ID, o.VendorNeedID)
	return o, nil
}

// ForVendor returns the offers on the caller's need split by status.
func (s *OfferService) ForVendor(id domain.Identity) (VendorOffers, error) {
	if err := requireRole(id, domain.RoleVendor); err != nil {
		return VendorOffers{}, err
	}
	rows, err := s.Offers.ByNeed(id.UserID)
	if err != nil {
		return VendorOffers{}, err
	}
	offers := make([]domain.SupplierOffer, len(rows))
	names := make(map[string]string, len(rows))
	for i, r := range rows {
		offers[i] = r.SupplierOffer
		names[r.ID] = r.SupplierName
	}
	p := derive.PartitionOffers(offers)
	named := func(list []domain.SupplierOffer) []VendorOffer {
		out := make([]VendorOffer, 0, len(list))
		for _, o := range list {
			out = append(out, VendorOffer{SupplierOffer: o, SupplierName: names[o.ID]})
		}
		return out
	}
	return VendorOffers{
		Pending:  named(p.Pending),
		Accepted: named(p.Accepted),
		Rejected: named(p.Rejected),
		Counts:   p.Counts,
	}, nil
}

func (s *OfferService) ForSupplier(id domain.Identity) (SupplierOffers, error) {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return SupplierOffers{}, err
	}
	offers, err := s.Offers.BySupplier(id.UserID)
	if err != nil {
		return SupplierOffers{}, err
	}
	return SupplierOffers{Offers: offers, Counts: derive.SupplierOfferStats(offers)}, nil
}
