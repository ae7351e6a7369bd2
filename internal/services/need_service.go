package services

import (
	"errors"
	"math"

	"streetsupply/internal/derive"
	"streetsupply/internal/domain"
	"streetsupply/internal/repos"
	"streetsupply/internal/store"
	"streetsupply/internal/validate"

	"github.com/google/uuid"
)

type NeedService struct {
	Needs    *repos.NeedRepo
	Profiles *repos.ProfileRepo
	Offers   *repos.OfferRepo
	Hub      *store.Hub
	Clock    Clock
}

func NewNeedService(needs *repos.NeedRepo, profiles *repos.ProfileRepo, offers *repos.OfferRepo, hub *store.Hub, clock Clock) *NeedService {
	return &NeedService{Needs: needs, Profiles: profiles, Offers: offers, Hub: hub, Clock: clock}
}

type LineInput struct {
	Name          string  `json:"name" form:"name"`
	Quantity      float64 `json:"quantity" form:"quantity"`
	Unit          string  `json:"unit" form:"unit"`
	Urgency       string  `json:"urgency" form:"urgency"`
	PreferredTime string  `json:"preferredTime" form:"preferredTime"`
}

// NeedView is a vendor's own need with its display total.
type NeedView struct {
	domain.MaterialRequest
	TotalQuantity float64 `json:"totalQuantity"`
}

// VisibleNeed is one vendor need as a supplier sees it.
type VisibleNeed struct {
	VendorID      string                `json:"id"`
	VendorName    string                `json:"vendorName"`
	BusinessName  string                `json:"businessName,omitempty"`
	PinCode       string                `json:"pinCode"`
	Materials     []domain.MaterialLine `json:"materials"`
	TotalQuantity float64               `json:"totalQuantity"`
	MyOffer       *domain.SupplierOffer `json:"myOffer,omitempty"`
}

func (n VisibleNeed) VendorPIN() string { return n.PinCode }

func (s *NeedService) Get(id domain.Identity) (NeedView, error) {
	if err := requireRole(id, domain.RoleVendor); err != nil {
		return NeedView{}, err
	}
	lines, err := s.Needs.Lines(id.UserID)
	if err != nil {
		return NeedView{}, err
	}
	return NeedView{
		MaterialRequest: domain.MaterialRequest{VendorID: id.UserID, Materials: lines},
		TotalQuantity:   derive.TotalQuantity(lines),
	}, nil
}

// AddLine appends one material line to the caller's need.
func (s *NeedService) AddLine(id domain.Identity, in LineInput) (*domain.MaterialLine, error) {
	if err := requireRole(id, domain.RoleVendor); err != nil {
		return nil, err
	}
	l, err := checkLine(in)
	if err != nil {
		return nil, err
	}
	l.ID = uuid.NewString()
	l.VendorID = id.UserID
	l.CreatedAt = s.Clock.stamp()
	if err := s.Needs.AppendLine(l); err != nil {
		return nil, err
	}
	s.Hub.Publish(store.VendorNeeds, id.UserID, id.UserID)
	return &l, nil
}

func checkLine(in LineInput) (domain.MaterialLine, error) {
	var l domain.MaterialLine
	var ok bool
	if l.Name, ok = validate.Name(in.Name); !ok {
		return l, invalid("name", "material name is required")
	}
	if in.Quantity <= 0 || math.IsNaN(in.Quantity) || math.IsInf(in.Quantity, 0) {
		return l, invalid("quantity", "quantity must be greater than zero")
	}
	l.Quantity = in.Quantity
	l.Unit = "kg"
	if in.Unit != "" {
		if l.Unit, ok = validate.OneOf(in.Unit, domain.InventoryUnits); !ok {
			return l, invalid("unit", "choose a unit")
		}
	}
	l.Urgency = "medium"
	if in.Urgency != "" {
		if l.Urgency, ok = validate.OneOf(in.Urgency, domain.Urgencies); !ok {
			return l, invalid("urgency", "choose low, medium or high")
		}
	}
	l.PreferredTime = validate.Text(in.PreferredTime, 40)
	return l, nil
}

func (s *NeedService) RemoveLine(id domain.Identity, lineID string) error {
	if err := requireRole(id, domain.RoleVendor); err != nil {
		return err
	}
	lineID, ok := validate.ID(lineID)
	if !ok {
		return invalid("id", "invalid line id")
	}
	if err := s.Needs.RemoveLine(id.UserID, lineID); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.Hub.Publish(store.VendorNeeds, id.UserID, id.UserID)
	return nil
}

// VisibleNeeds lists open vendor needs inside the supplier's service area,
// each annotated with the supplier's own offer when there is one.
func (s *NeedService) VisibleNeeds(id domain.Identity) ([]VisibleNeed, error) {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return nil, err
	}
	pin := ""
	prof, err := s.Profiles.Supplier(id.UserID)
	switch {
	case err == nil:
		pin = prof.ServiceAreaPin
	case !errors.Is(err, repos.ErrNotFound):
		return nil, err
	}

	rows, err := s.Needs.AllLines()
	if err != nil {
		return nil, err
	}
	mine, err := s.Offers.BySupplier(id.UserID)
	if err != nil {
		return nil, err
	}

	needs := groupNeeds(rows)
	visible := derive.FilterVisibleNeeds(pin, needs)
	for i := range visible {
		if o, ok := derive.OfferFor(mine, visible[i].VendorID); ok {
			visible[i].MyOffer = &o
		}
	}
	return visible, nil
}

// groupNeeds folds vendor-ordered rows into one need per vendor.
func groupNeeds(rows []repos.NeedLineRow) []VisibleNeed {
	needs := []VisibleNeed{}
	for _, r := range rows {
		if n := len(needs); n == 0 || needs[n-1].VendorID != r.MaterialLine.VendorID {
			needs = append(needs, VisibleNeed{
				VendorID:     r.MaterialLine.VendorID,
				VendorName:   r.VendorName,
				BusinessName: r.BusinessName,
				PinCode:      r.VendorPIN,
				Materials:    []domain.MaterialLine{},
			})
		}
		last := &needs[len(needs)-1]
		last.Materials = append(last.Materials, r.MaterialLine)
		last.TotalQuantity += r.Quantity
	}
	return needs
}
