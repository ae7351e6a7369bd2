package services

import (
	"errors"

	"streetsupply/internal/domain"
	"streetsupply/internal/repos"
	"streetsupply/internal/store"
	"streetsupply/internal/validate"
)

type ProfileService struct {
	Profiles *repos.ProfileRepo
	Hub      *store.Hub
	Clock    Clock
}

func NewProfileService(profiles *repos.ProfileRepo, hub *store.Hub, clock Clock) *ProfileService {
	return &ProfileService{Profiles: profiles, Hub: hub, Clock: clock}
}

func requireRole(id domain.Identity, role string) error {
	if id.UserID == "" || id.Role != role {
		return ErrForbidden
	}
	return nil
}

func (s *ProfileService) GetVendor(id domain.Identity) (*domain.VendorProfile, error) {
	if err := requireRole(id, domain.RoleVendor); err != nil {
		return nil, err
	}
	p, err := s.Profiles.Vendor(id.UserID)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, ErrNoProfile
	}
	return p, err
}

// SaveVendor validates and writes the caller's vendor profile.
func (s *ProfileService) SaveVendor(id domain.Identity, in domain.VendorProfile) (*domain.VendorProfile, error) {
	if err := requireRole(id, domain.RoleVendor); err != nil {
		return nil, err
	}
	p, err := checkVendor(in)
	if err != nil {
		return nil, err
	}
	p.UserID = id.UserID
	p.CreatedAt = s.Clock.stamp()
	p.UpdatedAt = p.CreatedAt
	if err := s.Profiles.UpsertVendor(p); err != nil {
		return nil, err
	}
	s.Hub.Publish(store.VendorProfiles, p.UserID, p.UserID)
	return s.Profiles.Vendor(p.UserID)
}

func checkVendor(in domain.VendorProfile) (domain.VendorProfile, error) {
	var ok bool
	p := in
	if p.FullName, ok = validate.Name(in.FullName); !ok {
		return p, invalid("fullName", "full name is required")
	}
	if p.BusinessType, ok = validate.OneOf(in.BusinessType, domain.VendorBusinessTypes); !ok {
		return p, invalid("businessType", "choose a business type")
	}
	p.BusinessName = validate.Text(in.BusinessName, 80)
	if p.Phone, ok = validate.Phone(in.Phone); !ok {
		return p, invalid("phone", "enter a valid phone number")
	}
	if in.Email != "" {
		if p.Email, ok = validate.Email(in.Email); !ok {
			return p, invalid("email", "enter a valid email")
		}
	}
	if p.PinCode, ok = validate.PIN(in.PinCode); !ok {
		return p, invalid("pinCode", "enter a valid 6-digit PIN code")
	}
	if p.PreferredDelivery, ok = validate.OneOf(in.PreferredDelivery, domain.VendorDeliveryPrefs); !ok {
		return p, invalid("preferredDelivery", "choose home, pickup or either")
	}
	if p.Language, ok = validate.OneOf(in.Language, domain.Languages); !ok {
		return p, invalid("language", "choose a language")
	}
	needs := domain.Tags{}
	for _, n := range in.AvgDailyNeeds {
		if n = validate.Text(n, 40); n != "" && !needs.Contains(n) {
			needs = append(needs, n)
		}
	}
	p.AvgDailyNeeds = needs
	return p, nil
}

func (s *ProfileService) GetSupplier(id domain.Identity) (*domain.SupplierProfile, error) {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return nil, err
	}
	p, err := s.Profiles.Supplier(id.UserID)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, ErrNoProfile
	}
	return p, err
}

// SaveSupplier validates and writes the caller's supplier profile. The pricing
// preference is stored as given; nothing reads it back.
func (s *ProfileService) SaveSupplier(id domain.Identity, in domain.SupplierProfile) (*domain.SupplierProfile, error) {
	if err := requireRole(id, domain.RoleSupplier); err != nil {
		return nil, err
	}
	p, err := checkSupplier(in)
	if err != nil {
		return nil, err
	}
	p.UserID = id.UserID
	p.CreatedAt = s.Clock.stamp()
	p.UpdatedAt = p.CreatedAt
	if err := s.Profiles.UpsertSupplier(p); err != nil {
		return nil, err
	}
	s.Hub.Publish(store.SupplierProfiles, p.UserID, p.UserID)
	return s.Profiles.Supplier(p.UserID)
}

func checkSupplier(in domain.SupplierProfile) (domain.SupplierProfile, error) {
	var ok bool
	p := in
	if p.CompanyName, ok = validate.Name(in.CompanyName); !ok {
		return p, invalid("companyName", "company name is required")
	}
	if p.ContactPerson, ok = validate.Name(in.ContactPerson); !ok {
		return p, invalid("contactPersonName", "contact person is required")
	}
	if p.Phone, ok = validate.Phone(in.Phone); !ok {
		return p, invalid("phone", "enter a valid phone number")
	}
	if in.Email != "" {
		if p.Email, ok = validate.Email(in.Email); !ok {
			return p, invalid("email", "enter a valid email")
		}
	}
	if p.BusinessType, ok = validate.OneOf(in.BusinessType, domain.SupplierBusinessTypes); !ok {
		return p, invalid("businessType", "choose a business type")
	}
	if p.ServiceAreaPin, ok = validate.PIN(in.ServiceAreaPin); !ok {
		return p, invalid("serviceAreaPin", "enter a valid 6-digit PIN code")
	}
	cats, ok := validate.AllOf(in.ProductCategories, domain.ProductCategories)
	if !ok || len(cats) == 0 {
		return p, invalid("productCategories", "select at least one product category")
	}
	p.ProductCategories = cats
	modes, ok := validate.AllOf(in.DeliveryModes, domain.DeliveryModes)
	if !ok || len(modes) == 0 {
		return p, invalid("deliveryModes", "select at least one delivery mode")
	}
	p.DeliveryModes = modes
	if in.PricingPreference == "" {
		p.PricingPreference = "fixed"
	} else if p.PricingPreference, ok = validate.OneOf(in.PricingPreference, domain.PricingPreferences); !ok {
		return p, invalid("pricingPreference", "choose fixed or dynamic")
	}
	return p, nil
}
