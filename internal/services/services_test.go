package services_test

import (
	"testing"
	"time"

	"streetsupply/internal/domain"
	"streetsupply/internal/repos"
	"streetsupply/internal/services"
	"streetsupply/internal/store"
)

var fixedNow = time.Date(2025, 7, 26, 10, 0, 0, 0, time.UTC)

var (
	ravi  = domain.Identity{UserID: "u-ravi", Role: domain.RoleVendor}
	meena = domain.Identity{UserID: "u-meena", Role: domain.RoleVendor}
	agro  = domain.Identity{UserID: "u-agro", Role: domain.RoleSupplier}
)

type env struct {
	hub      *store.Hub
	auth     *services.AuthService
	profiles *services.ProfileService
	needs    *services.NeedService
	inv      *services.InventoryService
	offers   *services.OfferService
	feed     *services.FeedService
}

func setup(t *testing.T) *env {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	clock := services.Clock(func() time.Time { return fixedNow })
	hub := store.NewHub()
	profileRepo := repos.NewProfileRepo(db)
	needRepo := repos.NewNeedRepo(db)
	offerRepo := repos.NewOfferRepo(db)

	e := &env{
		hub:      hub,
		auth:     &services.AuthService{Users: repos.NewUserRepo(db)},
		profiles: services.NewProfileService(profileRepo, hub, clock),
		needs:    services.NewNeedService(needRepo, profileRepo, offerRepo, hub, clock),
		inv:      services.NewInventoryService(repos.NewInventoryRepo(db), hub, clock),
		offers:   services.NewOfferService(offerRepo, needRepo, hub, clock),
	}
	e.feed = &services.FeedService{Hub: hub, NeedSvc: e.needs, OfferSvc: e.offers, InvSvc: e.inv}
	return e
}

func vendorProfile(pin string) domain.VendorProfile {
	return domain.VendorProfile{
		FullName: "Ravi Kumar", BusinessType: "Tea stall", Phone: "9876543210", PinCode: pin,
		PreferredDelivery: "home", Language: "hindi", AvgDailyNeeds: domain.Tags{"Milk"},
	}
}

func supplierProfile(pin string) domain.SupplierProfile {
	return domain.SupplierProfile{
		CompanyName: "Agro Fresh", ContactPerson: "Sunil", Phone: "9123456780", BusinessType: "Wholesaler",
		ServiceAreaPin: pin, ProductCategories: domain.Tags{"Vegetables"}, DeliveryModes: domain.Tags{"Door Delivery"},
	}
}

// newSupplier registers an extra supplier account.
func (e *env) newSupplier(t *testing.T, email string) domain.Identity {
	t.Helper()
	u, err := e.auth.Register(email, "Second Supplier", "Passw0rd!", "supplier")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u.Identity()
}

func (e *env) addLine(t *testing.T, id domain.Identity, name string, qty float64) *domain.MaterialLine {
	t.Helper()
	l, err := e.needs.AddLine(id, services.LineInput{Name: name, Quantity: qty})
	if err != nil {
		t.Fatalf("add line: %v", err)
	}
	return l
}
