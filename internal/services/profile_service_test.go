package services_test

import (
	"errors"
	"testing"

	"streetsupply/internal/domain"
	"streetsupply/internal/services"
	"streetsupply/internal/store"
)

func TestSaveVendorProfile(t *testing.T) {
	e := setup(t)
	if _, err := e.profiles.GetVendor(ravi); !errors.Is(err, services.ErrNoProfile) {
		t.Fatalf("want ErrNoProfile before saving, got %v", err)
	}
	p, err := e.profiles.SaveVendor(ravi, vendorProfile("400001"))
	if err != nil {
		t.Fatal(err)
	}
	if p.UserID != "u-ravi" || p.CreatedAt != "2025-07-26T10:00:00Z" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestSaveVendorProfileValidation(t *testing.T) {
	e := setup(t)
	sub := e.hub.Subscribe(store.VendorProfiles, nil)
	defer sub.Unsubscribe()

	bad := vendorProfile("01234")
	_, err := e.profiles.SaveVendor(ravi, bad)
	var verr *services.ValidationError
	if !errors.As(err, &verr) || verr.Field != "pinCode" {
		t.Fatalf("want pinCode validation error, got %v", err)
	}
	if _, err := e.profiles.GetVendor(ravi); !errors.Is(err, services.ErrNoProfile) {
		t.Fatalf("invalid save must not write, got %v", err)
	}
	select {
	case ev := <-sub.C:
		t.Fatalf("invalid save must not publish, got %+v", ev)
	default:
	}
}

func TestSaveProfileWrongRole(t *testing.T) {
	e := setup(t)
	if _, err := e.profiles.SaveSupplier(ravi, supplierProfile("400001")); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if _, err := e.profiles.SaveVendor(agro, vendorProfile("400001")); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestSaveSupplierProfile(t *testing.T) {
	e := setup(t)
	in := supplierProfile("400001")
	in.DeliveryModes = domain.Tags{}
	var verr *services.ValidationError
	if _, err := e.profiles.SaveSupplier(agro, in); !errors.As(err, &verr) || verr.Field != "deliveryModes" {
		t.Fatalf("want deliveryModes validation error, got %v", err)
	}

	p, err := e.profiles.SaveSupplier(agro, supplierProfile("400001"))
	if err != nil {
		t.Fatal(err)
	}
	if p.PricingPreference != "fixed" || len(p.ProductCategories) != 1 {
		t.Fatalf("unexpected profile: %+v", p)
	}
}
