package services_test

import (
	"errors"
	"testing"

	"streetsupply/internal/services"
)

func TestAddLineDefaultsAndTotal(t *testing.T) {
	e := setup(t)
	l := e.addLine(t, ravi, "Milk", 10)
	if l.Unit != "kg" || l.Urgency != "medium" || l.ID == "" {
		t.Fatalf("defaults not applied: %+v", l)
	}
	e.addLine(t, ravi, "Sugar", 5.5)

	view, err := e.needs.Get(ravi)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Materials) != 2 || view.TotalQuantity != 15.5 {
		t.Fatalf("unexpected need: %+v", view)
	}
	if view.Materials[0].Name != "Milk" {
		t.Fatalf("lines out of order: %+v", view.Materials)
	}
}

func TestAddLineValidation(t *testing.T) {
	e := setup(t)
	cases := []services.LineInput{
		{Name: "", Quantity: 1},
		{Name: "Milk", Quantity: 0},
		{Name: "Milk", Quantity: -3},
		{Name: "Milk", Quantity: 2, Urgency: "urgent"},
	}
	for _, in := range cases {
		var verr *services.ValidationError
		if _, err := e.needs.AddLine(ravi, in); !errors.As(err, &verr) {
			t.Fatalf("input %+v: want validation error, got %v", in, err)
		}
	}
	view, _ := e.needs.Get(ravi)
	if len(view.Materials) != 0 {
		t.Fatalf("rejected lines must not be stored: %+v", view.Materials)
	}
}

func TestRemoveLine(t *testing.T) {
	e := setup(t)
	l := e.addLine(t, ravi, "Milk", 10)
	if err := e.needs.RemoveLine(meena, l.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("other vendor's line: want ErrNotFound, got %v", err)
	}
	if err := e.needs.RemoveLine(ravi, l.ID); err != nil {
		t.Fatal(err)
	}
	if err := e.needs.RemoveLine(ravi, l.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestVisibleNeedsFiltersByPIN(t *testing.T) {
	e := setup(t)
	if _, err := e.profiles.SaveVendor(ravi, vendorProfile("400001")); err != nil {
		t.Fatal(err)
	}
	if _, err := e.profiles.SaveVendor(meena, vendorProfile("560001")); err != nil {
		t.Fatal(err)
	}
	e.addLine(t, ravi, "Milk", 10)
	e.addLine(t, meena, "Onions", 20)

	// No supplier profile yet: the supplier PIN is unset, so everything is visible.
	all, err := e.needs.VisibleNeeds(agro)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("want 2 needs, got %d", len(all))
	}

	if _, err := e.profiles.SaveSupplier(agro, supplierProfile("400001")); err != nil {
		t.Fatal(err)
	}
	near, err := e.needs.VisibleNeeds(agro)
	if err != nil {
		t.Fatal(err)
	}
	if len(near) != 1 || near[0].VendorID != "u-ravi" || near[0].TotalQuantity != 10 {
		t.Fatalf("want only Ravi's need, got %+v", near)
	}
	if near[0].MyOffer != nil {
		t.Fatalf("no offer submitted yet: %+v", near[0].MyOffer)
	}
}

func TestVisibleNeedsAnnotatesOwnOffer(t *testing.T) {
	e := setup(t)
	e.addLine(t, ravi, "Milk", 10)
	if _, err := e.offers.Submit(agro, "u-ravi", validOffer()); err != nil {
		t.Fatal(err)
	}
	needs, err := e.needs.VisibleNeeds(agro)
	if err != nil {
		t.Fatal(err)
	}
	if len(needs) != 1 || needs[0].MyOffer == nil || needs[0].MyOffer.Status != "pending" {
		t.Fatalf("own offer not annotated: %+v", needs)
	}

	other := e.newSupplier(t, "second@streetsupply.test")
	theirs, err := e.needs.VisibleNeeds(other)
	if err != nil {
		t.Fatal(err)
	}
	if theirs[0].MyOffer != nil {
		t.Fatalf("another supplier's offer leaked: %+v", theirs[0].MyOffer)
	}
}
