package services_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"streetsupply/internal/domain"
	"streetsupply/internal/services"
)

func validOffer() services.OfferInput {
	return services.OfferInput{
		TotalPrice:   decimal.RequireFromString("450"),
		DeliveryTime: "Tomorrow 7am",
		DeliveryMode: "Door Delivery",
	}
}

func TestSubmitOffer(t *testing.T) {
	e := setup(t)
	e.addLine(t, ravi, "Milk", 10)

	o, err := e.offers.Submit(agro, "u-ravi", validOffer())
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.OfferPending || o.SupplierID != "u-agro" || o.VendorNeedID != "u-ravi" {
		t.Fatalf("unexpected offer: %+v", o)
	}
	if _, err := e.offers.Submit(agro, "u-ravi", validOffer()); !errors.Is(err, services.ErrAlreadyOffered) {
		t.Fatalf("want ErrAlreadyOffered, got %v", err)
	}
}

func TestSubmitOfferValidation(t *testing.T) {
	e := setup(t)
	e.addLine(t, ravi, "Milk", 10)

	zero := validOffer()
	zero.TotalPrice = decimal.Zero
	noTime := validOffer()
	noTime.DeliveryTime = "  "
	badMode := validOffer()
	badMode.DeliveryMode = "Teleport"
	for _, in := range []services.OfferInput{zero, noTime, badMode} {
		var verr *services.ValidationError
		if _, err := e.offers.Submit(agro, "u-ravi", in); !errors.As(err, &verr) {
			t.Fatalf("input %+v: want validation error, got %v", in, err)
		}
	}
	got, _ := e.offers.ForSupplier(agro)
	if got.Counts.Total != 0 {
		t.Fatalf("rejected offers must not be stored: %+v", got)
	}
}

func TestSubmitOfferNeedsOpenNeed(t *testing.T) {
	e := setup(t)
	if _, err := e.offers.Submit(agro, "u-meena", validOffer()); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound for empty need, got %v", err)
	}
	if _, err := e.offers.Submit(ravi, "u-meena", validOffer()); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("vendors cannot offer: got %v", err)
	}
}

func TestConcurrentSubmitStoresOne(t *testing.T) {
	e := setup(t)
	e.addLine(t, ravi, "Milk", 10)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.offers.Submit(agro, "u-ravi", validOffer())
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, services.ErrAlreadyOffered):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("want exactly one stored offer, got %d", ok)
	}
}

func TestAcceptLeavesSiblingsPending(t *testing.T) {
	e := setup(t)
	if _, err := e.profiles.SaveSupplier(agro, supplierProfile("400001")); err != nil {
		t.Fatal(err)
	}
	e.addLine(t, ravi, "Milk", 10)
	other := e.newSupplier(t, "second@streetsupply.test")

	first, err := e.offers.Submit(agro, "u-ravi", validOffer())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.offers.Submit(other, "u-ravi", validOffer()); err != nil {
		t.Fatal(err)
	}

	acc, err := e.offers.Accept(ravi, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if acc.Status != domain.OfferAccepted {
		t.Fatalf("want accepted, got %q", acc.Status)
	}

	view, err := e.offers.ForVendor(ravi)
	if err != nil {
		t.Fatal(err)
	}
	if view.Counts.Accepted != 1 || view.Counts.Pending != 1 || view.Counts.Total != 2 {
		t.Fatalf("unexpected counts: %+v", view.Counts)
	}
	if view.Accepted[0].SupplierName != "Agro Fresh" {
		t.Fatalf("supplier name not joined: %+v", view.Accepted[0])
	}
}

func TestDecisionIsFinal(t *testing.T) {
	e := setup(t)
	e.addLine(t, ravi, "Milk", 10)
	o, err := e.offers.Submit(agro, "u-ravi", validOffer())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.offers.Reject(ravi, o.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.offers.Accept(ravi, o.ID); !errors.Is(err, services.ErrOfferClosed) {
		t.Fatalf("want ErrOfferClosed, got %v", err)
	}
	if _, err := e.offers.Accept(meena, o.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("foreign vendor: want ErrNotFound, got %v", err)
	}

	stats, err := e.offers.ForSupplier(agro)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Counts.Rejected != 1 || stats.Counts.Pending != 0 {
		t.Fatalf("unexpected supplier counts: %+v", stats.Counts)
	}
}
