package handlers_test

import (
	"net/http"
	"testing"
)

type offerCounts struct {
	Pending, Accepted, Rejected, Total int
}

func TestAuthzByRole(t *testing.T) {
	app, _ := newApp(t)
	if status, _ := call(t, app, "GET", "/api/v1/vendor/offers", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("anonymous: want 401, got %d", status)
	}

	vendor := login(t, app, "ravi@streetsupply.test")
	var status int
	entries := captureLogs(t, func() {
		status, _ = call(t, app, "GET", "/api/v1/supplier/inventory", vendor, nil)
	})
	if status != http.StatusForbidden {
		t.Fatalf("vendor on supplier API: want 403, got %d", status)
	}
	e, ok := findLog(entries, "access.denied.role")
	if !ok || e.Level != "warn" || e.UserID != "u-ravi" {
		t.Fatalf("denial not logged: %+v", entries)
	}

	if status, _ := call(t, app, "GET", "/supplier/inventory", "", nil); status != http.StatusFound {
		t.Fatalf("anonymous page: want redirect, got %d", status)
	}
	if status, _ := call(t, app, "GET", "/api/v1/supplier/needs/stream", vendor, nil); status != http.StatusForbidden {
		t.Fatalf("vendor on supplier stream: want 403, got %d", status)
	}
}

func TestNeedOfferAcceptFlow(t *testing.T) {
	app, _ := newApp(t)
	vendor := login(t, app, "ravi@streetsupply.test")
	supplier := login(t, app, "agro@streetsupply.test")

	profile := map[string]any{
		"fullName": "Ravi Kumar", "businessType": "Tea stall", "businessName": "Ravi Chai",
		"phone": "9876543210", "pinCode": "400001", "preferredDelivery": "home", "language": "hindi",
	}
	if status, out := call(t, app, "PUT", "/api/v1/vendor/profile", vendor, profile); status != http.StatusOK {
		t.Fatalf("save profile: %d %s", status, out)
	}
	status, out := call(t, app, "POST", "/api/v1/vendor/needs/lines", vendor, map[string]any{"name": "Milk", "quantity": 20, "unit": "liter"})
	if status != http.StatusCreated {
		t.Fatalf("add line: %d %s", status, out)
	}

	var needs []struct {
		ID           string
		BusinessName string
		Materials    []struct{ Name string }
	}
	status, out = call(t, app, "GET", "/api/v1/supplier/needs", supplier, nil)
	if status != http.StatusOK {
		t.Fatalf("list needs: %d %s", status, out)
	}
	decode(t, out, &needs)
	if len(needs) != 1 || needs[0].ID != "u-ravi" || needs[0].BusinessName != "Ravi Chai" {
		t.Fatalf("unexpected needs: %s", out)
	}

	offer := map[string]any{"totalPrice": "900", "deliveryTime": "Tomorrow 6am", "deliveryMode": "Door Delivery"}
	var entries []logEntry
	entries = captureLogs(t, func() {
		status, out = call(t, app, "POST", "/api/v1/supplier/needs/u-ravi/offers", supplier, offer)
	})
	if status != http.StatusCreated {
		t.Fatalf("submit offer: %d %s", status, out)
	}
	if e, ok := findLog(entries, "offer.submit"); !ok || e.Level != "audit" || e.UserID != "u-agro" {
		t.Fatalf("offer submit not audited: %+v", entries)
	}
	var created struct{ ID, Status string }
	decode(t, out, &created)

	if status, _ := call(t, app, "POST", "/api/v1/supplier/needs/u-ravi/offers", supplier, offer); status != http.StatusConflict {
		t.Fatalf("duplicate offer: want 409, got %d", status)
	}

	var view struct {
		Pending []struct{ ID, SupplierName string }
		Counts  offerCounts
	}
	status, out = call(t, app, "GET", "/api/v1/vendor/offers", vendor, nil)
	if status != http.StatusOK {
		t.Fatalf("vendor offers: %d %s", status, out)
	}
	decode(t, out, &view)
	if view.Counts.Pending != 1 || view.Pending[0].ID != created.ID {
		t.Fatalf("unexpected vendor view: %s", out)
	}

	if status, out := call(t, app, "POST", "/api/v1/vendor/offers/"+created.ID+"/accept", vendor, nil); status != http.StatusOK {
		t.Fatalf("accept: %d %s", status, out)
	}
	if status, _ := call(t, app, "POST", "/api/v1/vendor/offers/"+created.ID+"/reject", vendor, nil); status != http.StatusConflict {
		t.Fatalf("second decision: want 409, got %d", status)
	}

	var mine struct{ Counts offerCounts }
	_, out = call(t, app, "GET", "/api/v1/supplier/offers", supplier, nil)
	decode(t, out, &mine)
	if mine.Counts.Accepted != 1 || mine.Counts.Total != 1 {
		t.Fatalf("unexpected supplier counts: %s", out)
	}

	if status, _ := call(t, app, "GET", "/vendor/offers", vendor, nil); status != http.StatusOK {
		t.Fatalf("offers page: want 200, got %d", status)
	}
}

func TestOfferValidationReturnsField(t *testing.T) {
	app, _ := newApp(t)
	vendor := login(t, app, "ravi@streetsupply.test")
	supplier := login(t, app, "agro@streetsupply.test")
	call(t, app, "POST", "/api/v1/vendor/needs/lines", vendor, map[string]any{"name": "Milk", "quantity": 20})

	status, out := call(t, app, "POST", "/api/v1/supplier/needs/u-ravi/offers", supplier,
		map[string]any{"totalPrice": "0", "deliveryTime": "soon", "deliveryMode": "Door Delivery"})
	if status != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", status)
	}
	var body struct{ Error, Field string }
	decode(t, out, &body)
	if body.Field != "totalPrice" || body.Error == "" {
		t.Fatalf("unexpected body: %s", out)
	}

	if status, _ := call(t, app, "POST", "/api/v1/supplier/needs/u-meena/offers", supplier,
		map[string]any{"totalPrice": "10", "deliveryTime": "soon", "deliveryMode": "Door Delivery"}); status != http.StatusNotFound {
		t.Fatalf("empty need: want 404, got %d", status)
	}
}

func TestRemoveLine(t *testing.T) {
	app, _ := newApp(t)
	vendor := login(t, app, "ravi@streetsupply.test")
	_, out := call(t, app, "POST", "/api/v1/vendor/needs/lines", vendor, map[string]any{"name": "Sugar", "quantity": 5})
	var line struct{ ID string }
	decode(t, out, &line)

	if status, _ := call(t, app, "DELETE", "/api/v1/vendor/needs/lines/"+line.ID, vendor, nil); status != http.StatusNoContent {
		t.Fatalf("want 204, got %d", status)
	}
	if status, _ := call(t, app, "DELETE", "/api/v1/vendor/needs/lines/"+line.ID, vendor, nil); status != http.StatusNotFound {
		t.Fatalf("want 404, got %d", status)
	}
}
