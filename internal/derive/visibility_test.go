package derive_test

import (
	"testing"

	"streetsupply/internal/derive"
)

type need struct{ id, pin string }

func (n need) VendorPIN() string { return n.pin }

func TestNeedVisible(t *testing.T) {
	cases := []struct {
		supplier, vendor string
		want             bool
	}{
		{"400001", "400001", true},
		{"400001", "500002", false},
		{"", "500002", true},
		{"", "", true},
		{"400001", "", true},
	}
	for _, c := range cases {
		if got := derive.NeedVisible(c.supplier, c.vendor); got != c.want {
			t.Fatalf("NeedVisible(%q,%q) = %v, want %v", c.supplier, c.vendor, got, c.want)
		}
	}
}

func TestFilterVisibleNeedsKeepsOrder(t *testing.T) {
	needs := []need{{"a", "400001"}, {"b", "500002"}, {"c", ""}, {"d", "400001"}}
	got := derive.FilterVisibleNeeds("400001", needs)
	if len(got) != 3 || got[0].id != "a" || got[1].id != "c" || got[2].id != "d" {
		t.Fatalf("unexpected filter result %+v", got)
	}
}
