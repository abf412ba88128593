package model

import (
	"testing"
	"time"
)

func TestListingStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   ListingStatus
		value string
	}{
		{"active", ListingStatusActive, "active"},
		{"claimed", ListingStatusClaimed, "claimed"},
		{"collected", ListingStatusCollected, "collected"},
		{"expired", ListingStatusExpired, "expired"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		raw  string
		want Category
		ok   bool
	}{
		{"", CategoryOther, true},
		{"produce", CategoryProduce, true},
		{"electronics", CategoryElectronics, true},
		{"spaceships", Category("spaceships"), false},
	}
	for _, tc := range cases {
		got, ok := ParseCategory(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseCategory(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseUnit(t *testing.T) {
	for _, raw := range []string{"kg", "g", "l", "ml", "items", "boxes", "bags"} {
		if _, ok := ParseUnit(raw); !ok {
			t.Errorf("expected unit %q to be accepted", raw)
		}
	}
	if _, ok := ParseUnit(""); ok {
		t.Error("expected empty unit to be rejected")
	}
	if _, ok := ParseUnit("tons"); ok {
		t.Error("expected unknown unit to be rejected")
	}
}

func TestListingAvailable(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := Listing{Status: ListingStatusActive, FreeAt: now.Add(time.Minute)}
	if !l.Available(now) {
		t.Fatal("expected active listing before freeAt to be available")
	}
	if l.Available(now.Add(time.Minute)) {
		t.Fatal("expected listing at freeAt to be unavailable")
	}
	l.Status = ListingStatusClaimed
	if l.Available(now) {
		t.Fatal("expected claimed listing to be unavailable")
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleDonor, RoleConsumer, RoleOrganization} {
		if !r.Valid() {
			t.Errorf("expected %q to be valid", r)
		}
	}
	if Role("admin").Valid() {
		t.Error("expected unknown role to be invalid")
	}
}

func TestStatsAdd(t *testing.T) {
	a := Stats{CO2Saved: 1.5, Points: 10, MealsSaved: 1}
	b := Stats{CO2Saved: 2.5, Points: 50, ItemsSold: 1, FamiliesHelped: 2}
	got := a.Add(b)
	want := Stats{CO2Saved: 4, Points: 60, MealsSaved: 1, ItemsSold: 1, FamiliesHelped: 2}
	if got != want {
		t.Fatalf("unexpected sum: %+v", got)
	}
	if got.IsZero() || !(Stats{}).IsZero() {
		t.Fatal("IsZero mismatch")
	}
}

func TestCollectResultIDs(t *testing.T) {
	r := CollectResult{Listings: []Listing{{ID: "a"}, {ID: "c"}}}
	ids := r.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "c" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
