package pricing

import (
	"testing"

	"tripdeck/models"
)

func sedan() []models.FleetItem {
	return []models.FleetItem{{ID: "a", Name: "Sedan (Dzire)", Count: 1}}
}

func TestPriceBudgetAndPremium(t *testing.T) {
	c := testCatalog()
	pkg := c.Packages[0]

	tests := []struct {
		name          string
		tier          models.Tier
		wantTransport models.Money
		wantLodging   models.Money
	}{
		// Bhuj Deluxe 2 rooms × 2500 × 2 nights + Dhordo tent 1 × 6000 × 2; Mandvi has no hotels.
		{"budget", models.TierBudget, 10000, 22000},
		// Dhordo has no premium hotel and falls back to the tent city.
		{"premium", models.TierPremium, 10000, 2*2*5500 + 2*6000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Compute(c, pkg, tt.tier, sedan(), 3, nil)
			if b.Transport != tt.wantTransport {
				t.Errorf("transport = %v, want %v", b.Transport, tt.wantTransport)
			}
			if b.Lodging != tt.wantLodging {
				t.Errorf("lodging = %v, want %v", b.Lodging, tt.wantLodging)
			}
			res := Price(c, pkg, tt.tier, sedan(), 3, nil)
			if res.NetTotal != b.Net() || res.FinalTotal != b.Net() {
				t.Errorf("price = %+v, want net %v", res, b.Net())
			}
			if res.PerPerson != PerPerson(b.Net(), 3) {
				t.Errorf("per person = %v", res.PerPerson)
			}
		})
	}
}

func TestDepartureDayIsPriced(t *testing.T) {
	c := testCatalog()
	pkg := models.ItineraryPackage{ID: "x", Days: 2, Route: []string{"Bhuj", "Bhuj"}}

	got := LodgingCost(c, pkg, models.TierBudget, 2, nil)
	if got != 5000 {
		t.Fatalf("lodging = %v, want 5000 (both route days)", got)
	}
}

func TestOverrideReplacesTierDefault(t *testing.T) {
	c := testCatalog()
	pkg := c.Packages[0]
	bhuj := c.HotelData["Bhuj"][0]
	overrides := models.HotelOverrides{
		1: {Hotel: bhuj, RoomType: bhuj.RoomTypes[1]}, // family suite, 4 pax
	}

	got := LodgingCost(c, pkg, models.TierBudget, 3, overrides)
	want := models.Money(2*2500 + 4200 + 2*6000)
	if got != want {
		t.Fatalf("lodging = %v, want %v", got, want)
	}
}

func TestDanglingOverrideStillPriced(t *testing.T) {
	c := testCatalog()
	pkg := models.ItineraryPackage{Days: 2, Route: []string{"Mandvi", "Mandvi"}}
	gone := models.Hotel{Name: "Closed Beach Resort", RoomTypes: []models.RoomType{{Name: "Cottage", Capacity: 2, Rate: 3000}}}
	overrides := models.HotelOverrides{0: {Hotel: gone, RoomType: gone.RoomTypes[0]}}

	if got := LodgingCost(c, pkg, models.TierBudget, 2, overrides); got != 3000 {
		t.Fatalf("lodging = %v, want 3000", got)
	}
}

func TestMissingDataDegradesToZero(t *testing.T) {
	c := testCatalog()
	pkg := models.ItineraryPackage{Days: 3, Route: []string{"Lakhpat", "Nowhere", "Lakhpat"}}
	fleet := []models.FleetItem{{ID: "z", Name: "Helicopter", Count: 2}}

	res := Price(c, pkg, models.TierPremium, fleet, 4, nil)
	if res.NetTotal != 0 || res.PerPerson != 0 {
		t.Fatalf("price = %+v, want zero", res)
	}

	res = Price(nil, pkg, models.TierBudget, fleet, 4, nil)
	if res.NetTotal != 0 {
		t.Fatalf("nil catalog price = %+v, want zero", res)
	}
}

func TestTransportUsesTripDays(t *testing.T) {
	c := testCatalog()
	fleet := []models.FleetItem{
		{ID: "1", Name: "Tempo Traveller", Count: 2},
		{ID: "2", Name: "Innova", Count: 1},
	}
	if got := TransportCost(c, fleet, 4); got != (4500*2+3000)*4 {
		t.Fatalf("transport = %v", got)
	}
}

func TestApplyMarkup(t *testing.T) {
	tests := []struct {
		name   string
		markup models.Markup
		pax    int
		want   models.PricingResult
	}{
		{"percent", models.Markup{Type: models.MarkupPercent, Value: 10}, 2, models.PricingResult{NetTotal: 10000, FinalTotal: 11000, PerPerson: 5500}},
		{"fixed", models.Markup{Type: models.MarkupFixed, Value: 500}, 2, models.PricingResult{NetTotal: 10000, FinalTotal: 10500, PerPerson: 5250}},
		{"zero", models.Markup{Type: models.MarkupPercent}, 3, models.PricingResult{NetTotal: 10000, FinalTotal: 10000, PerPerson: 3333}},
		{"rounds", models.Markup{Type: models.MarkupFixed, Value: 1}, 3, models.PricingResult{NetTotal: 10000, FinalTotal: 10001, PerPerson: 3334}},
		{"no pax", models.Markup{Type: models.MarkupFixed, Value: 500}, 0, models.PricingResult{NetTotal: 10000, FinalTotal: 10500, PerPerson: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyMarkup(10000, tt.pax, tt.markup); got != tt.want {
				t.Fatalf("ApplyMarkup = %+v, want %+v", got, tt.want)
			}
		})
	}
}
