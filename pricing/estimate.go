package pricing

import (
	"tripdeck/models"
	"tripdeck/stay"
)

// EstimateRates are flat per-vehicle daily rates used only for gallery cards.
// They do not come from the catalog and do not follow the session fleet.
type EstimateRates struct {
	Sedan models.Money `json:"sedan"`
	MUV   models.Money `json:"muv"`
	Van   models.Money `json:"van"`
}

var DefaultEstimateRates = EstimateRates{Sedan: 3000, MUV: 4500, Van: 6500}

// transport estimates vehicle cost from party size alone.
func (r EstimateRates) transport(pax, days int) models.Money {
	d := models.Money(days)
	switch {
	case pax <= 4:
		return r.Sedan * d
	case pax <= 6:
		return r.MUV * d
	case pax <= 12:
		return r.Van * d
	default:
		vans := (pax + 11) / 12
		return r.Van * models.Money(vans) * d
	}
}

// Estimate is the approximate gallery price of a package that has not been
// opened yet. For each night it looks in the tier default hotel for a room of
// the sharing capacity and falls back to that hotel's first room type. It must
// not be used once a package is being edited; use Price there.
func Estimate(c *models.Catalog, pkg models.ItineraryPackage, tier models.Tier, pax int, sharing models.Sharing, rates EstimateRates) models.PackageEstimate {
	total := rates.transport(pax, pkg.Days)

	nights := pkg.Route
	if len(nights) > 0 {
		nights = nights[:len(nights)-1]
	}
	want := sharing.Capacity()
	for _, city := range nights {
		hotel, ok := stay.DefaultHotel(c.HotelsIn(city), tier)
		if !ok || len(hotel.RoomTypes) == 0 {
			continue
		}
		room := hotel.RoomTypes[0]
		for _, rt := range hotel.RoomTypes {
			if rt.Capacity == want {
				room = rt
				break
			}
		}
		total += room.Rate * models.Money(RoomsNeeded(pax, room.Capacity))
	}

	return models.PackageEstimate{
		Package:   pkg,
		Tier:      tier,
		Sharing:   sharing,
		Total:     total,
		PerPerson: PerPerson(total, pax),
	}
}

// Gallery estimates every catalog package in both tiers, Budget first.
func Gallery(c *models.Catalog, pax int, sharing models.Sharing, rates EstimateRates) []models.PackageEstimate {
	if c == nil {
		return []models.PackageEstimate{}
	}
	out := make([]models.PackageEstimate, 0, len(c.Packages)*2)
	for _, pkg := range c.Packages {
		out = append(out,
			Estimate(c, pkg, models.TierBudget, pax, sharing, rates),
			Estimate(c, pkg, models.TierPremium, pax, sharing, rates),
		)
	}
	return out
}
