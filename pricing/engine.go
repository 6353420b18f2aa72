// Package pricing turns a route, a fleet and a party size into a trip price.
//
// Every lookup degrades instead of failing: a vehicle missing from the catalog,
// a city without hotels or a hotel without room types contribute zero, so a
// price is always produced for any catalog state.
package pricing

import (
	"math"

	"tripdeck/models"
	"tripdeck/stay"
)

// Breakdown is the net cost split by component.
type Breakdown struct {
	Transport models.Money `json:"transport"`
	Lodging   models.Money `json:"lodging"`
}

// Net is the total before markup.
func (b Breakdown) Net() models.Money {
	return b.Transport + b.Lodging
}

// TransportCost charges every fleet line for the whole trip, departure day
// included: rate × count × days. Unknown vehicle names cost nothing.
func TransportCost(c *models.Catalog, fleet []models.FleetItem, days int) models.Money {
	var total models.Money
	for _, item := range fleet {
		v, ok := c.Vehicle(item.Name)
		if !ok {
			continue
		}
		total += v.Rate * models.Money(item.Count) * models.Money(days)
	}
	return total
}

// LodgingCost walks every route day by its own index, the departure day
// included, and charges rooms × rate for the resolved stay.
func LodgingCost(c *models.Catalog, pkg models.ItineraryPackage, tier models.Tier, pax int, overrides models.HotelOverrides) models.Money {
	var total models.Money
	for i, city := range pkg.Route {
		s, ok := stay.Resolve(c, city, i, tier, overrides)
		if !ok || s.RoomType == nil {
			continue
		}
		total += s.RoomType.Rate * models.Money(RoomsNeeded(pax, s.RoomType.Capacity))
	}
	return total
}

// Compute prices the fleet and lodging of pkg over its whole route.
func Compute(c *models.Catalog, pkg models.ItineraryPackage, tier models.Tier, fleet []models.FleetItem, pax int, overrides models.HotelOverrides) Breakdown {
	return Breakdown{
		Transport: TransportCost(c, fleet, pkg.Days),
		Lodging:   LodgingCost(c, pkg, tier, pax, overrides),
	}
}

// Price is the authoritative price of an opened package before markup.
// FinalTotal equals NetTotal until ApplyMarkup is used.
func Price(c *models.Catalog, pkg models.ItineraryPackage, tier models.Tier, fleet []models.FleetItem, pax int, overrides models.HotelOverrides) models.PricingResult {
	net := Compute(c, pkg, tier, fleet, pax, overrides).Net()
	return models.PricingResult{
		NetTotal:   net,
		FinalTotal: net,
		PerPerson:  PerPerson(net, pax),
	}
}

// ApplyMarkup turns a net total into the sell price. Percent multiplies by
// (1 + value/100); any other type adds value as a flat amount.
func ApplyMarkup(net models.Money, pax int, m models.Markup) models.PricingResult {
	final := net + m.Value
	if m.Type == models.MarkupPercent {
		final = net + net*m.Value/100
	}
	return models.PricingResult{
		NetTotal:   net,
		FinalTotal: final,
		PerPerson:  PerPerson(final, pax),
	}
}

// PerPerson rounds total/pax to the nearest unit; zero travellers yield 0.
func PerPerson(total models.Money, pax int) models.Money {
	if pax <= 0 {
		return 0
	}
	return models.Money(math.Round(float64(total) / float64(pax)))
}
