// Package stay resolves which hotel and room a route day uses and what the
// traveller sees on that day.
package stay

import "tripdeck/models"

// Stay is a resolved lodging choice. RoomType is nil when the hotel declares
// no room types, in which case the day costs nothing.
type Stay struct {
	Hotel      models.Hotel
	RoomType   *models.RoomType
	Overridden bool
}

// DefaultHotel picks the first hotel of the requested tier, or the city's
// first hotel when no hotel has that tier.
func DefaultHotel(hotels []models.Hotel, tier models.Tier) (models.Hotel, bool) {
	if len(hotels) == 0 {
		return models.Hotel{}, false
	}
	for _, h := range hotels {
		if h.Tier == tier {
			return h, true
		}
	}
	return hotels[0], true
}

// Resolve returns the effective stay for day dayIndex in city.
//
// An override for the day wins and is returned verbatim, even if its hotel has
// since disappeared from the catalog. Otherwise the tier default hotel is used
// with its first declared room type; the resolver never picks another room on
// its own. A city without hotels resolves to nothing.
func Resolve(c *models.Catalog, city string, dayIndex int, tier models.Tier, overrides models.HotelOverrides) (Stay, bool) {
	if o, ok := overrides[dayIndex]; ok {
		rt := o.RoomType
		return Stay{Hotel: o.Hotel, RoomType: &rt, Overridden: true}, true
	}

	hotel, ok := DefaultHotel(c.HotelsIn(city), tier)
	if !ok {
		return Stay{}, false
	}
	s := Stay{Hotel: hotel}
	if len(hotel.RoomTypes) > 0 {
		rt := hotel.RoomTypes[0]
		s.RoomType = &rt
	}
	return s, true
}

// Segments groups consecutive days in the same city into stays. The
// departure day (last route entry) is not a night and is left out.
func Segments(route []string) []models.StaySegment {
	if len(route) < 2 {
		return []models.StaySegment{}
	}
	nights := route[:len(route)-1]
	segs := []models.StaySegment{}
	for i, city := range nights {
		if n := len(segs); n > 0 && segs[n-1].City == city {
			segs[n-1].Nights++
			continue
		}
		segs = append(segs, models.StaySegment{City: city, FirstDay: i, Nights: 1})
	}
	return segs
}
