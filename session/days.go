package session

import (
	"tripdeck/models"
	"tripdeck/pricing"
	"tripdeck/stay"
)

// DayViews resolves every route day for display. The departure day shows no
// hotel even though pricing still charges it; the two policies are separate.
func (s *Session) DayViews(c *models.Catalog) ([]models.DayView, error) {
	pkg, ok := s.ActivePackage(c)
	if !ok {
		return nil, ErrNoPackage
	}

	views := make([]models.DayView, len(pkg.Route))
	last := len(pkg.Route) - 1
	for i, city := range pkg.Route {
		v := models.DayView{
			Index:       i,
			Date:        s.StartDate.AddDate(0, 0, i),
			City:        city,
			Sightseeing: stay.Spots(c, city, i, s.SightseeingOverrides),
			Departure:   i == last,
		}
		if !v.Departure {
			if st, ok := stay.Resolve(c, city, i, s.Tier, s.HotelOverrides); ok {
				hotel := st.Hotel
				v.Hotel = &hotel
				v.RoomType = st.RoomType
				v.Overridden = st.Overridden
				v.MealPlanLabel = stay.MealPlanLabel(hotel.Type)
				if st.RoomType != nil {
					v.RoomsNeeded = pricing.RoomsNeeded(s.Pax, st.RoomType.Capacity)
				}
			}
		}
		views[i] = v
	}
	return views, nil
}
