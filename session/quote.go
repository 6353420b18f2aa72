package session

import (
	"tripdeck/models"
	"tripdeck/stay"
)

// QuoteOptions carries what the session does not know itself.
type QuoteOptions struct {
	Destination string
	PreparedBy  string
	ShareURL    string
}

// Quote assembles the renderer payload from the resolved days and the current
// price, so renderers never price anything themselves.
func (s *Session) Quote(c *models.Catalog, opts QuoteOptions) (models.Quote, error) {
	pkg, ok := s.ActivePackage(c)
	if !ok {
		return models.Quote{}, ErrNoPackage
	}
	views, err := s.DayViews(c)
	if err != nil {
		return models.Quote{}, err
	}
	price, err := s.Pricing(c)
	if err != nil {
		return models.Quote{}, err
	}

	q := models.Quote{
		Title:       pkg.Name,
		Destination: opts.Destination,
		PackageID:   pkg.ID,
		GuestName:   s.GuestName,
		PreparedBy:  opts.PreparedBy,
		Pax:         s.Pax,
		Tier:        s.Tier,
		StartDate:   s.StartDate,
		EndDate:     s.StartDate,
		CoverImg:    pkg.Img,
		Stays:       stay.Segments(pkg.Route),
		Days:        make([]models.QuoteDay, len(views)),
		Fleet:       []models.QuoteVehicle{},
		Pricing:     price,
		ShareURL:    opts.ShareURL,
	}
	if n := len(views); n > 0 {
		q.EndDate = views[n-1].Date
	}

	for i, v := range views {
		d := models.QuoteDay{
			Day:         i + 1,
			Date:        v.Date,
			City:        v.City,
			RoomsNeeded: v.RoomsNeeded,
			MealPlan:    v.MealPlanLabel,
			Sightseeing: v.Sightseeing,
			Departure:   v.Departure,
		}
		if v.Hotel != nil {
			d.HotelName = v.Hotel.Name
		}
		if v.RoomType != nil {
			d.RoomTypeName = v.RoomType.Name
		}
		q.Days[i] = d
	}

	for _, it := range s.Fleet.Items() {
		q.Fleet = append(q.Fleet, models.QuoteVehicle{Name: it.Name, Count: it.Count})
	}
	return q, nil
}
