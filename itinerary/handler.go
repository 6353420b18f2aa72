// Package itinerary serves the desk's HTTP API: catalog browsing, session
// editing, the custom builder and quote export.
package itinerary

import (
	"errors"
	"log"
	"net/http"

	"tripdeck/catalog"
	"tripdeck/composer"
	"tripdeck/fleet"
	"tripdeck/live"
	"tripdeck/models"
	"tripdeck/pricing"
	"tripdeck/quote"
	"tripdeck/session"
	"tripdeck/utils"
)

var (
	errHotelNotFound     = errors.New("hotel not found in city")
	errRoomNotFound      = errors.New("room type not found in hotel")
	errFleetItemNotFound = errors.New("fleet item not found")
)

// Handler carries the dependencies every endpoint needs.
type Handler struct {
	Catalog   *catalog.Store
	Sessions  *session.Store
	Refresher *catalog.Refresher
	Hub       *live.Hub
	Images    quote.ImageSource

	Destination   string
	ShareBaseURL  string
	EstimateRates pricing.EstimateRates
}

func (h *Handler) publish(room, action string, data any) {
	if h.Hub != nil {
		h.Hub.Publish(room, action, data)
	}
}

// respondErr maps domain errors to status codes.
func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrUnknownPackage),
		errors.Is(err, errHotelNotFound),
		errors.Is(err, errRoomNotFound),
		errors.Is(err, errFleetItemNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrNoPackage),
		errors.Is(err, session.ErrNoBuilder):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrDayOutOfRange),
		errors.Is(err, session.ErrRoomNotInHotel),
		errors.Is(err, session.ErrInvalidPax),
		errors.Is(err, session.ErrInvalidTier),
		errors.Is(err, session.ErrInvalidMarkup),
		errors.Is(err, composer.ErrIndexOutOfRange),
		errors.Is(err, composer.ErrRoomNotInHotel),
		errors.Is(err, composer.ErrNoCity),
		errors.Is(err, composer.ErrNoDays),
		errors.Is(err, fleet.ErrUnknownField):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[Itinerary] internal error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "internal error")
	}
}

// findStay looks a hotel and optional room type up by name in a city.
func findStay(c *models.Catalog, city, hotelName, roomName string) (*models.Hotel, *models.RoomType, error) {
	for _, hotel := range c.HotelsIn(city) {
		if hotel.Name != hotelName {
			continue
		}
		if roomName == "" {
			return &hotel, nil, nil
		}
		for _, rt := range hotel.RoomTypes {
			if rt.Name == roomName {
				return &hotel, &rt, nil
			}
		}
		return nil, nil, errRoomNotFound
	}
	return nil, nil, errHotelNotFound
}

// sessionView is the JSON shape of a session.
type sessionView struct {
	ID                   string                      `json:"id"`
	GuestName            string                      `json:"guestName"`
	StartDate            string                      `json:"startDate"`
	Pax                  int                         `json:"pax"`
	Tier                 models.Tier                 `json:"tier"`
	PackageID            string                      `json:"packageId,omitempty"`
	Package              *models.ItineraryPackage    `json:"package,omitempty"`
	Markup               models.Markup               `json:"markup"`
	Fleet                []models.FleetItem          `json:"fleet"`
	FleetManual          bool                        `json:"fleetManual"`
	HotelOverrides       models.HotelOverrides       `json:"hotelOverrides"`
	SightseeingOverrides models.SightseeingOverrides `json:"sightseeingOverrides"`
	Breakdown            *pricing.Breakdown          `json:"breakdown,omitempty"`
	Pricing              *models.PricingResult       `json:"pricing,omitempty"`
	BuilderOpen          bool                        `json:"builderOpen"`
	UpdatedAt            int64                       `json:"updatedAt"`
}

const dateLayout = "2006-01-02"

// viewOf snapshots s for encoding. It must run while the session is held,
// and it copies the override maps because encoding happens after release.
func viewOf(c *models.Catalog, s *session.Session) sessionView {
	v := sessionView{
		ID:                   s.ID,
		GuestName:            s.GuestName,
		StartDate:            s.StartDate.Format(dateLayout),
		Pax:                  s.Pax,
		Tier:                 s.Tier,
		PackageID:            s.PackageID,
		Markup:               s.Markup,
		Fleet:                s.Fleet.Items(),
		FleetManual:          s.Fleet.Manual(),
		HotelOverrides:       s.HotelOverrides.Clone(),
		SightseeingOverrides: s.SightseeingOverrides.Clone(),
		BuilderOpen:          s.Builder != nil,
		UpdatedAt:            s.UpdatedAt.Unix(),
	}
	if pkg, ok := s.ActivePackage(c); ok {
		v.Package = &pkg
		b, _ := s.Breakdown(c)
		p, _ := s.Pricing(c)
		v.Breakdown = &b
		v.Pricing = &p
	}
	return v
}
