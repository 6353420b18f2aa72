package itinerary

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"tripdeck/models"
	"tripdeck/pricing"
	"tripdeck/session"
	"tripdeck/utils"
)

// GET /health
func Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
}

// GET /api/catalog
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	c := h.Catalog.Current()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"destination":     h.Destination,
		"cities":          c.Cities(),
		"hotelData":       c.HotelData,
		"sightseeingData": c.SightseeingData,
		"vehicleData":     c.VehicleData,
		"packages":        c.Packages,
	})
}

// GET /api/catalog/hotels/:city?q= lists every hotel of a city, any tier, for
// the stay swap picker. q narrows by hotel name.
func (h *Handler) HotelsForCity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	q := r.URL.Query().Get("q")
	hotels := []models.Hotel{}
	for _, hotel := range h.Catalog.Current().HotelsIn(ps.ByName("city")) {
		if q == "" || utils.ContainsIgnoreCase(hotel.Name, q) {
			hotels = append(hotels, hotel)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, hotels)
}

// POST /api/catalog/refresh
func (h *Handler) RefreshCatalog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.Refresher == nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "catalog refresh is not configured")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	source := utils.GetUsernameFromRequest(r)
	if source == "" {
		source = utils.GetUserIDFromRequest(r)
	}
	if err := h.Refresher.Request(ctx, source); err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "catalog refresh failed; the current catalog stays in use")
		return
	}
	if h.Refresher.Conn != nil {
		utils.RespondWithJSON(w, http.StatusAccepted, utils.M{"status": "queued"})
		return
	}
	c := h.Catalog.Current()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":   "refreshed",
		"cities":   len(c.HotelData),
		"packages": len(c.Packages),
	})
}

// GET /api/packages?pax=&sharing=
func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pax, err := utils.QueryInt(r, "pax", 2)
	if err != nil || pax < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "pax must be a non-negative integer")
		return
	}
	sharing := models.Sharing(r.URL.Query().Get("sharing"))
	switch sharing {
	case "":
		sharing = models.SharingDouble
	case models.SharingDouble, models.SharingQuad:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "sharing must be Double or Quad")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, pricing.Gallery(h.Catalog.Current(), pax, sharing, h.EstimateRates))
}

// GET /api/sessions/:id
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c := h.Catalog.Current()
	var view sessionView
	err := h.Sessions.Do(ps.ByName("id"), func(s *session.Session) error {
		view = viewOf(c, s)
		return nil
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// GET /api/sessions/:id/days
func (h *Handler) GetDays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c := h.Catalog.Current()
	var days []models.DayView
	err := h.Sessions.Do(ps.ByName("id"), func(s *session.Session) error {
		var err error
		days, err = s.DayViews(c)
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, days)
}

// GET /api/sessions/:id/pricing
func (h *Handler) GetPricing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c := h.Catalog.Current()
	var (
		b     pricing.Breakdown
		price models.PricingResult
	)
	err := h.Sessions.Do(ps.ByName("id"), func(s *session.Session) error {
		var err error
		if b, err = s.Breakdown(c); err != nil {
			return err
		}
		price, err = s.Pricing(c)
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"breakdown": b,
		"pricing":   price,
	})
}
