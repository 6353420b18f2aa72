package itinerary

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"tripdeck/fleet"
	"tripdeck/live"
	"tripdeck/models"
	"tripdeck/session"
	"tripdeck/utils"
)

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("startDate must be YYYY-MM-DD")
	}
	return t, nil
}

// mutate runs fn on session id, answers with the updated view and tells
// other screens watching the session.
func (h *Handler) mutate(w http.ResponseWriter, id string, status int, fn func(c *models.Catalog, s *session.Session) error) {
	c := h.Catalog.Current()
	var view sessionView
	err := h.Sessions.Do(id, func(s *session.Session) error {
		if err := fn(c, s); err != nil {
			return err
		}
		view = viewOf(c, s)
		return nil
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, status, view)
	h.publish(live.SessionRoom(id), live.ActionSessionUpdated, view)
}

// POST /api/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		GuestName string `json:"guestName"`
		StartDate string `json:"startDate"`
		Pax       int    `json:"pax"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := parseDate(body.StartDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	s, err := session.New(body.GuestName, start, body.Pax)
	if err != nil {
		respondErr(w, err)
		return
	}
	view := viewOf(h.Catalog.Current(), s)
	h.Sessions.Add(s)
	utils.RespondWithJSON(w, http.StatusCreated, view)
}

// DELETE /api/sessions/:id
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !h.Sessions.Delete(ps.ByName("id")) {
		respondErr(w, session.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /api/sessions/:id/pax
func (h *Handler) SetPax(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Pax int `json:"pax"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.mutate(w, ps.ByName("id"), http.StatusOK, func(_ *models.Catalog, s *session.Session) error {
		return s.SetPax(body.Pax)
	})
}

// PUT /api/sessions/:id/meta
func (h *Handler) SetMeta(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		GuestName string `json:"guestName"`
		StartDate string `json:"startDate"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := parseDate(body.StartDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.mutate(w, ps.ByName("id"), http.StatusOK, func(_ *models.Catalog, s *session.Session) error {
		s.SetMeta(body.GuestName, start)
		return nil
	})
}

// POST /api/sessions/:id/package
func (h *Handler) SelectPackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		PackageID string      `json:"packageId"`
		Tier      models.Tier `json:"tier"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Tier == "" {
		body.Tier = models.TierBudget
	}
	h.mutate(w, ps.ByName("id"), http.StatusOK, func(c *models.Catalog, s *session.Session) error {
		return s.SelectPackage(c, body.PackageID, body.Tier)
	})
}

// PUT /api/sessions/:id/markup
func (h *Handler) SetMarkup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var m models.Markup
	if err := utils.DecodeJSON(w, r, &m); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.mutate(w, ps.ByName("id"), http.StatusOK, func(_ *models.Catalog, s *session.Session) error {
		return s.SetMarkup(m)
	})
}

// POST /api/sessions/:id/fleet
func (h *Handler) AddVehicle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.mutate(w, ps.ByName("id"), http.StatusCreated, func(_ *models.Catalog, s *session.Session) error {
		s.AddVehicle()
		return nil
	})
}

// PUT /api/sessions/:id/fleet/:itemid
func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Field string          `json:"field"`
		Value json.RawMessage `json:"value"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := fleet.ParseUpdate(body.Field, body.Value)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.mutate(w, ps.ByName("id"), http.StatusOK, func(_ *models.Catalog, s *session.Session) error {
		if _, ok := s.UpdateVehicle(ps.ByName("itemid"), u); !ok {
			return errFleetItemNotFound
		}
		return nil
	})
}

// DELETE /api/sessions/:id/fleet/:itemid
func (h *Handler) RemoveVehicle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.mutate(w, ps.ByName("id"), http.StatusOK, func(_ *models.Catalog, s *session.Session) error {
		if !s.RemoveVehicle(ps.ByName("itemid")) {
			return errFleetItemNotFound
		}
		return nil
	})
}

// PUT /api/sessions/:id/days/:day/stay
func (h *Handler) OverrideStay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	day, err := utils.ParamInt(ps, "day")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	var body struct {
		Hotel    string `json:"hotel"`
		RoomType string `json:"roomType"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Hotel == "" || body.RoomType == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "hotel and roomType are required")
		return
	}
	h.mutate(w, ps.ByName("id"), http.StatusOK, func(c *models.Catalog, s *session.Session) error {
		pkg, ok := s.ActivePackage(c)
		if !ok {
			return session.ErrNoPackage
		}
		if day < 0 || day >= len(pkg.Route) {
			return fmt.Errorf("%w: %d", session.ErrDayOutOfRange, day)
		}
		hotel, room, err := findStay(c, pkg.Route[day], body.Hotel, body.RoomType)
		if err != nil {
			return err
		}
		return s.OverrideStay(c, day, *hotel, *room)
	})
}

// DELETE /api/sessions/:id/days/:day/stay
func (h *Handler) ClearStay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	day, err := utils.ParamInt(ps, "day")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.mutate(w, ps.ByName("id"), http.StatusOK, func(_ *models.Catalog, s *session.Session) error {
		s.ClearStay(day)
		return nil
	})
}

// PUT /api/sessions/:id/days/:day/sightseeing
func (h *Handler) SetSightseeing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	day, err := utils.ParamInt(ps, "day")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	var body struct {
		Spots []string `json:"spots"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.mutate(w, ps.ByName("id"), http.StatusOK, func(c *models.Catalog, s *session.Session) error {
		return s.SetSightseeing(c, day, body.Spots)
	})
}

// DELETE /api/sessions/:id/days/:day/sightseeing
func (h *Handler) ClearSightseeing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	day, err := utils.ParamInt(ps, "day")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.mutate(w, ps.ByName("id"), http.StatusOK, func(_ *models.Catalog, s *session.Session) error {
		s.ClearSightseeing(day)
		return nil
	})
}
