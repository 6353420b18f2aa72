package itinerary

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tripdeck/composer"
	"tripdeck/live"
	"tripdeck/models"
	"tripdeck/pricing"
	"tripdeck/session"
	"tripdeck/utils"
)

type builderView struct {
	Stage    composer.Stage     `json:"stage"`
	Days     []models.CustomDay `json:"days"`
	Estimate pricing.Breakdown  `json:"estimate"`
	Net      models.Money       `json:"net"`
}

// withBuilder runs fn against the session's builder and answers with the
// draft and its running estimate. open starts a builder when none exists.
func (h *Handler) withBuilder(w http.ResponseWriter, id string, open bool, fn func(c *models.Catalog, b *composer.Builder) error) {
	c := h.Catalog.Current()
	var view builderView
	err := h.Sessions.Do(id, func(s *session.Session) error {
		b := s.Builder
		if b == nil {
			if !open {
				return session.ErrNoBuilder
			}
			b = s.OpenBuilder()
		}
		if fn != nil {
			if err := fn(c, b); err != nil {
				return err
			}
		}
		est, err := s.BuilderEstimate(c)
		if err != nil {
			return err
		}
		view = builderView{Stage: b.Stage(), Days: b.Days(), Estimate: est, Net: est.Net()}
		return nil
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// GET /api/sessions/:id/builder
func (h *Handler) GetBuilder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.withBuilder(w, ps.ByName("id"), false, nil)
}

// POST /api/sessions/:id/builder/stage
func (h *Handler) SetStage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		City        string   `json:"city"`
		Hotel       string   `json:"hotel"`
		RoomType    string   `json:"roomType"`
		Sightseeing []string `json:"sightseeing"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.withBuilder(w, ps.ByName("id"), true, func(c *models.Catalog, b *composer.Builder) error {
		st := composer.Stage{City: body.City, Sightseeing: body.Sightseeing}
		if body.Hotel != "" {
			hotel, room, err := findStay(c, body.City, body.Hotel, body.RoomType)
			if err != nil {
				return err
			}
			st.Hotel, st.RoomType = hotel, room
		} else if body.RoomType != "" {
			return composer.ErrRoomNotInHotel
		}
		return b.SetStage(st)
	})
}

// POST /api/sessions/:id/builder/stage/toggle
func (h *Handler) ToggleSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Name string `json:"name"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil || body.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name is required")
		return
	}
	h.withBuilder(w, ps.ByName("id"), false, func(_ *models.Catalog, b *composer.Builder) error {
		b.ToggleSightseeing(body.Name)
		return nil
	})
}

// POST /api/sessions/:id/builder/days
func (h *Handler) AppendDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.withBuilder(w, ps.ByName("id"), false, func(_ *models.Catalog, b *composer.Builder) error {
		_, err := b.Append()
		return err
	})
}

// POST /api/sessions/:id/builder/days/:i/duplicate
func (h *Handler) DuplicateDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	i, err := utils.ParamInt(ps, "i")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.withBuilder(w, ps.ByName("id"), false, func(_ *models.Catalog, b *composer.Builder) error {
		_, err := b.DuplicateAt(i)
		return err
	})
}

// DELETE /api/sessions/:id/builder/days/:i
func (h *Handler) RemoveDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	i, err := utils.ParamInt(ps, "i")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.withBuilder(w, ps.ByName("id"), false, func(_ *models.Catalog, b *composer.Builder) error {
		return b.RemoveAt(i)
	})
}

// POST /api/sessions/:id/builder/finalize makes the draft the active package.
func (h *Handler) FinalizeBuilder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.mutate(w, ps.ByName("id"), http.StatusOK, func(_ *models.Catalog, s *session.Session) error {
		_, err := s.FinalizeBuilder()
		return err
	})
}

// DELETE /api/sessions/:id/builder
func (h *Handler) CancelBuilder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	err := h.Sessions.Do(id, func(s *session.Session) error {
		s.CancelBuilder()
		return nil
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.publish(live.SessionRoom(id), live.ActionSessionUpdated, utils.M{"id": id, "builderOpen": false})
}
