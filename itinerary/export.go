package itinerary

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"tripdeck/models"
	"tripdeck/quote"
	"tripdeck/session"
	"tripdeck/utils"
)

func (h *Handler) quoteFor(r *http.Request, id string) (models.Quote, error) {
	c := h.Catalog.Current()
	opts := session.QuoteOptions{
		Destination: h.Destination,
		PreparedBy:  utils.GetUsernameFromRequest(r),
	}
	if h.ShareBaseURL != "" {
		opts.ShareURL = strings.TrimRight(h.ShareBaseURL, "/") + "/s/" + id
	}
	var q models.Quote
	err := h.Sessions.Do(id, func(s *session.Session) error {
		var err error
		q, err = s.Quote(c, opts)
		return err
	})
	return q, err
}

// GET /api/sessions/:id/quote returns the payload and its text rendering.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	q, err := h.quoteFor(r, ps.ByName("id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"quote": q,
		"text":  quote.Text(q),
	})
}

// GET /api/sessions/:id/quote.pdf
func (h *Handler) DownloadQuotePDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	q, err := h.quoteFor(r, ps.ByName("id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	out, err := quote.PDF(ctx, q, quote.PDFOptions{Images: h.Images})
	if err != nil {
		log.Printf("[Quote] PDF for %s failed: %v", q.PackageID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF, please try again")
		return
	}

	name := quote.Filename(q.GuestName, q.Destination, q.Pax)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}
