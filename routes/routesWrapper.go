package routes

import (
	"github.com/julienschmidt/httprouter"

	"tripdeck/itinerary"
	"tripdeck/ratelim"
)

// RoutesWrapper registers every route the server exposes.
func RoutesWrapper(router *httprouter.Router, h *itinerary.Handler, rateLimiter *ratelim.RateLimiter) {
	AddHealthRoutes(router)
	AddCatalogRoutes(router, h)
	AddSessionRoutes(router, h, rateLimiter)
	AddBuilderRoutes(router, h)
	if h.Hub != nil {
		AddLiveRoutes(router, h.Hub)
	}
}
