package routes

import (
	"github.com/julienschmidt/httprouter"

	"tripdeck/itinerary"
	"tripdeck/live"
	"tripdeck/middleware"
	"tripdeck/ratelim"
)

func AddHealthRoutes(router *httprouter.Router) {
	router.GET("/health", itinerary.Health)
}

func AddCatalogRoutes(router *httprouter.Router, h *itinerary.Handler) {
	router.GET("/api/catalog", h.GetCatalog)
	router.GET("/api/catalog/hotels/:city", h.HotelsForCity)
	router.POST("/api/catalog/refresh", middleware.Authenticate(h.RefreshCatalog))
	router.GET("/api/packages", h.ListPackages)
}

func AddSessionRoutes(router *httprouter.Router, h *itinerary.Handler, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/sessions", h.CreateSession)
	router.GET("/api/sessions/:id", h.GetSession)
	router.DELETE("/api/sessions/:id", h.DeleteSession)

	router.PUT("/api/sessions/:id/pax", h.SetPax)
	router.PUT("/api/sessions/:id/meta", h.SetMeta)
	router.POST("/api/sessions/:id/package", h.SelectPackage)
	router.PUT("/api/sessions/:id/markup", h.SetMarkup)

	router.POST("/api/sessions/:id/fleet", h.AddVehicle)
	router.PUT("/api/sessions/:id/fleet/:itemid", h.UpdateVehicle)
	router.DELETE("/api/sessions/:id/fleet/:itemid", h.RemoveVehicle)

	router.PUT("/api/sessions/:id/days/:day/stay", h.OverrideStay)
	router.DELETE("/api/sessions/:id/days/:day/stay", h.ClearStay)
	router.PUT("/api/sessions/:id/days/:day/sightseeing", h.SetSightseeing)
	router.DELETE("/api/sessions/:id/days/:day/sightseeing", h.ClearSightseeing)
	router.GET("/api/sessions/:id/days", h.GetDays)
	router.GET("/api/sessions/:id/pricing", h.GetPricing)

	router.GET("/api/sessions/:id/quote", middleware.OptionalAuth(h.GetQuote))
	router.GET("/api/sessions/:id/quote.pdf", rateLimiter.Limit(middleware.OptionalAuth(h.DownloadQuotePDF)))
}

func AddBuilderRoutes(router *httprouter.Router, h *itinerary.Handler) {
	router.GET("/api/sessions/:id/builder", h.GetBuilder)
	router.DELETE("/api/sessions/:id/builder", h.CancelBuilder)
	router.POST("/api/sessions/:id/builder/stage", h.SetStage)
	router.POST("/api/sessions/:id/builder/stage/toggle", h.ToggleSpot)
	router.POST("/api/sessions/:id/builder/days", h.AppendDay)
	router.POST("/api/sessions/:id/builder/days/:i/duplicate", h.DuplicateDay)
	router.DELETE("/api/sessions/:id/builder/days/:i", h.RemoveDay)
	router.POST("/api/sessions/:id/builder/finalize", h.FinalizeBuilder)
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/catalog", live.Handler(hub, func(httprouter.Params) string {
		return live.CatalogRoom
	}))
	router.GET("/ws/sessions/:id", live.Handler(hub, func(ps httprouter.Params) string {
		return live.SessionRoom(ps.ByName("id"))
	}))
}
