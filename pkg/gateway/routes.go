package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router builds the gateway's HTTP routing tree. Reads are open; writes go
// through signature auth and rate limiting.
func (g *Gateway) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(g.cfg.RequestTimeout))
	r.Use(g.loggingMiddleware)
	r.Use(g.corsMiddleware)

	r.Get("/health", g.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", g.handleStatus)

		// Read surface: no authentication, the ledger is public record.
		r.Get("/lands", g.handleListLands)
		r.Get("/lands/count", g.handleLandCount)
		r.Get("/lands/{id}", g.handleGetLand)
		r.Get("/lands/{id}/history", g.handleGetHistory)
		r.Get("/lands/{id}/owner/{address}", g.handleIsOwner)
		r.Get("/owners/{address}/lands", g.handleOwnerLands)
		r.Get("/events", g.handleListEvents)
		r.Get("/events/ws", g.hub.serve)

		// Write surface: signed operations only.
		r.Group(func(r chi.Router) {
			r.Use(g.authMiddleware)
			r.Use(g.rateLimitMiddleware)

			r.Post("/lands", g.handleRegisterLand)
			r.Post("/lands/{id}/verify", g.handleVerifyLand)
			r.Post("/lands/{id}/transfer", g.handleTransferOwnership)
			r.Post("/admin/transfer", g.handleTransferAdmin)
		})
	})

	return r
}
