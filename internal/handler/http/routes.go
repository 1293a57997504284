package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/health", h.health)

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		r.Route("/banks", func(r chi.Router) {
			r.Get("/", h.listBanks)
			r.Post("/", h.createBank)

			r.Route("/{bank_id}", func(r chi.Router) {
				r.Get("/", h.getBank)
				r.Put("/", h.updateBank)
				r.Delete("/", h.deleteBank)

				r.Route("/agencies", func(r chi.Router) {
					r.Get("/", h.listAgencies)
					r.Post("/", h.createAgency)
					r.Get("/{agency_id}", h.getAgency)
					r.Put("/{agency_id}", h.updateAgency)
					r.Delete("/{agency_id}", h.deleteAgency)
				})
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.listUsers)
			r.Post("/", h.createUser)
			r.Post("/verify", h.verifyUser)
			r.Get("/{user_id}", h.getUser)
			r.Put("/{username}/password", h.changePassword)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
