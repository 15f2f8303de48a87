package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/minyoungbaek/eventory/internal/config"
	"github.com/minyoungbaek/eventory/internal/transport/http/handlers"
	"github.com/minyoungbaek/eventory/internal/transport/http/middleware"
)

func New(
	clubsH *handlers.ClubsHandler,
	eventsH *handlers.EventsHandler,
	reviewsH *handlers.ReviewsHandler,
	healthH *handlers.HealthHandler,
	auth *middleware.AuthMiddleware,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", healthH.Healthz)

	r.Route("/api/v1", func(r chi.Router) {
		// public reads
		r.Get("/clubs", clubsH.List)
		r.Get("/clubs/{club_id}", clubsH.Get)
		r.Get("/events", eventsH.List)
		r.Get("/events/{event_id}", eventsH.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.Require)

			r.Post("/clubs", clubsH.Create)
			r.Get("/clubs/me", clubsH.ListMine)
			r.Patch("/clubs/{club_id}", clubsH.Update)
			r.Delete("/clubs/{club_id}", clubsH.Delete)
			r.Post("/clubs/{club_id}/join", clubsH.Join)
			r.Post("/clubs/{club_id}/out", clubsH.Out)
			r.Get("/clubs/{club_id}/applicants", clubsH.Applicants)
			r.Patch("/clubs/{club_id}/approve/{user_id}", clubsH.Approve)
			r.Delete("/clubs/{club_id}/reject/{user_id}", clubsH.Reject)

			r.Post("/events", eventsH.Create)
			r.Get("/events/me", eventsH.ListMine)
			r.Patch("/events/{event_id}", eventsH.Update)
			r.Delete("/events/{event_id}", eventsH.Delete)
			r.Post("/events/{event_id}/join", eventsH.Join)
			r.Post("/events/{event_id}/out", eventsH.Out)

			r.Post("/reviews", reviewsH.Create)
			r.Get("/reviews", reviewsH.List)
			r.Get("/reviews/{review_id}", reviewsH.Get)
			r.Patch("/reviews/{review_id}", reviewsH.Update)
			r.Delete("/reviews/{review_id}", reviewsH.Delete)
		})
	})

	return r
}
