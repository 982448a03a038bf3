package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rvrjc/campusbot/internal/middleware"
	"github.com/rvrjc/campusbot/pkg/logger"
)

// Handlers groups the route handlers served by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Chat     *ChatHandler
	Sessions *SessionHandler
	Topics   *TopicsHandler
}

// NewRouter builds the HTTP routes.
func NewRouter(h Handlers, allowedOrigins []string, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigins))

	r.Get("/health", h.Health.Health)
	r.Get("/ready", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", h.Chat.Send)
		r.Get("/topics", h.Topics.List)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/history", h.Sessions.History)
			r.Delete("/", h.Sessions.Delete)
		})
	})

	return r
}
