package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/metrics"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/handlers"
	authmw "github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/response"
)

func New(
	h *handlers.EventsHandler,
	auth *authmw.AuthMiddleware,
	z *handlers.HealthHandler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authmw.AccessLog)
	r.Use(authmw.Metrics)

	r.Get("/healthz", z.Healthz)
	r.Get("/readyz", z.Readyz)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/volunteer/v1", func(r chi.Router) {
		if cfg.RLEnabled {
			r.Use(httprate.Limit(
				cfg.RLLimit,
				cfg.RLWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(tooManyRequests),
			))
		}
		r.Use(auth.Optional)

		r.Get("/events/{event_id}", h.GetEvent)
		r.Get("/campaigns/{campaign_id}/events", h.ListCampaignEvents)
	})

	return r
}

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	response.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", nil, response.RequestIDFromRequest(r))
}
