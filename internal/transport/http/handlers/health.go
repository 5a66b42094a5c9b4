package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/transport/http/response"
	zlog "github.com/rs/zerolog/log"
)

// Pinger is a dependency checked by Readyz.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.Data(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz pings every dependency and reports 503 if any is down.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{}
	ready := true
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			zlog.Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			status[name] = "down"
			ready = false
			continue
		}
		status[name] = "up"
	}

	if !ready {
		response.Fail(w, http.StatusServiceUnavailable, "not_ready", "dependency unavailable", status, response.RequestIDFromRequest(r))
		return
	}
	response.Data(w, http.StatusOK, status)
}
