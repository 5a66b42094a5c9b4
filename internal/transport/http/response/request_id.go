package response

import (
	"net/http"

	appCtx "github.com/baechuer/real-time-ressys/services/volunteer-service/internal/pkg/context"
)

// RequestIDFromRequest prefers the id set by the RequestID middleware and
// falls back to the inbound header.
func RequestIDFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := appCtx.GetRequestID(r.Context()); id != "" {
		return id
	}
	if v := r.Header.Get("X-Request-Id"); v != "" {
		return v
	}
	return r.Header.Get("X-Request-ID")
}
