package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appCtx "github.com/baechuer/real-time-ressys/services/volunteer-service/internal/pkg/context"
)

const (
	HeaderXRequestID = "X-Request-Id"

	maxRequestIDLen = 128
)

// RequestID propagates a caller-supplied id when it is safe to echo into
// headers and logs, and mints a uuid otherwise.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if !validRequestID(reqID) {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(appCtx.WithRequestID(r.Context(), reqID)))
	})
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}
	return true
}
