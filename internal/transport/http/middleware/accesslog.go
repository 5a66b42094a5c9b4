package middleware

import (
	"net/http"
	"time"

	zlog "github.com/rs/zerolog/log"

	appCtx "github.com/baechuer/real-time-ressys/services/volunteer-service/internal/pkg/context"
)

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(sw, r)

		ev := zlog.Info()
		if sw.status >= http.StatusInternalServerError {
			ev = zlog.Error()
		}
		ev.
			Str("request_id", appCtx.GetRequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Int("bytes", sw.bytes).
			Dur("latency", time.Since(start)).
			Str("remote_ip", r.RemoteAddr).
			Msg("http_request")
	})
}
