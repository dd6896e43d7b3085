package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gharfix/gharfix-ai-platform/pkg/logging"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags every request with an id and emits structured start and
// completion logs. An incoming X-Request-ID header is honored so callers can
// correlate their own traces; otherwise a fresh id is generated. The id is
// echoed back on the response.
func RequestLogger(logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", reqID)

			reqLogger := logger.With(
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", reqID,
			)
			reqLogger.Info("request started", "remote_ip", r.RemoteAddr)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			reqLogger.Info("request completed",
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
