package middleware

import (
	"net/http"
	"time"

	"github.com/product-catalog/api/pkg/logger"
	"github.com/product-catalog/api/pkg/reqid"
)

// statusWriter captures the response status for the access log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Logger writes one structured access-log line per request and injects a
// request-scoped logger (tagged with request_id) into the context.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		reqLog := logger.L.With("request_id", reqid.FromCtx(r.Context()))
		ctx := logger.Inject(r.Context(), reqLog)

		next.ServeHTTP(sw, r.WithContext(ctx))

		reqLog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote", r.RemoteAddr,
		)
	})
}
