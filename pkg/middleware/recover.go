package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/product-catalog/api/pkg/logger"
	"github.com/product-catalog/api/pkg/response"
)

// Recovery converts handler panics into a 500 JSON response instead of
// dropping the connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithCtx(r.Context()).Error("panic recovered",
					"panic", rec,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				response.Error(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
