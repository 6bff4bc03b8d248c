// Package middleware contains the HTTP middleware stack: authentication,
// request logging, panic recovery, CORS and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/product-catalog/api/pkg/auth"
	"github.com/product-catalog/api/pkg/response"
)

type authCtxKey struct{}

// authContext carries the verified claims and the raw bearer token of the
// current request. The raw token is needed by logout and refresh, which
// operate on the token itself.
type authContext struct {
	Claims *auth.Claims
	Token  string
}

const unauthenticatedMessage = "Usuário não autenticado ou token inválido."

// Auth rejects requests that do not carry a valid, non-revoked bearer
// token and stores the claims in the request context.
func Auth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				response.Error(w, http.StatusUnauthorized, unauthenticatedMessage)
				return
			}

			claims, err := auth.Validate(raw)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, unauthenticatedMessage)
				return
			}

			ctx := context.WithValue(r.Context(), authCtxKey{}, authContext{Claims: claims, Token: raw})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ClaimsFromCtx returns the verified claims stored by Auth, or nil when
// the request did not pass through it.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	if ac, ok := ctx.Value(authCtxKey{}).(authContext); ok {
		return ac.Claims
	}
	return nil
}

// TokenFromCtx returns the raw bearer token stored by Auth.
func TokenFromCtx(ctx context.Context) string {
	if ac, ok := ctx.Value(authCtxKey{}).(authContext); ok {
		return ac.Token
	}
	return ""
}
