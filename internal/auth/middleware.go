package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Elias0099/examenes-api/internal/platform/httpx"
)

// Middleware wires token authentication and role authorization for HTTP
// handlers. Authentication failures map to 401 (the client must obtain a new
// token); role denials map to 403 (the client must not retry with the same
// identity). The two are never conflated.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Authenticate validates the Authorization bearer token and stores the
// resulting principal in the request context. It rejects the request before
// any handler logic runs when the token is absent, malformed, tampered or
// expired.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		principal, err := m.Service.Validate(tokenString)
		if err != nil {
			// Never log the raw token.
			if m.Logger != nil {
				m.Logger.Debug("token rejected", slog.String("reason", err.Error()), slog.String("path", r.URL.Path))
			}
			httpx.RespondError(w, err)
			return
		}
		ctx := ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole ensures the authenticated principal holds at least one of the
// given roles. It must be mounted after Authenticate.
func (m Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			if !principal.HasAnyRole(roles...) {
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
