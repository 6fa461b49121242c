package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware(t *testing.T) (Middleware, *TokenCodec) {
	t.Helper()
	codec := testCodec()
	service := newTestService(t, seededRepo(t))
	return Middleware{Service: service}, codec
}

func protectedRouter(mw Middleware) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate)
		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			_, _ = w.Write([]byte(principal.Username))
		})
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(RoleAdmin))
			r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
		})
	})
	return r
}

func TestAuthenticateRejectsMissingOrBadHeader(t *testing.T) {
	mw, _ := newTestMiddleware(t)
	router := protectedRouter(mw)

	cases := map[string]string{
		"missing":      "",
		"not bearer":   "Basic abc",
		"empty bearer": "Bearer ",
		"garbage":      "Bearer not-a-token",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, name)
	}
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	mw, codec := newTestMiddleware(t)
	router := protectedRouter(mw)

	token, err := codec.Issue("elias", []string{RoleNormal}, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "elias", rr.Body.String())
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	mw, codec := newTestMiddleware(t)
	router := protectedRouter(mw)

	// Issued two hours before the service's fixed clock, TTL one hour.
	token, err := codec.Issue("elias", []string{RoleNormal}, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRoleDistinguishesForbiddenFromUnauthorized(t *testing.T) {
	mw, codec := newTestMiddleware(t)
	router := protectedRouter(mw)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// No token at all: 401, the client must authenticate.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Valid token, wrong role: 403, re-authenticating will not help.
	normalToken, err := codec.Issue("elias", []string{RoleNormal}, now)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+normalToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	adminToken, err := codec.Issue("admin", []string{RoleAdmin, RoleNormal}, now)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
