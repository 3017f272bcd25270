package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brandberg-skola/absence-backend-go/internal/domain/user"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(jwtService jwt.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
	r.Use(AuthRequired(jwtService))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func doRequest(router *chi.Mux, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key", "1h", "24h")
	router := newProtectedRouter(jwtService)

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid access token", func(t *testing.T) {
		token, _, err := jwtService.GenerateAccessToken("user-1", "erik@example.com", user.RoleStaff)
		require.NoError(t, err)

		w := doRequest(router, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("refresh token is not accepted", func(t *testing.T) {
		token, _, err := jwtService.GenerateRefreshToken("user-1")
		require.NoError(t, err)

		w := doRequest(router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked access token is rejected", func(t *testing.T) {
		token, _, err := jwtService.GenerateAccessToken("user-1", "erik@example.com", user.RoleStaff)
		require.NoError(t, err)

		w := doRequest(router, token)
		require.Equal(t, http.StatusOK, w.Code)

		jwtService.RevokeToken(token)
		w = doRequest(router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := jwt.NewJWTService("another-secret-key", "1h", "24h")
		token, _, err := other.GenerateAccessToken("user-1", "erik@example.com", user.RoleStaff)
		require.NoError(t, err)

		w := doRequest(router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
