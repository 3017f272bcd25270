package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brandberg-skola/absence-backend-go/internal/domain/user"
	"github.com/brandberg-skola/absence-backend-go/internal/handler/http/middleware"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserService struct {
	users map[string]user.User
}

func (f *fakeUserService) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	return user.User{}, fmt.Errorf("not implemented")
}

func (f *fakeUserService) GetUser(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserService) DeleteUser(ctx context.Context, actingUserID, id string) error {
	return fmt.Errorf("not implemented")
}

func TestUserHandlerMe(t *testing.T) {
	firstName := "Erik"
	lastName := "Lund"
	userService := &fakeUserService{users: map[string]user.User{
		"user-1": {
			ID:        "user-1",
			Email:     "erik@example.com",
			FirstName: &firstName,
			LastName:  &lastName,
			Role:      user.RoleStaff,
			CreatedAt: time.Now(),
		},
	}}

	jwtService := jwt.NewJWTService("test-secret-key", "1h", "24h")
	handler := NewUserHandler(userService)

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtService))
		r.Get("/me", handler.Me)
	})

	t.Run("returns the token's user", func(t *testing.T) {
		token, _, err := jwtService.GenerateAccessToken("user-1", "erik@example.com", user.RoleStaff)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success bool              `json:"success"`
			Data    user.UserResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "user-1", body.Data.ID)
		assert.Equal(t, "erik@example.com", body.Data.Email)
		assert.Equal(t, "Erik Lund", body.Data.FullName)
		assert.Equal(t, user.RoleStaff, body.Data.Role)
	})

	t.Run("unknown user id", func(t *testing.T) {
		token, _, err := jwtService.GenerateAccessToken("user-2", "gone@example.com", user.RoleStaff)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
