package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testGoogleService(userinfoURL string) *GoogleServiceImpl {
	svc := NewGoogleService("client-id", "client-secret", "http://localhost/callback", []string{"email"}).(*GoogleServiceImpl)
	svc.userinfoURL = userinfoURL
	return svc
}

func TestVerifyUser(t *testing.T) {
	token := &oauth2.Token{AccessToken: "access-token"}

	t.Run("verified email", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"email":"erik@example.com","verified_email":true}`))
		}))
		defer srv.Close()

		info, err := testGoogleService(srv.URL).VerifyUser(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "erik@example.com", info.Email)
	})

	t.Run("unverified email is rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"email":"erik@example.com","verified_email":false}`))
		}))
		defer srv.Close()

		_, err := testGoogleService(srv.URL).VerifyUser(context.Background(), token)
		assert.ErrorIs(t, err, ErrEmailNotVerified)
	})

	t.Run("non-200 userinfo response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := testGoogleService(srv.URL).VerifyUser(context.Background(), token)
		assert.Error(t, err)
	})
}

func TestGenerateState(t *testing.T) {
	svc := testGoogleService(userinfoEndpoint)

	a := svc.GenerateState("agent-a")
	b := svc.GenerateState("agent-a")

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
