package user

import (
	"strings"
	"testing"

	"github.com/brandberg-skola/absence-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFullName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{
			"both names",
			User{Email: "erik@example.com", FirstName: strPtr("Erik"), LastName: strPtr("Eriksson")},
			"Erik Eriksson",
		},
		{
			"first name only",
			User{Email: "erik@example.com", FirstName: strPtr("Erik")},
			"Erik",
		},
		{
			"last name only",
			User{Email: "erik@example.com", LastName: strPtr("Eriksson")},
			"Eriksson",
		},
		{
			"no names falls back to email",
			User{Email: "erik@example.com"},
			"erik@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.FullName())
		})
	}
}

func TestIsAdmin(t *testing.T) {
	admin := User{Role: RoleAdmin}
	staff := User{Role: RoleStaff}
	assert.True(t, admin.IsAdmin())
	assert.False(t, staff.IsAdmin())
}

func TestCreateUserRequestValidate(t *testing.T) {
	valid := func() CreateUserRequest {
		return CreateUserRequest{
			Email:    "new@example.com",
			Password: "supersecret",
			Role:     RoleStaff,
		}
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid()
		assert.NoError(t, req.Validate())
	})

	t.Run("invalid email", func(t *testing.T) {
		req := valid()
		req.Email = "not-an-email"
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "email")
	})

	t.Run("short password", func(t *testing.T) {
		req := valid()
		req.Password = "short"
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "password")
	})

	t.Run("invalid role", func(t *testing.T) {
		req := valid()
		req.Role = Role("superuser")
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "role")
	})

	t.Run("name too long", func(t *testing.T) {
		req := valid()
		req.FirstName = strPtr(strings.Repeat("a", 101))
		var errs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &errs)
		assert.Contains(t, errs.ToMap(), "first_name")
	})
}
