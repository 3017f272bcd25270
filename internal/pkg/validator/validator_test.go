package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("a"))
	assert.False(t, IsEmpty(" a "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@school.se",
		"user+tag@example.co.uk",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"notanemail",
		"@example.com",
		"user@",
		"user@domain",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("018f3b1a-7c2d-7e4f-8a9b-0c1d2e3f4a5b"))
	// Uppercase input is normalized
	assert.True(t, IsValidUUID("018F3B1A-7C2D-7E4F-8A9B-0C1D2E3F4A5B"))
	// v4 UUID is rejected
	assert.False(t, IsValidUUID("550e8400-e29b-41d4-a716-446655440000"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2024-03-11")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), date)

	for _, raw := range []string{"", "11/03/2024", "2024-13-01", "2024-02-30"} {
		_, ok := IsValidDate(raw)
		assert.False(t, ok, raw)
	}
}

func TestIsValidMonth(t *testing.T) {
	month, ok := IsValidMonth("2024-02")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), month)

	for _, raw := range []string{"", "2024", "2024-13", "2024-02-01"} {
		_, ok := IsValidMonth(raw)
		assert.False(t, ok, raw)
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is invalid"},
		{Field: "password", Message: "password is too short"},
	}

	assert.Equal(t, "email: email is invalid; password: password is too short", errs.Error())
	assert.Equal(t, map[string]string{
		"email":    "email is invalid",
		"password": "password is too short",
	}, errs.ToMap())
}
