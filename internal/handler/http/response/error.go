package response

import (
	"errors"
	"net/http"

	"github.com/brandberg-skola/absence-backend-go/internal/domain/absence"
	"github.com/brandberg-skola/absence-backend-go/internal/domain/auth"
	"github.com/brandberg-skola/absence-backend-go/internal/domain/user"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountNotLinked):
		Forbidden(w, "No account exists for this Google email")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Administrator privileges required")
	case errors.Is(err, user.ErrCannotDeleteSelf):
		Conflict(w, "Cannot delete your own account")

	// Absence domain errors
	case errors.Is(err, absence.ErrRequestNotFound):
		NotFound(w, "Absence request not found")
	case errors.Is(err, absence.ErrAttachmentNotFound):
		NotFound(w, "Attachment not found")
	case errors.Is(err, absence.ErrNotRequestOwner):
		Forbidden(w, "You do not own this absence request")
	case errors.Is(err, absence.ErrAdminRequired):
		Forbidden(w, "Administrator privileges required")
	case errors.Is(err, absence.ErrAlreadyProcessed):
		Conflict(w, "Absence request already processed")
	case errors.Is(err, absence.ErrNotEditable):
		Conflict(w, "Only submitted requests can be edited")
	case errors.Is(err, absence.ErrNotDeletable):
		Conflict(w, "Only submitted requests can be deleted")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
