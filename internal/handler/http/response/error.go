package response

import (
	"errors"
	"net/http"

	"github.com/ammarbari/attendance-app/internal/domain/attendance"
	"github.com/ammarbari/attendance-app/internal/domain/auth"
	"github.com/ammarbari/attendance-app/internal/domain/face"
	"github.com/ammarbari/attendance-app/internal/domain/user"
	"github.com/ammarbari/attendance-app/internal/pkg/validator"
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
	// Attendance domain errors
	case errors.Is(err, attendance.ErrOutsideGeofence):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrLocationTimeout),
		errors.Is(err, attendance.ErrLocationPermissionDenied),
		errors.Is(err, attendance.ErrLocationUnavailable):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Face verification errors. Capture and match problems are retryable
	// on the client side, so they come back as 400s.
	case errors.Is(err, face.ErrNoFaceDetected),
		errors.Is(err, face.ErrMultipleFacesDetected),
		errors.Is(err, face.ErrFaceNotMatched):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, face.ErrFaceNotRegistered):
		Conflict(w, err.Error())
	case errors.Is(err, face.ErrProviderUnavailable):
		ServiceUnavailable(w, err.Error())

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
