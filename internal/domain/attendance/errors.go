package attendance

import "errors"

// Attendance domain errors
var (
	// Transition guard errors
	ErrOutsideGeofence = errors.New("you are outside the allowed attendance radius")
	ErrNotCheckedIn    = errors.New("you have not checked in yet")

	// Client-reported geolocation failures
	ErrLocationTimeout          = errors.New("location acquisition timed out")
	ErrLocationPermissionDenied = errors.New("location permission denied")
	ErrLocationUnavailable      = errors.New("location is unavailable")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
