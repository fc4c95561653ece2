package face

import "errors"

// Face verification domain errors. Ambiguous-capture errors are retryable:
// the caller may capture a new frame and try again.
var (
	ErrFaceNotRegistered     = errors.New("no face registered for this user")
	ErrNoFaceDetected        = errors.New("no face detected, please try again")
	ErrMultipleFacesDetected = errors.New("multiple faces detected, please try again")
	ErrFaceNotMatched        = errors.New("face does not match the registered profile")
	ErrProviderUnavailable   = errors.New("face recognition service is unavailable")
)
