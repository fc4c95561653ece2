package face

import "context"

// Service gates time-in on face verification when enabled.
type Service interface {
	// Enroll stores the user's reference descriptor from a frame that must
	// contain exactly one face.
	Enroll(ctx context.Context, userID string, frame []byte) error

	// Verify compares a live frame against the enrolled descriptor. It
	// fails with ErrFaceNotRegistered when no enrollment exists.
	Verify(ctx context.Context, userID string, frame []byte) error
}

type EnrollRequest struct {
	// FaceImage is a base64-encoded capture frame.
	FaceImage string `json:"face_image"`
}

type EnrollResponse struct {
	Enrolled   bool   `json:"enrolled"`
	EnrolledAt string `json:"enrolled_at"`
}
