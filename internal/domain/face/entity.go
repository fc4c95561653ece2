package face

import (
	"context"
	"time"
)

// Detection is one face found in a capture frame.
type Detection struct {
	Descriptor []float64
	Score      float64
}

// Provider abstracts the face-recognition engine. Detection and distance
// computation happen outside this service; it only orchestrates enrollment
// and the threshold comparison.
type Provider interface {
	Detect(ctx context.Context, frame []byte) ([]Detection, error)
	Distance(d1, d2 []float64) float64
}

// Profile is a user's enrolled reference descriptor. Enrollment happens at
// most once per user; re-enrollment replaces the descriptor.
type Profile struct {
	UserID     string
	Descriptor []float64
	EnrolledAt time.Time
}
