package face

import "context"

// Repository stores enrolled face profiles.
type Repository interface {
	// GetByUserID returns a user's profile, or ErrFaceNotRegistered
	GetByUserID(ctx context.Context, userID string) (Profile, error)

	// Upsert stores a profile, replacing any previous enrollment
	Upsert(ctx context.Context, profile Profile) error
}
