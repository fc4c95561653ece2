package face

import (
	"context"
	"fmt"

	"github.com/ammarbari/attendance-app/internal/domain/face"
	"github.com/ammarbari/attendance-app/internal/pkg/clockutil"
)

type FaceServiceImpl struct {
	repo     face.Repository
	provider face.Provider
	clock    clockutil.Clock

	// matchThreshold is the exclusive upper bound on descriptor distance
	// for a match.
	matchThreshold float64
}

func NewFaceService(repo face.Repository, provider face.Provider, clock clockutil.Clock, matchThreshold float64) face.Service {
	return &FaceServiceImpl{
		repo:           repo,
		provider:       provider,
		clock:          clock,
		matchThreshold: matchThreshold,
	}
}

// detectSingle runs detection and requires exactly one face in the frame.
func (f *FaceServiceImpl) detectSingle(ctx context.Context, frame []byte) (face.Detection, error) {
	detections, err := f.provider.Detect(ctx, frame)
	if err != nil {
		return face.Detection{}, fmt.Errorf("face detection failed: %w", err)
	}

	switch len(detections) {
	case 0:
		return face.Detection{}, face.ErrNoFaceDetected
	case 1:
		return detections[0], nil
	default:
		return face.Detection{}, face.ErrMultipleFacesDetected
	}
}

// Enroll implements face.Service.
func (f *FaceServiceImpl) Enroll(ctx context.Context, userID string, frame []byte) error {
	detection, err := f.detectSingle(ctx, frame)
	if err != nil {
		return err
	}

	profile := face.Profile{
		UserID:     userID,
		Descriptor: detection.Descriptor,
		EnrolledAt: f.clock.Now(),
	}

	if err := f.repo.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("failed to store face profile: %w", err)
	}

	return nil
}

// Verify implements face.Service.
func (f *FaceServiceImpl) Verify(ctx context.Context, userID string, frame []byte) error {
	profile, err := f.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	detection, err := f.detectSingle(ctx, frame)
	if err != nil {
		return err
	}

	if f.provider.Distance(detection.Descriptor, profile.Descriptor) >= f.matchThreshold {
		return face.ErrFaceNotMatched
	}

	return nil
}
