package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ammarbari/attendance-app/internal/domain/face"
	"github.com/ammarbari/attendance-app/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type faceRepository struct {
	db *database.DB
}

func NewFaceRepository(db *database.DB) face.Repository {
	return &faceRepository{db: db}
}

// GetByUserID implements face.Repository.
func (f *faceRepository) GetByUserID(ctx context.Context, userID string) (face.Profile, error) {
	q := GetQuerier(ctx, f.db)

	query := `
		SELECT user_id, descriptor, enrolled_at
		FROM face_profiles
		WHERE user_id = $1
	`

	var profile face.Profile
	err := q.QueryRow(ctx, query, userID).Scan(&profile.UserID, &profile.Descriptor, &profile.EnrolledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return face.Profile{}, face.ErrFaceNotRegistered
		}
		return face.Profile{}, fmt.Errorf("failed to get face profile: %w", err)
	}

	return profile, nil
}

// Upsert implements face.Repository. Re-enrollment replaces the descriptor.
func (f *faceRepository) Upsert(ctx context.Context, profile face.Profile) error {
	q := GetQuerier(ctx, f.db)

	query := `
		INSERT INTO face_profiles (user_id, descriptor, enrolled_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET descriptor = EXCLUDED.descriptor, enrolled_at = EXCLUDED.enrolled_at
	`

	if _, err := q.Exec(ctx, query, profile.UserID, profile.Descriptor, profile.EnrolledAt); err != nil {
		return fmt.Errorf("failed to upsert face profile: %w", err)
	}

	return nil
}
