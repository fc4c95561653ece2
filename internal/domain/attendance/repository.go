package attendance

import (
	"context"
)

// Repository is the record store: an append-only collection of attendance
// records. Update never creates; it returns ErrAttendanceNotFound when the
// id does not exist.
type Repository interface {
	// Create appends a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves a record by id
	GetByID(ctx context.Context, id string) (Attendance, error)

	// Update overwrites the mutable fields of an existing record
	Update(ctx context.Context, attendance Attendance) error

	// ListByDate returns all records of one user for a calendar date,
	// ordered by clock-in ascending
	ListByDate(ctx context.Context, userID string, date string) ([]Attendance, error)

	// ListByRange returns a user's records with date in [startDate, endDate],
	// ordered by date then clock-in ascending
	ListByRange(ctx context.Context, userID string, startDate, endDate string) ([]Attendance, error)

	// LatestForDate returns the most recent record of a user for a date, or
	// nil when the day has no records yet
	LatestForDate(ctx context.Context, userID string, date string) (*Attendance, error)

	// ListMy returns a user's records with filters and pagination
	ListMy(ctx context.Context, userID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// ListUnsynced returns a user's records not yet acknowledged upstream
	ListUnsynced(ctx context.Context, userID string) ([]Attendance, error)

	// MarkSynced flips the synced flag of a record to true
	MarkSynced(ctx context.Context, id string) error
}
