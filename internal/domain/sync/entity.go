package sync

import (
	"context"
	"time"

	"github.com/ammarbari/attendance-app/internal/domain/attendance"
)

// Entry is a reference to an attendance record awaiting sync.
type Entry struct {
	RecordID   string
	UserID     string
	EnqueuedAt time.Time
	Attempts   int
}

// Queue buffers entries until a drain succeeds. Implementations must be
// safe for concurrent use; entries are never dropped on failure.
type Queue interface {
	// Enqueue appends an entry
	Enqueue(ctx context.Context, entry Entry) error

	// Take removes and returns the whole queue (the drain snapshot)
	Take(ctx context.Context) ([]Entry, error)

	// Len reports the number of pending entries
	Len(ctx context.Context) (int, error)
}

// Syncer pushes records to the upstream system of record.
type Syncer interface {
	// Push acknowledges one record upstream
	Push(ctx context.Context, record attendance.Attendance) error

	// Online reports whether the upstream is currently reachable
	Online(ctx context.Context) bool
}
