package sync

import (
	"context"

	"github.com/ammarbari/attendance-app/internal/domain/attendance"
)

// Service keeps every persisted record moving toward synced=true without
// ever blocking the user-facing transition that produced it.
type Service interface {
	// ProcessRecord attempts an immediate sync of a just-persisted record
	// when the upstream is reachable, and enqueues it otherwise. The return
	// value reports whether the record is synced now; failures are absorbed
	// into the queue.
	ProcessRecord(ctx context.Context, record attendance.Attendance) bool

	// Drain snapshots the queue, clears it, pushes each entry, and
	// re-enqueues only the ones that still fail. When a drain empties a
	// non-empty queue, affected users are notified once.
	Drain(ctx context.Context) error

	// Status reports queue depth, upstream reachability, and the calling
	// user's unsynced record count when the context carries an identity.
	Status(ctx context.Context) (StatusResponse, error)
}

type StatusResponse struct {
	Pending  int  `json:"pending"`
	Unsynced int  `json:"unsynced"`
	Online   bool `json:"online"`
}
