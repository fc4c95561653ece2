package memory

import (
	"context"
	"sync"

	syncdomain "github.com/ammarbari/attendance-app/internal/domain/sync"
)

// syncQueue is the process-lifetime offline queue: entries do not survive a
// restart. The durable variant lives in the postgresql package behind the
// same interface.
type syncQueue struct {
	mu      sync.Mutex
	entries []syncdomain.Entry
}

func NewSyncQueue() syncdomain.Queue {
	return &syncQueue{}
}

// Enqueue implements sync.Queue.
func (q *syncQueue) Enqueue(_ context.Context, entry syncdomain.Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, entry)
	return nil
}

// Take implements sync.Queue: snapshot and clear in one step.
func (q *syncQueue) Take(_ context.Context) ([]syncdomain.Entry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	entries := q.entries
	q.entries = nil
	return entries, nil
}

// Len implements sync.Queue.
func (q *syncQueue) Len(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries), nil
}
