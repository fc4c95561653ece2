package postgresql

import (
	"context"
	"fmt"

	syncdomain "github.com/ammarbari/attendance-app/internal/domain/sync"
	"github.com/ammarbari/attendance-app/internal/pkg/database"
)

// syncQueueRepository is the durable variant of the offline sync queue: it
// survives restarts, unlike the in-memory queue.
type syncQueueRepository struct {
	db *database.DB
}

func NewSyncQueueRepository(db *database.DB) syncdomain.Queue {
	return &syncQueueRepository{db: db}
}

// Enqueue implements sync.Queue.
func (s *syncQueueRepository) Enqueue(ctx context.Context, entry syncdomain.Entry) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO sync_queue (record_id, user_id, enqueued_at, attempts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (record_id)
		DO UPDATE SET attempts = EXCLUDED.attempts
	`

	if _, err := q.Exec(ctx, query, entry.RecordID, entry.UserID, entry.EnqueuedAt, entry.Attempts); err != nil {
		return fmt.Errorf("failed to enqueue sync entry: %w", err)
	}

	return nil
}

// Take implements sync.Queue: it removes and returns every pending entry in
// one statement so concurrent drains cannot double-deliver.
func (s *syncQueueRepository) Take(ctx context.Context) ([]syncdomain.Entry, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		DELETE FROM sync_queue
		RETURNING record_id, user_id, enqueued_at, attempts
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to take sync queue snapshot: %w", err)
	}
	defer rows.Close()

	var entries []syncdomain.Entry
	for rows.Next() {
		var entry syncdomain.Entry
		if err := rows.Scan(&entry.RecordID, &entry.UserID, &entry.EnqueuedAt, &entry.Attempts); err != nil {
			return nil, fmt.Errorf("failed to scan sync entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sync entries: %w", err)
	}

	return entries, nil
}

// Len implements sync.Queue.
func (s *syncQueueRepository) Len(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, s.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM sync_queue`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sync queue: %w", err)
	}

	return count, nil
}
