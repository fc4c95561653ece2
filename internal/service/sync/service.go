package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ammarbari/attendance-app/internal/domain/attendance"
	syncdomain "github.com/ammarbari/attendance-app/internal/domain/sync"
	"github.com/ammarbari/attendance-app/internal/pkg/clockutil"
	"github.com/ammarbari/attendance-app/internal/pkg/sse"
	"github.com/go-chi/jwtauth/v5"
)

// EventSyncCompleted is published once to each affected user when a drain
// empties a previously non-empty queue.
const EventSyncCompleted = "sync_completed"

type SyncServiceImpl struct {
	queue          syncdomain.Queue
	syncer         syncdomain.Syncer
	attendanceRepo attendance.Repository
	hub            *sse.Hub
	clock          clockutil.Clock
	logger         *slog.Logger
}

func NewSyncService(
	queue syncdomain.Queue,
	syncer syncdomain.Syncer,
	attendanceRepo attendance.Repository,
	hub *sse.Hub,
	clock clockutil.Clock,
	logger *slog.Logger,
) syncdomain.Service {
	return &SyncServiceImpl{
		queue:          queue,
		syncer:         syncer,
		attendanceRepo: attendanceRepo,
		hub:            hub,
		clock:          clock,
		logger:         logger,
	}
}

// ProcessRecord implements syncdomain.Service. A push failure is never an
// error for the caller; the record lands in the queue instead.
func (s *SyncServiceImpl) ProcessRecord(ctx context.Context, record attendance.Attendance) bool {
	if s.syncer.Online(ctx) {
		if err := s.syncer.Push(ctx, record); err == nil {
			if err := s.attendanceRepo.MarkSynced(ctx, record.ID); err != nil {
				s.logger.Error("Failed to mark record synced", "record_id", record.ID, "error", err)
			}
			return true
		}
		s.logger.Warn("Upstream push failed, queueing record", "record_id", record.ID)
	}

	if err := s.queue.Enqueue(ctx, syncdomain.Entry{
		RecordID:   record.ID,
		UserID:     record.UserID,
		EnqueuedAt: s.clock.Now(),
	}); err != nil {
		s.logger.Error("Failed to enqueue record for sync", "record_id", record.ID, "error", err)
	}

	return false
}

// Drain implements syncdomain.Service. The snapshot-and-clear shape keeps
// one invariant: an entry that fails to push goes straight back into the
// queue, so nothing is ever lost between retries.
func (s *SyncServiceImpl) Drain(ctx context.Context) error {
	entries, err := s.queue.Take(ctx)
	if err != nil {
		return fmt.Errorf("failed to take sync queue snapshot: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	if !s.syncer.Online(ctx) {
		s.requeue(ctx, entries)
		return syncdomain.ErrSyncFailed
	}

	var failed []syncdomain.Entry
	succeededUsers := make(map[string]struct{})

	for _, entry := range entries {
		record, err := s.attendanceRepo.GetByID(ctx, entry.RecordID)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				// The record is gone; the entry has nothing left to sync.
				s.logger.Warn("Dropping queue entry for deleted record", "record_id", entry.RecordID)
				continue
			}
			entry.Attempts++
			failed = append(failed, entry)
			continue
		}

		if err := s.syncer.Push(ctx, record); err != nil {
			entry.Attempts++
			failed = append(failed, entry)
			continue
		}

		if err := s.attendanceRepo.MarkSynced(ctx, entry.RecordID); err != nil {
			s.logger.Error("Failed to mark record synced", "record_id", entry.RecordID, "error", err)
		}
		succeededUsers[entry.UserID] = struct{}{}
	}

	if len(failed) > 0 {
		s.requeue(ctx, failed)
		s.logger.Warn("Sync drain left entries pending", "pending", len(failed), "synced", len(entries)-len(failed))
		return syncdomain.ErrSyncFailed
	}

	// The queue went from non-empty to empty: notify each affected user
	// exactly once.
	userIDs := make([]string, 0, len(succeededUsers))
	for userID := range succeededUsers {
		userIDs = append(userIDs, userID)
	}
	s.hub.PublishToMany(userIDs, sse.Event{
		Event: EventSyncCompleted,
		Data:  map[string]int{"synced": len(entries)},
	})

	s.logger.Info("Sync queue drained", "synced", len(entries))
	return nil
}

func (s *SyncServiceImpl) requeue(ctx context.Context, entries []syncdomain.Entry) {
	for _, entry := range entries {
		if err := s.queue.Enqueue(ctx, entry); err != nil {
			s.logger.Error("Failed to re-enqueue sync entry", "record_id", entry.RecordID, "error", err)
		}
	}
}

// Status implements syncdomain.Service.
func (s *SyncServiceImpl) Status(ctx context.Context) (syncdomain.StatusResponse, error) {
	pending, err := s.queue.Len(ctx)
	if err != nil {
		return syncdomain.StatusResponse{}, fmt.Errorf("failed to get sync queue length: %w", err)
	}

	status := syncdomain.StatusResponse{
		Pending: pending,
		Online:  s.syncer.Online(ctx),
	}

	// Calls from background jobs carry no identity; the per-user count is
	// only reported on authenticated requests.
	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		if userID, ok := claims["user_id"].(string); ok && userID != "" {
			unsynced, err := s.attendanceRepo.ListUnsynced(ctx, userID)
			if err != nil {
				return syncdomain.StatusResponse{}, fmt.Errorf("failed to list unsynced records: %w", err)
			}
			status.Unsynced = len(unsynced)
		}
	}

	return status, nil
}
