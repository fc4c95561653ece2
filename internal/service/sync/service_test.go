package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ammarbari/attendance-app/internal/domain/attendance"
	syncdomain "github.com/ammarbari/attendance-app/internal/domain/sync"
	"github.com/ammarbari/attendance-app/internal/pkg/sse"
	"github.com/ammarbari/attendance-app/internal/repository/memory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

// fakeSyncer simulates upstream reachability and selective push failures.
type fakeSyncer struct {
	online  bool
	failIDs map[string]bool
	pushed  []string
}

func (s *fakeSyncer) Push(_ context.Context, record attendance.Attendance) error {
	if s.failIDs[record.ID] {
		return errors.New("upstream rejected record")
	}
	s.pushed = append(s.pushed, record.ID)
	return nil
}

func (s *fakeSyncer) Online(_ context.Context) bool { return s.online }

type fakeRepo struct {
	records map[string]attendance.Attendance
	synced  map[string]bool
}

func newFakeRepo(ids ...string) *fakeRepo {
	r := &fakeRepo{records: map[string]attendance.Attendance{}, synced: map[string]bool{}}
	for _, id := range ids {
		r.records[id] = attendance.Attendance{ID: id, UserID: "user-" + id}
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.records[att.ID] = att
	return att, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	att, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (r *fakeRepo) Update(_ context.Context, att attendance.Attendance) error {
	r.records[att.ID] = att
	return nil
}

func (r *fakeRepo) ListByDate(_ context.Context, _, _ string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (r *fakeRepo) ListByRange(_ context.Context, _, _, _ string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (r *fakeRepo) LatestForDate(_ context.Context, _, _ string) (*attendance.Attendance, error) {
	return nil, nil
}

func (r *fakeRepo) ListMy(_ context.Context, _ string, _ attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (r *fakeRepo) ListUnsynced(_ context.Context, userID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for id, att := range r.records {
		if att.UserID == userID && !r.synced[id] {
			out = append(out, att)
		}
	}
	return out, nil
}

func (r *fakeRepo) MarkSynced(_ context.Context, id string) error {
	r.synced[id] = true
	return nil
}

func newTestService(repo *fakeRepo, syncer *fakeSyncer) (syncdomain.Service, syncdomain.Queue, *sse.Hub) {
	queue := memory.NewSyncQueue()
	hub := sse.NewHub()
	svc := NewSyncService(queue, syncer, repo, hub, &fakeClock{now: time.Now()}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, queue, hub
}

func TestProcessRecord_OnlinePushSucceeds(t *testing.T) {
	repo := newFakeRepo("rec-1")
	syncer := &fakeSyncer{online: true}
	svc, queue, _ := newTestService(repo, syncer)

	synced := svc.ProcessRecord(context.Background(), repo.records["rec-1"])

	assert.True(t, synced)
	assert.True(t, repo.synced["rec-1"])

	pending, err := queue.Len(context.Background())
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestProcessRecord_OfflineEnqueues(t *testing.T) {
	repo := newFakeRepo("rec-1")
	syncer := &fakeSyncer{online: false}
	svc, queue, _ := newTestService(repo, syncer)

	synced := svc.ProcessRecord(context.Background(), repo.records["rec-1"])

	assert.False(t, synced)
	assert.False(t, repo.synced["rec-1"])

	pending, err := queue.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}

func TestDrain_EntriesSurviveRepeatedFailures(t *testing.T) {
	repo := newFakeRepo("rec-1", "rec-2")
	syncer := &fakeSyncer{online: false}
	svc, queue, _ := newTestService(repo, syncer)

	ctx := context.Background()
	svc.ProcessRecord(ctx, repo.records["rec-1"])
	svc.ProcessRecord(ctx, repo.records["rec-2"])

	// No matter how many failed drains happen, nothing is ever dropped.
	for i := 0; i < 5; i++ {
		err := svc.Drain(ctx)
		require.ErrorIs(t, err, syncdomain.ErrSyncFailed)

		pending, err := queue.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, pending)
	}

	syncer.online = true
	require.NoError(t, svc.Drain(ctx))

	pending, err := queue.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
	assert.True(t, repo.synced["rec-1"])
	assert.True(t, repo.synced["rec-2"])
}

func TestDrain_PartialFailureRequeuesOnlyFailed(t *testing.T) {
	repo := newFakeRepo("rec-1", "rec-2")
	syncer := &fakeSyncer{online: true, failIDs: map[string]bool{"rec-2": true}}
	svc, queue, _ := newTestService(repo, syncer)

	ctx := context.Background()
	// Force both into the queue first.
	syncer.online = false
	svc.ProcessRecord(ctx, repo.records["rec-1"])
	svc.ProcessRecord(ctx, repo.records["rec-2"])
	syncer.online = true

	err := svc.Drain(ctx)
	require.ErrorIs(t, err, syncdomain.ErrSyncFailed)

	assert.True(t, repo.synced["rec-1"])
	assert.False(t, repo.synced["rec-2"])

	pending, err := queue.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	// Failed entries carry their attempt count forward.
	entries, err := queue.Take(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rec-2", entries[0].RecordID)
	assert.Equal(t, 1, entries[0].Attempts)
}

func TestDrain_NotifiesOnceWhenQueueEmpties(t *testing.T) {
	repo := newFakeRepo("rec-1")
	syncer := &fakeSyncer{online: false}
	svc, _, hub := newTestService(repo, syncer)

	ctx := context.Background()
	svc.ProcessRecord(ctx, repo.records["rec-1"])

	events, cleanup := hub.Subscribe("user-rec-1")
	defer cleanup()

	syncer.online = true
	require.NoError(t, svc.Drain(ctx))

	select {
	case event := <-events:
		assert.Equal(t, EventSyncCompleted, event.Event)
	default:
		t.Fatal("expected a sync_completed event")
	}

	// A drain of an already-empty queue publishes nothing.
	require.NoError(t, svc.Drain(ctx))
	select {
	case <-events:
		t.Fatal("empty drain must not publish")
	default:
	}
}

func TestStatus(t *testing.T) {
	repo := newFakeRepo("rec-1")
	syncer := &fakeSyncer{online: false}
	svc, _, _ := newTestService(repo, syncer)

	ctx := context.Background()
	svc.ProcessRecord(ctx, repo.records["rec-1"])

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Pending)
	assert.False(t, status.Online)
}

func TestStatus_ReportsCallerUnsyncedCount(t *testing.T) {
	repo := newFakeRepo("rec-1", "rec-2")
	syncer := &fakeSyncer{online: false}
	svc, _, _ := newTestService(repo, syncer)

	token := jwt.New()
	require.NoError(t, token.Set("user_id", "user-rec-1"))
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Unsynced, "only the caller's records count")

	require.NoError(t, repo.MarkSynced(ctx, "rec-1"))
	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.Zero(t, status.Unsynced)
}
