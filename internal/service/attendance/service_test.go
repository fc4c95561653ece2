package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/ammarbari/attendance-app/internal/config"
	"github.com/ammarbari/attendance-app/internal/domain/attendance"
	syncdomain "github.com/ammarbari/attendance-app/internal/domain/sync"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns a fixed instant.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// fakeRepo is an in-memory attendance.Repository.
type fakeRepo struct {
	records []attendance.Attendance
	updates int
}

func (r *fakeRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	att.CreatedAt = time.Now()
	att.UpdatedAt = att.CreatedAt
	r.records = append(r.records, att)
	return att, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	for _, att := range r.records {
		if att.ID == id {
			return att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeRepo) Update(_ context.Context, att attendance.Attendance) error {
	for i := range r.records {
		if r.records[i].ID == att.ID {
			r.records[i] = att
			r.updates++
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (r *fakeRepo) ListByDate(_ context.Context, userID, date string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range r.records {
		if att.UserID == userID && att.Date == date {
			out = append(out, att)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByRange(_ context.Context, userID, startDate, endDate string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range r.records {
		if att.UserID == userID && att.Date >= startDate && att.Date <= endDate {
			out = append(out, att)
		}
	}
	return out, nil
}

func (r *fakeRepo) LatestForDate(_ context.Context, userID, date string) (*attendance.Attendance, error) {
	var latest *attendance.Attendance
	for i := range r.records {
		att := r.records[i]
		if att.UserID != userID || att.Date != date {
			continue
		}
		if latest == nil || att.ClockIn.After(latest.ClockIn) {
			latest = &r.records[i]
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeRepo) ListMy(_ context.Context, userID string, _ attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, att := range r.records {
		if att.UserID == userID {
			out = append(out, att)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) ListUnsynced(_ context.Context, userID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range r.records {
		if att.UserID == userID && !att.Synced {
			out = append(out, att)
		}
	}
	return out, nil
}

func (r *fakeRepo) MarkSynced(_ context.Context, id string) error {
	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i].Synced = true
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

// fakeSyncService records every handoff and can simulate an offline upstream.
type fakeSyncService struct {
	online    bool
	processed []attendance.Attendance
}

func (s *fakeSyncService) ProcessRecord(_ context.Context, record attendance.Attendance) bool {
	s.processed = append(s.processed, record)
	return s.online
}

func (s *fakeSyncService) Drain(_ context.Context) error { return nil }

func (s *fakeSyncService) Status(_ context.Context) (syncdomain.StatusResponse, error) {
	return syncdomain.StatusResponse{Online: s.online}, nil
}

func authContext(t *testing.T, userID, name string) context.Context {
	t.Helper()
	token := jwt.New()
	require.NoError(t, token.Set("user_id", userID))
	require.NoError(t, token.Set("name", name))
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(t *testing.T, now time.Time) (attendance.Service, *fakeRepo, *fakeSyncService, *fakeClock) {
	t.Helper()

	repo := &fakeRepo{}
	syncSvc := &fakeSyncService{online: true}
	clock := &fakeClock{now: now}

	svc, err := NewAttendanceService(
		repo,
		nil,
		syncSvc,
		clock,
		config.ScheduleConfig{
			ClockIn:                    "09:00",
			ClockOut:                   "17:00",
			LateThresholdMinutes:       15,
			EarlyLeaveThresholdMinutes: 30,
		},
		config.GeofenceConfig{
			OfficeLatitude:  -6.2,
			OfficeLongitude: 106.8,
			RadiusMeters:    100,
		},
		false,
	)
	require.NoError(t, err)

	return svc, repo, syncSvc, clock
}

func atClock(hour, minute int) time.Time {
	return time.Date(2026, 3, 16, hour, minute, 0, 0, time.UTC)
}

func officeRequest() attendance.TimeInRequest {
	return attendance.TimeInRequest{Latitude: -6.2, Longitude: 106.8}
}

func TestTimeIn_StatusDerivation(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want attendance.Status
	}{
		{"before schedule start is present", atClock(8, 59), attendance.StatusPresent},
		{"exactly at threshold boundary is present", atClock(9, 15), attendance.StatusPresent},
		{"one minute past threshold is late", atClock(9, 16), attendance.StatusLate},
		{"seconds within the boundary minute are ignored", atClock(9, 15).Add(59 * time.Second), attendance.StatusPresent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newTestService(t, tt.now)
			ctx := authContext(t, "user-1", "Ammar")

			resp, err := svc.TimeIn(ctx, officeRequest())
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), resp.Status)
		})
	}
}

func TestTimeIn_OutsideGeofence(t *testing.T) {
	svc, repo, _, _ := newTestService(t, atClock(9, 0))
	ctx := authContext(t, "user-1", "Ammar")

	// several kilometers from the office
	_, err := svc.TimeIn(ctx, attendance.TimeInRequest{Latitude: -6.3, Longitude: 106.9})
	require.ErrorIs(t, err, attendance.ErrOutsideGeofence)
	assert.Empty(t, repo.records, "rejected time-in must not write state")
}

func TestTimeIn_LocationError(t *testing.T) {
	svc, repo, _, _ := newTestService(t, atClock(9, 0))
	ctx := authContext(t, "user-1", "Ammar")

	code := attendance.LocationErrorTimeout
	_, err := svc.TimeIn(ctx, attendance.TimeInRequest{LocationError: &code})
	require.ErrorIs(t, err, attendance.ErrLocationTimeout)
	assert.Empty(t, repo.records)
}

func TestTimeIn_SecondCycleAllowed(t *testing.T) {
	svc, repo, _, clock := newTestService(t, atClock(9, 0))
	ctx := authContext(t, "user-1", "Ammar")

	_, err := svc.TimeIn(ctx, officeRequest())
	require.NoError(t, err)

	// A second time-in while still checked in starts a new record.
	clock.now = atClock(13, 0)
	_, err = svc.TimeIn(ctx, officeRequest())
	require.NoError(t, err)

	assert.Len(t, repo.records, 2)
}

func TestTimeIn_SyncHandoff(t *testing.T) {
	svc, repo, syncSvc, _ := newTestService(t, atClock(9, 0))
	ctx := authContext(t, "user-1", "Ammar")

	syncSvc.online = false

	resp, err := svc.TimeIn(ctx, officeRequest())
	require.NoError(t, err)

	// Upstream failure never blocks the transition; the record persists
	// unsynced.
	assert.False(t, resp.Synced)
	require.Len(t, repo.records, 1)
	require.Len(t, syncSvc.processed, 1)
	assert.Equal(t, repo.records[0].ID, syncSvc.processed[0].ID)
}

func TestTimeOut_NotCheckedIn(t *testing.T) {
	svc, repo, _, _ := newTestService(t, atClock(17, 0))
	ctx := authContext(t, "user-1", "Ammar")

	_, err := svc.TimeOut(ctx, attendance.TimeOutRequest{Latitude: -6.2, Longitude: 106.8})
	require.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	assert.Zero(t, repo.updates, "rejected time-out must not mutate state")
}

func TestTimeOut_AfterCompletedCycle(t *testing.T) {
	svc, _, _, clock := newTestService(t, atClock(9, 0))
	ctx := authContext(t, "user-1", "Ammar")

	_, err := svc.TimeIn(ctx, officeRequest())
	require.NoError(t, err)

	clock.now = atClock(17, 0)
	_, err = svc.TimeOut(ctx, attendance.TimeOutRequest{Latitude: -6.2, Longitude: 106.8})
	require.NoError(t, err)

	// The cycle is closed; a second time-out has nothing to complete.
	_, err = svc.TimeOut(ctx, attendance.TimeOutRequest{Latitude: -6.2, Longitude: 106.8})
	require.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestTimeOut_EarlyLeave(t *testing.T) {
	tests := []struct {
		name string
		out  time.Time
		want attendance.Status
	}{
		{"before cutoff is early_leave", atClock(16, 29), attendance.StatusEarlyLeave},
		{"exactly at cutoff is present", atClock(16, 30), attendance.StatusPresent},
		{"after schedule end is present", atClock(17, 30), attendance.StatusPresent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, clock := newTestService(t, atClock(9, 0))
			ctx := authContext(t, "user-1", "Ammar")

			_, err := svc.TimeIn(ctx, officeRequest())
			require.NoError(t, err)

			clock.now = tt.out
			resp, err := svc.TimeOut(ctx, attendance.TimeOutRequest{Latitude: -6.2, Longitude: 106.8})
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), resp.Status)
		})
	}
}

func TestTimeOut_LateIsNeverOverwritten(t *testing.T) {
	// Late time-in followed by an early time-out stays late.
	svc, _, _, clock := newTestService(t, atClock(9, 30))
	ctx := authContext(t, "user-1", "Ammar")

	resp, err := svc.TimeIn(ctx, officeRequest())
	require.NoError(t, err)
	require.Equal(t, string(attendance.StatusLate), resp.Status)

	clock.now = atClock(16, 0)
	resp, err = svc.TimeOut(ctx, attendance.TimeOutRequest{Latitude: -6.2, Longitude: 106.8})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
}

func TestTimeOut_WorkDuration(t *testing.T) {
	svc, _, _, clock := newTestService(t, atClock(9, 2))
	ctx := authContext(t, "user-1", "Ammar")

	_, err := svc.TimeIn(ctx, officeRequest())
	require.NoError(t, err)

	clock.now = atClock(17, 47)
	resp, err := svc.TimeOut(ctx, attendance.TimeOutRequest{Latitude: -6.2, Longitude: 106.8})
	require.NoError(t, err)

	require.NotNil(t, resp.TotalWorkMinutes)
	assert.Equal(t, 525, *resp.TotalWorkMinutes)
	assert.Equal(t, 8, *resp.WorkHours)
	assert.Equal(t, 45, *resp.WorkMinutes)
}

func TestTodayState(t *testing.T) {
	svc, _, _, clock := newTestService(t, atClock(8, 0))
	ctx := authContext(t, "user-1", "Ammar")

	state, err := svc.TodayState(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStateNotCheckedIn, state.State)
	assert.True(t, state.CanTimeIn)
	assert.False(t, state.CanTimeOut)
	assert.Nil(t, state.OpenSession)

	_, err = svc.TimeIn(ctx, officeRequest())
	require.NoError(t, err)

	state, err = svc.TodayState(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStateCheckedIn, state.State)
	assert.True(t, state.CanTimeIn)
	assert.True(t, state.CanTimeOut)
	require.NotNil(t, state.OpenSession)

	clock.now = atClock(17, 0)
	_, err = svc.TimeOut(ctx, attendance.TimeOutRequest{Latitude: -6.2, Longitude: 106.8})
	require.NoError(t, err)

	state, err = svc.TodayState(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStateNotCheckedIn, state.State)
}
