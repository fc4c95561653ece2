package attendance

import "context"

// Service drives the per-day attendance state machine.
type Service interface {
	// TimeIn starts a new in/out cycle for the authenticated user. Multiple
	// cycles per day are allowed; a time-in while still checked in is not
	// blocked.
	TimeIn(ctx context.Context, req TimeInRequest) (AttendanceResponse, error)

	// TimeOut closes the open cycle of the current day. Fails with
	// ErrNotCheckedIn when the day state is NOT_CHECKED_IN.
	TimeOut(ctx context.Context, req TimeOutRequest) (AttendanceResponse, error)

	// TodayState reports the authenticated user's current day state.
	TodayState(ctx context.Context) (TodayStateResponse, error)

	// GetMyAttendance lists the authenticated user's records.
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)
}
