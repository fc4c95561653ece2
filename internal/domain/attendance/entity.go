package attendance

import (
	"time"
)

// Status is the derived state of a single attendance record. It is decided
// at time-in (present or late) and may escalate to early_leave at time-out.
type Status string

const (
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusEarlyLeave Status = "early_leave"
)

// DayState is the per-user, per-calendar-day check-in state inferred from
// the most recent record of that day.
type DayState string

const (
	// DayStateNotCheckedIn means no record exists for today, or the latest
	// record is a completed cycle. A new time-in is allowed from here.
	DayStateNotCheckedIn DayState = "NOT_CHECKED_IN"
	// DayStateCheckedIn means the latest record for today has a clock-in
	// and no clock-out.
	DayStateCheckedIn DayState = "CHECKED_IN"
)

// Attendance is one time-in event. A day may hold several records: a new
// cycle may start after the previous one completes, and a second time-in
// while still checked in is permitted.
type Attendance struct {
	ID       string
	UserID   string
	UserName string

	// Date is the calendar-day partition key (YYYY-MM-DD), derived from
	// the clock-in moment.
	Date string

	ClockIn  time.Time
	ClockOut *time.Time

	ClockInLatitude   float64
	ClockInLongitude  float64
	ClockInAccuracy   *float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	ClockOutAccuracy  *float64

	Status Status

	// Duration fields are computed once at time-out from this record's own
	// clock-in/clock-out pair and are immutable after.
	TotalWorkMinutes *int
	WorkHours        *int
	WorkMinutes      *int

	FaceVerified bool
	Synced       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Completed reports whether this record is a finished in/out cycle.
func (a Attendance) Completed() bool {
	return a.ClockOut != nil
}
