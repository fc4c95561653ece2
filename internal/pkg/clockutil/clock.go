package clockutil

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date partition key format used by attendance
// records.
const DateLayout = "2006-01-02"

// Clock abstracts time.Now so schedule boundaries can be tested.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// NewRealClock returns a Clock backed by time.Now.
func NewRealClock() Clock {
	return realClock{}
}

// MinutesSinceMidnight returns the number of whole minutes elapsed since
// midnight of t's day, in t's location.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseClockMinutes parses a wall-clock string like "09:00" and returns it
// as minutes since midnight.
func ParseClockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// DateKey formats t as the attendance date partition key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
