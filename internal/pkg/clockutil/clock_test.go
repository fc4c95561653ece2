package clockutil

import (
	"testing"
	"time"
)

func TestMinutesSinceMidnight(t *testing.T) {
	cases := []struct {
		hour, minute, second int
		want                 int
	}{
		{0, 0, 0, 0},
		{9, 0, 0, 540},
		{9, 15, 59, 555}, // seconds are ignored
		{23, 59, 0, 1439},
	}
	for _, c := range cases {
		ts := time.Date(2024, 6, 1, c.hour, c.minute, c.second, 0, time.UTC)
		if got := MinutesSinceMidnight(ts); got != c.want {
			t.Errorf("MinutesSinceMidnight(%02d:%02d:%02d) = %d, want %d", c.hour, c.minute, c.second, got, c.want)
		}
	}
}

func TestParseClockMinutes(t *testing.T) {
	got, err := ParseClockMinutes("09:00")
	if err != nil {
		t.Fatalf("ParseClockMinutes: %v", err)
	}
	if got != 540 {
		t.Errorf("ParseClockMinutes(09:00) = %d, want 540", got)
	}

	if _, err := ParseClockMinutes("25:00"); err == nil {
		t.Error("ParseClockMinutes(25:00) should fail")
	}
	if _, err := ParseClockMinutes("nine"); err == nil {
		t.Error("ParseClockMinutes(nine) should fail")
	}
}

func TestDateKey(t *testing.T) {
	ts := time.Date(2024, 6, 1, 17, 30, 0, 0, time.UTC)
	if got := DateKey(ts); got != "2024-06-01" {
		t.Errorf("DateKey = %q, want 2024-06-01", got)
	}
}
