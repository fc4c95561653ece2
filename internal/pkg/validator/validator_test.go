package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-06-01"); !ok {
		t.Error("IsValidDate(2024-06-01) = false, want true")
	}
	invalid := []string{"01/06/2024", "2024-13-01", "2024-06-32", "yesterday", ""}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"00:00", "09:00", "17:30", "23:59"}
	invalid := []string{"24:00", "9:0:0", "noon", ""}
	for _, s := range valid {
		if !IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidLatitudeLongitude(t *testing.T) {
	if !IsValidLatitude(-90) || !IsValidLatitude(90) || !IsValidLatitude(0) {
		t.Error("boundary latitudes should be valid")
	}
	if IsValidLatitude(-90.01) || IsValidLatitude(90.01) {
		t.Error("out-of-range latitudes should be invalid")
	}
	if !IsValidLongitude(-180) || !IsValidLongitude(180) {
		t.Error("boundary longitudes should be valid")
	}
	if IsValidLongitude(180.5) {
		t.Error("out-of-range longitude should be invalid")
	}
}

func TestIsInSlice(t *testing.T) {
	statuses := []string{"present", "late", "early_leave"}
	if !IsInSlice("late", statuses) {
		t.Error("IsInSlice(late) = false, want true")
	}
	if IsInSlice("absent", statuses) {
		t.Error("IsInSlice(absent) = true, want false")
	}
}
