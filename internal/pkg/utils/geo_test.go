package utils

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		{"same point", -6.2088, 106.8456, -6.2088, 106.8456, 0, 0.001},
		{"jakarta to bandung", -6.2088, 106.8456, -6.9175, 107.6191, 115000, 5000},
		{"one degree latitude", 0, 0, 1, 0, 111195, 100},
	}
	for _, c := range cases {
		got := HaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
		if math.Abs(got-c.want) > c.tolerance {
			t.Errorf("%s: HaversineDistance = %f, want %f (±%f)", c.name, got, c.want, c.tolerance)
		}
	}
}

func TestWithinRadius_BoundaryIsInside(t *testing.T) {
	officeLat, officeLon := -6.2088, 106.8456
	userLat, userLon := -6.2095, 106.8460

	d := HaversineDistance(userLat, userLon, officeLat, officeLon)

	// A point exactly on the boundary is inside.
	if !WithinRadius(userLat, userLon, officeLat, officeLon, d) {
		t.Errorf("point at exactly radius %f should be inside", d)
	}
	if WithinRadius(userLat, userLon, officeLat, officeLon, d-0.01) {
		t.Errorf("point just outside radius should not be inside")
	}
	if !WithinRadius(userLat, userLon, officeLat, officeLon, d+10) {
		t.Errorf("point well inside radius should be inside")
	}
}
