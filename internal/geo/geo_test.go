package geo

import (
	"math"
	"testing"
	"time"
)

var campus = Point{Latitude: 50.7366, Longitude: -3.5350}

func TestDistanceSamePoint(t *testing.T) {
	if d := DistanceKm(campus, campus); d != 0 {
		t.Errorf("DistanceKm(P, P) = %f, want 0", d)
	}
}

func TestDistanceKnownValues(t *testing.T) {
	// un degré de latitude vaut ~111.19 km sur la sphère de référence
	a := Point{Latitude: 0, Longitude: 0}
	b := Point{Latitude: 1, Longitude: 0}
	d := DistanceKm(a, b)
	want := EarthRadiusKm * math.Pi / 180
	if math.Abs(d-want) > 0.01 {
		t.Errorf("DistanceKm(1 deg lat) = %f, want ~%f", d, want)
	}

	// symétrie
	if d1, d2 := DistanceKm(a, b), DistanceKm(b, a); d1 != d2 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestWithinRadiusBoundaryInclusive(t *testing.T) {
	p := Point{Latitude: 50.7456, Longitude: -3.5350}
	d := DistanceKm(campus, p)

	// un point exactement à radiusKm est accepté
	if !WithinRadius(campus, p, d) {
		t.Error("point at exactly radius km should be inside the geofence")
	}
	if WithinRadius(campus, p, d-0.001) {
		t.Error("point beyond the radius should be outside the geofence")
	}
	if !WithinRadius(campus, campus, 0) {
		t.Error("center should be inside a zero-radius geofence")
	}
}

func TestWithinWindow(t *testing.T) {
	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.May, 1, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"before start", start.Add(-time.Second), false},
		{"exactly at start", start, true},
		{"inside", start.Add(3 * time.Hour), true},
		{"exactly at end", end, false},
		{"after end", end.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinWindow(tt.t, start, end); got != tt.want {
				t.Errorf("WithinWindow(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestWithinWindowNormalizesToUTC(t *testing.T) {
	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.May, 1, 17, 0, 0, 0, time.UTC)

	// 11h00 à Paris (UTC+2 en mai) = 9h00 UTC : pile au début de la fenêtre
	paris := time.FixedZone("CEST", 2*3600)
	taken := time.Date(2024, time.May, 1, 11, 0, 0, 0, paris)

	if !WithinWindow(taken, start, end) {
		t.Error("timestamp should be compared in UTC")
	}
}

func TestValidate(t *testing.T) {
	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.May, 1, 17, 0, 0, 0, time.UTC)
	inside := start.Add(time.Hour)

	if !Validate(campus, campus, 1, inside, start, end) {
		t.Error("point and time inside bounds should validate")
	}
	// zone ok mais hors fenêtre
	if Validate(campus, campus, 1, end, start, end) {
		t.Error("time at the exclusive end bound should not validate")
	}
	// fenêtre ok mais hors zone
	far := Point{Latitude: 51.5072, Longitude: -0.1276}
	if Validate(campus, far, 1, inside, start, end) {
		t.Error("point far outside the radius should not validate")
	}
}
