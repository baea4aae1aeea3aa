package geo

import (
	"math"
	"testing"
)

func TestLLA2NEUAtOrigin(t *testing.T) {
	n, e, u := LLA2NEU(120.0, 60.0, 0.0, 120.0, 60.0, 0.0)
	if n != 0 || e != 0 || u != 0 {
		t.Errorf("Expected origin to map to (0,0,0), got (%f,%f,%f)", n, e, u)
	}
}

func TestLLA2NEUDirections(t *testing.T) {
	// North of the origin: positive north component only.
	n, e, _ := LLA2NEU(120.0, 60.1, 0.0, 120.0, 60.0, 0.0)
	if n <= 0 {
		t.Errorf("Expected positive north for higher latitude, got %f", n)
	}
	if e != 0 {
		t.Errorf("Expected zero east for same longitude, got %f", e)
	}

	// East of the origin: positive east component only.
	n, e, _ = LLA2NEU(120.1, 60.0, 0.0, 120.0, 60.0, 0.0)
	if e <= 0 {
		t.Errorf("Expected positive east for higher longitude, got %f", e)
	}
	if n != 0 {
		t.Errorf("Expected zero north for same latitude, got %f", n)
	}

	// Above the origin: up equals the altitude difference exactly.
	_, _, u := LLA2NEU(120.0, 60.0, 5000.0, 120.0, 60.0, 1000.0)
	if u != 4000.0 {
		t.Errorf("Expected up 4000, got %f", u)
	}
}

func TestLLA2NEUDegreeOfLatitude(t *testing.T) {
	// One degree of latitude on the spherical model.
	n, _, _ := LLA2NEU(120.0, 61.0, 0.0, 120.0, 60.0, 0.0)
	want := math.Pi / 180.0 * EarthRadius
	if math.Abs(n-want) > 1e-6 {
		t.Errorf("Expected %f m per degree latitude, got %f", want, n)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name             string
		lon, lat, alt    float64
		lon0, lat0, alt0 float64
	}{
		{"at origin", 120.0, 60.0, 0.0, 120.0, 60.0, 0.0},
		{"north east high", 120.5, 60.3, 8000.0, 120.0, 60.0, 0.0},
		{"south west low", 119.2, 59.7, 150.0, 120.0, 60.0, 1000.0},
		{"equatorial origin", 0.05, -0.02, 11000.0, 0.0, 0.0, 0.0},
		{"western hemisphere", -122.6, 37.9, 2500.0, -122.4194, 37.7749, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, e, u := LLA2NEU(tt.lon, tt.lat, tt.alt, tt.lon0, tt.lat0, tt.alt0)
			lon, lat, alt := NEU2LLA(n, e, u, tt.lon0, tt.lat0, tt.alt0)

			checkClose(t, "lon", lon, tt.lon)
			checkClose(t, "lat", lat, tt.lat)
			checkClose(t, "alt", alt, tt.alt)
		})
	}
}

func checkClose(t *testing.T, name string, got, want float64) {
	t.Helper()
	tol := 1e-6 * math.Max(1.0, math.Abs(want))
	if math.Abs(got-want) > tol {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestNorms(t *testing.T) {
	if got := Norm2(3, 4); got != 5 {
		t.Errorf("Norm2(3,4) = %v, want 5", got)
	}
	if got := Norm3(2, 3, 6); got != 7 {
		t.Errorf("Norm3(2,3,6) = %v, want 7", got)
	}
}
