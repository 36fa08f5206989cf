package geo

import (
	"math"
	"testing"
)

func TestHaversineZeroAtSamePoint(t *testing.T) {
	points := []Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 40.7128, Longitude: -74.0060},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 89.9, Longitude: 179.9},
	}
	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := Point{Latitude: 40.7128, Longitude: -74.0060}
	b := Point{Latitude: 51.5074, Longitude: -0.1278}
	ab := Distance(a, b)
	ba := Distance(b, a)
	if ab != ba {
		t.Errorf("Distance not symmetric: %f vs %f", ab, ba)
	}
	// NYC to London is roughly 5570 km.
	if ab < 5500000 || ab > 5600000 {
		t.Errorf("Distance(NYC, London) = %f m, expected ~5570 km", ab)
	}
}

func TestHaversineShortRange(t *testing.T) {
	// Two points ~111 m apart along a meridian.
	d := Haversine(40.0, -74.0, 40.001, -74.0)
	if math.Abs(d-111.2) > 1.0 {
		t.Errorf("Haversine 0.001 deg lat = %f m, expected ~111.2 m", d)
	}
}

func TestBoundingBoxContainsCenter(t *testing.T) {
	centers := []Point{
		{Latitude: 40.7128, Longitude: -74.0060},
		{Latitude: -1.2921, Longitude: 36.8219},
		{Latitude: 60.1699, Longitude: 24.9384},
	}
	for _, c := range centers {
		bb := BoundingBoxFromRadius(c, 1000)
		if bb.MinLat > bb.MaxLat || bb.MinLon > bb.MaxLon {
			t.Errorf("inverted box for %v: %+v", c, bb)
		}
		// Strictly inside for a positive radius.
		if !(bb.MinLat < c.Latitude && c.Latitude < bb.MaxLat) {
			t.Errorf("center latitude %f not strictly inside [%f, %f]", c.Latitude, bb.MinLat, bb.MaxLat)
		}
		if !(bb.MinLon < c.Longitude && c.Longitude < bb.MaxLon) {
			t.Errorf("center longitude %f not strictly inside [%f, %f]", c.Longitude, bb.MinLon, bb.MaxLon)
		}
		if !bb.Contains(c) {
			t.Errorf("box %+v does not contain its center %v", bb, c)
		}
	}
}

func TestBoundingBoxDeltas(t *testing.T) {
	c := Point{Latitude: 40.0, Longitude: -74.0}
	bb := BoundingBoxFromRadius(c, 1110)
	latDelta := bb.MaxLat - c.Latitude
	if math.Abs(latDelta-0.01) > 1e-9 {
		t.Errorf("lat delta = %f, want 0.01", latDelta)
	}
	wantLon := 1110.0 / (111000.0 * math.Cos(40.0*math.Pi/180.0))
	lonDelta := bb.MaxLon - c.Longitude
	if math.Abs(lonDelta-wantLon) > 1e-9 {
		t.Errorf("lon delta = %f, want %f", lonDelta, wantLon)
	}
}

func TestValidateCoords(t *testing.T) {
	if err := ValidateCoords(40.7, -74.0); err != nil {
		t.Errorf("valid coords rejected: %v", err)
	}
	if err := ValidateCoords(90.0, 180.0); err != nil {
		t.Errorf("boundary coords rejected: %v", err)
	}
	if err := ValidateCoords(90.1, 0); err == nil {
		t.Error("latitude 90.1 accepted")
	}
	if err := ValidateCoords(0, -180.5); err == nil {
		t.Error("longitude -180.5 accepted")
	}
}

func TestOverpassString(t *testing.T) {
	bb := BoundingBox{MinLon: -74.1, MinLat: 40.6, MaxLon: -73.9, MaxLat: 40.8}
	want := "40.600000,-74.100000,40.800000,-73.900000"
	if got := bb.OverpassString(); got != want {
		t.Errorf("OverpassString() = %q, want %q", got, want)
	}
}
