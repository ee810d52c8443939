package geospatial

import (
	"math"
	"testing"
)

func TestHaversineMilesKnownDistances(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{"same point", 37.77, -122.41, 37.77, -122.41, 0, 0.001},
		{"two miles north in sf", 37.77, -122.41, 37.80, -122.41, 2.07, 0.05},
		{"sixteen miles north in sf", 37.77, -122.41, 38.00, -122.41, 15.9, 0.2},
		{"la to nyc", 34.05, -118.24, 40.71, -74.01, 2445, 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineMiles(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if math.Abs(got-tc.want) > tc.tolerance {
				t.Errorf("got %.3f miles, want %.3f ± %.3f", got, tc.want, tc.tolerance)
			}
		})
	}
}

func TestHaversineMilesSymmetric(t *testing.T) {
	a := HaversineMiles(37.77, -122.41, 38.00, -122.41)
	b := HaversineMiles(38.00, -122.41, 37.77, -122.41)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %.9f vs %.9f", a, b)
	}
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	lat, lon, radius := 37.77, -122.41, 10.0
	minLat, maxLat, minLon, maxLon := BoundingBox(lat, lon, radius)

	if minLat >= lat || maxLat <= lat || minLon >= lon || maxLon <= lon {
		t.Fatalf("box does not contain center: [%f,%f]x[%f,%f]", minLat, maxLat, minLon, maxLon)
	}

	// Cardinal points at exactly radius distance must fall inside the box.
	latDelta := radius / 69.0
	for _, p := range []struct{ plat, plon float64 }{
		{lat + latDelta, lon},
		{lat - latDelta, lon},
	} {
		if p.plat < minLat || p.plat > maxLat || p.plon < minLon || p.plon > maxLon {
			t.Errorf("point (%f, %f) at radius distance escaped the box", p.plat, p.plon)
		}
	}
}

func TestBoundingBoxLongitudeWidensWithLatitude(t *testing.T) {
	_, _, minLonEq, maxLonEq := BoundingBox(0, 0, 10)
	_, _, minLonHi, maxLonHi := BoundingBox(60, 0, 10)

	if (maxLonHi - minLonHi) <= (maxLonEq - minLonEq) {
		t.Errorf("longitude span should widen at high latitude: equator %.4f, 60N %.4f",
			maxLonEq-minLonEq, maxLonHi-minLonHi)
	}
}
