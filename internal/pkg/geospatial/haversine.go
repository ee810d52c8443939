package geospatial

import "math"

const (
	earthRadiusMiles = 3958.8
	// One degree of latitude spans roughly 69 statute miles everywhere;
	// longitude degrees shrink with cos(latitude).
	milesPerDegree = 69.0
)

// HaversineMiles calculates the great-circle distance in statute miles
// between two points.
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// BoundingBox returns an axis-aligned box that contains every point within
// radiusMiles of the center. The box is a superset of the radius disk and
// exists only so the storage layer can discard candidates with indexed range
// scans; it must never be the final filter.
func BoundingBox(lat, lon, radiusMiles float64) (minLat, maxLat, minLon, maxLon float64) {
	latDelta := radiusMiles / milesPerDegree
	lonDelta := radiusMiles / (milesPerDegree * math.Cos(toRad(lat)))

	return lat - latDelta, lat + latDelta, lon - lonDelta, lon + lonDelta
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
