package domain

// Bounds is an axis-aligned lat/lon rectangle. It is a superset of the
// radius disk it was derived from and is only ever a candidate prefilter.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}
