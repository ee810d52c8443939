package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/repcheck/repcheck-api/internal/core/domain"
	"github.com/repcheck/repcheck-api/internal/core/ports"
	"github.com/repcheck/repcheck-api/internal/pkg/geospatial"
)

// Radius bounds in statute miles, inclusive on both ends.
const (
	MinRadiusMiles = 1.0
	MaxRadiusMiles = 100.0
)

// PrecinctService finds precincts within a radius of a reference area's
// centroid. The search runs in two phases: a bounding-box prefilter pushed
// to storage, then an exact haversine check here.
type PrecinctService struct {
	areas ports.AreaRepository
	cache ports.CacheService
}

// NewPrecinctService creates a new PrecinctService.
func NewPrecinctService(areas ports.AreaRepository, cache ports.CacheService) *PrecinctService {
	return &PrecinctService{areas: areas, cache: cache}
}

// FindWithinRadius returns every precinct whose centroid lies within
// radiusMiles of the reference area's centroid, each paired with its
// distance. Result order is unspecified.
func (s *PrecinctService) FindWithinRadius(ctx context.Context, referenceAreaID string, radiusMiles float64) ([]domain.PrecinctDistance, error) {
	if radiusMiles < MinRadiusMiles || radiusMiles > MaxRadiusMiles {
		return nil, domain.InvalidParameterf("radius must be between %.0f and %.0f miles, got %g",
			MinRadiusMiles, MaxRadiusMiles, radiusMiles)
	}

	cacheKey := fmt.Sprintf("precincts:radius:%s:%.2f", referenceAreaID, radiusMiles)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var hits []domain.PrecinctDistance
			if err := json.Unmarshal(data, &hits); err == nil {
				return hits, nil
			}
		}
	}

	ref, err := s.areas.GetByID(ctx, referenceAreaID)
	if err != nil {
		return nil, domain.Upstreamf("get reference area", err)
	}
	if ref == nil {
		return nil, domain.NotFoundf("area %q", referenceAreaID)
	}
	if !ref.HasCentroid() {
		return nil, domain.InvalidStatef("area %q: centroid missing", referenceAreaID)
	}

	lat, lon := *ref.CentroidLat, *ref.CentroidLon
	minLat, maxLat, minLon, maxLon := geospatial.BoundingBox(lat, lon, radiusMiles)

	candidates, err := s.areas.PrecinctsInBoundingBox(ctx, domain.Bounds{
		MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon,
	})
	if err != nil {
		return nil, domain.Upstreamf("fetch precinct candidates", err)
	}

	// Exact filter: the box admits corner matches up to ~sqrt(2)*radius away.
	hits := make([]domain.PrecinctDistance, 0, len(candidates))
	for _, p := range candidates {
		if p.CentroidLat == nil || p.CentroidLon == nil {
			continue
		}
		d := geospatial.HaversineMiles(lat, lon, *p.CentroidLat, *p.CentroidLon)
		if d <= radiusMiles {
			hits = append(hits, domain.PrecinctDistance{Precinct: p, DistanceMiles: d})
		}
	}

	// Cache for 5 minutes (precinct geometry changes only on re-ingestion)
	if s.cache != nil {
		if data, err := json.Marshal(hits); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return hits, nil
}
