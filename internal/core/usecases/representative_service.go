package usecases

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/repcheck/repcheck-api/internal/core/domain"
	"github.com/repcheck/repcheck-api/internal/core/ports"
)

// ocdZipPrefix is the OCD division namespace for US ZIP code areas.
const ocdZipPrefix = "ocd-division/country:us/zipcode:"

// ZipAreaID builds the canonical area identifier for a ZIP code.
func ZipAreaID(zip string) string {
	return ocdZipPrefix + zip
}

// RepresentativeService resolves the chain
// ZIP code -> area -> people-in-area -> jurisdictions-of-those-people.
type RepresentativeService struct {
	people ports.PersonRepository
	areas  ports.AreaRepository
	cache  ports.CacheService
}

// NewRepresentativeService creates a new RepresentativeService.
func NewRepresentativeService(people ports.PersonRepository, areas ports.AreaRepository, cache ports.CacheService) *RepresentativeService {
	return &RepresentativeService{people: people, areas: areas, cache: cache}
}

// RepresentativesFor returns the people serving a ZIP code's area. An
// unmatched ZIP is a valid empty result, not an error; ZIP format
// validation is the caller's concern.
func (s *RepresentativeService) RepresentativesFor(ctx context.Context, zip string) ([]domain.Person, error) {
	cacheKey := "reps:zip:" + zip
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var people []domain.Person
			if err := json.Unmarshal(data, &people); err == nil {
				return people, nil
			}
		}
	}

	ids, err := s.personIDsForZip(ctx, zip)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Person{}, nil
	}

	people, err := s.people.GetByIDs(ctx, ids)
	if err != nil {
		return nil, domain.Upstreamf("get people", err)
	}

	// Cache for 10 minutes (membership changes only on re-ingestion)
	if s.cache != nil {
		if data, err := json.Marshal(people); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}

	return people, nil
}

// JurisdictionsFor returns the deduplicated set of jurisdiction-area IDs
// of the ZIP code's representatives. This set is the fan-out key for the
// bill listing.
func (s *RepresentativeService) JurisdictionsFor(ctx context.Context, zip string) ([]string, error) {
	ids, err := s.personIDsForZip(ctx, zip)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []string{}, nil
	}

	people, err := s.people.GetByIDs(ctx, ids)
	if err != nil {
		return nil, domain.Upstreamf("get people", err)
	}

	seen := make(map[string]struct{}, len(people))
	var out []string
	for _, p := range people {
		if p.JurisdictionAreaID == "" {
			continue
		}
		if _, ok := seen[p.JurisdictionAreaID]; ok {
			continue
		}
		seen[p.JurisdictionAreaID] = struct{}{}
		out = append(out, p.JurisdictionAreaID)
	}
	sort.Strings(out)
	return out, nil
}

// AreaSummariesFor resolves a person's constituent and jurisdiction areas
// without their raw geometry, for annotating representative listings.
func (s *RepresentativeService) AreaSummariesFor(ctx context.Context, p domain.Person) (constituent, jurisdiction *domain.Area, err error) {
	if p.ConstituentAreaID != "" {
		constituent, err = s.areas.GetByID(ctx, p.ConstituentAreaID)
		if err != nil {
			return nil, nil, domain.Upstreamf("get constituent area", err)
		}
	}
	if p.JurisdictionAreaID != "" {
		jurisdiction, err = s.areas.GetByID(ctx, p.JurisdictionAreaID)
		if err != nil {
			return nil, nil, domain.Upstreamf("get jurisdiction area", err)
		}
	}
	if constituent != nil {
		constituent.Geometry = nil
	}
	if jurisdiction != nil {
		jurisdiction.Geometry = nil
	}
	return constituent, jurisdiction, nil
}

func (s *RepresentativeService) personIDsForZip(ctx context.Context, zip string) ([]string, error) {
	rows, err := s.people.PersonAreasByAreaID(ctx, ZipAreaID(zip))
	if err != nil {
		return nil, domain.Upstreamf("get person areas", err)
	}

	seen := make(map[string]struct{}, len(rows))
	var ids []string
	for _, pa := range rows {
		if _, ok := seen[pa.PersonID]; ok {
			continue
		}
		seen[pa.PersonID] = struct{}{}
		ids = append(ids, pa.PersonID)
	}
	return ids, nil
}
