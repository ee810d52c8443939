package usecases

import (
	"context"

	"github.com/repcheck/repcheck-api/internal/core/domain"
	"github.com/repcheck/repcheck-api/internal/core/ports"
)

// AreaService handles direct area lookups (ZIP code zones and districts).
type AreaService struct {
	areas ports.AreaRepository
}

// NewAreaService creates a new AreaService.
func NewAreaService(areas ports.AreaRepository) *AreaService {
	return &AreaService{areas: areas}
}

// GetByID returns an area with its geometry.
func (s *AreaService) GetByID(ctx context.Context, id string) (*domain.Area, error) {
	area, err := s.areas.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Upstreamf("get area", err)
	}
	if area == nil {
		return nil, domain.NotFoundf("area %q", id)
	}
	return area, nil
}

// GetZipArea resolves a ZIP code to its area record.
func (s *AreaService) GetZipArea(ctx context.Context, zip string) (*domain.Area, error) {
	return s.GetByID(ctx, ZipAreaID(zip))
}
