package ports

import (
	"context"

	"github.com/repcheck/repcheck-api/internal/core/domain"
)

// AreaRepository reads areas and precincts (the geometry store).
// Lookups return (nil, nil) when the row is absent; errors mean the store
// itself failed.
type AreaRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Area, error)
	// PrecinctsInBoundingBox returns precincts whose centroid lat and lon
	// each fall within the given inclusive bounds.
	PrecinctsInBoundingBox(ctx context.Context, b domain.Bounds) ([]domain.Precinct, error)
}

// PersonRepository reads people and their area memberships.
type PersonRepository interface {
	PersonAreasByAreaID(ctx context.Context, areaID string) ([]domain.PersonArea, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Person, error)
}

// BillRepository reads bills and their vote events.
type BillRepository interface {
	Count(ctx context.Context, filter domain.BillFilter) (int, error)
	FetchPage(ctx context.Context, filter domain.BillFilter, sort domain.SortSpec, offset, limit int) ([]domain.Bill, error)
	GetByID(ctx context.Context, id string) (*domain.Bill, error)
	VoteEventsByBillIDs(ctx context.Context, billIDs []string) ([]domain.VoteEvent, error)
	// ListVersions pages over a jurisdiction's bill version documents.
	ListVersions(ctx context.Context, jurisdictionAreaID string, offset, limit int) ([]domain.Bill, int, error)
	// BillsMissingSummary feeds the summary-backfill worker.
	BillsMissingSummary(ctx context.Context, limit int) ([]domain.Bill, error)
	UpdateSummary(ctx context.Context, billID, summary string) error
}
