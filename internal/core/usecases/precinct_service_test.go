package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/repcheck/repcheck-api/internal/core/domain"
	"github.com/repcheck/repcheck-api/internal/core/usecases"
)

// --- Mock AreaRepository ---

type mockAreaRepo struct {
	getByIDFn       func(ctx context.Context, id string) (*domain.Area, error)
	precinctsInBBFn func(ctx context.Context, b domain.Bounds) ([]domain.Precinct, error)
}

func (m *mockAreaRepo) GetByID(ctx context.Context, id string) (*domain.Area, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAreaRepo) PrecinctsInBoundingBox(ctx context.Context, b domain.Bounds) ([]domain.Precinct, error) {
	if m.precinctsInBBFn != nil {
		return m.precinctsInBBFn(ctx, b)
	}
	return nil, nil
}

func ptr(f float64) *float64 { return &f }

func sfArea(id string) *domain.Area {
	return &domain.Area{ID: id, CentroidLat: ptr(37.77), CentroidLon: ptr(-122.41)}
}

// --- Tests ---

func TestPrecinctService_FindWithinRadius(t *testing.T) {
	repo := &mockAreaRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Area, error) {
			return sfArea(id), nil
		},
		precinctsInBBFn: func(ctx context.Context, b domain.Bounds) ([]domain.Precinct, error) {
			return []domain.Precinct{
				// ~2.07 miles north of the centroid
				{ID: "near", CentroidLat: ptr(37.80), CentroidLon: ptr(-122.41)},
				// ~15.9 miles north; a box candidate the exact filter must drop
				{ID: "far", CentroidLat: ptr(38.00), CentroidLon: ptr(-122.41)},
			}, nil
		},
	}

	svc := usecases.NewPrecinctService(repo, nil)
	hits, err := svc.FindWithinRadius(context.Background(), "zip-area", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 precinct, got %d", len(hits))
	}
	if hits[0].Precinct.ID != "near" {
		t.Errorf("expected precinct 'near', got %q", hits[0].Precinct.ID)
	}
	if hits[0].DistanceMiles < 2.0 || hits[0].DistanceMiles > 2.2 {
		t.Errorf("expected distance ~2.07 miles, got %f", hits[0].DistanceMiles)
	}
}

func TestPrecinctService_RadiusBoundsInclusive(t *testing.T) {
	repo := &mockAreaRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Area, error) {
			return sfArea(id), nil
		},
	}
	svc := usecases.NewPrecinctService(repo, nil)

	for _, radius := range []float64{1, 100} {
		if _, err := svc.FindWithinRadius(context.Background(), "a", radius); err != nil {
			t.Errorf("radius %v should be accepted: %v", radius, err)
		}
	}
	for _, radius := range []float64{0.99, 100.01, 0, -5} {
		_, err := svc.FindWithinRadius(context.Background(), "a", radius)
		if !errors.Is(err, domain.ErrInvalidParameter) {
			t.Errorf("radius %v: expected ErrInvalidParameter, got %v", radius, err)
		}
	}
}

func TestPrecinctService_AreaNotFound(t *testing.T) {
	svc := usecases.NewPrecinctService(&mockAreaRepo{}, nil)
	_, err := svc.FindWithinRadius(context.Background(), "missing", 5)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPrecinctService_CentroidMissing(t *testing.T) {
	repo := &mockAreaRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Area, error) {
			return &domain.Area{ID: id}, nil
		},
	}
	svc := usecases.NewPrecinctService(repo, nil)
	_, err := svc.FindWithinRadius(context.Background(), "no-centroid", 5)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestPrecinctService_StorageErrorIsUpstream(t *testing.T) {
	repo := &mockAreaRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Area, error) {
			return sfArea(id), nil
		},
		precinctsInBBFn: func(ctx context.Context, b domain.Bounds) ([]domain.Precinct, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := usecases.NewPrecinctService(repo, nil)
	_, err := svc.FindWithinRadius(context.Background(), "a", 5)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestPrecinctService_SkipsHalfSetCentroids(t *testing.T) {
	repo := &mockAreaRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Area, error) {
			return sfArea(id), nil
		},
		precinctsInBBFn: func(ctx context.Context, b domain.Bounds) ([]domain.Precinct, error) {
			return []domain.Precinct{
				{ID: "bad", CentroidLat: ptr(37.78)}, // lon missing
				{ID: "good", CentroidLat: ptr(37.78), CentroidLon: ptr(-122.41)},
			}, nil
		},
	}
	svc := usecases.NewPrecinctService(repo, nil)
	hits, err := svc.FindWithinRadius(context.Background(), "a", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 || hits[0].Precinct.ID != "good" {
		t.Fatalf("expected only 'good' precinct, got %+v", hits)
	}
}

func TestPrecinctService_BoundingBoxPassedToStore(t *testing.T) {
	var got domain.Bounds
	repo := &mockAreaRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Area, error) {
			return sfArea(id), nil
		},
		precinctsInBBFn: func(ctx context.Context, b domain.Bounds) ([]domain.Precinct, error) {
			got = b
			return nil, nil
		},
	}
	svc := usecases.NewPrecinctService(repo, nil)
	if _, err := svc.FindWithinRadius(context.Background(), "a", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.MinLat >= 37.77 || got.MaxLat <= 37.77 {
		t.Errorf("latitude bounds do not bracket the centroid: %+v", got)
	}
	if got.MinLon >= -122.41 || got.MaxLon <= -122.41 {
		t.Errorf("longitude bounds do not bracket the centroid: %+v", got)
	}
	// Longitude half-span must exceed latitude half-span away from the equator.
	if (got.MaxLon-got.MinLon)/2 <= (got.MaxLat-got.MinLat)/2 {
		t.Errorf("longitude delta should be cos-corrected: %+v", got)
	}
}
