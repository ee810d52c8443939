package usecases_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/repcheck/repcheck-api/internal/core/domain"
	"github.com/repcheck/repcheck-api/internal/core/usecases"
)

// --- Mock PersonRepository ---

type mockPersonRepo struct {
	personAreasFn func(ctx context.Context, areaID string) ([]domain.PersonArea, error)
	getByIDsFn    func(ctx context.Context, ids []string) ([]domain.Person, error)
}

func (m *mockPersonRepo) PersonAreasByAreaID(ctx context.Context, areaID string) ([]domain.PersonArea, error) {
	if m.personAreasFn != nil {
		return m.personAreasFn(ctx, areaID)
	}
	return nil, nil
}

func (m *mockPersonRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Person, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return nil, nil
}

// --- Tests ---

func TestRepresentativeService_RepresentativesFor(t *testing.T) {
	repo := &mockPersonRepo{
		personAreasFn: func(ctx context.Context, areaID string) ([]domain.PersonArea, error) {
			if areaID != "ocd-division/country:us/zipcode:94103" {
				t.Errorf("unexpected area id %q", areaID)
			}
			return []domain.PersonArea{
				{PersonID: "p1", AreaID: areaID},
				{PersonID: "p2", AreaID: areaID},
				{PersonID: "p1", AreaID: areaID}, // duplicate edge
			}, nil
		},
		getByIDsFn: func(ctx context.Context, ids []string) ([]domain.Person, error) {
			if len(ids) != 2 {
				t.Errorf("expected 2 deduplicated ids, got %v", ids)
			}
			return []domain.Person{
				{ID: "p1", Name: "Alex Padilla"},
				{ID: "p2", Name: "Nancy Pelosi"},
			}, nil
		},
	}

	svc := usecases.NewRepresentativeService(repo, &mockAreaRepo{}, nil)
	people, err := svc.RepresentativesFor(context.Background(), "94103")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("expected 2 people, got %d", len(people))
	}
}

func TestRepresentativeService_UnmatchedZipIsEmpty(t *testing.T) {
	svc := usecases.NewRepresentativeService(&mockPersonRepo{}, &mockAreaRepo{}, nil)
	people, err := svc.RepresentativesFor(context.Background(), "00000")
	if err != nil {
		t.Fatalf("unmatched zip should not error: %v", err)
	}
	if people == nil || len(people) != 0 {
		t.Fatalf("expected empty slice, got %v", people)
	}
}

func TestRepresentativeService_JurisdictionsDeduplicated(t *testing.T) {
	repo := &mockPersonRepo{
		personAreasFn: func(ctx context.Context, areaID string) ([]domain.PersonArea, error) {
			return []domain.PersonArea{{PersonID: "p1"}, {PersonID: "p2"}, {PersonID: "p3"}}, nil
		},
		getByIDsFn: func(ctx context.Context, ids []string) ([]domain.Person, error) {
			return []domain.Person{
				{ID: "p1", JurisdictionAreaID: "ocd-division/country:us/state:ca"},
				{ID: "p2", JurisdictionAreaID: "ocd-division/country:us"},
				{ID: "p3", JurisdictionAreaID: "ocd-division/country:us/state:ca"}, // shared
			}, nil
		},
	}

	svc := usecases.NewRepresentativeService(repo, &mockAreaRepo{}, nil)
	got, err := svc.JurisdictionsFor(context.Background(), "94103")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"ocd-division/country:us", "ocd-division/country:us/state:ca"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRepresentativeService_JurisdictionsSkipEmpty(t *testing.T) {
	repo := &mockPersonRepo{
		personAreasFn: func(ctx context.Context, areaID string) ([]domain.PersonArea, error) {
			return []domain.PersonArea{{PersonID: "p1"}}, nil
		},
		getByIDsFn: func(ctx context.Context, ids []string) ([]domain.Person, error) {
			return []domain.Person{{ID: "p1"}}, nil // no jurisdiction recorded
		},
	}
	svc := usecases.NewRepresentativeService(repo, &mockAreaRepo{}, nil)
	got, err := svc.JurisdictionsFor(context.Background(), "94103")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no jurisdictions, got %v", got)
	}
}

func TestRepresentativeService_StorageErrorIsUpstream(t *testing.T) {
	repo := &mockPersonRepo{
		personAreasFn: func(ctx context.Context, areaID string) ([]domain.PersonArea, error) {
			return nil, errors.New("timeout")
		},
	}
	svc := usecases.NewRepresentativeService(repo, &mockAreaRepo{}, nil)
	_, err := svc.RepresentativesFor(context.Background(), "94103")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestRepresentativeService_AreaSummariesStripGeometry(t *testing.T) {
	areas := &mockAreaRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Area, error) {
			return &domain.Area{ID: id, Name: "CA", Geometry: []byte(`{"type":"Polygon"}`)}, nil
		},
	}
	svc := usecases.NewRepresentativeService(&mockPersonRepo{}, areas, nil)

	p := domain.Person{
		ConstituentAreaID:  "ocd-division/country:us/zipcode:94103",
		JurisdictionAreaID: "ocd-division/country:us/state:ca",
	}
	constituent, jurisdiction, err := svc.AreaSummariesFor(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if constituent == nil || jurisdiction == nil {
		t.Fatal("expected both area summaries")
	}
	if constituent.Geometry != nil || jurisdiction.Geometry != nil {
		t.Error("area summaries must not carry raw geometry")
	}
}
