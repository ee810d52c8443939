package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/repcheck/repcheck-api/internal/core/domain"
	"github.com/repcheck/repcheck-api/internal/core/usecases"
)

// --- Mock BillRepository ---

type mockBillRepo struct {
	countFn        func(ctx context.Context, f domain.BillFilter) (int, error)
	fetchPageFn    func(ctx context.Context, f domain.BillFilter, sort domain.SortSpec, offset, limit int) ([]domain.Bill, error)
	getByIDFn      func(ctx context.Context, id string) (*domain.Bill, error)
	voteEventsFn   func(ctx context.Context, billIDs []string) ([]domain.VoteEvent, error)
	listVersionsFn func(ctx context.Context, jurisdictionAreaID string, offset, limit int) ([]domain.Bill, int, error)
	updateSummFn   func(ctx context.Context, billID, summary string) error
}

func (m *mockBillRepo) Count(ctx context.Context, f domain.BillFilter) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, f)
	}
	return 0, nil
}
func (m *mockBillRepo) FetchPage(ctx context.Context, f domain.BillFilter, sort domain.SortSpec, offset, limit int) ([]domain.Bill, error) {
	if m.fetchPageFn != nil {
		return m.fetchPageFn(ctx, f, sort, offset, limit)
	}
	return nil, nil
}
func (m *mockBillRepo) GetByID(ctx context.Context, id string) (*domain.Bill, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockBillRepo) VoteEventsByBillIDs(ctx context.Context, billIDs []string) ([]domain.VoteEvent, error) {
	if m.voteEventsFn != nil {
		return m.voteEventsFn(ctx, billIDs)
	}
	return nil, nil
}
func (m *mockBillRepo) ListVersions(ctx context.Context, jurisdictionAreaID string, offset, limit int) ([]domain.Bill, int, error) {
	if m.listVersionsFn != nil {
		return m.listVersionsFn(ctx, jurisdictionAreaID, offset, limit)
	}
	return nil, 0, nil
}
func (m *mockBillRepo) BillsMissingSummary(ctx context.Context, limit int) ([]domain.Bill, error) {
	return nil, nil
}
func (m *mockBillRepo) UpdateSummary(ctx context.Context, billID, summary string) error {
	if m.updateSummFn != nil {
		return m.updateSummFn(ctx, billID, summary)
	}
	return nil
}

// repsWithJurisdiction builds a RepresentativeService whose ZIP resolves to
// the given jurisdiction set.
func repsWithJurisdiction(jurisdictions ...string) *usecases.RepresentativeService {
	people := make([]domain.Person, len(jurisdictions))
	edges := make([]domain.PersonArea, len(jurisdictions))
	for i, j := range jurisdictions {
		id := fmt.Sprintf("p%d", i)
		people[i] = domain.Person{ID: id, JurisdictionAreaID: j}
		edges[i] = domain.PersonArea{PersonID: id}
	}
	repo := &mockPersonRepo{
		personAreasFn: func(ctx context.Context, areaID string) ([]domain.PersonArea, error) {
			return edges, nil
		},
		getByIDsFn: func(ctx context.Context, ids []string) ([]domain.Person, error) {
			return people, nil
		},
	}
	return usecases.NewRepresentativeService(repo, &mockAreaRepo{}, nil)
}

// --- Tests ---

func TestBillService_PaginationMath(t *testing.T) {
	bills := &mockBillRepo{
		countFn: func(ctx context.Context, f domain.BillFilter) (int, error) {
			return 47, nil
		},
		fetchPageFn: func(ctx context.Context, f domain.BillFilter, sort domain.SortSpec, offset, limit int) ([]domain.Bill, error) {
			if offset != 40 || limit != 20 {
				t.Errorf("expected offset 40 limit 20, got %d %d", offset, limit)
			}
			out := make([]domain.Bill, 7)
			for i := range out {
				out[i] = domain.Bill{ID: fmt.Sprintf("b%d", i)}
			}
			return out, nil
		},
	}

	svc := usecases.NewBillService(bills, repsWithJurisdiction("ocd-division/country:us/state:ca"), nil)
	page, err := svc.PageForZip(context.Background(), "94103", usecases.PageRequest{Page: 3, PageSize: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalBills != 47 || page.TotalPages != 3 {
		t.Errorf("expected 47 bills over 3 pages, got %d over %d", page.TotalBills, page.TotalPages)
	}
	if len(page.Bills) != 7 {
		t.Errorf("last page should hold the 7 remaining bills, got %d", len(page.Bills))
	}
	if page.CurrentPage != 3 || page.PageSize != 20 {
		t.Errorf("unexpected page metadata: %+v", page)
	}
}

func TestBillService_PagePastEndIsNotFound(t *testing.T) {
	bills := &mockBillRepo{
		countFn: func(ctx context.Context, f domain.BillFilter) (int, error) { return 47, nil },
	}
	svc := usecases.NewBillService(bills, repsWithJurisdiction("j1"), nil)
	_, err := svc.PageForZip(context.Background(), "94103", usecases.PageRequest{Page: 4, PageSize: 20})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBillService_EmptyResultAnyPageOK(t *testing.T) {
	fetched := false
	bills := &mockBillRepo{
		fetchPageFn: func(ctx context.Context, f domain.BillFilter, sort domain.SortSpec, offset, limit int) ([]domain.Bill, error) {
			fetched = true
			return nil, nil
		},
	}
	svc := usecases.NewBillService(bills, repsWithJurisdiction("j1"), nil)

	for _, pageNum := range []int{1, 7} {
		page, err := svc.PageForZip(context.Background(), "94103", usecases.PageRequest{Page: pageNum, PageSize: 20})
		if err != nil {
			t.Fatalf("page %d of empty set should not error: %v", pageNum, err)
		}
		if page.TotalBills != 0 || len(page.Bills) != 0 {
			t.Errorf("expected empty page, got %+v", page)
		}
	}
	if fetched {
		t.Error("empty relation must not hit the page fetch")
	}
}

func TestBillService_NoJurisdictionsSkipsStore(t *testing.T) {
	counted := false
	bills := &mockBillRepo{
		countFn: func(ctx context.Context, f domain.BillFilter) (int, error) {
			counted = true
			return 0, nil
		},
	}
	svc := usecases.NewBillService(bills, repsWithJurisdiction(), nil)

	page, err := svc.PageForZip(context.Background(), "00000", usecases.PageRequest{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counted {
		t.Error("ZIP with no jurisdictions must not query the store")
	}
	if page.CurrentPage != 1 || page.PageSize != 20 {
		t.Errorf("page metadata not echoed: %+v", page)
	}
}

func TestBillService_InvalidPaging(t *testing.T) {
	svc := usecases.NewBillService(&mockBillRepo{}, repsWithJurisdiction("j1"), nil)

	for _, req := range []usecases.PageRequest{
		{Page: -1, PageSize: 20},
		{Page: 1, PageSize: -5},
		{Page: 0, PageSize: 20},
		{Page: 1, PageSize: 0},
	} {
		_, err := svc.PageForZip(context.Background(), "94103", req)
		if !errors.Is(err, domain.ErrInvalidParameter) {
			t.Errorf("request %+v: expected ErrInvalidParameter, got %v", req, err)
		}
	}
}

func TestBillService_BadSortOrder(t *testing.T) {
	svc := usecases.NewBillService(&mockBillRepo{}, repsWithJurisdiction("j1"), nil)
	_, err := svc.PageForZip(context.Background(), "94103", usecases.PageRequest{Page: 1, PageSize: 20, Order: "sideways"})
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestBillService_UnknownSortByFallsBack(t *testing.T) {
	var gotSort domain.SortSpec
	bills := &mockBillRepo{
		countFn: func(ctx context.Context, f domain.BillFilter) (int, error) { return 1, nil },
		fetchPageFn: func(ctx context.Context, f domain.BillFilter, sort domain.SortSpec, offset, limit int) ([]domain.Bill, error) {
			gotSort = sort
			return []domain.Bill{{ID: "b1"}}, nil
		},
	}
	svc := usecases.NewBillService(bills, repsWithJurisdiction("j1"), nil)
	if _, err := svc.PageForZip(context.Background(), "94103", usecases.PageRequest{Page: 1, PageSize: 20, SortBy: "shoe_size"}); err != nil {
		t.Fatalf("unknown sort_by should fall back, got %v", err)
	}
	if gotSort.Key != domain.SortByLatestActionDate || !gotSort.Descending {
		t.Errorf("expected default sort, got %+v", gotSort)
	}
}

func TestBillService_DateBoundRequiresDateType(t *testing.T) {
	svc := usecases.NewBillService(&mockBillRepo{}, repsWithJurisdiction("j1"), nil)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.PageForZip(context.Background(), "94103", usecases.PageRequest{
		Page: 1, PageSize: 20,
		Filter: domain.BillFilter{StartDate: &start},
	})
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestBillService_VoteEnrichmentSingleBatch(t *testing.T) {
	calls := 0
	bills := &mockBillRepo{
		countFn: func(ctx context.Context, f domain.BillFilter) (int, error) { return 2, nil },
		fetchPageFn: func(ctx context.Context, f domain.BillFilter, sort domain.SortSpec, offset, limit int) ([]domain.Bill, error) {
			return []domain.Bill{{ID: "b1"}, {ID: "b2"}}, nil
		},
		voteEventsFn: func(ctx context.Context, billIDs []string) ([]domain.VoteEvent, error) {
			calls++
			if len(billIDs) != 2 {
				t.Errorf("expected both bill ids in one batch, got %v", billIDs)
			}
			return []domain.VoteEvent{
				{ID: "v1", BillID: "b1", Result: "pass"},
				{ID: "v2", BillID: "b1", Result: "fail"},
			}, nil
		},
	}

	svc := usecases.NewBillService(bills, repsWithJurisdiction("j1"), nil)
	page, err := svc.PageForZip(context.Background(), "94103", usecases.PageRequest{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected exactly one vote fetch, got %d", calls)
	}
	if len(page.Bills[0].Votes) != 2 {
		t.Errorf("b1 should carry 2 vote events, got %d", len(page.Bills[0].Votes))
	}
	if page.Bills[1].Votes == nil || len(page.Bills[1].Votes) != 0 {
		t.Errorf("vote-less bill should carry an empty slice, got %v", page.Bills[1].Votes)
	}
}

func TestBillService_GetWithVotes_NotFound(t *testing.T) {
	svc := usecases.NewBillService(&mockBillRepo{}, repsWithJurisdiction(), nil)
	_, err := svc.GetWithVotes(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBillService_UpdateSummary_NotFound(t *testing.T) {
	svc := usecases.NewBillService(&mockBillRepo{}, repsWithJurisdiction(), nil)
	err := svc.UpdateSummary(context.Background(), "missing", "a summary")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBillService_ListVersions(t *testing.T) {
	bills := &mockBillRepo{
		listVersionsFn: func(ctx context.Context, jurisdictionAreaID string, offset, limit int) ([]domain.Bill, int, error) {
			if offset != 10 || limit != 10 {
				t.Errorf("expected offset 10 limit 10, got %d %d", offset, limit)
			}
			return []domain.Bill{{ID: "b1"}}, 11, nil
		},
	}
	svc := usecases.NewBillService(bills, repsWithJurisdiction(), nil)
	got, total, err := svc.ListVersions(context.Background(), "ocd-division/country:us", 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 11 || len(got) != 1 {
		t.Errorf("expected 1 bill of 11, got %d of %d", len(got), total)
	}
}
