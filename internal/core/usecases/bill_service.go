package usecases

import (
	"context"
	"encoding/json"

	"github.com/repcheck/repcheck-api/internal/core/domain"
	"github.com/repcheck/repcheck-api/internal/core/ports"
)

// BillService serves paginated, filterable, sortable bill listings for a
// ZIP code's representatives, and single-bill lookups.
type BillService struct {
	bills ports.BillRepository
	reps  *RepresentativeService
	cache ports.CacheService
}

// NewBillService creates a new BillService. cache may be nil.
func NewBillService(bills ports.BillRepository, reps *RepresentativeService, cache ports.CacheService) *BillService {
	return &BillService{bills: bills, reps: reps, cache: cache}
}

// BillCacheKey is the cache key for a single enriched bill. Ingestion-side
// update events invalidate it.
func BillCacheKey(billID string) string {
	return "bill:" + billID
}

// PageRequest carries the caller's listing parameters. Page and PageSize
// must be positive; transport layers apply their defaults before building
// a request. Zero values mean "unset" for the filters only.
type PageRequest struct {
	Page     int
	PageSize int
	Filter   domain.BillFilter
	SortBy   string
	Order    string
}

// PageForZip resolves the ZIP's jurisdictions, applies the filter and sort,
// and returns exactly one page of bills with their vote events attached.
func (s *BillService) PageForZip(ctx context.Context, zip string, req PageRequest) (*domain.BillPage, error) {
	if req.Page < 1 || req.PageSize < 1 {
		return nil, domain.InvalidParameterf("page and page_size must be positive integers")
	}
	if err := req.Filter.Validate(); err != nil {
		return nil, err
	}
	sortSpec, err := domain.ResolveSort(req.SortBy, req.Order)
	if err != nil {
		return nil, err
	}

	jurisdictions, err := s.reps.JurisdictionsFor(ctx, zip)
	if err != nil {
		return nil, err
	}

	filter := req.Filter
	filter.JurisdictionAreaIDs = jurisdictions

	page := &domain.BillPage{
		Bills:       []domain.Bill{},
		CurrentPage: req.Page,
		PageSize:    req.PageSize,
	}

	// A ZIP with no jurisdictions has an empty relation; skip the store.
	if len(jurisdictions) == 0 {
		return page, nil
	}

	total, err := s.bills.Count(ctx, filter)
	if err != nil {
		return nil, domain.Upstreamf("count bills", err)
	}
	page.TotalBills = total
	page.TotalPages = (total + req.PageSize - 1) / req.PageSize

	// An empty result set is not an error for any page; a page past the
	// end of a non-empty set is.
	if total == 0 {
		return page, nil
	}
	if req.Page > page.TotalPages {
		return nil, domain.NotFoundf("page %d out of range (total pages %d)", req.Page, page.TotalPages)
	}

	offset := (req.Page - 1) * req.PageSize
	bills, err := s.bills.FetchPage(ctx, filter, sortSpec, offset, req.PageSize)
	if err != nil {
		return nil, domain.Upstreamf("fetch bills page", err)
	}

	if err := s.attachVotes(ctx, bills); err != nil {
		return nil, err
	}

	page.Bills = bills
	return page, nil
}

// GetWithVotes returns a single bill with its vote events attached.
func (s *BillService) GetWithVotes(ctx context.Context, billID string) (*domain.Bill, error) {
	cacheKey := BillCacheKey(billID)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached domain.Bill
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, domain.Upstreamf("get bill", err)
	}
	if bill == nil {
		return nil, domain.NotFoundf("bill %q", billID)
	}

	bills := []domain.Bill{*bill}
	if err := s.attachVotes(ctx, bills); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(&bills[0]); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}
	return &bills[0], nil
}

// ListVersions pages over bill version documents for one jurisdiction.
func (s *BillService) ListVersions(ctx context.Context, jurisdictionAreaID string, page, perPage int) ([]domain.Bill, int, error) {
	if page < 1 || perPage < 1 {
		return nil, 0, domain.InvalidParameterf("page and per_page must be positive integers")
	}
	bills, total, err := s.bills.ListVersions(ctx, jurisdictionAreaID, (page-1)*perPage, perPage)
	if err != nil {
		return nil, 0, domain.Upstreamf("list bill versions", err)
	}
	return bills, total, nil
}

// UpdateSummary stores an externally generated summary on a bill.
func (s *BillService) UpdateSummary(ctx context.Context, billID, summary string) error {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return domain.Upstreamf("get bill", err)
	}
	if bill == nil {
		return domain.NotFoundf("bill %q", billID)
	}
	if err := s.bills.UpdateSummary(ctx, billID, summary); err != nil {
		return domain.Upstreamf("update summary", err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, BillCacheKey(billID))
	}
	return nil
}

// attachVotes enriches bills with their vote events in a single batched
// fetch. One query regardless of page size; per-row fetches are forbidden.
func (s *BillService) attachVotes(ctx context.Context, bills []domain.Bill) error {
	if len(bills) == 0 {
		return nil
	}

	ids := make([]string, len(bills))
	for i := range bills {
		ids[i] = bills[i].ID
	}

	events, err := s.bills.VoteEventsByBillIDs(ctx, ids)
	if err != nil {
		return domain.Upstreamf("fetch vote events", err)
	}

	byBill := make(map[string][]domain.VoteEvent, len(bills))
	for _, ev := range events {
		byBill[ev.BillID] = append(byBill[ev.BillID], ev)
	}
	for i := range bills {
		votes := byBill[bills[i].ID]
		if votes == nil {
			votes = []domain.VoteEvent{}
		}
		bills[i].Votes = votes
	}
	return nil
}
