package domain

import "time"

// Date-filter column selectors for BillFilter.DateType.
const (
	DateTypeLatestAction = "latest_action_date"
	DateTypeCreation     = "creation_date"
)

// Recognized sort keys for bill listings.
const (
	SortByCreationDate     = "creation_date"
	SortByLatestActionDate = "latest_action_date"
	SortByTitle            = "title"
	SortByLatestVoteDate   = "latest_vote_date"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// BillFilter is the declarative relation spec handed to the storage layer.
// Every field is optional; set fields compose with AND semantics.
type BillFilter struct {
	// JurisdictionAreaIDs restricts the base relation. Empty means the
	// caller's ZIP resolved to no jurisdictions; the relation is empty.
	JurisdictionAreaIDs []string

	// HasVotes keeps only bills with at least one vote event.
	HasVotes bool

	// JurisdictionLevel is an exact match (federal | state | local).
	JurisdictionLevel string

	// DateType selects which column the bounds below apply to. Required
	// when either bound is set; both bounds are inclusive and independently
	// optional.
	DateType  string
	StartDate *time.Time
	EndDate   *time.Time

	// RepresentativeIDs keeps bills where any of these voters appears in
	// any ballot of any of the bill's vote events (OR across IDs).
	RepresentativeIDs []string
}

// Validate checks the parts of the filter that are caller input.
func (f BillFilter) Validate() error {
	if f.StartDate != nil || f.EndDate != nil {
		switch f.DateType {
		case DateTypeLatestAction, DateTypeCreation:
		case "":
			return InvalidParameterf("date_type is required when a date bound is set")
		default:
			return InvalidParameterf("date_type must be %q or %q", DateTypeLatestAction, DateTypeCreation)
		}
	}
	return nil
}

// SortKind discriminates the two sort strategies.
type SortKind int

const (
	// SortSimple orders by a plain bill column.
	SortSimple SortKind = iota
	// SortAggregated orders by a per-bill aggregate over vote events,
	// outer-joined so vote-less bills are kept (null sort value).
	SortAggregated
)

// SortSpec is a resolved ordering: a tagged union over simple-column and
// aggregated-column sorts.
type SortSpec struct {
	Kind       SortKind
	Key        string // one of the SortBy constants
	Descending bool
}

// ResolveSort maps a requested (sortBy, sortOrder) pair onto a SortSpec.
// Unrecognized sortBy values fall back to the default ordering; an
// unrecognized sortOrder is an error.
func ResolveSort(sortBy, sortOrder string) (SortSpec, error) {
	var desc bool
	switch sortOrder {
	case SortDesc, "":
		desc = true
	case SortAsc:
		desc = false
	default:
		return SortSpec{}, InvalidParameterf("sort_order must be %q or %q", SortAsc, SortDesc)
	}

	switch sortBy {
	case SortByLatestVoteDate:
		return SortSpec{Kind: SortAggregated, Key: SortByLatestVoteDate, Descending: desc}, nil
	case SortByCreationDate, SortByTitle:
		return SortSpec{Kind: SortSimple, Key: sortBy, Descending: desc}, nil
	default:
		// latest_action_date, "" and anything unknown all resolve to the default.
		return SortSpec{Kind: SortSimple, Key: SortByLatestActionDate, Descending: desc}, nil
	}
}
