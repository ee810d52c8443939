package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/repcheck/repcheck-api/internal/core/domain"
)

func baseFilter() domain.BillFilter {
	return domain.BillFilter{
		JurisdictionAreaIDs: []string{"ocd-division/country:us/state:ca"},
	}
}

func TestBuildBillQueryBaseRelation(t *testing.T) {
	q := buildBillQuery(baseFilter(), nil)

	where := q.whereSQL()
	if !strings.Contains(where, "b.jurisdiction_area_id = ANY($1)") {
		t.Fatalf("missing jurisdiction predicate: %s", where)
	}
	if len(q.args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(q.args))
	}
	if strings.Contains(where, "EXISTS") {
		t.Fatalf("unfiltered query grew extra predicates: %s", where)
	}
}

func TestBuildBillQueryAllFilters(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	f := domain.BillFilter{
		JurisdictionAreaIDs: []string{"a", "b"},
		HasVotes:            true,
		JurisdictionLevel:   "state",
		DateType:            domain.DateTypeLatestAction,
		StartDate:           &start,
		EndDate:             &end,
		RepresentativeIDs:   []string{"person-1", "person-2"},
	}

	q := buildBillQuery(f, nil)
	where := q.whereSQL()

	for _, want := range []string{
		"b.jurisdiction_area_id = ANY($1)",
		"EXISTS (SELECT 1 FROM vote_events ve WHERE ve.bill_id = b.id)",
		"b.jurisdiction_level = $2",
		"b.latest_action_date >= $3",
		"b.latest_action_date <= $4",
		"vb.voter_id = ANY($5)",
	} {
		if !strings.Contains(where, want) {
			t.Errorf("missing %q in:\n%s", want, where)
		}
	}
	if len(q.args) != 5 {
		t.Fatalf("expected 5 args, got %d", len(q.args))
	}
}

func TestBuildBillQueryDateTypeSelectsColumn(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	f := baseFilter()
	f.DateType = domain.DateTypeCreation
	f.StartDate = &start

	where := buildBillQuery(f, nil).whereSQL()
	if !strings.Contains(where, "b.created_at >= $2") {
		t.Fatalf("creation_date should bound created_at: %s", where)
	}
	if strings.Contains(where, "latest_action_date >=") {
		t.Fatalf("wrong column bounded: %s", where)
	}
}

func TestBuildBillQuerySingleBoundOnly(t *testing.T) {
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	f := baseFilter()
	f.DateType = domain.DateTypeLatestAction
	f.EndDate = &end

	q := buildBillQuery(f, nil)
	where := q.whereSQL()
	if !strings.Contains(where, "b.latest_action_date <= $2") {
		t.Fatalf("missing end bound: %s", where)
	}
	if strings.Contains(where, ">=") {
		t.Fatalf("start bound appeared without being set: %s", where)
	}
}

func TestApplySortSimpleColumns(t *testing.T) {
	cases := []struct {
		key  string
		desc bool
		want string
	}{
		{domain.SortByLatestActionDate, true, "ORDER BY b.latest_action_date DESC NULLS LAST, b.id"},
		{domain.SortByCreationDate, false, "ORDER BY b.created_at ASC NULLS LAST, b.id"},
		{domain.SortByTitle, false, "ORDER BY b.title ASC NULLS LAST, b.id"},
	}
	for _, tc := range cases {
		q := buildBillQuery(baseFilter(), &domain.SortSpec{Kind: domain.SortSimple, Key: tc.key, Descending: tc.desc})
		if q.order != tc.want {
			t.Errorf("%s: got %q, want %q", tc.key, q.order, tc.want)
		}
		if q.join != "" {
			t.Errorf("%s: simple sort should not join: %q", tc.key, q.join)
		}
	}
}

func TestApplySortAggregatedJoinsVoteEvents(t *testing.T) {
	spec := domain.SortSpec{Kind: domain.SortAggregated, Key: domain.SortByLatestVoteDate, Descending: true}
	q := buildBillQuery(baseFilter(), &spec)

	if !strings.Contains(q.join, "max(start_date) AS max_vote_date") {
		t.Fatalf("aggregated sort missing max join: %q", q.join)
	}
	if !strings.Contains(q.join, "LEFT JOIN") {
		t.Fatalf("aggregated sort must outer-join so vote-less bills survive: %q", q.join)
	}
	if q.order != "ORDER BY lv.max_vote_date DESC NULLS LAST, b.id" {
		t.Fatalf("unexpected order clause: %q", q.order)
	}
}

func TestApplySortAggregatedAscendingKeepsNullsLast(t *testing.T) {
	spec := domain.SortSpec{Kind: domain.SortAggregated, Key: domain.SortByLatestVoteDate, Descending: false}
	q := buildBillQuery(baseFilter(), &spec)
	if q.order != "ORDER BY lv.max_vote_date ASC NULLS LAST, b.id" {
		t.Fatalf("unexpected order clause: %q", q.order)
	}
}
