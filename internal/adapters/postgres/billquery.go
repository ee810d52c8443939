package postgres

import (
	"fmt"
	"strings"

	"github.com/repcheck/repcheck-api/internal/core/domain"
)

// billQuery accumulates the WHERE/JOIN/ORDER pieces of a bill listing.
// Filter fragments fold onto it one at a time, so any subset of filters
// composes without branching over every combination.
type billQuery struct {
	where []string
	join  string
	order string
	args  []any
}

// arg appends a bind parameter and returns its placeholder.
func (q *billQuery) arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *billQuery) whereSQL() string {
	if len(q.where) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(q.where, "\n  AND ")
}

// fragment narrows the query. Fragments are pure: they read the filter and
// append predicates, never remove them.
type fragment func(q *billQuery)

// buildBillQuery folds the filter's fragments onto a fresh query and, for
// page fetches, resolves the sort spec into join + order clauses.
func buildBillQuery(f domain.BillFilter, sort *domain.SortSpec) *billQuery {
	q := &billQuery{}
	for _, frag := range filterFragments(f) {
		frag(q)
	}
	if sort != nil {
		applySort(q, *sort)
	}
	return q
}

func filterFragments(f domain.BillFilter) []fragment {
	var frags []fragment

	frags = append(frags, func(q *billQuery) {
		q.where = append(q.where, "b.jurisdiction_area_id = ANY("+q.arg(f.JurisdictionAreaIDs)+")")
	})

	if f.HasVotes {
		frags = append(frags, func(q *billQuery) {
			q.where = append(q.where, "EXISTS (SELECT 1 FROM vote_events ve WHERE ve.bill_id = b.id)")
		})
	}

	if f.JurisdictionLevel != "" {
		frags = append(frags, func(q *billQuery) {
			q.where = append(q.where, "b.jurisdiction_level = "+q.arg(f.JurisdictionLevel))
		})
	}

	if f.StartDate != nil || f.EndDate != nil {
		col := "b.latest_action_date"
		if f.DateType == domain.DateTypeCreation {
			col = "b.created_at"
		}
		if f.StartDate != nil {
			start := *f.StartDate
			frags = append(frags, func(q *billQuery) {
				q.where = append(q.where, col+" >= "+q.arg(start))
			})
		}
		if f.EndDate != nil {
			end := *f.EndDate
			frags = append(frags, func(q *billQuery) {
				q.where = append(q.where, col+" <= "+q.arg(end))
			})
		}
	}

	if len(f.RepresentativeIDs) > 0 {
		frags = append(frags, func(q *billQuery) {
			// One ballot row per voter per vote event; a bill matches when
			// any requested voter appears in any of its events.
			q.where = append(q.where, `EXISTS (
    SELECT 1 FROM vote_ballots vb
    JOIN vote_events ve ON ve.id = vb.vote_event_id
    WHERE ve.bill_id = b.id AND vb.voter_id = ANY(`+q.arg(f.RepresentativeIDs)+`))`)
		})
	}

	return frags
}

// applySort resolves the tagged sort spec into SQL. The aggregated variant
// outer-joins a per-bill max(start_date) so vote-less bills stay in the set
// with a null sort value, pushed to the end for either direction. Bill ID
// breaks ties so pages stay stable under identical sort values.
func applySort(q *billQuery, s domain.SortSpec) {
	dir := "ASC"
	if s.Descending {
		dir = "DESC"
	}

	switch s.Kind {
	case domain.SortAggregated:
		q.join = `LEFT JOIN (
    SELECT bill_id, max(start_date) AS max_vote_date
    FROM vote_events GROUP BY bill_id
) lv ON lv.bill_id = b.id`
		q.order = fmt.Sprintf("ORDER BY lv.max_vote_date %s NULLS LAST, b.id", dir)
	default:
		col := map[string]string{
			domain.SortByCreationDate:     "b.created_at",
			domain.SortByLatestActionDate: "b.latest_action_date",
			domain.SortByTitle:            "b.title",
		}[s.Key]
		if col == "" {
			col = "b.latest_action_date"
		}
		q.order = fmt.Sprintf("ORDER BY %s %s NULLS LAST, b.id", col, dir)
	}
}
