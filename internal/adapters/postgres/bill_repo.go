package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/repcheck/repcheck-api/internal/core/domain"
)

const billColumns = `b.id, COALESCE(b.identifier, ''), COALESCE(b.title, ''),
       COALESCE(b.jurisdiction_area_id, ''), COALESCE(b.jurisdiction_level, ''),
       COALESCE(b.classification, '{}'),
       b.created_at, b.latest_action_date,
       COALESCE(b.latest_action_description, ''), COALESCE(b.ai_summary, '')`

// BillRepo implements ports.BillRepository with pgx.
type BillRepo struct {
	db *DB
}

// NewBillRepo creates a new BillRepo.
func NewBillRepo(db *DB) *BillRepo {
	return &BillRepo{db: db}
}

// Count returns the number of bills matching the filter.
func (r *BillRepo) Count(ctx context.Context, f domain.BillFilter) (int, error) {
	q := buildBillQuery(f, nil)
	sql := fmt.Sprintf("SELECT count(*) FROM bills b %s", q.whereSQL())

	var total int
	if err := r.db.Pool.QueryRow(ctx, sql, q.args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// FetchPage returns one sorted page of bills matching the filter. Vote
// enrichment is a separate batched call; rows here carry no vote events.
func (r *BillRepo) FetchPage(ctx context.Context, f domain.BillFilter, sort domain.SortSpec, offset, limit int) ([]domain.Bill, error) {
	q := buildBillQuery(f, &sort)
	sql := fmt.Sprintf(`SELECT %s
FROM bills b
%s
%s
%s
OFFSET %s LIMIT %s`,
		billColumns, q.join, q.whereSQL(), q.order, q.arg(offset), q.arg(limit))

	rows, err := r.db.Pool.Query(ctx, sql, q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBills(rows)
}

// GetByID returns a bill by ID, or (nil, nil) if absent.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*domain.Bill, error) {
	sql := fmt.Sprintf("SELECT %s FROM bills b WHERE b.id = $1", billColumns)

	var b domain.Bill
	err := r.db.Pool.QueryRow(ctx, sql, id).Scan(
		&b.ID, &b.Identifier, &b.Title,
		&b.JurisdictionAreaID, &b.JurisdictionLevel,
		&b.Classification,
		&b.CreatedAt, &b.LatestActionDate,
		&b.LatestActionDescription, &b.AISummary,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// VoteEventsByBillIDs returns all vote events for the given bills in one
// round trip, ballots included. Grouping by bill is the caller's job.
func (r *BillRepo) VoteEventsByBillIDs(ctx context.Context, billIDs []string) ([]domain.VoteEvent, error) {
	if len(billIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, bill_id, start_date, COALESCE(motion_text, ''), COALESCE(result, '')
		FROM vote_events
		WHERE bill_id = ANY($1)
		ORDER BY start_date DESC
	`, billIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.VoteEvent
	index := make(map[string]int)
	for rows.Next() {
		var ev domain.VoteEvent
		if err := rows.Scan(&ev.ID, &ev.BillID, &ev.StartDate, &ev.Motion, &ev.Result); err != nil {
			return nil, err
		}
		ev.Ballots = []domain.Ballot{}
		index[ev.ID] = len(events)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	eventIDs := make([]string, len(events))
	for i, ev := range events {
		eventIDs[i] = ev.ID
	}

	ballotRows, err := r.db.Pool.Query(ctx, `
		SELECT vote_event_id, voter_id, COALESCE(option, '')
		FROM vote_ballots
		WHERE vote_event_id = ANY($1)
	`, eventIDs)
	if err != nil {
		return nil, err
	}
	defer ballotRows.Close()

	for ballotRows.Next() {
		var eventID string
		var b domain.Ballot
		if err := ballotRows.Scan(&eventID, &b.VoterID, &b.Option); err != nil {
			return nil, err
		}
		if i, ok := index[eventID]; ok {
			events[i].Ballots = append(events[i].Ballots, b)
		}
	}
	return events, ballotRows.Err()
}

// ListVersions returns one page of bills with version documents for a
// jurisdiction, plus the total count for pagination.
func (r *BillRepo) ListVersions(ctx context.Context, jurisdictionAreaID string, offset, limit int) ([]domain.Bill, int, error) {
	var total int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT count(*) FROM bills b
		WHERE b.jurisdiction_area_id = $1 AND b.versions IS NOT NULL
	`, jurisdictionAreaID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	sql := fmt.Sprintf(`SELECT %s, b.versions
FROM bills b
WHERE b.jurisdiction_area_id = $1 AND b.versions IS NOT NULL
ORDER BY b.latest_action_date DESC NULLS LAST, b.id
OFFSET $2 LIMIT $3`, billColumns)

	rows, err := r.db.Pool.Query(ctx, sql, jurisdictionAreaID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		var b domain.Bill
		if err := rows.Scan(
			&b.ID, &b.Identifier, &b.Title,
			&b.JurisdictionAreaID, &b.JurisdictionLevel,
			&b.Classification,
			&b.CreatedAt, &b.LatestActionDate,
			&b.LatestActionDescription, &b.AISummary,
			&b.Versions,
		); err != nil {
			return nil, 0, err
		}
		bills = append(bills, b)
	}
	return bills, total, rows.Err()
}

// BillsMissingSummary returns bills that have no AI summary yet, oldest
// action first so the backfill works through the backlog in order.
func (r *BillRepo) BillsMissingSummary(ctx context.Context, limit int) ([]domain.Bill, error) {
	sql := fmt.Sprintf(`SELECT %s
FROM bills b
WHERE b.ai_summary IS NULL OR b.ai_summary = ''
ORDER BY b.latest_action_date ASC NULLS LAST, b.id
LIMIT $1`, billColumns)

	rows, err := r.db.Pool.Query(ctx, sql, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBills(rows)
}

// UpdateSummary stores the generated summary for one bill.
func (r *BillRepo) UpdateSummary(ctx context.Context, billID, summary string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE bills SET ai_summary = $2, updated_at = now()
		WHERE id = $1
	`, billID, summary)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanBills(rows pgx.Rows) ([]domain.Bill, error) {
	var bills []domain.Bill
	for rows.Next() {
		var b domain.Bill
		if err := rows.Scan(
			&b.ID, &b.Identifier, &b.Title,
			&b.JurisdictionAreaID, &b.JurisdictionLevel,
			&b.Classification,
			&b.CreatedAt, &b.LatestActionDate,
			&b.LatestActionDescription, &b.AISummary,
		); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}
