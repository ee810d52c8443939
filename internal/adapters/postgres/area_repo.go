package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/repcheck/repcheck-api/internal/core/domain"
)

// AreaRepo implements ports.AreaRepository with pgx. Area geometry lives in
// a PostGIS column; centroids are materialized into plain float columns so
// the bounding-box prefilter runs as two indexed range scans.
type AreaRepo struct {
	db *DB
}

// NewAreaRepo creates a new AreaRepo.
func NewAreaRepo(db *DB) *AreaRepo {
	return &AreaRepo{db: db}
}

// GetByID returns an area by its OCD division ID, or (nil, nil) if absent.
func (r *AreaRepo) GetByID(ctx context.Context, id string) (*domain.Area, error) {
	var a domain.Area
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, COALESCE(name, ''),
		       ST_AsGeoJSON(geometry),
		       centroid_lat, centroid_lon
		FROM areas WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Geometry, &a.CentroidLat, &a.CentroidLon)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// PrecinctsInBoundingBox returns precincts whose centroid falls within the
// inclusive bounds. This is the cheap candidate cut, not the radius filter.
func (r *AreaRepo) PrecinctsInBoundingBox(ctx context.Context, b domain.Bounds) ([]domain.Precinct, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, COALESCE(name, ''),
		       ST_AsGeoJSON(geometry),
		       centroid_lat, centroid_lon,
		       COALESCE(total_votes, 0), COALESCE(results, '{}')
		FROM precincts
		WHERE centroid_lat BETWEEN $1 AND $2
		  AND centroid_lon BETWEEN $3 AND $4
	`, b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var precincts []domain.Precinct
	for rows.Next() {
		var p domain.Precinct
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Geometry,
			&p.CentroidLat, &p.CentroidLon,
			&p.TotalVotes, &p.Results,
		); err != nil {
			return nil, err
		}
		precincts = append(precincts, p)
	}
	return precincts, rows.Err()
}
