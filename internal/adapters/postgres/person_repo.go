package postgres

import (
	"context"

	"github.com/repcheck/repcheck-api/internal/core/domain"
)

// PersonRepo implements ports.PersonRepository with pgx.
type PersonRepo struct {
	db *DB
}

// NewPersonRepo creates a new PersonRepo.
func NewPersonRepo(db *DB) *PersonRepo {
	return &PersonRepo{db: db}
}

// PersonAreasByAreaID returns the membership edges for one area.
func (r *PersonRepo) PersonAreasByAreaID(ctx context.Context, areaID string) ([]domain.PersonArea, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT person_id, area_id
		FROM person_areas
		WHERE area_id = $1
	`, areaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []domain.PersonArea
	for rows.Next() {
		var pa domain.PersonArea
		if err := rows.Scan(&pa.PersonID, &pa.AreaID); err != nil {
			return nil, err
		}
		edges = append(edges, pa)
	}
	return edges, rows.Err()
}

// GetByIDs returns people by ID, in arbitrary order.
func (r *PersonRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Person, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name,
		       COALESCE(current_party, ''), COALESCE(current_district, ''), COALESCE(current_chamber, ''),
		       COALESCE(given_name, ''), COALESCE(family_name, ''),
		       COALESCE(email, ''), COALESCE(biography, ''),
		       birth_date, COALESCE(image, ''), COALESCE(links, '{}'),
		       COALESCE(capitol_address, ''), COALESCE(capitol_voice, ''),
		       COALESCE(district_address, ''), COALESCE(district_voice, ''),
		       COALESCE(constituent_area_id, ''), COALESCE(jurisdiction_area_id, '')
		FROM people WHERE id = ANY($1)
		ORDER BY name
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(
			&p.ID, &p.Name,
			&p.Party, &p.District, &p.Chamber,
			&p.GivenName, &p.FamilyName,
			&p.Email, &p.Biography,
			&p.BirthDate, &p.Image, &p.Links,
			&p.CapitolAddress, &p.CapitolVoice,
			&p.DistrictAddress, &p.DistrictVoice,
			&p.ConstituentAreaID, &p.JurisdictionAreaID,
		); err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}
