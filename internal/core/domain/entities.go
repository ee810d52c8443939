package domain

import (
	"encoding/json"
	"time"
)

// Area is an administrative region identified by an OCD division ID
// (e.g. "ocd-division/country:us/zipcode:94103" or a legislative district).
type Area struct {
	ID          string          `json:"id"`
	Name        string          `json:"name,omitempty"`
	Geometry    json.RawMessage `json:"geometry,omitempty"` // GeoJSON polygon
	CentroidLat *float64        `json:"centroid_lat,omitempty"`
	CentroidLon *float64        `json:"centroid_lon,omitempty"`
}

// HasCentroid reports whether both centroid coordinates are present.
// They are either both set or both absent; a half-set centroid is bad data.
func (a *Area) HasCentroid() bool {
	return a.CentroidLat != nil && a.CentroidLon != nil
}

// Precinct is an area specialization carrying election results.
type Precinct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name,omitempty"`
	Geometry    json.RawMessage `json:"geometry,omitempty"`
	CentroidLat *float64        `json:"centroid_lat,omitempty"`
	CentroidLon *float64        `json:"centroid_lon,omitempty"`
	TotalVotes  int             `json:"total_votes"`
	Results     map[string]int  `json:"results,omitempty"` // candidate -> votes
}

// PrecinctDistance pairs a precinct with its computed distance from a
// reference centroid.
type PrecinctDistance struct {
	Precinct      Precinct `json:"precinct"`
	DistanceMiles float64  `json:"distance_miles"`
}

// Person is an elected representative.
type Person struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Party              string     `json:"party,omitempty"`
	District           string     `json:"district,omitempty"`
	Chamber            string     `json:"chamber,omitempty"`
	GivenName          string     `json:"given_name,omitempty"`
	FamilyName         string     `json:"family_name,omitempty"`
	Email              string     `json:"email,omitempty"`
	Biography          string     `json:"biography,omitempty"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	Image              string     `json:"image,omitempty"`
	Links              []string   `json:"links,omitempty"`
	CapitolAddress     string     `json:"capitol_address,omitempty"`
	CapitolVoice       string     `json:"capitol_voice,omitempty"`
	DistrictAddress    string     `json:"district_address,omitempty"`
	DistrictVoice      string     `json:"district_voice,omitempty"`
	ConstituentAreaID  string     `json:"constituent_area_id,omitempty"`
	JurisdictionAreaID string     `json:"jurisdiction_area_id,omitempty"`
}

// PersonArea links a person to an area whose constituents they serve.
// This is the join surface from a ZIP code's area to its representatives.
type PersonArea struct {
	PersonID string `json:"person_id"`
	AreaID   string `json:"area_id"`
}

// Bill is a legislative bill record ingested from an external source.
type Bill struct {
	ID                      string            `json:"id"`
	Identifier              string            `json:"identifier,omitempty"`
	Title                   string            `json:"title"`
	JurisdictionAreaID      string            `json:"jurisdiction_area_id,omitempty"`
	JurisdictionLevel       string            `json:"jurisdiction_level,omitempty"` // federal | state | local
	Classification          []string          `json:"classification,omitempty"`
	CreatedAt               *time.Time        `json:"created_at,omitempty"`
	LatestActionDate        *time.Time        `json:"latest_action_date,omitempty"`
	LatestActionDescription string            `json:"latest_action_description,omitempty"`
	AISummary               string            `json:"ai_summary,omitempty"`
	Versions                []json.RawMessage `json:"versions,omitempty"`
	Votes                   []VoteEvent       `json:"votes"` // populated by enrichment
}

// VoteEvent is one recorded roll-call vote on a bill.
type VoteEvent struct {
	ID        string     `json:"id"`
	BillID    string     `json:"bill_id"`
	StartDate *time.Time `json:"start_date,omitempty"`
	Motion    string     `json:"motion,omitempty"`
	Result    string     `json:"result,omitempty"`
	Ballots   []Ballot   `json:"votes"`
}

// Ballot is a single voter's entry within a vote event.
type Ballot struct {
	VoterID string `json:"voter_id"`
	Option  string `json:"option"` // yes | no | abstain | ...
}

// BillPage is one page of a filtered, sorted bill listing.
type BillPage struct {
	Bills       []Bill `json:"bills"`
	TotalBills  int    `json:"total_bills"`
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
	PageSize    int    `json:"page_size"`
}
