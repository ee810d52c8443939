package http

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/repcheck/repcheck-api/internal/core/domain"
	"github.com/repcheck/repcheck-api/internal/core/usecases"
	"github.com/repcheck/repcheck-api/internal/pkg/metrics"
)

// GetZipAreaHandler returns a ZIP code's area with its GeoJSON boundary.
// Failures are reported inside the envelope so map clients degrade
// gracefully instead of breaking on a 5xx.
func GetZipAreaHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		zip := c.Params("zip")

		area, err := deps.Areas.GetZipArea(c.Context(), zip)
		if err != nil {
			LoggerFromCtx(c.UserContext()).Warn("zip area lookup failed", "zip", zip, "error", err)
			return c.JSON(fiber.Map{
				"zip_code": zip,
				"area":     nil,
				"geometry": nil,
				"error":    publicError(err),
			})
		}

		return c.JSON(fiber.Map{
			"zip_code": zip,
			"area":     fiber.Map{"id": area.ID, "name": area.Name},
			"geometry": area.Geometry,
			"error":    nil,
		})
	}
}

// GetAreaHandler returns any area by its OCD division ID. The ID contains
// slashes, so the route uses a wildcard segment.
func GetAreaHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		areaID := c.Params("*")
		if areaID == "" {
			return errBadRequest(c, "area id is required")
		}

		area, err := deps.Areas.GetByID(c.Context(), areaID)
		if err != nil {
			LoggerFromCtx(c.UserContext()).Warn("area lookup failed", "area_id", areaID, "error", err)
			return c.JSON(fiber.Map{
				"area_id":  areaID,
				"geometry": nil,
				"error":    publicError(err),
			})
		}

		return c.JSON(fiber.Map{
			"area_id":  area.ID,
			"geometry": area.Geometry,
			"error":    nil,
		})
	}
}

// NearbyPrecinctsHandler returns precincts within a radius of a ZIP code's
// centroid, each with its distance in miles. Same soft envelope as the
// area endpoints.
func NearbyPrecinctsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		zip := c.Params("zip")
		radius := c.QueryFloat("radius", 5)

		envelope := func(hits []domain.PrecinctDistance, errMsg any) error {
			if hits == nil {
				hits = []domain.PrecinctDistance{}
			}
			return c.JSON(fiber.Map{
				"zip_code":     zip,
				"radius_miles": radius,
				"count":        len(hits),
				"precincts":    hits,
				"error":        errMsg,
			})
		}

		hits, err := deps.Precincts.FindWithinRadius(c.Context(), usecases.ZipAreaID(zip), radius)
		if err != nil {
			LoggerFromCtx(c.UserContext()).Warn("radius search failed",
				"zip", zip, "radius", radius, "error", err)
			return envelope(nil, publicError(err))
		}

		metrics.RadiusSearches.Inc()
		metrics.RadiusResults.Observe(float64(len(hits)))
		return envelope(hits, nil)
	}
}

// representativeResponse is a person annotated with area summaries.
type representativeResponse struct {
	domain.Person
	ConstituentArea  *domain.Area `json:"constituent_area,omitempty"`
	JurisdictionArea *domain.Area `json:"jurisdiction_area,omitempty"`
}

// RepresentativesHandler lists the people serving a ZIP code's area.
func RepresentativesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		zip := c.Params("zip")

		people, err := deps.Representatives.RepresentativesFor(c.Context(), zip)
		if err != nil {
			return mapDomainError(c, err)
		}

		out := make([]representativeResponse, 0, len(people))
		for _, p := range people {
			constituent, jurisdiction, err := deps.Representatives.AreaSummariesFor(c.Context(), p)
			if err != nil {
				return mapDomainError(c, err)
			}
			out = append(out, representativeResponse{
				Person:           p,
				ConstituentArea:  constituent,
				JurisdictionArea: jurisdiction,
			})
		}

		return c.JSON(fiber.Map{
			"zip_code":        zip,
			"count":           len(out),
			"representatives": out,
		})
	}
}

// BillsForZipHandler returns one page of bills for the ZIP code's
// representatives' jurisdictions, filtered and sorted per query parameters.
func BillsForZipHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		zip := c.Params("zip")

		pageNum, err := queryPositiveInt(c, "page", 1)
		if err != nil {
			return mapDomainError(c, err)
		}
		pageSize, err := queryPositiveInt(c, "page_size", 20)
		if err != nil {
			return mapDomainError(c, err)
		}

		req := usecases.PageRequest{
			Page:     pageNum,
			PageSize: pageSize,
			SortBy:   c.Query("sort_by"),
			Order:    c.Query("sort_order"),
			Filter: domain.BillFilter{
				HasVotes:          c.QueryBool("has_votes", false),
				JurisdictionLevel: c.Query("jurisdiction_level"),
				DateType:          c.Query("date_type"),
			},
		}

		var parseErr error
		if req.Filter.StartDate, parseErr = parseDateQuery(c, "start_date"); parseErr != nil {
			return errBadRequest(c, parseErr.Error())
		}
		if req.Filter.EndDate, parseErr = parseDateQuery(c, "end_date"); parseErr != nil {
			return errBadRequest(c, parseErr.Error())
		}

		for _, raw := range c.Context().QueryArgs().PeekMulti("representative_ids") {
			for _, id := range strings.Split(string(raw), ",") {
				if trimmed := strings.TrimSpace(id); trimmed != "" {
					req.Filter.RepresentativeIDs = append(req.Filter.RepresentativeIDs, trimmed)
				}
			}
		}

		page, err := deps.Bills.PageForZip(c.Context(), zip, req)
		if err != nil {
			return mapDomainError(c, err)
		}

		sortKey := req.SortBy
		if sortKey == "" {
			sortKey = domain.SortByLatestActionDate
		}
		metrics.BillPagesServed.WithLabelValues(sortKey).Inc()

		SetLinkHeaders(c, Pagination{
			Page:       page.CurrentPage,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
			Total:      page.TotalBills,
		})
		return c.JSON(page)
	}
}

// GetBillHandler returns a single bill with its vote events. The route uses
// a wildcard so slash-bearing bill identifiers resolve.
func GetBillHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("*")
		if id == "" {
			return errBadRequest(c, "bill id is required")
		}

		bill, err := deps.Bills.GetWithVotes(c.Context(), id)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(bill)
	}
}

// summaryRequest is the body of POST /v1/bills/summary.
type summaryRequest struct {
	BillID  string `json:"bill_id"`
	Summary string `json:"summary"`
}

// UpdateBillSummaryHandler stores an externally generated summary on a
// bill. Guarded by the X-RepCheck-API-Key header.
func UpdateBillSummaryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.SummaryKey == "" || c.Get("X-RepCheck-API-Key") != deps.SummaryKey {
			return errUnauthorized(c, "invalid or missing API key")
		}

		var req summaryRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.BillID == "" || req.Summary == "" {
			return errBadRequest(c, "bill_id and summary are required")
		}

		if err := deps.Bills.UpdateSummary(c.Context(), req.BillID, req.Summary); err != nil {
			return mapDomainError(c, err)
		}

		if deps.Publisher != nil {
			if err := deps.Publisher.PublishBillUpdated(c.Context(), req.BillID); err != nil {
				LoggerFromCtx(c.UserContext()).Warn("publish bill update failed",
					"bill_id", req.BillID, "error", err)
			}
		}

		return c.JSON(fiber.Map{"bill_id": req.BillID, "status": "updated"})
	}
}

// federalJurisdiction is the OCD division covering the whole country.
const federalJurisdiction = "ocd-division/country:us"

// ListBillVersionsHandler pages over bill version documents. Defaults to
// the federal jurisdiction; override with ?jurisdiction=.
func ListBillVersionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := queryPositiveInt(c, "page", 1)
		if err != nil {
			return mapDomainError(c, err)
		}
		perPage, err := queryPositiveInt(c, "per_page", 20)
		if err != nil {
			return mapDomainError(c, err)
		}
		jurisdiction := c.Query("jurisdiction", federalJurisdiction)

		bills, total, err := deps.Bills.ListVersions(c.Context(), jurisdiction, page, perPage)
		if err != nil {
			return mapDomainError(c, err)
		}

		type versionEntry struct {
			BillID   string      `json:"bill_id"`
			Versions interface{} `json:"versions"`
		}
		entries := make([]versionEntry, 0, len(bills))
		for _, b := range bills {
			entries = append(entries, versionEntry{BillID: b.ID, Versions: b.Versions})
		}

		totalPages := 0
		if perPage > 0 {
			totalPages = (total + perPage - 1) / perPage
		}
		SetLinkHeaders(c, Pagination{Page: page, PageSize: perPage, TotalPages: totalPages, Total: total})
		return c.JSON(fiber.Map{
			"total":    total,
			"page":     page,
			"per_page": perPage,
			"data":     entries,
		})
	}
}

// queryPositiveInt reads an optional positive-integer parameter. An absent
// parameter yields the default; an explicit zero, negative, or non-integer
// value is rejected rather than coerced to the default.
func queryPositiveInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.InvalidParameterf("%s must be a positive integer", name)
	}
	return n, nil
}

// parseDateQuery reads an optional date parameter in YYYY-MM-DD or full
// RFC 3339 form.
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	return nil, domain.InvalidParameterf("%s must be YYYY-MM-DD or RFC 3339", name)
}

// publicError is the message echoed inside a soft envelope. Upstream causes
// stay in the logs; callers only learn that the backend failed.
func publicError(err error) string {
	if errors.Is(err, domain.ErrUpstream) {
		return "upstream failure"
	}
	return err.Error()
}
