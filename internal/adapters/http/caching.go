package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// cachePolicy maps a path predicate to a Cache-Control value. First match
// wins; order goes from most to least specific.
type cachePolicy struct {
	match   func(path string) bool
	control string
}

var cachePolicies = []cachePolicy{
	{func(p string) bool { return p == "/v1/health" || p == "/v1/ready" }, "public, max-age=10"},
	{func(p string) bool { return p == "/metrics" }, "no-cache"},
	{func(p string) bool { return p == "/graphql" }, "private, max-age=0"},
	// Radius searches and bill data change with ingestion; 5 minutes.
	{func(p string) bool { return strings.Contains(p, "/precincts") }, "public, max-age=300"},
	// Memberships change only on re-ingestion.
	{func(p string) bool { return strings.Contains(p, "/representatives") }, "public, max-age=600"},
	// District boundaries are effectively static between redistricting cycles.
	{func(p string) bool {
		return strings.HasPrefix(p, "/v1/areas") || strings.HasPrefix(p, "/v1/zipcodes")
	}, "public, max-age=3600"},
	{func(p string) bool { return strings.HasPrefix(p, "/v1/bills") }, "public, max-age=300"},
	{func(p string) bool { return strings.HasPrefix(p, "/v1/") }, "public, max-age=300"},
}

// CachingMiddleware sets a default Cache-Control on GET responses. Handlers
// that set their own header win.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet || c.GetRespHeader(fiber.HeaderCacheControl) != "" {
			return err
		}

		path := c.Path()
		for _, p := range cachePolicies {
			if p.match(path) {
				c.Set(fiber.HeaderCacheControl, p.control)
				break
			}
		}
		return err
	}
}
