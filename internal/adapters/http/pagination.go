package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Pagination contains page-based pagination info.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
}

// SetLinkHeaders adds RFC 8288 Link headers for page-based responses.
func SetLinkHeaders(c *fiber.Ctx, p Pagination) {
	base := c.Path()
	link := func(page int, rel string) string {
		return fmt.Sprintf(`<%s?page=%d&page_size=%d>; rel="%s"`, base, page, p.PageSize, rel)
	}

	links := []string{link(1, "first")}
	if p.Page > 1 {
		links = append(links, link(p.Page-1, "prev"))
	}
	if p.Page < p.TotalPages {
		links = append(links, link(p.Page+1, "next"))
	}
	last := p.TotalPages
	if last < 1 {
		last = 1
	}
	links = append(links, link(last, "last"))

	c.Set("Link", strings.Join(links, ", "))
}
