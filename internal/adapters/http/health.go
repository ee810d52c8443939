package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler is the liveness probe: process up, nothing else checked.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"uptime": time.Since(startedAt).String(),
		})
	}
}

// ReadyHandler is the readiness probe. The database is required; NATS and the
// cache are reported but a missing optional backend only degrades, it does
// not fail readiness unless it is configured and broken.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true

		fail := func(name, detail string) {
			checks[name] = detail
			ready = false
		}

		if deps.DB == nil {
			fail("database", "not configured")
		} else if err := deps.DB.Pool.Ping(ctx); err != nil {
			fail("database", "error: "+err.Error())
		} else {
			checks["database"] = "ok"
		}

		switch {
		case deps.NATS == nil:
			checks["nats"] = "not configured"
		case deps.NATS.IsConnected():
			checks["nats"] = "ok"
		default:
			fail("nats", "disconnected")
		}

		if deps.Cache == nil {
			checks["cache"] = "not configured"
		} else if _, err := deps.Cache.Get(ctx, "readyz"); err != nil {
			// A miss on the probe key is (nil, nil); only real errors fail.
			fail("cache", "error: "+err.Error())
		} else {
			checks["cache"] = "ok"
		}

		status, code := "ready", fiber.StatusOK
		if !ready {
			status, code = "not ready", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{"status": status, "checks": checks})
	}
}
