package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AccessLogMiddleware emits one structured log line per request. 4xx logs at
// warn, 5xx and handler errors at error.
func AccessLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		level := slog.LevelInfo
		switch {
		case err != nil || status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		logger := slog.Default().With(
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes_out", len(c.Response().Body()),
			"ip", c.IP(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		)
		if err != nil {
			logger = logger.With("error", err.Error())
		}
		logger.Log(c.UserContext(), level, "request")

		return err
	}
}
