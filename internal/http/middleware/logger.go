package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"employeeapi/internal/lib/logger/sl"
)

// Logger is a middleware that emits one structured record per HTTP request with
// request_id, method, path, status and latency_ms. Server errors are logged at error level.
func Logger(log *slog.Logger) fiber.Handler {
	log = log.With(sl.Component("http"))

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not run yet; derive the status it will write.
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}

		log.LogAttrs(c.UserContext(), level, "request",
			slog.String("request_id", rid),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Float64("latency_ms", float64(time.Since(start).Microseconds())/1000),
		)

		return err
	}
}
