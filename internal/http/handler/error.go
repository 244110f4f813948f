package handler

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"employeeapi/internal/http/middleware"
	"employeeapi/internal/lib/logger/sl"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// internalError logs err with the request id and writes a generic 500.
func internalError(c *fiber.Ctx, log *slog.Logger, msg string, err error) error {
	log.ErrorContext(c.UserContext(), msg,
		slog.String("request_id", requestIDFromCtx(c)),
		sl.Err(err),
	)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// statusCode turns an HTTP status into an error code, e.g. 413 -> "REQUEST_ENTITY_TOO_LARGE".
func statusCode(status int) string {
	text := utils.StatusMessage(status)
	if text == "" {
		return "HTTP_" + strconv.Itoa(status)
	}
	return strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text))
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Errors that are not *fiber.Error (including recovered panics) are logged and reported as 500;
// other framework errors keep their status.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			return internalError(c, log, "unhandled error", err)
		}
		status := fe.Code

		switch status {
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusServiceUnavailable:
			return writeError(c, status, "SERVICE_UNAVAILABLE", "dependency unavailable")
		case fiber.StatusInternalServerError:
			return internalError(c, log, "unhandled error", err)
		default:
			if status >= fiber.StatusInternalServerError {
				log.ErrorContext(c.UserContext(), "request failed",
					slog.String("request_id", requestIDFromCtx(c)),
					slog.Int("status", status),
					sl.Err(err),
				)
			}
			return writeError(c, status, statusCode(status), fe.Message)
		}
	}
}
