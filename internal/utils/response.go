package utils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"

	DBConnectionFailedCode    = "DB_CONNECTION_FAILED"
	DBConnectionFailedMessage = "Database connection error. Please contact administrator."
)

var timestampLocation = time.Local

// SetTimezone selects the zone envelope timestamps are rendered in. Call once at startup.
func SetTimezone(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	timestampLocation = loc
	return nil
}

// FormatTimestamp renders t in the configured zone as YYYY-MM-DD HH:MM:SS.
func FormatTimestamp(t time.Time) string {
	return t.In(timestampLocation).Format(TimestampLayout)
}

// StandardResponse represents the standard API response format
type StandardResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Timestamp string      `json:"timestamp"`
	Code      int         `json:"code,omitempty"`
	ErrorCode string      `json:"error_code,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

// SuccessResponse sends a success response
func SuccessResponse(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(StandardResponse{
		Success:   true,
		Message:   message,
		Timestamp: FormatTimestamp(time.Now()),
		Data:      data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	return ErrorWithDetailsResponse(c, code, message, nil)
}

// ErrorWithDetailsResponse sends an error response with additional details
func ErrorWithDetailsResponse(c *fiber.Ctx, code int, message string, details interface{}) error {
	resp := StandardResponse{
		Success:   false,
		Message:   message,
		Timestamp: FormatTimestamp(time.Now()),
		Code:      code,
	}
	if details != nil {
		resp.Details = details
	}
	return c.Status(code).JSON(resp)
}

// DatabaseUnavailableResponse is returned by every route while the database is unreachable.
func DatabaseUnavailableResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(StandardResponse{
		Success:   false,
		Message:   DBConnectionFailedMessage,
		Timestamp: FormatTimestamp(time.Now()),
		ErrorCode: DBConnectionFailedCode,
	})
}
