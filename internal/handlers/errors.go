package handlers

import (
	"bytes"
	"errors"
	"strings"

	"movie-collection/internal/services"
	"movie-collection/internal/utils"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// parseJSON decodes the request body into v. The returned *fiber.Error is
// rendered by ErrorHandler.
func parseJSON(c *fiber.Ctx, v interface{}) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Request body cannot be empty")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON format: "+err.Error())
	}
	return nil
}

var kindStatus = map[services.ErrorKind]int{
	services.KindValidation:   fiber.StatusBadRequest,
	services.KindUnauthorized: fiber.StatusUnauthorized,
	services.KindForbidden:    fiber.StatusForbidden,
	services.KindNotFound:     fiber.StatusNotFound,
	services.KindConflict:     fiber.StatusConflict,
}

// handleServiceError renders a service failure. Unknown errors become a 500
// carrying fallback as the message.
func handleServiceError(c *fiber.Ctx, logger *logrus.Logger, err error, fallback string) error {
	if svcErr, ok := services.AsError(err); ok {
		status, known := kindStatus[svcErr.Kind]
		if !known {
			status = fiber.StatusBadRequest
		}
		if len(svcErr.Details) > 0 {
			return utils.ErrorWithDetailsResponse(c, status, svcErr.Message, svcErr.Details)
		}
		return utils.ErrorResponse(c, status, svcErr.Message)
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error(fallback)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, fallback)
}

// ErrorHandler renders errors returned from handlers and framework errors
// (unknown route, wrong method, oversized body, recovered panics) in the
// standard envelope.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		switch code {
		case fiber.StatusMethodNotAllowed:
			message = "Method not allowed"
		case fiber.StatusNotFound:
			if message == "" || message == fiber.ErrNotFound.Message || strings.HasPrefix(message, "Cannot ") {
				message = "Endpoint not found"
			}
		case fiber.StatusRequestEntityTooLarge:
			message = "Request body too large"
		}

		entry := log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		})
		if code >= fiber.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Debug("Request rejected")
		}

		return utils.ErrorResponse(c, code, message)
	}
}
