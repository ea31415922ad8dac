package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/middleware"
	"github.com/hommiefi/hommiefi-api/internal/utils"
)

func userIDFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(string); ok {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

func withRequestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// validationFields flattens validator errors into a field → constraint map
// for the structured error payload.
func validationFields(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = fieldError.Tag()
	}
	return fields
}

// sendServiceError maps common service failures onto the response envelope.
// Unexpected errors surface as a generic 500 so internals never leak.
func sendServiceError(c *fiber.Ctx, err error) error {
	if isValidationError(err) {
		return utils.SendValidationError(c, "invalid payload", validationFields(err))
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "not found")
	}
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
