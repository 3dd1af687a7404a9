package handlers

import (
	"errors"
	"log/slog"

	"github.com/callimard/makemeacube/internal/dto"
	"github.com/callimard/makemeacube/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// currentPrincipal builds the caller principal from the JWT the auth
// middleware verified and stashed in the request context.
func currentPrincipal(c *fiber.Ctx) (services.Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return services.Principal{}, services.ErrAuthenticationMismatch
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return services.Principal{}, services.ErrAuthenticationMismatch
	}

	return services.ParsePrincipal(claims)
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, services.ErrNotFound
	}
	return uint(id), nil
}

// respondServiceError maps the service error taxonomy to HTTP statuses.
// Ownership violations surface as 403; materials reached through a foreign
// tool already come back as not-found from the service layer.
func respondServiceError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrDuplicateEmail):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrOwnershipViolation):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrAuthenticationMismatch),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		status = fiber.StatusUnauthorized
	default:
		slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Message: err.Error(),
	})
}
