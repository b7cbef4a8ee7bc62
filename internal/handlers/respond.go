package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/mazingira/donations-backend/internal/apperr"
	"github.com/mazingira/donations-backend/internal/dto"
)

// fail renders an error through the taxonomy: one kind, one status.
// Storage failures are logged with their cause but serialized generically.
func fail(c *fiber.Ctx, err error) error {
	kind := apperr.KindOf(err)
	if kind == apperr.KindStorage {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(apperr.Status(kind)).JSON(dto.ErrorResponse{
		Error:   true,
		Kind:    string(kind),
		Message: apperr.Message(err),
	})
}
